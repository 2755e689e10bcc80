// seehuhn.de/go/planar - planar raster devices and color image rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package render

import (
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/cms"
	"seehuhn.de/go/planar/internal/dda"
)

// rowGeom describes the position of one image row in device space.
type rowGeom struct {
	// pixel0 starts at the row origin and advances by one sample per
	// step.
	pixel0 dda.Point

	x0, y0 fixed.Int52_12

	// pdyx and pdyy give the vector from this row's origin to the next.
	pdyx, pdyy fixed.Int52_12

	// vci and vdi give the device rows (portrait) or columns (landscape
	// and skewed) covered by the image row.
	vci, vdi int
}

// runState tracks the part of a row which has been painted so far.
type runState struct {
	posture  Posture
	vci, vdi int

	irun         int
	xrun, yrun   fixed.Int52_12
	xprev, yprev fixed.Int52_12
	pdyx, pdyy   fixed.Int52_12
}

func newRunState(posture Posture, g *rowGeom) runState {
	r := runState{
		posture: posture,
		vci:     g.vci,
		vdi:     g.vdi,
		xrun:    g.pixel0.X.Q,
		yrun:    g.pixel0.Y.Q,
		pdyx:    g.pdyx,
		pdyy:    g.pdyy,
	}
	r.xprev, r.yprev = r.xrun, r.yrun
	if posture == Portrait {
		r.irun = round(r.xrun)
	} else {
		r.irun = round(r.yrun)
	}
	return r
}

// advance moves the end of the current run to p.
func (r *runState) advance(p *dda.Point) {
	r.xprev, r.yprev = p.X.Q, p.Y.Q
}

// emit paints the current run with color c and starts a new run.
func (r *runState) emit(e *Enum, c *deviceColor) error {
	switch r.posture {
	case Portrait:
		xi := r.irun
		r.irun = round(r.xprev)
		wi := r.irun - xi
		if wi < 0 {
			xi, wi = xi+wi, -wi
		}
		if wi > 0 {
			return e.fillRect(xi, r.vci, wi, r.vdi, c)
		}
	case Landscape:
		yi := r.irun
		r.irun = round(r.yprev)
		hi := r.irun - yi
		if hi < 0 {
			yi, hi = yi+hi, -hi
		}
		if hi > 0 {
			return e.fillRect(r.vci, yi, r.vdi, hi, c)
		}
	default:
		err := e.fillParallelogram(r.xrun, r.yrun,
			r.xprev-r.xrun, r.yprev-r.yrun, r.pdyx, r.pdyy, c)
		r.xrun, r.yrun = r.xprev, r.yprev
		return err
	}
	return nil
}

// pixelMapper computes the device color of a pixel.
type pixelMapper func(c *deviceColor, px []byte) error

// renderRuns paints a row of chunky pixels.  Adjacent pixels with equal
// samples or equal device colors are merged into runs, except for skewed
// images where every pixel is painted separately.  The last run is always
// painted.
//
// If painting fails, the index of the first pixel of the failed run is
// recorded in e.used.
func (e *Enum) renderRuns(src []byte, spp int, g *rowGeom, mapPixel pixelMapper) error {
	n := len(src) / spp
	if n == 0 {
		return nil
	}
	skewed := e.posture == Skewed
	r := newRunState(e.posture, g)

	var run, next [planar.MaxComponents]byte
	run[0] = ^src[0]
	var c1, c2 deviceColor
	cur, nxt := &c1, &c2
	runStart := 0
	pnext := g.pixel0
	for i := range n {
		pnext.Next()
		copy(next[:spp], src[i*spp:(i+1)*spp])
		if !skewed && next == run {
			r.advance(&pnext)
			continue
		}

		mapErr := mapPixel(nxt, next[:spp])
		if mapErr == nil && !skewed && nxt.equal(cur) {
			run = next
			r.advance(&pnext)
			continue
		}

		if err := r.emit(e, cur); err != nil {
			e.used.X = runStart
			return err
		}
		runStart = i
		if mapErr != nil {
			e.used.X = i
			return mapErr
		}
		cur, nxt = nxt, cur
		run = next
		r.advance(&pnext)
	}

	if err := r.emit(e, cur); err != nil {
		e.used.X = runStart
		return err
	}
	return nil
}

// renderICC draws a row using the color transform.
func (e *Enum) renderICC(row []byte, g *rowGeom) error {
	src, owned, err := e.prepare(row, false)
	if err != nil {
		return err
	}
	spp := e.spp
	if owned {
		defer e.arena.Release(src)
		spp = e.nOut
	}
	return e.renderRuns(src, spp, g, func(c *deviceColor, px []byte) error {
		e.setDeviceColor(c, px)
		return nil
	})
}

// renderDeviceN draws a row pixel by pixel, skipping transparent pixels.
// Colors are mapped by the remap function if there is one, and by the
// color transform otherwise.
func (e *Enum) renderDeviceN(row []byte, g *rowGeom) error {
	const op = "render.renderDeviceN"
	var cc [planar.MaxComponents]float64
	var cv [planar.MaxComponents]planar.ColorValue
	var in, out [planar.MaxComponents]byte
	inDesc := cms.BufferDesc{NumChannels: e.spp, PixelsPerRow: 1, NumRows: 1}
	outDesc := cms.BufferDesc{NumChannels: e.nOut, PixelsPerRow: 1, NumRows: 1}

	return e.renderRuns(row, e.spp, g, func(c *deviceColor, px []byte) error {
		if e.mask != nil && e.mask.matches(px) {
			*c = deviceColor{}
			return nil
		}

		if e.p.Remap != nil {
			for i, s := range px {
				cc[i] = e.maps[i].value(s)
			}
			if err := e.p.Remap(cc[:e.spp], cv[:e.nOut]); err != nil {
				return err
			}
			for k := range e.nOut {
				out[k] = byte(cv[k] >> 8)
			}
		} else {
			if e.link == nil {
				return &planar.PreconditionError{Op: op, Msg: "transform not created"}
			}
			if e.needDecode {
				decodeRow(in[:e.spp], px, e.maps, e.cieRange)
			} else {
				copy(in[:e.spp], px)
			}
			err := e.link.TransformBuffer(&inDesc, &outDesc, in[:e.spp], out[:e.nOut])
			if err != nil {
				return err
			}
		}
		e.setDeviceColor(c, out[:e.nOut])
		return nil
	})
}
