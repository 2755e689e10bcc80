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
	"log/slog"
	"math"

	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/halftone"
	"seehuhn.de/go/planar/internal/dda"
	"seehuhn.de/go/planar/internal/sample"
	"seehuhn.de/go/planar/scratch"
)

// landBits is the number of device columns which the landscape threshold
// renderer collects before they are screened.  Column blocks start at
// multiples of landBits.
const landBits = 16

// threshState holds the state of the threshold renderer.
type threshState struct {
	// start and length give the device pixels covered by an image row,
	// along the x-axis for portrait images and along the y-axis for
	// landscape images.
	start, length int
	reverse       bool
	scale         fixed.Int52_12

	// contone holds one buffer per component for the landscape columns.
	// Device row start+r of column colBase+c is at index r*landBits+c,
	// counted from the first 16-byte aligned byte of the buffer.
	contone [][]byte
	colBase int
	lo, hi  int
	dir     int
}

func (t *threshState) plane(k int) []byte {
	buf := t.contone[k]
	off := scratch.AlignOffset(buf, 16)
	return buf[off : off+landBits*t.length]
}

func (t *threshState) release(a *scratch.Arena) {
	for _, buf := range t.contone {
		a.Release(buf)
	}
	t.contone = nil
}

func (e *Enum) initThreshold() {
	var a, ext fixed.Int52_12
	if e.posture == Portrait {
		a, ext = e.rows.X.Q, e.xExtX
	} else {
		a, ext = e.rows.Y.Q, e.xExtY
	}
	t := &threshState{
		reverse: ext < 0,
		lo:      0,
		hi:      -1,
		dir:     1,
	}
	t.start, t.length = span(a, a+ext)
	t.scale = scaleFactor(e.p.Width, t.length)
	if e.posture == Landscape && e.p.Matrix[2] < 0 {
		t.dir = -1
	}
	e.thresh = t
}

// renderThreshold draws a row by screening its contone values against the
// threshold arrays.
func (e *Enum) renderThreshold(row []byte, g *rowGeom) error {
	const op = "render.renderThreshold"
	t := e.thresh
	last := e.y == e.p.Height-1
	if t.length == 0 || g.vdi == 0 {
		if last && e.posture == Landscape {
			return e.flushLandscape()
		}
		return nil
	}

	src, owned, err := e.prepare(row, true)
	if err != nil {
		return err
	}
	if len(e.p.Transfer) > 0 && !owned {
		buf, err := e.arena.Bytes(op, len(src))
		if err != nil {
			return err
		}
		copy(buf, src)
		src, owned = buf, true
	}
	if owned {
		defer e.arena.Release(src)
	}

	w := e.p.Width
	planes := make([][]byte, e.nOut)
	for k := range planes {
		planes[k] = src[k*w : (k+1)*w]
		e.transferFor(k).Apply(planes[k])
	}

	if e.posture == Portrait {
		return e.thresholdPortrait(planes, g)
	}
	if err := e.thresholdLandscape(planes, g); err != nil {
		return err
	}
	if last {
		return e.flushLandscape()
	}
	return nil
}

// thresholdPortrait screens the device rows covered by one image row.
func (e *Enum) thresholdPortrait(planes [][]byte, g *rowGeom) error {
	const op = "render.thresholdPortrait"
	t := e.thresh
	x0, x1 := max(t.start, 0), min(t.start+t.length, e.dev.Width())
	y0, y1 := max(g.vci, 0), min(g.vci+g.vdi, e.dev.Height())
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	n := x1 - x0
	bitOff := x0 & 7
	raster := sample.RowBytes(bitOff+n, 1)

	line, _, err := e.arena.Aligned(op, t.length, 16)
	if err != nil {
		return err
	}
	defer e.arena.Release(line)
	thr, err := e.arena.Bytes(op, n)
	if err != nil {
		return err
	}
	defer e.arena.Release(thr)
	bits, err := e.arena.Bytes(op, raster)
	if err != nil {
		return err
	}
	defer e.arena.Release(bits)

	pos, step := 0, 1
	if t.reverse {
		pos, step = t.length-1, -1
	}
	for k, plane := range planes {
		resample(line, pos, step, t.length, plane, t.scale)
		order := e.screen.Component(k)
		contone := line[x0-t.start : x1-t.start]
		for y := y0; y < y1; y++ {
			order.Row(thr, x0, y)
			halftone.Threshold(bits, bitOff, contone, thr)
			err := e.hdev.CopyPlane(bits, bitOff, raster, x0, y, n, 1, k)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// thresholdLandscape adds the device columns covered by one image row to
// the column buffers.  Full blocks of columns are screened immediately.
func (e *Enum) thresholdLandscape(planes [][]byte, g *rowGeom) error {
	const op = "render.thresholdLandscape"
	t := e.thresh
	if t.contone == nil {
		t.contone = make([][]byte, e.nOut)
		for k := range t.contone {
			buf, err := e.arena.Bytes(op, landBits*t.length+15)
			if err != nil {
				t.release(e.arena)
				return err
			}
			t.contone[k] = buf
		}
	}

	first, last := g.vci, g.vci+g.vdi-1
	if t.dir < 0 {
		first, last = last, first
	}
	width := e.dev.Width()
	for x := first; ; x += t.dir {
		if x >= 0 && x < width {
			if t.hi >= t.lo && (x < t.colBase || x >= t.colBase+landBits) {
				if err := e.flushLandscape(); err != nil {
					return err
				}
			}
			if t.hi < t.lo {
				t.colBase = x &^ (landBits - 1)
				t.lo, t.hi = x, x
			}
			t.lo = min(t.lo, x)
			t.hi = max(t.hi, x)

			col := x - t.colBase
			pos, step := col, landBits
			if t.reverse {
				pos, step = (t.length-1)*landBits+col, -landBits
			}
			for k, plane := range planes {
				resample(t.plane(k), pos, step, t.length, plane, t.scale)
			}

			if t.dir > 0 && col == landBits-1 || t.dir < 0 && col == 0 {
				if err := e.flushLandscape(); err != nil {
					return err
				}
			}
		}
		if x == last {
			break
		}
	}
	return nil
}

// flushLandscape screens the collected landscape columns.
func (e *Enum) flushLandscape() error {
	const op = "render.flushLandscape"
	t := e.thresh
	if t.hi < t.lo {
		return nil
	}
	lo, hi := t.lo, t.hi
	t.lo, t.hi = 0, -1

	y0, y1 := max(t.start, 0), min(t.start+t.length, e.dev.Height())
	if y0 >= y1 {
		return nil
	}
	w := hi - lo + 1
	h := y1 - y0
	sx := lo - t.colBase
	const raster = landBits / 8

	bits, err := e.arena.Bytes(op, raster*h)
	if err != nil {
		return err
	}
	defer e.arena.Release(bits)
	thr, err := e.arena.Bytes(op, w)
	if err != nil {
		return err
	}
	defer e.arena.Release(thr)

	for k := range e.nOut {
		buf := t.plane(k)
		order := e.screen.Component(k)
		for y := y0; y < y1; y++ {
			r := (y - t.start) * landBits
			order.Row(thr, lo, y)
			halftone.Threshold(bits[(y-y0)*raster:], sx, buf[r+sx:r+sx+w], thr)
		}
		if err := e.hdev.CopyPlane(bits, sx, raster, lo, y0, w, h, k); err != nil {
			return err
		}
	}

	planar.Logger().Debug("landscape threshold flush",
		slog.Int("x", lo),
		slog.Int("columns", w),
		slog.Int("rows", h))
	return nil
}

// scaleFactor returns the ratio (srcW-1)/(dstW-1), rounded to a multiple
// of 1/256.
func scaleFactor(srcW, dstW int) fixed.Int52_12 {
	if dstW <= 1 {
		return dda.One
	}
	s := float64(srcW-1) / float64(dstW-1)
	return fixed.Int52_12(math.Round(s*256)) << 4
}

// resample stretches src to n values, which are stored at dst[pos],
// dst[pos+step], ...  Scale factors of 1 and 1/2 use a straight copy and
// pixel doubling.  Otherwise an integer DDA maps the first and last
// output values to the first and last input values.
func resample(dst []byte, pos, step, n int, src []byte, scale fixed.Int52_12) {
	last := len(src) - 1
	switch scale {
	case dda.One:
		for i := range n {
			dst[pos] = src[min(i, last)]
			pos += step
		}
	case dda.Half:
		for i := range n {
			dst[pos] = src[min(i>>1, last)]
			pos += step
		}
	default:
		idx := dda.NewInt(0, last, n-1)
		for range n {
			dst[pos] = src[idx.Q]
			idx.Next()
			pos += step
		}
	}
}
