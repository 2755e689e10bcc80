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

	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/cms"
	"seehuhn.de/go/planar/halftone"
	"seehuhn.de/go/planar/internal/dda"
	"seehuhn.de/go/planar/internal/sample"
	"seehuhn.de/go/planar/scratch"
	"seehuhn.de/go/planar/memdev"
	"seehuhn.de/go/planar/rop"
)

// Position identifies a sample of the image.
type Position struct {
	X, Y int
}

// Enum renders one image.  The image data is delivered by calls to
// [Enum.PlaneData].  An Enum must not be used concurrently.
type Enum struct {
	p    Params
	dev  Device
	hdev HalftoneDevice
	rdev RopDevice

	arena   *scratch.Arena
	posture Posture
	spp     int
	nOut    int

	maps       []decodeMap
	needDecode bool
	cieRange   []float64
	mask       *maskFilter
	link       cms.Transform
	lop        rop.LogOp

	mustHalftone bool
	maxLevel     []int
	screen       *halftone.Screen
	tiles        map[[planar.MaxComponents]byte]*memdev.Tile

	class  string
	render func(e *Enum, row []byte, g *rowGeom) error

	// rows tracks the device position of the origin of the current row.
	rows         dda.Point
	xExtX, xExtY fixed.Int52_12

	y      int
	used   Position
	thresh *threshState
	closed bool
}

// NewEnum prepares the rendering of an image with parameters p onto dev.
//
// The color transform is p.Transform if this is set.  Otherwise it is
// obtained from the color manager cm, using p.Profile or the default
// profile for the number of components.  If no transform can be found,
// errors are only reported once image data is delivered.
func NewEnum(dev Device, p *Params, cm *cms.Manager) (*Enum, error) {
	const op = "render.NewEnum"
	if err := p.check(); err != nil {
		return nil, err
	}
	nOut := dev.NumComponents()
	if nOut < 1 || nOut > planar.MaxComponents {
		return nil, planar.Range(op, "device has %d components", nOut)
	}

	e := &Enum{
		p:       *p,
		dev:     dev,
		arena:   &scratch.Arena{},
		posture: PostureOf(p.Matrix),
		spp:     p.NumComponents,
		nOut:    nOut,
		tiles:   make(map[[planar.MaxComponents]byte]*memdev.Tile),
	}
	e.hdev, _ = dev.(HalftoneDevice)
	e.rdev, _ = dev.(RopDevice)

	e.lop = p.LogOp
	if e.lop == 0 {
		e.lop = rop.DefaultLogOp
	}
	if e.lop != rop.DefaultLogOp && e.rdev == nil {
		return nil, &planar.PreconditionError{Op: op, Msg: "device does not support raster operations"}
	}

	e.maps = make([]decodeMap, e.spp)
	for k := range e.maps {
		dMin, dMax := 0.0, 1.0
		if p.Decode != nil {
			dMin, dMax = p.Decode[2*k], p.Decode[2*k+1]
		}
		e.maps[k] = newDecodeMap(dMin, dMax, p.BitsPerComponent)
		e.needDecode = e.needDecode || e.maps[k].mode != decodeNone
	}
	e.mask = newMaskFilter(p.MaskColor, p.BitsPerComponent)

	deviceN := p.Remap != nil && p.Profile == nil
	profile := p.Profile
	if profile == nil && !deviceN && cm != nil {
		profile = cm.DefaultFor(e.spp)
	}
	if profile != nil && profile.NumComponents() != e.spp {
		return nil, planar.Range(op, "%d component image with %s profile",
			e.spp, profile.Space)
	}

	switch {
	case profile != nil && profile.Space == cms.SpaceLab:
		// The transform expects the ICC encoding of Lab values.
		e.needDecode = false
	case p.Range != nil:
		e.cieRange = p.Range
	case profile != nil && profile.IsCIE():
		e.cieRange = profile.Ranges
	}
	if e.cieRange != nil {
		e.needDecode = true
	}

	switch {
	case p.Transform != nil:
		e.link = p.Transform
	case cm != nil && profile != nil:
		link, err := cm.Link(profile, p.Rendering)
		if err != nil {
			return nil, err
		}
		e.link = link
	}

	if e.hdev != nil {
		e.mustHalftone = e.hdev.MustHalftone()
		planes := e.hdev.Planes()
		e.maxLevel = make([]int, nOut)
		for k := range e.maxLevel {
			depth := 8
			if k < len(planes) {
				depth = planes[k].Depth
			}
			e.maxLevel[k] = 1<<depth - 1
		}
	}
	e.screen = p.Screen
	if e.screen == nil {
		o, err := halftone.Bayer(3)
		if err != nil {
			return nil, err
		}
		e.screen = halftone.NewScreen(o, nOut)
	}

	m := p.Matrix
	w, h := float64(p.Width), float64(p.Height)
	e.rows = dda.NewPoint(toFixed(m[4]), toFixed(m[5]),
		toFixed(m[2]*h), toFixed(m[3]*h), p.Height)
	e.xExtX = toFixed(m[0] * w)
	e.xExtY = toFixed(m[1] * w)

	switch {
	case deviceN || e.mask != nil:
		e.class = "DeviceN"
		e.render = (*Enum).renderDeviceN
	case e.useThreshold():
		e.class = "threshold"
		e.render = (*Enum).renderThreshold
		e.initThreshold()
	default:
		e.class = "ICC"
		e.render = (*Enum).renderICC
	}

	planar.Logger().Debug("image renderer selected",
		slog.String("class", e.class),
		slog.String("posture", e.posture.String()),
		slog.Int("width", p.Width),
		slog.Int("height", p.Height),
		slog.Int("spp", e.spp),
		slog.Int("bps", p.BitsPerComponent))
	return e, nil
}

// useThreshold reports whether the threshold renderer can draw the image.
func (e *Enum) useThreshold() bool {
	if !e.mustHalftone || !e.p.FastThreshold || e.posture == Skewed {
		return false
	}
	if e.p.BitsPerComponent != 8 || e.lop != rop.DefaultLogOp {
		return false
	}
	for _, p := range e.hdev.Planes() {
		if p.Depth != 1 {
			return false
		}
	}
	return e.nOut == 1 || e.hdev.IsNativePlanar() && e.hdev.IsStdCMYK1Bit()
}

// Class returns the name of the renderer used for the image: "ICC",
// "DeviceN" or "threshold".
func (e *Enum) Class() string {
	return e.class
}

// Used returns the position of the first sample which has not been drawn.
// After an error, this identifies the start of the run which failed.
func (e *Enum) Used() Position {
	return e.used
}

// SetArena sets the arena used for scratch buffers.  This must be called
// before the first call to [Enum.PlaneData].
func (e *Enum) SetArena(a *scratch.Arena) {
	e.arena = a
}

// PlaneData draws h rows of image data.
//
// The data is given either as a single plane holding all components of a
// pixel next to each other, or as one plane per component.  Each row of a
// plane starts on a byte boundary.  A call with h == 0 flushes pending
// output, see [Enum.Flush].
//
// The return value done is true once all rows of the image have been
// drawn.  Rows beyond the image height are ignored.
func (e *Enum) PlaneData(planes [][]byte, h int) (done bool, err error) {
	const op = "render.PlaneData"
	if e.closed {
		return false, &planar.PreconditionError{Op: op, Msg: "image is closed"}
	}
	if h == 0 {
		return e.y >= e.p.Height, e.Flush()
	}
	if h < 0 {
		return false, planar.Range(op, "negative row count %d", h)
	}

	var perPlane int
	switch len(planes) {
	case 1:
		perPlane = e.spp
	case e.spp:
		perPlane = 1
	default:
		return false, planar.Range(op, "%d planes for %d components", len(planes), e.spp)
	}
	h = min(h, e.p.Height-e.y)
	rowBytes := sample.RowBytes(e.p.Width*perPlane, e.p.BitsPerComponent)
	for i, plane := range planes {
		if len(plane) < h*rowBytes {
			return false, planar.Range(op, "plane %d too short (%d < %d)", i, len(plane), h*rowBytes)
		}
	}

	row, err := e.arena.Bytes(op, e.p.Width*e.spp)
	if err != nil {
		return false, err
	}
	defer e.arena.Release(row)

	for j := range h {
		e.unpack(row, planes, j*rowBytes)
		g := e.rowGeometry()
		e.used = Position{Y: e.y}
		if err := e.render(e, row, &g); err != nil {
			e.used.Y = e.y
			return false, err
		}
		e.rows.Next()
		e.y++
	}
	e.used = Position{Y: e.y}
	return e.y >= e.p.Height, nil
}

// unpack converts one row of image data, starting at byte offset off of
// each plane, to chunky 8-bit samples.  Samples with fewer than 8 bits are
// scaled to the full byte range.
func (e *Enum) unpack(dst []byte, planes [][]byte, off int) {
	bps := e.p.BitsPerComponent
	if len(planes) == 1 && bps == 8 {
		copy(dst, planes[0][off:])
		return
	}
	scale := uint64(255 / (1<<bps - 1))
	stride := 1
	if len(planes) == 1 {
		stride = 0
	}
	n := e.p.Width * e.spp
	for k, plane := range planes {
		r := sample.NewReader(plane[off:], 0, bps)
		if stride == 0 {
			for i := range n {
				dst[i] = byte(r.Next() * scale)
			}
			break
		}
		for i := k; i < n; i += e.spp {
			dst[i] = byte(r.Next() * scale)
		}
	}
}

// rowGeometry computes the device position of the current row.
func (e *Enum) rowGeometry() rowGeom {
	x0, y0 := e.rows.X.Q, e.rows.Y.Q
	next := e.rows
	next.Next()
	g := rowGeom{
		pixel0: dda.NewPoint(x0, y0, e.xExtX, e.xExtY, e.p.Width),
		x0:     x0,
		y0:     y0,
		pdyx:   next.X.Q - x0,
		pdyy:   next.Y.Q - y0,
	}
	switch e.posture {
	case Portrait:
		g.vci, g.vdi = span(y0, next.Y.Q)
	case Landscape:
		g.vci, g.vdi = span(x0, next.X.Q)
	}
	return g
}

// span returns the first pixel and the number of pixels between the
// pixel boundaries nearest to a and b.
func span(a, b fixed.Int52_12) (int, int) {
	i0, i1 := round(a), round(b)
	if i1 < i0 {
		i0, i1 = i1, i0
	}
	return i0, i1 - i0
}

func (e *Enum) transferFor(k int) halftone.Transfer {
	if k < len(e.p.Transfer) {
		return e.p.Transfer[k]
	}
	return nil
}

// Flush draws output which the threshold renderer has held back.  Other
// renderers draw everything immediately.
func (e *Enum) Flush() error {
	if e.thresh == nil {
		return nil
	}
	return e.flushLandscape()
}

// Close flushes pending output and releases the resources held by e.
// Close must be called once the image is complete, or when rendering is
// abandoned.  Further calls to [Enum.PlaneData] fail.
func (e *Enum) Close() error {
	if e.closed {
		return nil
	}
	err := e.Flush()
	e.closed = true
	if e.thresh != nil {
		e.thresh.release(e.arena)
		e.thresh = nil
	}
	clear(e.tiles)
	return err
}
