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

// Package memdev implements in-memory raster devices.
//
// A [Surface] stores each color component in a separate plane.  The
// position of a plane's bits in a packed [planar.ColorIndex] is given by a
// [PlaneDesc].  Drawing calls are split into one call per plane, each
// directed at a [View] of that plane and executed by the [Chunky]
// primitives for the plane depth.
package memdev

import (
	"unsafe"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/scratch"
)

// ColorModel describes how the planes of a surface are interpreted when
// colors are converted to or from standard color spaces.
type ColorModel int

// These are the supported color models.
const (
	// ModelDefault chooses the model from the number of planes: one plane
	// is gray, three planes are RGB, four planes are CMYK, everything else
	// is DeviceN.
	ModelDefault ColorModel = iota
	ModelGray
	ModelRGB
	ModelCMYK
	ModelDeviceN
)

func (m ColorModel) String() string {
	switch m {
	case ModelGray:
		return "gray"
	case ModelRGB:
		return "rgb"
	case ModelCMYK:
		return "cmyk"
	case ModelDeviceN:
		return "devicen"
	default:
		return "default"
	}
}

// Surface is a planar in-memory raster device.
type Surface struct {
	width  int
	height int
	depth  int

	planes []PlaneDesc
	kind   layoutKind
	model  ColorModel
	arena  *scratch.Arena

	// lines holds the row slices of all planes: row y of plane p is
	// lines[p*height+y].
	lines      [][]byte
	rasters    []int
	contiguous bool
}

// New allocates a surface of the given size.  Depth is the number of bits
// in a packed color index.  The plane layout must be set using
// [Surface.SetPlanes] before the surface is opened.
func New(width, height, depth int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		depth:  depth,
		arena:  &scratch.Arena{},
	}
}

// SetPlanes sets the plane layout of the surface.  The planes must not
// overlap and must fit into the depth of the surface.
func (s *Surface) SetPlanes(planes []PlaneDesc) error {
	kind, err := checkLayout(planes, s.depth)
	if err != nil {
		return err
	}
	s.planes = append(s.planes[:0], planes...)
	s.kind = kind
	s.lines = nil
	return nil
}

// SetColorModel sets the color model used for color conversions.
func (s *Surface) SetColorModel(m ColorModel) {
	s.model = m
}

// SetArena sets the arena used for scratch buffers.
func (s *Surface) SetArena(a *scratch.Arena) {
	s.arena = a
}

// Open allocates the storage for all planes in one contiguous buffer,
// plane after plane.
func (s *Surface) Open() error {
	if len(s.planes) == 0 {
		return planar.Range("open", "no plane layout set")
	}
	if s.width < 0 || s.height < 0 {
		return planar.Range("open", "invalid size %dx%d", s.width, s.height)
	}
	total := 0
	for _, p := range s.planes {
		total += bitmapRaster(s.width*p.Depth) * s.height
	}
	buf := make([]byte, total)
	lines := make([][]byte, 0, len(s.planes)*s.height)
	pos := 0
	for _, p := range s.planes {
		raster := bitmapRaster(s.width * p.Depth)
		for range s.height {
			lines = append(lines, buf[pos:pos+raster])
			pos += raster
		}
	}
	return s.OpenLines(lines)
}

// OpenLines uses caller-supplied storage.  Lines must hold
// NumPlanes()*Height() row slices, plane after plane.  Rows may be
// interleaved or banded; the raster of each plane is taken from the
// distance between its first two rows.
func (s *Surface) OpenLines(lines [][]byte) error {
	if len(s.planes) == 0 {
		return planar.Range("open", "no plane layout set")
	}
	if len(lines) != len(s.planes)*s.height {
		return planar.Range("open", "got %d lines, need %d", len(lines), len(s.planes)*s.height)
	}
	s.lines = lines
	s.rasters = make([]int, len(s.planes))
	s.contiguous = true
	for pi, p := range s.planes {
		rowBytes := (s.width*p.Depth + 7) >> 3
		pl := lines[pi*s.height : (pi+1)*s.height]
		for y, l := range pl {
			if len(l) < rowBytes {
				return planar.Range("open", "plane %d, row %d: %d bytes, need %d", pi, y, len(l), rowBytes)
			}
		}
		s.rasters[pi] = lineRaster(pl, s.width*p.Depth)
		if !isContiguous(pl, s.rasters[pi], rowBytes) {
			s.contiguous = false
		}
	}

	planar.Logger().Debug("open planar surface",
		"width", s.width, "height", s.height, "depth", s.depth,
		"planes", len(s.planes), "dispatch", s.kind,
		"contiguous", s.contiguous)
	return nil
}

// lineRaster derives the raster of a plane from the distance between its
// first two rows.  With fewer than two rows, or with rows which are not in
// ascending memory order, the standard raster for a row of the given
// number of bits is used.
func lineRaster(lines [][]byte, bits int) int {
	if len(lines) > 1 && cap(lines[0]) > 0 && cap(lines[1]) > 0 {
		d := int(addr(lines[1]) - addr(lines[0]))
		if d >= (bits+7)>>3 && d <= cap(lines[0]) {
			return d
		}
	}
	return bitmapRaster(bits)
}

// isContiguous reports whether row y of the plane starts exactly y*raster
// bytes after row 0, inside the same allocation.
func isContiguous(lines [][]byte, raster, rowBytes int) bool {
	if len(lines) == 0 {
		return true
	}
	if cap(lines[0]) < (len(lines)-1)*raster+rowBytes {
		return false
	}
	base := addr(lines[0])
	for y, l := range lines {
		if addr(l) != base+uintptr(y*raster) {
			return false
		}
	}
	return true
}

func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int { return s.height }

// Depth returns the number of bits in a packed color index.
func (s *Surface) Depth() int { return s.depth }

// NumPlanes returns the number of planes.
func (s *Surface) NumPlanes() int { return len(s.planes) }

// NumComponents returns the number of color components, which equals the
// number of planes.
func (s *Surface) NumComponents() int { return len(s.planes) }

// Planes returns the plane layout.
func (s *Surface) Planes() []PlaneDesc { return s.planes }

// IsNativePlanar reports whether the surface stores its data in planes.
func (s *Surface) IsNativePlanar() bool {
	return len(s.planes) > 0
}

// IsStdCMYK1Bit reports whether the surface has the standard CMYK layout
// with one bit per plane at shifts 3, 2, 1, 0.
func (s *Surface) IsStdCMYK1Bit() bool {
	return s.kind == layoutCMYK1Bit
}

// MustHalftone reports whether the planes are too shallow to represent
// continuous tone colors.
func (s *Surface) MustHalftone() bool {
	for _, p := range s.planes {
		if p.Depth < 8 {
			return true
		}
	}
	return false
}

// ColorModel returns the color model of the surface.
func (s *Surface) ColorModel() ColorModel {
	if s.model != ModelDefault {
		return s.model
	}
	switch len(s.planes) {
	case 1:
		return ModelGray
	case 3:
		return ModelRGB
	case 4:
		return ModelCMYK
	default:
		return ModelDeviceN
	}
}

// PlaneView returns a view of a single plane.
func (s *Surface) PlaneView(plane int) (View, error) {
	if plane < 0 || plane >= len(s.planes) {
		return View{}, planar.Range("plane_view", "plane %d of %d", plane, len(s.planes))
	}
	return s.planeView(plane), nil
}

func (s *Surface) planeView(pi int) View {
	return View{
		Width:  s.width,
		Height: s.height,
		Depth:  s.planes[pi].Depth,
		Raster: s.rasters[pi],
		Lines:  s.lines[pi*s.height : (pi+1)*s.height],
	}
}

// EncodeColor packs one value per plane into a color index.  Each value is
// truncated to the depth of its plane.  If the number of values does not
// match the number of planes, [planar.NoColorIndex] is returned.
func (s *Surface) EncodeColor(cv []planar.ColorValue) planar.ColorIndex {
	if len(cv) != len(s.planes) {
		return planar.NoColorIndex
	}
	var c planar.ColorIndex
	for i, p := range s.planes {
		c |= planar.ColorIndex(cv[i]>>(16-p.Depth)) << p.Shift
	}
	return c
}

// DecodeColor unpacks a color index into one value per plane.
func (s *Surface) DecodeColor(c planar.ColorIndex) []planar.ColorValue {
	cv := make([]planar.ColorValue, len(s.planes))
	s.decodeColor(c, cv)
	return cv
}

// decodeColor writes the components of c into cv, which must have one
// element per plane.
func (s *Surface) decodeColor(c planar.ColorIndex, cv []planar.ColorValue) {
	for i, p := range s.planes {
		m := depthMask(p.Depth)
		v := c >> p.Shift & m
		cv[i] = planar.ColorValue(uint64(v) * uint64(planar.MaxColorValue) / uint64(m))
	}
}
