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

package memdev

import (
	"seehuhn.de/go/planar"
)

// View describes a single-plane, chunky pixel buffer: Height rows of Width
// pixels, each pixel Depth bits wide.  Lines[y] starts at the first byte of
// row y.  A View never owns its memory; the drawing primitives write
// through Lines.
type View struct {
	Width  int
	Height int
	Depth  int
	Raster int
	Lines  [][]byte
}

// bitmapRaster returns the number of bytes used for a row of the given
// number of bits, padded to a multiple of 8 bytes.
func bitmapRaster(bits int) int {
	return (bits + 63) >> 6 << 3
}

// fitFill clips the rectangle to the view.  It returns false if nothing is
// left.
func (v View) fitFill(x, y, w, h *int) bool {
	if *x < 0 {
		*w += *x
		*x = 0
	}
	if *y < 0 {
		*h += *y
		*y = 0
	}
	*w = min(*w, v.Width-*x)
	*h = min(*h, v.Height-*y)
	return *w > 0 && *h > 0
}

// fitCopy clips the rectangle to the view and adjusts the source position
// to match.  It returns false if nothing is left.
func (v View) fitCopy(src *[]byte, sx *int, sraster int, x, y, w, h *int) bool {
	if *x < 0 {
		*w += *x
		*sx -= *x
		*x = 0
	}
	if *y < 0 {
		*h += *y
		*src = (*src)[-*y*sraster:]
		*y = 0
	}
	*w = min(*w, v.Width-*x)
	*h = min(*h, v.Height-*y)
	return *w > 0 && *h > 0
}

// depthMask returns a mask for the low depth bits of a color index.
func depthMask(depth int) planar.ColorIndex {
	if depth >= 64 {
		return ^planar.ColorIndex(0)
	}
	return 1<<depth - 1
}

// Tile is a repeating bitmap used for filling.  A tile row of Width pixels
// is stored in Raster bytes; the rows repeat every Height rows.  Each
// repetition below the first is moved Shift pixels to the right.
type Tile struct {
	Data   []byte
	Raster int
	Width  int
	Height int
	Shift  int
}

// pos returns the tile coordinates which correspond to the device pixel
// (x, y) for the tile phase (px, py).
func (t *Tile) pos(x, y, px, py int) (tx, ty int) {
	yy := y + py
	rep := floorDiv(yy, t.Height)
	ty = yy - rep*t.Height
	tx = mod(x+px-rep*t.Shift, t.Width)
	return tx, ty
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// RopSource describes the S operand of a raster operation.  If Colors is
// nil, Data holds pixels at the depth of the destination.  Otherwise Data
// is a one bit per pixel bitmap selecting between Colors[0] and
// Colors[1]; if both colors are equal, Data is not used.
type RopSource struct {
	Data   []byte
	X      int
	Raster int
	Colors []planar.ColorIndex
}

func (s *RopSource) isConstant() bool {
	return s == nil || s.Colors != nil && s.Colors[0] == s.Colors[1]
}

// RopTexture describes the T operand of a raster operation.  If Colors is
// nil, Tile holds pixels at the depth of the destination.  Otherwise Tile
// is a one bit per pixel bitmap selecting between Colors[0] and
// Colors[1]; if both colors are equal, or if Tile is nil, the texture is
// the constant Colors[0].
type RopTexture struct {
	Tile   *Tile
	Colors []planar.ColorIndex
	PhaseX int
	PhaseY int
}

func (t *RopTexture) isConstant() bool {
	return t == nil || t.Colors != nil && (t.Tile == nil || t.Colors[0] == t.Colors[1])
}

// projectColors returns the operand colors for the plane at the given shift and
// depth.
func projectColors(colors []planar.ColorIndex, shift, depth int) []planar.ColorIndex {
	if colors == nil {
		return nil
	}
	m := depthMask(depth)
	return []planar.ColorIndex{colors[0] >> shift & m, colors[1] >> shift & m}
}

func projectColor(c planar.ColorIndex, shift int, mask planar.ColorIndex) planar.ColorIndex {
	if c == planar.NoColorIndex {
		return planar.NoColorIndex
	}
	return c >> shift & mask
}
