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
	"seehuhn.de/go/planar/memdev"
	"seehuhn.de/go/planar/rop"
)

// Device is the drawing surface an image is rendered to.
type Device interface {
	Width() int
	Height() int
	NumComponents() int

	// EncodeColor packs device color values into a color index.  If the
	// color cannot be represented, [planar.NoColorIndex] is returned and
	// the corresponding pixels are not painted.
	EncodeColor(cv []planar.ColorValue) planar.ColorIndex

	FillRectangle(x, y, w, h int, color planar.ColorIndex) error
	FillParallelogram(px, py, ax, ay, bx, by fixed.Int52_12, color planar.ColorIndex) error
}

// HalftoneDevice is implemented by devices which may have planes too
// shallow to represent continuous tone colors.
type HalftoneDevice interface {
	Device

	Depth() int
	Planes() []memdev.PlaneDesc
	MustHalftone() bool
	IsNativePlanar() bool
	IsStdCMYK1Bit() bool

	StripTileRectangle(tile *memdev.Tile, x, y, w, h int, color0, color1 planar.ColorIndex, px, py int) error
	CopyPlane(src []byte, sx, sraster, x, y, w, h, plane int) error
}

// RopDevice is implemented by devices which support raster operations.
type RopDevice interface {
	FillRectangleRop(x, y, w, h int, color planar.ColorIndex, lop rop.LogOp) error
	StripCopyRop(src *memdev.RopSource, tex *memdev.RopTexture, x, y, w, h int, lop rop.LogOp) error
}

var (
	_ HalftoneDevice = (*memdev.Surface)(nil)
	_ RopDevice      = (*memdev.Surface)(nil)
)
