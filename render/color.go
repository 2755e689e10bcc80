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
	"seehuhn.de/go/planar/internal/sample"
	"seehuhn.de/go/planar/memdev"
	"seehuhn.de/go/planar/rop"
)

type colorKind uint8

const (
	colorNone colorKind = iota
	colorPure
	colorHalftone
)

// deviceColor is the device representation of a pixel: nothing, a color
// index, or a color which must be halftoned.
type deviceColor struct {
	kind   colorKind
	index  planar.ColorIndex
	levels [planar.MaxComponents]byte
}

func (c *deviceColor) equal(other *deviceColor) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case colorPure:
		return c.index == other.index
	case colorHalftone:
		return c.levels == other.levels
	default:
		return true
	}
}

// maxTiles bounds the number of cached halftone tiles per image.
const maxTiles = 256

// setDeviceColor maps 8-bit device component values to a device color.
// The transfer functions are applied first.  On halftoning devices, colors
// which fall between the levels of a plane become halftone colors.
func (e *Enum) setDeviceColor(c *deviceColor, v []byte) {
	var levels [planar.MaxComponents]byte
	for k, x := range v {
		levels[k] = e.transferFor(k).Map(x)
	}

	if e.mustHalftone {
		for k := range v {
			if int(levels[k])*e.maxLevel[k]%255 != 0 {
				*c = deviceColor{kind: colorHalftone, levels: levels}
				return
			}
		}
	}

	var cv [planar.MaxComponents]planar.ColorValue
	for k := range v {
		cv[k] = planar.ByteToColorValue(levels[k])
	}
	index := e.dev.EncodeColor(cv[:len(v)])
	if index == planar.NoColorIndex {
		*c = deviceColor{}
		return
	}
	*c = deviceColor{kind: colorPure, index: index}
}

// halftoneTile returns a tile of device pixels which shows the halftone
// color c.  The tile is aligned with the device origin.
func (e *Enum) halftoneTile(c *deviceColor) *memdev.Tile {
	if t, ok := e.tiles[c.levels]; ok {
		return t
	}
	if len(e.tiles) >= maxTiles {
		clear(e.tiles)
	}

	w, h := 1, 1
	for k := range e.nOut {
		o := e.screen.Component(k)
		w = lcm(w, o.Width)
		h = lcm(h, o.Height)
	}
	depth := e.hdev.Depth()
	raster := sample.RowBytes(w, depth)
	data := make([]byte, raster*h)

	var cv [planar.MaxComponents]planar.ColorValue
	for y := range h {
		row := data[y*raster:]
		for x := range w {
			for k := range e.nOut {
				maxLevel := e.maxLevel[k]
				level := e.screen.Component(k).Level(c.levels[k], maxLevel, x, y)
				cv[k] = planar.ColorValue(level * int(planar.MaxColorValue) / maxLevel)
			}
			index := e.dev.EncodeColor(cv[:e.nOut])
			sample.Store(row, x*depth, depth, uint64(index))
		}
	}

	t := &memdev.Tile{Data: data, Raster: raster, Width: w, Height: h}
	e.tiles[c.levels] = t
	return t
}

// fillRect paints a rectangle with the device color c.
func (e *Enum) fillRect(x, y, w, h int, c *deviceColor) error {
	switch c.kind {
	case colorPure:
		if e.lop == rop.DefaultLogOp {
			return e.dev.FillRectangle(x, y, w, h, c.index)
		}
		return e.rdev.FillRectangleRop(x, y, w, h, c.index, e.lop)
	case colorHalftone:
		tile := e.halftoneTile(c)
		if e.lop == rop.DefaultLogOp {
			return e.hdev.StripTileRectangle(tile, x, y, w, h,
				planar.NoColorIndex, planar.NoColorIndex, 0, 0)
		}
		tex := &memdev.RopTexture{Tile: tile}
		lop := e.lop&^0xff | rop.LogOp(e.lop.Rop().KnowS1())
		return e.rdev.StripCopyRop(nil, tex, x, y, w, h, lop)
	default:
		return nil
	}
}

// fillParallelogram paints the parallelogram with corners p, p+a, p+a+b
// and p+b with the device color c.
func (e *Enum) fillParallelogram(px, py, ax, ay, bx, by fixed.Int52_12, c *deviceColor) error {
	switch {
	case c.kind == colorNone:
		return nil
	case c.kind == colorPure && e.lop == rop.DefaultLogOp:
		return e.dev.FillParallelogram(px, py, ax, ay, bx, by, c.index)
	}
	return memdev.ParallelogramSpans(px, py, ax, ay, bx, by, e.dev.Width(), e.dev.Height(),
		func(x, y, w int) error {
			return e.fillRect(x, y, w, 1, c)
		})
}

func lcm(a, b int) int {
	x, y := a, b
	for y != 0 {
		x, y = y, x%y
	}
	return a / x * b
}
