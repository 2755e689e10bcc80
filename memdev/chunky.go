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
	"seehuhn.de/go/planar/internal/sample"
	"seehuhn.de/go/planar/rop"
)

// Chunky implements the drawing primitives for a single-plane buffer of
// one fixed depth.
type Chunky struct {
	depth int
}

var chunkyDepths = map[int]*Chunky{}

func init() {
	for _, d := range []int{1, 2, 4, 8, 12, 16, 24, 32, 40, 48, 56, 64} {
		chunkyDepths[d] = &Chunky{depth: d}
	}
}

// ForBits returns the primitives for pixels of the given depth, or nil if
// the depth is not supported.
func ForBits(depth int) *Chunky {
	return chunkyDepths[depth]
}

// Depth returns the pixel depth handled by c.
func (c *Chunky) Depth() int {
	return c.depth
}

// FillRectangle sets all pixels of the rectangle to color.
func (c *Chunky) FillRectangle(v View, x, y, w, h int, color planar.ColorIndex) error {
	if !v.fitFill(&x, &y, &w, &h) {
		return nil
	}
	color &= depthMask(c.depth)
	switch {
	case c.depth == 1:
		for j := y; j < y+h; j++ {
			fillBits(v.Lines[j], x, w, color != 0)
		}
	case c.depth&7 == 0:
		n := c.depth >> 3
		var pat [8]byte
		for i := range n {
			pat[i] = byte(color >> (8 * (n - 1 - i)))
		}
		for j := y; j < y+h; j++ {
			row := v.Lines[j][x*n : (x+w)*n]
			if n == 1 {
				for i := range row {
					row[i] = pat[0]
				}
				continue
			}
			for i := 0; i < len(row); i += n {
				copy(row[i:i+n], pat[:n])
			}
		}
	default:
		for j := y; j < y+h; j++ {
			wr := sample.NewWriter(v.Lines[j], x, c.depth)
			for range w {
				wr.Put(uint64(color))
			}
		}
	}
	return nil
}

// fillBits sets or clears the bits x, ..., x+w-1 of row.
func fillBits(row []byte, x, w int, set bool) {
	first := x >> 3
	last := (x + w - 1) >> 3
	lmask := byte(0xff >> (x & 7))
	rmask := byte(0xff << (7 - (x+w-1)&7))
	if first == last {
		lmask &= rmask
	}
	apply := func(i int, m byte) {
		if set {
			row[i] |= m
		} else {
			row[i] &^= m
		}
	}
	apply(first, lmask)
	if first == last {
		return
	}
	for i := first + 1; i < last; i++ {
		apply(i, 0xff)
	}
	apply(last, rmask)
}

// CopyMono paints a one bit per pixel bitmap.  Source bits 0 are painted
// with color0, bits 1 with color1.  [planar.NoColorIndex] leaves the
// corresponding pixels unchanged.
func (c *Chunky) CopyMono(v View, src []byte, sx, sraster, x, y, w, h int, color0, color1 planar.ColorIndex) error {
	if !v.fitCopy(&src, &sx, sraster, &x, &y, &w, &h) {
		return nil
	}
	for j := range h {
		srow := src[j*sraster:]
		drow := v.Lines[y+j]
		for i := range w {
			col := color0
			if sample.Load(srow, sx+i, 1) != 0 {
				col = color1
			}
			if col == planar.NoColorIndex {
				continue
			}
			sample.Store(drow, (x+i)*c.depth, c.depth, uint64(col))
		}
	}
	return nil
}

// CopyColor copies pixels of the view's depth.
func (c *Chunky) CopyColor(v View, src []byte, sx, sraster, x, y, w, h int) error {
	if !v.fitCopy(&src, &sx, sraster, &x, &y, &w, &h) {
		return nil
	}
	if c.depth&7 == 0 {
		n := c.depth >> 3
		for j := range h {
			copy(v.Lines[y+j][x*n:(x+w)*n], src[j*sraster+sx*n:])
		}
		return nil
	}
	for j := range h {
		r := sample.NewReader(src[j*sraster:], sx, c.depth)
		wr := sample.NewWriter(v.Lines[y+j], x, c.depth)
		for range w {
			wr.Put(r.Next())
		}
	}
	return nil
}

// StripTileRectangle fills a rectangle with a repeating tile.  For a one
// bit per pixel tile, color0 and color1 give the colors of the tile bits;
// if both are [planar.NoColorIndex], the tile holds pixels of the view's
// depth.  Mono tiles are painted through copyMono, so that callers can
// substitute their own primitive.
func (c *Chunky) StripTileRectangle(v View, tile *Tile, x, y, w, h int, color0, color1 planar.ColorIndex, px, py int, copyMono CopyMonoFunc) error {
	if !v.fitFill(&x, &y, &w, &h) {
		return nil
	}
	copyColor := func(src []byte, sx, sraster, x, y, w, h int) error {
		return c.CopyColor(v, src, sx, sraster, x, y, w, h)
	}
	return TileRectangle(tile, x, y, w, h, color0, color1, px, py, copyMono, copyColor)
}

// CopyMonoFunc paints a one bit per pixel bitmap, see [Chunky.CopyMono].
type CopyMonoFunc func(src []byte, sx, sraster, x, y, w, h int, color0, color1 planar.ColorIndex) error

// CopyColorFunc copies native pixels, see [Chunky.CopyColor].
type CopyColorFunc func(src []byte, sx, sraster, x, y, w, h int) error

// TileRectangle fills a rectangle with a tile by breaking it into pieces
// which do not cross the tile boundaries.  Mono tiles are painted using
// copyMono, colored tiles (both colors [planar.NoColorIndex]) using
// copyColor.
func TileRectangle(tile *Tile, x, y, w, h int, color0, color1 planar.ColorIndex, px, py int, copyMono CopyMonoFunc, copyColor CopyColorFunc) error {
	colored := color0 == planar.NoColorIndex && color1 == planar.NoColorIndex
	for j := y; j < y+h; j++ {
		tx, ty := tile.pos(x, j, px, py)
		trow := tile.Data[ty*tile.Raster:]
		for i := x; i < x+w; {
			n := min(tile.Width-tx, x+w-i)
			var err error
			if colored {
				err = copyColor(trow, tx, tile.Raster, i, j, n, 1)
			} else {
				err = copyMono(trow, tx, tile.Raster, i, j, n, 1, color0, color1)
			}
			if err != nil {
				return err
			}
			i += n
			tx = 0
		}
	}
	return nil
}

// StripCopyRop combines source, texture and destination pixels using a
// raster operation.  A nil source or texture is treated as all zeros.
func (c *Chunky) StripCopyRop(v View, src *RopSource, tex *RopTexture, x, y, w, h int, lop rop.LogOp) error {
	if src != nil && src.Data != nil {
		data, sx := src.Data, src.X
		if !v.fitCopy(&data, &sx, src.Raster, &x, &y, &w, &h) {
			return nil
		}
		s := *src
		s.Data, s.X = data, sx
		src = &s
	} else if !v.fitFill(&x, &y, &w, &h) {
		return nil
	}

	op := lop.Rop()
	mask := uint64(depthMask(c.depth))
	for j := range h {
		drow := v.Lines[y+j]
		for i := range w {
			d := sample.Load(drow, (x+i)*c.depth, c.depth)
			var s, t uint64
			if op.UsesS() {
				s = src.pixel(i, j, c.depth)
			}
			if op.UsesT() {
				t = tex.pixel(x+i, y+j, c.depth)
			}
			sample.Store(drow, (x+i)*c.depth, c.depth, op.Eval(d, s, t)&mask)
		}
	}
	return nil
}

// pixel returns the source value for pixel i of row j of the operation.
func (s *RopSource) pixel(i, j, depth int) uint64 {
	if s == nil {
		return 0
	}
	if s.Colors != nil {
		col := s.Colors[0]
		if s.Colors[0] != s.Colors[1] && sample.Load(s.Data[j*s.Raster:], s.X+i, 1) != 0 {
			col = s.Colors[1]
		}
		return uint64(col)
	}
	return sample.Load(s.Data[j*s.Raster:], (s.X+i)*depth, depth)
}

// pixel returns the texture value for the device pixel (x, y).
func (t *RopTexture) pixel(x, y, depth int) uint64 {
	if t == nil {
		return 0
	}
	if t.Colors != nil && (t.Tile == nil || t.Colors[0] == t.Colors[1]) {
		return uint64(t.Colors[0])
	}
	tx, ty := t.Tile.pos(x, y, t.PhaseX, t.PhaseY)
	row := t.Tile.Data[ty*t.Tile.Raster:]
	if t.Colors != nil {
		return uint64(t.Colors[sample.Load(row, tx, 1)])
	}
	return sample.Load(row, tx*depth, depth)
}

// GetBits copies the native pixels of a rectangle into dst, starting at
// pixel dx of each destination row.
func (c *Chunky) GetBits(v View, x, y, w, h int, dst []byte, dx, draster int) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > v.Width || y+h > v.Height {
		return planar.Range("get_bits_rectangle", "rectangle %d,%d+%dx%d outside %dx%d",
			x, y, w, h, v.Width, v.Height)
	}
	if c.depth&7 == 0 {
		n := c.depth >> 3
		for j := range h {
			copy(dst[j*draster+dx*n:], v.Lines[y+j][x*n:(x+w)*n])
		}
		return nil
	}
	for j := range h {
		r := sample.NewReader(v.Lines[y+j], x, c.depth)
		wr := sample.NewWriter(dst[j*draster:], dx, c.depth)
		for range w {
			wr.Put(r.Next())
		}
	}
	return nil
}
