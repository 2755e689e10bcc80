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

// StripCopyRop combines source, texture and destination using a raster
// operation.  If lop selects a single plane (see [rop.ForPlane]), the
// source and texture hold data of that plane's depth and only that plane
// is changed.
func (s *Surface) StripCopyRop(src *RopSource, tex *RopTexture, x, y, w, h int, lop rop.LogOp) error {
	if err := s.checkOpen("strip_copy_rop"); err != nil {
		return err
	}

	if plane, ok := lop.Plane(); ok {
		if plane >= len(s.planes) {
			return planar.Range("strip_copy_rop", "plane %d of %d", plane, len(s.planes))
		}
		return s.planeStripCopyRop(src, tex, x, y, w, h, lop.WithoutPlane(), plane)
	}

	if s.kind == layoutSingle {
		return ForBits(s.planes[0].Depth).StripCopyRop(s.planeView(0), src, tex, x, y, w, h, lop)
	}

	if !lop.UsesT() || tex.isConstant() {
		n := len(s.planes)
		if (!lop.UsesS() || src != nil && src.Colors != nil && src.Colors[0] == src.Colors[1]) &&
			(n == 1 || n == 3) {
			for pi, p := range s.planes {
				var ps *RopSource
				if lop.UsesS() {
					ps = &RopSource{Colors: projectColors(src.Colors, p.Shift, p.Depth)}
				}
				var pt *RopTexture
				if lop.UsesT() && tex != nil {
					pt = &RopTexture{Colors: projectColors(tex.Colors, p.Shift, p.Depth)}
				}
				err := ForBits(p.Depth).StripCopyRop(s.planeView(pi), ps, pt, x, y, w, h, lop)
				if err != nil {
					return err
				}
			}
			return nil
		}
		if s.kind == layoutCMYK1Bit {
			return s.cmyk4StripCopyRop(src, tex, x, y, w, h, lop.Complement())
		}
	}
	return s.defaultStripCopyRop(src, tex, x, y, w, h, lop)
}

func (s *Surface) planeStripCopyRop(src *RopSource, tex *RopTexture, x, y, w, h int, lop rop.LogOp, plane int) error {
	return ForBits(s.planes[plane].Depth).StripCopyRop(s.planeView(plane), src, tex, x, y, w, h, lop)
}

// defaultStripCopyRop converts the destination rectangle to chunky
// pixels, applies the operation there and copies the result back.
func (s *Surface) defaultStripCopyRop(src *RopSource, tex *RopTexture, x, y, w, h int, lop rop.LogOp) error {
	if src != nil && src.Data != nil {
		data, sx := src.Data, src.X
		if !s.planeView(0).fitCopy(&data, &sx, src.Raster, &x, &y, &w, &h) {
			return nil
		}
		cp := *src
		cp.Data, cp.X = data, sx
		src = &cp
	} else if !s.planeView(0).fitFill(&x, &y, &w, &h) {
		return nil
	}
	planar.Logger().Debug("generic raster operation",
		"lop", lop, "planes", len(s.planes), "w", w, "h", h)

	raster := bitmapRaster(w * s.depth)
	buf, err := s.arena.Bytes("strip_copy_rop", raster*h)
	if err != nil {
		return err
	}
	defer s.arena.Release(buf)

	s.planarToChunky(x, y, w, h, 0, raster, buf)

	tmp := View{Width: w, Height: h, Depth: s.depth, Raster: raster, Lines: make([][]byte, h)}
	for j := range tmp.Lines {
		tmp.Lines[j] = buf[j*raster : (j+1)*raster]
	}
	if tex != nil {
		shifted := *tex
		shifted.PhaseX += x
		shifted.PhaseY += y
		tex = &shifted
	}
	err = (&Chunky{depth: s.depth}).StripCopyRop(tmp, src, tex, 0, 0, w, h, lop)
	if err != nil {
		return err
	}
	return s.CopyColor(buf, 0, raster, x, y, w, h)
}

// cmyk4StripCopyRop applies a raster operation to the four 1-bit planes of
// a CMYK surface at once.  A set K bit stands for full coverage in all
// three colorants: the operands are combined with K before the operation,
// and the K bit of the result is set wherever C, M and Y are all set, in
// which case the C, M and Y bits are cleared.  The operation lop must
// already be complemented for ink coverage.
func (s *Surface) cmyk4StripCopyRop(src *RopSource, tex *RopTexture, x, y, w, h int, lop rop.LogOp) error {
	if src != nil && src.Data != nil && !src.isConstant() {
		data, sx := src.Data, src.X
		if !s.planeView(0).fitCopy(&data, &sx, src.Raster, &x, &y, &w, &h) {
			return nil
		}
		cp := *src
		cp.Data, cp.X = data, sx
		src = &cp
	} else if !s.planeView(0).fitFill(&x, &y, &w, &h) {
		return nil
	}

	op := lop.Rop()
	var tcol [4]byte
	if op.UsesT() && tex != nil && tex.Colors != nil {
		tcol = foldCMYK(tex.Colors[0])
	}
	var s0, s1 [4]byte
	constS := true
	chunkyS := false
	if op.UsesS() && src != nil {
		switch {
		case src.Colors == nil:
			constS = false
			chunkyS = true
		case src.Colors[0] == src.Colors[1]:
			s0 = foldCMYK(src.Colors[0])
		default:
			constS = false
			s0 = foldCMYK(src.Colors[0])
			s1 = foldCMYK(src.Colors[1])
		}
	}

	var views [4]View
	for pi := range views {
		views[pi] = s.planeView(pi)
	}
	first := x >> 3
	last := (x + w - 1) >> 3
	for j := range h {
		var rows [4][]byte
		for pi := range rows {
			rows[pi] = views[pi].Lines[y+j]
		}
		for bi := first; bi <= last; bi++ {
			// mask holds the bits of this byte which are inside the
			// rectangle
			mask := byte(0xff)
			if bi == first {
				mask &= 0xff >> (x & 7)
			}
			if bi == last {
				mask &= 0xff << (7 - (x+w-1)&7)
			}

			sb := s0
			if !constS {
				sb = [4]byte{}
				for bit := range 8 {
					if mask&(0x80>>bit) == 0 {
						continue
					}
					i := bi*8 + bit - x
					var px [4]byte
					if chunkyS {
						px = foldCMYK(planar.ColorIndex(sample.Load(src.Data[j*src.Raster:], (src.X+i)*4, 4)))
					} else if sample.Load(src.Data[j*src.Raster:], src.X+i, 1) != 0 {
						px = s1
					} else {
						px = s0
					}
					for pi := range sb {
						sb[pi] |= px[pi] & (0x80 >> bit)
					}
				}
			}

			k := rows[3][bi]
			var res [3]byte
			for pi := range res {
				d := rows[pi][bi] | k
				res[pi] = byte(op.Eval(uint64(d), uint64(sb[pi]), uint64(tcol[pi])))
			}
			kres := res[0] & res[1] & res[2]
			for pi := range res {
				res[pi] &^= kres
				rows[pi][bi] = rows[pi][bi]&^mask | res[pi]&mask
			}
			rows[3][bi] = k&^mask | kres&mask
		}
	}
	return nil
}

// foldCMYK expands a 4-bit CMYK color to one byte per colorant, with K
// merged into C, M and Y.  The fourth byte is K alone.
func foldCMYK(c planar.ColorIndex) [4]byte {
	expand := func(bit planar.ColorIndex) byte {
		if c&bit != 0 {
			return 0xff
		}
		return 0
	}
	k := expand(1)
	return [4]byte{expand(8) | k, expand(4) | k, expand(2) | k, k}
}

// FillRectangleRop fills a rectangle with a constant texture color,
// combined with the destination using lop.  There is no source; a lop
// which uses the source sees all ones.
func (s *Surface) FillRectangleRop(x, y, w, h int, color planar.ColorIndex, lop rop.LogOp) error {
	if err := s.checkOpen("fill_rectangle_rop"); err != nil {
		return err
	}
	if lop.WithoutPlane() == rop.DefaultLogOp {
		if plane, ok := lop.Plane(); ok {
			if plane >= len(s.planes) {
				return planar.Range("fill_rectangle_rop", "plane %d of %d", plane, len(s.planes))
			}
			p := s.planes[plane]
			return ForBits(p.Depth).FillRectangle(s.planeView(plane), x, y, w, h, color)
		}
		return s.FillRectangle(x, y, w, h, color)
	}
	tex := &RopTexture{Colors: []planar.ColorIndex{color, color}}
	lop = lop&^0xff | rop.LogOp(lop.Rop().KnowS1())
	return s.StripCopyRop(nil, tex, x, y, w, h, lop)
}
