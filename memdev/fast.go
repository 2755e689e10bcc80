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
	"seehuhn.de/go/planar/internal/sample"
)

// copyColor24to8 splits 24-bit RGB pixels into three 8-bit planes.
func (s *Surface) copyColor24to8(src []byte, sx, sraster, x, y, w, h int) error {
	if !s.planeView(0).fitCopy(&src, &sx, sraster, &x, &y, &w, &h) {
		return nil
	}
	buf, err := s.arena.Bytes("copy_color_24to8", 3*copyBufBytes)
	if err != nil {
		return err
	}
	defer s.arena.Release(buf)
	bufs := [3][]byte{
		buf[:copyBufBytes],
		buf[copyBufBytes : 2*copyBufBytes],
		buf[2*copyBufBytes:],
	}

	var br, bw, bh int
	if planeRaster := bitmapRaster(w << 3); planeRaster > copyBufBytes {
		br, bw, bh = copyBufBytes, copyBufBytes, 1
	} else {
		br, bw, bh = planeRaster, w, copyBufBytes/planeRaster
	}

	prims := ForBits(8)
	for cy := y; cy < y+h; cy += bh {
		ch := min(bh, y+h-cy)
		for cx := x; cx < x+w; cx += bw {
			cw := min(bw, x+w-cx)
			srcX := sx + cx - x
			for iy := range ch {
				sp := src[(cy-y+iy)*sraster+srcX*3:]
				r := bufs[0][br*iy : br*iy+cw]
				g := bufs[1][br*iy : br*iy+cw]
				b := bufs[2][br*iy : br*iy+cw]
				for ix := range cw {
					r[ix] = sp[3*ix]
					g[ix] = sp[3*ix+1]
					b[ix] = sp[3*ix+2]
				}
			}
			for pi := range 3 {
				err := prims.CopyColor(s.planeView(pi), bufs[pi], 0, br, cx, cy, cw, ch)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// expand4to1 maps a byte holding two 4-bit CMYK pixels to a word with one
// byte lane per plane: C in bits 24-31, M in bits 16-23, Y in bits 8-15,
// K in bits 0-7.  Within each lane, the pixel from the high nibble goes
// to bit 1 and the pixel from the low nibble to bit 0.
var expand4to1 = makeExpand4to1()

func makeExpand4to1() [256]uint32 {
	var tab [256]uint32
	for i := range tab {
		var w uint32
		for plane := range 4 {
			bit := uint(3 - plane) // C=8, M=4, Y=2, K=1 within a nibble
			lane := uint(8 * (3 - plane))
			hi := uint32(i>>4) >> bit & 1
			lo := uint32(i) >> bit & 1
			w |= (hi<<1 | lo) << lane
		}
		tab[i] = w
	}
	return tab
}

// copyColor4to1 splits 4-bit CMYK pixels into four 1-bit planes.
func (s *Surface) copyColor4to1(src []byte, sx, sraster, x, y, w, h int) error {
	if !s.planeView(0).fitCopy(&src, &sx, sraster, &x, &y, &w, &h) {
		return nil
	}
	buf, err := s.arena.Bytes("copy_color_4to1", 4*copyBufBytes)
	if err != nil {
		return err
	}
	defer s.arena.Release(buf)

	var br, bw, bh int
	if planeRaster := bitmapRaster(w); planeRaster > copyBufBytes {
		br, bw, bh = copyBufBytes, copyBufBytes*8, 1
	} else {
		br, bw, bh = planeRaster, w, copyBufBytes/planeRaster
	}

	prims := ForBits(1)
	for cy := y; cy < y+h; cy += bh {
		ch := min(bh, y+h-cy)
		for cx := x; cx < x+w; cx += bw {
			cw := min(bw, x+w-cx)
			srcX := sx + cx - x
			clear(buf)
			for iy := range ch {
				sp := src[(cy-y+iy)*sraster:]
				off := br * iy * 8 // bit offset of the row in each plane buffer
				n := 0
				i := srcX
				if i&1 != 0 {
					// misaligned start: the first pixel is a low nibble
					emit4to1(buf, off, n, 1, expand4to1[sp[i>>1]&0x0f])
					n++
					i++
				}
				for ; n+2 <= cw; n += 2 {
					emit4to1(buf, off, n, 2, expand4to1[sp[i>>1]])
					i += 2
				}
				if n < cw {
					emit4to1(buf, off, n, 1, expand4to1[sp[i>>1]&0xf0]>>1)
				}
			}
			for pi := range 4 {
				pbuf := buf[pi*copyBufBytes : (pi+1)*copyBufBytes]
				err := prims.CopyMono(s.planeView(pi), pbuf, 0, br, cx, cy, cw, ch, 0, 1)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// emit4to1 stores k pixels (1 or 2) from an expanded word at pixel
// position n of a row starting at bit off of each plane buffer.
func emit4to1(buf []byte, off, n, k int, w uint32) {
	m := uint32(1)<<k - 1
	for pi := range 4 {
		v := w >> (8 * (3 - pi)) & m
		sample.Store(buf[pi*copyBufBytes:], off+n, k, uint64(v))
	}
}
