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
)

// copyBufBytes bounds the scratch buffer used to assemble one plane's
// pixels in the color copy paths.
const copyBufBytes = 800

func (s *Surface) checkOpen(op string) error {
	if s.lines == nil {
		return &planar.PreconditionError{Op: op, Msg: "surface not open"}
	}
	return nil
}

// FillRectangle sets all pixels of the rectangle to color.
func (s *Surface) FillRectangle(x, y, w, h int, color planar.ColorIndex) error {
	if err := s.checkOpen("fill_rectangle"); err != nil {
		return err
	}
	if s.kind == layoutSingle {
		return ForBits(s.planes[0].Depth).FillRectangle(s.planeView(0), x, y, w, h, color)
	}
	for pi, p := range s.planes {
		c := color >> p.Shift & depthMask(p.Depth)
		err := ForBits(p.Depth).FillRectangle(s.planeView(pi), x, y, w, h, c)
		if err != nil {
			return err
		}
	}
	return nil
}

// CopyMono paints a one bit per pixel bitmap using color0 for the 0 bits
// and color1 for the 1 bits.  [planar.NoColorIndex] is transparent.
func (s *Surface) CopyMono(src []byte, sx, sraster, x, y, w, h int, color0, color1 planar.ColorIndex) error {
	if err := s.checkOpen("copy_mono"); err != nil {
		return err
	}
	if s.kind == layoutSingle {
		return ForBits(s.planes[0].Depth).CopyMono(s.planeView(0), src, sx, sraster, x, y, w, h, color0, color1)
	}
	for pi, p := range s.planes {
		m := depthMask(p.Depth)
		c0 := projectColor(color0, p.Shift, m)
		c1 := projectColor(color1, p.Shift, m)
		prims := ForBits(p.Depth)
		v := s.planeView(pi)
		var err error
		switch {
		case c0 == c1 && c0 == planar.NoColorIndex:
			// transparent in this plane
		case c0 == c1:
			err = prims.FillRectangle(v, x, y, w, h, c0)
		default:
			err = prims.CopyMono(v, src, sx, sraster, x, y, w, h, c0, c1)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CopyColor copies chunky pixels of the surface depth into the planes.
func (s *Surface) CopyColor(src []byte, sx, sraster, x, y, w, h int) error {
	if err := s.checkOpen("copy_color"); err != nil {
		return err
	}
	switch s.kind {
	case layoutSingle:
		return ForBits(s.planes[0].Depth).CopyColor(s.planeView(0), src, sx, sraster, x, y, w, h)
	case layoutRGB24:
		return s.copyColor24to8(src, sx, sraster, x, y, w, h)
	case layoutCMYK1Bit:
		return s.copyColor4to1(src, sx, sraster, x, y, w, h)
	default:
		return s.copyColorGeneric(src, sx, sraster, x, y, w, h)
	}
}

// copyColorGeneric extracts each plane's bits from the chunky source into
// a bounded buffer and copies the buffer into the plane, in chunks.
func (s *Surface) copyColorGeneric(src []byte, sx, sraster, x, y, w, h int) error {
	if !s.planeView(0).fitCopy(&src, &sx, sraster, &x, &y, &w, &h) {
		return nil
	}
	buf, err := s.arena.Bytes("copy_color", copyBufBytes)
	if err != nil {
		return err
	}
	defer s.arena.Release(buf)

	for pi, p := range s.planes {
		mask := uint64(depthMask(p.Depth))
		prims := ForBits(p.Depth)
		v := s.planeView(pi)

		// bw×bh is the chunk size which fits into the buffer, br the
		// buffer raster.
		var br, bw, bh int
		planeRaster := bitmapRaster(p.Depth * w)
		if planeRaster > copyBufBytes {
			br = copyBufBytes
			bw = copyBufBytes * 8 / p.Depth
			bh = 1
		} else {
			br = planeRaster
			bw = w
			bh = copyBufBytes / planeRaster
		}

		for cy := y; cy < y+h; cy += bh {
			ch := min(bh, y+h-cy)
			for cx := x; cx < x+w; cx += bw {
				cw := min(bw, x+w-cx)
				srcX := sx + cx - x
				clear(buf[:br*ch])
				for iy := range ch {
					r := sample.NewReader(src[(cy-y+iy)*sraster:], srcX, s.depth)
					wr := sample.NewWriter(buf[br*iy:], 0, p.Depth)
					for range cw {
						wr.Put(r.Next() >> p.Shift & mask)
					}
				}
				if p.Depth == 1 {
					err = prims.CopyMono(v, buf, 0, br, cx, cy, cw, ch, 0, 1)
				} else {
					err = prims.CopyColor(v, buf, 0, br, cx, cy, cw, ch)
				}
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// CopyPlane copies data of the plane depth into a single plane.
func (s *Surface) CopyPlane(src []byte, sx, sraster, x, y, w, h, plane int) error {
	if plane < 0 || plane >= len(s.planes) {
		return planar.Range("copy_plane", "plane %d of %d", plane, len(s.planes))
	}
	if err := s.checkOpen("copy_plane"); err != nil {
		return err
	}
	return s.copyPlane(src, sx, sraster, x, y, w, h, plane)
}

func (s *Surface) copyPlane(src []byte, sx, sraster, x, y, w, h, plane int) error {
	depth := s.planes[plane].Depth
	prims := ForBits(depth)
	v := s.planeView(plane)
	if depth == 1 {
		return prims.CopyMono(v, src, sx, sraster, x, y, w, h, 0, 1)
	}
	return prims.CopyColor(v, src, sx, sraster, x, y, w, h)
}

// CopyPlanes copies data for all planes at once.  The data for plane i
// starts at src[i*planeHeight*sraster]; all planes use the same raster.
func (s *Surface) CopyPlanes(src []byte, sx, sraster, x, y, w, h, planeHeight int) error {
	if err := s.checkOpen("copy_planes"); err != nil {
		return err
	}
	if planeHeight < h {
		return planar.Range("copy_planes", "plane height %d less than %d rows", planeHeight, h)
	}
	for pi := range s.planes {
		err := s.copyPlane(src[pi*planeHeight*sraster:], sx, sraster, x, y, w, h, pi)
		if err != nil {
			return err
		}
	}
	return nil
}

// StripTileRectangle fills a rectangle with a repeating tile.  For a mono
// tile, color0 and color1 give the colors for the tile bits.  If both
// colors are [planar.NoColorIndex], the tile holds chunky pixels of the
// surface depth.
func (s *Surface) StripTileRectangle(tile *Tile, x, y, w, h int, color0, color1 planar.ColorIndex, px, py int) error {
	if err := s.checkOpen("strip_tile_rectangle"); err != nil {
		return err
	}
	if s.kind == layoutSingle {
		v := s.planeView(0)
		prims := ForBits(s.planes[0].Depth)
		return prims.StripTileRectangle(v, tile, x, y, w, h, color0, color1, px, py,
			s.planeCopyMono(prims, v))
	}

	if color0 == planar.NoColorIndex && color1 == planar.NoColorIndex {
		// A colored tile cannot be split into planes up front.
		if !s.planeView(0).fitFill(&x, &y, &w, &h) {
			return nil
		}
		return TileRectangle(tile, x, y, w, h, color0, color1, px, py, s.CopyMono, s.CopyColor)
	}

	for pi, p := range s.planes {
		m := depthMask(p.Depth)
		c0 := projectColor(color0, p.Shift, m)
		c1 := projectColor(color1, p.Shift, m)
		prims := ForBits(p.Depth)
		v := s.planeView(pi)
		var err error
		switch {
		case c0 == c1 && c0 == planar.NoColorIndex:
			// transparent in this plane
		case c0 == c1:
			err = prims.FillRectangle(v, x, y, w, h, c0)
		default:
			err = prims.StripTileRectangle(v, tile, x, y, w, h, c0, c1, px, py, s.planeCopyMono(prims, v))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// planeCopyMono binds the mono copy of a plane for use by the tiler.
func (s *Surface) planeCopyMono(prims *Chunky, v View) CopyMonoFunc {
	return func(src []byte, sx, sraster, x, y, w, h int, c0, c1 planar.ColorIndex) error {
		return prims.CopyMono(v, src, sx, sraster, x, y, w, h, c0, c1)
	}
}
