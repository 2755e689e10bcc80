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
	"seehuhn.de/go/planar/internal/colconv"
	"seehuhn.de/go/planar/internal/sample"
)

// GetBitsOptions describes the formats a caller of
// [Surface.GetBitsRectangle] can accept.
type GetBitsOptions uint32

// These are the options for [Surface.GetBitsRectangle].
const (
	ColorsNative GetBitsOptions = 1 << iota
	ColorsGray
	ColorsRGB
	ColorsCMYK
	AlphaNone
	Depth8
	PackingChunky
	PackingPlanar
	SelectPlanes
	ReturnCopy
	ReturnPointer
	OffsetSpecified
	RasterSpecified
)

// supportedGetBits lists the options understood by a planar surface.
const supportedGetBits = ColorsNative | ColorsGray | ColorsRGB | ColorsCMYK |
	AlphaNone | Depth8 | PackingChunky | PackingPlanar | SelectPlanes |
	ReturnCopy | ReturnPointer | OffsetSpecified | RasterSpecified

func (o GetBitsOptions) has(want GetBitsOptions) bool {
	return o&want == want
}

// GetBitsParams holds the arguments and results of
// [Surface.GetBitsRectangle].
type GetBitsParams struct {
	Options GetBitsOptions

	// Data holds the destination buffers.  For chunky output only Data[0]
	// is used.  For planar output there is one entry per plane; with
	// SelectPlanes, nil entries mark planes which are not wanted.  If
	// ReturnPointer is honoured, the entries are replaced by slices of the
	// surface storage.
	Data [][]byte

	// XOffset is the pixel offset in each destination row, used if
	// OffsetSpecified is set.
	XOffset int

	// Raster is the distance between destination rows in bytes, used if
	// RasterSpecified is set.  When pointers are returned, Raster is set
	// to the raster of the surface storage.
	Raster int
}

// getBitsBufBytes bounds the buffer used for color conversion.  It must
// hold at least one pixel of MaxComponents 16-bit values.
const getBitsBufBytes = max(800, planar.MaxComponents*2)

// GetBitsRectangle reads back the pixels of a rectangle.  The formats
// tried, in order, are: pointers into the surface storage, a single
// selected plane, native chunky pixels and finally chunky 8-bit gray,
// RGB or CMYK.
//
// If p.Options is zero, the supported options are stored in p.Options and
// a [planar.RangeError] is returned.
func (s *Surface) GetBitsRectangle(x, y, w, h int, p *GetBitsParams) error {
	const op = "get_bits_rectangle"
	if p.Options == 0 {
		p.Options = supportedGetBits
		return planar.Range(op, "no options given")
	}
	if w < 0 || h < 0 {
		return planar.Range(op, "negative size %dx%d", w, h)
	}
	if w == 0 || h == 0 {
		return nil
	}
	if x < 0 || w > s.width-x || y < 0 || h > s.height-y {
		return planar.Range(op, "rectangle %d,%d+%dx%d outside %dx%d", x, y, w, h, s.width, s.height)
	}
	if err := s.checkOpen(op); err != nil {
		return err
	}

	if s.returnPointers(x, y, p) {
		return nil
	}

	options := p.Options
	if options.has(PackingPlanar | SelectPlanes) {
		if plane, ok := singlePlane(p.Data, len(s.planes)); ok {
			depth := s.planes[plane].Depth
			offset := 0
			if options.has(OffsetSpecified) {
				offset = p.XOffset
			}
			raster := bitmapRaster((offset + w) * depth)
			if options.has(RasterSpecified) {
				raster = p.Raster
			}
			return ForBits(depth).GetBits(s.planeView(plane), x, y, w, h, p.Data[plane], offset, raster)
		}
	}

	if len(p.Data) == 0 || p.Data[0] == nil {
		return planar.Range(op, "no destination buffer")
	}

	if options.has(ColorsNative | AlphaNone | PackingChunky | ReturnCopy) {
		offset := 0
		if options.has(OffsetSpecified) {
			offset = p.XOffset
		}
		raster := bitmapRaster((offset + w) * s.depth)
		if options.has(RasterSpecified) {
			raster = p.Raster
		}
		s.planarToChunky(x, y, w, h, offset, raster, p.Data[0])
		return nil
	}

	var destBytes int
	switch {
	case options&ColorsRGB != 0:
		destBytes = 3
	case options&ColorsCMYK != 0:
		destBytes = 4
	case options&ColorsGray != 0:
		destBytes = 1
	default:
		return planar.Range(op, "unsupported options 0x%x", uint32(options))
	}
	if s.ColorModel() == ModelDeviceN {
		return planar.Range(op, "cannot convert %d DeviceN components", len(s.planes))
	}
	return s.getBitsConverted(x, y, w, h, p, destBytes)
}

// returnPointers tries to satisfy a request by pointing into the surface
// storage.
func (s *Surface) returnPointers(x, y int, p *GetBitsParams) bool {
	if !p.Options.has(ReturnPointer|PackingPlanar|ColorsNative) || !s.contiguous {
		return false
	}
	raster := s.rasters[0]
	for pi, pl := range s.planes {
		if s.rasters[pi] != raster || x*pl.Depth&7 != 0 {
			return false
		}
	}
	if p.Options.has(RasterSpecified) && p.Raster != raster {
		return false
	}

	if len(p.Data) < len(s.planes) {
		p.Data = append(p.Data, make([][]byte, len(s.planes)-len(p.Data))...)
	}
	selected := p.Options.has(SelectPlanes)
	for pi, pl := range s.planes {
		if selected && p.Data[pi] == nil {
			continue
		}
		first := s.lines[pi*s.height+y]
		n := (s.height-1-y)*raster + (s.width*pl.Depth+7)>>3
		p.Data[pi] = first[x*pl.Depth>>3 : n]
	}
	p.Raster = raster
	p.XOffset = 0
	p.Options = ReturnPointer | PackingPlanar | ColorsNative | AlphaNone | RasterSpecified
	return true
}

// singlePlane checks whether exactly one entry of data is non-nil.
func singlePlane(data [][]byte, numPlanes int) (int, bool) {
	plane := -1
	for pi := range min(len(data), numPlanes) {
		if data[pi] == nil {
			continue
		}
		if plane >= 0 {
			return 0, false
		}
		plane = pi
	}
	return plane, plane >= 0
}

// getBitsConverted converts chunks of native pixels into 8-bit gray, RGB
// or CMYK, staged through a bounded buffer.
func (s *Surface) getBitsConverted(x, y, w, h int, p *GetBitsParams, destBytes int) error {
	buf, err := s.arena.Bytes("get_bits_rectangle", getBitsBufBytes)
	if err != nil {
		return err
	}
	defer s.arena.Release(buf)

	offset := 0
	if p.Options.has(OffsetSpecified) {
		offset = p.XOffset
	}
	draster := (offset + w) * destBytes
	if p.Options.has(RasterSpecified) {
		draster = p.Raster
	}

	var br, bw, bh int
	if raster := bitmapRaster(s.depth * s.width); raster > getBitsBufBytes {
		br, bw, bh = getBitsBufBytes, getBitsBufBytes*8/s.depth, 1
	} else {
		br, bw, bh = raster, w, getBitsBufBytes/raster
	}

	model := s.ColorModel()
	out := p.Data[0]
	n := len(s.planes)
	var cv [planar.MaxComponents]planar.ColorValue
	var comp [planar.MaxComponents]byte
	for cy := y; cy < y+h; cy += bh {
		ch := min(bh, y+h-cy)
		for cx := x; cx < x+w; cx += bw {
			cw := min(bw, x+w-cx)
			s.planarToChunky(cx, cy, cw, ch, 0, br, buf)
			for iy := range ch {
				r := sample.NewReader(buf[iy*br:], 0, s.depth)
				pos := (cy-y+iy)*draster + (offset+cx-x)*destBytes
				for range cw {
					s.decodeColor(planar.ColorIndex(r.Next()), cv[:n])
					convertColor(out[pos:pos+destBytes], model, cv[:n], comp[:n])
					pos += destBytes
				}
			}
		}
	}
	return nil
}

// convertColor writes the 8-bit representation of a device color into
// out.  The length of out selects gray, RGB or CMYK.  The slice b, of the
// same length as cv, receives the 8-bit components.
func convertColor(out []byte, model ColorModel, cv []planar.ColorValue, b []byte) {
	for i, v := range cv {
		b[i] = byte(v >> 8)
	}
	switch model {
	case ModelGray:
		colconv.GrayTo(out, b[0])
	case ModelRGB:
		colconv.RGBTo(out, b[0], b[1], b[2])
	case ModelCMYK:
		colconv.CMYKTo(out, b[0], b[1], b[2], b[3])
	}
}

// planarToChunky interleaves the planes of a rectangle into native chunky
// pixels, written to dest starting at pixel offset of each row.
func (s *Surface) planarToChunky(x, y, w, h, offset, draster int, dest []byte) {
	n := len(s.planes)
	direct := directStep(s.planes, s.depth)
	readers := make([]*sample.Reader, n)
	for iy := y; iy < y+h; iy++ {
		drow := dest[(iy-y)*draster:]

		if (direct == -8 || direct == 8) && (n == 3 || n == 4) {
			d := drow[offset*n : (offset+w)*n]
			var src [4][]byte
			for pi := range n {
				row := s.lines[pi*s.height+iy][x : x+w]
				if direct < 0 {
					src[n-1-pi] = row // ascending shifts: last plane first
				} else {
					src[pi] = row
				}
			}
			if n == 3 {
				p0, p1, p2 := src[0], src[1], src[2]
				for i := range w {
					d[3*i] = p0[i]
					d[3*i+1] = p1[i]
					d[3*i+2] = p2[i]
				}
			} else {
				p0, p1, p2, p3 := src[0], src[1], src[2], src[3]
				for i := range w {
					d[4*i] = p0[i]
					d[4*i+1] = p1[i]
					d[4*i+2] = p2[i]
					d[4*i+3] = p3[i]
				}
			}
			continue
		}

		for pi, p := range s.planes {
			readers[pi] = sample.NewReader(s.lines[pi*s.height+iy], x, p.Depth)
		}
		wr := sample.NewWriter(drow, offset, s.depth)
		for range w {
			var c uint64
			for pi, p := range s.planes {
				c |= readers[pi].Next() << p.Shift
			}
			wr.Put(c)
		}
	}
}
