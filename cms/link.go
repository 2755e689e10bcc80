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


package cms

import (
	"math"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/internal/colconv"
)

// Link is the built-in [Transform] between two profiles.
//
// Conversions between the device spaces use the simple device formulas
// (complement for gray/CMYK, full undercolor removal for RGB to CMYK);
// conversions involving Lab go through CIE XYZ with a D65 white point.
// 8-bit Lab samples use the ICC encoding: L* is scaled to 0-255, a* and b*
// are offset by 128.
type Link struct {
	Src    *Profile
	Dst    *Profile
	Params RenderingParams

	identity bool
}

// NewLink returns a transform from src to dst.
func NewLink(src, dst *Profile, params RenderingParams) (*Link, error) {
	if src == nil || dst == nil {
		return nil, &planar.PreconditionError{Op: "cms.NewLink", Msg: "missing profile"}
	}
	l := &Link{
		Src:      src,
		Dst:      dst,
		Params:   params,
		identity: src.Hash == dst.Hash,
	}
	return l, nil
}

// IsIdentity implements the [Transform] interface.
func (l *Link) IsIdentity() bool {
	return l.identity
}

// TransformBuffer implements the [Transform] interface.
func (l *Link) TransformBuffer(in, out *BufferDesc, src, dst []byte) error {
	const op = "cms.TransformBuffer"
	if err := in.check(op, src); err != nil {
		return err
	}
	if err := out.check(op, dst); err != nil {
		return err
	}
	if in.NumChannels != l.Src.NumComponents() {
		return planar.Range(op, "%d input channels for %s profile",
			in.NumChannels, l.Src.Space)
	}
	if out.NumChannels != l.Dst.NumComponents() {
		return planar.Range(op, "%d output channels for %s profile",
			out.NumChannels, l.Dst.Space)
	}
	if in.NumRows != out.NumRows || in.PixelsPerRow != out.PixelsPerRow {
		return planar.Range(op, "buffer sizes differ (%dx%d vs. %dx%d)",
			in.PixelsPerRow, in.NumRows, out.PixelsPerRow, out.NumRows)
	}

	nIn, nOut := in.NumChannels, out.NumChannels
	var pixIn, pixOut [planar.MaxComponents]byte
	for y := range in.NumRows {
		for x := range in.PixelsPerRow {
			for c := range nIn {
				pixIn[c] = src[in.index(c, x, y)]
			}
			l.convert(pixOut[:nOut], pixIn[:nIn])
			for c := range nOut {
				dst[out.index(c, x, y)] = pixOut[c]
			}
		}
	}
	return nil
}

func (l *Link) convert(out, in []byte) {
	s, d := l.Src.Space, l.Dst.Space
	if s == d {
		copy(out, in)
		return
	}

	if s != SpaceLab && d != SpaceLab {
		switch s {
		case SpaceGray:
			colconv.GrayTo(out, in[0])
		case SpaceRGB:
			colconv.RGBTo(out, in[0], in[1], in[2])
		case SpaceCMYK:
			colconv.CMYKTo(out, in[0], in[1], in[2], in[3])
		}
		return
	}

	var L, A, B float64
	switch s {
	case SpaceLab:
		L = float64(in[0]) * 100 / 255
		A = float64(in[1]) - 128
		B = float64(in[2]) - 128
	case SpaceGray:
		L, A, B = colconv.GrayToLab(unit(in[0]))
	case SpaceRGB:
		L, A, B = colconv.RGBToLab(unit(in[0]), unit(in[1]), unit(in[2]))
	case SpaceCMYK:
		L, A, B = colconv.CMYKToLab(unit(in[0]), unit(in[1]), unit(in[2]), unit(in[3]))
	}

	switch d {
	case SpaceLab:
		out[0] = toByte(L / 100)
		out[1] = byte(math.Round(min(max(A+128, 0), 255)))
		out[2] = byte(math.Round(min(max(B+128, 0), 255)))
	case SpaceGray:
		out[0] = toByte(colconv.LabToGray(L))
	case SpaceRGB:
		r, g, b := colconv.LabToRGB(L, A, B)
		out[0], out[1], out[2] = toByte(r), toByte(g), toByte(b)
	case SpaceCMYK:
		c, m, y, k := colconv.LabToCMYK(L, A, B)
		out[0], out[1], out[2], out[3] = toByte(c), toByte(m), toByte(y), toByte(k)
	}
}

func unit(b byte) float64 {
	return float64(b) / 255
}

func toByte(x float64) byte {
	return byte(math.Round(min(max(x, 0), 1) * 255))
}
