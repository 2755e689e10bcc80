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

package colconv

// CMYKToRGB converts device CMYK (0-1 range) to device RGB.
func CMYKToRGB(c, m, y, k float64) (r, g, b float64) {
	return (1 - c) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k)
}

// RGBToCMYK converts device RGB (0-1 range) to device CMYK, using full
// black generation and undercolor removal.
func RGBToCMYK(r, g, b float64) (c, m, y, k float64) {
	k = 1 - max(r, g, b)
	if k >= 1 {
		return 0, 0, 0, 1
	}
	c = clamp((1-r-k)/(1-k), 0, 1)
	m = clamp((1-g-k)/(1-k), 0, 1)
	y = clamp((1-b-k)/(1-k), 0, 1)
	return c, m, y, k
}

// RGBToGray converts device RGB (0-1 range) to device gray using the NTSC
// weights.
func RGBToGray(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// The byte versions below write a color into out, whose length selects
// the output space: 1 for gray, 3 for RGB, 4 for CMYK.  They use the same
// formulas as the float versions above.

// GrayTo converts an 8-bit gray value.
func GrayTo(out []byte, gray byte) {
	switch len(out) {
	case 1:
		out[0] = gray
	case 3:
		out[0], out[1], out[2] = gray, gray, gray
	case 4:
		out[0], out[1], out[2], out[3] = 0, 0, 0, 255-gray
	}
}

// RGBTo converts 8-bit RGB values.
func RGBTo(out []byte, r, g, b byte) {
	switch len(out) {
	case 1:
		out[0] = byte((30*int(r) + 59*int(g) + 11*int(b) + 50) / 100)
	case 3:
		out[0], out[1], out[2] = r, g, b
	case 4:
		c, m, y, k := RGBToCMYK(fromByte(r), fromByte(g), fromByte(b))
		out[0], out[1], out[2], out[3] = toByte(c), toByte(m), toByte(y), toByte(k)
	}
}

// CMYKTo converts 8-bit CMYK values.
func CMYKTo(out []byte, c, m, y, k byte) {
	switch len(out) {
	case 1:
		var rgb [3]byte
		CMYKTo(rgb[:], c, m, y, k)
		RGBTo(out, rgb[0], rgb[1], rgb[2])
	case 3:
		r, g, b := CMYKToRGB(fromByte(c), fromByte(m), fromByte(y), fromByte(k))
		out[0], out[1], out[2] = toByte(r), toByte(g), toByte(b)
	case 4:
		out[0], out[1], out[2], out[3] = c, m, y, k
	}
}

func fromByte(v byte) float64 {
	return float64(v) / 255
}

func toByte(v float64) byte {
	return byte(clamp(v, 0, 1)*255 + 0.5)
}
