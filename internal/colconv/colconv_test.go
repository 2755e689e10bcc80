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

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabRoundTrip(t *testing.T) {
	colors := [][3]float64{
		{0, 0, 0}, {1, 1, 1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.2, 0.5, 0.7},
	}
	for _, c := range colors {
		L, A, B := RGBToLab(c[0], c[1], c[2])
		r, g, b := LabToRGB(L, A, B)
		for i, v := range []float64{r, g, b} {
			if math.Abs(v-c[i]) > 1e-2 {
				t.Errorf("%v: component %d comes back as %g", c, i, v)
			}
		}
	}
}

func TestWhiteIsNeutral(t *testing.T) {
	L, A, B := RGBToLab(1, 1, 1)
	if math.Abs(L-100) > 1e-2 || math.Abs(A) > 1e-2 || math.Abs(B) > 1e-2 {
		t.Errorf("white is %g %g %g", L, A, B)
	}
	gL, _, _ := GrayToLab(1)
	if math.Abs(gL-100) > 1e-9 {
		t.Errorf("gray 1 gives L=%g", gL)
	}
	if g := LabToGray(50); g <= 0 || g >= 1 {
		t.Errorf("L=50 gives gray %g", g)
	}
}

func TestDeviceBytes(t *testing.T) {
	cases := []struct {
		name string
		conv func(out []byte)
		n    int
		want []byte
	}{
		{"gray to rgb", func(o []byte) { GrayTo(o, 200) }, 3, []byte{200, 200, 200}},
		{"gray to cmyk", func(o []byte) { GrayTo(o, 200) }, 4, []byte{0, 0, 0, 55}},
		{"red to gray", func(o []byte) { RGBTo(o, 255, 0, 0) }, 1, []byte{77}},
		{"red to cmyk", func(o []byte) { RGBTo(o, 255, 0, 0) }, 4, []byte{0, 255, 255, 0}},
		{"cyan to rgb", func(o []byte) { CMYKTo(o, 255, 0, 0, 0) }, 3, []byte{0, 255, 255}},
		{"black to rgb", func(o []byte) { CMYKTo(o, 0, 0, 0, 255) }, 3, []byte{0, 0, 0}},
		{"black to gray", func(o []byte) { CMYKTo(o, 0, 0, 0, 255) }, 1, []byte{0}},
		{"white to gray", func(o []byte) { CMYKTo(o, 0, 0, 0, 0) }, 1, []byte{255}},
		{"gray cyan to rgb", func(o []byte) { CMYKTo(o, 128, 0, 0, 128) }, 3, []byte{63, 127, 127}},
		{"gray cyan to gray", func(o []byte) { CMYKTo(o, 128, 0, 0, 128) }, 1, []byte{108}},
		{"dark blue to cmyk", func(o []byte) { RGBTo(o, 0, 32, 128) }, 4, []byte{255, 191, 0, 127}},
		{"dark blue back to rgb", func(o []byte) { CMYKTo(o, 255, 191, 0, 127) }, 3, []byte{0, 32, 128}},
	}
	for _, c := range cases {
		out := make([]byte, c.n)
		c.conv(out)
		if d := cmp.Diff(c.want, out); d != "" {
			t.Errorf("%s (-want +got):\n%s", c.name, d)
		}
	}
}

func TestRGBToCMYK(t *testing.T) {
	c, m, y, k := RGBToCMYK(0, 0, 0)
	if c != 0 || m != 0 || y != 0 || k != 1 {
		t.Errorf("black: %g %g %g %g", c, m, y, k)
	}
	r, g, b := CMYKToRGB(RGBToCMYK(0.25, 0.5, 0.75))
	if math.Abs(r-0.25) > 1e-12 || math.Abs(g-0.5) > 1e-12 || math.Abs(b-0.75) > 1e-12 {
		t.Errorf("round trip gives %g %g %g", r, g, b)
	}
}
