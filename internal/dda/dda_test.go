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

package dda

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestFixedEndpoint(t *testing.T) {
	cases := []struct {
		start, total fixed.Int52_12
		n            int
	}{
		{0, 10 * One, 3},
		{One / 3, -7*One + 5, 7},
		{-One, 1, 4096},
		{100, 0, 5},
	}
	for _, c := range cases {
		d := NewFixed(c.start, c.total, c.n)
		prev := d.Q
		for range c.n {
			d.Next()
			step := d.Q - prev
			if step < c.total/fixed.Int52_12(c.n)-1 || step > c.total/fixed.Int52_12(c.n)+1 {
				t.Errorf("%v: uneven step %d", c, step)
			}
			prev = d.Q
		}
		if d.Q != c.start+c.total {
			t.Errorf("%v: end at %d, want %d", c, d.Q, c.start+c.total)
		}

		e := NewFixed(c.start, c.total, c.n)
		e.Advance(c.n)
		if e.Q != d.Q {
			t.Errorf("%v: Advance gives %d, Next gives %d", c, e.Q, d.Q)
		}
	}
}

func TestInt(t *testing.T) {
	d := NewInt(0, 5, 10)
	var got []int
	for range 10 {
		got = append(got, d.Q)
		d.Next()
	}
	if d.Q != 5 {
		t.Errorf("end at %d", d.Q)
	}
	want := []int{0, 0, 1, 1, 2, 2, 3, 3, 4, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFromFloat(t *testing.T) {
	if FromFloat(0.5) != Half {
		t.Error("0.5")
	}
	if FromFloat(-2) != -2*One {
		t.Error("-2")
	}
	if x := ToFloat(FromFloat(1.25)); x != 1.25 {
		t.Errorf("1.25 -> %g", x)
	}
}
