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


package halftone

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/planar"
)

func TestBayer(t *testing.T) {
	o, err := Bayer(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 127, 191, 63}
	if d := cmp.Diff(want, o.Thresholds); d != "" {
		t.Errorf("2×2 Bayer matrix (-want +got):\n%s", d)
	}

	for log2 := range 5 {
		o, err := Bayer(log2)
		if err != nil {
			t.Fatal(err)
		}
		n := o.Width * o.Height
		seen := make(map[byte]bool)
		for _, v := range o.Thresholds {
			if v == 255 {
				t.Errorf("size 2^%d: threshold 255 present", log2)
			}
			seen[v] = true
		}
		if n < 256 && len(seen) != n {
			t.Errorf("size 2^%d: %d distinct thresholds, want %d", log2, len(seen), n)
		}
	}

	_, err = Bayer(5)
	if !errors.Is(err, planar.ErrRange) {
		t.Errorf("Bayer(5): got %v", err)
	}
}

func TestExtremes(t *testing.T) {
	o, _ := Bayer(3)
	for y := range o.Height {
		for x := range o.Width {
			if o.Level(0, 1, x, y) != 0 {
				t.Fatalf("value 0 turns on pixel (%d,%d)", x, y)
			}
			if o.Level(255, 1, x, y) != 1 {
				t.Fatalf("value 255 leaves pixel (%d,%d) off", x, y)
			}
			if o.Level(255, 3, x, y) != 3 {
				t.Fatalf("value 255 gives level %d", o.Level(255, 3, x, y))
			}
		}
	}
}

func TestCoverage(t *testing.T) {
	// On a full cell, the number of set pixels grows with the contone value.
	o, _ := Bayer(2)
	prev := -1
	for v := range 256 {
		count := 0
		for y := range o.Height {
			for x := range o.Width {
				count += o.Level(byte(v), 1, x, y)
			}
		}
		if count < prev {
			t.Fatalf("value %d: coverage %d after %d", v, count, prev)
		}
		prev = count
	}
}

func TestRowPhase(t *testing.T) {
	o, _ := NewOrder(3, 2, []byte{1, 2, 3, 4, 5, 6})
	cases := []struct {
		x, y int
		want []byte
	}{
		{0, 0, []byte{1, 2, 3, 1, 2}},
		{1, 1, []byte{5, 6, 4, 5}},
		{-1, -1, []byte{6, 4, 5, 6}},
		{7, 2, []byte{2, 3}},
	}
	for _, c := range cases {
		got := make([]byte, len(c.want))
		o.Row(got, c.x, c.y)
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("Row(%d, %d) (-want +got):\n%s", c.x, c.y, d)
		}
		for i := range got {
			if got[i] != o.At(c.x+i, c.y) {
				t.Errorf("Row and At disagree at (%d, %d)", c.x+i, c.y)
			}
		}
	}

	_, err := NewOrder(3, 2, []byte{1, 2})
	if !errors.Is(err, planar.ErrRange) {
		t.Errorf("short threshold data: got %v", err)
	}
}

func TestThreshold(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		n := rng.IntN(40)
		bit := rng.IntN(16)
		contone := make([]byte, n)
		thresh := make([]byte, n)
		for i := range n {
			contone[i] = byte(rng.IntN(256))
			thresh[i] = byte(rng.IntN(255))
		}
		dst := make([]byte, (bit+n+7)/8+1)
		for i := range dst {
			dst[i] = byte(rng.IntN(256))
		}
		orig := append([]byte(nil), dst...)

		Threshold(dst, bit, contone, thresh)

		for pos := range 8 * len(dst) {
			got := dst[pos/8]&(0x80>>(pos%8)) != 0
			var want bool
			if i := pos - bit; i >= 0 && i < n {
				want = contone[i] > thresh[i]
			} else {
				want = orig[pos/8]&(0x80>>(pos%8)) != 0
			}
			if got != want {
				t.Fatalf("n=%d bit=%d: wrong value at bit %d", n, bit, pos)
			}
		}
	}
}

func TestTransfer(t *testing.T) {
	var id Transfer
	buf := []byte{0, 10, 255}
	id.Apply(buf)
	if d := cmp.Diff([]byte{0, 10, 255}, buf); d != "" {
		t.Errorf("identity transfer changed data:\n%s", d)
	}

	inv := NewTransfer(func(x float64) float64 { return 1 - x })
	inv.Apply(buf)
	if d := cmp.Diff([]byte{255, 245, 0}, buf); d != "" {
		t.Errorf("inverting transfer (-want +got):\n%s", d)
	}

	g := Gamma(2)
	if g.Map(0) != 0 || g.Map(255) != 255 || g.Map(128) >= 128 {
		t.Errorf("gamma 2: got %d %d %d", g.Map(0), g.Map(128), g.Map(255))
	}
	if err := Transfer(make([]byte, 10)).Check(); !errors.Is(err, planar.ErrRange) {
		t.Errorf("short transfer table: got %v", err)
	}
}
