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

package sample

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreLoad(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, depth := range []int{1, 2, 3, 4, 5, 7, 8, 12, 16, 24, 32, 48, 64} {
		n := 37
		vals := make([]uint64, n)
		mask := ^uint64(0)
		if depth < 64 {
			mask = 1<<depth - 1
		}
		for i := range vals {
			vals[i] = rng.Uint64() & mask
		}

		for _, start := range []int{0, 1, 5} {
			buf := make([]byte, RowBytes(start+n, depth)+1)
			w := NewWriter(buf, start, depth)
			for _, v := range vals {
				w.Put(v)
			}
			got := make([]uint64, n)
			r := NewReader(buf, start, depth)
			for i := range got {
				got[i] = r.Next()
			}
			if d := cmp.Diff(vals, got); d != "" {
				t.Errorf("depth %d, start %d: (-want +got):\n%s", depth, start, d)
			}
		}
	}
}

func TestStoreKeepsNeighbours(t *testing.T) {
	buf := []byte{0xff, 0xff}
	Store(buf, 3, 6, 0)
	if d := cmp.Diff([]byte{0xe0, 0x7f}, buf); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
	Store(buf, 3, 6, 0x21)
	if d := cmp.Diff([]byte{0xf0, 0xff}, buf); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestLoadMSBFirst(t *testing.T) {
	data := []byte{0b10110100}
	want := []uint64{1, 0, 1, 1, 0, 1, 0, 0}
	for i, w := range want {
		if got := Load(data, i, 1); got != w {
			t.Errorf("bit %d: got %d, want %d", i, got, w)
		}
	}
	if got := Load(data, 0, 4); got != 0b1011 {
		t.Errorf("nibble: got %b", got)
	}
}
