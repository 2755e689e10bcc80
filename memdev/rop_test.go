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
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/internal/sample"
	"seehuhn.de/go/planar/rop"
)

// cmykRopReference computes the expected result of a raster operation on
// a single pixel of a 4×1-bit CMYK surface.
func cmykRopReference(op rop.Rop3, d, s, t planar.ColorIndex) planar.ColorIndex {
	fd, fs, ft := foldCMYK(d), foldCMYK(s), foldCMYK(t)
	cop := op.Complement()
	var res [3]uint64
	for i := range res {
		res[i] = cop.Eval(uint64(fd[i]), uint64(fs[i]), uint64(ft[i])) & 1
	}
	k := res[0] & res[1] & res[2]
	return planar.ColorIndex((res[0]&^k)<<3 | (res[1]&^k)<<2 | (res[2]&^k)<<1 | k)
}

func TestCMYKRop(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	const w, h = 24, 3
	const x0, rw = 3, 17

	for i := range 256 {
		op := rop.Rop3(i)
		s := openSurface(t, w, h, 4, cmyk4Layout)
		randomize(rng, s)
		before := make([][]planar.ColorIndex, h)
		for y := range before {
			before[y] = make([]planar.ColorIndex, w)
			for x := range before[y] {
				before[y][x] = pixel(s, x, y)
			}
		}

		sraster := 16
		sdata := make([]byte, sraster*h)
		for k := range sdata {
			sdata[k] = byte(rng.Uint32())
		}
		src := &RopSource{Data: sdata, X: 1, Raster: sraster}
		tcol := planar.ColorIndex(rng.IntN(16))
		tex := &RopTexture{Colors: []planar.ColorIndex{tcol, tcol}}

		if err := s.StripCopyRop(src, tex, x0, 0, rw, h, rop.LogOp(op)); err != nil {
			t.Fatal(err)
		}

		for y := range h {
			for x := range w {
				want := before[y][x]
				if x >= x0 && x < x0+rw {
					sv := planar.ColorIndex(sample.Load(sdata[y*sraster:], (1+x-x0)*4, 4))
					want = cmykRopReference(op, before[y][x], sv, tcol)
				}
				got := pixel(s, x, y)
				if got != want {
					t.Fatalf("rop 0x%02x, pixel %d,%d: %04b != %04b", i, x, y, got, want)
				}
				if x >= x0 && x < x0+rw && got&1 != 0 && got&0xe != 0 {
					t.Fatalf("rop 0x%02x, pixel %d,%d: K set together with C/M/Y", i, x, y)
				}
			}
		}
	}
}

func TestCMYKRopMonoSource(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	for _, op := range []rop.Rop3{rop.S, 0x88, 0xee, 0x66, 0xb8} {
		s := openSurface(t, 16, 2, 4, cmyk4Layout)
		randomize(rng, s)
		before := make([]planar.ColorIndex, 32)
		for k := range before {
			before[k] = pixel(s, k%16, k/16)
		}
		mono := []byte{0b10110010, 0b01100000, 0b00011111, 0b10000001}
		colors := []planar.ColorIndex{0b0100, 0b1001}
		src := &RopSource{Data: mono, X: 2, Raster: 2, Colors: colors}
		if err := s.StripCopyRop(src, nil, 1, 0, 14, 2, rop.LogOp(op)); err != nil {
			t.Fatal(err)
		}
		for k := range before {
			x, y := k%16, k/16
			want := before[k]
			if x >= 1 && x < 15 {
				sv := colors[sample.Load(mono[y*2:], 2+x-1, 1)]
				want = cmykRopReference(op, before[k], sv, 0)
			}
			if got := pixel(s, x, y); got != want {
				t.Errorf("rop 0x%02x, pixel %d,%d: %04b != %04b", op, x, y, got, want)
			}
		}
	}
}

func TestPlaneRop(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 18))
	s := openSurface(t, 9, 2, 24, descending(3, 8))
	randomize(rng, s)
	var before [2][9]planar.ColorIndex
	for y := range 2 {
		for x := range 9 {
			before[y][x] = pixel(s, x, y)
		}
	}

	const color = 0x5a0ff0
	if err := s.FillRectangleRop(0, 0, 9, 2, color, rop.LogOp(0x5a)); err != nil { // D ^ T
		t.Fatal(err)
	}
	for y := range 2 {
		for x := range 9 {
			want := (before[y][x] ^ color) & 0xffffff
			if got := pixel(s, x, y); got != want {
				t.Fatalf("pixel %d,%d: %06x != %06x", x, y, got, want)
			}
		}
	}

	// a single plane
	tex := &RopTexture{Colors: []planar.ColorIndex{0x7f, 0x7f}}
	if err := s.StripCopyRop(nil, tex, 0, 0, 9, 2, rop.ForPlane(rop.T, 1)); err != nil {
		t.Fatal(err)
	}
	for y := range 2 {
		for x := range 9 {
			want := (before[y][x]^color)&0xff00ff | 0x7f00
			if got := pixel(s, x, y); got != want {
				t.Fatalf("pixel %d,%d: %06x != %06x", x, y, got, want)
			}
		}
	}

	err := s.StripCopyRop(nil, tex, 0, 0, 9, 2, rop.ForPlane(rop.T, 3))
	if !errors.Is(err, planar.ErrRange) {
		t.Errorf("invalid plane: %v", err)
	}
}

func TestNilTextureRop(t *testing.T) {
	rng := rand.New(rand.NewPCG(19, 20))
	for _, n := range []int{1, 3} {
		s := openSurface(t, 8, 2, 8*n, descending(n, 8))
		randomize(rng, s)
		var before [2][8]planar.ColorIndex
		for y := range 2 {
			for x := range 8 {
				before[y][x] = pixel(s, x, y)
			}
		}

		// D ^ T leaves the destination unchanged when T is zero
		if err := s.StripCopyRop(nil, nil, 0, 0, 8, 2, rop.LogOp(rop.D^rop.T)); err != nil {
			t.Fatal(err)
		}
		for y := range 2 {
			for x := range 8 {
				if got := pixel(s, x, y); got != before[y][x] {
					t.Errorf("%d planes, D^T: pixel %d,%d changed from %x to %x", n, x, y, before[y][x], got)
				}
			}
		}

		if err := s.StripCopyRop(nil, nil, 0, 0, 8, 2, rop.LogOp(rop.T)); err != nil {
			t.Fatal(err)
		}
		for y := range 2 {
			for x := range 8 {
				if got := pixel(s, x, y); got != 0 {
					t.Errorf("%d planes, T: pixel %d,%d = %x, want 0", n, x, y, got)
				}
			}
		}
	}
}

func TestDefaultRop(t *testing.T) {
	rng := rand.New(rand.NewPCG(19, 20))
	planes := []PlaneDesc{{8, 8}, {8, 0}}
	a := openSurface(t, 12, 3, 16, planes)
	b := openSurface(t, 12, 3, 16, planes)
	randomize(rng, a)
	for i := range a.lines {
		copy(b.lines[i], a.lines[i])
	}

	sraster := 24
	sdata := make([]byte, sraster*3)
	for i := range sdata {
		sdata[i] = byte(rng.Uint32())
	}
	src := &RopSource{Data: sdata, X: 1, Raster: sraster}
	if err := a.StripCopyRop(src, nil, 2, 0, 9, 3, rop.LogOp(rop.S)); err != nil {
		t.Fatal(err)
	}
	if err := b.CopyColor(sdata, 1, sraster, 2, 0, 9, 3); err != nil {
		t.Fatal(err)
	}
	for pi := range planes {
		if d := cmp.Diff(planeBytes(b, pi), planeBytes(a, pi)); d != "" {
			t.Errorf("rop S, plane %d (-copy +rop):\n%s", pi, d)
		}
	}

	// A colored texture must be aligned to the device, not to the
	// rectangle.
	tile := &Tile{Data: []byte{1, 2, 3, 4, 5, 6}, Raster: 6, Width: 3, Height: 1}
	tex := &RopTexture{Tile: tile, PhaseX: 1}
	if err := a.StripCopyRop(nil, tex, 4, 1, 7, 2, rop.LogOp(rop.T)); err != nil {
		t.Fatal(err)
	}
	err := b.StripTileRectangle(tile, 4, 1, 7, 2, planar.NoColorIndex, planar.NoColorIndex, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for pi := range planes {
		if d := cmp.Diff(planeBytes(b, pi), planeBytes(a, pi)); d != "" {
			t.Errorf("rop T, plane %d (-tile +rop):\n%s", pi, d)
		}
	}
}

func TestFillParallelogram(t *testing.T) {
	a := openSurface(t, 20, 20, 8, []PlaneDesc{{8, 0}})
	b := openSurface(t, 20, 20, 8, []PlaneDesc{{8, 0}})

	// An axis-aligned parallelogram is a rectangle.
	one := fixed.Int52_12(1 << 12)
	err := a.FillParallelogram(2*one, 3*one, 5*one, 0, 0, 4*one, 7)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.FillRectangle(2, 3, 5, 4, 7); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(planeBytes(b, 0), planeBytes(a, 0)); d != "" {
		t.Errorf("(-rect +parallelogram):\n%s", d)
	}

	// A sheared parallelogram covers its area.
	c := openSurface(t, 20, 20, 8, []PlaneDesc{{8, 0}})
	err = c.FillParallelogram(2*one, 2*one, 8*one, 0, 4*one, 10*one, 1)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, row := range planeBytes(c, 0) {
		for _, v := range row {
			count += int(v)
		}
	}
	if count != 80 {
		t.Errorf("%d pixels painted, want 80", count)
	}
}
