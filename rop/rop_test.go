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

package rop

import (
	"math/bits"
	"testing"
)

func TestOperands(t *testing.T) {
	cases := []struct {
		op    Rop3
		usesD bool
		usesS bool
		usesT bool
	}{
		{Zero, false, false, false},
		{One, false, false, false},
		{D, true, false, false},
		{S, false, true, false},
		{T, false, false, true},
		{0x88, true, true, false}, // D & S
		{0x5a, true, false, true}, // D ^ T
		{0x96, true, true, true},  // D ^ S ^ T
	}
	for _, c := range cases {
		if c.op.UsesD() != c.usesD || c.op.UsesS() != c.usesS || c.op.UsesT() != c.usesT {
			t.Errorf("0x%02x: got D=%t S=%t T=%t", uint8(c.op),
				c.op.UsesD(), c.op.UsesS(), c.op.UsesT())
		}
	}
}

func TestEvalMatchesTable(t *testing.T) {
	// Eval on the canonical operand patterns reproduces the truth table.
	for i := range 256 {
		op := Rop3(i)
		got := op.Eval(uint64(D), uint64(S), uint64(T)) & 0xff
		if got != uint64(op) {
			t.Errorf("0x%02x: Eval gives 0x%02x", i, got)
		}
	}
}

func TestKnownSource(t *testing.T) {
	const d, tex = 0x0123456789abcdef, 0xfedcba9876543210
	for i := range 256 {
		op := Rop3(i)
		if op.KnowS0().UsesS() || op.KnowS1().UsesS() {
			t.Fatalf("0x%02x: fixed source still used", i)
		}
		if op.KnowS0().Eval(d, 0, tex) != op.Eval(d, 0, tex) {
			t.Errorf("0x%02x: KnowS0 differs", i)
		}
		if op.KnowS1().Eval(d, 0, tex) != op.Eval(d, ^uint64(0), tex) {
			t.Errorf("0x%02x: KnowS1 differs", i)
		}
		s := uint64(0x5555aaaa0f0ff0f0)
		if op.InvertS().Eval(d, s, tex) != op.Eval(d, ^s, tex) {
			t.Errorf("0x%02x: InvertS differs", i)
		}
		if op.KnowT1().Eval(d, s, 0) != op.Eval(d, s, ^uint64(0)) {
			t.Errorf("0x%02x: KnowT1 differs", i)
		}
	}
}

func TestComplementTable(t *testing.T) {
	want := map[Rop3]Rop3{0: 255, 1: 127, 2: 191, 3: 63, 0x10: 247, 0xff: 0}
	for in, out := range want {
		if got := in.Complement(); got != out {
			t.Errorf("Complement(%d) = %d, want %d", in, got, out)
		}
	}
	for i := range 256 {
		op := Rop3(i)
		if Rop3(^bits.Reverse8(uint8(i))) != op.Complement() {
			t.Errorf("%d: table entry does not match the formula", i)
		}
		if op.Complement().Complement() != op {
			t.Errorf("%d: Complement is not an involution", i)
		}
		// ~f(~d, ~s, ~t)
		const d, s, tex uint64 = 0x00ff00ff00ff00ff, 0x0f0f0f0f0f0f0f0f, 0x3333333333333333
		if op.Complement().Eval(d, s, tex) != ^op.Eval(^d, ^s, ^tex) {
			t.Errorf("%d: Complement does not operate on inverted values", i)
		}
	}
}

func TestLogOpPlane(t *testing.T) {
	l := ForPlane(S, 3)
	plane, ok := l.Plane()
	if !ok || plane != 3 {
		t.Errorf("Plane() = %d, %t", plane, ok)
	}
	if l.Rop() != S {
		t.Errorf("Rop() = %v", l.Rop())
	}
	if l.WithoutPlane() != LogOp(S) {
		t.Errorf("WithoutPlane() = %v", l.WithoutPlane())
	}
	if _, ok := DefaultLogOp.Plane(); ok {
		t.Error("default logical operation is planar")
	}
	if DefaultLogOp.Complement().Rop() != T.Complement() {
		t.Error("Complement lost the rop")
	}
}
