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

// Package rop implements three-operand raster operations.
//
// A [Rop3] is the truth table of a boolean function of the destination D,
// the source S and the texture T.  Bit number t<<2|s<<1|d of the table
// holds the result for the inputs t, s and d.  With this convention the
// operations which just return one of the operands are [D], [S] and [T].
package rop

import "math/bits"

// Rop3 is a raster operation on destination, source and texture.
type Rop3 uint8

// Some common raster operations.
const (
	Zero Rop3 = 0x00
	One  Rop3 = 0xff
	D    Rop3 = 0xaa
	S    Rop3 = 0xcc
	T    Rop3 = 0xf0

	// Default is the operation used for painting: the texture (the current
	// color) replaces the destination.
	Default = T
)

// UsesD reports whether the result depends on the destination.
func (op Rop3) UsesD() bool {
	return (op^op>>1)&0x55 != 0
}

// UsesS reports whether the result depends on the source.
func (op Rop3) UsesS() bool {
	return (op^op>>2)&0x33 != 0
}

// UsesT reports whether the result depends on the texture.
func (op Rop3) UsesT() bool {
	return (op^op>>4)&0x0f != 0
}

// KnowS0 returns the operation obtained by fixing the source to 0.
func (op Rop3) KnowS0() Rop3 {
	return op.remap(func(i uint) uint { return i &^ 2 })
}

// KnowS1 returns the operation obtained by fixing the source to all ones.
func (op Rop3) KnowS1() Rop3 {
	return op.remap(func(i uint) uint { return i | 2 })
}

// InvertS returns the operation obtained by inverting the source.
func (op Rop3) InvertS() Rop3 {
	return op.remap(func(i uint) uint { return i ^ 2 })
}

// KnowT0 returns the operation obtained by fixing the texture to 0.
func (op Rop3) KnowT0() Rop3 {
	return op.remap(func(i uint) uint { return i &^ 4 })
}

// KnowT1 returns the operation obtained by fixing the texture to all ones.
func (op Rop3) KnowT1() Rop3 {
	return op.remap(func(i uint) uint { return i | 4 })
}

func (op Rop3) remap(src func(uint) uint) Rop3 {
	var res Rop3
	for i := range uint(8) {
		res |= (op >> src(i) & 1) << i
	}
	return res
}

// Eval applies the operation bitwise to d, s and t.
func (op Rop3) Eval(d, s, t uint64) uint64 {
	switch op {
	case D:
		return d
	case S:
		return s
	case T:
		return t
	case Zero:
		return 0
	case One:
		return ^uint64(0)
	}

	var res uint64
	for i := range uint(8) {
		if op>>i&1 == 0 {
			continue
		}
		term := ^uint64(0)
		if i&4 != 0 {
			term &= t
		} else {
			term &^= t
		}
		if i&2 != 0 {
			term &= s
		} else {
			term &^= s
		}
		if i&1 != 0 {
			term &= d
		} else {
			term &^= d
		}
		res |= term
	}
	return res
}

// Complement returns the operation which gives the same results when all
// operands and the result are stored inverted.  This converts operations
// on additive colors into operations on ink coverage.
func (op Rop3) Complement() Rop3 {
	return complementTable[op]
}

var complementTable = func() [256]Rop3 {
	var tab [256]Rop3
	for i := range tab {
		tab[i] = Rop3(^bits.Reverse8(uint8(i)))
	}
	return tab
}()
