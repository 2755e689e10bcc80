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
	"fmt"
)

// LogOp is a logical operation as passed to the raster operation
// primitives.  The low eight bits hold a [Rop3].  If the planar flag is
// set, the operation only applies to a single plane of a planar device and
// the plane index is stored in the bits from PlanarShift upwards.
type LogOp uint32

const (
	planarFlag  LogOp = 1 << 11
	planarShift       = 12
)

// DefaultLogOp is the logical operation used for ordinary painting.
const DefaultLogOp = LogOp(Default)

// ForPlane returns a logical operation which applies op to the given plane
// only.
func ForPlane(op Rop3, plane int) LogOp {
	return LogOp(op) | LogOp(plane)<<planarShift | planarFlag
}

// Rop returns the raster operation part of l.
func (l LogOp) Rop() Rop3 {
	return Rop3(l)
}

// Plane returns the plane selected by l.  If l is not restricted to a
// single plane, ok is false.
func (l LogOp) Plane() (plane int, ok bool) {
	if l&planarFlag == 0 {
		return 0, false
	}
	return int(l >> planarShift), true
}

// IsPlanar reports whether l is restricted to a single plane.
func (l LogOp) IsPlanar() bool {
	return l&planarFlag != 0
}

// WithoutPlane removes the plane selection from l.
func (l LogOp) WithoutPlane() LogOp {
	return l & (planarFlag - 1)
}

// UsesS reports whether l depends on the source.
func (l LogOp) UsesS() bool {
	return l.Rop().UsesS()
}

// UsesT reports whether l depends on the texture.
func (l LogOp) UsesT() bool {
	return l.Rop().UsesT()
}

// Complement replaces the raster operation part of l by its complement,
// see [Rop3.Complement].
func (l LogOp) Complement() LogOp {
	return LogOp(l.Rop().Complement()) | l&^0xff
}

func (l LogOp) String() string {
	if plane, ok := l.Plane(); ok {
		return fmt.Sprintf("rop 0x%02x (plane %d)", uint8(l), plane)
	}
	return fmt.Sprintf("rop 0x%02x", uint8(l))
}
