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
	"math"

	"seehuhn.de/go/planar"
)

// Screen holds the threshold arrays for all colorants of a device.
type Screen struct {
	Orders []*Order
}

// NewScreen returns a screen which uses the order o for all n colorants.
func NewScreen(o *Order, n int) *Screen {
	orders := make([]*Order, n)
	for i := range orders {
		orders[i] = o
	}
	return &Screen{Orders: orders}
}

// Component returns the order for colorant k.
func (s *Screen) Component(k int) *Order {
	return s.Orders[k%len(s.Orders)]
}

// Transfer is a transfer function, given as a lookup table with 256
// entries.  A nil Transfer is the identity.
type Transfer []byte

// NewTransfer tabulates the function f, which maps the unit interval into
// itself.
func NewTransfer(f func(float64) float64) Transfer {
	t := make(Transfer, 256)
	for i := range t {
		v := f(float64(i) / 255)
		t[i] = byte(math.Round(min(max(v, 0), 1) * 255))
	}
	return t
}

// Gamma returns the transfer function x ↦ x^g.
func Gamma(g float64) Transfer {
	return NewTransfer(func(x float64) float64 { return math.Pow(x, g) })
}

// Check verifies that the table has the right size.
func (t Transfer) Check() error {
	if t != nil && len(t) != 256 {
		return planar.Range("halftone.Transfer", "%d table entries", len(t))
	}
	return nil
}

// Apply maps every byte of buf through the transfer function, in place.
func (t Transfer) Apply(buf []byte) {
	if t == nil {
		return
	}
	for i, v := range buf {
		buf[i] = t[v]
	}
}

// Map returns the image of v under the transfer function.
func (t Transfer) Map(v byte) byte {
	if t == nil {
		return v
	}
	return t[v]
}
