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

// Package dda implements digital differential analysers: exact
// incremental position trackers which advance a start value by a total
// distance in a fixed number of equal steps.
package dda

import (
	"golang.org/x/image/math/fixed"
)

// Half and One are the fixed-point values 0.5 and 1.
const (
	Half fixed.Int52_12 = 1 << 11
	One  fixed.Int52_12 = 1 << 12
)

// FromFloat converts a float to fixed point, truncating towards zero.
func FromFloat(x float64) fixed.Int52_12 {
	return fixed.Int52_12(x * float64(One))
}

// ToFloat converts a fixed-point value to a float.
func ToFloat(x fixed.Int52_12) float64 {
	return float64(x) / float64(One)
}

// Fixed advances a fixed-point position.  After n calls to Next, Q equals
// start+total exactly.
type Fixed struct {
	Q  fixed.Int52_12
	r  int64
	n  int64
	dQ fixed.Int52_12
	dR int64
}

// NewFixed returns a DDA which moves from start by total in n steps.
// For n < 1 the DDA does not move.
func NewFixed(start, total fixed.Int52_12, n int) Fixed {
	d := Fixed{Q: start, n: int64(max(n, 1))}
	if n < 1 {
		return d
	}
	d.dQ = total / fixed.Int52_12(n)
	d.dR = int64(total % fixed.Int52_12(n))
	if d.dR < 0 {
		d.dQ--
		d.dR += d.n
	}
	return d
}

// Next advances the position by one step.
func (d *Fixed) Next() {
	d.Q += d.dQ
	d.r += d.dR
	if d.r >= d.n {
		d.r -= d.n
		d.Q++
	}
}

// Advance advances the position by k steps.
func (d *Fixed) Advance(k int) {
	if k <= 0 {
		return
	}
	d.Q += d.dQ * fixed.Int52_12(k)
	r := d.r + d.dR*int64(k)
	d.Q += fixed.Int52_12(r / d.n)
	d.r = r % d.n
}

// Point tracks a position in the plane.
type Point struct {
	X, Y Fixed
}

// NewPoint returns a DDA which moves from (x0, y0) by (dx, dy) in n steps.
func NewPoint(x0, y0, dx, dy fixed.Int52_12, n int) Point {
	return Point{X: NewFixed(x0, dx, n), Y: NewFixed(y0, dy, n)}
}

// Next advances both coordinates by one step.
func (p *Point) Next() {
	p.X.Next()
	p.Y.Next()
}

// Int advances an integer index.  After n calls to Next, Q equals
// start+total exactly.
type Int struct {
	Q  int
	r  int
	n  int
	dQ int
	dR int
}

// NewInt returns a DDA which moves from start by total in n steps.
func NewInt(start, total, n int) Int {
	d := Int{Q: start, n: max(n, 1)}
	if n < 1 {
		return d
	}
	d.dQ = total / n
	d.dR = total % n
	if d.dR < 0 {
		d.dQ--
		d.dR += n
	}
	return d
}

// Next advances the index by one step.
func (d *Int) Next() {
	d.Q += d.dQ
	d.r += d.dR
	if d.r >= d.n {
		d.r -= d.n
		d.Q++
	}
}
