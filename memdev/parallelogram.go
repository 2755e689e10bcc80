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
	"math"

	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/internal/dda"
)

// FillParallelogram fills the parallelogram with corners p, p+a, p+a+b
// and p+b.  A pixel is painted if its centre lies inside the
// parallelogram; centres on the left or top edge count as inside.
func (s *Surface) FillParallelogram(px, py, ax, ay, bx, by fixed.Int52_12, color planar.ColorIndex) error {
	if err := s.checkOpen("fill_parallelogram"); err != nil {
		return err
	}
	return ParallelogramSpans(px, py, ax, ay, bx, by, s.width, s.height,
		func(x, y, w int) error {
			return s.FillRectangle(x, y, w, 1, color)
		})
}

// ParallelogramSpans calls fill for every horizontal run of pixels inside
// the parallelogram with corners p, p+a, p+a+b and p+b, clipped to a
// device of the given size.  The rule for pixels on the boundary is the
// same as for [Surface.FillParallelogram].
func ParallelogramSpans(px, py, ax, ay, bx, by fixed.Int52_12, width, height int, fill func(x, y, w int) error) error {
	p := vec.Vec2{X: dda.ToFloat(px), Y: dda.ToFloat(py)}
	a := vec.Vec2{X: dda.ToFloat(ax), Y: dda.ToFloat(ay)}
	b := vec.Vec2{X: dda.ToFloat(bx), Y: dda.ToFloat(by)}
	corners := []vec.Vec2{p, p.Add(a), p.Add(a).Add(b), p.Add(b)}
	return polygonSpans(corners, width, height, fill)
}

// polygonSpans walks a convex polygon, one scan line at a time.
func polygonSpans(corners []vec.Vec2, width, height int, fill func(x, y, w int) error) error {
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		yMin = min(yMin, c.Y)
		yMax = max(yMax, c.Y)
	}
	j0 := max(int(math.Ceil(yMin-0.5)), 0)
	j1 := min(int(math.Ceil(yMax-0.5)), height)

	n := len(corners)
	for j := j0; j < j1; j++ {
		yc := float64(j) + 0.5
		xMin, xMax := math.Inf(1), math.Inf(-1)
		for k := range corners {
			c0, c1 := corners[k], corners[(k+1)%n]
			if c0.Y == c1.Y {
				continue
			}
			lo, hi := c0, c1
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			if yc < lo.Y || yc >= hi.Y {
				continue
			}
			d := hi.Sub(lo)
			x := lo.X + (yc-lo.Y)*d.X/d.Y
			xMin = min(xMin, x)
			xMax = max(xMax, x)
		}
		if xMin > xMax {
			continue
		}
		i0 := max(int(math.Ceil(xMin-0.5)), 0)
		i1 := min(int(math.Ceil(xMax-0.5)), width)
		if i1 <= i0 {
			continue
		}
		if err := fill(i0, j, i1-i0); err != nil {
			return err
		}
	}
	return nil
}
