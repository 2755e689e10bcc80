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
	"golang.org/x/exp/slices"

	"seehuhn.de/go/planar"
)

// PlaneDesc describes where the bits of one plane sit in a packed color
// index.
type PlaneDesc struct {
	Depth int
	Shift int
}

// Mask returns the bits of a color index occupied by the plane.
func (p PlaneDesc) Mask() planar.ColorIndex {
	return depthMask(p.Depth) << p.Shift
}

// layoutKind selects the plane dispatch variant.
type layoutKind int

const (
	layoutSingle   layoutKind = iota // one plane, no dispatch loop
	layoutGeneric                    // any number of planes
	layoutRGB24                      // 3×8 bits at shifts 16, 8, 0
	layoutCMYK1Bit                   // 4×1 bit at shifts 3, 2, 1, 0
)

func (k layoutKind) String() string {
	switch k {
	case layoutSingle:
		return "single"
	case layoutRGB24:
		return "rgb24to8"
	case layoutCMYK1Bit:
		return "cmyk4to1"
	default:
		return "generic"
	}
}

var (
	rgb24Layout = []PlaneDesc{{8, 16}, {8, 8}, {8, 0}}
	cmyk4Layout = []PlaneDesc{{1, 3}, {1, 2}, {1, 1}, {1, 0}}
)

// checkLayout validates a plane layout for a device of the given total
// depth and returns the dispatch variant to use.
func checkLayout(planes []PlaneDesc, totalDepth int) (layoutKind, error) {
	const op = "set_planes"
	if len(planes) < 1 || len(planes) > planar.MaxComponents {
		return 0, planar.Range(op, "%d planes, must be 1..%d", len(planes), planar.MaxComponents)
	}

	var used planar.ColorIndex
	sum := 0
	for i, p := range planes {
		if p.Shift < 0 || p.Depth < 1 || p.Depth > 16 || ForBits(p.Depth) == nil {
			return 0, planar.Range(op, "plane %d: unsupported depth %d, shift %d", i, p.Depth, p.Shift)
		}
		if p.Shift+p.Depth > 64 {
			return 0, planar.Range(op, "plane %d: bits %d..%d exceed the color index",
				i, p.Shift, p.Shift+p.Depth-1)
		}
		mask := p.Mask()
		if used&mask != 0 {
			return 0, planar.Range(op, "plane %d overlaps a previous plane", i)
		}
		used |= mask
		sum += p.Depth
	}
	if sum > totalDepth {
		return 0, planar.Range(op, "planes use %d bits, device depth is %d", sum, totalDepth)
	}

	switch {
	case len(planes) == 1:
		return layoutSingle, nil
	case slices.Equal(planes, rgb24Layout):
		return layoutRGB24, nil
	case slices.Equal(planes, cmyk4Layout):
		return layoutCMYK1Bit, nil
	default:
		return layoutGeneric, nil
	}
}

// uniformDepth returns the common depth of all planes, or 0 if the depths
// differ.
func uniformDepth(planes []PlaneDesc) int {
	d := planes[0].Depth
	if slices.ContainsFunc(planes, func(p PlaneDesc) bool { return p.Depth != d }) {
		return 0
	}
	return d
}

// directStep detects plane layouts where the planes have equal depth, fill
// the color index exactly and are stored in ascending or descending shift
// order.  The result is -d if plane i sits at shift i*d, +d if plane i
// sits at shift (n-1-i)*d, and 0 otherwise.
func directStep(planes []PlaneDesc, totalDepth int) int {
	d := uniformDepth(planes)
	n := len(planes)
	if d == 0 || n*d != totalDepth {
		return 0
	}
	asc, desc := true, true
	for i, p := range planes {
		asc = asc && p.Shift == i*d
		desc = desc && p.Shift == (n-1-i)*d
	}
	switch {
	case asc:
		return -d
	case desc:
		return d
	default:
		return 0
	}
}
