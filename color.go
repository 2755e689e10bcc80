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

package planar

// MaxComponents is the maximal number of color components (and thus
// planes) a device can have.
const MaxComponents = 16

// ColorIndex is a packed device color.  The layout of the bits is
// determined by the device.
type ColorIndex uint64

// NoColorIndex marks the absence of a color.  When passed to a drawing
// primitive it means "transparent"; when returned from a color encoder it
// means "cannot be represented, do not paint".
const NoColorIndex ColorIndex = ^ColorIndex(0)

// ColorValue is a single device color component in the range 0 to
// MaxColorValue.
type ColorValue uint16

// MaxColorValue is the value of a fully saturated color component.
const MaxColorValue ColorValue = 0xffff

// ByteToColorValue scales an 8-bit sample to the [ColorValue] range.
func ByteToColorValue(b byte) ColorValue {
	return ColorValue(b)<<8 | ColorValue(b)
}
