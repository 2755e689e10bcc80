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

// Package planar holds the types shared by the planar raster device and the
// color image rendering pipeline.
//
// The storage side lives in package [seehuhn.de/go/planar/memdev]: a
// [memdev.Surface] keeps one scan-line addressable buffer per color plane
// and implements the usual device primitives (fill, copy mono, copy color,
// tiling, raster operations, readback) by dispatching each call to a
// per-depth chunky implementation, one plane at a time.
//
// The imaging side lives in package [seehuhn.de/go/planar/render]: image
// samples are decoded, pushed through a color transform from package
// [seehuhn.de/go/planar/cms], and either merged into runs of equal device
// color which are painted as rectangles or parallelograms, or resampled and
// thresholded against a dither order from package
// [seehuhn.de/go/planar/halftone].
//
// Logging is disabled by default; use [SetLogger] to enable it.
package planar
