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


// Package render draws sampled color images onto raster devices.
//
// An [Enum] receives the image data row by row.  Each row is unpacked to
// 8-bit samples, converted to the device color space by a color
// transform, and then drawn by one of three renderers:
//
//   - The ICC renderer merges adjacent pixels of equal device color into
//     runs and paints each run as a rectangle, or as a parallelogram for
//     skewed images.
//   - The DeviceN renderer does the same, but maps pixel by pixel through
//     a color remapping function.  It is used for DeviceN images without
//     a profile and for images with mask colors.
//   - The threshold renderer resamples the converted row to device
//     resolution and screens it against the device's threshold arrays.
//     It is used for 8-bit images on halftoning devices which are either
//     monochrome or have the standard CMYK layout with one bit per
//     colorant.
package render

import (
	"fmt"

	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/cms"
	"seehuhn.de/go/planar/halftone"
	"seehuhn.de/go/planar/rop"
)

// Posture classifies the orientation of an image in device space.
type Posture int

// These are the possible image postures.
const (
	// Portrait images have their rows parallel to the device x-axis.
	Portrait Posture = iota

	// Landscape images have their rows parallel to the device y-axis.
	Landscape

	// Skewed images are neither portrait nor landscape.
	Skewed
)

func (p Posture) String() string {
	switch p {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case Skewed:
		return "skewed"
	default:
		return fmt.Sprintf("Posture(%d)", int(p))
	}
}

// PostureOf classifies the image to device matrix m.
func PostureOf(m matrix.Matrix) Posture {
	switch {
	case m[1] == 0 && m[2] == 0:
		return Portrait
	case m[0] == 0 && m[3] == 0:
		return Landscape
	default:
		return Skewed
	}
}

// RemapFunc maps the decoded components of a source pixel to device color
// values.  It is used by the DeviceN renderer.
type RemapFunc func(cc []float64, cv []planar.ColorValue) error

// Params describes an image.
type Params struct {
	// Width and Height give the size of the image in samples.
	Width  int
	Height int

	// NumComponents is the number of color components per pixel.
	NumComponents int

	// BitsPerComponent must be 1, 2, 4 or 8.
	BitsPerComponent int

	// Matrix maps image space to device space.  The sample (i, j)
	// occupies the unit square with corner (i, j) in image space.
	Matrix matrix.Matrix

	// Decode holds a minimum and maximum value per component.  If this is
	// nil, all components are decoded to the range 0 to 1.
	Decode []float64

	// Range holds a minimum and maximum value per component for source
	// spaces whose native range differs from the unit interval.  Decoded
	// values are mapped from this range to 0-1 before color conversion.
	Range []float64

	// Profile is the source color profile.  If this is nil, the default
	// profile for NumComponents is used.
	Profile *cms.Profile

	// Rendering selects the rendering intent for the color transform.
	Rendering cms.RenderingParams

	// Transform, if set, is used instead of a transform obtained from the
	// color manager.
	Transform cms.Transform

	// Remap, if set, marks the source space as DeviceN without a profile.
	// The image is then drawn by the DeviceN renderer.
	Remap RemapFunc

	// MaskColor holds a minimum and maximum sample value per component.
	// Pixels whose samples all lie in these ranges are not painted.
	MaskColor []int

	// LogOp is the raster operation used to paint the image.
	LogOp rop.LogOp

	// Transfer optionally holds one transfer function per device
	// component.
	Transfer []halftone.Transfer

	// Screen gives the threshold arrays for halftoning devices.  If this
	// is nil, an 8×8 Bayer matrix is used.
	Screen *halftone.Screen

	// FastThreshold allows the threshold renderer to be used.
	FastThreshold bool
}

func (p *Params) check() error {
	const op = "render.NewEnum"
	if p.Width <= 0 || p.Height <= 0 {
		return planar.Range(op, "invalid image size %dx%d", p.Width, p.Height)
	}
	if p.NumComponents < 1 || p.NumComponents > planar.MaxComponents {
		return planar.Range(op, "invalid number of components %d", p.NumComponents)
	}
	switch p.BitsPerComponent {
	case 1, 2, 4, 8:
	default:
		return planar.Range(op, "unsupported bits per component %d", p.BitsPerComponent)
	}
	n2 := 2 * p.NumComponents
	if p.Decode != nil && len(p.Decode) != n2 {
		return planar.Range(op, "%d decode values for %d components", len(p.Decode), p.NumComponents)
	}
	if p.Range != nil && len(p.Range) != n2 {
		return planar.Range(op, "%d range values for %d components", len(p.Range), p.NumComponents)
	}
	for i := 0; i < len(p.Range); i += 2 {
		if p.Range[i+1] <= p.Range[i] {
			return planar.Range(op, "empty range [%g, %g]", p.Range[i], p.Range[i+1])
		}
	}
	if p.MaskColor != nil && len(p.MaskColor) != n2 {
		return planar.Range(op, "%d mask color values for %d components", len(p.MaskColor), p.NumComponents)
	}
	for _, t := range p.Transfer {
		if err := t.Check(); err != nil {
			return err
		}
	}
	return nil
}

// toFixed converts a device coordinate to fixed point, rounding to the
// nearest representable value.
func toFixed(x float64) fixed.Int52_12 {
	if x < 0 {
		return -fixed.Int52_12(-x*4096 + 0.5)
	}
	return fixed.Int52_12(x*4096 + 0.5)
}

// round converts a fixed-point coordinate to the nearest pixel boundary.
func round(x fixed.Int52_12) int {
	return int((x + 1<<11) >> 12)
}
