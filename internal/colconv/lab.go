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

// Package colconv implements the simple device color conversions used when
// no ICC profile describes a color space.
package colconv

import (
	"math"
)

const deviceGamma = 2.2

// whitePointD65 gives the CIE 1931 XYZ coordinates of the D65 white point.
var whitePointD65 = [3]float64{0.95047, 1.0, 1.08883}

// GrayToLab converts a device gray value (0-1 range) to L*a*b*.  The a*
// and b* values are always 0.
func GrayToLab(gray float64) (L, A, B float64) {
	y := math.Pow(clamp(gray, 0, 1), deviceGamma)
	return 116*labF(y) - 16, 0, 0
}

// LabToGray converts an L* value to device gray (0-1 range).
func LabToGray(L float64) float64 {
	y := labFInv((L + 16) / 116)
	return math.Pow(clamp(y, 0, 1), 1/deviceGamma)
}

// RGBToLab converts device RGB values (0-1 range) to L*a*b*.
func RGBToLab(r, g, b float64) (L, A, B float64) {
	x, y, z := linearRGBToXYZ(
		math.Pow(clamp(r, 0, 1), deviceGamma),
		math.Pow(clamp(g, 0, 1), deviceGamma),
		math.Pow(clamp(b, 0, 1), deviceGamma))
	return xyzToLab(x, y, z)
}

// LabToRGB converts L*a*b* values to device RGB (0-1 range).
func LabToRGB(L, A, B float64) (r, g, b float64) {
	x, y, z := labToXYZ(L, A, B)
	r, g, b = xyzToLinearRGB(x, y, z)
	r = math.Pow(clamp(r, 0, 1), 1/deviceGamma)
	g = math.Pow(clamp(g, 0, 1), 1/deviceGamma)
	b = math.Pow(clamp(b, 0, 1), 1/deviceGamma)
	return r, g, b
}

// CMYKToLab converts device CMYK values (0-1 range) to L*a*b*.
func CMYKToLab(c, m, y, k float64) (L, A, B float64) {
	r, g, b := CMYKToRGB(c, m, y, k)
	return RGBToLab(r, g, b)
}

// LabToCMYK converts L*a*b* values to device CMYK (0-1 range).
func LabToCMYK(L, A, B float64) (c, m, y, k float64) {
	return RGBToCMYK(LabToRGB(L, A, B))
}

func linearRGBToXYZ(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return x, y, z
}

func xyzToLinearRGB(x, y, z float64) (r, g, b float64) {
	r = 3.2404542*x - 1.5371385*y - 0.4985314*z
	g = -0.9692660*x + 1.8760108*y + 0.0415560*z
	b = 0.0556434*x - 0.2040259*y + 1.0572252*z
	return r, g, b
}

func xyzToLab(x, y, z float64) (L, A, B float64) {
	fx := labF(x / whitePointD65[0])
	fy := labF(y / whitePointD65[1])
	fz := labF(z / whitePointD65[2])
	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

func labToXYZ(L, A, B float64) (x, y, z float64) {
	fy := (L + 16) / 116
	fx := A/500 + fy
	fz := fy - B/200
	x = labFInv(fx) * whitePointD65[0]
	y = labFInv(fy) * whitePointD65[1]
	z = labFInv(fz) * whitePointD65[2]
	return x, y, z
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
