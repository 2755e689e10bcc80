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


package render

import (
	"math"
)

type decodeMode int

const (
	decodeNone decodeMode = iota
	decodeLookup
	decodeCompute
)

// decodeMap maps 8-bit samples of one component to decoded values.
// Samples with fewer than 8 bits are scaled up to 8 bits before they are
// decoded, so that the top four bits select the lookup table entry.
type decodeMap struct {
	mode   decodeMode
	base   float64
	factor float64
	lookup [16]float64
}

func newDecodeMap(dMin, dMax float64, bps int) decodeMap {
	if dMin == 0 && dMax == 1 {
		return decodeMap{mode: decodeNone, factor: 1.0 / 255}
	}
	if bps < 8 {
		m := decodeMap{mode: decodeLookup}
		for i := range m.lookup {
			m.lookup[i] = dMin + (dMax-dMin)*float64(i)/15
		}
		return m
	}
	return decodeMap{
		mode:   decodeCompute,
		base:   dMin,
		factor: (dMax - dMin) / 255,
	}
}

// value returns the decoded value of the sample s.
func (m *decodeMap) value(s byte) float64 {
	switch m.mode {
	case decodeLookup:
		return m.lookup[s>>4]
	case decodeCompute:
		return m.base + float64(s)*m.factor
	default:
		return float64(s) / 255
	}
}

// decodeRow decodes the chunky samples in src into dst.  The decoded
// values are scaled back to bytes.  If ranges is not nil, each value is
// first mapped from its range to the unit interval.  Results are clamped
// to 0-255.
func decodeRow(dst, src []byte, maps []decodeMap, ranges []float64) {
	spp := len(maps)
	for i, s := range src {
		k := i % spp
		m := &maps[k]
		if m.mode == decodeNone && ranges == nil {
			dst[i] = s
			continue
		}
		v := m.value(s)
		if ranges != nil {
			lo, hi := ranges[2*k], ranges[2*k+1]
			v = (v - lo) / (hi - lo)
		}
		dst[i] = clampByte(v * 255)
	}
}

func clampByte(x float64) byte {
	if !(x > 0) {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return byte(math.Round(x))
}

// maskFilter recognises transparent pixels.  A pixel is transparent if
// every sample lies in the corresponding range.  The quick test compares
// the high bits shared by both ends of each range; if the ranges consist
// of exactly the values with these high bits, the quick test is
// sufficient.
type maskFilter struct {
	ranges []byte
	mask   []byte
	test   []byte
	exact  bool
}

// newMaskFilter returns a filter for the given mask color ranges, which
// are in units of bps-bit samples.  The ranges are scaled to full bytes
// first.
func newMaskFilter(values []int, bps int) *maskFilter {
	if values == nil {
		return nil
	}
	maxVal := 1<<bps - 1
	n := len(values) / 2
	f := &maskFilter{
		ranges: make([]byte, 2*n),
		mask:   make([]byte, n),
		test:   make([]byte, n),
		exact:  true,
	}
	for i := range n {
		lo := min(max(values[2*i], 0), maxVal)
		hi := min(max(values[2*i+1], 0), maxVal)
		v0 := byte(lo * 255 / maxVal)
		v1 := byte(hi * 255 / maxVal)
		f.ranges[2*i], f.ranges[2*i+1] = v0, v1

		match := byte(0xff)
		for v0&match != v1&match {
			match <<= 1
		}
		f.mask[i] = match
		f.test[i] = v0 & match
		f.exact = f.exact && v0&^match == 0 && v1|match == 0xff
	}
	return f
}

// matches reports whether the pixel v is transparent.
func (f *maskFilter) matches(v []byte) bool {
	for i, s := range v {
		if s&f.mask[i] != f.test[i] {
			return false
		}
	}
	if f.exact {
		return true
	}
	for i, s := range v {
		if s < f.ranges[2*i] || s > f.ranges[2*i+1] {
			return false
		}
	}
	return true
}
