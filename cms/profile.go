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


package cms

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"seehuhn.de/go/icc"
)

// ColorSpace is the data color space of a profile.
type ColorSpace int

// These are the color spaces supported by this package.
const (
	SpaceGray ColorSpace = iota + 1
	SpaceRGB
	SpaceCMYK
	SpaceLab
)

func (s ColorSpace) String() string {
	switch s {
	case SpaceGray:
		return "Gray"
	case SpaceRGB:
		return "RGB"
	case SpaceCMYK:
		return "CMYK"
	case SpaceLab:
		return "Lab"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(s))
	}
}

// NumComponents returns the number of color components of s.
func (s ColorSpace) NumComponents() int {
	switch s {
	case SpaceGray:
		return 1
	case SpaceRGB, SpaceLab:
		return 3
	case SpaceCMYK:
		return 4
	default:
		return 0
	}
}

// Profile describes a color space.
//
// Two profiles with the same Hash describe the same color space.  A
// transform between two such profiles is the identity.
type Profile struct {
	Space ColorSpace
	Hash  [sha256.Size]byte

	// Ranges gives the minimum and maximum value for each component,
	// in the native units of the color space.
	Ranges []float64

	// Data holds the ICC profile data.  This is nil for built-in profiles.
	Data []byte
}

// DecodeProfile reads the header of an ICC profile.
func DecodeProfile(data []byte) (*Profile, error) {
	if len(data) == 0 {
		return nil, errors.New("cms: missing profile data")
	}
	p, err := icc.Decode(data)
	if err != nil {
		return nil, err
	}

	var space ColorSpace
	switch p.ColorSpace {
	case icc.GraySpace:
		space = SpaceGray
	case icc.RGBSpace:
		space = SpaceRGB
	case icc.CMYKSpace:
		space = SpaceCMYK
	case icc.CIELabSpace:
		space = SpaceLab
	default:
		return nil, fmt.Errorf("cms: unsupported profile color space %v", p.ColorSpace)
	}
	if n := p.ColorSpace.NumComponents(); n != space.NumComponents() {
		return nil, fmt.Errorf("cms: invalid number of components %d", n)
	}

	res := &Profile{
		Space:  space,
		Hash:   sha256.Sum256(data),
		Ranges: defaultRanges(space),
		Data:   data,
	}
	return res, nil
}

// BuiltinProfile returns a profile for the given color space which is
// not backed by ICC data.  Conversions to and from built-in profiles use
// simple device formulas.
func BuiltinProfile(space ColorSpace) *Profile {
	if space.NumComponents() == 0 {
		return nil
	}
	return &Profile{
		Space:  space,
		Hash:   sha256.Sum256([]byte("builtin " + space.String())),
		Ranges: defaultRanges(space),
	}
}

// NumComponents returns the number of color components of the profile.
func (p *Profile) NumComponents() int {
	return p.Space.NumComponents()
}

// IsCIE reports whether the component ranges of the profile differ from
// the unit interval.  Image samples in such a space need to be rescaled
// before they are passed to a transform.
func (p *Profile) IsCIE() bool {
	for i := 0; i < len(p.Ranges); i += 2 {
		if p.Ranges[i] != 0 || p.Ranges[i+1] != 1 {
			return true
		}
	}
	return false
}

func defaultRanges(space ColorSpace) []float64 {
	if space == SpaceLab {
		return []float64{0, 100, -128, 127, -128, 127}
	}
	n := space.NumComponents()
	ranges := make([]float64, 2*n)
	for i := range n {
		ranges[2*i+1] = 1
	}
	return ranges
}
