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
	"log/slog"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/planar"
)

// Manager keeps track of the default profiles, the device profile and the
// transforms which have been created so far.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	DefaultGray *Profile
	DefaultRGB  *Profile
	DefaultCMYK *Profile
	DefaultLab  *Profile

	// Device is the profile of the output device.  Transforms can only be
	// created once this is set.
	Device *Profile

	links map[linkKey]*Link
}

type linkKey struct {
	src, dst [sha256.Size]byte
	params   RenderingParams
}

// NewManager returns a manager with the default profiles set up.  The RGB
// default is sRGB; the other defaults are built-in profiles.  The device
// profile may be nil and set later.
func NewManager(device *Profile) (*Manager, error) {
	srgb, err := DecodeProfile(icc.SRGBv4Profile)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		DefaultGray: BuiltinProfile(SpaceGray),
		DefaultRGB:  srgb,
		DefaultCMYK: BuiltinProfile(SpaceCMYK),
		DefaultLab:  BuiltinProfile(SpaceLab),
		Device:      device,
		links:       make(map[linkKey]*Link),
	}
	return m, nil
}

// Default returns the default profile for the given color space.
func (m *Manager) Default(space ColorSpace) *Profile {
	switch space {
	case SpaceGray:
		return m.DefaultGray
	case SpaceRGB:
		return m.DefaultRGB
	case SpaceCMYK:
		return m.DefaultCMYK
	case SpaceLab:
		return m.DefaultLab
	default:
		return nil
	}
}

// DefaultFor returns the default profile for images with n color
// components, or nil if there is none.
func (m *Manager) DefaultFor(n int) *Profile {
	switch n {
	case 1:
		return m.DefaultGray
	case 3:
		return m.DefaultRGB
	case 4:
		return m.DefaultCMYK
	default:
		return nil
	}
}

// Link returns a transform from src to the device profile.  Transforms are
// cached, keyed by the profile hashes and the rendering parameters.
func (m *Manager) Link(src *Profile, params RenderingParams) (*Link, error) {
	const op = "cms.Link"
	if m.Device == nil {
		return nil, &planar.PreconditionError{Op: op, Msg: "no device profile"}
	}
	if src == nil {
		return nil, &planar.PreconditionError{Op: op, Msg: "missing source profile"}
	}

	key := linkKey{src: src.Hash, dst: m.Device.Hash, params: params}
	if l, ok := m.links[key]; ok {
		return l, nil
	}
	l, err := NewLink(src, m.Device, params)
	if err != nil {
		return nil, err
	}
	m.links[key] = l

	planar.Logger().Debug("new color link",
		slog.String("src", src.Space.String()),
		slog.String("dst", m.Device.Space.String()),
		slog.String("intent", params.Intent.String()),
		slog.Bool("identity", l.identity))
	return l, nil
}
