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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/planar"
)

func TestDecodeProfile(t *testing.T) {
	for _, data := range [][]byte{icc.SRGBv2Profile, icc.SRGBv4Profile} {
		p, err := DecodeProfile(data)
		if err != nil {
			t.Fatal(err)
		}
		if p.Space != SpaceRGB || p.NumComponents() != 3 {
			t.Errorf("got %s with %d components", p.Space, p.NumComponents())
		}
		if p.IsCIE() {
			t.Error("sRGB reported as CIE space")
		}
		if p.Hash != sha256.Sum256(data) {
			t.Error("wrong profile hash")
		}
	}

	_, err := DecodeProfile(nil)
	if err == nil {
		t.Error("missing profile data accepted")
	}
}

func TestBufferDescSize(t *testing.T) {
	cases := []struct {
		desc BufferDesc
		size int
	}{
		{BufferDesc{NumChannels: 3, PixelsPerRow: 2, NumRows: 2}, 12},
		{BufferDesc{NumChannels: 3, PixelsPerRow: 2, NumRows: 2, Planar: true}, 12},
		{BufferDesc{NumChannels: 1, PixelsPerRow: 5, NumRows: 2, RowStride: 8}, 13},
		{BufferDesc{NumChannels: 4, PixelsPerRow: 3, NumRows: 1, Planar: true, PlaneStride: 16}, 51},
		{BufferDesc{NumChannels: 4, PixelsPerRow: 0, NumRows: 1}, 0},
	}
	for i, c := range cases {
		if got := c.desc.Size(); got != c.size {
			t.Errorf("%d: got size %d, want %d", i, got, c.size)
		}
	}
}

func TestIdentityRepack(t *testing.T) {
	l, err := NewLink(BuiltinProfile(SpaceRGB), BuiltinProfile(SpaceRGB), RenderingParams{})
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsIdentity() {
		t.Fatal("link between equal profiles is not the identity")
	}

	src := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 255}
	in := &BufferDesc{NumChannels: 3, PixelsPerRow: 4, NumRows: 1}
	out := &BufferDesc{NumChannels: 3, PixelsPerRow: 4, NumRows: 1, Planar: true}
	dst := make([]byte, out.Size())
	err = l.TransformBuffer(in, out, src, dst)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
	}
	if d := cmp.Diff(want, dst); d != "" {
		t.Errorf("planar output (-want +got):\n%s", d)
	}
}

func TestDeviceConversions(t *testing.T) {
	cases := []struct {
		from, to ColorSpace
		in, out  []byte
	}{
		{SpaceGray, SpaceRGB, []byte{100}, []byte{100, 100, 100}},
		{SpaceGray, SpaceCMYK, []byte{0}, []byte{0, 0, 0, 255}},
		{SpaceRGB, SpaceCMYK, []byte{255, 0, 0}, []byte{0, 255, 255, 0}},
		{SpaceRGB, SpaceGray, []byte{255, 255, 255}, []byte{255}},
		{SpaceCMYK, SpaceGray, []byte{0, 0, 0, 255}, []byte{0}},
		{SpaceCMYK, SpaceRGB, []byte{0, 255, 0, 0}, []byte{255, 0, 255}},
	}
	for _, c := range cases {
		l, err := NewLink(BuiltinProfile(c.from), BuiltinProfile(c.to), RenderingParams{})
		if err != nil {
			t.Fatal(err)
		}
		if l.IsIdentity() {
			t.Errorf("%s->%s: unexpected identity", c.from, c.to)
		}
		in := &BufferDesc{NumChannels: len(c.in), PixelsPerRow: 1, NumRows: 1}
		out := &BufferDesc{NumChannels: len(c.out), PixelsPerRow: 1, NumRows: 1}
		dst := make([]byte, len(c.out))
		err = l.TransformBuffer(in, out, c.in, dst)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(c.out, dst); d != "" {
			t.Errorf("%s->%s (-want +got):\n%s", c.from, c.to, d)
		}
	}
}

func TestLabWhite(t *testing.T) {
	lab := BuiltinProfile(SpaceLab)
	if !lab.IsCIE() {
		t.Error("Lab profile not reported as CIE space")
	}
	rgb := BuiltinProfile(SpaceRGB)

	toRGB, _ := NewLink(lab, rgb, RenderingParams{})
	toLab, _ := NewLink(rgb, lab, RenderingParams{Intent: RelativeColorimetric})

	desc := &BufferDesc{NumChannels: 3, PixelsPerRow: 1, NumRows: 1}
	out := make([]byte, 3)
	err := toRGB.TransformBuffer(desc, desc, []byte{255, 128, 128}, out)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v < 254 {
			t.Errorf("Lab white: component %d is %d", i, v)
		}
	}

	err = toLab.TransformBuffer(desc, desc, []byte{255, 255, 255}, out)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{255, 128, 128}
	for i, v := range out {
		if d := int(v) - want[i]; d < -1 || d > 1 {
			t.Errorf("RGB white: Lab component %d is %d", i, v)
		}
	}
}

func TestTransformErrors(t *testing.T) {
	l, _ := NewLink(BuiltinProfile(SpaceRGB), BuiltinProfile(SpaceCMYK), RenderingParams{})

	rgb := &BufferDesc{NumChannels: 3, PixelsPerRow: 2, NumRows: 1}
	cmyk := &BufferDesc{NumChannels: 4, PixelsPerRow: 2, NumRows: 1}
	short := &BufferDesc{NumChannels: 4, PixelsPerRow: 1, NumRows: 1}

	cases := []struct {
		in, out  *BufferDesc
		src, dst []byte
	}{
		{rgb, cmyk, make([]byte, 5), make([]byte, 8)},
		{rgb, cmyk, make([]byte, 6), make([]byte, 7)},
		{cmyk, cmyk, make([]byte, 8), make([]byte, 8)},
		{rgb, rgb, make([]byte, 6), make([]byte, 6)},
		{rgb, short, make([]byte, 6), make([]byte, 4)},
	}
	for i, c := range cases {
		err := l.TransformBuffer(c.in, c.out, c.src, c.dst)
		if !errors.Is(err, planar.ErrRange) {
			t.Errorf("%d: got %v, want range error", i, err)
		}
	}

	_, err := NewLink(nil, BuiltinProfile(SpaceRGB), RenderingParams{})
	if !errors.Is(err, planar.ErrPrecondition) {
		t.Errorf("missing profile: got %v", err)
	}
}

func TestManager(t *testing.T) {
	m, err := NewManager(nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.DefaultFor(3) != m.DefaultRGB || m.Default(SpaceRGB).Space != SpaceRGB {
		t.Error("wrong RGB default")
	}
	if m.DefaultFor(2) != nil {
		t.Error("unexpected default for 2 components")
	}

	_, err = m.Link(m.DefaultGray, RenderingParams{})
	if !errors.Is(err, planar.ErrPrecondition) {
		t.Errorf("no device profile: got %v", err)
	}

	m.Device = BuiltinProfile(SpaceCMYK)
	l1, err := m.Link(m.DefaultRGB, RenderingParams{})
	if err != nil {
		t.Fatal(err)
	}
	l2, _ := m.Link(m.DefaultRGB, RenderingParams{})
	l3, _ := m.Link(m.DefaultRGB, RenderingParams{Intent: Saturation})
	if l1 != l2 {
		t.Error("link not cached")
	}
	if l1 == l3 {
		t.Error("rendering intent ignored in link cache")
	}

	l4, _ := m.Link(m.DefaultCMYK, RenderingParams{})
	if !l4.IsIdentity() {
		t.Error("default CMYK to built-in CMYK device is not the identity")
	}
}
