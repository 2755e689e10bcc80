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
	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/cms"
)

// prepare converts a row of 8-bit chunky samples to the device color
// space.  If planarOut is set and the device has more than one component,
// the result holds one plane of Width bytes per component.
//
// If owned is false, out is src itself.  Otherwise out was allocated from
// the arena and the caller must release it.
func (e *Enum) prepare(src []byte, planarOut bool) (out []byte, owned bool, err error) {
	const op = "render.prepare"
	if e.link == nil {
		return nil, false, &planar.PreconditionError{Op: op, Msg: "transform not created"}
	}

	forcePlanar := planarOut && e.nOut != 1
	identity := e.link.IsIdentity()
	if identity && e.nOut != e.spp {
		return nil, false, planar.Range(op,
			"identity transform from %d to %d components", e.spp, e.nOut)
	}
	if identity && !e.needDecode && !forcePlanar {
		return src, false, nil
	}

	pixels := len(src) / e.spp
	out, err = e.arena.Bytes(op, pixels*e.nOut)
	if err != nil {
		return nil, false, err
	}

	if identity && !forcePlanar {
		decodeRow(out, src, e.maps, e.cieRange)
		return out, true, nil
	}

	in := src
	if e.needDecode {
		dec, err := e.arena.Bytes(op, len(src))
		if err != nil {
			e.arena.Release(out)
			return nil, false, err
		}
		defer e.arena.Release(dec)
		decodeRow(dec, src, e.maps, e.cieRange)
		in = dec
	}

	inDesc := &cms.BufferDesc{
		NumChannels:  e.spp,
		PixelsPerRow: pixels,
		NumRows:      1,
	}
	outDesc := &cms.BufferDesc{
		NumChannels:  e.nOut,
		PixelsPerRow: pixels,
		NumRows:      1,
		Planar:       forcePlanar,
	}
	err = e.link.TransformBuffer(inDesc, outDesc, in, out)
	if err != nil {
		e.arena.Release(out)
		return nil, false, err
	}
	return out, true, nil
}
