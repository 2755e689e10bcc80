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


// Package cms connects image color spaces to device color spaces.
//
// A [Transform] converts rows of 8-bit samples from one color space to
// another.  Transforms are created by a [Manager] from a source [Profile],
// the device profile and a set of [RenderingParams].  Image renderers treat
// transforms as opaque: they only ask whether a transform is the identity
// and hand it whole buffers to convert.
package cms

import (
	"strconv"

	"seehuhn.de/go/planar"
)

// RenderingIntent selects the gamut mapping strategy of a transform.
type RenderingIntent int

// These are the rendering intents defined by the ICC specification.
const (
	Perceptual RenderingIntent = iota
	RelativeColorimetric
	Saturation
	AbsoluteColorimetric
)

func (i RenderingIntent) String() string {
	switch i {
	case Perceptual:
		return "Perceptual"
	case RelativeColorimetric:
		return "RelativeColorimetric"
	case Saturation:
		return "Saturation"
	case AbsoluteColorimetric:
		return "AbsoluteColorimetric"
	default:
		return "RenderingIntent(" + strconv.Itoa(int(i)) + ")"
	}
}

// RenderingParams holds the parameters which, together with the source and
// destination profiles, identify a transform.
type RenderingParams struct {
	Intent                 RenderingIntent
	BlackPointCompensation bool
}

// Transform converts buffers of 8-bit color samples.
type Transform interface {
	// IsIdentity reports whether the transform leaves sample values
	// unchanged.  An identity transform may still be used to convert
	// between chunky and planar buffers.
	IsIdentity() bool

	// TransformBuffer converts the samples in src, laid out as described by
	// in, and writes the result to dst, laid out as described by out.  The
	// two descriptors must agree on the number of rows and pixels per row.
	TransformBuffer(in, out *BufferDesc, src, dst []byte) error
}

// BufferDesc describes the layout of a buffer of 8-bit color samples.
//
// In a chunky buffer the channels of one pixel are stored next to each
// other.  In a planar buffer each channel is stored in its own plane, and
// the planes follow each other at a distance of PlaneStride bytes.
type BufferDesc struct {
	NumChannels  int
	PixelsPerRow int
	NumRows      int
	Planar       bool

	// RowStride is the distance between the starts of two rows, in bytes.
	// Zero means that the rows are packed without gaps.
	RowStride int

	// PlaneStride is the distance between the starts of two planes of a
	// planar buffer, in bytes.  Zero means RowStride*NumRows.
	PlaneStride int
}

func (d *BufferDesc) rowStride() int {
	if d.RowStride > 0 {
		return d.RowStride
	}
	if d.Planar {
		return d.PixelsPerRow
	}
	return d.PixelsPerRow * d.NumChannels
}

func (d *BufferDesc) planeStride() int {
	if !d.Planar {
		return 1
	}
	if d.PlaneStride > 0 {
		return d.PlaneStride
	}
	return d.rowStride() * d.NumRows
}

func (d *BufferDesc) pixelStride() int {
	if d.Planar {
		return 1
	}
	return d.NumChannels
}

// Size returns the minimal length of a buffer with layout d.
func (d *BufferDesc) Size() int {
	if d.NumRows <= 0 || d.PixelsPerRow <= 0 || d.NumChannels <= 0 {
		return 0
	}
	return d.index(d.NumChannels-1, d.PixelsPerRow-1, d.NumRows-1) + 1
}

// index returns the position of channel c of pixel x in row y.
func (d *BufferDesc) index(c, x, y int) int {
	return y*d.rowStride() + x*d.pixelStride() + c*d.planeStride()
}

func (d *BufferDesc) check(op string, buf []byte) error {
	if d.NumChannels < 1 || d.NumChannels > planar.MaxComponents {
		return planar.Range(op, "invalid number of channels %d", d.NumChannels)
	}
	if d.NumRows < 0 || d.PixelsPerRow < 0 {
		return planar.Range(op, "invalid buffer size %dx%d",
			d.PixelsPerRow, d.NumRows)
	}
	if n := d.Size(); len(buf) < n {
		return planar.Range(op, "buffer too short (%d < %d)", len(buf), n)
	}
	return nil
}
