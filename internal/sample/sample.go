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

// Package sample reads and writes packed samples of arbitrary bit depth.
//
// Samples are stored most significant bit first, without padding between
// samples.  Depths from 1 to 64 bits are supported.
package sample

// Load returns the sample of the given depth which starts at bit offset
// bit of data.
func Load(data []byte, bit, depth int) uint64 {
	i := bit >> 3
	switch depth {
	case 8:
		return uint64(data[i])
	case 16:
		return uint64(data[i])<<8 | uint64(data[i+1])
	case 24:
		return uint64(data[i])<<16 | uint64(data[i+1])<<8 | uint64(data[i+2])
	case 32:
		return uint64(data[i])<<24 | uint64(data[i+1])<<16 |
			uint64(data[i+2])<<8 | uint64(data[i+3])
	}

	var v uint64
	pos := bit & 7
	todo := depth
	for todo > 0 {
		avail := 8 - pos
		k := min(todo, avail)
		b := uint64(data[i]>>(avail-k)) & (1<<k - 1)
		v = v<<k | b
		todo -= k
		pos += k
		if pos == 8 {
			pos = 0
			i++
		}
	}
	return v
}

// Store writes the low depth bits of v into data, starting at bit offset
// bit.  The other bits of data are not changed.
func Store(data []byte, bit, depth int, v uint64) {
	i := bit >> 3
	switch depth {
	case 8:
		data[i] = byte(v)
		return
	case 16:
		data[i] = byte(v >> 8)
		data[i+1] = byte(v)
		return
	case 24:
		data[i] = byte(v >> 16)
		data[i+1] = byte(v >> 8)
		data[i+2] = byte(v)
		return
	case 32:
		data[i] = byte(v >> 24)
		data[i+1] = byte(v >> 16)
		data[i+2] = byte(v >> 8)
		data[i+3] = byte(v)
		return
	}

	pos := bit & 7
	todo := depth
	for todo > 0 {
		avail := 8 - pos
		k := min(todo, avail)
		shift := avail - k
		m := byte(1<<k-1) << shift
		b := byte(v>>(todo-k)) << shift
		data[i] = data[i]&^m | b&m
		todo -= k
		pos += k
		if pos == 8 {
			pos = 0
			i++
		}
	}
}

// Reader reads consecutive samples from a byte slice.
type Reader struct {
	data  []byte
	bit   int
	depth int
}

// NewReader returns a Reader which starts reading at sample index x.
func NewReader(data []byte, x, depth int) *Reader {
	return &Reader{data: data, bit: x * depth, depth: depth}
}

// Next returns the next sample.
func (r *Reader) Next() uint64 {
	v := Load(r.data, r.bit, r.depth)
	r.bit += r.depth
	return v
}

// Writer writes consecutive samples into a byte slice.
type Writer struct {
	data  []byte
	bit   int
	depth int
}

// NewWriter returns a Writer which starts writing at sample index x.
func NewWriter(data []byte, x, depth int) *Writer {
	return &Writer{data: data, bit: x * depth, depth: depth}
}

// Put writes the next sample.
func (w *Writer) Put(v uint64) {
	Store(w.data, w.bit, w.depth, v)
	w.bit += w.depth
}

// RowBytes returns the number of bytes needed to store n samples of the
// given depth.
func RowBytes(n, depth int) int {
	return (n*depth + 7) >> 3
}
