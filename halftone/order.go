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


// Package halftone implements threshold array screening.
//
// An [Order] is a rectangular threshold array which is tiled over device
// space, starting at the device origin.  A continuous tone value v turns a
// device pixel on if v is greater than the threshold at this position.
// With thresholds in the range 0 to 254, the value 0 leaves all pixels off
// and 255 turns all pixels on.
package halftone

import (
	"seehuhn.de/go/planar"
)

// Order is a threshold array for one colorant.
type Order struct {
	Width  int
	Height int

	// Thresholds holds Width×Height values in row-major order.
	Thresholds []byte
}

// NewOrder returns a threshold array of the given size.
func NewOrder(width, height int, thresholds []byte) (*Order, error) {
	if width <= 0 || height <= 0 {
		return nil, planar.Range("halftone.NewOrder",
			"invalid threshold array dimensions %d×%d", width, height)
	}
	if len(thresholds) != width*height {
		return nil, planar.Range("halftone.NewOrder",
			"threshold data size mismatch: expected %d bytes, got %d",
			width*height, len(thresholds))
	}
	o := &Order{
		Width:      width,
		Height:     height,
		Thresholds: thresholds,
	}
	return o, nil
}

// Bayer returns the ordered dither matrix of size 2^log2Size.
func Bayer(log2Size int) (*Order, error) {
	if log2Size < 0 || log2Size > 4 {
		return nil, planar.Range("halftone.Bayer", "unsupported size 2^%d", log2Size)
	}

	rank := []int{0}
	n := 1
	for range log2Size {
		next := make([]int, 4*n*n)
		for y := range n {
			for x := range n {
				r := 4 * rank[y*n+x]
				next[y*2*n+x] = r
				next[y*2*n+x+n] = r + 2
				next[(y+n)*2*n+x] = r + 3
				next[(y+n)*2*n+x+n] = r + 1
			}
		}
		rank = next
		n *= 2
	}

	cells := n * n
	thresholds := make([]byte, cells)
	for i, r := range rank {
		thresholds[i] = byte(r * 255 / cells)
	}
	return NewOrder(n, n, thresholds)
}

// At returns the threshold for device pixel (x, y).
func (o *Order) At(x, y int) byte {
	return o.Thresholds[mod(y, o.Height)*o.Width+mod(x, o.Width)]
}

// Row fills dst with the thresholds for the device pixels (x, y),
// (x+1, y), ..., (x+len(dst)-1, y).
func (o *Order) Row(dst []byte, x, y int) {
	row := o.Thresholds[mod(y, o.Height)*o.Width:][:o.Width]
	tx := mod(x, o.Width)
	for len(dst) > 0 {
		n := copy(dst, row[tx:])
		dst = dst[n:]
		tx = 0
	}
}

// Level returns the output level of device pixel (x, y) for a plane with
// levels 0, ..., maxLevel, when the continuous tone value v is screened.
func (o *Order) Level(v byte, maxLevel, x, y int) int {
	q := int(v) * maxLevel
	level := q / 255
	if q%255 > int(o.At(x, y)) {
		level++
	}
	return level
}

// Threshold compares contone values to thresholds and stores the result as
// a bitmap, starting at bit dstBit of dst.  Bit i is set if contone[i] is
// greater than thresh[i].  Bits are stored most significant bit first.
func Threshold(dst []byte, dstBit int, contone, thresh []byte) {
	n := min(len(contone), len(thresh))
	pos := dstBit
	i := 0

	for ; i < n && pos&7 != 0; i++ {
		setBit(dst, pos, contone[i] > thresh[i])
		pos++
	}
	for ; i+8 <= n; i += 8 {
		var b byte
		for j := range 8 {
			b <<= 1
			if contone[i+j] > thresh[i+j] {
				b |= 1
			}
		}
		dst[pos>>3] = b
		pos += 8
	}
	for ; i < n; i++ {
		setBit(dst, pos, contone[i] > thresh[i])
		pos++
	}
}

func setBit(dst []byte, pos int, on bool) {
	m := byte(0x80) >> (pos & 7)
	if on {
		dst[pos>>3] |= m
	} else {
		dst[pos>>3] &^= m
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
