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

// Package scratch hands out transient work buffers.
//
// An [Arena] can be given a byte budget.  Requests which would exceed the
// budget fail with a [planar.AllocationError].  Buffers must be returned
// using [Arena.Release] once the operation which needed them is done.
//
// Every surface and image enumerator starts with an arena of its own.  A
// shared arena can be installed to enforce a common budget across them; an
// Arena is safe for concurrent use.
package scratch

import (
	"sync"
	"unsafe"

	"seehuhn.de/go/planar"
)

// Arena allocates scratch buffers within an optional byte budget.
// The zero value has no budget limit.
type Arena struct {
	// Limit is the maximal number of bytes which can be in use at the same
	// time.  Zero means no limit.  Limit must not be changed while buffers
	// are handed out.
	Limit int

	mu    sync.Mutex
	inUse int
	peak  int
}

// Bytes returns a zeroed buffer of length n.
func (a *Arena) Bytes(op string, n int) ([]byte, error) {
	if err := a.reserve(op, n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

// Aligned returns a zeroed buffer of length n whose first byte is at an
// address which is a multiple of align.  The padding used to achieve the
// alignment is returned as off.  Since the garbage collector may move
// memory, callers must not cache off across calls.
func (a *Arena) Aligned(op string, n, align int) (buf []byte, off int, err error) {
	if align < 1 || align&(align-1) != 0 {
		return nil, 0, planar.Range(op, "alignment %d is not a power of two", align)
	}
	if err := a.reserve(op, n); err != nil {
		return nil, 0, err
	}
	full := make([]byte, n+align-1)
	off = AlignOffset(full, align)
	return full[off : off+n : off+n], off, nil
}

// Release returns a buffer obtained from [Arena.Bytes] or
// [Arena.Aligned] to the arena's budget.  The buffer must not have been
// resliced.
func (a *Arena) Release(buf []byte) {
	if buf == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inUse -= cap(buf)
	if a.inUse < 0 {
		a.inUse = 0
	}
}

// InUse returns the number of bytes currently handed out.
func (a *Arena) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

// Peak returns the largest number of bytes which were in use at the same
// time.
func (a *Arena) Peak() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.peak
}

func (a *Arena) reserve(op string, n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n < 0 || a.Limit > 0 && a.inUse+n > a.Limit {
		return &planar.AllocationError{Op: op, Size: n}
	}
	a.inUse += n
	a.peak = max(a.peak, a.inUse)
	return nil
}

// AlignOffset returns the number of bytes which must be skipped at the
// start of buf, so that the remaining slice starts at a multiple of align.
// The result depends on the current address of buf and must be recomputed
// each time buf is used.
func AlignOffset(buf []byte, align int) int {
	if len(buf) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	return int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
}
