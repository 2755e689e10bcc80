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

package scratch

import (
	"errors"
	"sync"
	"testing"
	"unsafe"

	"seehuhn.de/go/planar"
)

func TestBudget(t *testing.T) {
	a := &Arena{Limit: 100}
	b1, err := a.Bytes("test", 60)
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Bytes("test", 41)
	if !errors.Is(err, planar.ErrAllocation) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	a.Release(b1)
	if a.InUse() != 0 {
		t.Errorf("InUse = %d after release", a.InUse())
	}
	b2, err := a.Bytes("test", 100)
	if err != nil {
		t.Fatal(err)
	}
	a.Release(b2)
	if a.Peak() != 100 {
		t.Errorf("Peak = %d", a.Peak())
	}
}

func TestAligned(t *testing.T) {
	a := &Arena{}
	for _, align := range []int{1, 2, 16, 64} {
		for n := range 5 {
			buf, off, err := a.Aligned("test", n+1, align)
			if err != nil {
				t.Fatal(err)
			}
			if off < 0 || off >= align {
				t.Errorf("align %d: offset %d", align, off)
			}
			addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
			if addr%uintptr(align) != 0 {
				t.Errorf("align %d: address %x not aligned", align, addr)
			}
			if len(buf) != n+1 {
				t.Errorf("len = %d, want %d", len(buf), n+1)
			}
			a.Release(buf)
		}
	}
	if a.InUse() != 0 {
		t.Errorf("InUse = %d after releasing everything", a.InUse())
	}

	_, _, err := a.Aligned("test", 10, 3)
	if !errors.Is(err, planar.ErrRange) {
		t.Errorf("alignment 3 accepted: %v", err)
	}
}

func TestConcurrent(t *testing.T) {
	a := &Arena{}
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				buf, err := a.Bytes("test", 10)
				if err != nil {
					t.Error(err)
					return
				}
				a.Release(buf)
			}
		}()
	}
	wg.Wait()

	if a.InUse() != 0 {
		t.Errorf("InUse = %d after releasing everything", a.InUse())
	}
	if p := a.Peak(); p < 10 || p > 40 {
		t.Errorf("Peak = %d", p)
	}
}
