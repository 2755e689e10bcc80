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


package memdev_test

import (
	"errors"
	"testing"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/memdev"
	"seehuhn.de/go/planar/scratch"
)

func TestArenaBudget(t *testing.T) {
	s := memdev.New(20, 4, 12)
	if err := s.SetPlanes([]memdev.PlaneDesc{{Depth: 4, Shift: 8}, {Depth: 4, Shift: 4}, {Depth: 4, Shift: 0}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}

	arena := &scratch.Arena{Limit: 16}
	s.SetArena(arena)
	src := make([]byte, 120)
	err := s.CopyColor(src, 0, 30, 0, 0, 20, 4)
	var allocErr *planar.AllocationError
	if !errors.As(err, &allocErr) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if allocErr.Size <= arena.Limit {
		t.Errorf("request of %d bytes rejected with limit %d", allocErr.Size, arena.Limit)
	}
	if arena.InUse() != 0 {
		t.Errorf("%d bytes in use after failure", arena.InUse())
	}
}
