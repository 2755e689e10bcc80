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

package planar

import (
	"errors"
	"fmt"
	"strconv"
)

// These sentinel errors can be used with [errors.Is] to test the kind of
// an error returned by this module.
var (
	ErrRange        = errors.New("value out of range")
	ErrAllocation   = errors.New("allocation failed")
	ErrPrecondition = errors.New("precondition not met")
)

// RangeError is returned when a plane index, a layout parameter or a
// rectangle is outside the permitted range.
type RangeError struct {
	Op  string
	Err error
}

// Range returns a new RangeError for operation op.
func Range(op, format string, args ...any) error {
	return &RangeError{Op: op, Err: fmt.Errorf(format, args...)}
}

func (err *RangeError) Error() string {
	msg := err.Op + ": range error"
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *RangeError) Unwrap() error {
	return err.Err
}

// Is reports whether target is [ErrRange].
func (err *RangeError) Is(target error) bool {
	return target == ErrRange
}

// AllocationError is returned when a scratch buffer request is denied.
type AllocationError struct {
	Op   string
	Size int
}

func (err *AllocationError) Error() string {
	return err.Op + ": cannot allocate " + strconv.Itoa(err.Size) + " bytes"
}

// Is reports whether target is [ErrAllocation].
func (err *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}

// PreconditionError is returned when a required collaborator, for example
// a color transform, has not been set up.
type PreconditionError struct {
	Op  string
	Msg string
}

func (err *PreconditionError) Error() string {
	return err.Op + ": " + err.Msg
}

// Is reports whether target is [ErrPrecondition].
func (err *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
