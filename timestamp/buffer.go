// This file is part of pgscompile.
//
// pgscompile is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// pgscompile is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with pgscompile.  If not, see <https://www.gnu.org/licenses/>.

// Package timestamp implements the PTS/DTS assigner (spec.md §4.6): it
// walks a DisplaySet with provisionally-set desired PTS values and computes
// decode/present timestamps under the fixed PG decoder timing model.
package timestamp

import "github.com/subslate/pgscompile/errors"

type slot struct{ h, w int }

// PGObjectBuffer tracks {object_id -> (h,w)} allocations for one epoch,
// capped at DECODED_BUF_SIZE bytes (spec.md §3, §5).
type PGObjectBuffer struct {
	capacity int
	dims     map[int]slot
}

// NewPGObjectBuffer creates an empty buffer with the given byte capacity.
func NewPGObjectBuffer(capacity int) *PGObjectBuffer {
	return &PGObjectBuffer{capacity: capacity, dims: map[int]slot{}}
}

// Allocate binds id to a (h,w) shape, failing if id is already bound to a
// different shape or the total allocated area would exceed capacity
// (spec.md §5, §7 BufferAllocationConflict/DecoderBufferOverrun).
func (b *PGObjectBuffer) Allocate(id, h, w int) error {
	if existing, ok := b.dims[id]; ok {
		if existing.h != h || existing.w != w {
			return errors.Errorf(errors.BufferAllocationConflict,
				"timestamp: object %d already bound to %dx%d, got %dx%d", id, existing.h, existing.w, h, w)
		}
		return nil
	}

	total := h * w
	for _, s := range b.dims {
		total += s.h * s.w
	}
	if total > b.capacity {
		return errors.Errorf(errors.DecoderBufferOverrun,
			"timestamp: allocating object %d (%dx%d) would exceed decoded buffer capacity %d", id, h, w, b.capacity)
	}

	b.dims[id] = slot{h: h, w: w}
	return nil
}

// Get returns the shape bound to id, if any.
func (b *PGObjectBuffer) Get(id int) (h, w int, ok bool) {
	s, ok := b.dims[id]
	return s.h, s.w, ok
}

// Free releases id's allocation.
func (b *PGObjectBuffer) Free(id int) {
	delete(b.dims, id)
}

// Reset clears every allocation, equivalent to starting a fresh epoch.
func (b *PGObjectBuffer) Reset() {
	b.dims = map[int]slot{}
}
