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

// Package assert provides a single debug-only determinism guard: pinning a
// sequential pipeline stage to the goroutine that started it. Per spec.md
// §5, a single epoch's stages are a strictly ordered pipeline; concurrency
// only happens across epochs. compiler.compileEpoch uses this to catch a
// regression that accidentally hops an epoch's stages onto a pooled
// goroutine mid-pipeline.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It is undoubtedly useful for but it should only ever be used for
// debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Pin captures the calling goroutine's id. Same reports whether a later
// call happens on that same goroutine.
type Pin struct {
	id uint64
}

// NewPin captures the current goroutine.
func NewPin() Pin {
	return Pin{id: GetGoRoutineID()}
}

// Same reports whether the current goroutine is the one that created p.
func (p Pin) Same() bool {
	return GetGoRoutineID() == p.id
}
