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

// Package model holds the shared data types of the PGS compilation
// pipeline: the renderer's output Event, the Window/Palette/CompositionObject
// segment-level types, DisplaySet and Epoch, and the fixed PG decoder
// constants every downstream package times against (spec.md §3, §6).
package model

import "image"

// Event is one rendered subtitle frame handed to the compiler by the
// (external) renderer: a positioned RGBA bitmap with an in/out timestamp.
// Events in an epoch are time-ordered and non-overlapping in time per
// source track (spec.md §3).
type Event struct {
	X, Y          int
	Width, Height int
	TcIn, TcOut   float64 // seconds
	Img           *image.RGBA
}

// Dt returns the event's on-screen duration in seconds.
func (e Event) Dt() float64 {
	return e.TcOut - e.TcIn
}
