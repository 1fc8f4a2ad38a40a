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

package model

import "github.com/subslate/pgscompile/geom"

// Window is a final on-screen rectangle referenced by a WDS, identified by
// window_id 0 or, when a second window was discovered, 1 (spec.md §3).
type Window struct {
	ID  int
	Box geom.Box
}

// CroppedObject describes the ODS crop used for an "object cropped" PCS
// composition object, in screen-relative coordinates (spec.md §3,
// CompositionObject).
type CroppedObject struct {
	HCPos, VCPos int
	Width, Height int
}

// CompositionObject is one entry in a PCS's composition object list.
type CompositionObject struct {
	ObjectID int
	WindowID int
	X, Y     int
	Cropped  *CroppedObject
}

// ObjectData is one ODS update: an object id bound to an RLE-encoded
// indexed bitmap of a given size. A PG object larger than CodedBufSize is
// split by the serializer (out of scope here) into multiple ODS segments
// sharing an object_id; this type models the logical, unsplit update.
type ObjectData struct {
	ObjectID      int
	Width, Height int
	RLE           []byte
}

// PCS is a Presentation Composition Segment.
type PCS struct {
	PTS, DTS float64 // 90kHz ticks

	State      CompositionState
	PaletteID  int
	PaletteUpdateFlag bool
	Windows    []Window
	Objects    []CompositionObject
}

// WDS is a Window Definition Segment.
type WDS struct {
	PTS, DTS float64
	Windows  []Window
}

// PDS is a Palette Definition Segment.
type PDS struct {
	PTS, DTS  float64
	PaletteID int
	VersionNo int
	Entries   Palette
}

// ODS is an Object Definition Segment.
type ODS struct {
	PTS, DTS float64
	Object   ObjectData
	// SequenceFirst/SequenceLast mark the first/last coded-buffer fragment
	// of this object update. A single-segment update sets both.
	SequenceFirst, SequenceLast bool
}

// END is an End-of-Display segment; it carries only timestamps.
type END struct {
	PTS, DTS float64
}

// DisplaySet is the atomic presentation unit: [PCS, WDS?, PDS*, ODS*, END]
// (spec.md §3, §8 invariant 7).
type DisplaySet struct {
	PCS PCS
	WDS *WDS
	PDS []PDS
	ODS []ODS
	END END
}

// Epoch is a maximal sequence of DisplaySets whose first PCS has state
// EpochStart (spec.md glossary).
type Epoch struct {
	DisplaySets []DisplaySet
}
