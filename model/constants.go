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

// Fixed PG decoder constants (spec.md §6). Rates are expressed in bytes per
// second (one coded or decoded byte per indexed pixel); FREQ is the 90kHz
// clock every PTS/DTS is expressed in.
const (
	// Freq is the 90kHz system clock that every PTS/DTS is expressed in.
	Freq = 90_000

	// RX is the coded transport rate in bytes/s: 16*1024*1024, i.e. 16 MiB/s
	// in binary (1024-based) units.
	RX = 16 * 1024 * 1024

	// RD is the decoder's pixel decode rate, 128 Mbit/s in bytes/s.
	RD = 128_000_000 / 8

	// RC is the object-plane copy rate, 256 Mbit/s in bytes/s.
	RC = 256_000_000 / 8

	// DecodedBufSize is the decoded object buffer (DB) capacity in bytes.
	DecodedBufSize = 4 * 1024 * 1024

	// CodedBufSize is the per-ODS coded buffer (CB) capacity in bytes.
	CodedBufSize = 1 * 1024 * 1024

	// MaxPaletteID is the exclusive upper bound on PDS.p_id (a 3-bit field).
	MaxPaletteID = 8

	// MaxPaletteEntries is the CLUT size.
	MaxPaletteEntries = 256

	// MaxWindows is the maximum number of concurrent windows per epoch
	// (spec.md Non-goals: no support for more than two).
	MaxWindows = 2

	// MinWindowDim is the hardware minimum window width/height in pixels.
	MinWindowDim = 8
)

// CompositionState is the PCS.composition_state field (spec.md glossary).
type CompositionState int

const (
	// Normal marks a palette-only update.
	Normal CompositionState = iota
	// Acquisition marks a full object/palette redefinition.
	Acquisition
	// EpochStart marks the first DS of an epoch: a full redefinition plus a
	// screen wipe.
	EpochStart
)

func (s CompositionState) String() string {
	switch s {
	case Normal:
		return "NORMAL"
	case Acquisition:
		return "ACQUISITION"
	case EpochStart:
		return "EPOCH_START"
	default:
		return "UNKNOWN"
	}
}
