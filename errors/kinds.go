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

package errors

// Kind identifies which of the error handling design's categories a curated
// error belongs to, together with its propagation policy (see Fatal
// below). Adapted from the teacher's unused
// categories.go sketch, but actually wired: every call site that builds a
// curated error names its Kind, so callers can branch on it with IsKind or
// Kind(err) instead of matching message strings.
type Kind int

// The error kinds named by spec.md §7, in source order.
const (
	Unknown Kind = iota

	// TooManyFlatRegions: recovered by retrying with a larger blur; after 15
	// attempts the grouping engine degrades to a single window and logs a
	// warning instead of returning this error to the caller.
	TooManyFlatRegions

	// PaletteOverflow: recovered by retrying quantization with one fewer
	// colour to guarantee a transparent entry remains available.
	PaletteOverflow

	// EmptyEventRun: fatal, indicates a caller bug (an empty event run was
	// handed to the grouping engine or segmenter).
	EmptyEventRun

	// BufferAllocationConflict: fatal, an object id was already bound to a
	// different shape in the PGObjectBuffer for this epoch.
	BufferAllocationConflict

	// DecoderBufferOverrun: non-fatal, reported as non-compliant but the
	// epoch is still emitted.
	DecoderBufferOverrun

	// BandwidthExceeded: a warning; the stream is still emitted.
	BandwidthExceeded

	// InconsistentTimestamps: fatal, a computed DTS exceeded its PTS.
	InconsistentTimestamps

	// MalformedDisplaySet: fatal, e.g. a palette-only update that also
	// carries an ODS.
	MalformedDisplaySet
)

// String returns a short name for the kind, used in diagnostic log tags.
func (k Kind) String() string {
	switch k {
	case TooManyFlatRegions:
		return "too-many-flat-regions"
	case PaletteOverflow:
		return "palette-overflow"
	case EmptyEventRun:
		return "empty-event-run"
	case BufferAllocationConflict:
		return "buffer-allocation-conflict"
	case DecoderBufferOverrun:
		return "decoder-buffer-overrun"
	case BandwidthExceeded:
		return "bandwidth-exceeded"
	case InconsistentTimestamps:
		return "inconsistent-timestamps"
	case MalformedDisplaySet:
		return "malformed-display-set"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this kind must abort compilation of the
// current epoch, per the propagation policy in spec.md §7. Kinds that are
// recovered internally (TooManyFlatRegions, PaletteOverflow) or that are
// merely reported (DecoderBufferOverrun, BandwidthExceeded) are not fatal;
// by the time either surfaces as an error to a caller, internal recovery has
// already been exhausted.
func (k Kind) Fatal() bool {
	switch k {
	case EmptyEventRun, BufferAllocationConflict, InconsistentTimestamps, MalformedDisplaySet:
		return true
	default:
		return false
	}
}
