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

// Package quantize provides the color-quantization and RLE-encoding
// collaborator contracts named in spec.md §6 and §9, plus a default
// reference implementation of each: full bitmap serialization, byte-level
// segment encoding, and the renderer are genuinely external collaborators,
// but something must sit behind these interfaces for the compiler pipeline
// to run end to end.
package quantize

import (
	"image"

	"github.com/subslate/pgscompile/config"
	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/model"
)

// Quantizer reduces an RGBA image to at most n_colors palette entries.
type Quantizer interface {
	Quantize(img *image.RGBA, nColors int) (indexed [][]uint8, palette model.Palette, err error)
}

// SequenceQuantizer performs temporal quantization across a chain of
// frames sharing one index bitmap shape, yielding one shared indexed
// bitmap and one palette per frame (spec.md §6, `Optimise.solve_sequence_fast`).
type SequenceQuantizer interface {
	SolveSequenceFast(frames []*image.RGBA, nColors int, cs config.Colorspace) (indexed [][]uint8, palettes []model.Palette, err error)
}

// RLEEncoder encodes an indexed bitmap per ODS (spec.md §6,
// `PGraphics.encode_rle`).
type RLEEncoder interface {
	EncodeRLE(indexed [][]uint8) []byte
}

// QuantizeWithTransparency retries q.Quantize with progressively fewer
// colors until the returned palette contains a fully-transparent entry, per
// the `_find_most_transparent` contract preserved verbatim in spec.md §9: a
// quantizer is not assumed to always reserve a transparent slot on its
// own.
func QuantizeWithTransparency(q Quantizer, img *image.RGBA, nColors int) (indexed [][]uint8, palette model.Palette, err error) {
	for n := nColors; n > 1; n-- {
		indexed, palette, err = q.Quantize(img, n)
		if err != nil {
			return nil, nil, err
		}
		if hasTransparentEntry(palette) {
			return indexed, palette, nil
		}
	}
	return nil, nil, errors.Errorf(errors.PaletteOverflow, "quantize: no transparent slot found down to n_colors=2")
}

// QuantizeSequenceWithTransparency is QuantizeWithTransparency's counterpart
// for SequenceQuantizer: it retries q.SolveSequenceFast with progressively
// fewer colors until every frame's palette in the returned sequence carries
// a fully-transparent entry, since a fade or disappearing overlay relies on
// that slot to hide itself. This is the path emit actually drives (spec.md
// §9's `_find_most_transparent` contract applied to `solve_sequence_fast`
// rather than single-frame `Quantize`).
func QuantizeSequenceWithTransparency(q SequenceQuantizer, frames []*image.RGBA, nColors int, cs config.Colorspace) (indexed [][]uint8, palettes []model.Palette, err error) {
	for n := nColors; n > 1; n-- {
		indexed, palettes, err = q.SolveSequenceFast(frames, n, cs)
		if err != nil {
			return nil, nil, err
		}
		allTransparent := true
		for _, p := range palettes {
			if !hasTransparentEntry(p) {
				allTransparent = false
				break
			}
		}
		if allTransparent {
			return indexed, palettes, nil
		}
	}
	return nil, nil, errors.Errorf(errors.PaletteOverflow, "quantize: no transparent slot found in every frame down to n_colors=2")
}

func hasTransparentEntry(palette model.Palette) bool {
	for _, c := range palette {
		if c.A == 0 {
			return true
		}
	}
	return false
}

// DiffCLUTs replaces a list of absolute palettes with the first palette
// followed by per-frame diffs against the immediately preceding palette
// (spec.md §6, `Optimise.diff_cluts`).
func DiffCLUTs(palettes []model.Palette) []model.Palette {
	if len(palettes) == 0 {
		return nil
	}
	out := make([]model.Palette, len(palettes))
	out[0] = palettes[0]
	for i := 1; i < len(palettes); i++ {
		out[i] = palettes[i].Diff(palettes[i-1])
	}
	return out
}
