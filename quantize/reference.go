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

package quantize

import (
	"image"

	"github.com/subslate/pgscompile/config"
	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/model"
)

// HistogramQuantizer is a frequency-ranked quantizer: it keeps the
// n_colors-1 most frequent opaque colors plus one reserved fully-transparent
// entry, mapping every other color to its nearest kept neighbour. It is the
// reference Quantizer wired in when no richer collaborator is supplied.
type HistogramQuantizer struct {
	Colorspace config.Colorspace
}

// Quantize implements Quantizer.
func (q HistogramQuantizer) Quantize(img *image.RGBA, nColors int) ([][]uint8, model.Palette, error) {
	return quantizeFrames(q.Colorspace, []*image.RGBA{img}, nColors)
}

// SolveSequenceFast implements SequenceQuantizer: it quantizes the union of
// every frame's opaque colors into one shared palette index space, then
// produces one index bitmap (shared across all frames, since they all
// share the same codebook) and one palette per frame reflecting that
// frame's own alpha/color sampling of the codebook.
func (q HistogramQuantizer) SolveSequenceFast(frames []*image.RGBA, nColors int, cs config.Colorspace) ([][]uint8, []model.Palette, error) {
	indexed, basePalette, err := quantizeFrames(cs, frames, nColors)
	if err != nil {
		return nil, nil, err
	}

	palettes := make([]model.Palette, len(frames))
	for i, f := range frames {
		palettes[i] = paletteForFrame(f, indexed, basePalette)
	}
	return indexed, palettes, nil
}

type colorKey struct{ r, g, b uint8 }

// quantizeFrames builds one shared index bitmap and palette across every
// frame's UNION of opaque pixels (so a single ODS/RLE bitmap can represent
// every frame in a temporal run), keeping the nColors-1 most frequent
// colors plus a transparent entry at the highest index.
func quantizeFrames(cs config.Colorspace, frames []*image.RGBA, nColors int) ([][]uint8, model.Palette, error) {
	if nColors < 2 {
		return nil, nil, errors.Errorf(errors.PaletteOverflow, "quantize: n_colors must allow at least one color plus transparency, got %v", nColors)
	}
	if len(frames) == 0 {
		return nil, model.Palette{}, nil
	}

	h := frames[0].Bounds().Dy()
	w := frames[0].Bounds().Dx()

	counts := make(map[colorKey]int)
	for _, f := range frames {
		b := f.Bounds()
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r, g, bl, a := f.At(b.Min.X+x, b.Min.Y+y).RGBA()
				if a == 0 {
					continue
				}
				counts[colorKey{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}]++
			}
		}
	}

	keys := rankedKeys(counts)
	maxOpaque := nColors - 1
	if len(keys) > maxOpaque {
		keys = keys[:maxOpaque]
	}

	palette := make(model.Palette, len(keys)+1)
	index := make(map[colorKey]uint8, len(keys))
	for i, k := range keys {
		y, cb, cr := toYCbCr(k.r, k.g, k.b, cs)
		id := uint8(i)
		palette[id] = model.YCbCrA{Y: y, Cb: cb, Cr: cr, A: 255}
		index[k] = id
	}
	transparentID := uint8(len(keys))
	palette[transparentID] = model.Transparent

	indexed := make([][]uint8, h)
	for y := 0; y < h; y++ {
		indexed[y] = make([]uint8, w)
		for x := 0; x < w; x++ {
			indexed[y][x] = transparentID
		}
	}

	for _, f := range frames {
		b := f.Bounds()
		for y := 0; y < b.Dy() && y < h; y++ {
			for x := 0; x < b.Dx() && x < w; x++ {
				r, g, bl, a := f.At(b.Min.X+x, b.Min.Y+y).RGBA()
				if a == 0 {
					continue
				}
				key := colorKey{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
				id, ok := index[key]
				if !ok {
					id = nearest(key, keys)
				}
				indexed[y][x] = id
			}
		}
	}

	return indexed, palette, nil
}

func rankedKeys(counts map[colorKey]int) []colorKey {
	keys := make([]colorKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	// simple insertion sort by descending frequency; palette sizes here are
	// small (<=256) so O(n^2) is fine and keeps ordering stable.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && counts[keys[j]] > counts[keys[j-1]]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func nearest(target colorKey, keys []colorKey) uint8 {
	best := 0
	bestDist := -1
	for i, k := range keys {
		dr := int(target.r) - int(k.r)
		dg := int(target.g) - int(k.g)
		db := int(target.b) - int(k.b)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return uint8(best)
}

// paletteForFrame reports, for a given original frame, the alpha each
// palette entry should carry: entries whose color is present (non-zero
// alpha) in this particular frame take that frame's pixel alpha; everything
// else (including the
// reserved transparent slot) is zeroed. This is what lets a fade sequence
// reuse one index bitmap while each frame's CLUT differs only in alpha.
func paletteForFrame(f *image.RGBA, indexed [][]uint8, base model.Palette) model.Palette {
	out := base.Clone()
	present := make(map[uint8]bool)
	b := f.Bounds()
	for y := 0; y < b.Dy() && y < len(indexed); y++ {
		for x := 0; x < b.Dx() && x < len(indexed[y]); x++ {
			_, _, _, a := f.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a == 0 {
				continue
			}
			id := indexed[y][x]
			present[id] = true
			entry := out[id]
			entry.A = uint8(a >> 8)
			out[id] = entry
		}
	}
	for id, c := range out {
		if !present[id] {
			c.A = 0
			out[id] = c
		}
	}
	return out
}
