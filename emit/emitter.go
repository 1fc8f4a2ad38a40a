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

// Package emit implements the display-set emitter (spec.md §4.5): it walks
// a scheduled plan and produces the ordered DisplaySet sequence for one
// epoch, handling palette diffing, double-buffered object IDs, and
// screen-clear insertion.
package emit

import (
	"image"
	"math"

	"github.com/subslate/pgscompile/config"
	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/quantize"
)

// Run bundles everything the emitter needs for one epoch's worth of events:
// the scheduled states, the final window layout, and each window's ordered
// PGObjects (spec.md §4.4 output feeding §4.5).
type Run struct {
	Events           []model.Event
	States           []model.CompositionState
	Windows          []model.Window
	ObjectsPerWindow [][]*model.PGObject
}

// Emitter holds the quantization/RLE collaborators and compiler config
// needed to turn a scheduled Run into an Epoch.
type Emitter struct {
	Config    config.Config
	Quantizer quantize.SequenceQuantizer
	RLE       quantize.RLEEncoder
}

// Emit transforms a scheduled run into a complete Epoch (spec.md §4.5).
func (e Emitter) Emit(run Run) (model.Epoch, error) {
	n := len(run.Events)
	if n == 0 {
		return model.Epoch{}, errors.Errorf(errors.EmptyEventRun, "emit: empty run")
	}

	ids := &idAllocator{}
	pal := newPaletteAllocator()

	var sets []model.DisplaySet

	i := 0
	for i < n {
		if run.States[i] == model.Normal {
			// should not happen for a well-formed plan (states[0] is always
			// EPOCH_START and every run start is ACQUISITION/EPOCH_START),
			// but guard rather than silently drop events.
			i++
			continue
		}
		k := i + 1
		for k < n && run.States[k] == model.Normal {
			k++
		}

		runSets, err := e.emitRun(run, i, k, ids, pal)
		if err != nil {
			return model.Epoch{}, err
		}
		sets = append(sets, runSets...)
		i = k
	}

	last := run.Events[n-1]
	sets = append(sets, e.undisplayAt(run.Windows, ticks(last.TcOut)))

	return model.Epoch{DisplaySets: sets}, nil
}

// emitRun emits the DisplaySets for one maximal run [i,k) starting at an
// EPOCH_START or ACQUISITION event (spec.md §4.5).
func (e Emitter) emitRun(run Run, i, k int, ids *idAllocator, pal *paletteAllocator) ([]model.DisplaySet, error) {
	var sets []model.DisplaySet

	if i > 0 && delayFrames(run.Events, i, e.Config.FPS) != 0 {
		sets = append(sets, e.undisplayAt(run.Windows, ticks(run.Events[i-1].TcOut)))
	}

	active := activeObjects(run.ObjectsPerWindow, i)
	nColors := 256
	if countNonNil(active) == 2 {
		nColors = 128
	}

	indexedPerWindow := make([][][]uint8, len(active))
	palettesPerWindow := make([][]model.Palette, len(active))

	for w, obj := range active {
		if obj == nil {
			continue
		}
		frames := objectFrames(obj, i, k)
		indexed, palettes, err := quantize.QuantizeSequenceWithTransparency(e.Quantizer, frames, nColors, e.Config.BTColorspace)
		if err != nil {
			return nil, err
		}
		indexedPerWindow[w] = indexed
		palettesPerWindow[w] = palettes
	}

	allocated := ids.next(countNonNil(active))

	first, err := e.emitAcquisition(run, i, active, allocated, indexedPerWindow, palettesPerWindow, pal)
	if err != nil {
		return nil, err
	}
	sets = append(sets, first)

	prevMerged := mergedPalette(active, allocated, palettesPerWindow, 0)

	for z := i + 1; z < k; z++ {
		if delayFrames(run.Events, z, e.Config.FPS) != 0 {
			sets = append(sets, e.screenClearPaletteUpdate(run.Events[z-1], pal))
		}

		frameIdx := z - i
		merged := mergedPalette(active, allocated, palettesPerWindow, frameIdx)
		diff := merged.Diff(prevMerged)

		id, vn, full := pal.advance()
		entries := diff
		if full {
			entries = merged
		}

		sets = append(sets, model.DisplaySet{
			PCS: model.PCS{
				PTS:               ticks(run.Events[z].TcIn),
				DTS:               ticks(run.Events[z].TcIn),
				State:             run.States[z],
				PaletteID:         id,
				PaletteUpdateFlag: true,
			},
			PDS: []model.PDS{{
				PTS:       ticks(run.Events[z].TcIn),
				DTS:       ticks(run.Events[z].TcIn),
				PaletteID: id,
				VersionNo: vn,
				Entries:   entries,
			}},
			END: model.END{PTS: ticks(run.Events[z].TcIn), DTS: ticks(run.Events[z].TcIn)},
		})

		prevMerged = merged
	}

	return sets, nil
}

func (e Emitter) emitAcquisition(run Run, i int, active []*model.PGObject, allocated []int, indexedPerWindow [][][]uint8, palettesPerWindow [][]model.Palette, pal *paletteAllocator) (model.DisplaySet, error) {
	pts := ticks(run.Events[i].TcIn)

	var objects []model.CompositionObject
	var odsList []model.ODS
	idIdx := 0

	for w, obj := range active {
		if obj == nil {
			continue
		}
		id := allocated[idIdx]
		idIdx++

		objects = append(objects, model.CompositionObject{
			ObjectID: id,
			WindowID: run.Windows[w].ID,
			X:        run.Windows[w].Box.X + obj.Box.X,
			Y:        run.Windows[w].Box.Y + obj.Box.Y,
		})

		indexed := indexedPerWindow[w]
		rle := e.RLE.EncodeRLE(indexed)
		odsList = append(odsList, model.ODS{
			PTS:           pts,
			DTS:           pts,
			Object:        model.ObjectData{ObjectID: id, Width: obj.Box.Dx, Height: obj.Box.Dy, RLE: rle},
			SequenceFirst: true,
			SequenceLast:  true,
		})
	}

	merged := mergedPalette(active, allocated, palettesPerWindow, 0)
	palID, vn, _ := pal.advance()

	return model.DisplaySet{
		PCS: model.PCS{
			PTS:       pts,
			DTS:       pts,
			State:     run.States[i],
			PaletteID: palID,
			Windows:   run.Windows,
			Objects:   objects,
		},
		WDS: &model.WDS{PTS: pts, DTS: pts, Windows: run.Windows},
		PDS: []model.PDS{{PTS: pts, DTS: pts, PaletteID: palID, VersionNo: vn, Entries: merged}},
		ODS: odsList,
		END: model.END{PTS: pts, DTS: pts},
	}, nil
}

// screenClearPaletteUpdate emits the intermediate all-transparent PDS used
// when a gap precedes a palette-only update event (spec.md §4.5 step 5).
func (e Emitter) screenClearPaletteUpdate(prevEvent model.Event, pal *paletteAllocator) model.DisplaySet {
	pts := ticks(prevEvent.TcOut)
	id, vn, _ := pal.advance()
	clear := model.Palette{0: model.Transparent}
	return model.DisplaySet{
		PCS: model.PCS{PTS: pts, DTS: pts, PaletteUpdateFlag: true, PaletteID: id},
		PDS: []model.PDS{{PTS: pts, DTS: pts, PaletteID: id, VersionNo: vn, Entries: clear}},
		END: model.END{PTS: pts, DTS: pts},
	}
}

// undisplayAt builds the empty-composition DS used both for mid-run screen
// clears and the epoch-final undisplay (spec.md §4.5 steps 1 and final).
func (e Emitter) undisplayAt(windows []model.Window, pts float64) model.DisplaySet {
	return model.DisplaySet{
		PCS: model.PCS{PTS: pts, DTS: pts, State: model.Normal, Windows: windows},
		WDS: &model.WDS{PTS: pts, DTS: pts, Windows: windows},
		END: model.END{PTS: pts, DTS: pts},
	}
}

func ticks(tcSeconds float64) float64 {
	return math.Round(tcSeconds*model.Freq) - 4
}

func delayFrames(events []model.Event, idx int, fps float64) int {
	if idx <= 0 || idx >= len(events) {
		return 0
	}
	gap := events[idx].TcIn - events[idx-1].TcOut
	return int(math.Round(gap * fps))
}

func activeObjects(objectsPerWindow [][]*model.PGObject, k int) []*model.PGObject {
	out := make([]*model.PGObject, len(objectsPerWindow))
	for i, objs := range objectsPerWindow {
		for _, obj := range objs {
			if obj.F <= k && k < obj.Last() {
				out[i] = obj
				break
			}
		}
	}
	return out
}

func countNonNil(objs []*model.PGObject) int {
	n := 0
	for _, o := range objs {
		if o != nil {
			n++
		}
	}
	return n
}

func objectFrames(obj *model.PGObject, i, k int) []*image.RGBA {
	start := i - obj.F
	if start < 0 {
		start = 0
	}
	end := k - obj.F
	if end > len(obj.Gfx) {
		end = len(obj.Gfx)
	}
	if start >= end {
		start = 0
		end = len(obj.Gfx)
	}
	return obj.Gfx[start:end]
}

// mergedPalette merges the active windows' per-frame palettes into one CLUT,
// offsetting the second object's entries by 128 (spec.md §4.5 step 4).
func mergedPalette(active []*model.PGObject, allocated []int, palettesPerWindow [][]model.Palette, frameIdx int) model.Palette {
	merged := model.Palette{}
	objIndex := 0
	for w, obj := range active {
		if obj == nil {
			continue
		}
		palettes := palettesPerWindow[w]
		idx := frameIdx
		if idx >= len(palettes) {
			idx = len(palettes) - 1
		}
		if idx < 0 {
			objIndex++
			continue
		}
		p := palettes[idx]
		if objIndex == 1 {
			p = p.Offset(128)
		}
		merged = model.Merge(merged, p)
		objIndex++
	}
	return merged
}
