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

// Package grouping implements window layout discovery (spec.md §4.1): from
// a temporal stack of per-event alpha masks, derive at most two rectangular
// windows covering all visible pixels, minimising either total window area
// or the number of full-object acquisitions.
package grouping

import (
	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/logger"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/window"
)

// maxFlatComponents is the overflow threshold named in spec.md §4.1: more
// than this many flat (2-D) components triggers a blur-radius retry.
const maxFlatComponents = 16

// maxRetries bounds the blur-retry loop of spec.md §4.1/§7; after this many
// attempts the engine degrades to a single window.
const maxRetries = 15

// Engine discovers window layouts for a run of events believed to belong to
// one epoch.
type Engine struct {
	BlurMul, BlurConst float64
	Candidates         int
	Mode               Mode
	// NGroups caps the number of windows the search may produce: 1 or 2.
	// Defaults to 2 if zero.
	NGroups int
}

// Group derives at most two WindowOnBuffer layouts covering every event's
// visible pixels (spec.md §4.1).
func (e Engine) Group(events []model.Event) ([]window.WindowOnBuffer, error) {
	if len(events) == 0 {
		return nil, errors.Errorf(errors.EmptyEventRun, "grouping: empty event run")
	}

	nGroups := e.NGroups
	if nGroups == 0 {
		nGroups = 2
	}

	union := unionBox(events)
	originX, originY := union.X, union.Y
	w, h := union.Dx, union.Dy
	if w == 0 || h == 0 {
		return nil, errors.Errorf(errors.EmptyEventRun, "grouping: events have no visible extent")
	}

	params := blurParams{mul: e.BlurMul, const_: e.BlurConst}

	for attempt := 0; attempt < maxRetries; attempt++ {
		wobs, overflowed, err := e.attempt(events, originX, originY, w, h, params, nGroups)
		if err != nil {
			return nil, err
		}
		if !overflowed {
			return wobs, nil
		}
		logger.Logf("grouping", "too many flat regions on attempt %d, increasing blur", attempt)
		params = params.scaled(1.5)
	}

	logger.Log("grouping", "giving up after 15 blur retries, degrading to single window")
	return e.singleWindowFallback(events, union), nil
}

// attempt runs one full coarse-grouping/tightening/flattening pass at a
// given blur setting. overflowed reports whether the flat component count
// exceeded maxFlatComponents, in which case the caller should retry with a
// larger blur.
func (e Engine) attempt(events []model.Event, originX, originY, w, h int, params blurParams, nGroups int) (wobs []window.WindowOnBuffer, overflowed bool, err error) {
	sigmaY, sigmaX := params.sigma(h, w)

	vol := newVolume(len(events), h, w)
	original := make([][][]float64, len(events))

	for i, ev := range events {
		canvas := alphaCanvas(ev, originX, originY, w, h)
		original[i] = canvas
		blurred := blur2D(canvas, sigmaY, sigmaX)
		bin := threshold(blurred)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				vol.set(i, y, x, bin[y][x])
			}
		}
	}

	labels, n3 := label3D(vol)
	if n3 == 0 {
		return []window.WindowOnBuffer{{Duration: len(events)}}, false, nil
	}

	bounds := extractComponents(vol, labels, n3)
	components := make([]component3D, n3)
	entries := make([]window.Entry, n3)
	for i, b := range bounds {
		box, mask := tighten(b, original)
		components[i] = component3D{box: box, tMin: b.tMin, tMax: b.tMax}
		entries[i] = window.Entry{
			Region: geom.NewScreenRegion(box, b.tMin, b.tMax-b.tMin+1, i),
			Mask:   mask,
		}
	}

	flatMask := flatten(components, w, h)
	flatLabels, nFlat := label2D(flatMask)
	if nFlat > maxFlatComponents {
		return nil, true, nil
	}

	if nFlat <= 1 {
		return []window.WindowOnBuffer{{Entries: entries, Duration: len(events)}}, false, nil
	}

	buckets := bucketByFlatComponent(components, flatLabels, nFlat)

	if nGroups < 2 {
		return []window.WindowOnBuffer{{Entries: entries, Duration: len(events)}}, false, nil
	}

	partitions := enumeratePartitions(nFlat)
	groupEntries := func(indices []int) []window.Entry {
		var out []window.Entry
		for _, flatIdx := range indices {
			for _, compIdx := range buckets[flatIdx] {
				out = append(out, entries[compIdx])
			}
		}
		return out
	}
	hullArea := func(ents []window.Entry) int {
		wob := window.WindowOnBuffer{Entries: ents, Duration: len(events)}
		return wob.Window().Area()
	}
	partitionArea := func(p partition) int {
		return hullArea(groupEntries(p.a)) + hullArea(groupEntries(p.b))
	}
	sortPartitionsByArea(partitions, partitionArea)

	chosen := e.choosePartition(partitions, groupEntries, len(events))

	a := window.WindowOnBuffer{Entries: groupEntries(chosen.a), Duration: len(events)}
	b := window.WindowOnBuffer{Entries: groupEntries(chosen.b), Duration: len(events)}
	return []window.WindowOnBuffer{a, b}, false, nil
}

// choosePartition applies the Mode selection rule of spec.md §4.1.
// partitions is already sorted ascending by summed hull area.
func (e Engine) choosePartition(partitions []partition, groupEntries func([]int) []window.Entry, duration int) partition {
	if len(partitions) == 0 {
		return partition{}
	}
	if e.Mode == SmallestWindows {
		return partitions[0]
	}

	candidates := e.Candidates
	if candidates <= 0 || candidates > len(partitions) {
		candidates = len(partitions)
	}

	best := partitions[0]
	bestScore := -1.0
	for _, p := range partitions[:candidates] {
		score := leastAcquisitionsScore(p, groupEntries, duration)
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = p
		}
	}
	return best
}

// leastAcquisitionsScore computes Σ area(WoB) · Σ update_mask(WoB) for a
// two-window partition (spec.md §4.1).
func leastAcquisitionsScore(p partition, groupEntries func([]int) []window.Entry, duration int) float64 {
	score := 0.0
	for _, indices := range [][]int{p.a, p.b} {
		ents := groupEntries(indices)
		if len(ents) == 0 {
			continue
		}
		wob := window.WindowOnBuffer{Entries: ents, Duration: duration}
		area := wob.Window().Area()
		updates := 0
		for _, v := range wob.UpdateMask() {
			updates += v
		}
		score += float64(area * updates)
	}
	return score
}

// singleWindowFallback builds the degraded single-window layout used when
// the blur retry budget is exhausted (spec.md §4.1 Failure path): one
// window covering the union box, with one region per event that has
// visible content.
func (e Engine) singleWindowFallback(events []model.Event, union geom.Box) []window.WindowOnBuffer {
	var entries []window.Entry
	for i, ev := range events {
		canvas := alphaCanvas(ev, union.X, union.Y, union.Dx, union.Dy)
		mask := make([][]bool, union.Dy)
		visible := false
		for y := 0; y < union.Dy; y++ {
			mask[y] = make([]bool, union.Dx)
			for x := 0; x < union.Dx; x++ {
				mask[y][x] = canvas[y][x] > 0
				visible = visible || mask[y][x]
			}
		}
		if !visible {
			continue
		}
		entries = append(entries, window.Entry{
			Region: geom.NewScreenRegion(union, i, 1, 0),
			Mask:   [][][]bool{mask},
		})
	}
	return []window.WindowOnBuffer{{Entries: entries, Duration: len(events)}}
}

func unionBox(events []model.Event) geom.Box {
	var u geom.Box
	for _, ev := range events {
		u = u.Union(geom.NewBox(ev.X, ev.Y, ev.Width, ev.Height))
	}
	return u
}
