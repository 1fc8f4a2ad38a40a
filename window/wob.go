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

// Package window implements WindowOnBuffer (WoB): a temporal bundle of
// screen regions sharing one enclosing rectangle (spec.md §3, §4.2).
package window

import "github.com/subslate/pgscompile/geom"

// Entry pairs a ScreenRegion with its per-frame pixel footprint, in local
// coordinates relative to the region's own box. Mask[i] is the footprint at
// frame region.T+i, so len(Mask) == region.Dt.
type Entry struct {
	Region geom.ScreenRegion
	Mask   [][][]bool // [frameOffset][y][x]
}

// minWindowDim is the hardware minimum window width/height in pixels,
// mirroring model.MinWindowDim. Window stays independent of the model
// package (which itself is independent of window) and just repeats the
// constant.
const minWindowDim = 8

// WindowOnBuffer is an unordered set of ScreenRegions (each with its
// per-frame pixel footprint) plus the duration of the enclosing event run
// (spec.md §3).
type WindowOnBuffer struct {
	Entries  []Entry
	Duration int
}

// Regions returns the bare geometric regions, discarding per-frame pixel
// footprints.
func (w WindowOnBuffer) Regions() geom.Regions {
	rs := make(geom.Regions, len(w.Entries))
	for i, e := range w.Entries {
		rs[i] = e.Region
	}
	return rs
}

// Window returns the tight axis-aligned hull of every contained region,
// padded up to the hardware 8x8 minimum (spec.md §4.2, §3 invariant).
func (w WindowOnBuffer) Window() geom.Box {
	return w.Regions().Hull().Pad(minWindowDim, minWindowDim)
}

// EventMask returns a per-frame count of active regions (frame indices run
// [0, Duration)). Passing asBoolean true collapses counts >1 to 1.
func (w WindowOnBuffer) EventMask(asBoolean bool) []int {
	mask := make([]int, w.Duration)
	for _, e := range w.Entries {
		r := e.Region
		for k := r.T; k < r.End() && k < w.Duration; k++ {
			if k < 0 {
				continue
			}
			mask[k]++
		}
	}
	if asBoolean {
		for i, v := range mask {
			if v > 1 {
				mask[i] = 1
			}
		}
	}
	return mask
}

// UpdateMask returns a per-frame 0/1 mask marking frames where at least one
// region starts (spec.md §4.2).
func (w WindowOnBuffer) UpdateMask() []int {
	mask := make([]int, w.Duration)
	for _, e := range w.Entries {
		r := e.Region
		if r.T >= 0 && r.T < w.Duration {
			mask[r.T] = 1
		}
	}
	return mask
}
