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

// Package schedule implements the acquisition scheduler (spec.md §4.4):
// decides, for each event boundary, whether the decoder has enough margin
// for a full acquisition or whether a palette-only update must be emitted.
package schedule

import (
	"math"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/model"
)

// EventTiming carries one event's duration and the gap since the previous
// event, both in frames (spec.md §4.4).
type EventTiming struct {
	Dt    int
	Delay int
}

// Params bundles the decoder-rate and quality-decay constants used by the
// scheduler.
type Params struct {
	FPS           float64
	Compatibility bool
	Quality       float64 // Q, default 0.8
	DQuality      float64 // ΔQ, default 0.035
	RefreshRate   float64 // default 1.0
	RD            float64
	RC            float64
}

// DefaultParams returns the spec.md §4.4 default constants.
func DefaultParams(fps float64) Params {
	return Params{
		FPS:         fps,
		Quality:     0.8,
		DQuality:    0.035,
		RefreshRate: 1.0,
		RD:          float64(model.RD),
		RC:          float64(model.RC),
	}
}

// Plan is the scheduler's output: per-event validity, force-acquisition
// flags, decode margins, and the resulting composition states.
type Plan struct {
	Valid     []bool
	Absolutes []bool
	Margin    []float64 // dtl
	States    []model.CompositionState
}

// Schedule computes the acquisition plan for a run of events, given the
// final window rectangles and, for each window, the ordered list of
// PGObjects it carries (spec.md §4.4).
func Schedule(windows []geom.Box, objectsPerWindow [][]*model.PGObject, timings []EventTiming, p Params) Plan {
	n := len(timings)
	plan := Plan{
		Valid:     make([]bool, n),
		Absolutes: make([]bool, n),
		Margin:    make([]float64, n),
		States:    make([]model.CompositionState, n),
	}
	if n == 0 {
		return plan
	}

	wipeDuration := 0.0
	for _, w := range windows {
		wipeDuration += float64(w.Area()) / p.RC
	}

	prevDt := 6
	for k := 0; k < n; k++ {
		margin := float64(timings[k].Delay+prevDt) / p.FPS
		prevDt = timings[k].Dt

		active := activeObjects(objectsPerWindow, k)

		absolute := false
		for _, obj := range active {
			if obj != nil && obj.F == k {
				absolute = true
				break
			}
		}
		plan.Absolutes[k] = absolute

		decodeSum := 0.0
		copySum := 0.0
		for i, obj := range active {
			if obj == nil {
				continue
			}
			decodeSum += float64(obj.Area()) / p.RD
			window := geom.Box{}
			if i < len(windows) {
				window = windows[i]
			}
			copySum += float64(obj.CopyArea(window, p.Compatibility)) / p.RC
		}

		td := math.Max(wipeDuration, decodeSum) + copySum

		plan.Valid[k] = td < margin
		if margin != 0 {
			plan.Margin[k] = 1 - td/margin
		} else {
			plan.Margin[k] = -1
		}
	}

	plan.States[0] = model.EpochStart
	drought := 0.0
	for k := 1; k < n; k++ {
		threshold := p.Quality - p.DQuality*drought
		if threshold < 0 {
			threshold = 0
		}
		if plan.Absolutes[k] || (plan.Valid[k] && plan.Margin[k] > threshold) {
			plan.States[k] = model.Acquisition
			drought = 0
		} else {
			plan.States[k] = model.Normal
			drought += p.RefreshRate
		}
	}

	return plan
}

// activeObjects returns, for each window, the PGObject covering event k (or
// nil if none).
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
