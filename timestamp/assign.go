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

package timestamp

import (
	"math"

	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/model"
)

// Assigner computes PTS/DTS for one DisplaySet at a time, sharing a
// PGObjectBuffer across the whole epoch (spec.md §4.6).
type Assigner struct {
	ScreenW, ScreenH int
	Compatibility    bool
}

// Assign sets every segment's PTS/DTS on ds (spec.md §4.6 algorithm).
// ds.PCS.PTS is read as the desired on-screen presentation time and left
// unchanged; every other timestamp field is overwritten in place.
func (a Assigner) Assign(ds *model.DisplaySet, buf *PGObjectBuffer) error {
	desired := ds.PCS.PTS

	if ds.PCS.PaletteUpdateFlag {
		ds.PCS.DTS = desired
		for i := range ds.PDS {
			ds.PDS[i].PTS = desired
			ds.PDS[i].DTS = desired
		}
		ds.END.PTS = desired
		ds.END.DTS = desired
		return validateMonotonic(*ds)
	}

	firstDecode := make(map[int]float64, len(ds.ODS))
	for _, o := range ds.ODS {
		if !o.SequenceFirst {
			continue
		}
		if err := buf.Allocate(o.Object.ObjectID, o.Object.Height, o.Object.Width); err != nil {
			return err
		}
		firstDecode[o.Object.ObjectID] = dDecode(o.Object.Height, o.Object.Width)
	}

	totalDecode := 0.0
	for _, d := range firstDecode {
		totalDecode += d
	}

	var decodeDuration, tDecoding, totalCopy float64

	if ds.WDS != nil {
		decodeDuration = a.wipeDuration(ds.PCS.State, ds.WDS.Windows)
		for _, cobj := range ds.PCS.Objects {
			tDecoding += firstDecode[cobj.ObjectID]
			copyDur := dCopy(a.copyAreaFor(cobj, ds.WDS.Windows, buf))
			totalCopy += copyDur
			if candidate := math.Max(decodeDuration, tDecoding) + copyDur; candidate > decodeDuration {
				decodeDuration = candidate
			}
		}
	} else {
		decodeDuration = totalDecode
		tDecoding = totalDecode
	}

	ds.PCS.DTS = desired - decodeDuration

	if ds.WDS != nil {
		ds.WDS.DTS = ds.PCS.DTS
		ds.WDS.PTS = desired - totalCopy
	}

	for i := range ds.PDS {
		ds.PDS[i].PTS = ds.PCS.DTS
		ds.PDS[i].DTS = ds.PCS.DTS
	}

	lastDTS := ds.PCS.DTS
	for i := range ds.ODS {
		d := dDecode(ds.ODS[i].Object.Height, ds.ODS[i].Object.Width)
		ds.ODS[i].DTS = lastDTS
		ds.ODS[i].PTS = lastDTS + d
		lastDTS = ds.ODS[i].PTS
	}

	ds.END.DTS = ds.PCS.DTS + tDecoding
	ds.END.PTS = ds.END.DTS

	return validateMonotonic(*ds)
}

// dDecode is d_decode(h,w) = ceil(h*w*FREQ/R_D) (spec.md §4.6).
func dDecode(h, w int) float64 {
	return math.Ceil(float64(h*w) * model.Freq / model.RD)
}

// dCopy is d_copy(area) = ceil(area*FREQ/R_C) (spec.md §4.6).
func dCopy(area int) float64 {
	if area < 0 {
		area = 0
	}
	return math.Ceil(float64(area) * model.Freq / model.RC)
}

// wipeDuration computes the WDS wipe cost: the whole screen on EPOCH_START,
// otherwise the sum of the final window areas (spec.md §4.6).
func (a Assigner) wipeDuration(state model.CompositionState, windows []model.Window) float64 {
	if state == model.EpochStart {
		return dCopy(a.ScreenW * a.ScreenH)
	}
	total := 0
	for _, w := range windows {
		total += w.Box.Area()
	}
	return dCopy(total)
}

// copyAreaFor returns the plane-copy area for one composition object: the
// full allocated object area in compatibility mode, else its cropped area;
// in both modes the result is capped at its window's area (spec.md
// §4.4/§4.6).
func (a Assigner) copyAreaFor(cobj model.CompositionObject, windows []model.Window, buf *PGObjectBuffer) int {
	h, w, ok := buf.Get(cobj.ObjectID)
	if !ok {
		return 0
	}
	area := h * w
	if !a.Compatibility && cobj.Cropped != nil {
		area = cobj.Cropped.Width * cobj.Cropped.Height
	}
	winArea := windowAreaFor(cobj.WindowID, windows)
	if winArea > 0 && area > winArea {
		area = winArea
	}
	return area
}

func windowAreaFor(id int, windows []model.Window) int {
	for _, w := range windows {
		if w.ID == id {
			return w.Box.Area()
		}
	}
	return 0
}

// validateMonotonic enforces spec.md §8 invariant 2: pts>=dts everywhere,
// and DTS non-decreasing across ODS emission order within the DS.
func validateMonotonic(ds model.DisplaySet) error {
	if ds.PCS.PTS < ds.PCS.DTS {
		return errors.Errorf(errors.InconsistentTimestamps, "timestamp: pcs pts %v < dts %v", ds.PCS.PTS, ds.PCS.DTS)
	}
	if ds.WDS != nil && ds.WDS.PTS < ds.WDS.DTS {
		return errors.Errorf(errors.InconsistentTimestamps, "timestamp: wds pts %v < dts %v", ds.WDS.PTS, ds.WDS.DTS)
	}
	lastDTS := -math.MaxFloat64
	for _, o := range ds.ODS {
		if o.PTS < o.DTS {
			return errors.Errorf(errors.InconsistentTimestamps, "timestamp: ods pts %v < dts %v", o.PTS, o.DTS)
		}
		if o.DTS < lastDTS {
			return errors.Errorf(errors.InconsistentTimestamps, "timestamp: ods dts not monotonic")
		}
		lastDTS = o.DTS
	}
	if ds.END.PTS < ds.END.DTS {
		return errors.Errorf(errors.InconsistentTimestamps, "timestamp: end pts %v < dts %v", ds.END.PTS, ds.END.DTS)
	}
	return nil
}
