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

package geom

// ScreenRegion is a Box tagged with the time interval it is active over and
// a back-pointer to the connected-component label that produced it
// (spec.md §3). The invariant Dt>0 is enforced by NewScreenRegion.
type ScreenRegion struct {
	Box
	T, Dt int // frame index and duration, in frames
	Label int // connected-component label this region was extracted from
}

// NewScreenRegion builds a ScreenRegion, panicking if dt<=0: a region with
// no duration cannot appear in an event run and indicates a caller bug in
// the grouping engine.
func NewScreenRegion(box Box, t, dt, label int) ScreenRegion {
	if dt <= 0 {
		panic("geom: screen region duration must be positive")
	}
	return ScreenRegion{Box: box, T: t, Dt: dt, Label: label}
}

// End returns the exclusive frame index at which the region's activity
// ends.
func (r ScreenRegion) End() int { return r.T + r.Dt }

// Active reports whether the region is active at frame k.
func (r ScreenRegion) Active(k int) bool {
	return k >= r.T && k < r.End()
}

// Regions is a convenience slice type for the hull/bucketing helpers used by
// the grouping engine and WindowOnBuffer.
type Regions []ScreenRegion

// Hull returns the union bounding box of every region.
func (rs Regions) Hull() Box {
	var u Box
	for _, r := range rs {
		u = u.Union(r.Box)
	}
	return u
}

// Duration returns the exclusive frame index at which the last region in rs
// ends, i.e. the length of the enclosing event run. Returns 0 for an empty
// set.
func (rs Regions) Duration() int {
	d := 0
	for _, r := range rs {
		if e := r.End(); e > d {
			d = e
		}
	}
	return d
}
