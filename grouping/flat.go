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

package grouping

import "github.com/subslate/pgscompile/geom"

// component3D is one tightened 3-D connected component, ready to become a
// ScreenRegion once the caller assigns it a time offset within the run.
type component3D struct {
	box  geom.Box
	tMin int
	tMax int
}

// flatten ORs every 3-D component's footprint onto a single 2-D plane
// (spec.md §4.1, "Flat projection").
func flatten(components []component3D, w, h int) [][]bool {
	mask := make([][]bool, h)
	for y := range mask {
		mask[y] = make([]bool, w)
	}
	for _, c := range components {
		for y := c.box.Y; y < c.box.Y2(); y++ {
			if y < 0 || y >= h {
				continue
			}
			for x := c.box.X; x < c.box.X2(); x++ {
				if x < 0 || x >= w {
					continue
				}
				mask[y][x] = true
			}
		}
	}
	return mask
}

// bucketByFlatComponent assigns each 3-D component to the flat (2-D)
// component whose mask it overlaps, per spec.md §4.1: "bucket original
// ScreenRegions by the flat component that contains them". A 3-D component
// is, by construction, fully inside exactly one flat component, since flat
// components are themselves unions of 3-D component footprints.
func bucketByFlatComponent(components []component3D, flatLabels [][]int, numFlat int) [][]int {
	buckets := make([][]int, numFlat)
	for i, c := range components {
		lbl := -1
		for y := c.box.Y; y < c.box.Y2() && lbl < 0; y++ {
			for x := c.box.X; x < c.box.X2(); x++ {
				if flatLabels[y][x] >= 0 {
					lbl = flatLabels[y][x]
					break
				}
			}
		}
		if lbl < 0 {
			continue
		}
		buckets[lbl] = append(buckets[lbl], i)
	}
	return buckets
}
