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

import (
	"github.com/subslate/pgscompile/geom"
)

// componentBounds accumulates the (t,y,x) extent of one 3-D connected
// component as the label volume is scanned.
type componentBounds struct {
	tMin, tMax int
	yMin, yMax int
	xMin, xMax int
	seen       bool
}

func (b *componentBounds) add(t, y, x int) {
	if !b.seen {
		b.tMin, b.tMax = t, t
		b.yMin, b.yMax = y, y
		b.xMin, b.xMax = x, x
		b.seen = true
		return
	}
	b.tMin = min(b.tMin, t)
	b.tMax = max(b.tMax, t)
	b.yMin = min(b.yMin, y)
	b.yMax = max(b.yMax, y)
	b.xMin = min(b.xMin, x)
	b.xMax = max(b.xMax, x)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// extractComponents computes the bounding (t,y,x) box of every labeled 3-D
// component.
func extractComponents(v *volume, labels []int, n int) []componentBounds {
	bounds := make([]componentBounds, n)
	for t := 0; t < v.t; t++ {
		for y := 0; y < v.h; y++ {
			for x := 0; x < v.w; x++ {
				lbl := labels[v.idx(t, y, x)]
				if lbl < 0 {
					continue
				}
				bounds[lbl].add(t, y, x)
			}
		}
	}
	return bounds
}

// tighten crops a component's box inward until it touches non-zero original
// (un-blurred) alpha on every side, scanning within the already-blurred
// bounding box (spec.md §4.1 "Tightening"). originalAlpha is indexed
// [frame][y][x] in the shared canvas coordinate space; frames outside
// [b.tMin, b.tMax] are not consulted.
func tighten(b componentBounds, originalAlpha [][][]float64) (geom.Box, [][][]bool) {
	xMin, xMax := b.xMin, b.xMax
	yMin, yMax := b.yMin, b.yMax

	nonZero := func(x, y int) bool {
		for t := b.tMin; t <= b.tMax; t++ {
			if originalAlpha[t][y][x] > 0 {
				return true
			}
		}
		return false
	}

	for xMin < xMax {
		found := false
		for y := yMin; y <= yMax; y++ {
			if nonZero(xMin, y) {
				found = true
				break
			}
		}
		if found {
			break
		}
		xMin++
	}
	for xMax > xMin {
		found := false
		for y := yMin; y <= yMax; y++ {
			if nonZero(xMax, y) {
				found = true
				break
			}
		}
		if found {
			break
		}
		xMax--
	}
	for yMin < yMax {
		found := false
		for x := xMin; x <= xMax; x++ {
			if nonZero(x, yMin) {
				found = true
				break
			}
		}
		if found {
			break
		}
		yMin++
	}
	for yMax > yMin {
		found := false
		for x := xMin; x <= xMax; x++ {
			if nonZero(x, yMax) {
				found = true
				break
			}
		}
		if found {
			break
		}
		yMax--
	}

	box := geom.NewBox(xMin, yMin, xMax-xMin+1, yMax-yMin+1)

	mask := make([][][]bool, b.tMax-b.tMin+1)
	for ti, t := range seq(b.tMin, b.tMax) {
		mask[ti] = make([][]bool, box.Dy)
		for y := 0; y < box.Dy; y++ {
			mask[ti][y] = make([]bool, box.Dx)
			for x := 0; x < box.Dx; x++ {
				mask[ti][y][x] = originalAlpha[t][yMin+y][xMin+x] > 0
			}
		}
	}

	return box, mask
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
