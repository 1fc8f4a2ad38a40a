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

package window

import "github.com/subslate/pgscompile/geom"

// BitmapUpdateMask simulates per-frame compositing against mainBox and
// returns a per-frame 0/1 mask marking frames that require a full
// acquisition-style update rather than reuse of the previous composited
// buffer (spec.md §4.2).
//
// This pins down the Open Question in spec.md §9: the running OR-buffer is
// cleared (not just OR'd into) whenever an update is decided, and a
// region's start crossing the tracked active_until forces an update
// independently of the overlap test — both are applied in the order
// below, matching the source's documented intent.
func (w WindowOnBuffer) BitmapUpdateMask(mainBox geom.Box, threshold float64) []bool {
	result := make([]bool, w.Duration)
	if mainBox.Empty() {
		return result
	}

	buffer := make([][]bool, mainBox.Dy)
	for y := range buffer {
		buffer[y] = make([]bool, mainBox.Dx)
	}

	activeUntil := -1

	for k := 0; k < w.Duration; k++ {
		updated := false

		for _, e := range w.Entries {
			r := e.Region
			if !r.Active(k) {
				continue
			}
			frameIdx := k - r.T
			if frameIdx < 0 || frameIdx >= len(e.Mask) {
				continue
			}
			frameMask := e.Mask[frameIdx]

			forced := r.T > activeUntil
			overlap := overlapRatio(buffer, frameMask, mainBox, r.Box)

			if forced || overlap >= threshold {
				updated = true
				clearBuffer(buffer)
			}

			orInto(buffer, frameMask, mainBox, r.Box)

			if end := r.End() - 1; end > activeUntil {
				activeUntil = end
			}
		}

		result[k] = updated
	}

	return result
}

// overlapRatio computes |buffer ∧ region_frame| / |region_frame| where
// region_frame is translated from its own box coordinates into mainBox's
// coordinate space.
func overlapRatio(buffer [][]bool, frameMask [][]bool, mainBox, regionBox geom.Box) float64 {
	total := 0
	match := 0
	offX := regionBox.X - mainBox.X
	offY := regionBox.Y - mainBox.Y

	for y, row := range frameMask {
		for x, v := range row {
			if !v {
				continue
			}
			total++
			by, bx := y+offY, x+offX
			if by < 0 || by >= len(buffer) || bx < 0 || bx >= len(buffer[0]) {
				continue
			}
			if buffer[by][bx] {
				match++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(match) / float64(total)
}

// orInto ORs frameMask (in regionBox's coordinate space) into buffer (in
// mainBox's coordinate space).
func orInto(buffer [][]bool, frameMask [][]bool, mainBox, regionBox geom.Box) {
	offX := regionBox.X - mainBox.X
	offY := regionBox.Y - mainBox.Y

	for y, row := range frameMask {
		for x, v := range row {
			if !v {
				continue
			}
			by, bx := y+offY, x+offX
			if by < 0 || by >= len(buffer) || bx < 0 || bx >= len(buffer[0]) {
				continue
			}
			buffer[by][bx] = true
		}
	}
}

func clearBuffer(buffer [][]bool) {
	for y := range buffer {
		for x := range buffer[y] {
			buffer[y][x] = false
		}
	}
}
