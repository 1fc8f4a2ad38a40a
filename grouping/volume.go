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

import "github.com/subslate/pgscompile/model"

// volume is a dense T x H x W binary mask, one slice per event in the run,
// aligned to a shared union bounding box (spec.md §4.1 "Coarse grouping").
// The T axis indexes events directly (one frame per event), matching the
// per-event frame indexing used throughout the temporal segmenter and
// scheduler.
type volume struct {
	t, h, w int
	bits    []bool
}

func newVolume(t, h, w int) *volume {
	return &volume{t: t, h: h, w: w, bits: make([]bool, t*h*w)}
}

func (v *volume) idx(t, y, x int) int {
	return (t*v.h+y)*v.w + x
}

func (v *volume) get(t, y, x int) bool {
	if t < 0 || t >= v.t || y < 0 || y >= v.h || x < 0 || x >= v.w {
		return false
	}
	return v.bits[v.idx(t, y, x)]
}

func (v *volume) set(t, y, x int, val bool) {
	v.bits[v.idx(t, y, x)] = val
}

// alphaCanvas extracts one event's alpha channel onto a float64 canvas the
// size of the shared union bounding box, offset so the event's own pixels
// land at (event.Y-origin.Y, event.X-origin.X). Values are normalised to
// [0,1].
func alphaCanvas(ev model.Event, originX, originY, w, h int) [][]float64 {
	canvas := make([][]float64, h)
	for y := range canvas {
		canvas[y] = make([]float64, w)
	}
	if ev.Img == nil {
		return canvas
	}
	bounds := ev.Img.Bounds()
	for iy := bounds.Min.Y; iy < bounds.Max.Y; iy++ {
		cy := ev.Y - originY + (iy - bounds.Min.Y)
		if cy < 0 || cy >= h {
			continue
		}
		for ix := bounds.Min.X; ix < bounds.Max.X; ix++ {
			cx := ev.X - originX + (ix - bounds.Min.X)
			if cx < 0 || cx >= w {
				continue
			}
			_, _, _, a := ev.Img.At(ix, iy).RGBA()
			canvas[cy][cx] = float64(a) / 0xffff
		}
	}
	return canvas
}
