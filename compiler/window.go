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

package compiler

import (
	"image"
	"image/draw"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/segment"
	"github.com/subslate/pgscompile/window"
)

// segmentWindow crops every event's bitmap to box's coordinate frame and
// feeds the resulting stream through a fresh Segmenter, returning the
// window's ordered PGObjects (spec.md §4.2 feeding §4.3).
func segmentWindow(events []model.Event, wob window.WindowOnBuffer, box geom.Box) []*model.PGObject {
	active := wob.EventMask(true)
	seg := segment.NewSegmenter(box.Dx, box.Dy)

	var objects []*model.PGObject
	for k, ev := range events {
		var frame *image.RGBA
		if k < len(active) && active[k] != 0 {
			frame = cropToBox(ev, box)
		} else {
			frame = image.NewRGBA(image.Rect(0, 0, box.Dx, box.Dy))
		}
		if obj := seg.Step(frame); obj != nil {
			objects = append(objects, obj)
		}
	}
	if obj := seg.Step(nil); obj != nil {
		objects = append(objects, obj)
	}
	return objects
}

// cropToBox renders ev's bitmap onto a box.Dx x box.Dy canvas positioned at
// box's screen origin, leaving pixels outside ev's own rectangle
// transparent.
func cropToBox(ev model.Event, box geom.Box) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, box.Dx, box.Dy))
	if ev.Img == nil {
		return canvas
	}
	srcRect := image.Rect(ev.X, ev.Y, ev.X+ev.Width, ev.Y+ev.Height).Intersect(
		image.Rect(box.X, box.Y, box.X2(), box.Y2()),
	)
	if srcRect.Empty() {
		return canvas
	}
	dstPt := image.Point{X: srcRect.Min.X - box.X, Y: srcRect.Min.Y - box.Y}
	imgSrcRect := image.Rect(
		srcRect.Min.X-ev.X, srcRect.Min.Y-ev.Y,
		srcRect.Max.X-ev.X, srcRect.Max.Y-ev.Y,
	)
	draw.Draw(canvas, image.Rectangle{Min: dstPt, Max: dstPt.Add(imgSrcRect.Size())}, ev.Img, imgSrcRect.Min, draw.Src)
	return canvas
}
