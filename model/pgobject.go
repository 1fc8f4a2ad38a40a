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

package model

import (
	"image"

	"github.com/subslate/pgscompile/geom"
)

// PGObject is a contiguous run of perceptually-similar cropped bitmaps that
// can share one ODS update (spec.md §3, §4.3). Gfx and Mask always have the
// same length; frame i is on-screen iff Mask[i].
type PGObject struct {
	Gfx  []*image.RGBA
	Box  geom.Box
	Mask []bool
	F    int // index, relative to the window's frame stream, of Gfx[0]
}

// Len returns the number of frames spanned by the object (on-screen or
// not).
func (o PGObject) Len() int { return len(o.Gfx) }

// Last returns the exclusive frame index, relative to the window's frame
// stream, one past the object's final frame.
func (o PGObject) Last() int { return o.F + o.Len() }

// Area returns the object's own bounding-box area: area(obj) in spec.md
// §4.4/§4.6's decode-time formulas.
func (o PGObject) Area() int { return o.Box.Area() }

// CopyArea returns the area used for plane-copy accounting, per spec.md
// §4.4/§4.6: the full object area in compatibility mode, or the area of
// the object's box cropped to the window, capped at the window area,
// otherwise. Box is expressed in the window's own local coordinate frame
// (the frame the temporal segmenter crops frames into), so window itself
// is re-anchored at the origin before intersecting.
func (o PGObject) CopyArea(window geom.Box, compatibility bool) int {
	if compatibility {
		return o.Area()
	}
	local := geom.NewBox(0, 0, window.Dx, window.Dy)
	cropped := o.Box.Intersect(local).Area()
	if wa := local.Area(); cropped > wa {
		return wa
	}
	return cropped
}
