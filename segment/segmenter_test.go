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

package segment_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/segment"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func transparent(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestSegmenterSkipsLeadingTransparentFrames(t *testing.T) {
	s := segment.NewSegmenter(10, 10)
	obj := s.Step(transparent(10, 10))
	pgtest.ExpectEquality(t, obj == nil, true)

	obj = s.Step(solid(10, 10, color.RGBA{255, 255, 255, 255}))
	pgtest.ExpectEquality(t, obj == nil, true)
}

func TestSegmenterMergesIdenticalFrames(t *testing.T) {
	s := segment.NewSegmenter(10, 10)
	white := color.RGBA{255, 255, 255, 255}

	pgtest.ExpectEquality(t, s.Step(solid(10, 10, white)) == nil, true)
	pgtest.ExpectEquality(t, s.Step(solid(10, 10, white)) == nil, true)

	obj := s.Step(nil)
	pgtest.ExpectEquality(t, obj == nil, false)
	pgtest.ExpectEquality(t, obj.Len(), 2)
	pgtest.ExpectEquality(t, obj.F, 0)
}

// partialFrame returns a w x h frame that is opaque everywhere except the
// rightmost column (when shrink is true), letting two frames share most but
// not all of their alpha footprint — the only way overlap lands strictly
// between 0 and theta_overlap, which is what routes the comparison through
// the SSIM branch instead of the automatic-match shortcuts.
func partialFrame(w, h int, c color.RGBA, shrink bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	limit := w
	if shrink {
		limit = w - 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < limit; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSegmenterSplitsOnLargeChange(t *testing.T) {
	s := segment.NewSegmenter(10, 10)
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	pgtest.ExpectEquality(t, s.Step(solid(10, 10, white)) == nil, true)

	obj := s.Step(partialFrame(10, 10, black, true))
	pgtest.ExpectEquality(t, obj == nil, false)
	pgtest.ExpectEquality(t, obj.Len(), 1)

	final := s.Step(nil)
	pgtest.ExpectEquality(t, final == nil, false)
	pgtest.ExpectEquality(t, final.Len(), 1)
	pgtest.ExpectEquality(t, final.F, 1)
}
