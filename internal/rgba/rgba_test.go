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

package rgba_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/internal/rgba"
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

func TestAnyNonTransparent(t *testing.T) {
	transparent := solid(4, 4, color.RGBA{})
	pgtest.ExpectEquality(t, rgba.AnyNonTransparent(transparent), false)

	opaque := solid(4, 4, color.RGBA{R: 10, A: 255})
	pgtest.ExpectEquality(t, rgba.AnyNonTransparent(opaque), true)

	pgtest.ExpectEquality(t, rgba.AnyNonTransparent(nil), false)
}

func TestAlphaPresenceMasksByAlphaChannel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{})

	mask := rgba.AlphaPresence(img)
	pgtest.ExpectEquality(t, mask[0][0], true)
	pgtest.ExpectEquality(t, mask[0][1], false)
}

func TestLumaZeroesOutTransparentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 0})

	y, present := rgba.Luma(img)
	pgtest.ExpectEquality(t, present[0][0], true)
	pgtest.ExpectEquality(t, present[0][1], false)
	pgtest.ExpectEquality(t, y[0][1], 0.0)
	if y[0][0] < 254 || y[0][0] > 255 {
		t.Errorf("expected near-white luma for white pixel, got %v", y[0][0])
	}
}

func TestCompositeOverSkipsTransparentSource(t *testing.T) {
	dst := solid(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	rgba.CompositeOver(dst, src)

	r, g, b, a := dst.At(0, 0).RGBA()
	pgtest.ExpectEquality(t, []uint32{r >> 8, g >> 8, b >> 8, a >> 8}, []uint32{200, 200, 200, 255})

	r, g, b, _ = dst.At(1, 1).RGBA()
	pgtest.ExpectEquality(t, []uint32{r >> 8, g >> 8, b >> 8}, []uint32{1, 2, 3})
}
