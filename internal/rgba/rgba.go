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

// Package rgba holds small pixel-level helpers shared by the grouping
// engine and the temporal segmenter: alpha-presence tests, alpha
// compositing, and the grayscale conversion spec.md §4.3.1 uses for SSIM.
// Keeping these in one place avoids two divergent copies of the same
// pixel-format assumptions (8-bit alpha-premultiplied RGBA, as stored by
// Go's image.RGBA).
package rgba

import (
	"image"
	"math"
)

// AnyNonTransparent reports whether img has at least one non-zero-alpha
// pixel.
func AnyNonTransparent(img *image.RGBA) bool {
	if img == nil {
		return false
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

// AlphaPresence returns a same-size boolean mask, true where the pixel's
// alpha channel is non-zero.
func AlphaPresence(img *image.RGBA) [][]bool {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := make([][]bool, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		out[y] = make([]bool, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out[y][x] = a != 0
		}
	}
	return out
}

// Luma returns the grayscale Y = round(0.2989R + 0.587G + 0.114B) channel,
// gated by alpha>0 (spec.md §4.3.1): pixels with zero alpha are reported as
// 0 luma and false presence.
func Luma(img *image.RGBA) (y [][]float64, present [][]bool) {
	if img == nil {
		return nil, nil
	}
	b := img.Bounds()
	y = make([][]float64, b.Dy())
	present = make([][]bool, b.Dy())
	for iy := 0; iy < b.Dy(); iy++ {
		y[iy] = make([]float64, b.Dx())
		present[iy] = make([]bool, b.Dx())
		for ix := 0; ix < b.Dx(); ix++ {
			r, g, bl, a := img.At(b.Min.X+ix, b.Min.Y+iy).RGBA()
			if a == 0 {
				continue
			}
			// RGBA() returns 16-bit alpha-premultiplied components for
			// image.RGBA; scale down to 8-bit before applying BT.601 luma
			// weights.
			r8 := float64(r >> 8)
			g8 := float64(g >> 8)
			b8 := float64(bl >> 8)
			y[iy][ix] = math.Round(0.2989*r8 + 0.587*g8 + 0.114*b8)
			present[iy][ix] = true
		}
	}
	return y, present
}

// CompositeOver alpha-composites src over dst in place, both same size,
// using the standard "over" operator. Used by the temporal segmenter's
// alpha_compo accumulator (spec.md §4.3 step 4).
func CompositeOver(dst *image.RGBA, src *image.RGBA) {
	if dst == nil || src == nil {
		return
	}
	b := dst.Bounds()
	sb := src.Bounds()
	for y := 0; y < b.Dy() && y < sb.Dy(); y++ {
		for x := 0; x < b.Dx() && x < sb.Dx(); x++ {
			sr, sg, sb_, sa := src.At(sb.Min.X+x, sb.Min.Y+y).RGBA()
			if sa == 0 {
				continue
			}
			dr, dg, db, da := dst.At(b.Min.X+x, b.Min.Y+y).RGBA()
			inv := 0xffff - sa
			dst.Set(b.Min.X+x, b.Min.Y+y, rgbaColor{
				r: uint8((sr + dr*inv/0xffff) >> 8), g: uint8((sg + dg*inv/0xffff) >> 8),
				b: uint8((sb_ + db*inv/0xffff) >> 8), a: uint8((sa + da*inv/0xffff) >> 8),
			})
		}
	}
}

type rgbaColor struct{ r, g, b, a uint8 }

func (c rgbaColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = uint32(c.a) * 0x101
	return
}
