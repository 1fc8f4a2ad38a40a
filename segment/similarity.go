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

package segment

import (
	"image"

	"github.com/subslate/pgscompile/internal/rgba"
)

// ssimC1 and ssimC2 are the standard SSIM stabilisation constants for an
// 8-bit luminance range (k1=0.01, k2=0.03, L=255).
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// similarity compares the run accumulator against a candidate frame per
// spec.md §4.3.1, returning a similarity score and the cross fraction used
// to scale the acceptance threshold.
func similarity(accum, frame *image.RGBA, thetaOverlap float64) (score, cross float64) {
	presenceA := rgba.AlphaPresence(accum)
	presenceB := rgba.AlphaPresence(frame)

	n := 0
	inters := 0
	intersInv := 0
	for y := range presenceA {
		if y >= len(presenceB) {
			break
		}
		for x := range presenceA[y] {
			if x >= len(presenceB[y]) {
				break
			}
			n++
			a, b := presenceA[y][x], presenceB[y][x]
			if a && b {
				inters++
			} else if !a && !b {
				intersInv++
			}
		}
	}

	var overlap float64
	if n > 0 && inters > 0 {
		overlap = float64(inters+intersInv) / float64(n)
	}

	if overlap >= thetaOverlap || overlap == 0 {
		return 1.0, 1.0
	}

	lumaA, presentA := rgba.Luma(accum)
	lumaB, presentB := rgba.Luma(frame)

	mask := make([][]bool, len(lumaA))
	maskCount := 0
	for y := range lumaA {
		mask[y] = make([]bool, len(lumaA[y]))
		if y >= len(lumaB) {
			continue
		}
		for x := range lumaA[y] {
			if x >= len(lumaB[y]) {
				continue
			}
			if presentA[y][x] && presentB[y][x] {
				mask[y][x] = true
				maskCount++
			}
		}
	}

	if n == 0 {
		cross = 0
	} else {
		cross = float64(maskCount) / float64(n)
	}

	return ssimMasked(lumaA, lumaB, mask), cross
}

// ssimMasked computes a single-window (global) SSIM over the pixels where
// mask is true, using the standard Wang et al. luminance/contrast/structure
// formula. Spec.md §4.3.1 only requires "SSIM on the luminance channels
// after masking"; a sliding-window SSIM is not essential to that contract,
// so the masked pixel population is treated as one window.
func ssimMasked(a, b [][]float64, mask [][]bool) float64 {
	var sumA, sumB float64
	count := 0
	for y := range mask {
		for x := range mask[y] {
			if !mask[y][x] {
				continue
			}
			sumA += a[y][x]
			sumB += b[y][x]
			count++
		}
	}
	if count == 0 {
		return 1.0
	}
	meanA := sumA / float64(count)
	meanB := sumB / float64(count)

	var varA, varB, cov float64
	for y := range mask {
		for x := range mask[y] {
			if !mask[y][x] {
				continue
			}
			da := a[y][x] - meanA
			db := b[y][x] - meanB
			varA += da * da
			varB += db * db
			cov += da * db
		}
	}
	varA /= float64(count)
	varB /= float64(count)
	cov /= float64(count)

	num := (2*meanA*meanB + ssimC1) * (2*cov + ssimC2)
	den := (meanA*meanA + meanB*meanB + ssimC1) * (varA + varB + ssimC2)
	if den == 0 {
		return 1.0
	}
	return num / den
}
