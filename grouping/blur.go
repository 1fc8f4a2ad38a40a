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

import "math"

// blurParams is the (mutable across retries) blur-radius policy of
// spec.md §4.1: sigma = (c + m*r_h, c + m*r_w), with m and c scaled by 1.5
// on each TooManyFlatRegions retry.
type blurParams struct {
	mul   float64
	const_ float64
}

func (p blurParams) scaled(factor float64) blurParams {
	return blurParams{mul: p.mul * factor, const_: p.const_ * factor}
}

// sigma returns the (sigmaY, sigmaX) Gaussian radii for a canvas of the
// given aspect ratio, per spec.md §4.1: r_h and r_w are the canvas's
// height/width ratio and width/height ratio, clamped to <=1 and <=1.3
// respectively.
func (p blurParams) sigma(h, w int) (sigmaY, sigmaX float64) {
	rh := float64(h) / float64(w)
	if rh > 1 {
		rh = 1
	}
	rw := float64(w) / float64(h)
	if rw > 1.3 {
		rw = 1.3
	}
	return p.const_ + p.mul*rh, p.const_ + p.mul*rw
}

// gaussianKernel1D returns a normalised 1-D Gaussian kernel wide enough to
// cover +/-3 sigma.
func gaussianKernel1D(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(sigma * 3))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		v := math.Exp(-(d * d) / (2 * sigma * sigma))
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blur2D applies a separable Gaussian blur to canvas in place, clamping at
// the edges (no padding growth), then returns it.
func blur2D(canvas [][]float64, sigmaY, sigmaX float64) [][]float64 {
	h := len(canvas)
	if h == 0 {
		return canvas
	}
	w := len(canvas[0])

	// horizontal pass
	kx := gaussianKernel1D(sigmaX)
	rx := len(kx) / 2
	tmp := make([][]float64, h)
	for y := 0; y < h; y++ {
		tmp[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			var acc float64
			for k := -rx; k <= rx; k++ {
				sx := x + k
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				acc += canvas[y][sx] * kx[k+rx]
			}
			tmp[y][x] = acc
		}
	}

	// vertical pass
	ky := gaussianKernel1D(sigmaY)
	ry := len(ky) / 2
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var acc float64
			for k := -ry; k <= ry; k++ {
				sy := y + k
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				acc += tmp[sy][x] * ky[k+ry]
			}
			out[y][x] = acc
		}
	}
	return out
}

// threshold converts a blurred float canvas into a binary mask at the
// spec.md §4.1 fixed threshold of 0.25.
func threshold(canvas [][]float64) [][]bool {
	h := len(canvas)
	out := make([][]bool, h)
	for y := 0; y < h; y++ {
		w := len(canvas[y])
		out[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			out[y][x] = canvas[y][x] >= 0.25
		}
	}
	return out
}
