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

package quantize

import "github.com/subslate/pgscompile/config"

// toYCbCr converts 8-bit RGB to the Y/Cb/Cr triple PGS palettes store,
// using either the BT.601 or BT.709 coefficients selected by config.
func toYCbCr(r, g, b uint8, cs config.Colorspace) (y, cb, cr uint8) {
	var kr, kb float64
	switch cs {
	case config.BT709:
		kr, kb = 0.2126, 0.0722
	default:
		kr, kb = 0.299, 0.114
	}
	kg := 1 - kr - kb

	rf, gf, bf := float64(r), float64(g), float64(b)
	yf := kr*rf + kg*gf + kb*bf
	cbf := 128 + (bf-yf)/(2*(1-kb))
	crf := 128 + (rf-yf)/(2*(1-kr))

	return clamp8(yf), clamp8(cbf), clamp8(crf)
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
