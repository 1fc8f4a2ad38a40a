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

// YCbCrA is one CLUT entry: luma, chroma-blue, chroma-red and alpha, each an
// 8-bit component (spec.md §3, Palette).
type YCbCrA struct {
	Y, Cb, Cr, A uint8
}

// Transparent is the canonical fully-transparent CLUT entry.
var Transparent = YCbCrA{Y: 0, Cb: 128, Cr: 128, A: 0}

// Palette maps an 8-bit index to a CLUT entry. Index 0 is conventionally
// transparent but that is a convention, not an invariant enforced here.
type Palette map[uint8]YCbCrA

// Clone returns a shallow copy, safe to mutate independently of the
// original.
func (p Palette) Clone() Palette {
	c := make(Palette, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Diff returns the subset of entries in p that differ from (or are absent
// from) base, keyed by index. Used by the emitter to build per-frame
// palette-update PDS segments (spec.md §4.5 step 5).
func (p Palette) Diff(base Palette) Palette {
	d := make(Palette)
	for k, v := range p {
		if bv, ok := base[k]; !ok || bv != v {
			d[k] = v
		}
	}
	return d
}

// Offset returns a copy of p with every index shifted by n, used to place a
// second composition object's palette in the upper half of the shared CLUT
// (spec.md §4.5 step 4: "second object's palette entries offset by 128").
func (p Palette) Offset(n int) Palette {
	o := make(Palette, len(p))
	for k, v := range p {
		o[uint8(int(k)+n)] = v
	}
	return o
}

// Merge combines a and b into one palette; b's entries win on collision.
// Used to build the single PDS covering every active composition object.
func Merge(a, b Palette) Palette {
	m := make(Palette, len(a)+len(b))
	for k, v := range a {
		m[k] = v
	}
	for k, v := range b {
		m[k] = v
	}
	return m
}
