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

package emit

import "github.com/subslate/pgscompile/model"

// idAllocator toggles between composition-object-id pairs {0,1} and {2,3}
// on each acquisition (spec.md §4.5 step 3, §5): a new object is never
// decoded into the slot the currently-displayed object occupies.
type idAllocator struct {
	toggled bool
}

// next returns n freshly-allocated object IDs from the currently inactive
// pair.
func (a *idAllocator) next(n int) []int {
	base := 0
	if a.toggled {
		base = 2
	}
	a.toggled = !a.toggled

	ids := make([]int, n)
	for i := range ids {
		ids[i] = base + i
	}
	return ids
}

// paletteAllocator is the per-epoch 3-bit palette-id counter versioned by
// an 8-bit p_vn (spec.md §4.5 step 6, §5).
type paletteAllocator struct {
	id        int
	vn        int
	forceFull bool
}

func newPaletteAllocator() *paletteAllocator {
	return &paletteAllocator{}
}

// advance returns the (id, version) to stamp on the next PDS, and whether
// that PDS must carry a full (non-diff) palette because vn just wrapped.
func (p *paletteAllocator) advance() (id, vn int, full bool) {
	full = p.forceFull
	p.forceFull = false
	id, vn = p.id, p.vn

	p.vn++
	if p.vn > 255 {
		p.vn = 0
		p.id = (p.id + 1) % model.MaxPaletteID
		p.forceFull = true
	}
	return id, vn, full
}
