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

package model_test

import (
	"image"
	"testing"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/model"
)

func TestPGObjectCopyArea(t *testing.T) {
	obj := model.PGObject{
		Gfx:  []*image.RGBA{{}},
		Box:  geom.NewBox(0, 0, 100, 50),
		Mask: []bool{true},
	}
	window := geom.NewBox(0, 0, 80, 80)

	pgtest.ExpectEquality(t, obj.Area(), 5000)
	pgtest.ExpectEquality(t, obj.CopyArea(window, true), 5000)
	pgtest.ExpectEquality(t, obj.CopyArea(window, false), 80*50)
}

func TestPGObjectLastAndLen(t *testing.T) {
	obj := model.PGObject{
		Gfx:  make([]*image.RGBA, 3),
		Mask: []bool{true, true, false},
		F:    5,
	}
	pgtest.ExpectEquality(t, obj.Len(), 3)
	pgtest.ExpectEquality(t, obj.Last(), 8)
}
