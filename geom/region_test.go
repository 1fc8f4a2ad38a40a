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

package geom_test

import (
	"testing"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
)

func TestScreenRegionActive(t *testing.T) {
	r := geom.NewScreenRegion(geom.NewBox(0, 0, 10, 10), 5, 3, 0)
	pgtest.ExpectFailure(t, r.Active(4))
	pgtest.ExpectSuccess(t, r.Active(5))
	pgtest.ExpectSuccess(t, r.Active(7))
	pgtest.ExpectFailure(t, r.Active(8))
	pgtest.ExpectEquality(t, r.End(), 8)
}

func TestRegionsHullAndDuration(t *testing.T) {
	rs := geom.Regions{
		geom.NewScreenRegion(geom.NewBox(0, 0, 10, 10), 0, 5, 0),
		geom.NewScreenRegion(geom.NewBox(20, 20, 10, 10), 3, 9, 1),
	}
	pgtest.ExpectEquality(t, rs.Hull(), geom.NewBox(0, 0, 30, 30))
	pgtest.ExpectEquality(t, rs.Duration(), 12)
}

func TestNewScreenRegionPanicsOnZeroDuration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for zero duration region")
		}
	}()
	geom.NewScreenRegion(geom.NewBox(0, 0, 1, 1), 0, 0, 0)
}
