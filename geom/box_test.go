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

func TestIntersectDisjoint(t *testing.T) {
	a := geom.NewBox(0, 0, 10, 10)
	b := geom.NewBox(20, 20, 10, 10)
	pgtest.ExpectEquality(t, a.Intersect(b), geom.Box{})
}

func TestIntersectOverlapping(t *testing.T) {
	a := geom.NewBox(0, 0, 10, 10)
	b := geom.NewBox(5, 5, 10, 10)
	pgtest.ExpectEquality(t, a.Intersect(b), geom.NewBox(5, 5, 5, 5))
}

func TestUnion(t *testing.T) {
	a := geom.NewBox(0, 0, 10, 10)
	b := geom.NewBox(20, 20, 10, 10)
	pgtest.ExpectEquality(t, a.Union(b), geom.NewBox(0, 0, 30, 30))
}

func TestUnionWithEmpty(t *testing.T) {
	a := geom.NewBox(5, 5, 10, 10)
	pgtest.ExpectEquality(t, a.Union(geom.Box{}), a)
	pgtest.ExpectEquality(t, geom.Box{}.Union(a), a)
}

func TestOverlapRatio(t *testing.T) {
	a := geom.NewBox(0, 0, 10, 10)
	b := geom.NewBox(5, 0, 10, 10)
	pgtest.ExpectApproximate(t, a.OverlapRatio(b), 0.5, 0.0001)
}

func TestPadGrowsBelowMinimum(t *testing.T) {
	b := geom.NewBox(100, 100, 4, 2)
	p := b.Pad(8, 8)
	pgtest.ExpectEquality(t, p.Dx, 8)
	pgtest.ExpectEquality(t, p.Dy, 8)
}

func TestPadLeavesLargeBoxesAlone(t *testing.T) {
	b := geom.NewBox(100, 100, 200, 40)
	p := b.Pad(8, 8)
	pgtest.ExpectEquality(t, p, b)
}

func TestBoxUnionHelper(t *testing.T) {
	boxes := []geom.Box{
		geom.NewBox(0, 0, 5, 5),
		geom.NewBox(10, 10, 5, 5),
	}
	pgtest.ExpectEquality(t, geom.Union(boxes), geom.NewBox(0, 0, 15, 15))
}
