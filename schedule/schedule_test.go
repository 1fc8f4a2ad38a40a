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

package schedule_test

import (
	"image"
	"testing"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/schedule"
)

func obj(f, frames, w, h int) *model.PGObject {
	gfx := make([]*image.RGBA, frames)
	mask := make([]bool, frames)
	for i := range gfx {
		gfx[i] = image.NewRGBA(image.Rect(0, 0, w, h))
		mask[i] = true
	}
	return &model.PGObject{Gfx: gfx, Mask: mask, F: f, Box: geom.NewBox(0, 0, w, h)}
}

func TestScheduleFirstEventIsEpochStart(t *testing.T) {
	windows := []geom.Box{geom.NewBox(0, 0, 8, 8)}
	objects := [][]*model.PGObject{{obj(0, 2, 8, 8)}}
	timings := []schedule.EventTiming{{Dt: 60, Delay: 0}, {Dt: 60, Delay: 0}}

	plan := schedule.Schedule(windows, objects, timings, schedule.DefaultParams(23.976))
	pgtest.ExpectEquality(t, plan.States[0], model.EpochStart)
}

func TestScheduleTightScheduleForcesNormal(t *testing.T) {
	windows := []geom.Box{geom.NewBox(0, 0, 1920, 1080)}
	objects := [][]*model.PGObject{{obj(0, 2, 1920, 1080)}}
	timings := []schedule.EventTiming{{Dt: 1, Delay: 0}, {Dt: 1, Delay: 0}}

	plan := schedule.Schedule(windows, objects, timings, schedule.DefaultParams(23.976))
	pgtest.ExpectEquality(t, plan.Valid[1], false)
	pgtest.ExpectEquality(t, plan.States[1], model.Normal)
}
