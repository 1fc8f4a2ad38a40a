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

package timestamp_test

import (
	"testing"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/timestamp"
)

func TestAssignPaletteUpdateSharesTimestamps(t *testing.T) {
	ds := model.DisplaySet{
		PCS: model.PCS{PTS: 1000, PaletteUpdateFlag: true},
		PDS: []model.PDS{{PTS: 1000}},
		END: model.END{PTS: 1000},
	}
	a := timestamp.Assigner{ScreenW: 1920, ScreenH: 1080}
	buf := timestamp.NewPGObjectBuffer(model.DecodedBufSize)

	err := a.Assign(&ds, buf)
	pgtest.ExpectSuccess(t, err)
	pgtest.ExpectEquality(t, ds.PCS.DTS, 1000.0)
	pgtest.ExpectEquality(t, ds.PDS[0].DTS, 1000.0)
	pgtest.ExpectEquality(t, ds.END.DTS, 1000.0)
}

func TestAssignAcquisitionDecodeTimeOrdering(t *testing.T) {
	ds := model.DisplaySet{
		PCS: model.PCS{
			PTS:   100000,
			State: model.EpochStart,
			Windows: []model.Window{
				{ID: 0, Box: geom.NewBox(0, 0, 208, 48)},
			},
			Objects: []model.CompositionObject{
				{ObjectID: 0, WindowID: 0, X: 0, Y: 0},
			},
		},
		WDS: &model.WDS{PTS: 100000, Windows: []model.Window{{ID: 0, Box: geom.NewBox(0, 0, 208, 48)}}},
		PDS: []model.PDS{{PTS: 100000}},
		ODS: []model.ODS{{
			PTS:           100000,
			Object:        model.ObjectData{ObjectID: 0, Width: 200, Height: 40},
			SequenceFirst: true,
			SequenceLast:  true,
		}},
		END: model.END{PTS: 100000},
	}

	a := timestamp.Assigner{ScreenW: 1920, ScreenH: 1080}
	buf := timestamp.NewPGObjectBuffer(model.DecodedBufSize)

	err := a.Assign(&ds, buf)
	pgtest.ExpectSuccess(t, err)

	pgtest.ExpectEquality(t, ds.PCS.DTS < ds.PCS.PTS, true)
	pgtest.ExpectEquality(t, ds.END.DTS >= ds.PCS.DTS, true)
	pgtest.ExpectEquality(t, ds.ODS[0].DTS, ds.PCS.DTS)
}

func TestAllocateConflictingShapeFails(t *testing.T) {
	buf := timestamp.NewPGObjectBuffer(model.DecodedBufSize)
	pgtest.ExpectSuccess(t, buf.Allocate(0, 40, 200))
	err := buf.Allocate(0, 41, 200)
	pgtest.ExpectFailure(t, err)
}

func TestAllocateOverflowFails(t *testing.T) {
	buf := timestamp.NewPGObjectBuffer(100)
	err := buf.Allocate(0, 100, 100)
	pgtest.ExpectFailure(t, err)
}
