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

package compliance_test

import (
	"testing"

	"github.com/subslate/pgscompile/compliance"
	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/model"
)

func TestCheckCompliantEpoch(t *testing.T) {
	epoch := model.Epoch{DisplaySets: []model.DisplaySet{
		{
			PCS: model.PCS{PTS: 100000, DTS: 99000, Windows: []model.Window{{ID: 0, Box: geom.NewBox(0, 0, 208, 48)}}},
			WDS: &model.WDS{PTS: 99500, DTS: 99000},
			PDS: []model.PDS{{PaletteID: 0, Entries: model.Palette{0: model.Transparent}}},
			ODS: []model.ODS{{PTS: 99600, DTS: 99000, Object: model.ObjectData{ObjectID: 0, Width: 200, Height: 40, RLE: make([]byte, 100)}, SequenceFirst: true, SequenceLast: true}},
			END: model.END{PTS: 99700, DTS: 99700},
		},
	}}

	report := compliance.Checker{FPS: 23.976}.Check(epoch)
	pgtest.ExpectEquality(t, report.Compliant, true)
}

func TestCheckFlagsUnbalancedSequence(t *testing.T) {
	epoch := model.Epoch{DisplaySets: []model.DisplaySet{
		{
			PCS: model.PCS{PTS: 1000, DTS: 900},
			ODS: []model.ODS{{PTS: 1000, DTS: 900, Object: model.ObjectData{ObjectID: 0, Width: 10, Height: 10}, SequenceFirst: true, SequenceLast: false}},
			END: model.END{PTS: 1000, DTS: 1000},
		},
	}}

	report := compliance.Checker{FPS: 23.976}.Check(epoch)
	pgtest.ExpectEquality(t, report.Compliant, false)
}

func TestCheckFlagsPaletteIDOverflow(t *testing.T) {
	epoch := model.Epoch{DisplaySets: []model.DisplaySet{
		{
			PCS: model.PCS{PTS: 1000, DTS: 900},
			PDS: []model.PDS{{PaletteID: 9}},
			END: model.END{PTS: 1000, DTS: 1000},
		},
	}}

	report := compliance.Checker{FPS: 23.976}.Check(epoch)
	pgtest.ExpectEquality(t, report.Compliant, false)
}
