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

package diagnostics_test

import (
	"testing"

	"github.com/subslate/pgscompile/diagnostics"
	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/model"
)

func TestDumpEpochGraphWritesSomethingForAPopulatedEpoch(t *testing.T) {
	epoch := model.Epoch{DisplaySets: []model.DisplaySet{
		{
			PCS: model.PCS{PTS: 1000, Windows: []model.Window{{ID: 0, Box: geom.NewBox(0, 0, 100, 50)}}},
			END: model.END{PTS: 1000, DTS: 1000},
		},
	}}

	w, err := pgtest.NewCappedWriter(4096)
	pgtest.ExpectSuccess(t, err)

	diagnostics.DumpEpochGraph(w, epoch)
	if w.String() == "" {
		t.Errorf("expected non-empty graph dump for a populated epoch")
	}
}

func TestDumpEpochGraphDoesNotPanicOnEmptyEpoch(t *testing.T) {
	w, err := pgtest.NewCappedWriter(1024)
	pgtest.ExpectSuccess(t, err)

	diagnostics.DumpEpochGraph(w, model.Epoch{})
}
