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

// Package diagnostics provides optional debug-time visualisation of a
// compiled Epoch's internal structure, for developers tracking down why a
// particular display-set sequence came out the way it did.
package diagnostics

import (
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/subslate/pgscompile/logger"
	"github.com/subslate/pgscompile/model"
)

// DumpEpochGraph writes a DOT-format graph of epoch's DisplaySet structure
// to w, letting a developer render it with graphviz. Failures are logged,
// not returned, since this is a debug aid and must never affect
// compilation of the stream itself.
func DumpEpochGraph(w io.Writer, epoch model.Epoch) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logf("diagnostics", "epoch graph dump panicked: %v", r)
		}
	}()
	memviz.Map(w, &epoch)
}
