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

package assert_test

import (
	"testing"

	"github.com/subslate/pgscompile/internal/assert"
	"github.com/subslate/pgscompile/internal/pgtest"
)

func TestPinSameOnSameGoroutine(t *testing.T) {
	pin := assert.NewPin()
	pgtest.ExpectEquality(t, pin.Same(), true)
}

func TestPinDiffersAcrossGoroutines(t *testing.T) {
	pin := assert.NewPin()
	done := make(chan bool)
	go func() {
		done <- pin.Same()
	}()
	pgtest.ExpectEquality(t, <-done, false)
}
