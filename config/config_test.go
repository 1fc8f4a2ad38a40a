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

package config_test

import (
	"testing"

	"github.com/subslate/pgscompile/config"
	"github.com/subslate/pgscompile/internal/pgtest"
)

func TestDefaultValidates(t *testing.T) {
	pgtest.ExpectSuccess(t, config.Default().Validate())
}

func TestValidateRejectsNonPositiveFPS(t *testing.T) {
	c := config.Default()
	c.FPS = 0
	pgtest.ExpectFailure(t, c.Validate())
}

func TestValidateRejectsBadScreenDimensions(t *testing.T) {
	c := config.Default()
	c.ScreenW = 0
	pgtest.ExpectFailure(t, c.Validate())

	c = config.Default()
	c.ScreenH = -1
	pgtest.ExpectFailure(t, c.Validate())
}

func TestValidateRejectsRefreshRateOutOfRange(t *testing.T) {
	c := config.Default()
	c.RefreshRate = 1.5
	pgtest.ExpectFailure(t, c.Validate())

	c = config.Default()
	c.RefreshRate = -0.1
	pgtest.ExpectFailure(t, c.Validate())
}

func TestValidateRejectsNonPositiveCandidates(t *testing.T) {
	c := config.Default()
	c.Candidates = 0
	pgtest.ExpectFailure(t, c.Validate())
}

func TestValidateRejectsQualityFactorOutOfRange(t *testing.T) {
	c := config.Default()
	c.QualityFactor = 1.2
	pgtest.ExpectFailure(t, c.Validate())
}
