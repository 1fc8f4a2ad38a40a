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

// Package config defines the compiler's input configuration (spec.md §6).
// Loading it from a file or command line is an external collaborator, kept
// out of this repository; callers construct a Config directly (typically
// starting from Default()) and call Validate before compiling.
package config

import (
	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/grouping"
)

// Colorspace selects the Y'CbCr coefficients used when converting rendered
// RGBA into the PG CLUT's (Y, Cb, Cr) components.
type Colorspace int

const (
	BT601 Colorspace = iota
	BT709
)

// Config is the compiler's global input, mirroring spec.md §6 exactly.
type Config struct {
	FPS        float64
	ScreenW    int
	ScreenH    int

	QualityFactor  float64 // Q
	DQualityFactor float64 // ΔQ
	RefreshRate    float64 // refresh_rate, in [0,1]

	BlurMul   float64 // m
	BlurConst float64 // c

	PGSCompatibility bool
	BTColorspace     Colorspace

	Candidates int
	Mode       grouping.Mode
}

// Default returns the configuration defaults named across spec.md §4.1-§4.4.
func Default() Config {
	return Config{
		FPS:              23.976,
		ScreenW:          1920,
		ScreenH:          1080,
		QualityFactor:    0.8,
		DQualityFactor:   0.035,
		RefreshRate:      1.0,
		BlurMul:          1.0,
		BlurConst:        1.0,
		PGSCompatibility: false,
		BTColorspace:     BT709,
		Candidates:       10,
		Mode:             grouping.SmallestWindows,
	}
}

// Validate checks the ranges and invariants the rest of the pipeline relies
// on, returning a curated configuration error of Kind EmptyEventRun
// (there is no dedicated Kind for bad config in spec.md §7, so this reuses
// EmptyEventRun's "caller bug" semantics: a bad Config is a construction-time
// mistake, not a data-dependent failure).
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return errors.Errorf(errors.EmptyEventRun, "config: fps must be positive, got %v", c.FPS)
	}
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return errors.Errorf(errors.EmptyEventRun, "config: screen dimensions must be positive, got %vx%v", c.ScreenW, c.ScreenH)
	}
	if c.RefreshRate < 0 || c.RefreshRate > 1 {
		return errors.Errorf(errors.EmptyEventRun, "config: refresh_rate must be in [0,1], got %v", c.RefreshRate)
	}
	if c.Candidates <= 0 {
		return errors.Errorf(errors.EmptyEventRun, "config: candidates must be positive, got %v", c.Candidates)
	}
	if c.QualityFactor < 0 || c.QualityFactor > 1 {
		return errors.Errorf(errors.EmptyEventRun, "config: quality_factor must be in [0,1], got %v", c.QualityFactor)
	}
	return nil
}
