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

// Package compiler wires the whole core pipeline together (spec.md §2, §5):
// grouping engine -> per-window temporal segmenter -> acquisition scheduler
// -> display-set emitter -> PTS/DTS assigner, turning event runs into
// compliant Epochs. Epochs are independent and compiled in parallel.
package compiler

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/subslate/pgscompile/compliance"
	"github.com/subslate/pgscompile/config"
	"github.com/subslate/pgscompile/emit"
	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/grouping"
	"github.com/subslate/pgscompile/internal/assert"
	"github.com/subslate/pgscompile/logger"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/quantize"
	"github.com/subslate/pgscompile/schedule"
	"github.com/subslate/pgscompile/timestamp"
)

// Compiler holds the config and collaborator implementations shared by
// every epoch compiled in a run.
type Compiler struct {
	Config    config.Config
	Quantizer quantize.SequenceQuantizer
	RLE       quantize.RLEEncoder
}

// New builds a Compiler with the reference quantize/RLE collaborators
// wired in, matching cfg's colorspace.
func New(cfg config.Config) Compiler {
	return Compiler{
		Config:    cfg,
		Quantizer: quantize.HistogramQuantizer{Colorspace: cfg.BTColorspace},
		RLE:       quantize.ReferenceRLEEncoder{},
	}
}

// CompileAll turns each event run into one Epoch, processing runs in
// parallel (spec.md §5: "no shared mutable state between epochs; epochs may
// be processed in parallel across worker threads with no coordination").
// A fatal error from any epoch aborts the whole call; non-fatal errors (per
// errors.Kind.Fatal) are logged and that epoch is skipped.
func (c Compiler) CompileAll(ctx context.Context, runs [][]model.Event) ([]model.Epoch, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	epochs := make([]*model.Epoch, len(runs))
	g, _ := errgroup.WithContext(ctx)

	for i, run := range runs {
		i, run := i, run
		g.Go(func() error {
			epoch, err := c.compileEpoch(run)
			if err != nil {
				if errors.Kind(err).Fatal() {
					return err
				}
				logger.Logf("compiler", "epoch %d skipped: %v", i, err)
				return nil
			}
			c.reportCompliance(i, epoch)
			epochs[i] = &epoch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.Epoch, 0, len(epochs))
	for _, e := range epochs {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

// compileEpoch runs the full pipeline for one event run believed to belong
// to a single epoch (spec.md §2 control flow).
func (c Compiler) compileEpoch(events []model.Event) (model.Epoch, error) {
	if len(events) == 0 {
		return model.Epoch{}, errors.Errorf(errors.EmptyEventRun, "compiler: empty epoch run")
	}

	// An epoch's stages run strictly in order on the goroutine that started
	// it (spec.md §5); pin it once and recheck at each stage boundary so a
	// future change that accidentally hops work onto a pool goroutine
	// mid-pipeline fails loudly (a panic, in every build) instead of
	// silently racing another epoch's state.
	pin := assert.NewPin()

	ge := grouping.Engine{
		BlurMul:    c.Config.BlurMul,
		BlurConst:  c.Config.BlurConst,
		Candidates: c.Config.Candidates,
		Mode:       c.Config.Mode,
	}
	wobs, err := ge.Group(events)
	if err != nil {
		return model.Epoch{}, err
	}
	if len(wobs) > model.MaxWindows {
		wobs = wobs[:model.MaxWindows]
	}

	windows := make([]model.Window, len(wobs))
	windowBoxes := make([]geom.Box, len(wobs))
	objectsPerWindow := make([][]*model.PGObject, len(wobs))

	for i, wob := range wobs {
		box := wob.Window()
		windows[i] = model.Window{ID: i, Box: box}
		windowBoxes[i] = box
		objectsPerWindow[i] = segmentWindow(events, wob, box)
	}

	if !pin.Same() {
		panic("compiler: epoch pipeline hopped goroutines between grouping and scheduling")
	}

	timings := buildTimings(events, c.Config.FPS)
	schedParams := schedule.Params{
		FPS:           c.Config.FPS,
		Compatibility: c.Config.PGSCompatibility,
		Quality:       c.Config.QualityFactor,
		DQuality:      c.Config.DQualityFactor,
		RefreshRate:   c.Config.RefreshRate,
		RD:            float64(model.RD),
		RC:            float64(model.RC),
	}
	plan := schedule.Schedule(windowBoxes, objectsPerWindow, timings, schedParams)

	emitter := emit.Emitter{Config: c.Config, Quantizer: c.Quantizer, RLE: c.RLE}
	epoch, err := emitter.Emit(emit.Run{
		Events:           events,
		States:           plan.States,
		Windows:          windows,
		ObjectsPerWindow: objectsPerWindow,
	})
	if err != nil {
		return model.Epoch{}, err
	}

	assigner := timestamp.Assigner{
		ScreenW:       c.Config.ScreenW,
		ScreenH:       c.Config.ScreenH,
		Compatibility: c.Config.PGSCompatibility,
	}
	buf := timestamp.NewPGObjectBuffer(model.DecodedBufSize)
	for i := range epoch.DisplaySets {
		if err := assigner.Assign(&epoch.DisplaySets[i], buf); err != nil {
			return model.Epoch{}, err
		}
	}

	if !pin.Same() {
		panic("compiler: epoch pipeline hopped goroutines after timestamp assignment")
	}

	return epoch, nil
}

// reportCompliance runs the post-timestamping compliance checker (spec.md
// §4.7) over a finished epoch and routes every finding through the same
// logger used for skipped epochs. A non-compliant epoch is still returned
// by CompileAll — spec.md §7 promises the compliant stream "plus a
// structured diagnostic log... non-compliant epochs are still emitted but
// flagged", not dropped.
func (c Compiler) reportCompliance(i int, epoch model.Epoch) {
	checker := compliance.Checker{FPS: c.Config.FPS}
	report := checker.Check(epoch)
	for _, f := range report.Findings {
		logger.Logf("compliance", "epoch %d: %s: %s", i, f.Severity, f.Message)
	}
	if !report.Compliant {
		logger.Logf("compliance", "epoch %d: flagged non-compliant", i)
	}
}

// buildTimings derives each event's (duration, gap) pair in frames from its
// tc_in/tc_out pair (spec.md §4.4).
func buildTimings(events []model.Event, fps float64) []schedule.EventTiming {
	out := make([]schedule.EventTiming, len(events))
	for i, ev := range events {
		dt := int(roundFrames(ev.Dt(), fps))
		delay := 0
		if i > 0 {
			delay = int(roundFrames(ev.TcIn-events[i-1].TcOut, fps))
		}
		out[i] = schedule.EventTiming{Dt: dt, Delay: delay}
	}
	return out
}

func roundFrames(seconds, fps float64) float64 {
	return math.Round(seconds * fps)
}
