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

package emit_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/subslate/pgscompile/config"
	"github.com/subslate/pgscompile/emit"
	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/pgtest"
	"github.com/subslate/pgscompile/model"
	"github.com/subslate/pgscompile/quantize"
)

func solidFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 200, 200, 255})
		}
	}
	return img
}

func TestEmitSingleAcquisitionThenUndisplay(t *testing.T) {
	events := []model.Event{
		{X: 260, Y: 400, Width: 200, Height: 40, TcIn: 0, TcOut: 1},
		{X: 260, Y: 400, Width: 200, Height: 40, TcIn: 1, TcOut: 2.5},
	}
	obj := &model.PGObject{
		Gfx:  []*image.RGBA{solidFrame(200, 40), solidFrame(200, 40)},
		Mask: []bool{true, true},
		Box:  geom.NewBox(260, 400, 200, 40),
		F:    0,
	}
	windows := []model.Window{{ID: 0, Box: geom.NewBox(256, 392, 208, 48)}}

	run := emit.Run{
		Events:           events,
		States:           []model.CompositionState{model.EpochStart, model.Normal},
		Windows:          windows,
		ObjectsPerWindow: [][]*model.PGObject{{obj}},
	}

	e := emit.Emitter{
		Config:    config.Default(),
		Quantizer: quantize.HistogramQuantizer{Colorspace: config.BT709},
		RLE:       quantize.ReferenceRLEEncoder{},
	}

	epoch, err := e.Emit(run)
	pgtest.ExpectSuccess(t, err)
	pgtest.ExpectEquality(t, len(epoch.DisplaySets) >= 2, true)
	pgtest.ExpectEquality(t, epoch.DisplaySets[0].PCS.State, model.EpochStart)

	last := epoch.DisplaySets[len(epoch.DisplaySets)-1]
	pgtest.ExpectEquality(t, last.WDS != nil, true)
	pgtest.ExpectEquality(t, len(last.ODS), 0)
}
