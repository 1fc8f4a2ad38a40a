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

// Package segment implements the temporal object segmenter (spec.md §4.3):
// a per-window streaming analyzer that chains perceptually-similar cropped
// bitmaps into PGObjects.
package segment

import (
	"image"
	"math"

	"github.com/subslate/pgscompile/geom"
	"github.com/subslate/pgscompile/internal/rgba"
	"github.com/subslate/pgscompile/model"
)

// ThetaSSIM and ThetaOverlap defaults (spec.md §4.3.1).
const (
	DefaultThetaSSIM    = 0.95
	DefaultThetaOverlap = 0.995
)

// Segmenter is the explicit state machine named in spec.md §9, replacing
// the source's coroutine: Step is called once per frame (or with nil as a
// terminator) and returns a PGObject whenever a run boundary is detected.
type Segmenter struct {
	ThetaSSIM    float64
	ThetaOverlap float64

	width, height int

	accum  *image.RGBA
	frames []*image.RGBA
	mask   []bool
	fStart int
	unseen int
	k      int
}

// NewSegmenter creates a segmenter for a window of the given size.
func NewSegmenter(width, height int) *Segmenter {
	return &Segmenter{
		ThetaSSIM:    DefaultThetaSSIM,
		ThetaOverlap: DefaultThetaOverlap,
		width:        width,
		height:       height,
	}
}

// Step feeds one cropped RGBA frame (already positioned at the window's own
// coordinate origin) into the segmenter, or nil to signal the end of the
// stream. It returns a completed PGObject whenever the current run ends,
// either because a dissimilar frame arrived or because the stream ended.
func (s *Segmenter) Step(frame *image.RGBA) *model.PGObject {
	k := s.k
	s.k++

	if frame == nil {
		if len(s.frames) == 0 {
			return nil
		}
		return s.finish(s.unseen)
	}

	hasContent := rgba.AnyNonTransparent(frame)

	if len(s.frames) == 0 {
		if !hasContent {
			return nil
		}
		s.fStart = k
		s.mask = []bool{hasContent}
		s.frames = []*image.RGBA{frame}
		s.accum = s.newAccumulator()
		rgba.CompositeOver(s.accum, frame)
		s.unseen = bumpUnseen(hasContent, 0)
		return nil
	}

	// mask momentarily runs one entry ahead of frames while the run/flush
	// decision is pending (see finishPendingFlush on trimming).
	s.mask = append(s.mask, hasContent)

	score, cross := similarity(s.accum, frame, s.ThetaOverlap)
	threshold := math.Max(1.0, s.ThetaSSIM+(1-s.ThetaSSIM)*(1-cross))

	if score >= threshold {
		s.frames = append(s.frames, frame)
		rgba.CompositeOver(s.accum, frame)
		s.unseen = bumpUnseen(hasContent, s.unseen)
		return nil
	}

	emitted := s.finishPendingFlush()

	s.fStart = k
	s.mask = []bool{hasContent}
	s.frames = []*image.RGBA{frame}
	s.accum = s.newAccumulator()
	rgba.CompositeOver(s.accum, frame)
	s.unseen = bumpUnseen(hasContent, 0)

	return emitted
}

func bumpUnseen(hasContent bool, unseen int) int {
	if hasContent {
		return 0
	}
	return unseen + 1
}

func (s *Segmenter) newAccumulator() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, s.width, s.height))
}

// finish emits the current run when the stream terminates: mask and frames
// are already the same length, so both are trimmed by the same trailing
// trimBy count (the trailing run of empty/unseen frames).
func (s *Segmenter) finish(trimBy int) *model.PGObject {
	mask := trimTrailing(s.mask, trimBy)
	frames := trimFramesTrailing(s.frames, trimBy)
	return s.build(mask, frames)
}

// finishPendingFlush emits the current run when a mismatching frame just
// arrived: at this point mask holds one more entry than frames (the
// just-appended, not-yet-accepted current frame), so mask is trimmed by
// 1+unseen while frames is trimmed by unseen only, per spec.md §4.3 step 4.
func (s *Segmenter) finishPendingFlush() *model.PGObject {
	mask := trimTrailing(s.mask, 1+s.unseen)
	frames := trimFramesTrailing(s.frames, s.unseen)
	return s.build(mask, frames)
}

func (s *Segmenter) build(mask []bool, frames []*image.RGBA) *model.PGObject {
	box := bbox(s.accum)
	return &model.PGObject{
		Gfx:  frames,
		Box:  box,
		Mask: mask,
		F:    s.fStart,
	}
}

func trimTrailing(mask []bool, trimBy int) []bool {
	if trimBy <= 0 {
		return mask
	}
	if trimBy >= len(mask) {
		return nil
	}
	out := make([]bool, len(mask)-trimBy)
	copy(out, mask[:len(out)])
	return out
}

func trimFramesTrailing(frames []*image.RGBA, trimBy int) []*image.RGBA {
	if trimBy <= 0 {
		return frames
	}
	if trimBy >= len(frames) {
		return nil
	}
	out := make([]*image.RGBA, len(frames)-trimBy)
	copy(out, frames[:len(out)])
	return out
}

// bbox returns the tight box of non-transparent pixels in img, matching
// PGObject.Box's invariant (union of per-frame non-transparent boxes —
// equivalently, the accumulator's own bounding box, since CompositeOver
// only ever adds visible pixels).
func bbox(img *image.RGBA) geom.Box {
	if img == nil {
		return geom.Box{}
	}
	b := img.Bounds()
	minX, minY := b.Dx(), b.Dy()
	maxX, maxY := -1, -1
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX || maxY < minY {
		return geom.Box{}
	}
	return geom.NewBox(minX, minY, maxX-minX+1, maxY-minY+1)
}
