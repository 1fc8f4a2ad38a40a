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

// Package compliance implements the post-timestamping compliance checker
// (spec.md §4.7): it verifies bandwidth, buffer, and structural invariants
// on an already-timestamped Epoch without mutating it.
package compliance

import (
	"fmt"

	"github.com/subslate/pgscompile/errors"
	"github.com/subslate/pgscompile/model"
)

// Severity ranks a Finding's urgency.
type Severity int

const (
	Warning Severity = iota
	HighWarning
	Fail
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case HighWarning:
		return "high-warning"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Finding is one compliance observation.
type Finding struct {
	Kind     errors.Kind
	Severity Severity
	Message  string
}

// Report is the outcome of checking one epoch.
type Report struct {
	Compliant bool
	Findings  []Finding
}

// Checker evaluates an Epoch against the fixed PG decoder constants.
type Checker struct {
	FPS float64
}

// Check runs every compliance test named in spec.md §4.7 over epoch.
func (c Checker) Check(epoch model.Epoch) Report {
	var findings []Finding

	findings = append(findings, c.checkCodedBandwidth(epoch)...)
	findings = append(findings, c.checkDecodedBandwidth(epoch)...)
	findings = append(findings, c.checkDecodedBufferSize(epoch)...)
	findings = append(findings, c.checkCodedObjectSize(epoch)...)
	findings = append(findings, c.checkSequenceBalance(epoch)...)
	findings = append(findings, c.checkPaletteIDs(epoch)...)
	findings = append(findings, c.checkCopyRate(epoch)...)

	compliant := true
	for _, f := range findings {
		if f.Severity == Fail {
			compliant = false
		}
	}

	return Report{Compliant: compliant, Findings: findings}
}

func (c Checker) checkCodedBandwidth(epoch model.Epoch) []Finding {
	var findings []Finding
	var prevPTS float64
	first := true
	for _, ds := range epoch.DisplaySets {
		codedBytes := 0
		for _, o := range ds.ODS {
			codedBytes += len(o.Object.RLE)
		}
		if codedBytes == 0 {
			first = false
			prevPTS = ds.PCS.PTS
			continue
		}
		if !first {
			intervalSeconds := (ds.PCS.PTS - prevPTS) / model.Freq
			if intervalSeconds > 0 {
				rate := float64(codedBytes) / intervalSeconds
				findings = append(findings, rateFinding(rate, model.RX, errors.BandwidthExceeded, "coded-buffer"))
			}
		}
		prevPTS = ds.PCS.PTS
		first = false
	}
	return compact(findings)
}

func (c Checker) checkDecodedBandwidth(epoch model.Epoch) []Finding {
	var findings []Finding
	for _, ds := range epoch.DisplaySets {
		decodeDuration := (ds.PCS.PTS - ds.PCS.DTS) / model.Freq
		if decodeDuration <= 0 {
			continue
		}
		decodedBytes := 0
		for _, o := range ds.ODS {
			decodedBytes += o.Object.Width * o.Object.Height
		}
		if decodedBytes == 0 {
			continue
		}
		rate := float64(decodedBytes) / decodeDuration
		findings = append(findings, rateFinding(rate, model.RD, errors.BandwidthExceeded, "decoded-buffer"))
	}
	return compact(findings)
}

func (c Checker) checkDecodedBufferSize(epoch model.Epoch) []Finding {
	var findings []Finding
	live := map[int]int{}
	for _, ds := range epoch.DisplaySets {
		for _, o := range ds.ODS {
			if o.SequenceFirst {
				live[o.Object.ObjectID] = o.Object.Width * o.Object.Height
			}
		}
		total := 0
		for _, a := range live {
			total += a
		}
		if total > model.DecodedBufSize {
			findings = append(findings, Finding{
				Kind:     errors.DecoderBufferOverrun,
				Severity: Fail,
				Message:  fmt.Sprintf("cumulative decoded object size %d exceeds %d", total, model.DecodedBufSize),
			})
		}
	}
	return compact(findings)
}

func (c Checker) checkCodedObjectSize(epoch model.Epoch) []Finding {
	var findings []Finding
	for _, ds := range epoch.DisplaySets {
		for _, o := range ds.ODS {
			if len(o.Object.RLE) > model.CodedBufSize {
				findings = append(findings, Finding{
					Kind:     errors.MalformedDisplaySet,
					Severity: Fail,
					Message:  fmt.Sprintf("object %d coded size %d exceeds %d", o.Object.ObjectID, len(o.Object.RLE), model.CodedBufSize),
				})
			}
		}
	}
	return findings
}

func (c Checker) checkSequenceBalance(epoch model.Epoch) []Finding {
	firsts := map[int]int{}
	lasts := map[int]int{}
	for _, ds := range epoch.DisplaySets {
		for _, o := range ds.ODS {
			if o.SequenceFirst {
				firsts[o.Object.ObjectID]++
			}
			if o.SequenceLast {
				lasts[o.Object.ObjectID]++
			}
		}
	}
	var findings []Finding
	for id, n := range firsts {
		if n != lasts[id] {
			findings = append(findings, Finding{
				Kind:     errors.MalformedDisplaySet,
				Severity: Fail,
				Message:  fmt.Sprintf("object %d has %d SEQUENCE_FIRST but %d SEQUENCE_LAST", id, n, lasts[id]),
			})
		}
	}
	return findings
}

func (c Checker) checkPaletteIDs(epoch model.Epoch) []Finding {
	var findings []Finding
	for _, ds := range epoch.DisplaySets {
		for _, p := range ds.PDS {
			if p.PaletteID >= model.MaxPaletteID {
				findings = append(findings, Finding{
					Kind:     errors.MalformedDisplaySet,
					Severity: Fail,
					Message:  fmt.Sprintf("palette id %d >= %d", p.PaletteID, model.MaxPaletteID),
				})
			}
			if len(p.Entries) > model.MaxPaletteEntries {
				findings = append(findings, Finding{
					Kind:     errors.MalformedDisplaySet,
					Severity: Fail,
					Message:  fmt.Sprintf("palette %d has %d entries, max %d", p.PaletteID, len(p.Entries), model.MaxPaletteEntries),
				})
			}
		}
	}
	return findings
}

func (c Checker) checkCopyRate(epoch model.Epoch) []Finding {
	var findings []Finding
	for _, ds := range epoch.DisplaySets {
		if ds.WDS == nil {
			continue
		}
		copyDuration := (ds.PCS.PTS - ds.WDS.PTS) / model.Freq
		if copyDuration <= 0 {
			continue
		}
		area := 0
		for _, w := range ds.WDS.Windows {
			area += w.Box.Area()
		}
		if area == 0 {
			continue
		}
		rate := float64(area) / copyDuration
		findings = append(findings, rateFinding(rate, model.RC, errors.BandwidthExceeded, "plane-copy"))
	}
	return compact(findings)
}

func rateFinding(rate, limit float64, kind errors.Kind, label string) Finding {
	switch {
	case rate > 2*limit:
		return Finding{Kind: kind, Severity: HighWarning, Message: fmt.Sprintf("%s rate %.0f exceeds 2x limit %.0f", label, rate, limit)}
	case rate > limit:
		return Finding{Kind: kind, Severity: Warning, Message: fmt.Sprintf("%s rate %.0f exceeds limit %.0f", label, rate, limit)}
	default:
		return Finding{}
	}
}

// compact drops zero-value (non-)findings produced by rateFinding's default
// case.
func compact(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Message == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}
