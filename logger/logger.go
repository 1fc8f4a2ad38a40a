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

// Package logger provides a ring-buffer diagnostic log shared by every
// package in pgscompile. Non-fatal conditions from the error handling
// design (blur-retry escalation, skipped epochs, bandwidth and buffer
// warnings) are written here rather than returned as errors, so a caller
// can inspect the full history of an epoch's compilation after the fact.
// Palette-overflow retries in quantize are not logged.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission allows a caller to suppress logging conditionally (for example
// to mute warnings below a configured verbosity). Callers that always want
// to log use the Allow sentinel.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool { return true }

// Allow is a Permission that always allows logging.
var Allow Permission = allow{}

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s\n", e.tag, e.detail)
}

// Logger is a fixed-capacity ring buffer of tagged diagnostic entries.
type Logger struct {
	mu       sync.Mutex
	capacity int
	entries  []entry
}

// NewLogger creates a Logger that retains at most capacity entries, discarding
// the oldest entry once full.
func NewLogger(capacity int) *Logger {
	return &Logger{capacity: capacity}
}

func detailString(detail interface{}) string {
	switch d := detail.(type) {
	case error:
		return d.Error()
	case fmt.Stringer:
		return d.String()
	case string:
		return d
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Log appends a tagged entry if permission allows it. detail is rendered via
// Error(), String() or the %v verb, in that order of preference.
func (l *Logger) Log(permission Permission, tag string, detail interface{}) {
	if !permission.AllowLogging() {
		return
	}
	l.append(tag, detailString(detail))
}

// Logf appends a tagged, formatted entry if permission allows it.
func (l *Logger) Logf(permission Permission, tag string, format string, args ...interface{}) {
	if !permission.AllowLogging() {
		return
	}
	l.append(tag, fmt.Sprintf(format, args...))
}

func (l *Logger) append(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry{tag: tag, detail: detail})
	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Write renders every retained entry, oldest first.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.String())
	}
	io.WriteString(w, b.String())
}

// Tail renders at most n of the most recently retained entries, oldest
// first. Asking for more entries than are retained is not an error.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 {
		return
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, e := range l.entries[start:] {
		b.WriteString(e.String())
	}
	io.WriteString(w, b.String())
}

// Clear discards every retained entry.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

// def is the package-level logger used by the convenience functions
// below. 1000 entries is enough to cover a long epoch's retries and
// warnings without growing unbounded.
var def = NewLogger(1000)

// Log appends a tagged entry to the default logger, always allowed.
func Log(tag string, detail interface{}) {
	def.Log(Allow, tag, detail)
}

// Logf appends a tagged, formatted entry to the default logger, always
// allowed.
func Logf(tag string, format string, args ...interface{}) {
	def.Logf(Allow, tag, format, args...)
}

// Write renders every entry retained by the default logger.
func Write(w io.Writer) {
	def.Write(w)
}

// Tail renders the n most recent entries retained by the default logger.
func Tail(w io.Writer, n int) {
	def.Tail(w, n)
}

// Clear discards every entry retained by the default logger.
func Clear() {
	def.Clear()
}
