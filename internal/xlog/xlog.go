// Package xlog is a minimal leveled logger for load-time diagnostics
// (kernel accepted/rejected, shadowing, planetary-constants fallback).
// Three levels stay off (zero allocation, no formatting work) until
// enabled, rather than one all-or-nothing switch.
package xlog

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Level selects which messages reach the output writer.
type Level int32

const (
	LevelSilent Level = iota
	LevelWarn
	LevelDebug
)

var (
	level  atomic.Int32
	output io.Writer = os.Stderr
)

// SetLevel changes the active log level. The zero value (LevelSilent) is
// the default: logging is off unless explicitly enabled.
func SetLevel(l Level) { level.Store(int32(l)) }

// SetOutput redirects log output; primarily useful for tests.
func SetOutput(w io.Writer) { output = w }

func enabled(l Level) bool { return Level(level.Load()) >= l }

// Debugf logs a message only when the level is LevelDebug.
func Debugf(format string, args ...any) {
	if !enabled(LevelDebug) {
		return
	}
	fmt.Fprintf(output, "[debug] "+format+"\n", args...)
}

// Warnf logs a message at LevelWarn or above. Used for recoverable,
// non-fatal conditions such as a skewed lookup-table decode
// (kernelerr.KindIntegrityMismatch).
func Warnf(format string, args ...any) {
	if !enabled(LevelWarn) {
		return
	}
	fmt.Fprintf(output, "[warn] "+format+"\n", args...)
}
