// Package diag provides the structured diagnostics sink shared by every
// rietgo package.
//
// The refinement core never panics and never fails silently: every rejected
// value, skipped phase, unresolved alias, and aborted fit degrades to a log
// entry emitted through this package. The backend is zerolog; by default
// output goes to a human-readable console writer on stderr at the warn
// level, so a library consumer sees problems without any setup.
//
// ⚙️ Usage:
//
//	diag.SetLevel(zerolog.DebugLevel)       // see validation traffic
//	diag.SetOutput(io.Discard)              // silence entirely
//	diag.L().Info().Str("k", "v").Msg("..") // raw logger access
//
// The helper functions (Validated, RangeMismatch, ...) mirror the
// validation outcomes of the core value model so that every validator
// reports through one vocabulary.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
)

// L returns the shared package logger. Callers chain level methods off the
// returned pointer; use SetOutput/SetLevel to reconfigure the instance.
func L() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	return &logger
}

// SetOutput redirects all diagnostics to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}

// SetLevel adjusts the minimum emitted level (zerolog.DebugLevel shows
// per-validation traffic, zerolog.Disabled silences everything).
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}

// Validated records a successful validation of the named attribute.
// Emitted at debug level; name is the resolved hierarchical name.
func Validated(name string, value interface{}, stage string) {
	L().Debug().
		Str("param", name).
		Str("stage", stage).
		Interface("value", value).
		Msg("validated")
}

// Fallback records that an unresolvable input fell back to a prior value.
func Fallback(name string, fallback interface{}) {
	L().Debug().
		Str("param", name).
		Interface("fallback", fallback).
		Msg("missing value, using fallback")
}

// TypeMismatch records a rejected value of the wrong type or shape.
func TypeMismatch(name string, value interface{}, expected string) {
	L().Error().
		Str("param", name).
		Interface("value", value).
		Str("expected", expected).
		Msg("type mismatch, value rejected")
}

// RangeMismatch records a numeric value outside [ge, le]; the diagnostic
// names the offending value and the allowed range.
func RangeMismatch(name string, value, ge, le float64) {
	L().Error().
		Str("param", name).
		Float64("value", value).
		Str("allowed", fmt.Sprintf("[%g, %g]", ge, le)).
		Msg("value out of range, rejected")
}

// ChoiceMismatch records a value outside the allowed membership set.
func ChoiceMismatch(name string, value interface{}, allowed []string) {
	L().Error().
		Str("param", name).
		Interface("value", value).
		Strs("allowed", allowed).
		Msg("value not in allowed set, rejected")
}

// RegexMismatch records a string value that fails the shape pattern.
func RegexMismatch(name, value, pattern string) {
	L().Error().
		Str("param", name).
		Str("value", value).
		Str("pattern", pattern).
		Msg("value does not match pattern, rejected")
}
