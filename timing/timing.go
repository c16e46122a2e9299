// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package timing measures how long a call takes and reports it as a debug
// log record.
//
// Nothing is measured or formatted unless the logger has debug enabled, so
// wrapping hot paths costs one Enabled check in production.
package timing

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// RecordMessage is the message of every record emitted by a Timer.
	RecordMessage = "call timed in ms"

	// OutcomeKey holds the formatted label followed by the outcome.
	OutcomeKey = "outcome"
	// ElapsedKey holds the elapsed wall-clock time in milliseconds as a float64.
	ElapsedKey = "elapsed_ms"

	outcomeReturned = "returned"
	outcomeThrew    = "threw an Exception"
)

// Procedure is a call with no result.
type Procedure func() error

// Function is a call that produces a value.
type Function[T any] func() (T, error)

// Timer times calls and logs them at debug level. The zero value and a nil
// *Timer log to slog.Default().
type Timer struct {
	logger *slog.Logger
}

// New returns a Timer logging to logger. A nil logger falls back to
// slog.Default() at each call.
func New(logger *slog.Logger) *Timer {
	return &Timer{logger: logger}
}

// Time runs fn and returns its error unchanged. See TimeValue.
func (t *Timer) Time(ctx context.Context, fn Procedure, format string, args ...any) error {
	_, err := TimeValue(ctx, t, func() (struct{}, error) {
		return struct{}{}, fn()
	}, format, args...)
	return err
}

// TimeValue runs fn and returns its result and error unchanged.
//
// When the timer's logger has debug enabled, one record is emitted after fn
// finishes, including when fn panics: OutcomeKey is format rendered against
// args followed by "returned" or "threw an Exception", ElapsedKey is the
// duration in milliseconds. Otherwise fn is called directly and args are
// never formatted.
func TimeValue[T any](ctx context.Context, t *Timer, fn Function[T], format string, args ...any) (result T, err error) {
	logger := t.log()
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return fn()
	}

	returned := false
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		logger.LogAttrs(ctx, slog.LevelDebug, RecordMessage,
			slog.String(OutcomeKey, describe(format, args, returned)),
			slog.Float64(ElapsedKey, milliseconds(elapsed)),
		)
	}()

	result, err = fn()
	returned = err == nil
	return result, err
}

// Time is (*Timer).Time on slog.Default().
func Time(ctx context.Context, fn Procedure, format string, args ...any) error {
	return (*Timer)(nil).Time(ctx, fn, format, args...)
}

// Value is TimeValue on slog.Default().
func Value[T any](ctx context.Context, fn Function[T], format string, args ...any) (T, error) {
	return TimeValue(ctx, nil, fn, format, args...)
}

func (t *Timer) log() *slog.Logger {
	if t == nil || t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

func describe(format string, args []any, returned bool) string {
	outcome := outcomeThrew
	if returned {
		outcome = outcomeReturned
	}
	return fmt.Sprintf(format, args...) + " " + outcome
}

func milliseconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d.Nanoseconds()) / 1e6
}
