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

package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	color "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disableColor(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func TestDebugHandler_Format(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	log := slog.New(NewDebugHandler(&buf, slog.LevelDebug))
	log.Debug("timed call", "outcome", "op x returned", "elapsed_ms", 0.5)

	line := buf.String()
	assert.Contains(t, line, ` DEBUG  timed call outcome="op x returned" elapsed_ms=0.500000`)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestDebugHandler_Level(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	log := slog.New(NewDebugHandler(&buf, slog.LevelInfo))

	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", "count", 3, "ok", true)
	assert.Contains(t, buf.String(), ` WARN  shown count=3 ok=true`)
}

func TestDebugHandler_AttrsAndGroups(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	base := slog.New(NewDebugHandler(&buf, slog.LevelDebug)).With("run_id", "abc")
	base.WithGroup("req").Info("hi", "id", 1)
	base.Info("plain", slog.Group("g", slog.String("k", "v")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `hi run_id="abc" req.id=1`)
	assert.Contains(t, lines[1], `plain run_id="abc" g={k="v"}`)
}

func TestDebugHandler_WithAttrsDoesNotShareBacking(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	parent := NewDebugHandler(&buf, slog.LevelDebug).WithAttrs([]slog.Attr{slog.String("a", "1")})
	left := slog.New(parent.WithAttrs([]slog.Attr{slog.String("b", "2")}))
	right := slog.New(parent.WithAttrs([]slog.Attr{slog.String("c", "3")}))

	left.Info("left")
	right.Info("right")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `left a="1" b="2"`)
	assert.Contains(t, lines[1], `right a="1" c="3"`)
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink unavailable")
}

func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h failingHandler) WithGroup(string) slog.Handler { return h }

func TestMultiHandler(t *testing.T) {
	disableColor(t)
	ctx := context.Background()

	var pretty, structured bytes.Buffer
	multi := NewMultiHandler(
		NewDebugHandler(&pretty, slog.LevelDebug),
		slog.NewJSONHandler(&structured, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	log := slog.New(multi)

	assert.True(t, multi.Enabled(ctx, slog.LevelDebug))

	log.Debug("only pretty")
	assert.Contains(t, pretty.String(), "only pretty")
	assert.Empty(t, structured.String())

	log.With("k", "v").Info("both")
	assert.Contains(t, pretty.String(), `both k="v"`)
	assert.Contains(t, structured.String(), `"msg":"both"`)
	assert.Contains(t, structured.String(), `"k":"v"`)
}

func TestMultiHandler_Disabled(t *testing.T) {
	multi := NewMultiHandler(
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	assert.False(t, multi.Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_ContinuesAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(
		failingHandler{},
		slog.NewJSONHandler(&buf, nil),
	)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "still delivered", 0)
	err := multi.Handle(context.Background(), r)

	assert.EqualError(t, err, "sink unavailable")
	assert.Contains(t, buf.String(), "still delivered")
}
