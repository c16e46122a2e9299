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
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/sadakatsu/util/internal/config"
	"github.com/sadakatsu/util/internal/types"
)

// Options is implemented by *config.Config.
type Options interface {
	ServiceName() string
	GetVersion() string
	ModeField() types.Mode
	LogLevel() slog.Level
	LogFormat() string
	OTELExporter() string
	OTELEndpoint() string
	ExtraFields() map[string]string
	Writer() io.Writer
}

var _ Options = (*config.Config)(nil)

type Logger struct {
	Slogger *slog.Logger
	*sdklog.LoggerProvider
}

func NewLogger(ctx context.Context, opts Options) (*Logger, error) {
	w := opts.Writer()
	if w == nil {
		return nil, fmt.Errorf("no log writer")
	}

	level := opts.LogLevel()
	handlers := []slog.Handler{localHandler(opts, w, level)}

	var provider *sdklog.LoggerProvider
	if opts.OTELExporter() != config.ExporterNone {
		var err error
		provider, err = newLoggerProvider(ctx, opts)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &levelHandler{
			level: level,
			next: otelslog.NewHandler(opts.ServiceName(),
				otelslog.WithLoggerProvider(provider),
				otelslog.WithVersion(opts.GetVersion())),
		})
	}

	var handler slog.Handler = NewMultiHandler(handlers...)
	if len(handlers) == 1 {
		handler = handlers[0]
	}

	return &Logger{
		Slogger:        slog.New(handler).With(extraAttrs(opts.ExtraFields())...),
		LoggerProvider: provider,
	}, nil
}

// Shutdown flushes and stops the OTLP exporter, if any.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l.LoggerProvider == nil {
		return nil
	}
	return l.LoggerProvider.Shutdown(ctx)
}

func localHandler(opts Options, w io.Writer, level slog.Level) slog.Handler {
	switch opts.LogFormat() {
	case config.FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case config.FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return NewDebugHandler(w, level)
	}
}

func newLoggerProvider(ctx context.Context, opts Options) (*sdklog.LoggerProvider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(opts.ServiceName()),
			semconv.ServiceVersion(opts.GetVersion()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build log resource: %w", err)
	}

	var exporter sdklog.Exporter
	switch opts.OTELExporter() {
	case config.ExporterOTLPHTTP:
		var httpOpts []otlploghttp.Option
		if endpoint := opts.OTELEndpoint(); endpoint != "" {
			httpOpts = append(httpOpts, otlploghttp.WithEndpointURL(endpoint))
		}
		exporter, err = otlploghttp.New(ctx, httpOpts...)
	case config.ExporterOTLPGRPC:
		var grpcOpts []otlploggrpc.Option
		if endpoint := opts.OTELEndpoint(); endpoint != "" {
			grpcOpts = append(grpcOpts, otlploggrpc.WithEndpointURL(endpoint))
		}
		exporter, err = otlploggrpc.New(ctx, grpcOpts...)
	default:
		return nil, fmt.Errorf("unsupported OTEL exporter %q", opts.OTELExporter())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s log exporter: %w", opts.OTELExporter(), err)
	}

	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	), nil
}

func extraAttrs(fields map[string]string) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, fields[k]))
	}
	return attrs
}

// levelHandler applies the configured level to a handler that has none.
type levelHandler struct {
	level slog.Level
	next  slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level && h.next.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithGroup(name)}
}
