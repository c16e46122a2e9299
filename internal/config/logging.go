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

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sadakatsu/util/internal/types"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatText   = "text"

	ExporterNone     = "none"
	ExporterOTLPHTTP = "otlp-http"
	ExporterOTLPGRPC = "otlp-grpc"
)

type LoggerConfig struct {
	Level          string `env:"LEVEL"          envDefault:"info"`   // debug|info|warn|error
	Format         string `env:"FORMAT"         envDefault:"pretty"` // pretty|json|text
	Output         string `env:"OUTPUT"         envDefault:"stderr"` // stdout|stderr
	ExtraFieldsRaw string `env:"FIELDS"`                             // key1=val1,key2=val2
	OTELExporter   string `env:"OTEL_EXPORTER"  envDefault:"none"`   // none|otlp-http|otlp-grpc
	OTELEndpoint   string `env:"OTEL_ENDPOINT"`
}

func (lc *LoggerConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(lc.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, lc.Level)
	}
	switch lc.Format {
	case FormatPretty, FormatJSON, FormatText:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, lc.Format)
	}
	switch lc.Output {
	case "stdout", "stderr":
	default:
		return fmt.Errorf("%w: unknown log output %q", ErrInvalidConfig, lc.Output)
	}
	switch lc.OTELExporter {
	case ExporterNone, ExporterOTLPHTTP, ExporterOTLPGRPC:
	default:
		return fmt.Errorf("%w: unknown OTEL exporter %q", ErrInvalidConfig, lc.OTELExporter)
	}
	return nil
}

// ParseExtraFields parses ExtraFieldsRaw into a map.
func (lc *LoggerConfig) ParseExtraFields() map[string]string {
	res := make(map[string]string)
	if lc == nil || lc.ExtraFieldsRaw == "" {
		return res
	}
	pairs := strings.Split(lc.ExtraFieldsRaw, ",")
	for _, p := range pairs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(kv[0])
		v := strings.TrimSpace(kv[1])
		if k != "" {
			res[k] = v
		}
	}
	return res
}

func (lc *LoggerConfig) ParseLevel() slog.Level {
	if lc == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(lc.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogLevel is the configured level, lowered to debug in debug mode.
func (c *Config) LogLevel() slog.Level {
	level := c.Logger.ParseLevel()
	if c.Mode == types.ModeDebug && level > slog.LevelDebug {
		return slog.LevelDebug
	}
	return level
}

// Writer returns the configured log destination.
func (c *Config) Writer() io.Writer {
	if c.Logger.Output == "stdout" {
		return os.Stdout
	}
	return os.Stderr
}

func (c *Config) LogFormat() string              { return c.Logger.Format }
func (c *Config) OTELExporter() string           { return c.Logger.OTELExporter }
func (c *Config) OTELEndpoint() string           { return c.Logger.OTELEndpoint }
func (c *Config) ExtraFields() map[string]string { return c.Logger.ParseExtraFields() }
func (c *Config) ModeField() types.Mode          { return c.Mode }
