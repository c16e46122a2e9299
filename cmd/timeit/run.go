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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/sadakatsu/util/internal/config"
	"github.com/sadakatsu/util/internal/logger"
	"github.com/sadakatsu/util/internal/types"
	"github.com/sadakatsu/util/timing"
)

type options struct {
	Label   string
	Mode    string
	Command []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger replaces the logger built from the environment when set.
	Logger *slog.Logger
}

// run executes the command under a timer and returns the exit code to use.
func run(ctx context.Context, opts options) (int, error) {
	if len(opts.Command) == 0 {
		return 2, errors.New("no command given")
	}

	log := opts.Logger
	if log == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return 1, err
		}
		// Allow CLI flags to override the environment.
		if opts.Mode != "" {
			cfg.Mode = types.Mode(opts.Mode)
			if err := cfg.Validate(); err != nil {
				return 2, err
			}
		}

		lg, err := logger.NewLogger(ctx, cfg)
		if err != nil {
			return 1, err
		}
		defer func() {
			if err := lg.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down logger provider", "error", err)
			}
		}()
		log = lg.Slogger
	}

	runID, err := uuid.NewV4()
	if err != nil {
		return 1, fmt.Errorf("failed to generate run id: %w", err)
	}
	timer := timing.New(log.With("run_id", runID.String()))

	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err = timer.Time(ctx, cmd.Run, opts.Label, strings.Join(opts.Command, " "))

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return 1, err
	}
}
