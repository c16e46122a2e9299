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
	"errors"
	"fmt"

	env "github.com/caarlos0/env/v11"
	"github.com/sadakatsu/util/internal/types"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the complete application configuration
type Config struct {
	Service string       `json:"service_name" env:"APP_NAME" envDefault:"util"`
	Version string       `json:"version"      env:"VERSION"  envDefault:"v0.1.0"`
	Mode    types.Mode   `json:"mode"         env:"MODE"     envDefault:"debug"`
	Logger  LoggerConfig `json:"logger"       envPrefix:"LOG_"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*Config, error) {
	return load(env.Options{})
}

// LoadConfigFrom reads the configuration from environ instead of the
// process environment.
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidConfig)
	}
	if c.Version == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidConfig)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	return c.Logger.Validate()
}

func (c *Config) ServiceName() string {
	return c.Service
}

func (c *Config) GetVersion() string {
	return c.Version
}
