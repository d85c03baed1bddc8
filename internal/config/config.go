// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/pkg/reveal"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	Env         string        `env:"TAPESTRY_ENV" envDefault:"development"`
	LogLevel    string        `env:"TAPESTRY_LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"TAPESTRY_LOG_FORMAT"`
	Story       string        `env:"TAPESTRY_STORY"`
	RedisAddr   string        `env:"TAPESTRY_REDIS_ADDR"`
	MetricsAddr string        `env:"TAPESTRY_METRICS_ADDR"`
	CharDelay   time.Duration `env:"TAPESTRY_CHAR_DELAY" envDefault:"30ms"`
	LineGap     time.Duration `env:"TAPESTRY_LINE_GAP" envDefault:"300ms"`
	Typewriter  bool          `env:"TAPESTRY_TYPEWRITER" envDefault:"true"`
}

// DefaultEnvFile is read when Load is given no files. It may be absent.
const DefaultEnvFile = ".env"

// Load reads the given .env files, then the environment. Variables already
// set win. A named file must exist; DefaultEnvFile, used when none are
// named, is skipped when missing.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and timing.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid TAPESTRY_ENV %q: expected %s or %s", c.Env, EnvDevelopment, EnvProduction)
	}
	switch c.LogFormat {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid TAPESTRY_LOG_FORMAT %q", c.LogFormat)
	}
	return c.Timing().Validate()
}

// IsProduction reports whether TAPESTRY_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Strict reports whether contract violations should be returned.
// Production engines log and ignore them instead.
func (c *Config) Strict() bool {
	return !c.IsProduction()
}

// Format is the log format, JSON in production unless set explicitly.
func (c *Config) Format() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	if c.IsProduction() {
		return logging.FormatJSON
	}
	return logging.FormatText
}

// Timing is the body text reveal timing.
func (c *Config) Timing() reveal.Timing {
	t := reveal.DefaultTiming
	t.CharDelay = c.CharDelay
	t.LineGap = c.LineGap
	return t
}
