package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/xtding233/arena-odds/internal/logger"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevelName    string        `env:"LOG_LEVEL" envDefault:"info"`
	DataDir         string        `env:"DATA_DIR" envDefault:"./data"`
	Locale          string        `env:"LOCALE" envDefault:"enUS"`
	Ruleset         string        `env:"RULESET" envDefault:"default"`
	WatchRules      bool          `env:"WATCH_RULES" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// RNGSeed makes every draft reproducible when non-zero. Zero uses crypto/rand.
	RNGSeed uint64 `env:"RNG_SEED" envDefault:"0"`

	CrossvalMaxTrials int     `env:"CROSSVAL_MAX_TRIALS" envDefault:"20000"`
	CrossvalRate      float64 `env:"CROSSVAL_RATE" envDefault:"2"` // requests per second
	CrossvalBurst     int     `env:"CROSSVAL_BURST" envDefault:"4"`

	// LogLevel is derived from LogLevelName by Load.
	LogLevel slog.Level
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and checks the values that have a valid range.
func Load() (Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}

	level, err := logger.ParseLevel(c.LogLevelName)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if c.CrossvalMaxTrials <= 0 {
		return Config{}, fmt.Errorf("CROSSVAL_MAX_TRIALS must be positive, got %d", c.CrossvalMaxTrials)
	}
	if c.CrossvalRate <= 0 || c.CrossvalBurst <= 0 {
		return Config{}, fmt.Errorf("CROSSVAL_RATE and CROSSVAL_BURST must be positive")
	}
	return c, nil
}
