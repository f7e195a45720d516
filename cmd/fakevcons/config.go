package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vcon-dev/fake-vcons/logging"
)

// Config holds the environment-driven settings shared by all subcommands.
// Flags override per-invocation concerns; the environment configures the
// ambient ones (backend selection, storage path, logging).
type Config struct {
	// Backend selects the script generator: static, openai or anthropic.
	Backend string `env:"FAKE_VCONS_BACKEND" envDefault:"static"`
	// DBPath, when set, persists generated containers to a SQLite store.
	DBPath string `env:"FAKE_VCONS_DB"`
	// Model overrides the backend's default model id.
	Model string `env:"FAKE_VCONS_MODEL"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"FAKE_VCONS_LOG_LEVEL" envDefault:"info"`
	// LogFormat is json or text.
	LogFormat string `env:"FAKE_VCONS_LOG_FORMAT" envDefault:"text"`
}

// loadConfig reads .env (if present) then the process environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) logger() logging.Logger {
	level := logging.LogLevelInfo
	switch c.LogLevel {
	case "debug":
		level = logging.LogLevelDebug
	case "warn":
		level = logging.LogLevelWarn
	case "error":
		level = logging.LogLevelError
	}
	return logging.NewSlogLogger(level, c.LogFormat, false)
}
