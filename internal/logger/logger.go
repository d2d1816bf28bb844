// Package logger configures the process-wide structured logger.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures zerolog from the environment. LOG_LEVEL selects verbosity
// (default info); LOG_FORMAT=console switches to human-readable output for
// local development.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("LOG_FORMAT") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// With returns a logger carrying a component field, so log lines can be
// filtered per subsystem.
func With(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
