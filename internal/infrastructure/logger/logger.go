package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
)

// New builds the process logger: console output, caller annotation, and the
// configured level applied to this instance rather than the global filter.
// An unrecognized level falls back to info so a typo never silences the host.
func New(cfg *config.LoggingConfig) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

// parseLevel accepts the zerolog level names plus the "warning" alias
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}

	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
