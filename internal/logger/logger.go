package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Unknown levels fall back to info.
func New(level string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "petspa-booking").
		Logger()
}

// Console is the human-readable variant used when running locally.
func Console(level string) zerolog.Logger {
	return New(level, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}
