// Package logging sets up the zerolog diagnostic logger for pumpctl.
//
// The logger carries operational trace output on stderr; user-facing
// command results are printed to stdout by the cli package and do not
// go through it.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup configures and returns the process logger. The level string is
// parsed leniently; unknown values fall back to warn so a typo in
// PUMPCTL_LOG_LEVEL never blocks an operation.
func Setup(level string) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(parsed)
	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(consoleWriter).
		With().
		Timestamp().
		Str("service", "pumpctl").
		Logger()
}
