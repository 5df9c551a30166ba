package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs the service logger. Development gets a human readable
// console writer at debug level, every other environment emits JSON at info.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(appEnv, os.Stdout)
}

func newLogger(appEnv string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" || appEnv == "cli" {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	if appEnv == "development" || appEnv == "cli" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("env", appEnv).
		Logger()
}

// Logger aliases zerolog.Logger so packages can accept a logger without
// importing the third-party module directly.
type Logger = zerolog.Logger
