// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. format is "json" (default) or "console".
// Unknown levels fall back to info.
func Setup(level, format, service string) zerolog.Logger {
	return SetupWithWriter(os.Stdout, level, format, service)
}

// SetupWithWriter is Setup with an explicit output.
func SetupWithWriter(w io.Writer, level, format, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
	log.Logger = logger
	return logger
}
