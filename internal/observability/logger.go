// Package observability configures structured logging for the service.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pensiondoc/internal/config"
)

// ServiceName is attached to every log line.
const ServiceName = "pensiondoc"

// NewLogger builds a zerolog logger from the log config, writing to out (stdout when nil).
func NewLogger(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		zl = zerolog.New(out)
	}

	return zl.Level(level).With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// Setup installs the logger as the process-wide default, including the fallback
// returned by zerolog.Ctx for contexts that carry no logger.
func Setup(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	logger := NewLogger(cfg, out)
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}
