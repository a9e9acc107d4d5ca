package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/config"
)

// applyLogging reconfigures the global logger from the loaded configuration.
// --verbose forces debug regardless of the configured level.
func applyLogging(cfg config.LoggingConfig) {
	level := logLevel(cfg.Level)
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(logWriter(cfg.Format, os.Stderr)).With().Timestamp().Logger()
}

func logLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// logWriter returns the raw writer for json output and a console writer
// otherwise.
func logWriter(format string, out io.Writer) io.Writer {
	if format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out}
}
