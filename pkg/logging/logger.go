// Package logging provides structured logging for aadsync using zerolog.
// Console output is used on terminals and JSON everywhere else, so a run can
// be read by an operator or collected by a pipeline without extra flags.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("target", "Admins").Msg("Resolved target")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	ctx = logging.WithTarget(ctx, "Admins", "GroupMembers")
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = NewLoggerFromConfig(DefaultConfig())
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}
