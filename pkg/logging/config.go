package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/aadsync/pkg/constants"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (json, console, auto)
	Format string

	// Output is where to write logs (stderr, stdout, discard, or file path)
	Output string

	// TimeFormat for timestamps (kitchen, rfc3339, unix)
	TimeFormat string

	// NoColor disables color output in console mode
	NoColor bool

	// AddCaller includes file:line in log output
	AddCaller bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig creates a new logger from configuration
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writerFor(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Configure updates the default logger with the given configuration
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// writerFor resolves the output destination and wraps it in a console
// writer when the format asks for one.
func writerFor(cfg *Config) io.Writer {
	var output io.Writer
	isTerminal := false

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
		isTerminal = isatty.IsTerminal(os.Stderr.Fd())
	case "stdout":
		output = os.Stdout
		isTerminal = isatty.IsTerminal(os.Stdout.Fd())
	case "discard", "none":
		return io.Discard
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			output = os.Stderr
		} else {
			output = file
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "auto" || format == "" {
		if isTerminal {
			format = "console"
		} else {
			format = "json"
		}
	}

	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	}
	return output
}

// ParseLevel parses a log level string, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(level); err == nil {
			return l
		}
		return zerolog.InfoLevel
	}
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return ""
	case "kitchen", "":
		return time.Kitchen
	default:
		if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
			return format
		}
		return time.Kitchen
	}
}
