package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/aadsync/pkg/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, logging.ParseLevel(tt.input))
		})
	}
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "run.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
	})

	logger.Info().Msg("hidden message")
	logger.Warn().Msg("visible message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden message")
	assert.Contains(t, string(content), "visible message")
}

func TestNewLoggerFromConfig_Discard(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Output: "discard"})
	assert.NotPanics(t, func() { logger.Info().Msg("dropped") })
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithTarget(ctx, "Admins", "GroupMembers")
	ctx = logging.WithOperation(ctx, "remove")

	logging.FromContext(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, `"target":"Admins"`)
	testLogger.AssertContains(t, `"kind":"GroupMembers"`)
	testLogger.AssertContains(t, `"operation":"remove"`)
	testLogger.AssertContains(t, "test message")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestTestLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	assert.Empty(t, testLogger.Lines())

	testLogger.Debug().Msg("first")
	testLogger.Info().Msg("second")

	assert.Len(t, testLogger.Lines(), 2)
	testLogger.AssertNotContains(t, "third")
}
