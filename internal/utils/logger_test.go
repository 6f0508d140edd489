package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("empty options give a pretty info logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{Output: &buf})
		require.NotNil(t, logger)

		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "json",
			Output: &buf,
		})
		logger.Info().Msg("test")
		assert.Contains(t, buf.String(), `"message":"test"`)
	})

	t.Run("pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "pretty",
			Output: &buf,
		})
		logger.Info().Msg("test")
		assert.Contains(t, buf.String(), "test")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("verbose option enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:   "info",
			Format:  "json",
			Output:  &buf,
			Verbose: true,
		})
		logger.Debug().Msg("debug test")
		assert.Contains(t, buf.String(), "debug test")
	})

	t.Run("nop logger", func(t *testing.T) {
		logger := NewNopLogger()
		assert.NotPanics(t, func() {
			logger.WithProject("/app").Info().Msg("dropped")
		})
	})
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{
		Level:  "info",
		Format: "json",
		Output: &buf,
	})

	logger.WithComponent("orchestrator").
		WithProject("/srv/app").
		WithTarget("autoload_static.php").
		Info().Msg("promoted")

	output := buf.String()
	assert.Contains(t, output, `"component":"orchestrator"`)
	assert.Contains(t, output, `"project":"/srv/app"`)
	assert.Contains(t, output, `"target":"autoload_static.php"`)
	assert.Contains(t, output, "promoted")
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logFunc   func(*Logger)
		shouldLog bool
	}{
		{
			name:      "debug level logs debug",
			level:     "debug",
			logFunc:   func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog: true,
		},
		{
			name:      "info level doesn't log debug",
			level:     "info",
			logFunc:   func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog: false,
		},
		{
			name:      "warning alias",
			level:     "WARNING",
			logFunc:   func(l *Logger) { l.Info().Msg("info") },
			shouldLog: false,
		},
		{
			name:      "error level logs error",
			level:     "error",
			logFunc:   func(l *Logger) { l.Error().Msg("error") },
			shouldLog: true,
		},
		{
			name:      "trace level logs debug",
			level:     "trace",
			logFunc:   func(l *Logger) { l.Debug().Msg("debug") },
			shouldLog: true,
		},
		{
			name:      "unknown level falls back to info",
			level:     "chatty",
			logFunc:   func(l *Logger) { l.Info().Msg("info") },
			shouldLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(LoggerOptions{
				Level:  tt.level,
				Format: "json",
				Output: &buf,
			})

			tt.logFunc(logger)

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
