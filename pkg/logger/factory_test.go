package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("defaults to JSON at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("hello")

		entry := decodeEntry(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decodeEntry(t, buf)["svc"])
	})

	t.Run("context extractors", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key string
		ctxKey := key("id")
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(ctxKey).(string); ok {
					return slog.String("id", v), true
				}
				return slog.Attr{}, false
			}),
		)
		ctx := context.WithValue(context.Background(), ctxKey, "42")
		log.With(slog.String("scope", "x")).InfoContext(ctx, "context msg")

		entry := decodeEntry(t, buf)
		assert.Equal(t, "42", entry["id"])
		assert.Equal(t, "x", entry["scope"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development is text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(logger.EnvDevelopment, "lodge"))
		log.Debug("msg")
		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=lodge")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production is JSON at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(logger.EnvProduction, "lodge"))
		log.Debug("hidden")
		log.Info("msg")
		entry := decodeEntry(t, buf)
		assert.Equal(t, "lodge", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestParseEnv(t *testing.T) {
	tests := map[string]logger.Env{
		"production": logger.EnvProduction,
		"PROD":       logger.EnvProduction,
		"stage":      logger.EnvStaging,
		"staging":    logger.EnvStaging,
		"dev":        logger.EnvDevelopment,
		"":           logger.EnvDevelopment,
		"whatever":   logger.EnvDevelopment,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseEnv(in), in)
	}
}

func TestFromConfig(t *testing.T) {
	t.Run("overrides level and format", func(t *testing.T) {
		opts, err := logger.FromConfig(logger.Config{Env: "production", Service: "lodge", Level: "warn", Format: "text"})
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		log := logger.New(append(opts, logger.WithOutput(buf))...)
		log.Info("hidden")
		log.Warn("shown")
		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := logger.FromConfig(logger.Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := logger.FromConfig(logger.Config{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Equal(t, "default", decodeEntry(t, buf)["msg"])
}
