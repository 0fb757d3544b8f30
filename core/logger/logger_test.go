package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplehttp/core/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json formatter writes structured records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "test")),
		)

		log.Info("request handled", logger.Method("GET"), logger.StatusCode(200))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "request handled", record["msg"])
		assert.Equal(t, "GET", record["method"])
		assert.Equal(t, float64(200), record["status_code"])
		assert.Equal(t, "test", record["service"])
	})

	t.Run("level filters lower records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

		log.Info("hidden")
		assert.Empty(t, buf.String())

		log.Warn("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("level string overrides environment preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.ForEnv("development", "svc"),
			logger.WithLevelString("error"),
			logger.WithOutput(&buf),
		)

		log.Warn("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("production preset emits json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.ForEnv("production", "svc"), logger.WithOutput(&buf))
		log.Info("hello")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "production", record["env"])
		assert.Equal(t, "svc", record["service"])
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.in)
		assert.Equal(t, tt.valid, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("nil safe helpers return empty attrs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, slog.Attr{}, logger.Error(nil))
		assert.Equal(t, slog.Attr{}, logger.RequestID(""))
		assert.Equal(t, slog.Attr{}, logger.SessionID(""))
		assert.Equal(t, slog.Attr{}, logger.Stack(nil))
		assert.Equal(t, slog.Attr{}, logger.Panic(nil))
	})

	t.Run("helpers use stable keys", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
		assert.Equal(t, "duration", logger.Duration(time.Second).Key)
		assert.Equal(t, "bytes_out", logger.BytesOut(10).Key)
		assert.Equal(t, "component", logger.Component("router").Key)
		assert.Equal(t, "stack", logger.Stack([]byte("trace")).Key)
	})
}
