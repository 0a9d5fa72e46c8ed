package core

import (
	"context"
	"path/filepath"
	"testing"

	"authflow/internal/configuration"
	"authflow/internal/models"
	"authflow/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	t.Run("should apply the configured level", func(t *testing.T) {
		NewLogger("debug")

		assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should fall back to info on an unknown level", func(t *testing.T) {
		NewLogger("verbose")

		assert.False(t, zap.L().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	})
}

func TestNewTracerProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("should do nothing when disabled", func(t *testing.T) {
		shutdown, err := NewTracerProvider(ctx, models.TelemetryConfiguration{Enabled: false})

		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("should build an exporter for the endpoint", func(t *testing.T) {
		shutdown, err := NewTracerProvider(ctx, models.TelemetryConfiguration{
			Enabled:  true,
			Endpoint: "http://127.0.0.1:4318/v1/traces",
		})

		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(ctx))
	})
}

func TestNewSessionPersister(t *testing.T) {
	t.Run("should keep memory sessions without a persister", func(t *testing.T) {
		assert.Nil(t, NewSessionPersister(models.SessionConfiguration{Type: configuration.SessionTypeMemory}))
	})

	t.Run("should create the filesystem persister", func(t *testing.T) {
		persister := NewSessionPersister(models.SessionConfiguration{
			Type:       configuration.SessionTypeFilesystem,
			Filesystem: &models.FilesystemSessionConfiguration{Directory: filepath.Join(t.TempDir(), "sessions")},
		})

		assert.IsType(t, &session.FilesystemPersister{}, persister)
	})
}

func TestNewActivityLogger(t *testing.T) {
	t.Run("should return nil when disabled", func(t *testing.T) {
		assert.Nil(t, NewActivityLogger(models.ActivityConfiguration{}))
	})

	t.Run("should open the attempt history", func(t *testing.T) {
		attempts := NewActivityLogger(models.ActivityConfiguration{
			Enabled:   true,
			Directory: filepath.Join(t.TempDir(), "activity"),
		})
		require.NotNil(t, attempts)
		assert.NoError(t, attempts.Close())
	})
}
