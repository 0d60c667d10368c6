package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	t.Run("known environments", func(t *testing.T) {
		for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
			l, err := NewLogger(env, "")
			require.NoError(t, err, env)
			assert.NotNil(t, l)
		}
	})

	t.Run("level override", func(t *testing.T) {
		l, err := NewLogger("prod", "debug")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := NewLogger("staging", "")
		assert.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := NewLogger("local", "loud")
		assert.Error(t, err)
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("missing logger is a no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("With adds fields", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		ctx := ContextWithLogger(context.Background(), zap.New(core))
		ctx = With(ctx, zap.String("step", "dealers"))

		FromContext(ctx).Info("done")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "dealers", logs.All()[0].ContextMap()["step"])
	})
}
