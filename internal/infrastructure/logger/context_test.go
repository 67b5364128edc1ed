package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	fallback := zap.NewNop()

	t.Run("returns the attached logger", func(t *testing.T) {
		attached := zap.NewNop()
		ctx := WithContext(context.Background(), attached)
		assert.Same(t, attached, FromContext(ctx, fallback))
	})

	t.Run("falls back when nothing is attached", func(t *testing.T) {
		assert.Same(t, fallback, FromContext(context.Background(), fallback))
	})
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), base, "req-42")

	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx, zap.NewNop()))

	enriched.Info("hello")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestGetRequestIDEmpty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}
