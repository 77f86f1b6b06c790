package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLoggerRoundTrip(t *testing.T) {
	require.Same(t, NoopLogger(), Logger(context.Background()))

	logger := zaptest.NewLogger(t)
	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, Logger(ctx))

	require.Same(t, NoopLogger(), Logger(WithLogger(context.Background(), nil)))
}

func TestTraceRoundTrip(t *testing.T) {
	_, ok := Trace(context.Background())
	require.False(t, ok)

	ctx := WithTrace(context.Background(), TraceInfo{TraceID: "abc", Sampled: true})
	info, ok := Trace(ctx)
	require.True(t, ok)
	require.Equal(t, "abc", info.TraceID)
}
