package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	shutdown, err := NewTracerProvider(context.Background(), Config{Enabled: false}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProviderRequiresServiceName(t *testing.T) {
	_, err := NewTracerProvider(context.Background(), Config{Enabled: true}, nil)
	assert.ErrorIs(t, err, errServiceNameRequired)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))

	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "sweep")
	defer span.End()

	assert.Len(t, TraceID(ctx), 32)
}
