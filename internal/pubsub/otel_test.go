package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingBridge_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	bridge := NewWatermillBridgeWithTracer(tp.Tracer("test"))
	t.Cleanup(func() { _ = bridge.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	require.NoError(t, bridge.Subscribe(ctx, "transcript.traced", func(ctx context.Context, msg Message) error {
		close(done)
		return nil
	}))
	require.NoError(t, bridge.Publish(ctx, Message{Topic: "transcript.traced", UserID: "u1", Payload: []byte("hi")}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}

	require.Eventually(t, func() bool {
		var publish, process bool
		for _, s := range recorder.Ended() {
			switch s.Name() {
			case "pubsub.publish.transcript.traced":
				publish = true
			case "pubsub.process.transcript.traced":
				process = true
			}
		}
		return publish && process
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSetupOTel(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled tracing", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, TracingConfig{Enabled: false})
		require.NoError(t, err)
		require.NotNil(t, tracer)
		require.NotNil(t, cleanup)

		_, span := tracer.Start(ctx, "test")
		assert.False(t, span.SpanContext().IsValid(), "no-op tracer should produce invalid span contexts")
		span.End()
		cleanup()
	})

	t.Run("enabled tracing with unreachable collector", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, TracingConfig{
			Enabled:     true,
			ServiceName: "test-service",
			ZipkinURL:   "http://invalid-url:9411/api/v2/spans",
		})
		require.NoError(t, err)
		require.NotNil(t, tracer)
		cleanup()
	})
}

func TestLoadTracingConfigFromEnv(t *testing.T) {
	t.Setenv("PUBSUB_TRACING_ENABLED", "true")
	t.Setenv("PUBSUB_TRACING_SERVICE_NAME", "svc")
	t.Setenv("PUBSUB_TRACING_ZIPKIN_URL", "http://zipkin:9411/api/v2/spans")

	cfg := LoadTracingConfigFromEnv()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "svc", cfg.ServiceName)
	assert.Equal(t, "http://zipkin:9411/api/v2/spans", cfg.ZipkinURL)

	t.Setenv("PUBSUB_TRACING_ENABLED", "nope")
	assert.False(t, LoadTracingConfigFromEnv().Enabled)
}
