package tracer

import (
	"context"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
)

func TestNewJaegerTracer_Disabled(t *testing.T) {
	tr, closer, err := NewJaegerTracer(Config{ServiceName: "fast-note-pad"}, nil)
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.IsType(t, &opentracing.NoopTracer{}, tr)
	assert.NoError(t, closer.Close())
}

func TestNewJaegerTracer_Agent(t *testing.T) {
	tr, closer, err := NewJaegerTracer(Config{
		ServiceName:   "fast-note-pad",
		AgentHostPort: "127.0.0.1:6831",
		SampleRate:    0.5,
	}, zap.NewNop())
	require.NoError(t, err)
	_, ok := tr.(*jaeger.Tracer)
	assert.True(t, ok)
	assert.NoError(t, closer.Close())
}

func TestNewJaegerTracer_RequiresServiceName(t *testing.T) {
	_, _, err := NewJaegerTracer(Config{AgentHostPort: "127.0.0.1:6831"}, nil)
	assert.Error(t, err)
}

func TestSetGlobal(t *testing.T) {
	reporter := jaeger.NewInMemoryReporter()
	tr, closer, err := NewJaegerTracer(Config{ServiceName: "fast-note-pad", SampleRate: 1}, nil,
		jaegercfg.Reporter(reporter))
	require.NoError(t, err)

	restore := SetGlobal(tr, closer)
	assert.Same(t, tr, opentracing.GlobalTracer())

	span, _ := opentracing.StartSpanFromContext(context.Background(), "note.create")
	span.Finish()

	spans := reporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "note.create", spans[0].(*jaeger.Span).OperationName())

	require.NoError(t, restore())
	assert.IsType(t, opentracing.NoopTracer{}, opentracing.GlobalTracer())
}
