// Package tracer 构建 Jaeger 链路追踪器
package tracer

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerzap "github.com/uber/jaeger-client-go/log/zap"
	"go.uber.org/zap"
)

// Config Jaeger 配置
type Config struct {
	ServiceName string
	// AgentHostPort jaeger-agent 的 UDP 地址，为空时不上报
	AgentHostPort string
	// SampleRate 采样率，>= 1 表示全部采样
	SampleRate float64
}

// NewJaegerTracer 创建 Jaeger Tracer
// AgentHostPort 为空时返回 NoopTracer，Closer 始终非 nil
func NewJaegerTracer(c Config, lg *zap.Logger, opts ...jaegercfg.Option) (opentracing.Tracer, io.Closer, error) {
	if lg == nil {
		lg = zap.NewNop()
	}

	sampler := &jaegercfg.SamplerConfig{
		Type:  jaeger.SamplerTypeConst,
		Param: 1,
	}
	if c.SampleRate < 1 {
		sampler = &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: c.SampleRate,
		}
	}

	cfg := &jaegercfg.Configuration{
		ServiceName: c.ServiceName,
		Disabled:    c.AgentHostPort == "" && len(opts) == 0,
		Sampler:     sampler,
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: c.AgentHostPort,
		},
	}

	opts = append([]jaegercfg.Option{jaegercfg.Logger(jaegerzap.NewLogger(lg))}, opts...)
	tracer, closer, err := cfg.NewTracer(opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "new jaeger tracer")
	}
	return tracer, closer, nil
}

// SetGlobal 安装全局 Tracer，返回的函数关闭 Tracer 并恢复为 NoopTracer
func SetGlobal(t opentracing.Tracer, closer io.Closer) func() error {
	opentracing.SetGlobalTracer(t)
	return func() error {
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
		return closer.Close()
	}
}
