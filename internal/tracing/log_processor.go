// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// LogProcessor is a span processor that writes one log line per ended span.
type LogProcessor struct {
	logger *zap.Logger
}

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// NewLogProcessor returns a LogProcessor writing to logger at Info level.
func NewLogProcessor(logger *zap.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart implements sdktrace.SpanProcessor.
func (*LogProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd implements sdktrace.SpanProcessor.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := []zap.Field{
		zap.String("span", s.Name()),
		zap.Stringer("trace_id", s.SpanContext().TraceID()),
		zap.Duration("elapsed", s.EndTime().Sub(s.StartTime())),
	}
	for _, kv := range s.Attributes() {
		fields = append(fields, zap.String(string(kv.Key), kv.Value.Emit()))
	}
	if st := s.Status(); st.Code == codes.Error {
		p.logger.Warn("span close", append(fields, zap.String("status", st.Description))...)
		return
	}
	p.logger.Info("span close", fields...)
}

// Shutdown implements sdktrace.SpanProcessor.
func (*LogProcessor) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (*LogProcessor) ForceFlush(context.Context) error { return nil }
