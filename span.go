// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the OpenTelemetry instrumentation scope used by
// the chaintrace build default.
const InstrumentationName = "code.hybscloud.com/chain"

// Span attribute keys set on every step span.
const (
	AttrStepIndex = attribute.Key("chain.step.index")
	AttrStepLabel = attribute.Key("chain.step.label")
)

// Tracer returns an Instrument that opens one span per step, named after
// the step label. A failing step records its error and sets the span status
// to Error; the error itself is returned to the caller untouched.
func Tracer(t trace.Tracer) Instrument {
	return spanInstrument{tracer: t}
}

type spanInstrument struct {
	tracer trace.Tracer
}

func (s spanInstrument) Enter(ctx context.Context, step StepInfo) (context.Context, Scope) {
	ctx, span := s.tracer.Start(ctx, step.Label,
		trace.WithAttributes(
			AttrStepIndex.Int(step.Index),
			AttrStepLabel.String(step.Label),
		),
	)
	return ctx, spanScope{span: span}
}

type spanScope struct {
	span trace.Span
}

func (s spanScope) Exit(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}
