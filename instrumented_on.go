// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build chaintrace

package chain

import (
	"sync"

	"go.opentelemetry.io/otel"
)

// Instrumented reports whether the module was built with the chaintrace tag.
// With it, every chain opens one span per step on the global tracer provider
// unless WithInstrument overrides the instrument.
const Instrumented = true

var globalTracer = sync.OnceValue(func() Instrument {
	return Tracer(otel.Tracer(InstrumentationName))
})

func defaultInstrument() Instrument { return globalTracer() }
