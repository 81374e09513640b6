// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package chain threads a value through an ordered sequence of fallible
// steps, stopping at the first failure.
//
// A [Step] is any func(A) (B, error): a named function, a method value or an
// inline func literal. [Chain] applies its steps left to right, rebinding one
// accumulator after each step:
//
//	temp := v
//	temp, err = s1(temp); if err != nil { return zero, err }
//	temp, err = s2(temp); if err != nil { return zero, err }
//	...
//	return temp, nil
//
// # Semantics
//
//   - Steps run strictly in order; a step runs only if every earlier step succeeded.
//   - The failing step's error is returned as is. The chain never wraps,
//     inspects or aggregates errors.
//   - At least one step is required; the signatures take first and rest so an
//     empty chain does not compile.
//   - Chain(v, s) is equivalent to s(v), and chaining is associative:
//     Chain(v, s1, s2, s3) equals Chain(Chain(v, s1), s2, s3) on success.
//
// # Entry Points
//
//   - [Chain], [ChainContext]: steps of one type T → T
//   - [ChainNamed], [ChainNamedContext]: steps paired with labels via [Name]
//   - [Pipe2], [Pipe3], [Pipe4]: steps whose types change along the chain
//   - [Then], [Lift]: step composition; a composed step is a single step
//   - [ChainEither], [ChainEitherContext]: failure carried in [Either] Left
//   - [Start], [Cursor]: one step per call, for inspecting the accumulator
//
// # Diagnostic Scopes
//
// Each step invocation can be wrapped in a diagnostic scope. An [Instrument]
// opens a [Scope] immediately before the step and the scope is exited
// immediately after it returns, on every exit path including failure and
// panic. Scopes are purely observational: enabling or disabling them never
// changes a chain's value or error.
//
// Scope labels come from, in order: an explicit [Name] label, the Go symbol
// of a named function (e.g. "sample.AddOne"), or the ordinal "step N" for
// func literals.
//
// Instruments:
//
//   - [Tracer]: one OpenTelemetry span per step
//   - [Recorder]: in-memory enter/exit log
//   - [Multi]: fan-out to several instruments
//   - chainlog: zap log lines per step
//   - chainmetrics: Prometheus step duration and outcome metrics
//
// # Build-Time Switch
//
// Building with -tags chaintrace sets [Instrumented] and makes every chain
// open a span per step on the global OpenTelemetry tracer provider. Without
// the tag no default scope is opened and no label is computed. An instrument
// attached with [WithInstrument] takes precedence over the default either way;
// WithInstrument(ctx, nil) turns scopes off.
//
// # Example
//
//	func addOne(x int) (int, error)        { return x + 1, nil }
//	func multiplyByTwo(x int) (int, error) { return x * 2, nil }
//	func subtractThree(x int) (int, error) { return x - 3, nil }
//
//	n, err := chain.Chain(5, addOne, multiplyByTwo, subtractThree)
//	// n == 9, err == nil
package chain
