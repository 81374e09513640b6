// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"errors"
	"fmt"
)

// Diagnostic scopes around step invocations.
// A scope is entered immediately before a step and exited immediately after
// it returns, on every exit path. Scopes are observational: they never see
// or change the accumulator, and the error passed to Exit is the step's own.

// ErrStepAborted is passed to Scope.Exit when a step panics or calls
// runtime.Goexit instead of returning.
var ErrStepAborted = errors.New("chain: step did not return")

// StepInfo identifies one step invocation within a chain.
// Index is 1-based in chain order.
type StepInfo struct {
	Index int
	Label string
}

// Scope is an open diagnostic scope around one step invocation.
// An Instrument may return a nil Scope when it has nothing to do on exit.
type Scope interface {
	// Exit closes the scope. err is the step's error, nil on success.
	Exit(err error)
}

// Instrument opens diagnostic scopes.
type Instrument interface {
	// Enter opens a scope for step. The returned context carries the scope
	// and is handed to any instrument entered after this one.
	Enter(ctx context.Context, step StepInfo) (context.Context, Scope)
}

// InstrumentFunc adapts a function to Instrument.
type InstrumentFunc func(ctx context.Context, step StepInfo) (context.Context, Scope)

// Enter implements Instrument.
func (f InstrumentFunc) Enter(ctx context.Context, step StepInfo) (context.Context, Scope) {
	return f(ctx, step)
}

// ScopeFunc adapts a function to Scope.
type ScopeFunc func(err error)

// Exit implements Scope.
func (f ScopeFunc) Exit(err error) { f(err) }

type instrumentKey struct{}

// instrumentBox distinguishes "explicitly none" from "not set".
type instrumentBox struct{ ins Instrument }

// WithInstrument returns a context whose chains open scopes with ins.
// A nil ins disables scopes, including the build default.
func WithInstrument(ctx context.Context, ins Instrument) context.Context {
	return context.WithValue(ctx, instrumentKey{}, instrumentBox{ins: ins})
}

// InstrumentFrom returns the instrument chains run under ctx will use:
// the one attached by WithInstrument, otherwise the build default.
func InstrumentFrom(ctx context.Context) Instrument {
	if b, ok := ctx.Value(instrumentKey{}).(instrumentBox); ok {
		return b.ins
	}
	return defaultInstrument()
}

// Multi fans scope events out to every non-nil instrument.
// Scopes are entered in argument order and exited in reverse order.
// If an Enter panics, the scopes already entered are exited with
// ErrStepAborted before the panic continues.
func Multi(ins ...Instrument) Instrument {
	m := make(multiInstrument, 0, len(ins))
	for _, in := range ins {
		if in != nil {
			m = append(m, in)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

type multiInstrument []Instrument

func (m multiInstrument) Enter(ctx context.Context, step StepInfo) (context.Context, Scope) {
	scopes := make(multiScope, 0, len(m))
	entered := false
	defer func() {
		if !entered {
			scopes.Exit(ErrStepAborted)
		}
	}()
	for _, in := range m {
		var sc Scope
		ctx, sc = in.Enter(ctx, step)
		if sc != nil {
			scopes = append(scopes, sc)
		}
	}
	entered = true
	if len(scopes) == 0 {
		return ctx, nil
	}
	return ctx, scopes
}

type multiScope []Scope

func (s multiScope) Exit(err error) {
	for i := len(s) - 1; i >= 0; i-- {
		s[i].Exit(err)
	}
}

// invoke applies f to a, inside a scope when ins is non-nil.
// An empty label is derived from f only when a scope is entered.
// A nil Scope from Enter runs f unbracketed.
func invoke[A, B any](ctx context.Context, ins Instrument, index int, label string, f Step[A, B], a A) (B, error) {
	if ins == nil {
		return f(a)
	}
	if label == "" {
		label = stepLabel(f, index)
	}
	_, sc := ins.Enter(ctx, StepInfo{Index: index, Label: label})
	if sc == nil {
		return f(a)
	}
	return bracket(sc, f, a)
}

// bracket runs f with sc held open, exiting sc exactly once whether f
// returns, panics, or exits the goroutine. Panics are re-raised after exit.
func bracket[A, B any](sc Scope, f Step[A, B], a A) (b B, err error) {
	exited := false
	defer func() {
		if exited {
			return
		}
		r := recover()
		if r == nil {
			sc.Exit(ErrStepAborted)
			return
		}
		sc.Exit(fmt.Errorf("%w: panic: %v", ErrStepAborted, r))
		panic(r)
	}()
	b, err = f(a)
	exited = true
	sc.Exit(err)
	return b, err
}
