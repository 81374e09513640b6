// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import "context"

// Chain threads v through first and rest in order and returns the final
// value. It stops at the first step that returns a non-nil error and returns
// that error unchanged; later steps are not invoked.
//
// Chain(v, s) is equivalent to s(v). Scopes come from the build default
// (see [Instrumented]).
//
// Example:
//
//	n, err := chain.Chain(x,
//		addOne,
//		func(v int) (int, error) { return v * 2, nil },
//		subtractThree,
//	)
func Chain[T any](v T, first Step[T, T], rest ...Step[T, T]) (T, error) {
	return ChainContext(context.Background(), v, first, rest...)
}

// ChainContext is Chain with scopes parented to ctx and opened by
// InstrumentFrom(ctx). ctx is not checked for cancellation.
func ChainContext[T any](ctx context.Context, v T, first Step[T, T], rest ...Step[T, T]) (T, error) {
	ins := InstrumentFrom(ctx)
	temp, err := invoke(ctx, ins, 1, "", first, v)
	if err != nil {
		var zero T
		return zero, err
	}
	for i, f := range rest {
		if temp, err = invoke(ctx, ins, i+2, "", f, temp); err != nil {
			var zero T
			return zero, err
		}
	}
	return temp, nil
}

// ChainNamed is Chain over labelled steps.
func ChainNamed[T any](v T, first Named[T, T], rest ...Named[T, T]) (T, error) {
	return ChainNamedContext(context.Background(), v, first, rest...)
}

// ChainNamedContext is ChainContext over labelled steps.
func ChainNamedContext[T any](ctx context.Context, v T, first Named[T, T], rest ...Named[T, T]) (T, error) {
	ins := InstrumentFrom(ctx)
	temp, err := invoke(ctx, ins, 1, first.Label, first.Fn, v)
	if err != nil {
		var zero T
		return zero, err
	}
	for i, s := range rest {
		if temp, err = invoke(ctx, ins, i+2, s.Label, s.Fn, temp); err != nil {
			var zero T
			return zero, err
		}
	}
	return temp, nil
}

// Pipe2 threads v through two steps whose types change along the chain.
func Pipe2[A, B, C any](ctx context.Context, v A, f1 Step[A, B], f2 Step[B, C]) (C, error) {
	ins := InstrumentFrom(ctx)
	b, err := invoke(ctx, ins, 1, "", f1, v)
	if err != nil {
		var zero C
		return zero, err
	}
	c, err := invoke(ctx, ins, 2, "", f2, b)
	return finish(c, err)
}

// Pipe3 threads v through three steps whose types change along the chain.
func Pipe3[A, B, C, D any](ctx context.Context, v A, f1 Step[A, B], f2 Step[B, C], f3 Step[C, D]) (D, error) {
	ins := InstrumentFrom(ctx)
	b, err := invoke(ctx, ins, 1, "", f1, v)
	if err != nil {
		var zero D
		return zero, err
	}
	c, err := invoke(ctx, ins, 2, "", f2, b)
	if err != nil {
		var zero D
		return zero, err
	}
	d, err := invoke(ctx, ins, 3, "", f3, c)
	return finish(d, err)
}

// Pipe4 threads v through four steps whose types change along the chain.
func Pipe4[A, B, C, D, E any](ctx context.Context, v A, f1 Step[A, B], f2 Step[B, C], f3 Step[C, D], f4 Step[D, E]) (E, error) {
	ins := InstrumentFrom(ctx)
	b, err := invoke(ctx, ins, 1, "", f1, v)
	if err != nil {
		var zero E
		return zero, err
	}
	c, err := invoke(ctx, ins, 2, "", f2, b)
	if err != nil {
		var zero E
		return zero, err
	}
	d, err := invoke(ctx, ins, 3, "", f3, c)
	if err != nil {
		var zero E
		return zero, err
	}
	e, err := invoke(ctx, ins, 4, "", f4, d)
	return finish(e, err)
}

// finish drops any value a failing last step returned alongside its error.
func finish[T any](v T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
