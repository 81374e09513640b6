// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"fmt"
)

// Either is the result of a step whose failure kind is not an error:
// a Left holds the failure, a Right holds the next accumulator.
type Either[E, A any] struct {
	left  E
	right A
	ok    bool
}

// Left returns a failed Either holding e.
func Left[E, A any](e E) Either[E, A] {
	return Either[E, A]{left: e}
}

// Right returns a successful Either holding a.
func Right[E, A any](a A) Either[E, A] {
	return Either[E, A]{right: a, ok: true}
}

// IsRight reports whether e succeeded.
func (e Either[E, A]) IsRight() bool { return e.ok }

// IsLeft reports whether e failed.
func (e Either[E, A]) IsLeft() bool { return !e.ok }

// GetRight returns the success value, or the zero value and false.
func (e Either[E, A]) GetRight() (A, bool) {
	return e.right, e.ok
}

// GetLeft returns the failure, or the zero value and false.
func (e Either[E, A]) GetLeft() (E, bool) {
	return e.left, !e.ok
}

// FlatMapEither feeds the Right of e to f. A Left is passed through and f is
// not called. ChainEither is a left fold of FlatMapEither over its steps.
func FlatMapEither[E, A, B any](e Either[E, A], f func(A) Either[E, B]) Either[E, B] {
	if !e.ok {
		return Left[E, B](e.left)
	}
	return f(e.right)
}

// FromResult converts a Go (value, error) pair into an Either.
func FromResult[A any](a A, err error) Either[error, A] {
	if err != nil {
		return Left[error, A](err)
	}
	return Right[error](a)
}

// ToResult converts an Either carrying error failures back into (value, error).
func ToResult[A any](e Either[error, A]) (A, error) {
	if !e.ok {
		var zero A
		return zero, e.left
	}
	return e.right, nil
}

// ChainEither threads v through first and rest, stopping at the first Left.
// The Left is returned unchanged and later steps are not invoked.
// Scopes come from the build default; a Left exits its scope with a
// LeftError describing the failure.
func ChainEither[E, A any](v A, first func(A) Either[E, A], rest ...func(A) Either[E, A]) Either[E, A] {
	return ChainEitherContext(context.Background(), v, first, rest...)
}

// ChainEitherContext is ChainEither with scopes opened by InstrumentFrom(ctx).
func ChainEitherContext[E, A any](ctx context.Context, v A, first func(A) Either[E, A], rest ...func(A) Either[E, A]) Either[E, A] {
	ins := InstrumentFrom(ctx)
	temp := invokeEither(ctx, ins, 1, first, v)
	for i, f := range rest {
		if !temp.ok {
			break
		}
		temp = FlatMapEither(temp, func(a A) Either[E, A] {
			return invokeEither(ctx, ins, i+2, f, a)
		})
	}
	return temp
}

func invokeEither[E, A any](ctx context.Context, ins Instrument, index int, f func(A) Either[E, A], a A) Either[E, A] {
	if ins == nil {
		return f(a)
	}
	var out Either[E, A]
	_, _ = invoke[A, struct{}](ctx, ins, index, stepLabel(f, index), func(a A) (struct{}, error) {
		out = f(a)
		if !out.ok {
			return struct{}{}, LeftError[E]{Value: out.left}
		}
		return struct{}{}, nil
	}, a)
	return out
}

// LeftError reports a Left value to a diagnostic scope.
// It is never returned by ChainEither itself.
type LeftError[E any] struct {
	Value E
}

func (e LeftError[E]) Error() string {
	return fmt.Sprintf("chain: left: %v", e.Value)
}
