// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import "context"

// Stepping boundary for callers that drive a chain one step at a time,
// for example to inspect the accumulator between steps.
// Driving a Cursor to completion is observationally identical to ChainContext.

// Cursor is a chain evaluated one step per call to Next.
// A Cursor is not safe for concurrent use.
type Cursor[T any] struct {
	ctx   context.Context
	ins   Instrument
	first Step[T, T]
	rest  []Step[T, T]
	pos   int
	value T
	err   error
}

// Start returns a Cursor positioned before first, holding v.
// No step runs until Next is called.
//
// Example:
//
//	c := chain.Start(ctx, x, addOne, multiplyByTwo, subtractThree)
//	for c.Next() {
//	    log.Printf("after %d steps: %d", c.Pos(), c.Value())
//	}
//	if err := c.Err(); err != nil {
//	    return err
//	}
func Start[T any](ctx context.Context, v T, first Step[T, T], rest ...Step[T, T]) *Cursor[T] {
	return &Cursor[T]{
		ctx:   ctx,
		ins:   InstrumentFrom(ctx),
		first: first,
		rest:  rest,
		value: v,
	}
}

// Next runs exactly one step. It returns true if the step succeeded and
// false if the step failed or no steps remain.
func (c *Cursor[T]) Next() bool {
	if c.Done() {
		return false
	}
	f := c.first
	if c.pos > 0 {
		f = c.rest[c.pos-1]
	}
	c.pos++
	v, err := invoke(c.ctx, c.ins, c.pos, "", f, c.value)
	if err != nil {
		var zero T
		c.value = zero
		c.err = err
		return false
	}
	c.value = v
	return true
}

// Finish runs all remaining steps and returns the chain result.
func (c *Cursor[T]) Finish() (T, error) {
	for c.Next() {
	}
	return c.value, c.err
}

// Value returns the accumulator after the last step run.
// It is the zero value once a step has failed.
func (c *Cursor[T]) Value() T { return c.value }

// Err returns the failing step's error, or nil.
func (c *Cursor[T]) Err() error { return c.err }

// Pos returns the number of steps run so far.
func (c *Cursor[T]) Pos() int { return c.pos }

// Remaining returns the number of steps not yet run.
// It is 0 once a step has failed.
func (c *Cursor[T]) Remaining() int {
	if c.err != nil {
		return 0
	}
	return 1 + len(c.rest) - c.pos
}

// Done reports whether the chain has failed or run every step.
func (c *Cursor[T]) Done() bool {
	return c.err != nil || c.pos == 1+len(c.rest)
}
