// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package chainlog provides a chain.Instrument that writes one zap log line
// when a step is entered and one when it exits.
package chainlog

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"code.hybscloud.com/chain"
)

// Option configures the instrument returned by New.
type Option func(*Instrument)

// WithLevel sets the level of enter and successful exit lines.
// Failed exits are always logged at Warn or above.
func WithLevel(l zapcore.Level) Option {
	return func(i *Instrument) { i.level = l }
}

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(i *Instrument) { i.now = now }
}

// Instrument logs step scopes through a zap.Logger.
type Instrument struct {
	logger *zap.Logger
	level  zapcore.Level
	now    func() time.Time
}

// New returns an Instrument writing to logger at Debug level.
func New(logger *zap.Logger, opts ...Option) *Instrument {
	i := &Instrument{
		logger: logger,
		level:  zapcore.DebugLevel,
		now:    time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Enter implements chain.Instrument. It returns a nil Scope when the
// logger would drop both the exit and the failure line.
func (i *Instrument) Enter(ctx context.Context, step chain.StepInfo) (context.Context, chain.Scope) {
	core := i.logger.Core()
	if !core.Enabled(i.level) && !core.Enabled(i.failLevel()) {
		return ctx, nil
	}
	if ce := i.logger.Check(i.level, "step enter"); ce != nil {
		ce.Write(stepFields(step)...)
	}
	return ctx, &scope{i: i, step: step, start: i.now()}
}

func (i *Instrument) failLevel() zapcore.Level {
	return max(i.level, zapcore.WarnLevel)
}

func stepFields(step chain.StepInfo, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.Int("step_index", step.Index),
		zap.String("step", step.Label),
	}, extra...)
}

type scope struct {
	i     *Instrument
	step  chain.StepInfo
	start time.Time
}

func (s *scope) Exit(err error) {
	elapsed := s.i.now().Sub(s.start)
	if err != nil {
		if ce := s.i.logger.Check(s.i.failLevel(), "step failed"); ce != nil {
			ce.Write(stepFields(s.step, zap.Duration("elapsed", elapsed), zap.Error(err))...)
		}
		return
	}
	if ce := s.i.logger.Check(s.i.level, "step exit"); ce != nil {
		ce.Write(stepFields(s.step, zap.Duration("elapsed", elapsed))...)
	}
}
