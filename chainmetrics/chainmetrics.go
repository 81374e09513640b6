// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package chainmetrics provides a chain.Instrument that records Prometheus
// metrics per step label.
//
// Metrics:
//
//   - chain_step_total{step, outcome}: steps finished, outcome "ok" or "error"
//   - chain_step_duration_seconds{step}: step latency histogram
package chainmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/chain"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics is a chain.Instrument backed by Prometheus collectors.
type Metrics struct {
	steps    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	now      func() time.Time
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chain",
				Name:      "step_total",
				Help:      "Chain steps finished, by step label and outcome.",
			},
			[]string{"step", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "chain",
				Name:      "step_duration_seconds",
				Help:      "Chain step latency in seconds, by step label.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"step"},
		),
		now: time.Now,
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.steps, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Enter implements chain.Instrument.
func (m *Metrics) Enter(ctx context.Context, step chain.StepInfo) (context.Context, chain.Scope) {
	return ctx, scope{m: m, label: step.Label, start: m.now()}
}

// Collectors returns the underlying collectors, for callers that register
// them with a registry of their own.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.steps, m.duration}
}

type scope struct {
	m     *Metrics
	label string
	start time.Time
}

func (s scope) Exit(err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	s.m.steps.WithLabelValues(s.label, outcome).Inc()
	s.m.duration.WithLabelValues(s.label).Observe(s.m.now().Sub(s.start).Seconds())
}
