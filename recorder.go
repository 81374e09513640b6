// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"sync"
)

// EventKind distinguishes scope entry from scope exit.
type EventKind uint8

const (
	// EventEnter is recorded immediately before a step runs.
	EventEnter EventKind = iota + 1
	// EventExit is recorded immediately after a step returns.
	EventExit
)

func (k EventKind) String() string {
	switch k {
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is one entry in a Recorder's log.
// Err is set only on EventExit and only when the step failed.
type Event struct {
	Kind EventKind
	Step StepInfo
	Err  error
}

// Recorder is an Instrument that accumulates scope events in memory.
// The zero value is ready to use and safe for concurrent chains.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Enter implements Instrument.
func (r *Recorder) Enter(ctx context.Context, step StepInfo) (context.Context, Scope) {
	r.append(Event{Kind: EventEnter, Step: step})
	return ctx, recorderScope{r: r, step: step}
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Labels returns the label of every entered step in order.
func (r *Recorder) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Kind == EventEnter {
			out = append(out, e.Step.Label)
		}
	}
	return out
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}

func (r *Recorder) append(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

type recorderScope struct {
	r    *Recorder
	step StepInfo
}

func (s recorderScope) Exit(err error) {
	s.r.append(Event{Kind: EventExit, Step: s.step, Err: err})
}
