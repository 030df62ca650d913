package webhook

import (
	"context"
	"time"
)

// Outcome summarizes how a webhook call ended.
type Outcome string

const (
	OutcomeReplied      Outcome = "replied"
	OutcomeSilent       Outcome = "silent"
	OutcomeUnauthorized Outcome = "unauthorized"
	OutcomeRejected     Outcome = "rejected"
	OutcomeFailed       Outcome = "failed"
)

// Event describes one finished webhook call.
type Event struct {
	Platform  string
	Bot       string
	Command   string
	Outcome   Outcome
	Status    int
	Duration  time.Duration
	RequestID string
	Error     string
}

// Recorder receives an Event for every call an Endpoint handles.
// Implementations must not block for long and must not fail the call.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, ev Event)

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, ev Event) { f(ctx, ev) }

// Recorders fans an event out to several recorders.
type Recorders []Recorder

// Record implements Recorder.
func (rs Recorders) Record(ctx context.Context, ev Event) {
	for _, r := range rs {
		if r != nil {
			r.Record(ctx, ev)
		}
	}
}
