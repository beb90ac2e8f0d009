// Package events carries run lifecycle telemetry to registered listeners.
package events

import (
	"context"
	"time"
)

// Event types published over the lifecycle of a run.
const (
	TypeRunStarted  = "run_started"
	TypeRunFinished = "run_finished"
	TypeRunFailed   = "run_failed"
)

// Event is one telemetry record.
type Event struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// New builds an event stamped with the current time.
func New(eventType string, payload map[string]any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// Listener consumes published events.
type Listener interface {
	Handle(ctx context.Context, ev Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, ev Event) error

func (f ListenerFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Bus fans events out to listeners in registration order. It is not safe
// for concurrent registration; the CLI registers listeners once during
// bootstrap and publishes from a single goroutine afterwards.
type Bus struct {
	listeners []Listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// AddListener appends a listener. Nil listeners are ignored.
func (b *Bus) AddListener(l Listener) {
	if l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

// ListenerCount reports how many listeners are registered.
func (b *Bus) ListenerCount() int {
	return len(b.listeners)
}

// Publish delivers ev to every listener and returns the first error seen.
// Delivery continues past failures: telemetry must never abort a run.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	var firstErr error
	for _, l := range b.listeners {
		if err := l.Handle(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
