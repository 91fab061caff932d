// Package events is the in-process publish/subscribe bus that decouples
// domain writes (license seat changes) from their reactions (alerts).
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrBusClosed = errors.New("event bus closed")

var (
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parc_events_published_total",
		Help: "Events handed to the bus, by type.",
	}, []string{"type"})
	handlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parc_event_handler_failures_total",
		Help: "Event handlers that returned an error or panicked, by event type.",
	}, []string{"type"})
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{}  { return e.Data }

type Handler func(ctx context.Context, event Event) error

type EventBus struct {
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool

	inflight sync.WaitGroup
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.logger.Info("event handler registered",
		"event_type", eventType,
		"total_handlers", len(eb.handlers[eventType]))
}

// subscribers returns a copy of the handlers for event, or ErrBusClosed. The
// handlers are counted as in flight before the lock is released, so Close
// cannot miss them.
func (eb *EventBus) subscribers(event Event) ([]Handler, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return nil, ErrBusClosed
	}
	publishedTotal.WithLabelValues(event.EventType()).Inc()
	handlers := append([]Handler(nil), eb.handlers[event.EventType()]...)
	eb.inflight.Add(len(handlers))
	return handlers, nil
}

// run calls h and turns a panic into an error.
func (eb *EventBus) run(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
		if err != nil {
			handlerFailures.WithLabelValues(event.EventType()).Inc()
			eb.logger.Error("event handler failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
		}
	}()
	return h(ctx, event)
}

// Publish fans event out to its handlers on their own goroutines and returns
// immediately. Handler errors are logged, not returned.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers, err := eb.subscribers(event)
	if err != nil {
		return err
	}
	if len(handlers) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	// handlers outlive the request that published the event
	ctx = context.WithoutCancel(ctx)
	for _, handler := range handlers {
		go func(h Handler) {
			defer eb.inflight.Done()
			_ = eb.run(ctx, h, event)
		}(handler)
	}
	return nil
}

// Wait blocks until every handler started by Publish has returned.
func (eb *EventBus) Wait() {
	eb.inflight.Wait()
}

// Close rejects further events and waits for the in-flight ones.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	eb.closed = true
	eb.mu.Unlock()
	eb.Wait()
}
