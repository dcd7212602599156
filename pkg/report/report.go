// Package report is the structured error-reporting collaborator.
// Handlers never print failures; they publish typed events here, and
// subscribers decide what to do with them (the default subscriber logs).
// Publishing is synchronous and in-process; a report must never be able to
// fail the handler that emitted it.
package report

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/operationcode/ocbot/pkg/logger"
)

// EventType classifies report events for routing and filtering.
type EventType string

const (
	// Dispatch lifecycle
	EventUnroutable    EventType = "dispatch.unroutable"
	EventHandlerFailed EventType = "dispatch.handler.failed"
	EventEnvelopeBad   EventType = "dispatch.envelope.invalid"

	// Claim sync lifecycle (the dual-backend workflow)
	EventClaimSynced   EventType = "sync.claim.completed"
	EventClaimSkipped  EventType = "sync.claim.skipped"  // cross-reference did not resolve
	EventClaimOrphaned EventType = "sync.claim.orphaned" // UI updated, record write failed
	EventClaimFailed   EventType = "sync.claim.failed"
)

// Event is one report occurrence.
type Event struct {
	ID        string
	Type      EventType
	Source    string // emitting component, e.g. "actions", "dispatch"
	Timestamp time.Time
	Err       error                  // nil for informational events
	Fields    map[string]interface{} // event-specific context
}

// Handler consumes report events. Handlers must not block.
type Handler func(Event)

// Bus dispatches report events to registered handlers synchronously.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[EventType][]Handler
	allHandlers []Handler
	closed      bool
}

// NewBus creates an empty report bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for a specific event type.
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers a handler that receives every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allHandlers = append(b.allHandlers, h)
}

// Publish assigns the event an ID and timestamp and delivers it to all
// matching handlers. Typed handlers run before global handlers.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()

	for _, h := range b.handlers[ev.Type] {
		h(ev)
	}
	for _, h := range b.allHandlers {
		h(ev)
	}
}

// Close marks the bus closed; subsequent publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// LogSubscriber returns the default handler: failures log as errors,
// everything else as info, all tagged with the emitting component.
func LogSubscriber() Handler {
	return func(ev Event) {
		fields := make(map[string]interface{}, len(ev.Fields)+2)
		for k, v := range ev.Fields {
			fields[k] = v
		}
		fields["event_id"] = ev.ID
		if ev.Err != nil {
			fields["error"] = ev.Err.Error()
			logger.ErrorCF(ev.Source, string(ev.Type), fields)
			return
		}
		logger.InfoCF(ev.Source, string(ev.Type), fields)
	}
}
