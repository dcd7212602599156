// Package dispatch routes normalized envelopes to handlers. The table is
// built once at startup from an explicit binding list and never mutated, so
// lookups need no locking and duplicate registrations fail the build, not a
// delivery.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/report"
)

// Handler is one unit of work for one registered binding. Handlers are safe
// to invoke concurrently for different events: all state lives in the
// envelope and the platform message, never in the handler.
type Handler func(ctx context.Context, ev events.Envelope) error

// Binding maps (category, component_id, variant) to a handler. An empty
// Variant binds the fallback entry for the component.
type Binding struct {
	Category    events.Category
	ComponentID string
	Variant     string
	Handler     Handler
}

// ErrDuplicateRegistration is returned by NewTable when two bindings share
// the same (category, component_id, variant) triple.
var ErrDuplicateRegistration = errors.New("dispatch: duplicate registration")

// ErrUnroutable is reported (never propagated to the caller) when no binding
// matches a delivered envelope. Stale UI elements outlive their bindings, so
// this is routine, not fatal.
var ErrUnroutable = errors.New("dispatch: unroutable event")

type key struct {
	category  events.Category
	component string
	variant   string
}

// Table is the immutable routing table.
type Table struct {
	entries map[key]Handler
	reports *report.Bus
}

// NewTable builds a table from bindings. Duplicate triples are a hard
// construction error — a misregistered bot must not start.
func NewTable(reports *report.Bus, bindings ...Binding) (*Table, error) {
	entries := make(map[key]Handler, len(bindings))
	for _, b := range bindings {
		if b.Handler == nil {
			return nil, fmt.Errorf("dispatch: nil handler for %s/%s/%s", b.Category, b.ComponentID, b.Variant)
		}
		k := key{b.Category, b.ComponentID, b.Variant}
		if _, exists := entries[k]; exists {
			return nil, fmt.Errorf("%w: %s/%s/%s", ErrDuplicateRegistration, b.Category, b.ComponentID, b.Variant)
		}
		entries[k] = b.Handler
	}
	return &Table{entries: entries, reports: reports}, nil
}

// Dispatch validates the envelope and routes it to its handler. Lookup tries
// the exact (category, component, variant) first, then falls back to the
// component's no-variant entry, so one handler can serve a widget whose
// sibling actions need no distinction.
//
// Unroutable and malformed envelopes are reported and swallowed; handler
// errors are returned to the caller (the transport layer) to log and drop.
// Two concurrent dispatches racing on the same message can lose an update
// (last write wins) — accepted at human click rates, deliberately not
// locked.
func (t *Table) Dispatch(ctx context.Context, ev events.Envelope) error {
	if err := ev.Validate(); err != nil {
		t.reports.Publish(report.Event{
			Type:   report.EventEnvelopeBad,
			Source: "dispatch",
			Err:    err,
			Fields: map[string]interface{}{"component": ev.ComponentID, "category": string(ev.Category)},
		})
		return nil
	}

	handler, ok := t.entries[key{ev.Category, ev.ComponentID, ev.Variant}]
	if !ok && ev.Variant != "" {
		handler, ok = t.entries[key{ev.Category, ev.ComponentID, ""}]
	}
	if !ok {
		t.reports.Publish(report.Event{
			Type:   report.EventUnroutable,
			Source: "dispatch",
			Err:    fmt.Errorf("%w: %s/%s/%s", ErrUnroutable, ev.Category, ev.ComponentID, ev.Variant),
			Fields: map[string]interface{}{"component": ev.ComponentID, "variant": ev.Variant},
		})
		return nil
	}

	// Handler errors propagate to the transport layer, which logs and drops
	// them; events are never retried.
	if err := handler(ctx, ev); err != nil {
		return fmt.Errorf("dispatch %s/%s: %w", ev.ComponentID, ev.Variant, err)
	}
	return nil
}

// Size returns the number of registered bindings (for diagnostics).
func (t *Table) Size() int { return len(t.entries) }
