package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/report"
)

func buttonEnvelope(component, variant string) events.Envelope {
	return events.Envelope{
		Category:    events.CategoryButtonAction,
		ComponentID: component,
		Variant:     variant,
		Actor:       "U1",
		Button:      &events.ButtonEvent{Channel: "C1", MessageTS: "123.456"},
	}
}

func noop(context.Context, events.Envelope) error { return nil }

func TestDuplicateRegistrationFailsBuild(t *testing.T) {
	_, err := NewTable(report.NewBus(),
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "greeted", Handler: noop},
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "greeted", Handler: noop},
	)
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("err = %v, want ErrDuplicateRegistration", err)
	}
}

func TestSameComponentDifferentVariantsIsFine(t *testing.T) {
	table, err := NewTable(report.NewBus(),
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "greeted", Handler: noop},
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "reset_greet", Handler: noop},
		Binding{Category: events.CategorySlashCommand, ComponentID: "greeted", Handler: noop},
	)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if table.Size() != 3 {
		t.Errorf("table size = %d, want 3", table.Size())
	}
}

func TestVariantRouting(t *testing.T) {
	var called string
	record := func(name string) Handler {
		return func(context.Context, events.Envelope) error {
			called = name
			return nil
		}
	}

	table, err := NewTable(report.NewBus(),
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "greeted", Handler: record("greet")},
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "reset_greet", Handler: record("reset")},
		Binding{Category: events.CategoryButtonAction, ComponentID: "claim_mentee", Handler: record("claim")},
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		envelope  events.Envelope
		want      string
	}{
		{name: "exact variant", envelope: buttonEnvelope("greeted", "reset_greet"), want: "reset"},
		{name: "other variant", envelope: buttonEnvelope("greeted", "greeted"), want: "greet"},
		// The mentee widget smuggles a record ID through the action name, so
		// the variant is arbitrary and must fall back to the bare binding.
		{name: "unrecognized variant falls back", envelope: buttonEnvelope("claim_mentee", "recXYZ"), want: "claim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = ""
			if err := table.Dispatch(context.Background(), tt.envelope); err != nil {
				t.Fatalf("dispatch: %v", err)
			}
			if called != tt.want {
				t.Errorf("routed to %q, want %q", called, tt.want)
			}
		})
	}
}

func TestUnroutableIsReportedAndSwallowed(t *testing.T) {
	reports := report.NewBus()
	var got []report.Event
	reports.SubscribeAll(func(ev report.Event) { got = append(got, ev) })

	table, err := NewTable(reports,
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Variant: "greeted", Handler: noop},
	)
	if err != nil {
		t.Fatal(err)
	}

	// A click from a stale widget nobody registered anymore
	if err := table.Dispatch(context.Background(), buttonEnvelope("long_gone", "x")); err != nil {
		t.Fatalf("unroutable event must not error, got %v", err)
	}
	if len(got) != 1 || got[0].Type != report.EventUnroutable {
		t.Fatalf("reports = %+v, want one EventUnroutable", got)
	}
}

func TestMalformedEnvelopeIsReportedAndSwallowed(t *testing.T) {
	reports := report.NewBus()
	var got []report.Event
	reports.SubscribeAll(func(ev report.Event) { got = append(got, ev) })

	table, err := NewTable(reports,
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Handler: noop},
	)
	if err != nil {
		t.Fatal(err)
	}

	bad := buttonEnvelope("greeted", "")
	bad.Button = nil // category says button, payload says nothing
	if err := table.Dispatch(context.Background(), bad); err != nil {
		t.Fatalf("malformed envelope must not error, got %v", err)
	}
	if len(got) != 1 || got[0].Type != report.EventEnvelopeBad {
		t.Fatalf("reports = %+v, want one EventEnvelopeBad", got)
	}
}

func TestHandlerErrorPropagates(t *testing.T) {
	boom := errors.New("slack is down")
	table, err := NewTable(report.NewBus(),
		Binding{Category: events.CategoryButtonAction, ComponentID: "greeted", Handler: func(context.Context, events.Envelope) error {
			return boom
		}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := table.Dispatch(context.Background(), buttonEnvelope("greeted", "")); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
