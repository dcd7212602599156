package events

import "testing"

func TestValidate(t *testing.T) {
	button := &ButtonEvent{Channel: "C1"}
	dialog := &DialogEvent{Submission: map[string]string{}}
	command := &CommandEvent{Channel: "C1"}

	tests := []struct {
		name    string
		ev      Envelope
		wantErr bool
	}{
		{
			name: "button ok",
			ev:   Envelope{Category: CategoryButtonAction, ComponentID: "greeted", Actor: "U1", Button: button},
		},
		{
			name: "dialog ok",
			ev:   Envelope{Category: CategoryDialogSubmission, ComponentID: "report_dialog", Actor: "U1", Dialog: dialog},
		},
		{
			name: "command ok",
			ev:   Envelope{Category: CategorySlashCommand, ComponentID: "/here", Actor: "U1", Command: command},
		},
		{
			name:    "no payload",
			ev:      Envelope{Category: CategoryButtonAction, ComponentID: "greeted", Actor: "U1"},
			wantErr: true,
		},
		{
			name:    "wrong payload for category",
			ev:      Envelope{Category: CategoryButtonAction, ComponentID: "greeted", Actor: "U1", Dialog: dialog},
			wantErr: true,
		},
		{
			name: "two payloads",
			ev: Envelope{
				Category: CategoryButtonAction, ComponentID: "greeted", Actor: "U1",
				Button: button, Dialog: dialog,
			},
			wantErr: true,
		},
		{
			name:    "unknown category",
			ev:      Envelope{Category: "webhook", ComponentID: "x", Actor: "U1", Button: button},
			wantErr: true,
		},
		{
			name:    "missing component",
			ev:      Envelope{Category: CategoryButtonAction, Actor: "U1", Button: button},
			wantErr: true,
		},
		{
			name:    "missing actor",
			ev:      Envelope{Category: CategoryButtonAction, ComponentID: "greeted", Button: button},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ev.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
