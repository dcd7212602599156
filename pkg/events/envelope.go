// Package events defines the normalized envelope every inbound Slack
// callback is reduced to before dispatch. The envelope is a tagged union:
// exactly one of Button, Dialog, Command is populated, matching Category.
package events

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Category classifies an inbound event for routing.
type Category string

const (
	CategoryButtonAction     Category = "button_action"
	CategoryDialogSubmission Category = "dialog_submission"
	CategorySlashCommand     Category = "slash_command"
)

// Envelope is one normalized inbound event. Envelopes are created per
// delivery by the transport layer and discarded after handler completion;
// no handler retains one.
type Envelope struct {
	Category    Category
	ComponentID string // callback_id of the widget, or the slash command name
	Variant     string // action name within the widget; empty when the widget has one action
	Actor       string // Slack user ID of the clicker/submitter/caller

	Button  *ButtonEvent
	Dialog  *DialogEvent
	Command *CommandEvent
}

// ButtonEvent carries the payload of an interactive-message action.
// Slack echoes the full prior message back on every button click, which is
// the only durable UI state the bot has.
type ButtonEvent struct {
	ActionName    string
	ActionValue   string
	SelectedValue string // populated for select-menu actions

	Channel   string
	MessageTS string
	TriggerID string

	PriorText        string
	PriorAuthor      string
	PriorAttachments []slack.Attachment
}

// DialogEvent carries the payload of a dialog submission.
type DialogEvent struct {
	Submission map[string]string
	State      string // opaque correlation state set when the dialog was opened
	Channel    string
}

// CommandEvent carries the payload of a slash command.
type CommandEvent struct {
	Text      string
	Channel   string
	UserName  string
	TriggerID string
}

// Validate checks that exactly the payload matching Category is populated.
// The transport must never hand a malformed envelope to a handler; dispatch
// re-checks anyway because a bad envelope is logged and dropped, not raised
// to the end user.
func (e Envelope) Validate() error {
	if e.ComponentID == "" {
		return fmt.Errorf("envelope: empty component_id")
	}
	if e.Actor == "" {
		return fmt.Errorf("envelope: empty actor")
	}

	var want, got string
	switch e.Category {
	case CategoryButtonAction:
		want = "button"
	case CategoryDialogSubmission:
		want = "dialog"
	case CategorySlashCommand:
		want = "command"
	default:
		return fmt.Errorf("envelope: unknown category %q", e.Category)
	}

	switch {
	case e.Button != nil && e.Dialog == nil && e.Command == nil:
		got = "button"
	case e.Dialog != nil && e.Button == nil && e.Command == nil:
		got = "dialog"
	case e.Command != nil && e.Button == nil && e.Dialog == nil:
		got = "command"
	default:
		return fmt.Errorf("envelope: category %s requires exactly one payload", e.Category)
	}

	if want != got {
		return fmt.Errorf("envelope: category %s carries %s payload", e.Category, got)
	}
	return nil
}
