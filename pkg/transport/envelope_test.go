package transport

import (
	"testing"

	"github.com/slack-go/slack"

	"github.com/operationcode/ocbot/pkg/events"
)

func TestEnvelopeFromInteractionMessage(t *testing.T) {
	cb := slack.InteractionCallback{
		Type:       slack.InteractionTypeInteractionMessage,
		CallbackID: "greeted",
		TriggerID:  "trig1",
		User:       slack.User{ID: "U1"},
	}
	cb.Channel.ID = "C1"
	cb.OriginalMessage = slack.Message{
		Msg: slack.Msg{
			Timestamp: "123.456",
			Text:      "welcome!",
			User:      "UBOT",
			Attachments: []slack.Attachment{
				{CallbackID: "greeted"},
			},
		},
	}
	cb.ActionCallback.AttachmentActions = []*slack.AttachmentAction{
		{
			Name:  "reset_greet",
			Value: "",
			SelectedOptions: []slack.AttachmentActionOption{
				{Text: "Done", Value: "done"},
			},
		},
	}

	ev, ok := envelopeFromInteraction(cb)
	if !ok {
		t.Fatal("interaction not reduced")
	}
	if err := ev.Validate(); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if ev.Category != events.CategoryButtonAction || ev.ComponentID != "greeted" || ev.Variant != "reset_greet" {
		t.Errorf("routing identity = %s/%s/%s", ev.Category, ev.ComponentID, ev.Variant)
	}
	if ev.Actor != "U1" {
		t.Errorf("actor = %q", ev.Actor)
	}
	b := ev.Button
	if b.Channel != "C1" || b.MessageTS != "123.456" || b.SelectedValue != "done" {
		t.Errorf("button payload = %+v", b)
	}
	if len(b.PriorAttachments) != 1 || b.PriorText != "welcome!" {
		t.Errorf("prior message not carried: %+v", b)
	}
}

func TestEnvelopeFromMessageAction(t *testing.T) {
	cb := slack.InteractionCallback{
		Type:       slack.InteractionTypeMessageAction,
		CallbackID: "report_message",
		TriggerID:  "trig2",
		User:       slack.User{ID: "U1"},
	}
	cb.Channel.ID = "C1"
	cb.Message = slack.Message{
		Msg: slack.Msg{Timestamp: "9.9", Text: "rude", User: "UBAD"},
	}

	ev, ok := envelopeFromInteraction(cb)
	if !ok {
		t.Fatal("message action not reduced")
	}
	if err := ev.Validate(); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if ev.Button.PriorAuthor != "UBAD" || ev.Button.PriorText != "rude" {
		t.Errorf("acted-on message not carried: %+v", ev.Button)
	}
}

func TestEnvelopeFromDialogSubmission(t *testing.T) {
	cb := slack.InteractionCallback{
		Type:       slack.InteractionTypeDialogSubmission,
		CallbackID: "report_dialog",
		User:       slack.User{ID: "U1"},
	}
	cb.Channel.ID = "C1"
	cb.Submission = map[string]string{"details": "spam"}
	cb.State = `{"v":1}`

	ev, ok := envelopeFromInteraction(cb)
	if !ok {
		t.Fatal("submission not reduced")
	}
	if err := ev.Validate(); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if ev.Dialog.Submission["details"] != "spam" || ev.Dialog.State != `{"v":1}` {
		t.Errorf("dialog payload = %+v", ev.Dialog)
	}
}

func TestUnknownInteractionDropped(t *testing.T) {
	cb := slack.InteractionCallback{Type: slack.InteractionTypeShortcut}
	if _, ok := envelopeFromInteraction(cb); ok {
		t.Fatal("shortcut should not be reduced")
	}

	// interactive_message without any action is equally unroutable
	cb = slack.InteractionCallback{Type: slack.InteractionTypeInteractionMessage}
	if _, ok := envelopeFromInteraction(cb); ok {
		t.Fatal("actionless interaction should not be reduced")
	}
}

func TestEnvelopeFromCommand(t *testing.T) {
	ev := envelopeFromCommand(slack.SlashCommand{
		Command:   "/lunch",
		Text:      "78701 3",
		UserID:    "U1",
		UserName:  "jane",
		ChannelID: "C1",
		TriggerID: "trig3",
	})
	if err := ev.Validate(); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if ev.ComponentID != "/lunch" || ev.Command.Text != "78701 3" || ev.Command.UserName != "jane" {
		t.Errorf("command envelope = %+v", ev)
	}
}
