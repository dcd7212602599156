package transport

import (
	"github.com/slack-go/slack"

	"github.com/operationcode/ocbot/pkg/events"
)

// envelopeFromInteraction reduces an interaction callback to an envelope.
// Button clicks and select changes arrive as interactive_message, message
// actions (like "report message") as message_action, and dialog submissions
// as dialog_submission; anything else is not ours to route.
func envelopeFromInteraction(cb slack.InteractionCallback) (events.Envelope, bool) {
	switch cb.Type {
	case slack.InteractionTypeInteractionMessage:
		if len(cb.ActionCallback.AttachmentActions) == 0 {
			return events.Envelope{}, false
		}
		action := cb.ActionCallback.AttachmentActions[0]

		selected := ""
		if len(action.SelectedOptions) > 0 {
			selected = action.SelectedOptions[0].Value
		}

		return events.Envelope{
			Category:    events.CategoryButtonAction,
			ComponentID: cb.CallbackID,
			Variant:     action.Name,
			Actor:       cb.User.ID,
			Button: &events.ButtonEvent{
				ActionName:       action.Name,
				ActionValue:      action.Value,
				SelectedValue:    selected,
				Channel:          cb.Channel.ID,
				MessageTS:        cb.OriginalMessage.Timestamp,
				TriggerID:        cb.TriggerID,
				PriorText:        cb.OriginalMessage.Text,
				PriorAuthor:      cb.OriginalMessage.User,
				PriorAttachments: cb.OriginalMessage.Attachments,
			},
		}, true

	case slack.InteractionTypeMessageAction:
		return events.Envelope{
			Category:    events.CategoryButtonAction,
			ComponentID: cb.CallbackID,
			Actor:       cb.User.ID,
			Button: &events.ButtonEvent{
				Channel:     cb.Channel.ID,
				MessageTS:   cb.Message.Timestamp,
				TriggerID:   cb.TriggerID,
				PriorText:   cb.Message.Text,
				PriorAuthor: cb.Message.User,
			},
		}, true

	case slack.InteractionTypeDialogSubmission:
		return events.Envelope{
			Category:    events.CategoryDialogSubmission,
			ComponentID: cb.CallbackID,
			Actor:       cb.User.ID,
			Dialog: &events.DialogEvent{
				Submission: cb.Submission,
				State:      cb.State,
				Channel:    cb.Channel.ID,
			},
		}, true

	default:
		return events.Envelope{}, false
	}
}

// envelopeFromCommand reduces a slash command to an envelope. The command
// name is the component ID; commands have no variants.
func envelopeFromCommand(cmd slack.SlashCommand) events.Envelope {
	return events.Envelope{
		Category:    events.CategorySlashCommand,
		ComponentID: cmd.Command,
		Actor:       cmd.UserID,
		Command: &events.CommandEvent{
			Text:      cmd.Text,
			Channel:   cmd.ChannelID,
			UserName:  cmd.UserName,
			TriggerID: cmd.TriggerID,
		},
	}
}
