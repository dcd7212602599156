package render

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/operationcode/ocbot/pkg/correlation"
)

// SuggestionDialog is opened by the "Are we missing something?" button on
// the resources message.
func SuggestionDialog() slack.Dialog {
	return slack.Dialog{
		CallbackID:  CallbackSuggestionModal,
		Title:       "Make a suggestion",
		SubmitLabel: "Submit",
		Elements: []slack.DialogElement{
			slack.NewTextAreaInput("suggestion", "What are we missing?", ""),
		},
	}
}

// ReportDialog is opened from a message action. The reported message's
// coordinates travel in the dialog's opaque state field and come back
// verbatim on submission — the submission may land on a different process,
// so nothing is kept in memory.
func ReportDialog(reported correlation.ReportedMessage) (slack.Dialog, error) {
	state, err := reported.Encode()
	if err != nil {
		return slack.Dialog{}, err
	}
	return slack.Dialog{
		CallbackID:  CallbackReportDialog,
		Title:       "Report message",
		SubmitLabel: "Report",
		State:       state,
		Elements: []slack.DialogElement{
			slack.NewTextAreaInput("details", "What's wrong with this message?", ""),
		},
	}, nil
}

// TicketDialog collects a new support ticket.
func TicketDialog() slack.Dialog {
	email := slack.NewTextInput("email", "Contact email", "")
	email.Subtype = slack.InputSubtypeEmail
	return slack.Dialog{
		CallbackID:  CallbackOpenTicket,
		Title:       "Open a ticket",
		SubmitLabel: "Open",
		Elements: []slack.DialogElement{
			email,
			slack.NewTextInput("subject", "Subject", ""),
			slack.NewTextAreaInput("details", "Details", ""),
		},
	}
}

// SuggestionText is the community-channel message for a submitted suggestion.
func SuggestionText(actor, suggestion string) string {
	return fmt.Sprintf(":bulb: New suggestion from <@%s>:\n>%s", actor, suggestion)
}

// ReportMessage renders the moderators-channel message for a submitted
// report: who reported, their details, and the offending message quoted.
func ReportMessage(reporter, details string, reported correlation.ReportedMessage) (string, []slack.Attachment) {
	text := fmt.Sprintf(":rotating_light: <@%s> reported a message", reporter)
	attachments := []slack.Attachment{
		{
			Fallback: "Reported message",
			Color:    "danger",
			Title:    "Reported message",
			Text:     reported.Text,
			Fields: []slack.AttachmentField{
				{Title: "Author", Value: fmt.Sprintf("<@%s>", reported.Author), Short: true},
				{Title: "Channel", Value: fmt.Sprintf("<#%s>", reported.Channel), Short: true},
			},
			Footer: "report " + reported.Nonce,
		},
		{
			Fallback: "Report details",
			Title:    "Reporter's details",
			Text:     details,
		},
	}
	return text, attachments
}
