package render

import (
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

// TicketSubmission is the parsed body of the ticket dialog.
type TicketSubmission struct {
	Email   string
	Subject string
	Details string
}

// statusOptions is the fixed three-way status menu.
func statusOptions() []slack.AttachmentActionOption {
	return []slack.AttachmentActionOption{
		{Text: "Open", Value: TicketStatusOpen},
		{Text: "In Progress", Value: TicketStatusInProgress},
		{Text: "Done", Value: TicketStatusDone},
	}
}

// StatusLabel maps a status value to its display text. Unknown values map
// to themselves so a stale client can never blank the control.
func StatusLabel(value string) string {
	for _, o := range statusOptions() {
		if o.Value == value {
			return o.Text
		}
	}
	return value
}

// TicketAttachments renders a freshly submitted ticket: the detail fields
// plus the status selection widget, starting in the "open" state.
func TicketAttachments(actor string, sub TicketSubmission, at time.Time) []slack.Attachment {
	return []slack.Attachment{
		{
			CallbackID: CallbackTicketStatus,
			Fallback:   "Ticket: " + sub.Subject,
			Color:      "warning",
			Title:      sub.Subject,
			Text:       sub.Details,
			Fields: []slack.AttachmentField{
				{Title: "Submitted by", Value: fmt.Sprintf("<@%s>", actor), Short: true},
				{Title: "Contact", Value: sub.Email, Short: true},
				{Title: "Status", Value: StatusLabel(TicketStatusOpen), Short: true},
			},
			Footer: "Submitted " + stamp(at),
			Actions: []slack.AttachmentAction{
				{
					Name:            CallbackTicketStatus,
					Text:            "Set status",
					Type:            "select",
					Options:         statusOptions(),
					SelectedOptions: []slack.AttachmentActionOption{{Text: "Open", Value: TicketStatusOpen}},
				},
			},
		},
	}
}

// TicketStatusUpdate replaces the ticket attachment's status field and
// selected option with the chosen value. The prior attachments are scanned
// by callback_id; everything else in the message is preserved as-is.
func TicketStatusUpdate(prior []slack.Attachment, selected, actor string, at time.Time) []slack.Attachment {
	out := make([]slack.Attachment, len(prior))
	copy(out, prior)
	for i, a := range out {
		if a.CallbackID != CallbackTicketStatus {
			continue
		}
		label := StatusLabel(selected)

		fields := make([]slack.AttachmentField, len(a.Fields))
		copy(fields, a.Fields)
		for j, f := range fields {
			if f.Title == "Status" {
				fields[j].Value = label
			}
		}
		a.Fields = fields

		actions := make([]slack.AttachmentAction, len(a.Actions))
		copy(actions, a.Actions)
		for j, act := range actions {
			if act.Name == CallbackTicketStatus {
				actions[j].SelectedOptions = []slack.AttachmentActionOption{{Text: label, Value: selected}}
			}
		}
		a.Actions = actions

		switch selected {
		case TicketStatusDone:
			a.Color = "good"
		case TicketStatusInProgress:
			a.Color = "#439FE0"
		default:
			a.Color = "warning"
		}
		a.Footer = fmt.Sprintf("Status set by <@%s> on %s", actor, stamp(at))
		out[i] = a
		break
	}
	return out
}

// TicketAnnouncement is the separate channel message announcing a status
// change. It is posted after the control update so a failed announcement
// never leaves the control stale.
func TicketAnnouncement(selected, actor string) string {
	return fmt.Sprintf("Ticket status changed to *%s* by <@%s>", StatusLabel(selected), actor)
}
