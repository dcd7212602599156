package render

import (
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

// ReplaceByCallbackID returns a copy of attachments with the entry matching
// callbackID replaced. Order is preserved and the sequence never grows: a
// message holds at most one live attachment per callback_id, so a linear
// scan with in-place replacement is the whole algorithm. If no entry
// matches, the copy is returned unchanged.
func ReplaceByCallbackID(attachments []slack.Attachment, callbackID string, replacement slack.Attachment) []slack.Attachment {
	out := make([]slack.Attachment, len(attachments))
	copy(out, attachments)
	for i, a := range out {
		if a.CallbackID == callbackID {
			out[i] = replacement
			break
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Greet toggle — "not greeted" ⇄ "greeted"
// ─────────────────────────────────────────────────────────────────────────────

// NotGreeted renders the initial state of the greet widget.
func NotGreeted() slack.Attachment {
	return slack.Attachment{
		CallbackID: CallbackGreeted,
		Fallback:   "Greet the new member",
		Color:      "warning",
		Actions: []slack.AttachmentAction{
			{Name: ActionGreeted, Text: "I greeted them!", Type: "button", Style: "primary"},
		},
	}
}

// Greeted renders the greeted state, recording who greeted and when.
func Greeted(actor string, at time.Time) slack.Attachment {
	return slack.Attachment{
		CallbackID: CallbackGreeted,
		Fallback:   "Member greeted",
		Color:      "good",
		Text:       fmt.Sprintf(":wave: Greeted by <@%s> on %s", actor, stamp(at)),
		Actions: []slack.AttachmentAction{
			{Name: ActionResetGreet, Text: "Reset greet", Type: "button", Style: "danger"},
		},
	}
}

// ResetGreet renders the widget back to its initial state, noting who reset
// it. The shape is NotGreeted's shape; only the informational text differs.
func ResetGreet(actor string, at time.Time) slack.Attachment {
	a := NotGreeted()
	a.Text = fmt.Sprintf("Greet reset by <@%s> on %s", actor, stamp(at))
	return a
}

// ─────────────────────────────────────────────────────────────────────────────
// Claim toggle — "unclaimed" ⇄ "claimed" (no external record attached)
// ─────────────────────────────────────────────────────────────────────────────

// NotClaimed renders the initial state of the plain claim widget.
func NotClaimed() slack.Attachment {
	return slack.Attachment{
		CallbackID: CallbackClaimed,
		Fallback:   "Claim this",
		Color:      "warning",
		Actions: []slack.AttachmentAction{
			{Name: ActionClaimed, Text: "Claim", Type: "button", Style: "primary"},
		},
	}
}

// Claimed renders the claimed state, recording who claimed and when.
func Claimed(actor string, at time.Time) slack.Attachment {
	return slack.Attachment{
		CallbackID: CallbackClaimed,
		Fallback:   "Claimed",
		Color:      "good",
		Text:       fmt.Sprintf("Claimed by <@%s> on %s", actor, stamp(at)),
		Actions: []slack.AttachmentAction{
			{Name: ActionResetClaim, Text: "Reset claim", Type: "button", Style: "danger"},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Mentee claim toggle — the dual-backend widget. The Airtable record ID rides
// in the action name so every click carries it back to the handler.
// ─────────────────────────────────────────────────────────────────────────────

// MenteeUnclaimed renders the claimable state of a mentorship request.
func MenteeUnclaimed(record string) slack.Attachment {
	return slack.Attachment{
		CallbackID: CallbackClaimMentee,
		Fallback:   "Claim this mentorship request",
		Color:      "warning",
		Actions: []slack.AttachmentAction{
			{Name: record, Text: "Claim Mentee", Type: "button", Style: "primary", Value: ValueMenteeClaimed},
		},
	}
}

// MenteeClaimed renders the claimed state of a mentorship request.
func MenteeClaimed(actor, record string, at time.Time) slack.Attachment {
	return slack.Attachment{
		CallbackID: CallbackResetClaimMentee,
		Fallback:   "Mentorship request claimed",
		Color:      "good",
		Text:       fmt.Sprintf("Claimed by <@%s> on %s", actor, stamp(at)),
		Actions: []slack.AttachmentAction{
			{Name: record, Text: "Reset Claim", Type: "button", Style: "danger", Value: ValueMenteeUnclaimed},
		},
	}
}

// MenteeWarning overwrites the lead attachment's text with a warning that
// the clicker's email was not found in the mentor table. The widget shape
// is otherwise untouched so the request stays claimable.
func MenteeWarning(attachments []slack.Attachment, actor string) []slack.Attachment {
	out := make([]slack.Attachment, len(attachments))
	copy(out, attachments)
	if len(out) > 0 {
		out[0].Text = fmt.Sprintf(":warning: <@%s>'s Slack email was not found in the mentor table. :warning:", actor)
		out[0].Color = "danger"
	}
	return out
}
