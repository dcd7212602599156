// Package render computes message state. Every function here is pure: given
// an event's inputs (and a clock value supplied by the handler) it returns
// the replacement attachments or dialog, and performs no I/O. Handlers own
// all writes.
//
// Each widget has a small closed set of states (two for the toggles, three
// for ticket status); a renderer call always lands on one of them.
package render

import (
	"time"
)

// Widget callback IDs. The callback_id on an attachment identifies which
// state machine it belongs to and is how dispatch routes clicks back here.
const (
	CallbackResources        = "resource_buttons"
	CallbackGreeted          = "greeted"
	CallbackClaimed          = "claimed"
	CallbackClaimMentee      = "claim_mentee"
	CallbackResetClaimMentee = "reset_claim_mentee"
	CallbackSuggestion       = "suggestion"
	CallbackSuggestionModal  = "suggestion_modal"
	CallbackReportMessage    = "report_message"
	CallbackReportDialog     = "report_dialog"
	CallbackOpenTicket       = "open_ticket"
	CallbackTicketStatus     = "ticket_status"
)

// Action names distinguishing sibling buttons within one widget.
const (
	ActionGreeted    = "greeted"
	ActionResetGreet = "reset_greet"
	ActionClaimed    = "claimed"
	ActionResetClaim = "reset_claim"
)

// Click-type values carried by the mentee claim button. The mentee widget
// smuggles the Airtable record ID through the action name, so the value is
// what tells claim from reset.
const (
	ValueMenteeClaimed   = "mentee_claimed"
	ValueMenteeUnclaimed = "mentee_unclaimed"
)

// Ticket status options (the three-way selection widget).
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusDone       = "done"
)

// stamp renders the human-readable timestamp embedded in toggled widgets.
func stamp(at time.Time) string {
	return at.UTC().Format("January 2, 2006 15:04 MST")
}
