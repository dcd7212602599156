// Package actions implements the button and dialog handlers. Each handler
// consumes one envelope, asks render for the new message state, and writes
// it through the platform collaborator. Handlers keep no state of their own,
// so any number of them can run concurrently for different events.
package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/operationcode/ocbot/pkg/airtable"
	"github.com/operationcode/ocbot/pkg/correlation"
	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/platform"
	"github.com/operationcode/ocbot/pkg/render"
	"github.com/operationcode/ocbot/pkg/report"
	"github.com/operationcode/ocbot/pkg/resources"
)

// Channels are the well-known destinations handlers post into.
type Channels struct {
	Community  string
	Ticket     string
	Moderators string
}

// Service holds the collaborators shared by all action handlers.
type Service struct {
	platform platform.Client
	records  airtable.Records
	reports  *report.Bus
	topics   *resources.Registry
	channels Channels
	clock    func() time.Time
}

// NewService wires the action handlers to their collaborators.
func NewService(p platform.Client, rec airtable.Records, rep *report.Bus, topics *resources.Registry, ch Channels) *Service {
	return &Service{
		platform: p,
		records:  rec,
		reports:  rep,
		topics:   topics,
		channels: ch,
		clock:    time.Now,
	}
}

// ResourceButtons swaps the resources message's text for the clicked topic.
// The attachments are carried over unchanged so the menu stays clickable.
func (s *Service) ResourceButtons(ctx context.Context, ev events.Envelope) error {
	text, ok := s.topics.Lookup(ev.Button.ActionName)
	if !ok {
		return fmt.Errorf("actions: unknown resource topic %q", ev.Button.ActionName)
	}
	return s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, text, ev.Button.PriorAttachments)
}

// MemberGreeted flips the greet widget to its greeted state.
func (s *Service) MemberGreeted(ctx context.Context, ev events.Envelope) error {
	attachments := render.ReplaceByCallbackID(
		ev.Button.PriorAttachments, render.CallbackGreeted, render.Greeted(ev.Actor, s.clock()))
	return s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments)
}

// ResetGreet flips the greet widget back, noting who reset it.
func (s *Service) ResetGreet(ctx context.Context, ev events.Envelope) error {
	attachments := render.ReplaceByCallbackID(
		ev.Button.PriorAttachments, render.CallbackGreeted, render.ResetGreet(ev.Actor, s.clock()))
	return s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments)
}

// Claimed flips the plain claim widget to its claimed state.
func (s *Service) Claimed(ctx context.Context, ev events.Envelope) error {
	attachments := render.ReplaceByCallbackID(
		ev.Button.PriorAttachments, render.CallbackClaimed, render.Claimed(ev.Actor, s.clock()))
	return s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments)
}

// ResetClaim flips the plain claim widget back to unclaimed.
func (s *Service) ResetClaim(ctx context.Context, ev events.Envelope) error {
	attachments := render.ReplaceByCallbackID(
		ev.Button.PriorAttachments, render.CallbackClaimed, render.NotClaimed())
	return s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments)
}

// OpenSuggestion opens the suggestion dialog.
func (s *Service) OpenSuggestion(ctx context.Context, ev events.Envelope) error {
	return s.platform.OpenDialog(ctx, ev.Button.TriggerID, render.SuggestionDialog())
}

// PostSuggestion posts a submitted suggestion to the community channel.
func (s *Service) PostSuggestion(ctx context.Context, ev events.Envelope) error {
	suggestion := ev.Dialog.Submission["suggestion"]
	if suggestion == "" {
		return errors.New("actions: suggestion submission missing body")
	}
	_, err := s.platform.PostMessage(ctx, s.channels.Community, render.SuggestionText(ev.Actor, suggestion), nil)
	return err
}

// OpenReportDialog opens the report dialog against the clicked message,
// encoding that message's coordinates into the dialog's state field.
func (s *Service) OpenReportDialog(ctx context.Context, ev events.Envelope) error {
	reported := correlation.NewReportedMessage(
		ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorAuthor, ev.Button.PriorText)
	dialog, err := render.ReportDialog(reported)
	if err != nil {
		return err
	}
	return s.platform.OpenDialog(ctx, ev.Button.TriggerID, dialog)
}

// SendReport decodes the correlation state a report dialog was opened with
// and posts the report to the moderators channel.
func (s *Service) SendReport(ctx context.Context, ev events.Envelope) error {
	reported, err := correlation.DecodeReportedMessage(ev.Dialog.State)
	if err != nil {
		return fmt.Errorf("actions: report submission: %w", err)
	}
	text, attachments := render.ReportMessage(ev.Actor, ev.Dialog.Submission["details"], reported)
	_, err = s.platform.PostMessage(ctx, s.channels.Moderators, text, attachments)
	return err
}

// OpenTicket posts a submitted ticket to the ticket channel with its status
// control in the initial "open" state.
func (s *Service) OpenTicket(ctx context.Context, ev events.Envelope) error {
	sub := render.TicketSubmission{
		Email:   ev.Dialog.Submission["email"],
		Subject: ev.Dialog.Submission["subject"],
		Details: ev.Dialog.Submission["details"],
	}
	if sub.Subject == "" {
		return errors.New("actions: ticket submission missing subject")
	}
	attachments := render.TicketAttachments(ev.Actor, sub, s.clock())
	_, err := s.platform.PostMessage(ctx, s.channels.Ticket, "New ticket submission", attachments)
	return err
}

// TicketStatus applies a status selection: the control message is updated
// first, then the announcement is posted, so a failed announcement never
// leaves the control stale.
func (s *Service) TicketStatus(ctx context.Context, ev events.Envelope) error {
	selected := ev.Button.SelectedValue
	if selected == "" {
		return errors.New("actions: ticket status event carries no selection")
	}
	attachments := render.TicketStatusUpdate(ev.Button.PriorAttachments, selected, ev.Actor, s.clock())
	if err := s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments); err != nil {
		return err
	}
	_, err := s.platform.PostMessage(ctx, ev.Button.Channel, render.TicketAnnouncement(selected, ev.Actor), nil)
	return err
}
