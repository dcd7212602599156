package actions

import (
	"context"
	"fmt"

	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/render"
	"github.com/operationcode/ocbot/pkg/report"
)

// ClaimMentee coordinates the one dual-backend workflow: claiming a
// mentorship request updates both the Slack message and the Airtable record,
// with no shared transaction between them.
//
// Write order is platform-first so the clicker sees immediate feedback even
// when Airtable is slow. If the record write then fails, the UI shows
// "claimed" while the record does not — that window is accepted and surfaced
// as a sync.claim.orphaned report instead of being retried or compensated.
//
// Nothing escapes this handler: every failure is reported and the event is
// considered handled, so one bad claim can never take down the dispatch
// loop. The UI may be left pre-claim if the platform write itself failed;
// the next click bounds the inconsistency.
func (s *Service) ClaimMentee(ctx context.Context, ev events.Envelope) error {
	if err := s.claimMentee(ctx, ev); err != nil {
		s.reports.Publish(report.Event{
			Type:   report.EventClaimFailed,
			Source: "actions",
			Err:    err,
			Fields: map[string]interface{}{"actor": ev.Actor, "record": ev.Button.ActionName},
		})
	}
	return nil
}

func (s *Service) claimMentee(ctx context.Context, ev events.Envelope) error {
	record := ev.Button.ActionName // the Airtable record ID rides in the action name
	clickType := ev.Button.ActionValue

	// Reset is asymmetric: the message goes back to claimable, the external
	// record keeps its last owner.
	if clickType == render.ValueMenteeUnclaimed {
		attachments := render.ReplaceByCallbackID(
			ev.Button.PriorAttachments, ev.ComponentID, render.MenteeUnclaimed(record))
		return s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments)
	}
	if clickType != render.ValueMenteeClaimed {
		return fmt.Errorf("actions: unknown mentee click type %q", clickType)
	}

	profile, err := s.platform.UserProfile(ctx, ev.Actor)
	if err != nil {
		return fmt.Errorf("actions: claim lookup profile: %w", err)
	}

	mentorID, err := s.records.MentorIDFromEmail(ctx, profile.Email)
	if err != nil {
		return fmt.Errorf("actions: claim resolve mentor: %w", err)
	}

	if mentorID == "" {
		// Recognized terminal outcome, not a failure: warn in place and
		// leave the record untouched.
		attachments := render.MenteeWarning(ev.Button.PriorAttachments, ev.Actor)
		if err := s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments); err != nil {
			return err
		}
		s.reports.Publish(report.Event{
			Type:   report.EventClaimSkipped,
			Source: "actions",
			Fields: map[string]interface{}{"actor": ev.Actor, "record": record, "email": profile.Email},
		})
		return nil
	}

	attachments := render.ReplaceByCallbackID(
		ev.Button.PriorAttachments, ev.ComponentID, render.MenteeClaimed(ev.Actor, record, s.clock()))
	if err := s.platform.UpdateMessage(ctx, ev.Button.Channel, ev.Button.MessageTS, ev.Button.PriorText, attachments); err != nil {
		return err
	}

	if err := s.records.UpdateRequest(ctx, record, mentorID); err != nil {
		s.reports.Publish(report.Event{
			Type:   report.EventClaimOrphaned,
			Source: "actions",
			Err:    err,
			Fields: map[string]interface{}{"actor": ev.Actor, "record": record, "mentor": mentorID},
		})
		return nil
	}

	s.reports.Publish(report.Event{
		Type:   report.EventClaimSynced,
		Source: "actions",
		Fields: map[string]interface{}{"actor": ev.Actor, "record": record, "mentor": mentorID},
	})
	return nil
}
