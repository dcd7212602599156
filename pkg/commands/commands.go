// Package commands implements the slash-command handlers. Commands are
// best-effort: a failed or empty backend lookup means the command quietly
// does nothing, never an error message in the channel.
package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/operationcode/ocbot/pkg/backend"
	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/platform"
	"github.com/operationcode/ocbot/pkg/render"
)

// Slash command names as registered with Slack.
const (
	CommandHere   = "/here"
	CommandLunch  = "/lunch"
	CommandRepeat = "/repeat"
	CommandTicket = "/ticket"
)

const defaultLunchRadius = 5

// Service holds the collaborators shared by all command handlers.
type Service struct {
	platform platform.Client
	lookups  backend.Lookups
	pick     func(n int) int // injectable for deterministic tests
}

// NewService wires the command handlers to their collaborators.
func NewService(p platform.Client, l backend.Lookups) *Service {
	return &Service{platform: p, lookups: l, pick: rand.Intn}
}

// Here lets channel moderators ping the channel without @here permissions.
// Non-mods (or a failing mod check) no-op silently. The headline is posted
// to the channel and the member list is threaded under it so the channel
// itself stays readable.
func (s *Service) Here(ctx context.Context, ev events.Envelope) error {
	isMod, err := s.lookups.IsMod(ctx, ev.Actor, ev.Command.Channel)
	if err != nil {
		return fmt.Errorf("commands: /here mod check: %w", err)
	}
	if !isMod {
		return nil
	}

	members, err := s.platform.ChannelMembers(ctx, ev.Command.Channel)
	if err != nil {
		return fmt.Errorf("commands: /here members: %w", err)
	}

	headline := fmt.Sprintf("<!here> message from <@%s>: %s", ev.Actor, ev.Command.Text)
	ts, err := s.platform.PostMessage(ctx, ev.Command.Channel, headline, nil)
	if err != nil {
		return err
	}

	mentions := make([]string, len(members))
	for i, m := range members {
		mentions[i] = fmt.Sprintf("<@%s>", m)
	}
	return s.platform.PostThreadMessage(ctx, ev.Command.Channel, ts, strings.Join(mentions, " "))
}

// Lunch picks a random lunch spot near the given zip and tells only the
// caller. Usage: /lunch <zip> [radius-miles].
func (s *Service) Lunch(ctx context.Context, ev events.Envelope) error {
	zip, radius, ok := parseLunchParams(ev.Command.Text)
	if !ok {
		return s.platform.PostEphemeral(ctx, ev.Command.Channel, ev.Actor,
			"Usage: `/lunch <zip> [radius]` — e.g. `/lunch 78701 3`")
	}

	venues, err := s.lookups.LunchSpots(ctx, zip, radius)
	if err != nil {
		return fmt.Errorf("commands: /lunch lookup: %w", err)
	}
	if len(venues) == 0 {
		return s.platform.PostEphemeral(ctx, ev.Command.Channel, ev.Actor,
			fmt.Sprintf("No lunch spots found near %s. Brown bag it?", zip))
	}

	v := venues[s.pick(len(venues))]
	msg := fmt.Sprintf("The wheel has spoken, %s: *%s* at %s, %s", ev.Command.UserName, v.Name, v.Address, v.City)
	return s.platform.PostEphemeral(ctx, ev.Command.Channel, ev.Actor, msg)
}

// parseLunchParams splits "<zip> [radius]" from the command text.
func parseLunchParams(text string) (zip string, radius int, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", 0, false
	}
	zip = fields[0]
	if len(zip) != 5 {
		return "", 0, false
	}
	if _, err := strconv.Atoi(zip); err != nil {
		return "", 0, false
	}
	radius = defaultLunchRadius
	if len(fields) > 1 {
		r, err := strconv.Atoi(fields[1])
		if err != nil || r <= 0 {
			return "", 0, false
		}
		radius = r
	}
	return zip, radius, true
}

// Repeat re-posts the caller's text as the bot, moderators only. The
// original used this to restate announcements; non-mods no-op silently.
func (s *Service) Repeat(ctx context.Context, ev events.Envelope) error {
	if strings.TrimSpace(ev.Command.Text) == "" {
		return nil
	}
	isMod, err := s.lookups.IsMod(ctx, ev.Actor, ev.Command.Channel)
	if err != nil {
		return fmt.Errorf("commands: /repeat mod check: %w", err)
	}
	if !isMod {
		return nil
	}
	_, err = s.platform.PostMessage(ctx, ev.Command.Channel, ev.Command.Text, nil)
	return err
}

// Ticket opens the ticket dialog from the command's trigger.
func (s *Service) Ticket(ctx context.Context, ev events.Envelope) error {
	return s.platform.OpenDialog(ctx, ev.Command.TriggerID, render.TicketDialog())
}
