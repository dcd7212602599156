// ocbot — the operationcode community Slack bot.
// Composition root: load config, wire collaborators, build the dispatch
// table, and serve Slack callbacks until signalled to stop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slack-go/slack"

	"github.com/operationcode/ocbot/pkg/actions"
	"github.com/operationcode/ocbot/pkg/airtable"
	"github.com/operationcode/ocbot/pkg/backend"
	"github.com/operationcode/ocbot/pkg/commands"
	"github.com/operationcode/ocbot/pkg/config"
	"github.com/operationcode/ocbot/pkg/dispatch"
	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/logger"
	"github.com/operationcode/ocbot/pkg/platform"
	"github.com/operationcode/ocbot/pkg/render"
	"github.com/operationcode/ocbot/pkg/report"
	"github.com/operationcode/ocbot/pkg/resources"
	"github.com/operationcode/ocbot/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ocbot:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	// Collaborators
	chat := platform.NewSlackClient(slack.New(cfg.Slack.BotToken))
	records := airtable.New(cfg.Airtable.BaseURL, cfg.Airtable.BaseID, cfg.Airtable.APIKey)
	lookups := backend.New(cfg.Backend.Host, cfg.Backend.Port, cfg.Backend.Token, cfg.Lunch.ProxyURL)

	reports := report.NewBus()
	reports.SubscribeAll(report.LogSubscriber())
	defer reports.Close()

	topics := resources.NewRegistry()
	if cfg.ResourcesFile != "" {
		n, err := topics.LoadFile(cfg.ResourcesFile)
		if err != nil {
			return err
		}
		logger.InfoCF("resources", "Loaded topic overrides", map[string]interface{}{"count": n, "file": cfg.ResourcesFile})
	}

	// Handler services
	act := actions.NewService(chat, records, reports, topics, actions.Channels{
		Community:  cfg.Slack.CommunityChannel,
		Ticket:     cfg.Slack.TicketChannel,
		Moderators: cfg.Slack.ModeratorsChannel,
	})
	cmd := commands.NewService(chat, lookups)

	table, err := dispatch.NewTable(reports,
		// Button and select widgets
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackResources, Handler: act.ResourceButtons},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackGreeted, Variant: render.ActionGreeted, Handler: act.MemberGreeted},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackGreeted, Variant: render.ActionResetGreet, Handler: act.ResetGreet},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackClaimed, Variant: render.ActionClaimed, Handler: act.Claimed},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackClaimed, Variant: render.ActionResetClaim, Handler: act.ResetClaim},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackClaimMentee, Handler: act.ClaimMentee},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackResetClaimMentee, Handler: act.ClaimMentee},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackSuggestion, Handler: act.OpenSuggestion},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackReportMessage, Handler: act.OpenReportDialog},
		dispatch.Binding{Category: events.CategoryButtonAction, ComponentID: render.CallbackTicketStatus, Handler: act.TicketStatus},

		// Dialog submissions
		dispatch.Binding{Category: events.CategoryDialogSubmission, ComponentID: render.CallbackSuggestionModal, Handler: act.PostSuggestion},
		dispatch.Binding{Category: events.CategoryDialogSubmission, ComponentID: render.CallbackReportDialog, Handler: act.SendReport},
		dispatch.Binding{Category: events.CategoryDialogSubmission, ComponentID: render.CallbackOpenTicket, Handler: act.OpenTicket},

		// Slash commands
		dispatch.Binding{Category: events.CategorySlashCommand, ComponentID: commands.CommandHere, Handler: cmd.Here},
		dispatch.Binding{Category: events.CategorySlashCommand, ComponentID: commands.CommandLunch, Handler: cmd.Lunch},
		dispatch.Binding{Category: events.CategorySlashCommand, ComponentID: commands.CommandRepeat, Handler: cmd.Repeat},
		dispatch.Binding{Category: events.CategorySlashCommand, ComponentID: commands.CommandTicket, Handler: cmd.Ticket},
	)
	if err != nil {
		return err
	}
	logger.InfoCF("main", "Dispatch table built", map[string]interface{}{"bindings": table.Size()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := transport.NewServer(cfg.BindAddr, cfg.Slack.SigningSecret, table, reports)
	return server.Start(ctx)
}
