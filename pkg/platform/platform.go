// Package platform is the chat-platform collaborator. Handlers depend on the
// Client interface only; the production implementation wraps slack-go.
// All durable UI state lives in Slack's message store — the bot reads it from
// the echoed prior message and writes it back through these calls, never
// caching a message across events.
package platform

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Profile is the subset of a user profile the bot reads. Email is the
// cross-reference used to resolve the user in the record-keeping service.
type Profile struct {
	Email       string
	RealName    string
	DisplayName string
}

// Client is the outbound surface to the chat platform.
type Client interface {
	// UpdateMessage replaces the text and attachments of an existing message.
	UpdateMessage(ctx context.Context, channel, ts, text string, attachments []slack.Attachment) error
	// PostMessage posts a new channel message and returns its timestamp.
	PostMessage(ctx context.Context, channel, text string, attachments []slack.Attachment) (string, error)
	// PostThreadMessage posts a message threaded under threadTS.
	PostThreadMessage(ctx context.Context, channel, threadTS, text string) error
	// PostEphemeral posts a message visible only to one user.
	PostEphemeral(ctx context.Context, channel, user, text string) error
	// OpenDialog opens a dialog against a trigger from a recent interaction.
	OpenDialog(ctx context.Context, triggerID string, dialog slack.Dialog) error
	// UserProfile fetches a user's profile by ID.
	UserProfile(ctx context.Context, userID string) (Profile, error)
	// ChannelMembers lists the user IDs present in a channel.
	ChannelMembers(ctx context.Context, channel string) ([]string, error)
}

// SlackClient implements Client over the Slack Web API.
type SlackClient struct {
	api *slack.Client
}

// NewSlackClient wraps an authenticated slack-go client.
func NewSlackClient(api *slack.Client) *SlackClient {
	return &SlackClient{api: api}
}

func (c *SlackClient) UpdateMessage(ctx context.Context, channel, ts, text string, attachments []slack.Attachment) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, channel, ts,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAttachments(attachments...),
	)
	if err != nil {
		return fmt.Errorf("platform: update message %s/%s: %w", channel, ts, err)
	}
	return nil
}

func (c *SlackClient) PostMessage(ctx context.Context, channel, text string, attachments []slack.Attachment) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAttachments(attachments...),
	)
	if err != nil {
		return "", fmt.Errorf("platform: post message to %s: %w", channel, err)
	}
	return ts, nil
}

func (c *SlackClient) PostThreadMessage(ctx context.Context, channel, threadTS, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("platform: post thread message to %s: %w", channel, err)
	}
	return nil
}

func (c *SlackClient) PostEphemeral(ctx context.Context, channel, user, text string) error {
	_, err := c.api.PostEphemeralContext(ctx, channel, user,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("platform: post ephemeral to %s: %w", channel, err)
	}
	return nil
}

func (c *SlackClient) OpenDialog(ctx context.Context, triggerID string, dialog slack.Dialog) error {
	if err := c.api.OpenDialogContext(ctx, triggerID, dialog); err != nil {
		return fmt.Errorf("platform: open dialog: %w", err)
	}
	return nil
}

func (c *SlackClient) UserProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("platform: user info %s: %w", userID, err)
	}
	return Profile{
		Email:       user.Profile.Email,
		RealName:    user.Profile.RealName,
		DisplayName: user.Profile.DisplayName,
	}, nil
}

func (c *SlackClient) ChannelMembers(ctx context.Context, channel string) ([]string, error) {
	var members []string
	params := &slack.GetUsersInConversationParameters{ChannelID: channel, Limit: 200}
	for {
		page, cursor, err := c.api.GetUsersInConversationContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("platform: members of %s: %w", channel, err)
		}
		members = append(members, page...)
		if cursor == "" {
			return members, nil
		}
		params.Cursor = cursor
	}
}

// Verify interface compliance at compile time.
var _ Client = (*SlackClient)(nil)
