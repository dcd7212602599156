// Package correlation carries typed context across a two-step interaction.
// When a dialog is opened the triggering message's coordinates are encoded
// into the dialog's opaque state field; the submission handler — possibly a
// different process — decodes them back. Nothing is held in memory between
// the two deliveries.
package correlation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Version is bumped whenever the payload shape changes incompatibly.
const Version = 1

// ErrBadPayload marks a state field that could not be decoded. Callers
// distinguish this from collaborator errors with errors.Is.
var ErrBadPayload = errors.New("correlation: undecodable state payload")

// ReportedMessage identifies the message a report dialog was opened against.
type ReportedMessage struct {
	Version int    `json:"v"`
	Nonce   string `json:"nonce"` // ties the submission back to one open, for log lines only
	Channel string `json:"channel"`
	TS      string `json:"ts"`
	Author  string `json:"author"`
	Text    string `json:"text"`
}

// NewReportedMessage builds a versioned payload for the given message.
func NewReportedMessage(channel, ts, author, text string) ReportedMessage {
	return ReportedMessage{
		Version: Version,
		Nonce:   uuid.NewString(),
		Channel: channel,
		TS:      ts,
		Author:  author,
		Text:    text,
	}
}

// Encode serializes the payload for the dialog state field.
func (m ReportedMessage) Encode() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("correlation: encode: %w", err)
	}
	return string(b), nil
}

// DecodeReportedMessage parses a state field produced by Encode. A blob
// that does not parse, or that carries an unknown version, is ErrBadPayload.
func DecodeReportedMessage(state string) (ReportedMessage, error) {
	var m ReportedMessage
	if err := json.Unmarshal([]byte(state), &m); err != nil {
		return ReportedMessage{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if m.Version != Version {
		return ReportedMessage{}, fmt.Errorf("%w: unknown version %d", ErrBadPayload, m.Version)
	}
	return m, nil
}
