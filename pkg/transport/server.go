// Package transport is the inbound HTTP layer: it verifies Slack's request
// signature, reduces each callback to an envelope, acks within Slack's
// deadline, and hands the envelope to dispatch on its own goroutine. Any
// number of events can be in flight at once; each one suspends independently
// at its network calls.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/slack-go/slack"

	"github.com/operationcode/ocbot/pkg/dispatch"
	"github.com/operationcode/ocbot/pkg/events"
	"github.com/operationcode/ocbot/pkg/logger"
	"github.com/operationcode/ocbot/pkg/report"
)

// Server receives Slack's interaction and command callbacks.
type Server struct {
	table         *dispatch.Table
	reports       *report.Bus
	signingSecret string
	httpServer    *http.Server
}

// NewServer builds the callback server around a finished dispatch table.
func NewServer(addr, signingSecret string, table *dispatch.Table, reports *report.Bus) *Server {
	s := &Server{
		table:         table,
		reports:       reports,
		signingSecret: signingSecret,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer) // one bad event must never take the loop down
	r.Post("/slack/actions", s.handleInteraction)
	r.Post("/slack/commands", s.handleCommand)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the listener until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	logger.InfoCF("transport", "Listening for Slack callbacks", map[string]interface{}{"addr": s.httpServer.Addr})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// verify checks Slack's signature and returns the raw body with the request
// body replaced so later form parsing still works.
func (s *Server) verify(r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, false
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	sv, err := slack.NewSecretsVerifier(r.Header, s.signingSecret)
	if err != nil {
		return nil, false
	}
	if _, err := sv.Write(body); err != nil {
		return nil, false
	}
	if err := sv.Ensure(); err != nil {
		logger.WarnC("transport", "Rejected request with bad signature")
		return nil, false
	}
	return body, true
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	body, ok := s.verify(r)
	if !ok {
		http.Error(w, "bad signature", http.StatusUnauthorized)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(form.Get("payload")), &cb); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	ev, ok := envelopeFromInteraction(cb)
	if !ok {
		// Unknown interaction kinds are dropped, not errored — Slack retries
		// non-200s and a retry cannot make the event routable.
		w.WriteHeader(http.StatusOK)
		return
	}

	s.dispatchAsync(ev)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.verify(r); !ok {
		http.Error(w, "bad signature", http.StatusUnauthorized)
		return
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	s.dispatchAsync(envelopeFromCommand(cmd))
	w.WriteHeader(http.StatusOK)
}

// dispatchAsync runs the handler on its own goroutine, detached from the
// request context (the HTTP exchange is already acked). Errors are logged
// and reported here; events are never retried.
func (s *Server) dispatchAsync(ev events.Envelope) {
	go func() {
		if err := s.table.Dispatch(context.Background(), ev); err != nil {
			logger.ErrorCF("transport", "Handler failed", map[string]interface{}{
				"component": ev.ComponentID,
				"variant":   ev.Variant,
				"error":     err.Error(),
			})
			s.reports.Publish(report.Event{
				Type:   report.EventHandlerFailed,
				Source: "transport",
				Err:    err,
				Fields: map[string]interface{}{"component": ev.ComponentID, "variant": ev.Variant, "actor": ev.Actor},
			})
		}
	}()
}
