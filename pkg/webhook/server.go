package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// errResponded guards against a handler answering an interaction twice.
var errResponded = errors.New("webhook: interaction already responded to")

// Config configures a webhook server.
type Config struct {
	// Token, when set, is required as a bearer token on every request.
	Token string

	// Dispatcher routes interactions. Nil means a fresh dispatcher; use
	// Server.Dispatcher to register paginators against it.
	Dispatcher *messenger.Dispatcher

	// Logger receives request logs. Nil means slog.Default().
	Logger *slog.Logger
}

// Server receives interaction webhooks and routes them through a
// Dispatcher. It implements http.Handler.
type Server struct {
	*messenger.Dispatcher

	router chi.Router
	token  string
	logger *slog.Logger
}

// interactionRequest is the wire shape of one delivered interaction.
type interactionRequest struct {
	InteractionID string         `json:"interaction_id"`
	CustomID      string         `json:"custom_id"`
	Values        []string       `json:"values,omitempty"`
	User          messenger.User `json:"user"`
}

// interactionResponse is the synchronous answer to a webhook delivery.
type interactionResponse struct {
	Type    string           `json:"type"` // "defer", "ephemeral" or "edit"
	Content string           `json:"content,omitempty"`
	Payload *message.Payload `json:"payload,omitempty"`
}

// NewServer builds a webhook server. Register paginator sessions on its
// embedded Dispatcher (paginators do this themselves when the server is
// paired with their messenger's dispatcher).
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = messenger.NewDispatcher(cfg.Logger)
	}

	s := &Server{
		Dispatcher: cfg.Dispatcher,
		token:      cfg.Token,
		logger:     cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Post("/interactions", s.handleInteraction)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed interaction", http.StatusBadRequest)
		return
	}

	ic := &interactionCtx{req: req}
	err := s.Dispatch(r.Context(), ic)
	switch {
	case err == nil:
	case errors.Is(err, messenger.ErrBadCustomID):
		http.Error(w, "malformed custom id", http.StatusBadRequest)
		return
	case errors.Is(err, messenger.ErrUnknownSession), errors.Is(err, messenger.ErrUnknownRole):
		http.Error(w, "unknown interaction target", http.StatusNotFound)
		return
	default:
		s.logger.Error("interaction handler failed",
			"custom_id", req.CustomID,
			"error", err)
		http.Error(w, "interaction failed", http.StatusInternalServerError)
		return
	}

	resp := ic.resp
	if resp == nil {
		// Handler returned without responding; acknowledge quietly.
		resp = &interactionResponse{Type: "defer"}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// interactionCtx captures the handler's single response so it can be
// written back as the HTTP response body.
type interactionCtx struct {
	req  interactionRequest
	resp *interactionResponse
}

func (ic *interactionCtx) Author() messenger.User { return ic.req.User }
func (ic *interactionCtx) CustomID() string       { return ic.req.CustomID }
func (ic *interactionCtx) Values() []string       { return ic.req.Values }

// respond records the handler's answer. A defer only acknowledges, so a
// later ephemeral or edit supersedes it; two substantive responses are
// an error.
func (ic *interactionCtx) respond(r *interactionResponse) error {
	if ic.resp != nil && ic.resp.Type != "defer" {
		return errResponded
	}
	ic.resp = r
	return nil
}

func (ic *interactionCtx) Defer(context.Context) error {
	if ic.resp != nil {
		return nil
	}
	ic.resp = &interactionResponse{Type: "defer"}
	return nil
}

func (ic *interactionCtx) Ephemeral(_ context.Context, text string) error {
	return ic.respond(&interactionResponse{Type: "ephemeral", Content: text})
}

func (ic *interactionCtx) EditOrigin(_ context.Context, p *message.Payload) error {
	return ic.respond(&interactionResponse{Type: "edit", Payload: p})
}
