package messenger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pagekit-go/pagekit/pkg/message"
)

// binding is one registered session: its allowed roles and handler.
type binding struct {
	roles   map[string]struct{}
	handler Handler
}

// Dispatcher routes interaction events to per-session handlers. It
// implements the registration half of Messenger and is safe for
// concurrent use; transports embed it and call Dispatch from their read
// loops.
type Dispatcher struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher. A nil logger falls back to
// slog.Default().
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		bindings: make(map[string]*binding),
		logger:   logger,
	}
}

// RegisterInteractionHandler binds roles under sessionID to h, replacing
// any previous binding for the session.
func (d *Dispatcher) RegisterInteractionHandler(sessionID string, roles []string, h Handler) {
	rs := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}

	d.mu.Lock()
	d.bindings[sessionID] = &binding{roles: rs, handler: h}
	d.mu.Unlock()

	d.logger.Debug("registered interaction handler",
		"session_id", sessionID,
		"roles", len(roles))
}

// UnregisterInteractionHandler removes the binding for sessionID, if any.
func (d *Dispatcher) UnregisterInteractionHandler(sessionID string) {
	d.mu.Lock()
	delete(d.bindings, sessionID)
	d.mu.Unlock()
}

// Sessions reports the number of registered sessions.
func (d *Dispatcher) Sessions() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.bindings)
}

// Dispatch routes one interaction to its session's handler. Handler
// errors are returned unmodified.
func (d *Dispatcher) Dispatch(ctx context.Context, ic InteractionCtx) error {
	sessionID, role, ok := message.SplitCustomID(ic.CustomID())
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadCustomID, ic.CustomID())
	}

	d.mu.RLock()
	b := d.bindings[sessionID]
	d.mu.RUnlock()

	if b == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSession, sessionID)
	}
	if _, ok := b.roles[role]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	return b.handler(ctx, ic)
}
