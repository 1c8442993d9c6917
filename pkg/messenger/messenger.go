package messenger

import (
	"context"
	"errors"

	"github.com/pagekit-go/pagekit/pkg/message"
)

// Sentinel errors for interaction routing.
var (
	// ErrBadCustomID is returned when an interaction's custom ID does not
	// carry a session and a role.
	ErrBadCustomID = errors.New("messenger: malformed custom id")

	// ErrUnknownSession is returned when no handler is registered for the
	// session prefix of an interaction's custom ID.
	ErrUnknownSession = errors.New("messenger: no handler for session")

	// ErrUnknownRole is returned when the session exists but the role was
	// not part of its registration.
	ErrUnknownRole = errors.New("messenger: role not registered for session")
)

// User identifies the human behind a message or interaction.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// MessageRef locates a message owned by the messaging backend.
type MessageRef struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// IsZero reports whether the ref points at no message.
func (r MessageRef) IsZero() bool {
	return r.ChannelID == "" && r.MessageID == ""
}

// Handler processes one interaction event. Errors propagate to the
// transport's own error reporting; they are never swallowed here.
type Handler func(ctx context.Context, ic InteractionCtx) error

// InteractionCtx is the view of a single interaction event handed to a
// Handler. Exactly one of the response operations (Defer, Ephemeral,
// EditOrigin) is expected per event.
type InteractionCtx interface {
	// Author is the user who triggered the interaction.
	Author() User

	// CustomID is the component custom ID, "{sessionID}|{role}".
	CustomID() string

	// Values are the selected option values for select-menu interactions.
	Values() []string

	// Defer acknowledges the interaction with no visible change.
	Defer(ctx context.Context) error

	// Ephemeral replies with a message only the triggering user sees.
	Ephemeral(ctx context.Context, text string) error

	// EditOrigin replaces the interaction's originating message in place.
	EditOrigin(ctx context.Context, p *message.Payload) error
}

// Messenger is the capability surface a paginator consumes from its
// host chat client.
type Messenger interface {
	// SendMessage posts a new message to a channel.
	SendMessage(ctx context.Context, channelID string, p *message.Payload) (MessageRef, error)

	// ReplyMessage posts a new message as a reply to an existing one.
	ReplyMessage(ctx context.Context, to MessageRef, p *message.Payload) (MessageRef, error)

	// EditMessage replaces the content of an existing message.
	EditMessage(ctx context.Context, ref MessageRef, p *message.Payload) error

	// RegisterInteractionHandler routes interactions whose custom IDs are
	// scoped by sessionID and carry one of roles to h. Registering the
	// same session again replaces the previous binding.
	RegisterInteractionHandler(sessionID string, roles []string, h Handler)

	// UnregisterInteractionHandler removes a session's binding.
	UnregisterInteractionHandler(sessionID string)
}
