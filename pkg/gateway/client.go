package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// Sentinel errors for gateway operations.
var (
	// ErrClosed is returned when an operation is attempted on a closed
	// client.
	ErrClosed = errors.New("gateway: client closed")

	// ErrAckTimeout is returned when the gateway does not acknowledge an
	// operation in time.
	ErrAckTimeout = errors.New("gateway: ack timeout")
)

// RemoteError is an error reported by the gateway for one operation.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("gateway: %s rejected: %s", e.Op, e.Message)
}

// Config configures a gateway client.
type Config struct {
	// URL is the websocket URL of the gateway.
	URL string

	// Token is sent as a bearer token during the handshake.
	Token string

	// HandshakeTimeout bounds the websocket handshake (default 10s).
	HandshakeTimeout time.Duration

	// WriteTimeout bounds each frame write (default 10s).
	WriteTimeout time.Duration

	// AckTimeout bounds the wait for an operation's acknowledgement
	// (default 15s).
	AckTimeout time.Duration

	// Logger receives connection and dispatch logs. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (c *Config) withDefaults() {
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.AckTimeout <= 0 {
		c.AckTimeout = 15 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client is a messenger.Messenger backed by a gateway websocket
// connection. Interaction registration is served by the embedded
// Dispatcher.
type Client struct {
	*messenger.Dispatcher

	cfg    Config
	logger *slog.Logger

	conn    *websocket.Conn
	writeMu sync.Mutex // protects conn writes
	closed  atomic.Bool
	done    chan struct{}

	pendingMu sync.Mutex
	pending   map[string]chan frame
}

// Dial connects to the gateway and starts the read loop.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	cfg.withDefaults()

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	conn, resp, err := dialer.DialContext(ctx, cfg.URL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("gateway: dial %s: status %d: %w", cfg.URL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("gateway: dial %s: %w", cfg.URL, err)
	}

	c := &Client{
		Dispatcher: messenger.NewDispatcher(cfg.Logger),
		cfg:        cfg,
		logger:     cfg.Logger,
		conn:       conn,
		done:       make(chan struct{}),
		pending:    make(map[string]chan frame),
	}
	go c.readLoop()
	return c, nil
}

// Close shuts the connection down. Idempotent.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(c.done)

	c.writeMu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()

	return c.conn.Close()
}

// SendMessage posts a new message and waits for the gateway to
// acknowledge it with the created message's ref.
func (c *Client) SendMessage(ctx context.Context, channelID string, p *message.Payload) (messenger.MessageRef, error) {
	ack, err := c.roundTrip(ctx, frame{
		Op:        opSend,
		ChannelID: channelID,
		Payload:   p,
	})
	if err != nil {
		return messenger.MessageRef{}, err
	}
	return messenger.MessageRef{ChannelID: ack.ChannelID, MessageID: ack.MessageID}, nil
}

// ReplyMessage posts a reply to an existing message.
func (c *Client) ReplyMessage(ctx context.Context, to messenger.MessageRef, p *message.Payload) (messenger.MessageRef, error) {
	ack, err := c.roundTrip(ctx, frame{
		Op:        opReply,
		ChannelID: to.ChannelID,
		ReplyToID: to.MessageID,
		Payload:   p,
	})
	if err != nil {
		return messenger.MessageRef{}, err
	}
	return messenger.MessageRef{ChannelID: ack.ChannelID, MessageID: ack.MessageID}, nil
}

// EditMessage replaces the content of an existing message.
func (c *Client) EditMessage(ctx context.Context, ref messenger.MessageRef, p *message.Payload) error {
	_, err := c.roundTrip(ctx, frame{
		Op:        opEdit,
		ChannelID: ref.ChannelID,
		MessageID: ref.MessageID,
		Payload:   p,
	})
	return err
}

// roundTrip writes a nonce-tagged frame and waits for its ack.
func (c *Client) roundTrip(ctx context.Context, f frame) (frame, error) {
	if c.closed.Load() {
		return frame{}, ErrClosed
	}

	f.Nonce = uuid.NewString()
	ch := make(chan frame, 1)

	c.pendingMu.Lock()
	c.pending[f.Nonce] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, f.Nonce)
		c.pendingMu.Unlock()
	}()

	if err := c.writeFrame(f); err != nil {
		return frame{}, err
	}

	select {
	case ack := <-ch:
		if ack.Op == opError {
			return frame{}, &RemoteError{Op: f.Op, Message: ack.Error}
		}
		return ack, nil
	case <-time.After(c.cfg.AckTimeout):
		return frame{}, fmt.Errorf("%w: op %s", ErrAckTimeout, f.Op)
	case <-ctx.Done():
		return frame{}, ctx.Err()
	case <-c.done:
		return frame{}, ErrClosed
	}
}

// writeFrame serializes one frame under the write lock with a deadline.
func (c *Client) writeFrame(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.conn.WriteJSON(f)
}

// readLoop continuously reads frames, resolving acks and dispatching
// interactions. It blocks until the connection closes.
func (c *Client) readLoop() {
	defer c.Close()

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if !c.closed.Load() && websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("gateway read error", "error", err)
			}
			return
		}

		switch f.Op {
		case opAck, opError:
			c.resolve(f)

		case opInteraction:
			// Dispatched inline so interaction events stay serialized.
			ic := &interactionCtx{c: c, f: f}
			if err := c.Dispatch(context.Background(), ic); err != nil {
				c.logger.Error("interaction dispatch failed",
					"custom_id", f.CustomID,
					"error", err)
			}

		default:
			c.logger.Warn("unknown frame op", "op", f.Op)
		}
	}
}

// resolve hands an ack or error frame to its waiting round trip.
func (c *Client) resolve(f frame) {
	c.pendingMu.Lock()
	ch := c.pending[f.Nonce]
	c.pendingMu.Unlock()

	if ch == nil {
		c.logger.Warn("ack for unknown nonce", "nonce", f.Nonce, "op", f.Op)
		return
	}
	select {
	case ch <- f:
	default:
	}
}

// interactionCtx adapts an inbound interaction frame to
// messenger.InteractionCtx; responses go back out as frames referencing
// the interaction ID.
type interactionCtx struct {
	c *Client
	f frame
}

func (ic *interactionCtx) Author() messenger.User {
	if ic.f.User == nil {
		return messenger.User{}
	}
	return *ic.f.User
}

func (ic *interactionCtx) CustomID() string { return ic.f.CustomID }
func (ic *interactionCtx) Values() []string { return ic.f.Values }

func (ic *interactionCtx) Defer(context.Context) error {
	return ic.c.writeFrame(frame{
		Op:            opDefer,
		InteractionID: ic.f.InteractionID,
	})
}

func (ic *interactionCtx) Ephemeral(_ context.Context, text string) error {
	return ic.c.writeFrame(frame{
		Op:            opEphemeral,
		InteractionID: ic.f.InteractionID,
		Content:       text,
	})
}

func (ic *interactionCtx) EditOrigin(_ context.Context, p *message.Payload) error {
	return ic.c.writeFrame(frame{
		Op:            opEditOrigin,
		InteractionID: ic.f.InteractionID,
		Payload:       p,
	})
}
