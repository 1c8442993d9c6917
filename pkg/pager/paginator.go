package pager

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
	"github.com/pagekit-go/pagekit/pkg/page"
)

// Trigger describes the command invocation a paginator responds to: who
// asked, where to post, and (for replies) which message to reply to.
type Trigger struct {
	Author    messenger.User
	ChannelID string
	Ref       messenger.MessageRef
}

// Paginator renders one page of a page set at a time and advances the
// displayed page in response to interaction events.
//
// A paginator is constructed once, becomes active on Send or Reply, and
// stops on an explicit Stop or when its idle timeout fires. A stopped
// paginator is not resurrected; create a new one to resume.
type Paginator struct {
	m      messenger.Messenger
	cfg    Config
	logger *slog.Logger

	sessionID string

	mu        sync.Mutex
	items     []Item
	pageIndex int
	msg       messenger.MessageRef
	authorID  string
	sent      bool
	wd        *watchdog
}

// generateSessionID generates a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// New creates a paginator over the given items and registers its
// interaction handler with the messenger under a fresh session ID.
func New(m messenger.Messenger, items []Item, opts ...Option) *Paginator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newWithConfig(m, items, cfg)
}

func newWithConfig(m messenger.Messenger, items []Item, cfg Config) *Paginator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Paginator{
		m:         m,
		cfg:       cfg,
		sessionID: generateSessionID(),
		items:     items,
	}
	p.logger = logger.With("session_id", p.sessionID)

	m.RegisterInteractionHandler(p.sessionID, allRoles(), p.handleInteraction)
	return p
}

// FromEmbeds creates a paginator whose pages are the given embeds,
// verbatim and in order.
func FromEmbeds(m messenger.Messenger, embeds []*message.Embed, opts ...Option) *Paginator {
	items := make([]Item, len(embeds))
	for i, e := range embeds {
		items[i] = ItemFromEmbed(e)
	}
	return New(m, items, opts...)
}

// FromString creates a paginator by word-wrapping content into pages of
// at most PageSize characters, less the configured prefix and suffix.
func FromString(m messenger.Messenger, content string, opts ...Option) *Paginator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	width := cfg.PageSize - len(cfg.Prefix) - len(cfg.Suffix)
	var items []Item
	for _, chunk := range page.Wrap(content, width) {
		items = append(items, ItemFromPage(page.Page{
			Content: chunk,
			Prefix:  cfg.Prefix,
			Suffix:  cfg.Suffix,
		}))
	}
	return newWithConfig(m, items, cfg)
}

// FromList creates a paginator by greedily packing entries into pages of
// at most PageSize characters. Entries are never split across pages.
func FromList(m messenger.Messenger, entries []string, opts ...Option) *Paginator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var items []Item
	for _, chunk := range page.Pack(entries, cfg.PageSize) {
		items = append(items, ItemFromPage(page.Page{
			Content: chunk,
			Prefix:  cfg.Prefix,
			Suffix:  cfg.Suffix,
		}))
	}
	return newWithConfig(m, items, cfg)
}

// SessionID returns the process-unique ID scoping this paginator's
// controls.
func (p *Paginator) SessionID() string { return p.sessionID }

// Message returns the message the paginator is attached to. Zero before
// the first Send or Reply.
func (p *Paginator) Message() messenger.MessageRef {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msg
}

// AuthorID returns the ID of the user entitled to drive navigation.
// Empty before the first Send or Reply.
func (p *Paginator) AuthorID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.authorID
}

// PageIndex returns the index of the page currently on display.
func (p *Paginator) PageIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageIndex
}

// SetPageIndex moves the displayed page programmatically. Out-of-range
// indices are clamped. Call Update to push the change to the message.
func (p *Paginator) SetPageIndex(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if n := len(p.items); i >= n && n > 0 {
		i = n - 1
	}
	p.pageIndex = i
}

// Len returns the number of pages.
func (p *Paginator) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// render builds the outbound payload for the current page. Callers hold
// the lock.
func (p *Paginator) render(disabled bool) *message.Payload {
	it := p.items[p.pageIndex]
	e := it.embed()

	if pi, ok := it.(pageItem); ok && pi.p.Title == "" && p.cfg.DefaultTitle != "" {
		e.Title = p.cfg.DefaultTitle
	}
	e.Footer = &message.EmbedFooter{
		Text: fmt.Sprintf("Page %d/%d", p.pageIndex+1, len(p.items)),
	}
	if e.Color == message.ColorNone {
		e.Color = p.cfg.DefaultColor
	}

	return &message.Payload{
		Embeds:     []*message.Embed{e},
		Components: controls(p.sessionID, p.pageIndex, p.items, p.cfg, disabled),
	}
}

// Send renders page zero and posts it as a new message to the trigger's
// channel, capturing the message handle and the author identity.
func (p *Paginator) Send(ctx context.Context, t Trigger) (messenger.MessageRef, error) {
	return p.dispatch(ctx, t, false)
}

// Reply renders page zero and posts it as a reply to the trigger's
// message, capturing the message handle and the author identity.
func (p *Paginator) Reply(ctx context.Context, t Trigger) (messenger.MessageRef, error) {
	return p.dispatch(ctx, t, true)
}

func (p *Paginator) dispatch(ctx context.Context, t Trigger, reply bool) (messenger.MessageRef, error) {
	p.mu.Lock()
	if len(p.items) == 0 {
		p.mu.Unlock()
		return messenger.MessageRef{}, ErrNoPages
	}
	payload := p.render(false)
	p.mu.Unlock()

	var (
		ref messenger.MessageRef
		err error
	)
	if reply {
		ref, err = p.m.ReplyMessage(ctx, t.Ref, payload)
	} else {
		ref, err = p.m.SendMessage(ctx, t.ChannelID, payload)
	}
	if err != nil {
		return messenger.MessageRef{}, err
	}

	p.mu.Lock()
	p.msg = ref
	p.authorID = t.Author.ID
	p.sent = true
	if p.wd != nil {
		// A previous watchdog from an earlier send must not keep racing.
		p.wd.Stop()
		p.wd = nil
	}
	if p.cfg.IdleTimeout > minWatchdogTimeout {
		p.wd = newWatchdog(p.cfg.IdleTimeout, p.expire, p.logger)
		go p.wd.run()
	}
	p.mu.Unlock()

	p.logger.Info("paginator sent",
		"channel_id", ref.ChannelID,
		"message_id", ref.MessageID,
		"pages", p.Len())

	return ref, nil
}

// Stop invalidates the watchdog and redraws the live message with all
// controls disabled. Safe to call more than once; calling it before the
// paginator was sent returns ErrNotSent.
func (p *Paginator) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.sent {
		p.mu.Unlock()
		return ErrNotSent
	}
	if p.wd != nil {
		p.wd.Stop()
	}
	ref := p.msg
	payload := p.render(true)
	p.mu.Unlock()

	return p.m.EditMessage(ctx, ref, payload)
}

// Update re-renders the live message in place using the current page
// index. Use it after changing the index with SetPageIndex.
func (p *Paginator) Update(ctx context.Context) error {
	p.mu.Lock()
	if !p.sent {
		p.mu.Unlock()
		return ErrNotSent
	}
	if len(p.items) == 0 {
		p.mu.Unlock()
		return ErrNoPages
	}
	ref := p.msg
	payload := p.render(false)
	p.mu.Unlock()

	return p.m.EditMessage(ctx, ref, payload)
}

// expire is the watchdog's timeout action: disable the controls of the
// live message, if there is one.
func (p *Paginator) expire(ctx context.Context) error {
	p.mu.Lock()
	if p.msg.IsZero() {
		p.mu.Unlock()
		return nil
	}
	ref := p.msg
	payload := p.render(true)
	p.mu.Unlock()

	p.logger.Info("idle timeout, disabling controls")
	return p.m.EditMessage(ctx, ref, payload)
}

// handleInteraction is the routing entry point for this paginator's
// interaction events: authorize, reset the idle timer, mutate the page
// index, and redraw the originating message.
func (p *Paginator) handleInteraction(ctx context.Context, ic messenger.InteractionCtx) error {
	p.mu.Lock()
	authorized := ic.Author().ID == p.authorID
	wrongUser := p.cfg.WrongUserMessage
	p.mu.Unlock()

	if !authorized {
		if wrongUser != "" {
			return ic.Ephemeral(ctx, wrongUser)
		}
		return ic.Defer(ctx)
	}

	p.mu.Lock()
	if p.wd != nil {
		p.wd.Ping()
	}

	_, role, ok := message.SplitCustomID(ic.CustomID())
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %q", messenger.ErrBadCustomID, ic.CustomID())
	}

	switch role {
	case RoleFirst:
		p.pageIndex = 0
	case RoleLast:
		p.pageIndex = len(p.items) - 1
	case RoleNext:
		if p.pageIndex+1 < len(p.items) {
			p.pageIndex++
		}
	case RoleBack:
		if p.pageIndex-1 >= 0 {
			p.pageIndex--
		}
	case RoleSelect:
		if i, ok := p.selectedIndex(ic.Values()); ok {
			p.pageIndex = i
		}
	case RoleCallback:
		if cb := p.cfg.Callback; cb != nil {
			p.mu.Unlock()
			// The callback owns the response from here on.
			return cb(ctx, ic)
		}
	}

	payload := p.render(false)
	p.mu.Unlock()

	return ic.EditOrigin(ctx, payload)
}

// selectedIndex parses a select interaction's value into a page index,
// rejecting anything outside the page range. Callers hold the lock.
func (p *Paginator) selectedIndex(values []string) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	i, err := strconv.Atoi(values[0])
	if err != nil || i < 0 || i >= len(p.items) {
		p.logger.Warn("ignoring out-of-range select value", "value", values[0])
		return 0, false
	}
	return i, true
}
