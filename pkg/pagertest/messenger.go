package pagertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// Send records one SendMessage or ReplyMessage call.
type Send struct {
	ChannelID string
	ReplyTo   messenger.MessageRef
	Payload   *message.Payload
	Ref       messenger.MessageRef
}

// Edit records one EditMessage call.
type Edit struct {
	Ref     messenger.MessageRef
	Payload *message.Payload
}

// Messenger is an in-memory messenger.Messenger that records every
// outbound call and routes interactions through an embedded Dispatcher.
// Safe for concurrent use.
type Messenger struct {
	*messenger.Dispatcher

	mu     sync.Mutex
	nextID int
	sends  []Send
	edits  []Edit

	// SendErr and EditErr, when set, are returned by the corresponding
	// operations to exercise failure paths.
	SendErr error
	EditErr error

	// OnEdit, when set, is called after every recorded edit. Useful for
	// observing background edits such as idle-timeout disables.
	OnEdit func(Edit)
}

// NewMessenger creates an empty recording messenger.
func NewMessenger() *Messenger {
	return &Messenger{Dispatcher: messenger.NewDispatcher(nil)}
}

// SendMessage records the payload and fabricates a message ref.
func (m *Messenger) SendMessage(_ context.Context, channelID string, p *message.Payload) (messenger.MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return messenger.MessageRef{}, m.SendErr
	}
	m.nextID++
	ref := messenger.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("msg-%d", m.nextID)}
	m.sends = append(m.sends, Send{ChannelID: channelID, Payload: p, Ref: ref})
	return ref, nil
}

// ReplyMessage records the payload and fabricates a message ref in the
// replied-to channel.
func (m *Messenger) ReplyMessage(_ context.Context, to messenger.MessageRef, p *message.Payload) (messenger.MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return messenger.MessageRef{}, m.SendErr
	}
	m.nextID++
	ref := messenger.MessageRef{ChannelID: to.ChannelID, MessageID: fmt.Sprintf("msg-%d", m.nextID)}
	m.sends = append(m.sends, Send{ChannelID: to.ChannelID, ReplyTo: to, Payload: p, Ref: ref})
	return ref, nil
}

// EditMessage records the edit.
func (m *Messenger) EditMessage(_ context.Context, ref messenger.MessageRef, p *message.Payload) error {
	m.mu.Lock()
	if m.EditErr != nil {
		m.mu.Unlock()
		return m.EditErr
	}
	e := Edit{Ref: ref, Payload: p}
	m.edits = append(m.edits, e)
	cb := m.OnEdit
	m.mu.Unlock()

	if cb != nil {
		cb(e)
	}
	return nil
}

// Interact routes an interaction through the dispatcher, exactly as a
// transport read loop would.
func (m *Messenger) Interact(ctx context.Context, ic *Interaction) error {
	return m.Dispatch(ctx, ic)
}

// Sends returns a copy of all recorded sends and replies, in order.
func (m *Messenger) Sends() []Send {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Send(nil), m.sends...)
}

// Edits returns a copy of all recorded edits, in order.
func (m *Messenger) Edits() []Edit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Edit(nil), m.edits...)
}

// LastSend returns the most recent send, or nil.
func (m *Messenger) LastSend() *Send {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sends) == 0 {
		return nil
	}
	s := m.sends[len(m.sends)-1]
	return &s
}

// LastEdit returns the most recent edit, or nil.
func (m *Messenger) LastEdit() *Edit {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.edits) == 0 {
		return nil
	}
	e := m.edits[len(m.edits)-1]
	return &e
}

// EditCount returns how many edits were recorded.
func (m *Messenger) EditCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.edits)
}
