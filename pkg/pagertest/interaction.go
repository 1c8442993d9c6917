package pagertest

import (
	"context"
	"sync"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// Interaction is a recording messenger.InteractionCtx with a fluent
// builder. It captures whichever response operation the handler chose.
type Interaction struct {
	customID string
	author   messenger.User
	values   []string

	mu         sync.Mutex
	deferred   bool
	ephemerals []string
	edits      []*message.Payload
}

// NewInteraction creates an interaction for the given component custom
// ID ("{sessionID}|{role}").
func NewInteraction(customID string) *Interaction {
	return &Interaction{customID: customID}
}

// WithAuthor sets the triggering user.
func (ic *Interaction) WithAuthor(u messenger.User) *Interaction {
	ic.author = u
	return ic
}

// WithValues sets the selected option values for select interactions.
func (ic *Interaction) WithValues(values ...string) *Interaction {
	ic.values = values
	return ic
}

func (ic *Interaction) Author() messenger.User { return ic.author }
func (ic *Interaction) CustomID() string       { return ic.customID }
func (ic *Interaction) Values() []string       { return ic.values }

// Defer records a silent acknowledgement.
func (ic *Interaction) Defer(context.Context) error {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.deferred = true
	return nil
}

// Ephemeral records an ephemeral reply.
func (ic *Interaction) Ephemeral(_ context.Context, text string) error {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.ephemerals = append(ic.ephemerals, text)
	return nil
}

// EditOrigin records an in-place edit of the originating message.
func (ic *Interaction) EditOrigin(_ context.Context, p *message.Payload) error {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.edits = append(ic.edits, p)
	return nil
}

// Deferred reports whether the handler silently acknowledged.
func (ic *Interaction) Deferred() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.deferred
}

// Ephemerals returns all recorded ephemeral replies.
func (ic *Interaction) Ephemerals() []string {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return append([]string(nil), ic.ephemerals...)
}

// OriginEdits returns all payloads the handler wrote over the
// originating message.
func (ic *Interaction) OriginEdits() []*message.Payload {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return append([]*message.Payload(nil), ic.edits...)
}

// LastOriginEdit returns the most recent origin edit, or nil.
func (ic *Interaction) LastOriginEdit() *message.Payload {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if len(ic.edits) == 0 {
		return nil
	}
	return ic.edits[len(ic.edits)-1]
}
