package pager

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
	"github.com/pagekit-go/pagekit/pkg/page"
	"github.com/pagekit-go/pagekit/pkg/pagertest"
)

var owner = messenger.User{ID: "u1", Username: "owner"}

// sendTestPaginator builds and sends a three-page paginator.
func sendTestPaginator(t *testing.T, m *pagertest.Messenger, opts ...Option) *Paginator {
	t.Helper()
	p := New(m, []Item{
		ItemFromPage(pageOf("one")),
		ItemFromPage(pageOf("two")),
		ItemFromPage(pageOf("three")),
	}, opts...)
	if _, err := p.Send(context.Background(), Trigger{Author: owner, ChannelID: "c1"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	return p
}

func pageOf(content string) page.Page {
	return page.Page{Content: content}
}

// findButton returns the button with the given role from a payload, or
// nil.
func findButton(t *testing.T, p *message.Payload, role string) *message.Button {
	t.Helper()
	for _, row := range p.Components {
		for _, c := range row.Components {
			if b, ok := c.(*message.Button); ok && strings.HasSuffix(b.CustomID, "|"+role) {
				return b
			}
		}
	}
	return nil
}

// findSelect returns the select menu from a payload, or nil.
func findSelect(t *testing.T, p *message.Payload) *message.SelectMenu {
	t.Helper()
	for _, row := range p.Components {
		for _, c := range row.Components {
			if s, ok := c.(*message.SelectMenu); ok {
				return s
			}
		}
	}
	return nil
}

// interact drives one control press by the given user.
func interact(t *testing.T, m *pagertest.Messenger, p *Paginator, role string, u messenger.User, values ...string) *pagertest.Interaction {
	t.Helper()
	ic := pagertest.NewInteraction(message.JoinCustomID(p.SessionID(), role)).
		WithAuthor(u).
		WithValues(values...)
	if err := m.Interact(context.Background(), ic); err != nil {
		t.Fatalf("Interact(%s) failed: %v", role, err)
	}
	return ic
}

// TestSendRendersFirstPage tests that sending shows page zero with
// first/back disabled and next/last enabled.
func TestSendRendersFirstPage(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d, want 0", got)
	}
	sent := m.LastSend()
	if sent == nil {
		t.Fatal("nothing sent")
	}
	if got := sent.Payload.Embeds[0].Footer.Text; got != "Page 1/3" {
		t.Errorf("footer = %q, want %q", got, "Page 1/3")
	}
	for _, role := range []string{RoleFirst, RoleBack} {
		if b := findButton(t, sent.Payload, role); b == nil || !b.Disabled {
			t.Errorf("%s button not disabled on first page", role)
		}
	}
	for _, role := range []string{RoleNext, RoleLast} {
		if b := findButton(t, sent.Payload, role); b == nil || b.Disabled {
			t.Errorf("%s button disabled on first page", role)
		}
	}
}

// TestSendEmptyPages tests the empty-page-set failure mode.
func TestSendEmptyPages(t *testing.T) {
	m := pagertest.NewMessenger()
	p := New(m, nil)
	if _, err := p.Send(context.Background(), Trigger{Author: owner, ChannelID: "c1"}); !errors.Is(err, ErrNoPages) {
		t.Errorf("Send error = %v, want ErrNoPages", err)
	}
}

// TestStopBeforeSend tests that Stop before any send is a state error.
func TestStopBeforeSend(t *testing.T) {
	m := pagertest.NewMessenger()
	p := New(m, []Item{ItemFromPage(pageOf("one"))})
	if err := p.Stop(context.Background()); !errors.Is(err, ErrNotSent) {
		t.Errorf("Stop error = %v, want ErrNotSent", err)
	}
	if err := p.Update(context.Background()); !errors.Is(err, ErrNotSent) {
		t.Errorf("Update error = %v, want ErrNotSent", err)
	}
}

// TestNextAdvances tests that "next" advances the index and edits the
// origin with the new page.
func TestNextAdvances(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	ic := interact(t, m, p, RoleNext, owner)
	if got := p.PageIndex(); got != 1 {
		t.Errorf("PageIndex() = %d, want 1", got)
	}
	edit := ic.LastOriginEdit()
	if edit == nil {
		t.Fatal("origin not edited")
	}
	if got := edit.Embeds[0].Footer.Text; got != "Page 2/3" {
		t.Errorf("footer = %q, want %q", got, "Page 2/3")
	}
}

// TestNextAtLastPageIsNoop tests the upper navigation boundary.
func TestNextAtLastPageIsNoop(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	interact(t, m, p, RoleLast, owner)
	if got := p.PageIndex(); got != 2 {
		t.Fatalf("PageIndex() = %d after last, want 2", got)
	}
	ic := interact(t, m, p, RoleNext, owner)
	if got := p.PageIndex(); got != 2 {
		t.Errorf("PageIndex() = %d after next on last page, want 2", got)
	}
	// Still acknowledged with a re-render.
	if ic.LastOriginEdit() == nil {
		t.Error("no-op navigation did not acknowledge the interaction")
	}
	for _, role := range []string{RoleNext, RoleLast} {
		if b := findButton(t, ic.LastOriginEdit(), role); b == nil || !b.Disabled {
			t.Errorf("%s button not disabled on last page", role)
		}
	}
}

// TestBackAtFirstPageIsNoop tests the lower navigation boundary.
func TestBackAtFirstPageIsNoop(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	interact(t, m, p, RoleBack, owner)
	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d after back on first page, want 0", got)
	}
}

// TestFirstAndLast tests the jump controls.
func TestFirstAndLast(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	interact(t, m, p, RoleLast, owner)
	if got := p.PageIndex(); got != 2 {
		t.Errorf("PageIndex() = %d after last, want 2", got)
	}
	interact(t, m, p, RoleFirst, owner)
	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d after first, want 0", got)
	}
}

// TestSelectJumps tests that a select interaction with value "2" lands
// on page 2 regardless of the prior index.
func TestSelectJumps(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m, WithSelectMenu())

	interact(t, m, p, RoleSelect, owner, "2")
	if got := p.PageIndex(); got != 2 {
		t.Errorf("PageIndex() = %d after select 2, want 2", got)
	}
}

// TestSelectOutOfRange tests that unparseable or out-of-range select
// values leave the index unchanged.
func TestSelectOutOfRange(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m, WithSelectMenu())

	for _, v := range []string{"-1", "3", "99", "junk"} {
		ic := interact(t, m, p, RoleSelect, owner, v)
		if got := p.PageIndex(); got != 0 {
			t.Errorf("PageIndex() = %d after select %q, want 0", got, v)
		}
		if ic.LastOriginEdit() == nil {
			t.Errorf("select %q not acknowledged", v)
		}
	}
}

// TestSelectMenuLayout tests option labels, values and the placeholder.
func TestSelectMenuLayout(t *testing.T) {
	m := pagertest.NewMessenger()
	sendTestPaginator(t, m, WithSelectMenu())

	menu := findSelect(t, m.LastSend().Payload)
	if menu == nil {
		t.Fatal("no select menu rendered")
	}
	if len(menu.Options) != 3 {
		t.Fatalf("select has %d options, want 3", len(menu.Options))
	}
	if menu.Options[0].Label != "1 one" || menu.Options[0].Value != "0" {
		t.Errorf("option 0 = %+v, want label %q value %q", menu.Options[0], "1 one", "0")
	}
	if menu.Options[2].Label != "3 three" || menu.Options[2].Value != "2" {
		t.Errorf("option 2 = %+v, want label %q value %q", menu.Options[2], "3 three", "2")
	}
	if menu.Placeholder != "1 one" {
		t.Errorf("placeholder = %q, want %q", menu.Placeholder, "1 one")
	}
	if menu.MaxValues != 1 {
		t.Errorf("max values = %d, want 1", menu.MaxValues)
	}
}

// TestWrongUserEphemeral tests that a stranger gets the configured
// notice and nothing else happens.
func TestWrongUserEphemeral(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m, WithWrongUserMessage("not yours"))

	stranger := messenger.User{ID: "u2"}
	ic := interact(t, m, p, RoleNext, stranger)

	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d after stranger press, want 0", got)
	}
	if got := ic.Ephemerals(); len(got) != 1 || got[0] != "not yours" {
		t.Errorf("Ephemerals() = %q, want [\"not yours\"]", got)
	}
	if ic.LastOriginEdit() != nil {
		t.Error("stranger press edited the origin")
	}
}

// TestWrongUserSilentDefer tests the silent branch with an empty notice.
func TestWrongUserSilentDefer(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m, WithWrongUserMessage(""))

	ic := interact(t, m, p, RoleNext, messenger.User{ID: "u2"})
	if !ic.Deferred() {
		t.Error("stranger press not deferred")
	}
	if len(ic.Ephemerals()) != 0 {
		t.Errorf("Ephemerals() = %q, want none", ic.Ephemerals())
	}
	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d, want 0", got)
	}
}

// TestCallbackOwnsResponse tests that a configured callback handles the
// interaction entirely.
func TestCallbackOwnsResponse(t *testing.T) {
	m := pagertest.NewMessenger()
	called := false
	p := sendTestPaginator(t, m, WithCallback(func(ctx context.Context, ic messenger.InteractionCtx) error {
		called = true
		return ic.Ephemeral(ctx, "done")
	}))

	ic := interact(t, m, p, RoleCallback, owner)
	if !called {
		t.Fatal("callback not invoked")
	}
	if ic.LastOriginEdit() != nil {
		t.Error("paginator edited origin despite callback owning the response")
	}
}

// TestCallbackErrorPropagates tests that callback failures surface to
// the dispatch layer unmodified.
func TestCallbackErrorPropagates(t *testing.T) {
	m := pagertest.NewMessenger()
	boom := errors.New("boom")
	p := sendTestPaginator(t, m, WithCallback(func(context.Context, messenger.InteractionCtx) error {
		return boom
	}))

	ic := pagertest.NewInteraction(message.JoinCustomID(p.SessionID(), RoleCallback)).WithAuthor(owner)
	if err := m.Interact(context.Background(), ic); !errors.Is(err, boom) {
		t.Errorf("Interact error = %v, want callback error", err)
	}
}

// TestCallbackRoleWithoutHandler tests that the callback role without a
// handler degrades to a plain re-render.
func TestCallbackRoleWithoutHandler(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	ic := interact(t, m, p, RoleCallback, owner)
	if ic.LastOriginEdit() == nil {
		t.Error("callback role without handler did not acknowledge")
	}
	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d, want 0", got)
	}
}

// TestStopDisablesControls tests that Stop redraws everything disabled.
func TestStopDisablesControls(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m, WithSelectMenu())

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	edit := m.LastEdit()
	if edit == nil {
		t.Fatal("Stop did not edit the message")
	}
	for _, role := range []string{RoleFirst, RoleBack, RoleNext, RoleLast} {
		if b := findButton(t, edit.Payload, role); b == nil || !b.Disabled {
			t.Errorf("%s button not disabled after Stop", role)
		}
	}
	if s := findSelect(t, edit.Payload); s == nil || !s.Disabled {
		t.Error("select menu not disabled after Stop")
	}
}

// TestUpdatePushesProgrammaticIndex tests SetPageIndex + Update.
func TestUpdatePushesProgrammaticIndex(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	p.SetPageIndex(2)
	if err := p.Update(context.Background()); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	edit := m.LastEdit()
	if edit == nil {
		t.Fatal("Update did not edit the message")
	}
	if got := edit.Payload.Embeds[0].Footer.Text; got != "Page 3/3" {
		t.Errorf("footer = %q, want %q", got, "Page 3/3")
	}
}

// TestSetPageIndexClamps tests that programmatic indices stay in range.
func TestSetPageIndexClamps(t *testing.T) {
	m := pagertest.NewMessenger()
	p := sendTestPaginator(t, m)

	p.SetPageIndex(99)
	if got := p.PageIndex(); got != 2 {
		t.Errorf("PageIndex() = %d after SetPageIndex(99), want 2", got)
	}
	p.SetPageIndex(-5)
	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d after SetPageIndex(-5), want 0", got)
	}
}

// TestSendErrorPropagates tests that transport failures surface to the
// caller without capture of a message handle.
func TestSendErrorPropagates(t *testing.T) {
	m := pagertest.NewMessenger()
	boom := errors.New("gateway down")
	m.SendErr = boom

	p := New(m, []Item{ItemFromPage(pageOf("one"))})
	if _, err := p.Send(context.Background(), Trigger{Author: owner, ChannelID: "c1"}); !errors.Is(err, boom) {
		t.Fatalf("Send error = %v, want transport error", err)
	}
	if !p.Message().IsZero() {
		t.Error("message handle captured despite send failure")
	}
	if err := p.Stop(context.Background()); !errors.Is(err, ErrNotSent) {
		t.Errorf("Stop error = %v, want ErrNotSent", err)
	}
}

// TestReplyCapturesAuthor tests the reply path.
func TestReplyCapturesAuthor(t *testing.T) {
	m := pagertest.NewMessenger()
	p := New(m, []Item{ItemFromPage(pageOf("one"))})

	to := messenger.MessageRef{ChannelID: "c9", MessageID: "m9"}
	ref, err := p.Reply(context.Background(), Trigger{Author: owner, Ref: to})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if ref.ChannelID != "c9" {
		t.Errorf("reply landed in channel %q, want %q", ref.ChannelID, "c9")
	}
	if got := p.AuthorID(); got != owner.ID {
		t.Errorf("AuthorID() = %q, want %q", got, owner.ID)
	}
	if got := m.Sends()[0].ReplyTo; got != to {
		t.Errorf("ReplyTo = %+v, want %+v", got, to)
	}
}
