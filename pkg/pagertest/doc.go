// Package pagertest provides test doubles for paginator code: an
// in-memory Messenger that records every send and edit, and a fluent
// interaction builder for driving registered handlers.
//
// Example:
//
//	m := pagertest.NewMessenger()
//	p := pager.FromList(m, entries)
//	p.Send(ctx, pager.Trigger{Author: owner, ChannelID: "c1"})
//
//	ic := pagertest.NewInteraction(p.SessionID() + "|next").
//	    WithAuthor(owner)
//	m.Interact(ctx, ic)
//
//	got := m.LastEdit().Payload
package pagertest
