// Package pager implements the interactive pagination state machine.
//
// A Paginator owns an ordered page set, the index of the page currently
// on display, a process-unique session ID scoping its controls, and an
// optional idle watchdog that disables the controls after inactivity.
// It renders one page at a time as a message payload with navigation
// controls and advances the index in response to interaction events
// routed to it by the messaging client.
//
// # Usage
//
//	p := pager.FromString(m, longText,
//	    pager.WithIdleTimeout(2*time.Minute),
//	    pager.WithSelectMenu())
//
//	ref, err := p.Send(ctx, pager.Trigger{
//	    Author:    user,
//	    ChannelID: channelID,
//	})
//
// After Send, interaction events for the paginator's session are
// delivered to it through the Messenger's registration hook: the
// triggering user is authorized against the author captured at send
// time, the page index moves, and the originating message is edited in
// place with the freshly rendered page.
//
// # Concurrency
//
// Interaction events for one session are expected to be delivered one
// at a time; the transports in pkg/gateway and pkg/webhook do this. The
// idle watchdog is the only background task a paginator owns, and the
// paginator's small mutable core is mutex-guarded so the watchdog's
// disable edit cannot race a concurrent navigation.
package pager
