// Package messenger defines the capability surface a paginator consumes
// from its host chat client, plus a Dispatcher that implements the
// interaction-routing half of that surface with a simple map.
//
// The Messenger interface is intentionally small: send, reply, edit, and
// a registration hook binding a set of component roles under a session
// ID to an interaction handler. Transports (see pkg/gateway and
// pkg/webhook) embed a Dispatcher to satisfy the registration methods
// and feed decoded interaction events into Dispatch.
//
// # Routing
//
// Every interactive component carries a custom ID of the form
// "{sessionID}|{role}". Dispatch splits the ID, resolves the session's
// binding, verifies the role was registered, and invokes the bound
// handler. Events for unknown sessions or roles are rejected with
// ErrUnknownSession / ErrUnknownRole and never reach a handler, so two
// paginators can never cross-route.
package messenger
