// Package message defines the outbound payload model for interactive
// chat messages: embeds, buttons, select menus and action rows.
//
// The types here are plain wire shapes. How they are transported is the
// messaging client's concern; this package only guarantees the structure:
// a Payload carries a list of embeds and a list of action rows, each row
// holding at most five components.
//
// Interactive components are tagged with custom IDs of the form
//
//	{sessionID}|{role}
//
// built and parsed with JoinCustomID and SplitCustomID. The session ID
// scopes a component to one paginator instance so that interaction
// events never cross-route between instances.
package message
