// Package pagekit provides the public API for the pagekit pagination
// library.
//
// This is the recommended import for most applications:
//
//	import "github.com/pagekit-go/pagekit"
//
// Usage:
//
//	p := pagekit.FromString(m, longText, pagekit.WithIdleTimeout(2*time.Minute))
//	ref, err := p.Send(ctx, pagekit.Trigger{Author: user, ChannelID: channel})
package pagekit

import (
	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
	"github.com/pagekit-go/pagekit/pkg/page"
	"github.com/pagekit-go/pagekit/pkg/pager"
)

// =============================================================================
// Core types (re-export from pkg/pager)
// =============================================================================

// Paginator renders one page of a page set at a time and advances in
// response to interaction events.
type Paginator = pager.Paginator

// Trigger describes the command invocation a paginator responds to.
type Trigger = pager.Trigger

// Config is the full paginator configuration; most callers use Options
// instead.
type Config = pager.Config

// Option configures a paginator at construction time.
type Option = pager.Option

// Item is one page of a paginator.
type Item = pager.Item

// New creates a paginator over pre-built items.
var New = pager.New

// FromString creates a paginator by word-wrapping text into pages.
var FromString = pager.FromString

// FromList creates a paginator by packing entries whole into pages.
var FromList = pager.FromList

// FromEmbeds creates a paginator whose pages are pre-built embeds.
var FromEmbeds = pager.FromEmbeds

// ItemFromPage wraps a text page as a paginator item.
var ItemFromPage = pager.ItemFromPage

// ItemFromEmbed wraps a pre-built embed as a paginator item.
var ItemFromEmbed = pager.ItemFromEmbed

// =============================================================================
// Options (re-export from pkg/pager)
// =============================================================================

var (
	WithConfig           = pager.WithConfig
	WithIdleTimeout      = pager.WithIdleTimeout
	WithWrongUserMessage = pager.WithWrongUserMessage
	WithNavButtons       = pager.WithNavButtons
	WithSelectMenu       = pager.WithSelectMenu
	WithCallback         = pager.WithCallback
	WithButtonStyle      = pager.WithButtonStyle
	WithDefaultTitle     = pager.WithDefaultTitle
	WithDefaultColor     = pager.WithDefaultColor
	WithPageSize         = pager.WithPageSize
	WithAffixes          = pager.WithAffixes
	WithLogger           = pager.WithLogger
)

// Sentinel errors.
var (
	ErrNoPages = pager.ErrNoPages
	ErrNotSent = pager.ErrNotSent
)

// =============================================================================
// Content segmentation (re-export from pkg/page)
// =============================================================================

// Page is one unit of paginated text content.
type Page = page.Page

// Wrap splits text into width-bounded chunks at word boundaries.
var Wrap = page.Wrap

// Pack greedily packs entries into size-bounded chunks, entry-whole.
var Pack = page.Pack

// =============================================================================
// Messaging surface (re-export from pkg/messenger and pkg/message)
// =============================================================================

// Messenger is the capability surface a paginator consumes from its
// host chat client.
type Messenger = messenger.Messenger

// InteractionCtx is one interaction event as seen by handlers.
type InteractionCtx = messenger.InteractionCtx

// Handler processes one interaction event.
type Handler = messenger.Handler

// User identifies the human behind a message or interaction.
type User = messenger.User

// MessageRef locates a message owned by the messaging backend.
type MessageRef = messenger.MessageRef

// Embed is one rich message card.
type Embed = message.Embed

// Payload is a full outbound message body.
type Payload = message.Payload
