package pager

import (
	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/page"
)

// Item is one entry of a paginator's page list: either a text page or a
// prebuilt embed. The renderer dispatches on the concrete variant.
type Item interface {
	// Summary is the short label used in select-menu options.
	Summary() string

	// embed produces a fresh renderable embed; callers may mutate it.
	embed() *message.Embed
}

// pageItem wraps a text page.
type pageItem struct {
	p page.Page
}

func (it pageItem) Summary() string { return it.p.Summary() }

func (it pageItem) embed() *message.Embed {
	return &message.Embed{
		Title:       it.p.Title,
		Description: it.p.Body(),
	}
}

// embedItem wraps an externally supplied embed, rendered verbatim.
type embedItem struct {
	e *message.Embed
}

func (it embedItem) Summary() string { return it.e.Title }

func (it embedItem) embed() *message.Embed { return it.e.Clone() }

// ItemFromPage wraps a text page as a paginator item.
func ItemFromPage(p page.Page) Item { return pageItem{p: p} }

// ItemFromEmbed wraps a prebuilt embed as a paginator item.
func ItemFromEmbed(e *message.Embed) Item { return embedItem{e: e} }
