package page

import "strings"

// summaryWidth is the maximum length of a page summary, including the
// truncation placeholder.
const summaryWidth = 40

// Page is one unit of paginated content. Pages are value objects and are
// immutable after creation.
type Page struct {
	// Content is the body text of the page.
	Content string

	// Title is the optional page title.
	Title string

	// Prefix is prepended to the content when the page is rendered.
	Prefix string

	// Suffix is appended to the content when the page is rendered.
	Suffix string
}

// New creates a page with the given content and title.
func New(content, title string) Page {
	return Page{Content: content, Title: title}
}

// Body returns the renderable body of the page: prefix, content and
// suffix joined by newlines.
func (p Page) Body() string {
	return p.Prefix + "\n" + p.Content + "\n" + p.Suffix
}

// Summary returns the short form of the page used for select-menu labels:
// the title if one is set, otherwise the content shortened to 40
// characters with a "..." placeholder.
func (p Page) Summary() string {
	if p.Title != "" {
		return p.Title
	}
	return shorten(p.Content, summaryWidth, "...")
}

// shorten collapses whitespace in s and truncates it at a word boundary
// so that the result, including the placeholder, fits in width.
func shorten(s string, width int, placeholder string) string {
	words := strings.Fields(s)
	collapsed := strings.Join(words, " ")
	if len(collapsed) <= width {
		return collapsed
	}

	var out string
	for _, w := range words {
		candidate := w
		if out != "" {
			candidate = out + " " + w
		}
		if len(candidate)+len(placeholder) > width {
			break
		}
		out = candidate
	}
	return out + placeholder
}
