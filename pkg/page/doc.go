// Package page provides the content model for paginated messages.
//
// A Page is one immutable unit of paginated content: a body of text plus
// an optional title and a prefix/suffix wrapped around the body when it
// is rendered.
//
// The package also provides the two segmentation strategies used by the
// paginator factories:
//
//	chunks := page.Wrap(longText, 4000)   // word-wrap a single string
//	chunks := page.Pack(lines, 4000)      // pack whole lines, never splitting one
//
// Wrap breaks long words when a single word exceeds the width, preserves
// whitespace runs inside a chunk, and never treats a hyphen as a break
// opportunity. Pack keeps each entry intact and starts a new chunk when
// appending the next entry would exceed the size limit.
package page
