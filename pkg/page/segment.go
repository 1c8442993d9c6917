package page

import (
	"strings"
	"unicode"
)

// Wrap splits content into chunks of at most width characters using a
// greedy word wrap. Words are kept whole unless a single word exceeds
// width, in which case it is hard-split. Whitespace runs inside a chunk
// are preserved as written; whitespace at a chunk boundary is dropped.
// Hyphens are never treated as break opportunities.
//
// Returns nil if content contains no non-whitespace characters or width
// is not positive.
func Wrap(content string, width int) []string {
	if width <= 0 || strings.TrimSpace(content) == "" {
		return nil
	}

	var (
		chunks  []string
		buf     []rune
		pending []rune // whitespace run waiting to be committed
	)

	flush := func() {
		if s := strings.TrimRightFunc(string(buf), unicode.IsSpace); s != "" {
			chunks = append(chunks, s)
		}
		buf = buf[:0]
	}

	for _, run := range splitRuns(content) {
		if unicode.IsSpace(run[0]) {
			pending = run
			continue
		}

		sep := pending
		if len(buf) == 0 {
			sep = nil // leading whitespace is dropped at a chunk start
		}
		pending = nil

		word := run
		switch {
		case len(buf)+len(sep)+len(word) <= width:
			buf = append(buf, sep...)
			buf = append(buf, word...)

		case len(word) > width:
			// A word too long for any chunk: emit what we have, then
			// hard-split the word across full-width chunks.
			flush()
			for len(word) > width {
				chunks = append(chunks, string(word[:width]))
				word = word[width:]
			}
			buf = append(buf, word...)

		default:
			flush()
			buf = append(buf, word...)
		}
	}
	flush()

	return chunks
}

// Pack greedily packs entries into chunks of at most pageSize characters,
// appending a trailing newline to every entry. An entry is never split
// across chunks: when appending would exceed pageSize, the current chunk
// is flushed and a new one starts with the entry. Any non-empty trailing
// chunk is flushed at the end.
func Pack(entries []string, pageSize int) []string {
	var (
		chunks []string
		buf    strings.Builder
	)

	for _, entry := range entries {
		if buf.Len()+len(entry)+1 <= pageSize {
			buf.WriteString(entry)
			buf.WriteByte('\n')
			continue
		}
		if buf.Len() > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}

	return chunks
}

// splitRuns splits s into alternating runs of whitespace and
// non-whitespace runes.
func splitRuns(s string) [][]rune {
	var runs [][]rune
	var cur []rune
	var curSpace bool

	for _, r := range s {
		space := unicode.IsSpace(r)
		if len(cur) > 0 && space != curSpace {
			runs = append(runs, cur)
			cur = nil
		}
		cur = append(cur, r)
		curSpace = space
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}
