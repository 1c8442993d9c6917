package pager

import "errors"

// Sentinel errors for paginator lifecycle misuse.
var (
	// ErrNoPages is returned when rendering is attempted with an empty
	// page set.
	ErrNoPages = errors.New("pager: no pages to render")

	// ErrNotSent is returned when Stop or Update is called before the
	// paginator has been sent.
	ErrNotSent = errors.New("pager: paginator has not been sent")
)
