// Package ui provides the Bubble Tea TUI for quotefeed.
package ui

import (
	"quotefeed/internal/quotes"
)

// SyncDone is sent when a background synchronize finishes.
type SyncDone struct {
	Mode   quotes.Mode
	Result quotes.Result
}

// SyncTick drives the periodic sync cadence while the app has focus.
type SyncTick struct {
	Gen int
}

// ScrollSettled fires once navigation has been idle for the debounce window.
type ScrollSettled struct {
	Gen int
}

// WrapReset fires after the end-of-feed pause to restart from the top.
type WrapReset struct {
	Gen int
}

// DailyLoaded carries today's pick for the daily view.
type DailyLoaded struct {
	Quote quotes.Quote
	OK    bool
}

// SubmissionSent is sent after a quote submission attempt.
type SubmissionSent struct {
	Err error
}

// ShareDone is sent after the share handoff completes.
type ShareDone struct {
	Err error
}
