package tui

import (
	"github.com/unifeed/unifeed-cli/pkg/feed"
)

// statusType selects the status bar style.
type statusType int

const (
	statusInfo statusType = iota
	statusSuccess
	statusError
)

// StatusMsg updates the status bar.
type StatusMsg struct {
	Text string
	Type statusType
}

// clearStatusMsg hides the status bar after its timeout.
type clearStatusMsg struct{}

// submitResultMsg is the terminal outcome of a background submission.
type submitResultMsg struct {
	resp *feed.CreatePostResponse
	err  error
}

// suggestionsMsg carries mention-autocomplete results. Query identifies the
// trigger state the results belong to; stale replies are dropped.
type suggestionsMsg struct {
	query string
	users []feed.User
	err   error
}
