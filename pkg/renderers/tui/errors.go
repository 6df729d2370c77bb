package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// submit.
	ErrAborted = errors.New("tui: aborted")
	// ErrNilForm is returned when Fill or Render receive no form.
	ErrNilForm = errors.New("tui: form is nil")
)
