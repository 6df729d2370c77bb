package form

import (
	"errors"
	"fmt"
)

// Msg is a closed set of events a form reacts to. Only the variants declared
// in this package satisfy it.
type Msg interface {
	isMsg()
}

// InputChanged replaces the raw text of one field.
type InputChanged struct {
	Key  string
	Text string
}

// SubmitRequested asks the session to submit the form.
type SubmitRequested struct{}

// ResetRequested clears every field back to its initial text.
type ResetRequested struct{}

// Loaded applies already-resolved values, such as a fetched record, as if
// they had been typed.
type Loaded struct {
	Values map[string]string
}

func (InputChanged) isMsg()    {}
func (SubmitRequested) isMsg() {}
func (ResetRequested) isMsg()  {}
func (Loaded) isMsg()          {}

// Edit builds an InputChanged for a typed key.
func Edit[T any](key Key[T], text string) InputChanged {
	return InputChanged{Key: string(key), Text: text}
}

// Effect describes what a dispatched message did.
type Effect[R any] struct {
	// Submitted is true when a SubmitRequested produced a record.
	Submitted bool
	Record    R
	// Rejected holds the field issues of a failed submission.
	Rejected *SubmitError
	// Issues is the state of the form after the message was applied.
	Issues []FieldIssue
}

// Session couples a form with the constructor of its record and routes
// messages to it.
type Session[R any] struct {
	form  *Form
	build BuildFunc[R]
}

// NewSession returns a session over f. A successful submission resets f.
func NewSession[R any](f *Form, build BuildFunc[R]) *Session[R] {
	return &Session[R]{form: f, build: build}
}

// Form returns the underlying form.
func (s *Session[R]) Form() *Form {
	return s.form
}

// Dispatch applies msg. Validation failures are reported through the
// Effect; the returned error is reserved for unknown keys and constructor
// failures.
func (s *Session[R]) Dispatch(msg Msg) (Effect[R], error) {
	var effect Effect[R]

	switch m := msg.(type) {
	case InputChanged:
		if err := s.form.SetInput(m.Key, m.Text); err != nil {
			return effect, err
		}
	case Loaded:
		if err := s.form.Prefill(m.Values); err != nil {
			return effect, err
		}
	case ResetRequested:
		s.form.Reset()
	case SubmitRequested:
		record, err := Commit(s.form, s.build)
		if err != nil {
			var rejected *SubmitError
			if !errors.As(err, &rejected) {
				return effect, err
			}
			effect.Rejected = rejected
			break
		}
		effect.Submitted = true
		effect.Record = record
	default:
		return effect, fmt.Errorf("form: unsupported message %T", msg)
	}

	effect.Issues = s.form.Issues()
	return effect, nil
}
