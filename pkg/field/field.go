package field

import (
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Entry is the type-erased view of a Field so forms can hold fields of
// different value types side by side.
type Entry interface {
	Input() string
	SetInput(text string)
	IsValid() bool
	ErrorMessage() string
	Issue() (validation.Issue, bool)
	Reset()
	// Validate checks candidate text without changing the field.
	Validate(text string) error
	// Any returns the validated value boxed as any, and false when invalid.
	Any() (any, bool)
}

// Field pairs the raw text of one input with the outcome of validating it.
// The outcome is recomputed on every SetInput and never goes stale.
type Field[T any] struct {
	validator validation.Validator[T]
	initial   string
	input     string
	outcome   validation.Outcome[T]
}

// Ensure Field implements Entry.
var _ Entry = (*Field[string])(nil)

// New builds a field bound to validator and evaluates the initial text right
// away, so a required field starts out invalid.
func New[T any](validator validation.Validator[T], initial string) *Field[T] {
	if validator == nil {
		panic("field: validator is required")
	}
	f := &Field[T]{validator: validator, initial: initial}
	f.SetInput(initial)
	return f
}

// SetInput replaces the raw text and re-validates it before returning.
func (f *Field[T]) SetInput(text string) {
	f.input = text
	f.outcome = f.validator(text)
}

// Input returns the raw text as typed, untrimmed.
func (f *Field[T]) Input() string {
	return f.input
}

// Outcome returns the current validation outcome.
func (f *Field[T]) Outcome() validation.Outcome[T] {
	return f.outcome
}

// IsValid reports whether the current input passed validation.
func (f *Field[T]) IsValid() bool {
	return f.outcome.IsValid()
}

// ErrorMessage returns the current issue message or "".
func (f *Field[T]) ErrorMessage() string {
	return f.outcome.Message()
}

// Issue returns the current issue and true when invalid.
func (f *Field[T]) Issue() (validation.Issue, bool) {
	return f.outcome.Issue()
}

// Value returns the validated value and true when valid.
func (f *Field[T]) Value() (T, bool) {
	return f.outcome.Value()
}

// Any implements Entry.
func (f *Field[T]) Any() (any, bool) {
	value, ok := f.outcome.Value()
	if !ok {
		return nil, false
	}
	return value, true
}

// Reset restores the text the field was created with.
func (f *Field[T]) Reset() {
	f.SetInput(f.initial)
}

// Validate runs the bound validator against text without touching the
// field's state. Prompt drivers use it to check candidate input.
func (f *Field[T]) Validate(text string) error {
	return f.validator(text).Err()
}
