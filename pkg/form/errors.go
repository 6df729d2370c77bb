package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfield/pkg/validation"
)

var (
	// ErrEmptyKey is returned when a field is registered without a key.
	ErrEmptyKey = errors.New("form: field key is required")
	// ErrDuplicateKey is returned when a key is registered twice.
	ErrDuplicateKey = errors.New("form: duplicate field key")
	// ErrNilEntry is returned when a nil field is registered.
	ErrNilEntry = errors.New("form: field is nil")
	// ErrUnknownField is returned when an operation names a key the form does
	// not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrTypeMismatch is returned when a typed key does not match the value
	// type of the field it names.
	ErrTypeMismatch = errors.New("form: field type mismatch")
)

// FieldIssue ties an issue to the field that produced it.
type FieldIssue struct {
	Key   string           `json:"key"`
	Label string           `json:"label,omitempty"`
	Input string           `json:"input"`
	Issue validation.Issue `json:"issue"`
}

// SubmitError reports every invalid field of a rejected submission, in
// declaration order.
type SubmitError struct {
	FormID string       `json:"form"`
	Fields []FieldIssue `json:"fields"`
}

func (e *SubmitError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, issue := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Key, issue.Issue.Message))
	}
	prefix := "form"
	if e.FormID != "" {
		prefix = "form " + e.FormID
	}
	return fmt.Sprintf("%s: %d invalid field(s): %s", prefix, len(e.Fields), strings.Join(parts, "; "))
}

// Messages returns one message per invalid field, in declaration order.
func (e *SubmitError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, issue := range e.Fields {
		out = append(out, issue.Issue.Message)
	}
	return out
}

// AsSubmitError unwraps err into a SubmitError when possible.
func AsSubmitError(err error) (*SubmitError, bool) {
	var target *SubmitError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
