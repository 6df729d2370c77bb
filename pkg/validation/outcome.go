package validation

// Kind classifies why a raw input was rejected.
type Kind string

const (
	// EmptyRequiredField marks a required input that was blank after trimming.
	EmptyRequiredField Kind = "empty_required_field"
	// OutOfDomainValue covers input that is present but not parseable, or
	// parseable but outside the accepted range or shape.
	OutOfDomainValue Kind = "out_of_domain_value"
)

// Message codes are stable identifiers for issue messages. Translators key on
// them; the English text lives in the Msg* constants.
const (
	CodeRequired    = "required"
	CodeNotANumber  = "number.invalid"
	CodeOutOfRange  = "number.range"
	CodeInvalidLink = "link.invalid"
	CodeTooLong     = "text.too_long"
	CodeTooShort    = "text.too_short"
)

const (
	MsgRequired    = "Field cannot be empty"
	MsgNotANumber  = "Field cannot be empty, must be a number"
	MsgOutOfRange  = "Number is not in range"
	MsgInvalidLink = "This isn't a proper link"
)

// Issue is the reason attached to an invalid outcome. It satisfies error so
// callers can hand it to code that expects one.
type Issue struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	// Args carries the values interpolated into Message (bounds, lengths) so
	// translators can rebuild it.
	Args []any `json:"args,omitempty"`
}

func (i Issue) Error() string {
	return i.Message
}

// Outcome is the result of validating a single raw input: either a parsed
// value or an Issue. The zero Outcome is invalid with an empty message, so
// always build one through Valid or Invalid.
type Outcome[T any] struct {
	value T
	issue *Issue
	set   bool
}

// Valid wraps a successfully parsed value.
func Valid[T any](value T) Outcome[T] {
	return Outcome[T]{value: value, set: true}
}

// Invalid builds a failed outcome from an issue.
func Invalid[T any](issue Issue) Outcome[T] {
	return Outcome[T]{issue: &issue, set: true}
}

// IsValid reports whether the outcome carries a value.
func (o Outcome[T]) IsValid() bool {
	return o.set && o.issue == nil
}

// Value returns the parsed value and true when valid.
func (o Outcome[T]) Value() (T, bool) {
	if !o.IsValid() {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Issue returns the rejection reason and true when invalid.
func (o Outcome[T]) Issue() (Issue, bool) {
	if o.IsValid() {
		return Issue{}, false
	}
	if o.issue == nil {
		return Issue{Kind: OutOfDomainValue}, true
	}
	return *o.issue, true
}

// Message returns the issue message, or "" for valid outcomes.
func (o Outcome[T]) Message() string {
	issue, ok := o.Issue()
	if !ok {
		return ""
	}
	return issue.Message
}

// Err returns the issue as an error, or nil for valid outcomes.
func (o Outcome[T]) Err() error {
	issue, ok := o.Issue()
	if !ok {
		return nil
	}
	return issue
}

// MapOutcome transforms the value of a valid outcome and passes invalid ones
// through untouched.
func MapOutcome[A, B any](o Outcome[A], fn func(A) B) Outcome[B] {
	value, ok := o.Value()
	if !ok {
		issue, _ := o.Issue()
		return Invalid[B](issue)
	}
	return Valid(fn(value))
}

func required(code, message string) Issue {
	return Issue{Kind: EmptyRequiredField, Code: code, Message: message}
}

func outOfDomain(code, message string, args ...any) Issue {
	return Issue{Kind: OutOfDomainValue, Code: code, Message: message, Args: args}
}
