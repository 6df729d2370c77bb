package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// OptionalOf lifts a required validator so blank input yields Valid(None).
// Non-blank input is delegated and wrapped in Some.
func OptionalOf[T any](v Validator[T]) Validator[Optional[T]] {
	return func(raw string) Outcome[Optional[T]] {
		if strings.TrimSpace(raw) == "" {
			return Valid(None[T]())
		}
		return MapOutcome(v(raw), Some[T])
	}
}

// Map converts the value of every valid outcome produced by v.
func Map[A, B any](v Validator[A], fn func(A) B) Validator[B] {
	return func(raw string) Outcome[B] {
		return MapOutcome(v(raw), fn)
	}
}

// Then runs next on the value produced by v. Invalid outcomes short-circuit.
func Then[A, B any](v Validator[A], next func(A) Outcome[B]) Validator[B] {
	return func(raw string) Outcome[B] {
		first := v(raw)
		value, ok := first.Value()
		if !ok {
			issue, _ := first.Issue()
			return Invalid[B](issue)
		}
		return next(value)
	}
}

// MaxLength refines a text validator with an upper bound counted in runes.
func MaxLength(v Validator[string], max int) Validator[string] {
	return Then(v, func(s string) Outcome[string] {
		if utf8.RuneCountInString(s) > max {
			return Invalid[string](outOfDomain(CodeTooLong, fmt.Sprintf("Must be at most %d characters", max), max))
		}
		return Valid(s)
	})
}

// MinLength refines a text validator with a lower bound counted in runes.
func MinLength(v Validator[string], min int) Validator[string] {
	return Then(v, func(s string) Outcome[string] {
		if utf8.RuneCountInString(s) < min {
			return Invalid[string](outOfDomain(CodeTooShort, fmt.Sprintf("Must be at least %d characters", min), min))
		}
		return Valid(s)
	})
}
