package validation

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Validator maps raw input to an outcome. Implementations must be pure and
// total: no I/O, no panics, same input same outcome.
type Validator[T any] func(raw string) Outcome[T]

// RequiredText accepts any input with non-whitespace content and yields it
// trimmed.
func RequiredText(raw string) Outcome[string] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Invalid[string](required(CodeRequired, MsgRequired))
	}
	return Valid(trimmed)
}

// OptionalText is RequiredText that treats blank input as absent.
func OptionalText(raw string) Outcome[Optional[string]] {
	return OptionalOf(RequiredText)(raw)
}

// RequiredInt returns a validator accepting base-10 integers within the
// inclusive range [low, high]. A range with low > high accepts nothing.
func RequiredInt(low, high int) Validator[int] {
	return func(raw string) Outcome[int] {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Invalid[int](required(CodeNotANumber, MsgNotANumber))
		}
		n, err := strconv.Atoi(trimmed)
		if errors.Is(err, strconv.ErrRange) {
			return Invalid[int](outOfDomain(CodeOutOfRange, MsgOutOfRange, low, high))
		}
		if err != nil {
			return Invalid[int](outOfDomain(CodeNotANumber, MsgNotANumber))
		}
		if n < low || n > high {
			return Invalid[int](outOfDomain(CodeOutOfRange, MsgOutOfRange, low, high))
		}
		return Valid(n)
	}
}

// OptionalInt is RequiredInt that treats blank input as absent.
func OptionalInt(low, high int) Validator[Optional[int]] {
	return OptionalOf(RequiredInt(low, high))
}

// RequiredURL accepts http and https links whose host is either localhost or
// a dotted name.
func RequiredURL(raw string) Outcome[string] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Invalid[string](required(CodeInvalidLink, MsgInvalidLink))
	}
	if !isLink(trimmed) {
		return Invalid[string](outOfDomain(CodeInvalidLink, MsgInvalidLink))
	}
	return Valid(trimmed)
}

// OptionalURL is RequiredURL that treats blank input as absent.
func OptionalURL(raw string) Outcome[Optional[string]] {
	return OptionalOf(RequiredURL)(raw)
}

func isLink(value string) bool {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return isHost(parsed.Hostname())
}

func isHost(host string) bool {
	if host == "" {
		return false
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if !strings.Contains(host, ".") {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
