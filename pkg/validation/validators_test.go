package validation_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/validation"
)

func assertValid[T any](t *testing.T, got validation.Outcome[T], want T) {
	t.Helper()
	value, ok := got.Value()
	if !ok {
		t.Fatalf("expected valid outcome, got issue %q", got.Message())
	}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func assertInvalid[T any](t *testing.T, got validation.Outcome[T], kind validation.Kind, message string) {
	t.Helper()
	issue, ok := got.Issue()
	if !ok {
		value, _ := got.Value()
		t.Fatalf("expected invalid outcome, got value %#v", value)
	}
	if issue.Kind != kind {
		t.Fatalf("expected kind %q, got %q", kind, issue.Kind)
	}
	if issue.Message != message {
		t.Fatalf("expected message %q, got %q", message, issue.Message)
	}
}

func TestRequiredText(t *testing.T) {
	inputs := []string{"", " ", "   ", "\t\n", "a", " a ", "hello world", " x"}
	for _, in := range inputs {
		got := validation.RequiredText(in)
		trimmed := strings.TrimSpace(in)
		if trimmed == "" {
			assertInvalid(t, got, validation.EmptyRequiredField, validation.MsgRequired)
			continue
		}
		assertValid(t, got, trimmed)
	}
}

func TestRequiredText_WhitespaceOnly(t *testing.T) {
	assertInvalid(t, validation.RequiredText("   "), validation.EmptyRequiredField, "Field cannot be empty")
}

func TestRequiredInt_Scenario(t *testing.T) {
	v := validation.RequiredInt(1, 10)

	assertInvalid(t, v("0"), validation.OutOfDomainValue, "Number is not in range")
	assertValid(t, v("5"), 5)
	assertInvalid(t, v("abc"), validation.OutOfDomainValue, "Field cannot be empty, must be a number")
	assertInvalid(t, v(""), validation.EmptyRequiredField, "Field cannot be empty, must be a number")
	assertValid(t, v(" 7 "), 7)
	assertInvalid(t, v("3.5"), validation.OutOfDomainValue, validation.MsgNotANumber)
}

func TestRequiredInt_RangeProperty(t *testing.T) {
	low, high := -5, 12
	v := validation.RequiredInt(low, high)
	for n := low - 20; n <= high+20; n++ {
		got := v(strconv.Itoa(n))
		if n >= low && n <= high {
			assertValid(t, got, n)
			continue
		}
		assertInvalid(t, got, validation.OutOfDomainValue, validation.MsgOutOfRange)
	}
}

func TestRequiredInt_Overflow(t *testing.T) {
	v := validation.RequiredInt(1, 10)
	for _, in := range []string{"99999999999999999999", "-99999999999999999999"} {
		assertInvalid(t, v(in), validation.OutOfDomainValue, validation.MsgOutOfRange)
		issue, _ := v(in).Issue()
		if issue.Code != validation.CodeOutOfRange {
			t.Fatalf("expected code %q for %q, got %q", validation.CodeOutOfRange, in, issue.Code)
		}
	}
}

func TestRequiredInt_RangeIssueCarriesBounds(t *testing.T) {
	issue, ok := validation.RequiredInt(1, 5)("9").Issue()
	if !ok {
		t.Fatalf("expected issue")
	}
	if diff := cmp.Diff([]any{1, 5}, issue.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if issue.Code != validation.CodeOutOfRange {
		t.Fatalf("expected code %q, got %q", validation.CodeOutOfRange, issue.Code)
	}
}

func TestRequiredURL(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/path?q=1",
		" https://sub.example.org ",
		"http://localhost:8080/x",
		"HTTPS://Example.com",
	}
	for _, in := range valid {
		assertValid(t, validation.RequiredURL(in), strings.TrimSpace(in))
	}

	invalid := []string{
		"ftp://x",
		"example.com",
		"http://",
		"http://nohost",
		"https://bad..host",
		"mailto:someone@example.com",
		"http://exa mple.com",
	}
	for _, in := range invalid {
		assertInvalid(t, validation.RequiredURL(in), validation.OutOfDomainValue, "This isn't a proper link")
	}

	assertInvalid(t, validation.RequiredURL(""), validation.EmptyRequiredField, "This isn't a proper link")
	assertInvalid(t, validation.RequiredURL("  "), validation.EmptyRequiredField, validation.MsgInvalidLink)
}

func TestOptionalURL(t *testing.T) {
	assertValid(t, validation.OptionalURL(""), validation.None[string]())
	assertValid(t, validation.OptionalURL("  "), validation.None[string]())
	assertInvalid(t, validation.OptionalURL("ftp://x"), validation.OutOfDomainValue, "This isn't a proper link")
	assertValid(t, validation.OptionalURL("https://example.com"), validation.Some("https://example.com"))
}

func TestOptionalFamilies_BlankIsAbsent(t *testing.T) {
	assertValid(t, validation.OptionalText(" "), validation.None[string]())
	assertValid(t, validation.OptionalText(" x "), validation.Some("x"))
	assertValid(t, validation.OptionalInt(1, 3)(""), validation.None[int]())
	assertValid(t, validation.OptionalInt(1, 3)("2"), validation.Some(2))
	assertInvalid(t, validation.OptionalInt(1, 3)("4"), validation.OutOfDomainValue, validation.MsgOutOfRange)
}

func TestValidators_Deterministic(t *testing.T) {
	v := validation.RequiredInt(0, 100)
	for _, in := range []string{"", "42", "x", "101"} {
		first, second := v(in), v(in)
		if first.IsValid() != second.IsValid() || first.Message() != second.Message() {
			t.Fatalf("validator not deterministic for %q", in)
		}
	}
}
