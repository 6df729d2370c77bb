package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/validation"
)

// ErrMissingTranslator is passed to OnMissing when no Translator is set.
var ErrMissingTranslator = errors.New("render: translator not configured")

// ErrMissingTranslation is returned by Catalog for unknown locale/key pairs.
var ErrMissingTranslation = errors.New("render: translation not found")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated. args[0] carries {"default": <english message>}.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Options controls message localisation.
type Options struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// MessageKey returns the translation key for an issue.
func MessageKey(issue validation.Issue) string {
	if issue.Code == "" {
		return ""
	}
	return "validation." + issue.Code
}

// Localize returns the issue message in opts.Locale, falling back to the
// issue's own message.
func Localize(issue validation.Issue, opts Options) string {
	key := MessageKey(issue)
	if key == "" {
		return issue.Message
	}

	if opts.Translator == nil {
		if opts.OnMissing != nil {
			return opts.OnMissing(opts.Locale, key, fallbackArgs(issue.Message), ErrMissingTranslator)
		}
		return issue.Message
	}

	result, err := opts.Translator.Translate(opts.Locale, key, issue.Args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if opts.OnMissing != nil {
		return opts.OnMissing(opts.Locale, key, fallbackArgs(issue.Message), err)
	}
	return issue.Message
}

func fallbackArgs(message string) []any {
	return []any{map[string]any{"default": message}}
}

// Catalog is an in-memory Translator: locale -> key -> fmt format string.
// Formats receive the issue Args. A message without verbs is returned as
// written, so a literal "%" needs no escaping there.
type Catalog map[string]map[string]string

// Translate implements Translator.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	messages, ok := c[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return "", fmt.Errorf("%w: locale %q", ErrMissingTranslation, locale)
	}
	format, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
	}
	verbs := countVerbs(format)
	if verbs == 0 || len(args) == 0 {
		return format, nil
	}
	if len(args) > verbs {
		args = args[:verbs]
	}
	return fmt.Sprintf(format, args...), nil
}

// countVerbs counts formatting directives, skipping "%%" escapes.
func countVerbs(format string) int {
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}

// Set registers a message, creating the locale on first use.
func (c Catalog) Set(locale, key, format string) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if c[locale] == nil {
		c[locale] = make(map[string]string)
	}
	c[locale][strings.TrimSpace(key)] = format
}

// Locales lists the locales with at least one message, sorted.
func (c Catalog) Locales() []string {
	out := make([]string, 0, len(c))
	for locale, messages := range c {
		if len(messages) > 0 {
			out = append(out, locale)
		}
	}
	sort.Strings(out)
	return out
}
