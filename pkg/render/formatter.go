package render

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formfield/pkg/form"
)

// Formatter turns the state of a form, plus any collaborator errors, into a
// user-facing error summary.
type Formatter interface {
	Name() string
	ContentType() string
	Format(f *form.Form, extra ErrorMapping, opts Options) ([]byte, error)
}

// TextFormatter wraps FormatText.
type TextFormatter struct{}

func (TextFormatter) Name() string        { return "text" }
func (TextFormatter) ContentType() string { return "text/plain; charset=utf-8" }

func (TextFormatter) Format(f *form.Form, extra ErrorMapping, opts Options) ([]byte, error) {
	return []byte(FormatText(f, extra, opts)), nil
}

// HTMLFormatter wraps FormatHTML.
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string        { return "html" }
func (HTMLFormatter) ContentType() string { return "text/html; charset=utf-8" }

func (HTMLFormatter) Format(f *form.Form, extra ErrorMapping, opts Options) ([]byte, error) {
	out, err := FormatHTML(f, extra, opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// JSONFormatter emits the combined ErrorMapping as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string        { return "json" }
func (JSONFormatter) ContentType() string { return "application/json" }

func (JSONFormatter) Format(f *form.Form, extra ErrorMapping, opts Options) ([]byte, error) {
	mapping := Combine(Summarize(f, opts), extra)
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: encode errors: %w", err)
	}
	return append(data, '\n'), nil
}
