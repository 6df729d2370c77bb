// Package tui fills forms interactively in a terminal. Each field is prompted
// in order, re-prompted until its validator accepts the text, and the
// resulting record is serialized in the configured output format.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/schema"
)

// Renderer drives a form through a PromptDriver.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	submit       Submitter
	messages     render.Options
	confirm      bool
	theme        Theme
}

// New constructs a TUI renderer using survey by default.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		submit:       collect,
		confirm:      true,
		theme: Theme{
			ErrorPrefix: "✗ ",
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ContentType returns the MIME type of the configured output format.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Fill prompts every field in key order until each one holds valid input.
// Current inputs are offered as defaults.
func (r *Renderer) Fill(ctx context.Context, f *form.Form) error {
	if f == nil {
		return ErrNilForm
	}
	for _, key := range f.Keys() {
		if err := r.promptField(ctx, f, key); err != nil {
			return err
		}
	}
	return nil
}

// Render fills f, asks for confirmation, submits and serializes the record.
func (r *Renderer) Render(ctx context.Context, f *form.Form) ([]byte, error) {
	if err := r.Fill(ctx, f); err != nil {
		return nil, err
	}

	if r.confirm {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%sSubmit %s?", r.theme.InfoPrefix, f.ID()),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	record, err := r.submit(f)
	if err != nil {
		return nil, err
	}
	return Encode(r.outputFormat, record)
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, key string) error {
	entry, ok := f.Entry(key)
	if !ok {
		return fmt.Errorf("%w: %q", form.ErrUnknownField, key)
	}
	label := f.Label(key)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   entry.Input(),
			Validator: entry.Validate,
		})
		if err != nil {
			return err
		}

		entry.SetInput(text)
		issue, invalid := entry.Issue()
		if !invalid {
			return nil
		}
		msg := fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, label, render.Localize(issue, r.messages))
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
}

func collect(f *form.Form) (any, error) {
	return schema.Collect(f)
}

// Encode serializes a submitted record. Records that are not maps are
// reshaped through their JSON form for the form and pretty formats.
func Encode(format OutputFormat, record any) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		values, err := asMap(record)
		if err != nil {
			return nil, err
		}
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		values, err := asMap(record)
		if err != nil {
			return nil, err
		}
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(record)
	}
}

func asMap(record any) (map[string]any, error) {
	if values, ok := record.(map[string]any); ok {
		return values, nil
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("tui: encode record: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("tui: record is not an object: %w", err)
	}
	return values, nil
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(join(prefix, key), val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	case nil:
		// absent optionals are omitted
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			writePretty(b, join(prefix, key), v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	case nil:
		if prefix != "" {
			fmt.Fprintf(b, "%s=\n", prefix)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
