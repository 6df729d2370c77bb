package tui

import (
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/render"
)

// OutputFormat controls how submitted records are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a config or flag value onto an OutputFormat.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), true
	default:
		return "", false
	}
}

// Theme holds message prefixes. InfoPrefix starts the submit confirmation,
// ErrorPrefix starts every rejected-input notice.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Submitter turns a fully valid form into the record that gets serialized.
type Submitter func(f *form.Form) (any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitter replaces the default submitter, which collects field values
// into a map keyed by field key.
func WithSubmitter(fn Submitter) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.submit = fn
		}
	}
}

// WithLocalization sets the options used to localize error messages.
func WithLocalization(opts render.Options) Option {
	return func(r *Renderer) {
		r.messages = opts
	}
}

// WithConfirm toggles the final "submit?" confirmation.
func WithConfirm(enabled bool) Option {
	return func(r *Renderer) {
		r.confirm = enabled
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
