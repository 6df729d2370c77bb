// Package form groups named fields into one editable form and turns a fully
// valid form into a typed record.
package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
)

// Form is an ordered set of named fields of heterogeneous value types. It is
// owned by one logical editor and is not safe for concurrent use.
type Form struct {
	id      string
	keys    []string
	entries map[string]field.Entry
	labels  map[string]string
}

// Option configures a field at registration time.
type Option func(*entryConfig)

type entryConfig struct {
	label string
}

// WithLabel sets the human-readable label used when formatting errors.
func WithLabel(label string) Option {
	return func(cfg *entryConfig) {
		cfg.label = strings.TrimSpace(label)
	}
}

// New returns an empty form.
func New(id string) *Form {
	return &Form{
		id:      strings.TrimSpace(id),
		entries: make(map[string]field.Entry),
		labels:  make(map[string]string),
	}
}

// ID returns the form identifier.
func (f *Form) ID() string {
	return f.id
}

// Add registers entry under key. Declaration order is preserved and drives
// error ordering.
func (f *Form) Add(key string, entry field.Entry, opts ...Option) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if entry == nil {
		return fmt.Errorf("%w: %q", ErrNilEntry, key)
	}
	if _, exists := f.entries[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	cfg := entryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	f.keys = append(f.keys, key)
	f.entries[key] = entry
	if cfg.label != "" {
		f.labels[key] = cfg.label
	}
	return nil
}

// Keys returns field keys in declaration order.
func (f *Form) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len reports the number of fields.
func (f *Form) Len() int {
	return len(f.keys)
}

// Entry returns the field registered under key.
func (f *Form) Entry(key string) (field.Entry, bool) {
	entry, ok := f.entries[key]
	return entry, ok
}

// Label returns the configured label for key, falling back to the key.
func (f *Form) Label(key string) string {
	if label, ok := f.labels[key]; ok {
		return label
	}
	return key
}

// SetInput forwards text to the field under key.
func (f *Form) SetInput(key, text string) error {
	entry, ok := f.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	entry.SetInput(text)
	return nil
}

// Prefill applies already-resolved values (for example a fetched record) as
// if they had been typed. Unknown keys fail before any field is touched.
func (f *Form) Prefill(values map[string]string) error {
	for key := range values {
		if _, ok := f.entries[key]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
	}
	for _, key := range f.keys {
		if text, ok := values[key]; ok {
			f.entries[key].SetInput(text)
		}
	}
	return nil
}

// Reset restores every field to its initial text.
func (f *Form) Reset() {
	for _, key := range f.keys {
		f.entries[key].Reset()
	}
}

// IsValid reports whether every field is valid.
func (f *Form) IsValid() bool {
	for _, key := range f.keys {
		if !f.entries[key].IsValid() {
			return false
		}
	}
	return true
}

// Issues lists every invalid field in declaration order.
func (f *Form) Issues() []FieldIssue {
	var out []FieldIssue
	for _, key := range f.keys {
		entry := f.entries[key]
		issue, invalid := entry.Issue()
		if !invalid {
			continue
		}
		out = append(out, FieldIssue{
			Key:   key,
			Label: f.Label(key),
			Input: entry.Input(),
			Issue: issue,
		})
	}
	return out
}

// Inputs returns the raw text of every field keyed by field key.
func (f *Form) Inputs() map[string]string {
	out := make(map[string]string, len(f.keys))
	for _, key := range f.keys {
		out[key] = f.entries[key].Input()
	}
	return out
}
