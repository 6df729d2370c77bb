// Package schema describes forms declaratively so they can be loaded from
// YAML or JSON files and turned into live forms.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the validator family of a field.
type Kind string

const (
	KindText Kind = "text"
	KindInt  Kind = "int"
	KindURL  Kind = "url"
)

// Document is the root of a definition file.
type Document struct {
	Forms []FormDef `json:"forms" yaml:"forms"`
}

// FormDef declares one form; field order is significant.
type FormDef struct {
	ID     string     `json:"id" yaml:"id"`
	Title  string     `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldDef `json:"fields" yaml:"fields"`
}

// FieldDef declares one field.
type FieldDef struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	// Min and Max bound int fields; nil leaves the side open.
	Min       *int   `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *int   `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength int    `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Default   string `json:"default,omitempty" yaml:"default,omitempty"`
}

var (
	errFormIDMissing    = errors.New("schema: form id is required")
	errFieldNameMissing = errors.New("schema: field name is required")
)

// Form returns the form declared under id.
func (d Document) Form(id string) (FormDef, bool) {
	for _, def := range d.Forms {
		if def.ID == id {
			return def, true
		}
	}
	return FormDef{}, false
}

// IDs lists form identifiers in file order.
func (d Document) IDs() []string {
	out := make([]string, 0, len(d.Forms))
	for _, def := range d.Forms {
		out = append(out, def.ID)
	}
	return out
}

// Validate checks the document for structural mistakes.
func (d Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Forms))
	for idx, def := range d.Forms {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("schema: form %d: %w", idx, err)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("schema: duplicate form id %q", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	return nil
}

// Validate checks a single form definition.
func (def FormDef) Validate() error {
	if strings.TrimSpace(def.ID) == "" {
		return errFormIDMissing
	}
	names := make(map[string]struct{}, len(def.Fields))
	for idx, fd := range def.Fields {
		if strings.TrimSpace(fd.Name) == "" {
			return fmt.Errorf("form %q field %d: %w", def.ID, idx, errFieldNameMissing)
		}
		if _, dup := names[fd.Name]; dup {
			return fmt.Errorf("form %q: duplicate field %q", def.ID, fd.Name)
		}
		names[fd.Name] = struct{}{}
		if err := fd.validate(); err != nil {
			return fmt.Errorf("form %q field %q: %w", def.ID, fd.Name, err)
		}
	}
	return nil
}

func (fd FieldDef) validate() error {
	switch fd.Kind {
	case KindText, KindURL:
		if fd.Min != nil || fd.Max != nil {
			return fmt.Errorf("min/max only apply to %q fields", KindInt)
		}
	case KindInt:
		if fd.MinLength != 0 || fd.MaxLength != 0 {
			return errors.New("minLength/maxLength do not apply to int fields")
		}
		if fd.Min != nil && fd.Max != nil && *fd.Min > *fd.Max {
			return fmt.Errorf("min %d is greater than max %d", *fd.Min, *fd.Max)
		}
	default:
		return fmt.Errorf("unknown kind %q", fd.Kind)
	}
	if fd.MinLength < 0 || fd.MaxLength < 0 {
		return errors.New("lengths must not be negative")
	}
	if fd.MaxLength > 0 && fd.MinLength > fd.MaxLength {
		return fmt.Errorf("minLength %d is greater than maxLength %d", fd.MinLength, fd.MaxLength)
	}
	return nil
}
