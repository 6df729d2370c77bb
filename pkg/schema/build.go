package schema

import (
	"fmt"
	"math"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Build creates a live form from def. Required fields use the required
// validator family; the rest use the optional one, so blank input is absent
// rather than invalid.
func (def FormDef) Build() (*form.Form, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	f := form.New(def.ID)
	for _, fd := range def.Fields {
		entry, err := fd.entry()
		if err != nil {
			return nil, fmt.Errorf("schema: form %q field %q: %w", def.ID, fd.Name, err)
		}
		if err := f.Add(fd.Name, entry, form.WithLabel(fd.Label)); err != nil {
			return nil, fmt.Errorf("schema: form %q: %w", def.ID, err)
		}
	}
	return f, nil
}

func (fd FieldDef) entry() (field.Entry, error) {
	switch fd.Kind {
	case KindText:
		v := fd.textValidator()
		if fd.Required {
			return field.New(v, fd.Default), nil
		}
		return field.New(validation.OptionalOf(v), fd.Default), nil
	case KindInt:
		low, high := math.MinInt, math.MaxInt
		if fd.Min != nil {
			low = *fd.Min
		}
		if fd.Max != nil {
			high = *fd.Max
		}
		if fd.Required {
			return field.New(validation.RequiredInt(low, high), fd.Default), nil
		}
		return field.New(validation.OptionalInt(low, high), fd.Default), nil
	case KindURL:
		if fd.Required {
			return field.New(validation.Validator[string](validation.RequiredURL), fd.Default), nil
		}
		return field.New(validation.Validator[validation.Optional[string]](validation.OptionalURL), fd.Default), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", fd.Kind)
	}
}

func (fd FieldDef) textValidator() validation.Validator[string] {
	v := validation.Validator[string](validation.RequiredText)
	if fd.MinLength > 0 {
		v = validation.MinLength(v, fd.MinLength)
	}
	if fd.MaxLength > 0 {
		v = validation.MaxLength(v, fd.MaxLength)
	}
	return v
}

// Collect submits a form built from a definition and returns its values
// keyed by field name. Absent optional values become nil.
func Collect(f *form.Form) (map[string]any, error) {
	return form.TrySubmit(f, func(v *form.Values) (map[string]any, error) {
		out := v.Map()
		for key, value := range out {
			out[key] = unwrapOptional(value)
		}
		return out, nil
	})
}

func unwrapOptional(value any) any {
	switch typed := value.(type) {
	case validation.Optional[string]:
		if v, ok := typed.Get(); ok {
			return v
		}
		return nil
	case validation.Optional[int]:
		if v, ok := typed.Get(); ok {
			return v
		}
		return nil
	default:
		return value
	}
}
