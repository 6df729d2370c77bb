package form

import (
	"fmt"

	"github.com/goliatone/go-formfield/pkg/field"
)

// Key names a field and carries its value type, so record constructors read
// values without string-typed lookups or casts.
type Key[T any] string

// Attach registers fld under key. It is Add with the value type pinned.
func Attach[T any](f *Form, key Key[T], fld *field.Field[T], opts ...Option) error {
	if fld == nil {
		return fmt.Errorf("%w: %q", ErrNilEntry, string(key))
	}
	return f.Add(string(key), fld, opts...)
}

// Values exposes the validated values of a fully valid form to a record
// constructor. Lookup failures are recorded and reported by TrySubmit.
type Values struct {
	values map[string]any
	err    error
}

// Get returns the validated value under key. A missing key or a type
// mismatch records an error on v and yields the zero value.
func Get[T any](v *Values, key Key[T]) T {
	var zero T
	if v == nil {
		return zero
	}
	raw, ok := v.values[string(key)]
	if !ok {
		v.fail(fmt.Errorf("%w: %q", ErrUnknownField, string(key)))
		return zero
	}
	typed, ok := raw.(T)
	if !ok {
		v.fail(fmt.Errorf("%w: %q holds %T", ErrTypeMismatch, string(key), raw))
		return zero
	}
	return typed
}

// Map returns a copy of every value keyed by field key, for records that
// are assembled dynamically.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, len(v.values))
	for key, value := range v.values {
		out[key] = value
	}
	return out
}

// Err returns the first lookup failure, if any.
func (v *Values) Err() error {
	return v.err
}

func (v *Values) fail(err error) {
	if v.err == nil {
		v.err = err
	}
}

// BuildFunc assembles a record from the values of a valid form.
type BuildFunc[R any] func(values *Values) (R, error)

// TrySubmit returns the record built from f when every field is valid.
// Otherwise it returns a *SubmitError listing all invalid fields; build is
// not called and nothing is partially submitted. The form is left untouched
// either way; see Commit for submit-then-reset.
func TrySubmit[R any](f *Form, build BuildFunc[R]) (R, error) {
	var zero R
	if issues := f.Issues(); len(issues) > 0 {
		return zero, &SubmitError{FormID: f.id, Fields: issues}
	}

	values := &Values{values: make(map[string]any, len(f.keys))}
	for _, key := range f.keys {
		value, _ := f.entries[key].Any()
		values.values[key] = value
	}

	record, err := build(values)
	if err == nil {
		err = values.Err()
	}
	if err != nil {
		return zero, fmt.Errorf("form %s: build record: %w", f.id, err)
	}
	return record, nil
}

// Commit runs TrySubmit and resets the form only when it succeeds.
func Commit[R any](f *Form, build BuildFunc[R]) (R, error) {
	record, err := TrySubmit(f, build)
	if err != nil {
		return record, err
	}
	f.Reset()
	return record, nil
}

// Apply2 submits f and passes the values under ka and kb, in that order, to
// fn. Parameter order is checked by the compiler through the key types.
func Apply2[A, B, R any](f *Form, ka Key[A], kb Key[B], fn func(A, B) R) (R, error) {
	return TrySubmit(f, func(v *Values) (R, error) {
		return fn(Get(v, ka), Get(v, kb)), nil
	})
}

// Apply3 is Apply2 for three fields.
func Apply3[A, B, C, R any](f *Form, ka Key[A], kb Key[B], kc Key[C], fn func(A, B, C) R) (R, error) {
	return TrySubmit(f, func(v *Values) (R, error) {
		return fn(Get(v, ka), Get(v, kb), Get(v, kc)), nil
	})
}

// Apply4 is Apply2 for four fields.
func Apply4[A, B, C, D, R any](f *Form, ka Key[A], kb Key[B], kc Key[C], kd Key[D], fn func(A, B, C, D) R) (R, error) {
	return TrySubmit(f, func(v *Values) (R, error) {
		return fn(Get(v, ka), Get(v, kb), Get(v, kc), Get(v, kd)), nil
	})
}
