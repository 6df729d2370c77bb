// Package remote models data that arrives from a collaborator (for example
// an HTTP fetch) and feeds it into forms once resolved.
package remote

import (
	"errors"

	"github.com/goliatone/go-formfield/pkg/form"
)

// State enumerates the shapes remote data can take.
type State int

const (
	StateNotAsked State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotAsked:
		return "not_asked"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNoFailure is used when Failure is given a nil error.
var ErrNoFailure = errors.New("remote: failure without error")

// Data is remote data in exactly one State. The zero value is NotAsked.
type Data[T any] struct {
	state State
	value T
	err   error
}

// NotAsked returns data that has not been requested yet.
func NotAsked[T any]() Data[T] {
	return Data[T]{state: StateNotAsked}
}

// Loading returns data whose request is in flight.
func Loading[T any]() Data[T] {
	return Data[T]{state: StateLoading}
}

// Success returns loaded data.
func Success[T any](value T) Data[T] {
	return Data[T]{state: StateLoaded, value: value}
}

// Failure returns data whose request failed.
func Failure[T any](err error) Data[T] {
	if err == nil {
		err = ErrNoFailure
	}
	return Data[T]{state: StateFailed, err: err}
}

// State reports the current shape.
func (d Data[T]) State() State {
	return d.state
}

// Value returns the loaded value and true in StateLoaded.
func (d Data[T]) Value() (T, bool) {
	if d.state != StateLoaded {
		var zero T
		return zero, false
	}
	return d.value, true
}

// Err returns the failure in StateFailed, nil otherwise.
func (d Data[T]) Err() error {
	if d.state != StateFailed {
		return nil
	}
	return d.err
}

// Cases holds one handler per state for Fold. Nil handlers yield the zero R.
type Cases[T, R any] struct {
	NotAsked func() R
	Loading  func() R
	Loaded   func(T) R
	Failed   func(error) R
}

// Fold dispatches d to the handler matching its state.
func Fold[T, R any](d Data[T], cases Cases[T, R]) R {
	var zero R
	switch d.state {
	case StateLoading:
		if cases.Loading != nil {
			return cases.Loading()
		}
	case StateLoaded:
		if cases.Loaded != nil {
			return cases.Loaded(d.value)
		}
	case StateFailed:
		if cases.Failed != nil {
			return cases.Failed(d.err)
		}
	default:
		if cases.NotAsked != nil {
			return cases.NotAsked()
		}
	}
	return zero
}

// Resolve prefills f with the text produced by inputs once d is loaded, so
// fetched values go through the same validators as typed ones. It reports
// whether the form was touched.
func Resolve[T any](d Data[T], f *form.Form, inputs func(T) map[string]string) (bool, error) {
	value, ok := d.Value()
	if !ok || inputs == nil {
		return false, nil
	}
	if err := f.Prefill(inputs(value)); err != nil {
		return false, err
	}
	return true, nil
}
