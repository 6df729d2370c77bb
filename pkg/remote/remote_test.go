package remote_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/remote"
	"github.com/goliatone/go-formfield/pkg/validation"
)

type review struct {
	Author string
	Stars  int
}

func describe(d remote.Data[review]) string {
	return remote.Fold(d, remote.Cases[review, string]{
		NotAsked: func() string { return "idle" },
		Loading:  func() string { return "loading" },
		Loaded:   func(r review) string { return r.Author },
		Failed:   func(err error) string { return "failed: " + err.Error() },
	})
}

func TestFold(t *testing.T) {
	var zero remote.Data[review]
	got := []string{
		describe(zero),
		describe(remote.NotAsked[review]()),
		describe(remote.Loading[review]()),
		describe(remote.Success(review{Author: "Ada"})),
		describe(remote.Failure[review](errors.New("timeout"))),
	}
	want := []string{"idle", "idle", "loading", "Ada", "failed: timeout"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fold mismatch (-want +got):\n%s", diff)
	}
}

func TestFailure_NilError(t *testing.T) {
	d := remote.Failure[int](nil)
	if !errors.Is(d.Err(), remote.ErrNoFailure) {
		t.Fatalf("expected ErrNoFailure, got %v", d.Err())
	}
	if remote.Success(1).Err() != nil {
		t.Fatalf("loaded data must not carry an error")
	}
}

func TestResolve_ValidatesFetchedValues(t *testing.T) {
	f := form.New("review")
	if err := f.Add("author", field.New(validation.RequiredText, "")); err != nil {
		t.Fatalf("add author: %v", err)
	}
	if err := f.Add("stars", field.New(validation.RequiredInt(1, 5), "")); err != nil {
		t.Fatalf("add stars: %v", err)
	}

	inputs := func(r review) map[string]string {
		return map[string]string{"author": r.Author, "stars": strconv.Itoa(r.Stars)}
	}

	touched, err := remote.Resolve(remote.Loading[review](), f, inputs)
	if err != nil || touched {
		t.Fatalf("loading data must not touch the form (touched=%v err=%v)", touched, err)
	}

	touched, err = remote.Resolve(remote.Success(review{Author: "Ada", Stars: 9}), f, inputs)
	if err != nil || !touched {
		t.Fatalf("expected form to be prefilled (touched=%v err=%v)", touched, err)
	}

	issues := f.Issues()
	if len(issues) != 1 || issues[0].Key != "stars" || issues[0].Issue.Message != validation.MsgOutOfRange {
		t.Fatalf("expected fetched stars to fail range check, got %#v", issues)
	}
}
