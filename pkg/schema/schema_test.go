package schema_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/schema"
)

func loadCatalog(t *testing.T) schema.Document {
	t.Helper()
	doc, err := schema.LoadFile(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return doc
}

func TestLoadFile(t *testing.T) {
	doc := loadCatalog(t)
	if diff := cmp.Diff([]string{"song", "review"}, doc.IDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}
	song, ok := doc.Form("song")
	if !ok {
		t.Fatalf("expected song form")
	}
	if got := song.Fields[2]; got.Kind != schema.KindInt || *got.Min != 1 || *got.Max != 10 {
		t.Fatalf("unexpected rating definition %#v", got)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	fsys := fstest.MapFS{
		"forms.json": {Data: []byte(`{"forms":[{"id":"x","fields":[{"name":"a","kind":"url","required":true}]}]}`)},
	}
	doc, err := schema.LoadFS(fsys, "forms.json")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if len(doc.Forms) != 1 || doc.Forms[0].Fields[0].Kind != schema.KindURL {
		t.Fatalf("unexpected document %#v", doc)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":        "   ",
		"unknown kind": "forms: [{id: a, fields: [{name: x, kind: date}]}]",
		"missing id":   "forms: [{fields: [{name: x, kind: text}]}]",
		"dup field":    "forms: [{id: a, fields: [{name: x, kind: text}, {name: x, kind: int}]}]",
		"dup form":     "forms: [{id: a, fields: []}, {id: a, fields: []}]",
		"bad range":    "forms: [{id: a, fields: [{name: x, kind: int, min: 5, max: 1}]}]",
		"range on url": "forms: [{id: a, fields: [{name: x, kind: url, min: 1}]}]",
		"bad yaml":     "forms: [",
	}
	for name, raw := range cases {
		if _, err := schema.Parse([]byte(raw), name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuildAndCollect(t *testing.T) {
	def, _ := loadCatalog(t).Form("song")
	f, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if f.Label("rating") != "Rating" {
		t.Fatalf("expected label to be carried, got %q", f.Label("rating"))
	}

	if err := f.Prefill(map[string]string{"title": " Giant Steps ", "artist": "Coltrane", "rating": "10"}); err != nil {
		t.Fatalf("prefill: %v", err)
	}
	got, err := schema.Collect(f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]any{"title": "Giant Steps", "artist": "Coltrane", "rating": 10, "link": nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_OptionalAndDefault(t *testing.T) {
	def, _ := loadCatalog(t).Form("review")
	f, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := f.Inputs()["stars"]; got != "3" {
		t.Fatalf("expected default stars 3, got %q", got)
	}

	if err := f.Prefill(map[string]string{"stars": "", "author": "Ada"}); err != nil {
		t.Fatalf("prefill: %v", err)
	}
	got, err := schema.Collect(f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"author": "Ada", "stars": nil}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_MaxLength(t *testing.T) {
	def, _ := loadCatalog(t).Form("song")
	f, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_ = f.Prefill(map[string]string{"title": strings.Repeat("x", 121), "artist": "a", "rating": "1"})

	_, err = schema.Collect(f)
	var submitErr *form.SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("expected submit error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Must be at most 120 characters"}, submitErr.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_UnboundedIntOverflow(t *testing.T) {
	doc, err := schema.Parse([]byte("forms: [{id: a, fields: [{name: n, kind: int, required: true}]}]"), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f, err := doc.Forms[0].Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_ = f.Prefill(map[string]string{"n": "99999999999999999999"})

	_, err = schema.Collect(f)
	var submitErr *form.SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("expected submit error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Number is not in range"}, submitErr.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := loadCatalog(t)
	out, err := schema.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := schema.Parse(out, "roundtrip")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(doc, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
