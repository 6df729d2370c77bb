package openapi_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/schema"
)

func intPtr(n int) *int {
	return &n
}

func loadMusic(t *testing.T) *openapi.Importer {
	t.Helper()
	im, err := openapi.LoadFile(context.Background(), filepath.Join("testdata", "music.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return im
}

func TestSchema(t *testing.T) {
	def, err := loadMusic(t).Schema("Song")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	want := schema.FormDef{
		ID:    "Song",
		Title: "Song",
		Fields: []schema.FieldDef{
			{Name: "title", Label: "Title", Kind: schema.KindText, Required: true, MaxLength: 120},
			{Name: "rating", Kind: schema.KindInt, Required: true, Min: intPtr(1), Max: intPtr(10)},
			{Name: "link", Kind: schema.KindURL},
		},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestOperation(t *testing.T) {
	im := loadMusic(t)

	def, err := im.Operation("createSong")
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if def.ID != "createSong" || len(def.Fields) != 3 {
		t.Fatalf("unexpected definition %#v", def)
	}

	if _, err := im.Operation("ping"); !errors.Is(err, openapi.ErrNotAnObject) {
		t.Fatalf("expected ErrNotAnObject, got %v", err)
	}
	if _, err := im.Operation("missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestExclusiveBoundsAndDefault(t *testing.T) {
	def, err := loadMusic(t).Schema("Stars")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	want := []schema.FieldDef{{Name: "count", Kind: schema.KindInt, Min: intPtr(1), Max: intPtr(5), Default: "3"}}
	if diff := cmp.Diff(want, def.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument(t *testing.T) {
	im := loadMusic(t)
	if diff := cmp.Diff([]string{"Song", "Stars"}, im.SchemaNames()); diff != "" {
		t.Fatalf("schema names mismatch (-want +got):\n%s", diff)
	}

	doc, err := im.Document()
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if diff := cmp.Diff([]string{"Song", "Stars"}, doc.IDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := im.Schema("Tag"); !errors.Is(err, openapi.ErrNotAnObject) {
		t.Fatalf("expected ErrNotAnObject for scalar schema, got %v", err)
	}
	if _, err := im.Schema("Nope"); !errors.Is(err, openapi.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestImportedDefinitionBuilds(t *testing.T) {
	def, err := loadMusic(t).Schema("Song")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	f, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	_ = f.Prefill(map[string]string{"title": "Alabama", "rating": "0", "link": "ftp://x"})
	if got := len(f.Issues()); got != 2 {
		t.Fatalf("expected 2 issues, got %d", got)
	}
}

func TestLoad_Empty(t *testing.T) {
	if _, err := openapi.Load(context.Background(), []byte("  ")); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
