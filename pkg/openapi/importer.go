// Package openapi derives form definitions from OpenAPI 3 documents, so a
// form can be declared once in the API contract and validated client side.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/schema"
)

var (
	// ErrSchemaNotFound is returned when a named component schema is missing.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNotAnObject is returned for schemas without properties.
	ErrNotAnObject = errors.New("openapi: schema is not an object")
)

// Importer wraps a loaded OpenAPI document.
type Importer struct {
	doc *openapi3.T
}

// Load parses an OpenAPI document from memory.
func Load(ctx context.Context, data []byte) (*Importer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return &Importer{doc: doc}, nil
}

// LoadFile parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*Importer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Load(ctx, data)
}

// SchemaNames lists the component schemas that can become forms, sorted.
func (im *Importer) SchemaNames() []string {
	schemas := im.componentSchemas()
	names := make([]string, 0, len(schemas))
	for name, ref := range schemas {
		if ref != nil && ref.Value != nil && len(ref.Value.Properties) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Schema converts the component schema name into a form definition whose id
// is the schema name.
func (im *Importer) Schema(name string) (schema.FormDef, error) {
	ref, ok := im.componentSchemas()[name]
	if !ok || ref == nil || ref.Value == nil {
		return schema.FormDef{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return convertObject(name, ref.Value)
}

// Operation converts the request body of operationID into a form definition.
// JSON bodies are preferred over form-encoded ones.
func (im *Importer) Operation(operationID string) (schema.FormDef, error) {
	if im.doc.Paths != nil {
		for _, item := range im.doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op == nil || op.OperationID != operationID {
					continue
				}
				body := requestSchema(op.RequestBody)
				if body == nil {
					return schema.FormDef{}, fmt.Errorf("%w: operation %q has no request body", ErrNotAnObject, operationID)
				}
				return convertObject(operationID, body)
			}
		}
	}
	return schema.FormDef{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

// Document converts every object component schema into a definition file.
func (im *Importer) Document() (schema.Document, error) {
	var doc schema.Document
	for _, name := range im.SchemaNames() {
		def, err := im.Schema(name)
		if err != nil {
			return schema.Document{}, err
		}
		doc.Forms = append(doc.Forms, def)
	}
	return doc, nil
}

func (im *Importer) componentSchemas() openapi3.Schemas {
	if im == nil || im.doc == nil || im.doc.Components == nil {
		return nil
	}
	return im.doc.Components.Schemas
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertObject(id string, src *openapi3.Schema) (schema.FormDef, error) {
	if src == nil || len(src.Properties) == 0 {
		return schema.FormDef{}, fmt.Errorf("%w: %q", ErrNotAnObject, id)
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	def := schema.FormDef{ID: id, Title: src.Title}
	for _, name := range propertyOrder(src) {
		prop := src.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		fd, ok := convertProperty(name, prop.Value)
		if !ok {
			continue
		}
		_, fd.Required = required[name]
		def.Fields = append(def.Fields, fd)
	}
	if err := def.Validate(); err != nil {
		return schema.FormDef{}, fmt.Errorf("openapi: %w", err)
	}
	return def, nil
}

// propertyOrder keeps required properties first, in the order the schema
// lists them, followed by the rest sorted by name. Property maps carry no
// order of their own.
func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(src.Properties))
	out := make([]string, 0, len(src.Properties))
	for _, name := range src.Required {
		if _, ok := src.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	rest := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// convertProperty maps scalar properties; objects, arrays and booleans have
// no text-input counterpart and are skipped.
func convertProperty(name string, src *openapi3.Schema) (schema.FieldDef, bool) {
	fd := schema.FieldDef{Name: name, Label: src.Title}
	if src.Default != nil {
		fd.Default = fmt.Sprint(src.Default)
	}

	switch schemaType(src.Type) {
	case "string":
		if src.Format == "uri" || src.Format == "url" {
			fd.Kind = schema.KindURL
			return fd, true
		}
		fd.Kind = schema.KindText
		fd.MinLength = int(src.MinLength)
		if src.MaxLength != nil {
			fd.MaxLength = int(*src.MaxLength)
		}
		return fd, true
	case "integer":
		fd.Kind = schema.KindInt
		fd.Min = bound(src.Min, src.ExclusiveMin, 1)
		fd.Max = bound(src.Max, src.ExclusiveMax, -1)
		return fd, true
	default:
		return schema.FieldDef{}, false
	}
}

func bound(value *float64, exclusive bool, step int) *int {
	if value == nil {
		return nil
	}
	var n int
	if step > 0 {
		n = int(math.Ceil(*value))
	} else {
		n = int(math.Floor(*value))
	}
	if exclusive && float64(n) == *value {
		n += step
	}
	return &n
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}
