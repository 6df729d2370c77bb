package schema

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML or JSON definition. source only labels errors.
func Parse(data []byte, source string) (Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Document{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("%w (file %s)", err, source)
	}
	return doc, nil
}

// LoadFile reads and parses a definition from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a definition from fsys.
func LoadFS(fsys fs.FS, name string) (Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Marshal encodes a document as YAML.
func Marshal(doc Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return out, nil
}
