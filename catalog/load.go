// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Encoding is a catalog document syntax.
type Encoding string

// Supported encodings.
const (
	YAML Encoding = "yaml"
	TOML Encoding = "toml"
)

// EncodingOf picks the encoding from a file extension. Unknown extensions
// are read as YAML.
func EncodingOf(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return TOML
	default:
		return YAML
	}
}

// Parse decodes a catalog document. Unknown fields are rejected so typos in
// hand-written catalogs surface as errors.
func Parse(data []byte, enc Encoding) (Document, error) {
	var doc Document
	switch enc {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("catalog: decode toml: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("catalog: unknown encoding %q", enc)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Marshal encodes a document.
func Marshal(doc Document, enc Encoding) ([]byte, error) {
	switch enc {
	case TOML:
		return toml.Marshal(doc)
	case YAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("catalog: unknown encoding %q", enc)
}

// ReadFile reads and validates a catalog document.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("catalog: %w", err)
	}
	doc, err := Parse(data, EncodingOf(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load creates a catalog from a file.
func Load(path string) (*Catalog, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// DefaultDocument returns the built-in catalog document.
func DefaultDocument() Document {
	doc, err := Parse(defaultYAML, YAML)
	if err != nil {
		panic("catalog: built-in catalog: " + err.Error())
	}
	return doc
}

// Default creates a catalog from the built-in document.
func Default() *Catalog {
	c, _ := New(DefaultDocument())
	return c
}
