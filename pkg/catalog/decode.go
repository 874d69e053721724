// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a catalog document
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Document attribute names
const (
	fieldCategory    = "type"
	fieldSubcategory = "time"
	fieldFeature     = "feature"
)

// ErrNotObject is returned when the top level of a document is not a mapping
var ErrNotObject = errors.New("catalog document must be an object of items")

// DetectFormat picks a format from a file name or URL path and an optional
// content type. JSON is the fallback.
func DetectFormat(name, contentType string) Format {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "yaml") {
		return FormatYAML
	}
	if strings.Contains(ct, "json") {
		return FormatJSON
	}

	// Strip any query string before looking at the extension
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a catalog document. Item attributes that are missing or of
// the wrong shape decode as empty values; only a malformed top level fails.
func Parse(data []byte, format Format) (*Catalog, error) {
	var (
		items []Item
		err   error
	)
	switch format {
	case FormatYAML:
		items, err = decodeYAML(data)
	default:
		items, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}
	return New(items), nil
}

// decodeJSON walks the top-level object token by token to keep document order
func decodeJSON(data []byte) ([]Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrNotObject)
	}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var items []Item
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read item key: %w", err)
		}
		id, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to read item %q: %w", id, err)
		}
		items = append(items, itemFromJSON(id, raw))
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return items, nil
}

func itemFromJSON(id string, raw json.RawMessage) Item {
	item := Item{ID: id}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return item
	}

	_ = json.Unmarshal(fields[fieldCategory], &item.Category)
	item.Subcategories = jsonStrings(fields[fieldSubcategory])
	item.Features = jsonStrings(fields[fieldFeature])
	return item
}

// jsonStrings keeps the string members of an array and drops everything else
func jsonStrings(raw json.RawMessage) []string {
	var members []json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil
	}
	out := make([]string, 0, len(members))
	for _, m := range members {
		var s string
		if bytes.Equal(m, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(m, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func decodeYAML(data []byte) ([]Item, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrNotObject)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}

	items := make([]Item, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		items = append(items, itemFromYAML(root.Content[i].Value, root.Content[i+1]))
	}
	return items, nil
}

func itemFromYAML(id string, node *yaml.Node) Item {
	item := Item{ID: id}
	if node.Kind != yaml.MappingNode {
		return item
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		value := node.Content[i+1]
		switch node.Content[i].Value {
		case fieldCategory:
			if isYAMLString(value) {
				item.Category = value.Value
			}
		case fieldSubcategory:
			item.Subcategories = yamlStrings(value)
		case fieldFeature:
			item.Features = yamlStrings(value)
		}
	}
	return item
}

func yamlStrings(node *yaml.Node) []string {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for _, m := range node.Content {
		if isYAMLString(m) {
			out = append(out, m.Value)
		}
	}
	return out
}

func isYAMLString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!str"
}
