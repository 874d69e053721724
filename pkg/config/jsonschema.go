// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"strings"
)

const (
	schemaDraft = "https://json-schema.org/draft/2020-12/schema"

	// durationPattern matches what time.ParseDuration accepts for catalog.timeout
	durationPattern = `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`
	// repoSourcePattern keeps committed sources free of absolute paths
	repoSourcePattern = `^(sample|https?://.+|[^/].*)$`
)

// schemaNode is one object or value in the generated JSON Schema
type schemaNode struct {
	Schema               string                 `json:"$schema,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type"`
	Default              any                    `json:"default,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Examples             []string               `json:"examples,omitempty"`
	Properties           map[string]*schemaNode `json:"properties,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
}

// GenerateJSONSchemaForScope describes the keys one file accepts. A nil
// scope covers both files.
func GenerateJSONSchemaForScope(scope *ConfigScope) ([]byte, error) {
	root := newObject()
	root.Schema = schemaDraft
	root.Title = "Sift Configuration"
	root.Description = "Settings for the sift selection wizards"
	if scope != nil && *scope == ScopeUser {
		root.Title = "Sift User Configuration"
		root.Description = "Personal preferences in ~/.config/sift/config.yaml"
	} else if scope != nil {
		root.Title = "Sift Repo Configuration"
		root.Description = "Settings kept next to a catalog in ./sift.yaml"
	}

	for _, k := range Keys {
		if scope != nil && !k.AllowedIn(*scope) {
			continue
		}
		parent := root
		parts := strings.Split(k.Name, ".")
		for _, section := range parts[:len(parts)-1] {
			if parent.Properties[section] == nil {
				parent.Properties[section] = newObject()
			}
			parent = parent.Properties[section]
		}
		parent.Properties[parts[len(parts)-1]] = keyNode(k, scope)
	}

	return json.MarshalIndent(root, "", "  ")
}

// newObject returns an object node that rejects unknown keys
func newObject() *schemaNode {
	closed := false
	return &schemaNode{
		Type:                 "object",
		Properties:           map[string]*schemaNode{},
		AdditionalProperties: &closed,
	}
}

func keyNode(k Key, scope *ConfigScope) *schemaNode {
	n := &schemaNode{Type: "string", Description: k.Description, Default: k.Default}

	switch k.Kind {
	case KindBool:
		n.Type = "boolean"
	case KindEnum:
		n.Enum = k.Values
	case KindDuration:
		n.Pattern = durationPattern
		n.Examples = []string{"10s", "1m30s"}
	case KindSource:
		n.Examples = []string{SampleSource, "https://example.com/fruits.json", "catalogs/fruits.yaml"}
		if scope != nil && *scope == ScopeRepo {
			n.Pattern = repoSourcePattern
		}
	}
	return n
}
