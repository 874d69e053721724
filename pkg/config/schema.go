// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Kind is the shape of a setting's value
type Kind int

const (
	KindBool     Kind = iota // true/false
	KindEnum                 // one of Key.Values
	KindDuration             // positive Go duration string such as 10s or 1m30s
	KindSource               // sample, an http(s) URL or a catalog file
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindDuration:
		return "duration"
	case KindSource:
		return "source"
	}
	return "unknown"
}

// Key describes one sift setting
type Key struct {
	Name        string
	Kind        Kind
	Default     any
	Description string
	Values      []string // KindEnum
	UserOnly    bool     // personal preference, rejected in ./sift.yaml
}

// SampleSource names the built-in fruit catalog
const SampleSource = "sample"

// Keys lists every setting, sorted by name
var Keys = []Key{
	{
		Name:        "catalog.source",
		Kind:        KindSource,
		Default:     SampleSource,
		Description: "Catalog document: 'sample', an http(s) URL or a file path",
	},
	{
		Name:        "catalog.timeout",
		Kind:        KindDuration,
		Default:     "10s",
		Description: "Timeout for fetching a remote catalog (Go duration)",
	},
	{
		Name:        "features.suppression",
		Kind:        KindEnum,
		Default:     "exclusive",
		Description: "Which features stay offered once one is picked: exclusive or compatible",
		Values:      []string{"exclusive", "compatible"},
	},
	{
		Name:        "ghost.cap-toggles",
		Kind:        KindBool,
		Default:     true,
		Description: "Refuse selecting more options than a stage allows",
	},
	{
		Name:        "log-level",
		Kind:        KindEnum,
		Default:     "debug",
		Description: "Log verbosity level",
		Values:      []string{"disabled", "debug", "info", "warn", "error"},
	},
	{
		Name:        "pick.quick-confirm",
		Kind:        KindBool,
		Default:     false,
		Description: "Show matching items right after a category pick, skipping time and features",
	},
	{
		Name:        "use-tui",
		Kind:        KindBool,
		Default:     true,
		Description: "Use the full-screen TUI for interactive wizards (prompts otherwise)",
		UserOnly:    true,
	},
}

// LookupKey returns the setting registered under name
func LookupKey(name string) (Key, bool) {
	i := slices.IndexFunc(Keys, func(k Key) bool { return k.Name == name })
	if i < 0 {
		return Key{}, false
	}
	return Keys[i], true
}

// AllowedIn reports whether the key may be written to the scope's file
func (k Key) AllowedIn(scope ConfigScope) bool {
	return !(k.UserOnly && scope == ScopeRepo)
}

// ValidateKeyScope checks that key exists and may be set in scope
func ValidateKeyScope(key string, scope ConfigScope) error {
	k, ok := LookupKey(key)
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if !k.AllowedIn(scope) {
		return fmt.Errorf("key '%s' cannot be set in repo config (personal setting)\n\n"+
			"Hint: sift config set --global %s <value>", key, key)
	}
	return nil
}

// ValidateValue checks a decoded value against the key's kind. Catalog file
// paths must exist; in repo scope they must also stay inside the repository.
func ValidateValue(key string, value any, scope ConfigScope) error {
	k, ok := LookupKey(key)
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	if k.Kind == KindBool {
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("key '%s' must be a boolean", key)
		}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("key '%s' must be a string", key)
	}

	switch k.Kind {
	case KindEnum:
		if !slices.Contains(k.Values, str) {
			return fmt.Errorf("key '%s' must be one of %s (got '%s')", key, strings.Join(k.Values, ", "), str)
		}

	case KindDuration:
		d, err := time.ParseDuration(str)
		if err != nil {
			return fmt.Errorf("key '%s': %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("key '%s' must be positive", key)
		}

	case KindSource:
		if str == SampleSource || isURL(str) {
			return nil
		}
		check := validateSourcePath
		if scope == ScopeRepo {
			check = validateRepoFilePath
		}
		if err := check(str); err != nil {
			return fmt.Errorf("key '%s': %w", key, err)
		}
	}

	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// validateSourcePath accepts any existing regular file
func validateSourcePath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path points to a directory; must be a file")
	}
	return nil
}

// validateRepoFilePath accepts an existing file given relative to the
// repository root, without leaving it
func validateRepoFilePath(path string) error {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("path must be relative to repository root")
	}
	if !filepath.IsLocal(cleaned) {
		return fmt.Errorf("path must not reach outside repository (no '../' allowed)")
	}
	if err := validateSourcePath(cleaned); err != nil {
		return fmt.Errorf("in repo: %w", err)
	}
	return nil
}
