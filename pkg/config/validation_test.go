// SPDX-License-Identifier: Apache-2.0
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp switches into a fresh temp dir for the duration of the test
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return tmpDir
}

func TestValidateRepoFilePath_ValidPaths(t *testing.T) {
	chdirTemp(t)

	testFiles := []string{
		"fruits.json",
		"catalogs/fruits.yaml",
		"catalogs/season/winter.json",
	}

	for _, file := range testFiles {
		if dir := filepath.Dir(file); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for _, file := range testFiles {
		t.Run(file, func(t *testing.T) {
			if err := validateRepoFilePath(file); err != nil {
				t.Errorf("validateRepoFilePath(%q) should accept valid file: %v", file, err)
			}
		})
	}
}

func TestValidateRepoFilePath_PathTraversal(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"parent directory", "../fruits.json"},
		{"nested parent", "../../catalogs/fruits.json"},
		{"mixed traversal", "catalogs/../../../other.json"},
		{"absolute unix", "/etc/fruits.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRepoFilePath(tt.path)
			if err == nil {
				t.Fatalf("validateRepoFilePath(%q) should reject path", tt.path)
			}
			if !strings.Contains(err.Error(), "outside repository") && !strings.Contains(err.Error(), "relative to repository") {
				t.Errorf("Error should mention path restriction: %v", err)
			}
		})
	}
}

func TestValidateRepoFilePath_NonExistentFile(t *testing.T) {
	chdirTemp(t)

	err := validateRepoFilePath("nonexistent.json")
	if err == nil {
		t.Fatal("validateRepoFilePath should reject non-existent file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Error should mention file doesn't exist: %v", err)
	}
}

func TestValidateRepoFilePath_Directory(t *testing.T) {
	chdirTemp(t)

	if err := os.Mkdir("catalogs", 0755); err != nil {
		t.Fatal(err)
	}

	err := validateRepoFilePath("catalogs")
	if err == nil {
		t.Fatal("validateRepoFilePath should reject directory")
	}
	if !strings.Contains(err.Error(), "directory") {
		t.Errorf("Error should mention directory: %v", err)
	}
}

func TestValidateSourcePath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "fruits.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := validateSourcePath(file); err != nil {
		t.Errorf("validateSourcePath should accept absolute file: %v", err)
	}
	if err := validateSourcePath(tmpDir); err == nil {
		t.Error("validateSourcePath should reject a directory")
	}
	if err := validateSourcePath(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("validateSourcePath should reject a missing file")
	}
}

func TestValidateValue_CatalogSourcePaths(t *testing.T) {
	tmpDir := chdirTemp(t)
	if err := os.WriteFile("fruits.json", []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	abs := filepath.Join(tmpDir, "fruits.json")

	tests := []struct {
		name    string
		value   string
		scope   ConfigScope
		wantErr bool
	}{
		{"relative in repo", "fruits.json", ScopeRepo, false},
		{"missing in repo", "other.json", ScopeRepo, true},
		{"traversal in repo", "../fruits.json", ScopeRepo, true},
		{"absolute in user", abs, ScopeUser, false},
		{"missing in user", filepath.Join(tmpDir, "other.json"), ScopeUser, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue("catalog.source", tt.value, tt.scope)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(catalog.source, %q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfigFile_RepoScope(t *testing.T) {
	chdirTemp(t)

	if err := validateConfigFile(ScopeRepo); err != nil {
		t.Errorf("missing repo config should be fine: %v", err)
	}

	if err := os.WriteFile("sift.yaml", []byte("features:\n  suppression: compatible\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := validateConfigFile(ScopeRepo); err != nil {
		t.Errorf("valid repo config rejected: %v", err)
	}

	if err := os.WriteFile("sift.yaml", []byte("use-tui: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := validateConfigFile(ScopeRepo)
	if err == nil {
		t.Fatal("use-tui in repo config should be rejected")
	}
	if !strings.Contains(err.Error(), "cannot be set in repo config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateConfigFile_ReportsFirstBadKeyByName(t *testing.T) {
	chdirTemp(t)

	doc := "log-level: loud\nfeatures:\n  suppression: loose\n"
	if err := os.WriteFile("sift.yaml", []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	err := validateConfigFile(ScopeRepo)
	if err == nil {
		t.Fatal("invalid values should be rejected")
	}
	if !strings.Contains(err.Error(), "features.suppression") {
		t.Errorf("keys are checked in name order, got %v", err)
	}
}

func TestValidateConfigFile_UnknownKey(t *testing.T) {
	useTempPaths(t)

	path := filepath.Join(GlobalPaths.ConfigDir, "config.yaml")
	if err := os.WriteFile(path, []byte("catalog:\n  sauce: sample\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := validateConfigFile(ScopeUser)
	if err == nil || !strings.Contains(err.Error(), "unknown configuration key: catalog.sauce") {
		t.Errorf("unknown nested key should be named, got %v", err)
	}
}
