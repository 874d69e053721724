// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Work-Fort/Sift/pkg/catalog"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/wizard"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	config.InitViper()
	t.Cleanup(viper.Reset)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"repeated flags", []string{"sweet", "red"}, []string{"sweet", "red"}},
		{"comma separated", []string{"grape, apple"}, []string{"grape", "apple"}},
		{"mixed with blanks", []string{"a,,b", " ", "c "}, []string{"a", "b", "c"}},
		{"nothing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("SplitList(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestControllerOptions_Defaults(t *testing.T) {
	resetViper(t)

	opts, err := ControllerOptions()
	if err != nil {
		t.Fatalf("ControllerOptions failed: %v", err)
	}
	if len(opts) != 1 {
		t.Errorf("expected only the suppression option by default, got %d", len(opts))
	}
}

func TestControllerOptions_FromEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("SIFT_FEATURES_SUPPRESSION", "compatible")
	t.Setenv("SIFT_PICK_QUICK_CONFIRM", "true")

	opts, err := ControllerOptions()
	if err != nil {
		t.Fatalf("ControllerOptions failed: %v", err)
	}

	c, err := catalog.Load(context.Background(), catalog.SourceSample)
	if err != nil {
		t.Fatalf("failed to load sample catalog: %v", err)
	}
	ctl := wizard.NewController(c, wizard.Renderers{}, opts...)
	ctl.Start()

	if err := ctl.PickCategory("F"); err != nil {
		t.Fatalf("PickCategory failed: %v", err)
	}
	if len(ctl.Group(wizard.GroupTag).Options) == 0 {
		t.Error("quick confirm should show the category's items right away")
	}
}

func TestControllerOptions_InvalidPolicy(t *testing.T) {
	resetViper(t)
	t.Setenv("SIFT_FEATURES_SUPPRESSION", "sometimes")

	_, err := ControllerOptions()
	if err == nil {
		t.Fatal("expected an error for an unknown policy")
	}
	if !strings.Contains(err.Error(), "features.suppression") {
		t.Errorf("error should name the config key, got %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	resetViper(t)

	c, err := LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Len() != 10 {
		t.Errorf("sample catalog should have 10 items, got %d", c.Len())
	}
}

func TestLoadCatalog_WrapsSource(t *testing.T) {
	resetViper(t)
	missing := filepath.Join(t.TempDir(), "nope.json")
	t.Setenv("SIFT_CATALOG_SOURCE", missing)

	_, err := LoadCatalog(context.Background())
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error should name the source, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap the read failure, got %v", err)
	}
}
