// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Sift/pkg/catalog"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/wizard"
	"golang.org/x/term"
)

// IsTerminal reports whether stdin is connected to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive checks if stdin is connected to a terminal AND the user wants TUI mode
func IsInteractive() bool {
	// Check both terminal capability and user preference
	return IsTerminal() && config.GetUseTUI()
}

// LoadCatalog reads the configured catalog source once. A failure here is a
// startup fault; callers return it without retrying.
func LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	source := config.GetCatalogSource()
	timeout := config.GetCatalogTimeout()

	log.Debug("loading catalog", "source", source, "timeout", timeout)

	c, err := catalog.Load(ctx, source, catalog.WithTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", source, err)
	}

	log.Info("catalog loaded", "source", source, "items", c.Len())
	return c, nil
}

// ControllerOptions builds the selection controller options from config
func ControllerOptions() ([]wizard.ControllerOption, error) {
	policy, err := wizard.ParseSuppressionPolicy(config.GetFeatureSuppression())
	if err != nil {
		return nil, fmt.Errorf("features.suppression: %w", err)
	}

	opts := []wizard.ControllerOption{wizard.WithSuppression(policy)}
	if config.GetQuickConfirm() {
		opts = append(opts, wizard.WithQuickConfirm())
	}
	return opts, nil
}

// SplitList flattens repeated and comma separated flag values, dropping blanks
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// PrintSummary prints a finished wizard's summary the way every mode reports it
func PrintSummary(title, summary string) {
	theme := config.CurrentTheme
	fmt.Println(theme.SuccessMessage(title))
	fmt.Println()
	fmt.Println(theme.CompleteIndicator() + " " + summary)
}

// PrintWarning prints a themed warning line, used when a wizard ends without a result
func PrintWarning(text string) {
	fmt.Println(config.CurrentTheme.WarningMessage(text))
}
