// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configuration values",
		Long: `List every configuration key with its value and source
(ENV, local config, user config, or default).

Output format: key = value (source)`,
		Example: `  sift config list

  # catalog.source = sample (default)
  # catalog.timeout = 10s (default)
  # features.suppression = compatible (from ./sift.yaml)
  # use-tui = false (from ENV: SIFT_USE_TUI)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := config.ListConfigValues()
			if err != nil {
				return err
			}

			for _, cv := range values {
				fmt.Printf("%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			}

			fmt.Println("\n" + config.CurrentTheme.SubtleStyle().Render("Configuration precedence: ENV > local config > user config > defaults"))
			return nil
		},
	}
}
