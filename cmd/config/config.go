// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// globalFlag selects the user config instead of ./sift.yaml
	globalFlag bool
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sift configuration",
		Long: `Manage sift configuration settings.

Configuration precedence (highest to lowest):
  1. Environment variables (SIFT_*)
  2. Local config (./sift.yaml)
  3. User config (~/.config/sift/config.yaml)
  4. Defaults

By default, config commands operate on local config (./sift.yaml).
Use --global to operate on user config instead.`,
		Example: `  # Share the catalog and suppression policy with a directory
  sift config set catalog.source fruits.yaml
  sift config set features.suppression compatible

  # Personal preferences
  sift config set --global use-tui false
  sift config set --global ghost.cap-toggles false

  # Inspect
  sift config get catalog.source
  sift config list

  # Remove a value
  sift config unset features.suppression`,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// addGlobalFlag adds the --global flag to a command
func addGlobalFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&globalFlag, "global", false, "Operate on user config instead of local config")
}

// target describes the config file a write goes to
type target struct {
	scope config.ConfigScope
	name  string
	file  string
}

// currentTarget resolves --global into a scope and a display path
func currentTarget() target {
	if globalFlag {
		return target{
			scope: config.ScopeUser,
			name:  "global",
			file:  "~/.config/sift/" + config.ConfigFileName + config.DefaultConfigExt,
		}
	}
	return target{
		scope: config.ScopeRepo,
		name:  "local",
		file:  config.LocalConfigFile + config.DefaultConfigExt,
	}
}
