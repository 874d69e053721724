// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set configuration value",
		Long: `Set a configuration key to a value.

Keys use dot notation for nested values (e.g., catalog.timeout).

Boolean values support natural language:
  - true:  true, yes, on, enable, enabled
  - false: false, no, off, disable, disabled

Values are validated against the key registry before anything is written.
A local catalog.source must be a file inside the current directory.`,
		Args: cobra.ExactArgs(2),
		Example: `  sift config set catalog.source https://example.com/fruits.json
  sift config set catalog.timeout 30s
  sift config set pick.quick-confirm yes
  sift config set --global use-tui off`,
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			t := currentTarget()

			if err := config.SetConfigValue(key, value, t.scope); err != nil {
				return err
			}

			fmt.Println(config.CurrentTheme.SuccessMessage(
				fmt.Sprintf("Set %s = %s (%s: %s)", key, value, t.name, t.file)))
			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
