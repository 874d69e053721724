// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Sift/cmd/cmdutil"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/ui"
	"github.com/spf13/cobra"
)

func newUnsetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove configuration value",
		Long: `Remove a configuration key from a config file.

Removing a parent key removes all nested values (e.g., unsetting 'catalog'
removes 'catalog.source' and 'catalog.timeout'). Environment variables and
defaults still apply afterwards.

On a terminal you are asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		Example: `  sift config unset features.suppression
  sift config unset --global use-tui
  sift config unset catalog --yes`,
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			t := currentTarget()

			if !yes && cmdutil.IsTerminal() {
				ok, err := ui.Confirm(fmt.Sprintf("Remove %s from %s?", key, t.file))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(config.CurrentTheme.InfoMessage("Nothing removed"))
					return nil
				}
			}

			if err := config.UnsetConfigValue(key, t.scope); err != nil {
				return err
			}

			fmt.Printf("Removed %s from %s config (%s)\n", key, t.name, t.file)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	addGlobalFlag(cmd)
	return cmd
}
