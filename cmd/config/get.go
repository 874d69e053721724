// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get a configuration value and show where it comes from.

Sources in precedence order:
  - ENV: Environment variable (SIFT_*)
  - Local: ./sift.yaml
  - User: ~/.config/sift/config.yaml
  - Default: Built-in default value`,
		Args: cobra.ExactArgs(1),
		Example: `  sift config get catalog.source
  # catalog.source = sample (default)

  SIFT_FEATURES_SUPPRESSION=compatible sift config get features.suppression
  # features.suppression = compatible (from ENV: SIFT_FEATURES_SUPPRESSION)`,
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := config.GetConfigValue(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			return nil
		},
	}
}

// completeKeys offers registry keys for shell completion
func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := make([]string, 0, len(config.Keys))
	for _, k := range config.Keys {
		keys = append(keys, k.Name+"\t"+k.Description)
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
