// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"

	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var outputFile string
	var scopeFlag string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export configuration schema",
		Long: `Export the configuration schema in JSON Schema Draft 2020-12 format,
for editor completion and validation of sift.yaml and the user config.

Use --scope to limit the schema to the keys allowed in one file.`,
		Example: `  sift config schema
  sift config schema --scope repo --output sift.schema.json

  # .vscode/settings.json
  {
    "yaml.schemas": {
      "./sift.schema.json": "sift.yaml"
    }
  }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parseScope(scopeFlag)
			if err != nil {
				return err
			}

			schema, err := config.GenerateJSONSchemaForScope(scope)
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			if outputFile == "" {
				fmt.Println(string(schema))
				return nil
			}
			if err := os.WriteFile(outputFile, schema, 0644); err != nil {
				return fmt.Errorf("failed to write schema to file: %w", err)
			}
			fmt.Printf("Schema written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write schema to file instead of stdout")
	cmd.Flags().StringVar(&scopeFlag, "scope", "", "Filter by scope: user or repo (default: all)")

	return cmd
}

// parseScope maps --scope to a config scope; empty means every key
func parseScope(s string) (*config.ConfigScope, error) {
	var scope config.ConfigScope
	switch s {
	case "":
		return nil, nil
	case "user":
		scope = config.ScopeUser
	case "repo":
		scope = config.ScopeRepo
	default:
		return nil, fmt.Errorf("invalid scope: %s (must be 'user' or 'repo')", s)
	}
	return &scope, nil
}
