// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"fmt"
	"strings"

	"github.com/Work-Fort/Sift/cmd/cmdutil"
	"github.com/Work-Fort/Sift/pkg/catalog"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/ui"
	"github.com/spf13/cobra"
)

// NewCatalogCmd creates the catalog command
func NewCatalogCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "catalog [category]",
		Short: "Show the catalog the wizards pick from",
		Long: `Load the configured catalog and show its categories, times, features
and items. Give a category to show only that part.

The catalog comes from catalog.source: "sample" for the bundled fruit
catalog, an http(s) URL, or a JSON or YAML file.`,
		Example: `  sift catalog
  sift catalog F
  sift catalog --catalog ./fruits.yaml --raw`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cmdutil.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			var category string
			if len(args) == 1 {
				category = args[0]
			}

			md, err := Markdown(c, config.GetCatalogSource(), category)
			if err != nil {
				return err
			}

			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			rendered, err := ui.RenderMarkdown(md, ui.TerminalWidth())
			if err != nil {
				// Fallback to plain markdown if glamour fails
				rendered = md
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without styling")
	return cmd
}

// Markdown describes the catalog, or one category of it, as markdown
func Markdown(c *catalog.Catalog, source, category string) (string, error) {
	categories := c.Categories()
	if category != "" {
		if len(c.ItemsInCategory(category)) == 0 {
			return "", fmt.Errorf("unknown category %q (choices: %s)", category, strings.Join(categories, ", "))
		}
		categories = []string{category}
	}

	var md strings.Builder
	md.WriteString("# Catalog\n\n")
	md.WriteString(fmt.Sprintf("`%s`: %d items in %d categories\n\n", source, c.Len(), len(c.Categories())))

	for _, cat := range categories {
		md.WriteString(fmt.Sprintf("## %s\n\n", cell(cat)))

		md.WriteString("| Time | Features |\n|---|---|\n")
		for _, slot := range c.Subcategories(cat) {
			md.WriteString(fmt.Sprintf("| %s | %s |\n", cell(slot), cells(c.Features(cat, slot))))
		}
		md.WriteString("\n")

		md.WriteString("| Item | Time | Features |\n|---|---|---|\n")
		for _, id := range c.ItemsInCategory(cat) {
			item, _ := c.Item(id)
			md.WriteString(fmt.Sprintf("| %s | %s | %s |\n", cell(id), cells(item.Subcategories), cells(item.Features)))
		}
		md.WriteString("\n")
	}

	return md.String(), nil
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// cell makes catalog text safe inside a markdown table cell
func cell(s string) string {
	return cellReplacer.Replace(s)
}

func cells(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cell(v)
	}
	return strings.Join(out, ", ")
}
