// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	catalogCmd "github.com/Work-Fort/Sift/cmd/catalog"
	configCmd "github.com/Work-Fort/Sift/cmd/config"
	"github.com/Work-Fort/Sift/cmd/ghost"
	"github.com/Work-Fort/Sift/cmd/pick"
	"github.com/Work-Fort/Sift/cmd/version"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/ui"
	"github.com/spf13/cobra"
)

// Version is stamped by the release build:
// -ldflags "-X github.com/Work-Fort/Sift/cmd.Version=x.y.z"
var Version string

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Narrow a catalog down step by step",
	Long: `Sift - a terminal selection wizard

Pick a category, a time and a set of features from a catalog of tagged
items, then confirm the matching items. The ghost wizard walks through
three fixed stages with their own pick counts instead.

Runs as a tabbed terminal UI, as plain prompts, or headless from flags.`,
	SilenceUsage:  true,
	SilenceErrors: true, // Execute prints them themed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitDirs(); err != nil {
			return err
		}
		// flags are bound to viper, so this sees flag > ENV > files > default
		if err := config.LoadConfig(); err != nil {
			return err
		}
		return setupLogging(config.GetLogLevel())
	},
}

// setupLogging sends JSON logs to debug.log in the data dir
func setupLogging(levelName string) error {
	if levelName == "disabled" {
		log.SetOutput(io.Discard)
		return nil
	}

	level, err := log.ParseLevel(levelName)
	if err != nil {
		level = log.DebugLevel
	}

	// Always log to file in JSON format
	logFile := filepath.Join(config.GlobalPaths.DataDir, "debug.log")
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05.000Z07:00",
		Level:           level,
		ReportCaller:    true,
		Formatter:       log.JSONFormatter,
	})
	log.SetDefault(logger)

	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, config.CurrentTheme.ErrorStyle().Render("Error:"), err)
		os.Exit(1)
	}
}

// keyDefault returns a registered key's default for use as a flag default
func keyDefault(name string) any {
	k, _ := config.LookupKey(name)
	return k.Default
}

func init() {
	// stderr until setupLogging moves logs into debug.log
	log.SetReportTimestamp(false)
	log.SetLevel(log.InfoLevel)
	config.InitViper()

	flags := rootCmd.PersistentFlags()
	flags.StringP("log-level", "l", keyDefault("log-level").(string), "Log level: disabled, debug, info, warn, error")
	flags.Bool("use-tui", keyDefault("use-tui").(bool), "Use the full-screen terminal UI for wizards")
	flags.String("catalog", keyDefault("catalog.source").(string), "Catalog source: sample, an http(s) URL, or a JSON/YAML file")
	if err := config.BindFlags(flags); err != nil {
		log.Fatal("failed to bind flags", "err", err)
	}

	rootCmd.AddCommand(
		pick.NewPickCmd(),
		ghost.NewGhostCmd(),
		catalogCmd.NewCatalogCmd(),
		configCmd.NewConfigCmd(),
		version.NewVersionCmd(Version),
	)

	rootCmd.SetHelpFunc(styledHelpFunc)
	rootCmd.SetUsageFunc(styledUsageFunc)

	// Linux shells only; cobra's default also offers powershell
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newCompletionCmd())
}

// completionShells maps each supported shell to its generator and the line
// that loads the script into a running session
var completionShells = []struct {
	name string
	load string
	gen  func(root *cobra.Command, w io.Writer, desc bool) error
}{
	{"bash", "source <(sift completion bash)", func(root *cobra.Command, w io.Writer, desc bool) error {
		return root.GenBashCompletionV2(w, desc)
	}},
	{"fish", "sift completion fish | source", func(root *cobra.Command, w io.Writer, desc bool) error {
		return root.GenFishCompletion(w, desc)
	}},
	{"zsh", "source <(sift completion zsh)", func(root *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	}},
}

func newCompletionCmd() *cobra.Command {
	var noDesc bool
	completionCmd := &cobra.Command{
		Use:               "completion",
		Short:             "Generate the autocompletion script for the specified shell",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
	}
	completionCmd.PersistentFlags().BoolVar(&noDesc, "no-descriptions", false, "disable completion descriptions")

	for _, shell := range completionShells {
		completionCmd.AddCommand(&cobra.Command{
			Use:               shell.name,
			Short:             "Generate the autocompletion script for " + shell.name,
			Long:              "Load completions into the current shell session with:\n\n\t" + shell.load,
			Args:              cobra.NoArgs,
			ValidArgsFunction: cobra.NoFileCompletions,
			RunE: func(cmd *cobra.Command, args []string) error {
				return shell.gen(cmd.Root(), cmd.OutOrStdout(), !noDesc)
			},
		})
	}
	return completionCmd
}

// styledHelpFunc renders help output as markdown through glamour
func styledHelpFunc(cmd *cobra.Command, args []string) {
	renderMarkdown(generateHelpMarkdown(cmd))
}

// styledUsageFunc renders usage output as markdown through glamour
func styledUsageFunc(cmd *cobra.Command) error {
	renderMarkdown(generateUsageMarkdown(cmd))
	return nil
}

func generateHelpMarkdown(cmd *cobra.Command) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", cmd.Name())

	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	if desc != "" {
		md.WriteString(desc + "\n\n")
	}
	if cmd.Runnable() {
		fmt.Fprintf(&md, "## Usage\n\n```\n%s\n```\n\n", cmd.UseLine())
	}
	writeSections(&md, cmd, "##")

	fmt.Fprintf(&md, "Use `%s [command] --help` for more information about a command.\n", cmd.CommandPath())
	return md.String()
}

func generateUsageMarkdown(cmd *cobra.Command) string {
	var md strings.Builder
	md.WriteString("## Usage\n\n")
	if cmd.Runnable() {
		fmt.Fprintf(&md, "```\n%s\n```\n\n", cmd.UseLine())
	}
	writeSections(&md, cmd, "###")
	return md.String()
}

// writeSections appends subcommands and both flag sets under heading level h
func writeSections(md *strings.Builder, cmd *cobra.Command, h string) {
	var subs []string
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			subs = append(subs, fmt.Sprintf("- **%s** - %s", sub.Name(), sub.Short))
		}
	}
	if len(subs) > 0 {
		fmt.Fprintf(md, "%s Available Commands\n\n%s\n\n", h, strings.Join(subs, "\n"))
	}
	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(md, "%s Flags\n\n```\n%s\n```\n\n", h, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(md, "%s Global Flags\n\n```\n%s\n```\n\n", h, cmd.InheritedFlags().FlagUsages())
	}
}

// renderMarkdown prints markdown through glamour, or as is when that fails
func renderMarkdown(markdown string) {
	rendered, err := ui.RenderMarkdown(markdown, ui.TerminalWidth())
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(rendered)
}
