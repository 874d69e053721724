// SPDX-License-Identifier: Apache-2.0
package pick

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Sift/cmd/cmdutil"
	"github.com/Work-Fort/Sift/pkg/catalog"
	"github.com/Work-Fort/Sift/pkg/wizard"
	"github.com/spf13/cobra"
)

// Flags holds the CLI flags for non-interactive mode
type Flags struct {
	Category    string
	Subcategory string
	Features    []string
	Tags        []string
}

// Set reports whether any selection was given on the command line
func (f Flags) Set() bool {
	return f.Category != "" || f.Subcategory != "" || len(f.Features) > 0 || len(f.Tags) > 0
}

// NewPickCmd creates the pick command
func NewPickCmd() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Narrow the catalog down to a set of tags",
		Long: `Pick a category, a time and a set of features, then confirm the matching
items as tags.

Interactive mode (default when stdin is a terminal and use-tui is true):
  Launches a tabbed wizard with one pane per step.

Prompt mode (use-tui is false on a terminal):
  Asks one question per step.

Non-interactive mode (any selection flag given, or stdin is not a terminal):
  Runs the same steps from --category, --subcategory, --feature and --tag
  and prints the summary.`,
		Example: `  # Interactive wizard
  sift pick

  # Non-interactive
  sift pick --category E --subcategory summer --feature sweet --tag apple,grape

  # Skip time and features
  SIFT_PICK_QUICK_CONFIRM=true sift pick --category F --tag melon`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Features = cmdutil.SplitList(flags.Features)
			flags.Tags = cmdutil.SplitList(flags.Tags)
			return runPick(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Category, "category", "", "Category to pick")
	cmd.Flags().StringVar(&flags.Subcategory, "subcategory", "", "Time to pick within the category")
	cmd.Flags().StringSliceVar(&flags.Features, "feature", nil, "Feature to pick (repeatable)")
	cmd.Flags().StringSliceVar(&flags.Tags, "tag", nil, "Matching item to confirm, in order (repeatable)")

	return cmd
}

func runPick(ctx context.Context, flags Flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := cmdutil.ControllerOptions()
	if err != nil {
		return err
	}

	switch {
	case flags.Set() || !cmdutil.IsTerminal():
		c, err := cmdutil.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		summary, err := RunWithFlags(c, flags, opts...)
		if err != nil {
			return err
		}
		cmdutil.PrintSummary("Selection confirmed", summary)
		return nil

	case cmdutil.IsInteractive():
		return runInteractive(ctx, opts)

	default:
		c, err := cmdutil.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		summary, err := runPrompt(c, opts...)
		if err != nil {
			return err
		}
		cmdutil.PrintSummary("Selection confirmed", summary)
		return nil
	}
}

// runInteractive launches the Bubble Tea TUI wizard
func runInteractive(ctx context.Context, opts []wizard.ControllerOption) error {
	load := func() (*catalog.Catalog, error) {
		return cmdutil.LoadCatalog(ctx)
	}

	model, err := NewWizardModel(NewPage(), load, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if m, ok := final.(WizardModel); ok {
		if m.Err() != nil {
			return m.Err()
		}
		if m.Summary() == "" {
			cmdutil.PrintWarning("Quit without confirming a selection")
			return nil
		}
		cmdutil.PrintSummary("Selection confirmed", m.Summary())
	}
	return nil
}

// RunWithFlags drives the controller headlessly from flags and returns the
// finalized summary. Only options the wizard would display are accepted.
func RunWithFlags(c *catalog.Catalog, flags Flags, opts ...wizard.ControllerOption) (string, error) {
	if flags.Category == "" {
		return "", errors.New("--category is required in non-interactive mode")
	}
	if len(flags.Tags) == 0 {
		return "", errors.New("at least one --tag is required in non-interactive mode")
	}

	ctl := wizard.NewController(c, wizard.Renderers{}, opts...)
	ctl.Start()

	if err := ctl.PickCategory(flags.Category); err != nil {
		return "", withChoices(err, ctl, wizard.GroupCategory)
	}

	// quick confirm shows the tags as soon as a category is picked
	if len(ctl.Group(wizard.GroupTag).Options) == 0 {
		if err := pickToConfirmation(ctl, flags); err != nil {
			return "", err
		}
	}

	for _, tag := range flags.Tags {
		if err := ctl.ToggleTag(tag); err != nil {
			return "", withChoices(err, ctl, wizard.GroupTag)
		}
	}

	outcome, err := ctl.Fire()
	if err != nil {
		return "", fmt.Errorf("no tags confirmed: %w", err)
	}
	log.Debug("pick: finished from flags", "summary", outcome.Summary)
	return outcome.Summary, nil
}

// pickToConfirmation runs the subcategory and feature steps, then shows the
// confirmation group
func pickToConfirmation(ctl *wizard.Controller, flags Flags) error {
	if flags.Subcategory == "" {
		return errors.New("--subcategory is required in non-interactive mode")
	}
	if len(flags.Features) == 0 {
		return errors.New("at least one --feature is required in non-interactive mode")
	}

	if err := ctl.PickSubcategory(flags.Subcategory); err != nil {
		return withChoices(err, ctl, wizard.GroupSubcategory)
	}

	for _, f := range flags.Features {
		if err := ctl.ToggleFeature(f); err != nil {
			return withChoices(err, ctl, wizard.GroupFeature)
		}
	}

	if _, err := ctl.Fire(); err != nil {
		return fmt.Errorf("cannot show matching items: %w", err)
	}
	return nil
}

// withChoices adds the options that were on offer to an unknown option error
func withChoices(err error, ctl *wizard.Controller, kind wizard.GroupKind) error {
	if !errors.Is(err, wizard.ErrUnknownOption) {
		return err
	}
	return fmt.Errorf("%w (choices: %v)", err, ctl.Group(kind).Visible())
}
