// SPDX-License-Identifier: Apache-2.0
package ghost

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Sift/cmd/cmdutil"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/wizard"
	"github.com/spf13/cobra"
)

// NewGhostCmd creates the ghost command
func NewGhostCmd() *cobra.Command {
	var stageFlags []string

	cmd := &cobra.Command{
		Use:   "ghost",
		Short: "Pick from three fixed stages, each with its own count range",
		Long: `Walk through the red, green and blue stages. Each stage needs a number
of picks inside its range before NEXT advances; POST on the last stage
reports every label ever picked, in picking order.

  red    A-E      1 to 2 picks
  green  1-5      2 to 3 picks
  blue   あ-お    1 to 4 picks

Non-interactive mode (--stage given, or stdin is not a terminal):
  Pass one --stage per stage with a comma separated list of picks.`,
		Example: `  # Interactive wizard
  sift ghost

  # Non-interactive
  sift ghost --stage A,C --stage 2,4 --stage う`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGhost(stageFlags)
		},
	}

	// StringArray keeps each occurrence whole so commas group picks per stage
	cmd.Flags().StringArrayVar(&stageFlags, "stage", nil, "Comma separated picks for one stage (repeat once per stage)")

	return cmd
}

func stageOptions() []wizard.StageOption {
	return []wizard.StageOption{wizard.WithToggleCap(config.GetGhostCapToggles())}
}

func runGhost(stageFlags []string) error {
	stages := wizard.DefaultStages()
	opts := stageOptions()

	var (
		summary string
		err     error
	)
	switch {
	case len(stageFlags) > 0 || !cmdutil.IsTerminal():
		summary, err = RunWithFlags(stages, splitStages(stageFlags), opts...)
	case cmdutil.IsInteractive():
		return runInteractive(stages, opts)
	default:
		summary, err = runPrompt(stages, opts...)
	}
	if err != nil {
		return err
	}

	cmdutil.PrintSummary("Posted", summary)
	return nil
}

func splitStages(values []string) [][]string {
	out := make([][]string, len(values))
	for i, v := range values {
		out[i] = cmdutil.SplitList([]string{v})
	}
	return out
}

// runInteractive launches the Bubble Tea TUI wizard
func runInteractive(stages []wizard.Stage, opts []wizard.StageOption) error {
	model, err := NewWizardModel(NewPage(), stages, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if m, ok := final.(WizardModel); ok {
		if m.Summary() == "" {
			cmdutil.PrintWarning("Quit before posting")
			return nil
		}
		cmdutil.PrintSummary("Posted", m.Summary())
	}
	return nil
}

// RunWithFlags toggles picks stage by stage and fires the trigger after each
// stage. It returns the submitted summary.
func RunWithFlags(stages []wizard.Stage, picks [][]string, opts ...wizard.StageOption) (string, error) {
	if len(picks) != len(stages) {
		return "", fmt.Errorf("need one --stage per stage: got %d, want %d", len(picks), len(stages))
	}

	ctl, err := wizard.NewStageController(stages, nil, opts...)
	if err != nil {
		return "", err
	}
	ctl.Start()

	var outcome wizard.Outcome
	for _, stagePicks := range picks {
		if err := toggleAll(ctl, stagePicks); err != nil {
			return "", err
		}

		outcome, err = ctl.Fire()
		if err != nil {
			return "", err
		}
	}

	if !outcome.Terminal() {
		return "", errors.New("stages finished without a submission")
	}
	log.Debug("ghost: finished from flags", "summary", outcome.Summary)
	return outcome.Summary, nil
}

// toggleAll toggles every pick of the current stage and checks the count
func toggleAll(ctl *wizard.StageController, picks []string) error {
	st := ctl.Stage()
	for _, p := range picks {
		if _, err := ctl.ToggleOption(p); err != nil {
			return fmt.Errorf("%w (choices: %s)", err, strings.Join(st.Options, " "))
		}
	}

	if !ctl.IsSelectionValid() {
		return fmt.Errorf("stage %s has %d picks, need %d to %d: %w",
			st.Name, ctl.Counts()[ctl.StageIndex()], st.Min, st.Max-1, wizard.ErrSelectionInvalid)
	}
	return nil
}

// runPrompt asks for each stage's picks with a huh multi-select
func runPrompt(stages []wizard.Stage, opts ...wizard.StageOption) (string, error) {
	ctl, err := wizard.NewStageController(stages, nil, opts...)
	if err != nil {
		return "", err
	}
	ctl.Start()

	for {
		st := ctl.Stage()

		var picked []string
		field := huh.NewMultiSelect[string]().
			Title(fmt.Sprintf("%s: pick %d to %d", strings.ToUpper(st.Name), st.Min, st.Max-1)).
			Options(huh.NewOptions(st.Options...)...).
			Validate(func(v []string) error {
				if !st.Valid(len(v)) {
					return fmt.Errorf("pick %d to %d", st.Min, st.Max-1)
				}
				return nil
			}).
			Value(&picked)
		if config.GetGhostCapToggles() {
			field = field.Limit(st.Max)
		}

		if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
			return "", err
		}
		if err := toggleAll(ctl, picked); err != nil {
			return "", err
		}

		outcome, err := ctl.Fire()
		if err != nil {
			return "", err
		}
		if outcome.Terminal() {
			return outcome.Summary, nil
		}
	}
}
