// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Stage is one fixed option set of the stage wizard. A selection is valid
// when Min <= count < Max.
type Stage struct {
	Name    string
	Options []string
	Min     int
	Max     int
}

// Valid reports whether count is inside the stage's range
func (s Stage) Valid(count int) bool {
	return count >= s.Min && count < s.Max
}

// DefaultStages returns the red, green and blue stages
func DefaultStages() []Stage {
	return []Stage{
		{Name: "red", Options: []string{"A", "B", "C", "D", "E"}, Min: 1, Max: 3},
		{Name: "green", Options: []string{"1", "2", "3", "4", "5"}, Min: 2, Max: 4},
		{Name: "blue", Options: []string{"あ", "い", "う", "え", "お"}, Min: 1, Max: 5},
	}
}

// StageOption customises a StageController
type StageOption func(*StageController)

// WithToggleCap refuses toggling an option on once a stage holds Max picks.
// Without it Max only gates advancing.
func WithToggleCap(enabled bool) StageOption {
	return func(s *StageController) {
		s.capToggles = enabled
	}
}

// StageController walks through fixed stages, each with its own selection
// count range
type StageController struct {
	stages     []Stage
	renderer   Renderer
	capToggles bool

	index  int
	counts []int
	active Set // picks of the current stage

	// every label ever selected, in first selection order
	picked    []string
	pickedSet Set
}

// NewStageController validates the stages and returns a controller on the first one
func NewStageController(stages []Stage, renderer Renderer, opts ...StageOption) (*StageController, error) {
	if len(stages) == 0 {
		return nil, errors.New("at least one stage is required")
	}
	for _, st := range stages {
		if st.Min < 0 || st.Max <= st.Min {
			return nil, fmt.Errorf("stage %q: invalid range [%d, %d)", st.Name, st.Min, st.Max)
		}
		if len(st.Options) == 0 {
			return nil, fmt.Errorf("stage %q: no options", st.Name)
		}
	}

	s := &StageController{
		stages:    slices.Clone(stages),
		renderer:  renderer,
		counts:    make([]int, len(stages)),
		active:    NewSet(),
		pickedSet: NewSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start displays the first stage
func (s *StageController) Start() {
	s.render()
}

// StageIndex returns the index of the current stage
func (s *StageController) StageIndex() int {
	return s.index
}

// Stage returns the current stage
func (s *StageController) Stage() Stage {
	return s.stages[s.index]
}

// Stages returns every stage
func (s *StageController) Stages() []Stage {
	return slices.Clone(s.stages)
}

// Final reports whether the current stage is the last one
func (s *StageController) Final() bool {
	return s.index == len(s.stages)-1
}

// Counts returns the number of active picks per stage
func (s *StageController) Counts() []int {
	return slices.Clone(s.counts)
}

// Picked returns every label ever selected, in selection order
func (s *StageController) Picked() []string {
	return slices.Clone(s.picked)
}

// Active reports whether option is selected in the current stage
func (s *StageController) Active(option string) bool {
	return s.active.Has(option)
}

// ToggleOption flips an option of the current stage and returns whether it
// ends up selected
func (s *StageController) ToggleOption(option string) (bool, error) {
	st := s.Stage()
	if !slices.Contains(st.Options, option) {
		return false, fmt.Errorf("option %q in stage %s: %w", option, st.Name, ErrUnknownOption)
	}

	if s.active.Has(option) {
		delete(s.active, option)
		s.counts[s.index]--
		log.Debug("stage: option cleared", "stage", st.Name, "option", option, "count", s.counts[s.index])
		return false, nil
	}

	if s.capToggles && s.counts[s.index] >= st.Max {
		log.Debug("stage: toggle capped", "stage", st.Name, "option", option, "max", st.Max)
		return false, nil
	}

	s.active[option] = struct{}{}
	s.counts[s.index]++
	if !s.pickedSet.Has(option) {
		s.pickedSet[option] = struct{}{}
		s.picked = append(s.picked, option)
	}

	log.Debug("stage: option selected", "stage", st.Name, "option", option, "count", s.counts[s.index])
	return true, nil
}

// IsSelectionValid reports whether the current stage's count is in range
func (s *StageController) IsSelectionValid() bool {
	return s.Stage().Valid(s.counts[s.index])
}

// Advance moves to the next stage and displays its options
func (s *StageController) Advance() error {
	if !s.IsSelectionValid() {
		st := s.Stage()
		return fmt.Errorf("stage %s has %d picks, need [%d, %d): %w",
			st.Name, s.counts[s.index], st.Min, st.Max, ErrSelectionInvalid)
	}
	if s.Final() {
		return ErrFinalStage
	}

	s.index++
	s.active = NewSet()
	s.render()

	log.Debug("stage: advanced", "stage", s.Stage().Name, "index", s.index)
	return nil
}

// Submit returns every label ever selected across all stages, joined in
// selection order. It is only available on a valid final stage.
func (s *StageController) Submit() (string, error) {
	if !s.Final() {
		return "", fmt.Errorf("submit: %w", ErrOutOfPhase)
	}
	if !s.IsSelectionValid() {
		return "", fmt.Errorf("submit: %w", ErrSelectionInvalid)
	}
	return strings.Join(s.picked, ", "), nil
}

// Trigger derives the action control for the current stage
func (s *StageController) Trigger() Trigger {
	t := Trigger{
		Visible: true,
		Enabled: s.IsSelectionValid(),
		Label:   LabelNext,
		Action:  ActionAdvanceStage,
	}
	if s.Final() {
		t.Label = LabelPost
		t.Action = ActionSubmitStages
	}
	return t
}

// Fire runs the action currently bound to the trigger
func (s *StageController) Fire() (Outcome, error) {
	t := s.Trigger()
	if !t.Ready() {
		return Outcome{Action: ActionInactive}, ErrTriggerInactive
	}

	switch t.Action {
	case ActionAdvanceStage:
		if err := s.Advance(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Action: t.Action}, nil
	case ActionSubmitStages:
		summary, err := s.Submit()
		if err != nil {
			return Outcome{}, err
		}
		log.Info("stage: submitted", "picked", summary)
		return Outcome{Action: t.Action, Summary: summary}, nil
	default:
		return Outcome{Action: ActionInactive}, ErrTriggerInactive
	}
}

func (s *StageController) render() {
	if s.renderer == nil {
		return
	}
	st := s.Stage()
	s.renderer.Render(OptionGroup{
		Kind:       GroupStage,
		Options:    st.Options,
		Suppressed: NewSet(),
		Selected:   s.active.Clone(),
	}, s.onPick)
}

func (s *StageController) onPick(option string, el Element) {
	selected, err := s.ToggleOption(option)
	if err != nil {
		log.Warn("stage: pick rejected", "option", option, "err", err)
		return
	}
	if el != nil {
		el.SetSelected(selected)
	}
}
