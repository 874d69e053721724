// SPDX-License-Identifier: Apache-2.0
package pick

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/Work-Fort/Sift/pkg/catalog"
	"github.com/Work-Fort/Sift/pkg/wizard"
)

// doneOption ends the feature loop of prompt mode
const doneOption = "(done)"

// runPrompt asks one question per step with huh forms, driving the same
// controller as the TUI
func runPrompt(c *catalog.Catalog, opts ...wizard.ControllerOption) (string, error) {
	ctl := wizard.NewController(c, wizard.Renderers{}, opts...)
	ctl.Start()

	category, err := selectOne("Category", ctl.Group(wizard.GroupCategory).Visible())
	if err != nil {
		return "", err
	}
	if err := ctl.PickCategory(category); err != nil {
		return "", err
	}

	if len(ctl.Group(wizard.GroupTag).Options) == 0 {
		slot, err := selectOne("Time", ctl.Group(wizard.GroupSubcategory).Visible())
		if err != nil {
			return "", err
		}
		if err := ctl.PickSubcategory(slot); err != nil {
			return "", err
		}

		if err := promptFeatures(ctl); err != nil {
			return "", err
		}
		if _, err := ctl.Fire(); err != nil {
			return "", err
		}
	}

	tags := ctl.Group(wizard.GroupTag).Visible()
	if len(tags) == 0 {
		return "", errors.New("no items match the selection")
	}

	var picked []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tags").
				Description("Matching items, confirmed in the order listed").
				Options(huh.NewOptions(tags...)...).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return errors.New("pick at least one tag")
					}
					return nil
				}).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}

	for _, tag := range picked {
		if err := ctl.ToggleTag(tag); err != nil {
			return "", err
		}
	}

	outcome, err := ctl.Fire()
	if err != nil {
		return "", err
	}
	return outcome.Summary, nil
}

// promptFeatures toggles one feature per question until the user is done.
// Each question only offers features the controller still displays.
func promptFeatures(ctl *wizard.Controller) error {
	for {
		group := ctl.Group(wizard.GroupFeature)
		options := group.Visible()
		if group.Selected.Len() > 0 {
			options = append(options, doneOption)
		}
		if len(options) == 0 {
			return errors.New("no features to pick")
		}

		title := fmt.Sprintf("Features (%d picked)", group.Selected.Len())
		choice, err := selectOne(title, options)
		if err != nil {
			return err
		}
		if choice == doneOption {
			return nil
		}
		if err := ctl.ToggleFeature(choice); err != nil {
			return err
		}
	}
}

func selectOne(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: nothing to choose", title)
	}

	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(huh.NewOptions(options...)...).
				Value(&choice),
		),
	).Run()
	return choice, err
}
