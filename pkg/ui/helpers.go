// SPDX-License-Identifier: Apache-2.0
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/Work-Fort/Sift/pkg/config"
)

// LayoutDimensions holds calculated dimensions for a TUI layout
type LayoutDimensions struct {
	Width             int
	Height            int
	PaneContentWidth  int
	PaneRenderedWidth int
	ShowInstructions  bool
	BlankLineCount    int
	ContentHeight     int
}

// CalculateColumnDimensions splits the terminal width into equal columns
//
// Lipgloss width behavior (as of v1.1.1):
// - Style.Width(w) sets content width INCLUDING padding (padding is inside)
// - Border is rendered OUTSIDE of Style.Width() (adds to final render)
// - Actual rendered width = Style.Width() + border width
//
// Example for terminal width 130 and 4 columns:
// - Gaps between panes: 3 x 1 char
// - Target per pane: (130 - 3) / 4 = 31 chars rendered
// - Border overhead: 2 chars
// - Content width to set: 31 - 2 = 29 chars
func CalculateColumnDimensions(terminalWidth, terminalHeight, columns int) LayoutDimensions {
	if columns < 1 {
		columns = 1
	}
	const gap = 1
	paneRenderedWidth := (terminalWidth - gap*(columns-1)) / columns
	const borderWidth = 2 // All border types are 2 chars wide (1 per side)
	paneContentWidth := max(paneRenderedWidth-borderWidth, 1)

	return LayoutDimensions{
		Width:             terminalWidth,
		Height:            terminalHeight,
		PaneContentWidth:  paneContentWidth,
		PaneRenderedWidth: paneRenderedWidth,
	}
}

// CalculateContentHeight calculates available content height with graceful degradation
//
// Parameters:
//   - terminalHeight: total terminal height
//   - required: map of required UI elements and their line counts
//   - optional: map of optional UI elements and their line counts
//   - minContentHeight: minimum acceptable content height
//
// Returns dimensions with ShowInstructions and BlankLineCount set based on available space
func CalculateContentHeight(terminalHeight int, required, optional map[string]int, minContentHeight int) LayoutDimensions {
	// Calculate overheads
	requiredOverhead := 0
	for _, lines := range required {
		requiredOverhead += lines
	}

	optionalOverhead := 0
	for _, lines := range optional {
		optionalOverhead += lines
	}

	availableHeight := terminalHeight - requiredOverhead

	dims := LayoutDimensions{
		Height:           terminalHeight,
		ShowInstructions: false,
		BlankLineCount:   0,
	}

	// Determine what optional elements fit
	if availableHeight >= minContentHeight+optionalOverhead {
		// Enough room for everything
		dims.ShowInstructions = true
		dims.BlankLineCount = optional["blankLines"]
		dims.ContentHeight = availableHeight - optionalOverhead
	} else if availableHeight >= minContentHeight+optional["instructionsLines"]+1 {
		// Drop blank lines, keep instructions
		dims.ShowInstructions = true
		dims.BlankLineCount = 1
		dims.ContentHeight = availableHeight - optional["instructionsLines"] - 1
	} else if availableHeight >= minContentHeight {
		// Drop everything optional
		dims.ShowInstructions = false
		dims.BlankLineCount = 0
		dims.ContentHeight = availableHeight
	} else {
		// Below minimum - enforce minimum anyway
		dims.ContentHeight = minContentHeight
	}

	return dims
}

// RenderCenteredModal renders a modal overlay centered in the terminal
// Used for progress indicators, confirmations, etc.
func RenderCenteredModal(content string, width, height int, borderColor lipgloss.Color, modalWidth int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}

// RenderSummaryModal renders the interrupting notification shown when a
// wizard finishes: a title, the summary text and an optional body below it
func RenderSummaryModal(title, summary, body string, width, height, modalWidth int) string {
	theme := config.CurrentTheme

	titleStyled := lipgloss.NewStyle().
		Foreground(theme.GetPrimaryColor()).
		Bold(true).
		Render(title)

	summaryStyled := lipgloss.NewStyle().
		Foreground(theme.GetSecondaryColor()).
		Render("\n" + summary)

	parts := []string{titleStyled, summaryStyled}
	if body != "" {
		parts = append(parts, "\n"+body)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return RenderCenteredModal(content, width, height, theme.GetPrimaryColor(), modalWidth)
}

// FillTerminal uses lipgloss.Place to fill terminal dimensions and eliminate gaps
func FillTerminal(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

// ConfirmationForm wraps a huh.Form for reusable Yes/No confirmations
type ConfirmationForm struct {
	form *huh.Form
	key  string
}

// NewConfirmationForm creates a new confirmation form with Y/N quick keys
// key: the field key to retrieve the result
// title: the main question text
// description: optional explanation text
// affirmative: text for "Yes" option
// negative: text for "No" option
func NewConfirmationForm(key, title, description, affirmative, negative string) *ConfirmationForm {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(key).
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative(negative),
		),
	)

	return &ConfirmationForm{
		form: form,
		key:  key,
	}
}

// Init initializes the form and returns the initial command
func (cf *ConfirmationForm) Init() tea.Cmd {
	return cf.form.Init()
}

// Update handles form updates with Y/N/ESC quick key support
// Returns: (confirmed bool, shouldProceed bool, model, cmd)
// - If Y pressed: (true, true, ...)
// - If N pressed: (false, true, ...)
// - If ESC pressed: (false, false, ...) - cancelled
// - If form completed: (result, true, ...)
// - Otherwise: (false, false, ...) - still collecting input
func (cf *ConfirmationForm) Update(msg tea.Msg) (bool, bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			return true, true, nil
		case "n", "N":
			return false, true, nil
		case "esc":
			return false, false, nil
		}
	}

	form, cmd := cf.form.Update(msg)
	cf.form = form.(*huh.Form)

	// Check if form is complete (arrow keys + enter)
	if cf.form.State == huh.StateCompleted {
		confirmed := cf.form.GetBool(cf.key)
		return confirmed, true, cmd
	}

	return false, false, cmd
}

// View renders the form
func (cf *ConfirmationForm) View() string {
	return cf.form.View()
}
