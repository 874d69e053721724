// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"

	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/wizard"
)

// Button is one choice inside an OptionPane
type Button struct {
	id       string
	label    string
	selected bool
}

func (b *Button) ID() string                { return b.id }
func (b *Button) Label() string             { return b.label }
func (b *Button) Selected() bool            { return b.selected }
func (b *Button) SetSelected(selected bool) { b.selected = selected }

// PaneActivatedMsg is sent after a button of a pane was picked
type PaneActivatedMsg struct {
	PaneID string
	Option string
}

// OptionPane displays one option group as a vertical list of buttons. It
// implements wizard.Renderer; every Render replaces all buttons.
type OptionPane struct {
	id      string
	title   string
	accent  lipgloss.Color
	buttons []*Button
	cursor  int
	focused bool
	onPick  wizard.PickFunc
}

// NewOptionPane creates an empty pane. The id prefixes every button id.
func NewOptionPane(id, title string) *OptionPane {
	return &OptionPane{
		id:     id,
		title:  title,
		accent: config.CurrentTheme.GetPrimaryColor(),
	}
}

var _ wizard.Renderer = (*OptionPane)(nil)

// Render replaces the pane's buttons with one per visible option
func (p *OptionPane) Render(group wizard.OptionGroup, onPick wizard.PickFunc) {
	var current string
	if b := p.current(); b != nil {
		current = b.label
	}

	visible := group.Visible()
	seen := make(map[string]int, len(visible))

	p.buttons = make([]*Button, 0, len(visible))
	p.cursor = 0
	for i, option := range visible {
		if option == current {
			p.cursor = i
		}
		p.buttons = append(p.buttons, &Button{
			id:       p.elementID(option, i, seen),
			label:    option,
			selected: group.Selected.Has(option),
		})
	}
	p.onPick = onPick

	log.Debug("pane rendered", "pane", p.id, "group", group.Kind, "options", len(p.buttons))
}

// elementID derives a stable id from the option text, disambiguating
// options that slug to the same value
func (p *OptionPane) elementID(option string, index int, seen map[string]int) string {
	base := slug.Make(option)
	if base == "" {
		base = strconv.Itoa(index)
	}
	id := p.id + "-" + base

	seen[id]++
	if n := seen[id]; n > 1 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}

func (p *OptionPane) ID() string                 { return p.id }
func (p *OptionPane) Title() string              { return p.title }
func (p *OptionPane) SetTitle(title string)      { p.title = title }
func (p *OptionPane) Buttons() []*Button         { return p.buttons }
func (p *OptionPane) Len() int                   { return len(p.buttons) }
func (p *OptionPane) Cursor() int                { return p.cursor }
func (p *OptionPane) Focused() bool              { return p.focused }
func (p *OptionPane) Focus()                     { p.focused = true }
func (p *OptionPane) Blur()                      { p.focused = false }
func (p *OptionPane) SetAccent(c lipgloss.Color) { p.accent = c }

// Button returns the button with the given element id
func (p *OptionPane) Button(id string) *Button {
	for _, b := range p.buttons {
		if b.id == id {
			return b
		}
	}
	return nil
}

// Labels returns the displayed option labels in order
func (p *OptionPane) Labels() []string {
	out := make([]string, len(p.buttons))
	for i, b := range p.buttons {
		out[i] = b.label
	}
	return out
}

func (p *OptionPane) current() *Button {
	if p.cursor < 0 || p.cursor >= len(p.buttons) {
		return nil
	}
	return p.buttons[p.cursor]
}

// MoveUp moves the cursor to the previous button, wrapping around
func (p *OptionPane) MoveUp() {
	if len(p.buttons) == 0 {
		return
	}
	p.cursor = (p.cursor - 1 + len(p.buttons)) % len(p.buttons)
}

// MoveDown moves the cursor to the next button, wrapping around
func (p *OptionPane) MoveDown() {
	if len(p.buttons) == 0 {
		return
	}
	p.cursor = (p.cursor + 1) % len(p.buttons)
}

// Activate picks the button under the cursor. It reports false when the
// pane has nothing to pick.
func (p *OptionPane) Activate() (string, bool) {
	return p.ActivateIndex(p.cursor)
}

// ActivateIndex picks the i-th button
func (p *OptionPane) ActivateIndex(i int) (string, bool) {
	if i < 0 || i >= len(p.buttons) || p.onPick == nil {
		return "", false
	}
	p.cursor = i
	b := p.buttons[i]
	// onPick may re-render this pane; b stays valid for the callback
	p.onPick(b.label, b)
	return b.label, true
}

// Update handles navigation and pick keys while the pane is focused
func (p *OptionPane) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return nil
	}

	var (
		option string
		picked bool
	)
	switch key := keyMsg.String(); {
	case UpKey.Matches(key):
		p.MoveUp()
	case DownKey.Matches(key):
		p.MoveDown()
	case PickKey.Matches(key):
		option, picked = p.Activate()
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		option, picked = p.ActivateIndex(int(key[0] - '1'))
	}

	if !picked {
		return nil
	}
	id := p.id
	return func() tea.Msg {
		return PaneActivatedMsg{PaneID: id, Option: option}
	}
}

// View renders the pane with its border at the given content size
func (p *OptionPane) View(width, height int) string {
	theme := config.CurrentTheme

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.GetMutedColor())
	if p.focused {
		titleStyle = titleStyle.Foreground(p.accent)
	}

	lines := []string{titleStyle.Render(p.title), ""}
	if len(p.buttons) == 0 {
		lines = append(lines, theme.SubtleStyle().Render("(nothing to choose)"))
	}
	for i, b := range p.buttons {
		lines = append(lines, p.renderButton(i, b))
	}
	content := strings.Join(lines, "\n")

	if p.focused {
		return theme.ActivePaneStyle(width, height, p.accent).Render(content)
	}
	return theme.InactivePaneStyle(width, height).Render(content)
}

func (p *OptionPane) renderButton(i int, b *Button) string {
	theme := config.CurrentTheme

	mark := theme.UnselectedMark()
	if b.selected {
		mark = theme.SelectedMark()
	}

	pointer := "  "
	label := b.label
	if p.focused && i == p.cursor {
		pointer = lipgloss.NewStyle().Foreground(p.accent).Render("▸ ")
		label = lipgloss.NewStyle().Foreground(p.accent).Bold(true).Render(label)
	}
	return pointer + mark + " " + label
}

// RenderTrigger renders the action trigger as a button; a hidden trigger
// renders nothing
func RenderTrigger(t wizard.Trigger, focused bool) string {
	theme := config.CurrentTheme
	if !t.Visible {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Bold(true)

	switch {
	case !t.Enabled:
		style = style.BorderForeground(theme.GetMutedColor()).Foreground(theme.GetMutedColor())
	case focused:
		style = style.BorderForeground(theme.GetSecondaryColor()).Foreground(theme.GetSecondaryColor())
	default:
		style = style.BorderForeground(theme.GetPrimaryColor()).Foreground(theme.GetPrimaryColor())
	}
	return style.Render(t.Label)
}
