// SPDX-License-Identifier: Apache-2.0
package ghost

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/ui"
	"github.com/Work-Fort/Sift/pkg/wizard"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PaneOptions is the id of the single option pane
const PaneOptions = "options"

// NewPage creates the page of the stage wizard
func NewPage() *ui.Page {
	return ui.NewPage(ui.NewOptionPane(PaneOptions, "Options"))
}

// WizardModel walks through the stages. Every stage has a tab; the option
// pane always shows the current stage.
type WizardModel struct {
	width  int
	height int

	tabs      []ui.Tab
	activeTab int
	pane      *ui.OptionPane
	ctl       *wizard.StageController

	summary  string
	modal    *ui.ConfirmationForm
	quitting bool
}

// NewWizardModel creates the stage wizard on page
func NewWizardModel(page *ui.Page, stages []wizard.Stage, opts ...wizard.StageOption) (WizardModel, error) {
	pane, err := page.Pane(PaneOptions)
	if err != nil {
		return WizardModel{}, err
	}

	ctl, err := wizard.NewStageController(stages, pane, opts...)
	if err != nil {
		return WizardModel{}, err
	}

	title := cases.Title(language.Und)
	theme := config.CurrentTheme
	tabs := make([]ui.Tab, len(stages))
	for i, st := range stages {
		tabs[i] = ui.Tab{
			Title:  title.String(st.Name),
			State:  ui.TabPending,
			Accent: theme.GetStageColor(st.Name),
		}
	}

	m := WizardModel{tabs: tabs, pane: pane, ctl: ctl}
	pane.Focus()
	ctl.Start()
	m.syncStage()
	return m, nil
}

// Init implements tea.Model
func (m WizardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debugf("ghost.Update: msg=%T stage=%d w=%d h=%d", msg, m.activeTab, m.width, m.height)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ui.PaneActivatedMsg:
		m.syncStage()
		return m, nil
	}

	if m.modal != nil {
		_, _, cmd := m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modal != nil {
		if ui.DismissKey.Matches(key) {
			m.modal = nil
			return m, nil
		}
		confirmed, proceed, cmd := m.modal.Update(msg)
		if !proceed {
			return m, cmd
		}
		if confirmed {
			m.quitting = true
			return m, tea.Quit
		}
		m.modal = nil
		return m, nil
	}

	switch {
	case ui.QuitKey.Matches(key):
		m.quitting = true
		return m, tea.Quit
	case ui.TriggerKey.Matches(key):
		return m.fire()
	}

	return m, m.pane.Update(msg)
}

func (m WizardModel) fire() (tea.Model, tea.Cmd) {
	outcome, err := m.ctl.Fire()
	if err != nil {
		log.Debug("ghost: trigger not ready", "err", err)
		return m, nil
	}

	m.syncStage()
	if !outcome.Terminal() {
		return m, nil
	}

	m.summary = outcome.Summary
	m.modal = ui.NewConfirmationForm("quit", "Posted", "Quit now or keep adjusting the last stage.", "Quit", "Keep going")
	return m, m.modal.Init()
}

// syncStage points the active tab and the pane accent at the current stage
func (m *WizardModel) syncStage() {
	m.activeTab = m.ctl.StageIndex()
	for i := range m.tabs {
		switch {
		case i < m.activeTab:
			m.tabs[i].State = ui.TabComplete
		case i == m.activeTab:
			m.tabs[i].State = ui.TabActive
		default:
			m.tabs[i].State = ui.TabPending
		}
	}

	st := m.ctl.Stage()
	m.pane.SetAccent(m.tabs[m.activeTab].Accent)
	m.pane.SetTitle(fmt.Sprintf("%s  %d picked, need %d to %d", m.tabs[m.activeTab].Title, m.ctl.Counts()[m.activeTab], st.Min, st.Max-1))
}

// Summary returns the submitted labels, empty until POST
func (m WizardModel) Summary() string {
	return m.summary
}

// View implements tea.Model
func (m WizardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	theme := config.CurrentTheme

	if m.modal != nil {
		body := m.modal.View() + "\n" + ui.ModalKeyBindings().Render(theme.SubtleStyle())
		return ui.RenderSummaryModal("Selected", m.summary, body, m.width, m.height, 50)
	}

	tabsView := ui.RenderTabs(m.tabs, ui.TabsConfig{
		ActiveIndex: m.activeTab,
		Width:       m.width,
	})

	contentHeight := m.height - 4 // Account for tabs and padding
	innerWidth := m.width - 6

	trigger := m.ctl.Trigger()
	rows := []string{
		theme.RenderHeader(innerWidth, "GHOST", strings.ToUpper(m.ctl.Stage().Name)),
		"",
		m.pane.View(min(innerWidth-2, 40), max(len(m.ctl.Stage().Options)+2, contentHeight-12)),
		ui.RenderTrigger(trigger, trigger.Ready()),
		"",
		theme.RenderFooter(innerWidth, ui.StageKeyBindings(trigger.Label).RenderInline(lipgloss.NewStyle())),
	}

	content := ui.RenderTabContent(lipgloss.JoinVertical(lipgloss.Left, rows...), m.width-2, contentHeight)
	return ui.FillTerminal(lipgloss.JoinVertical(lipgloss.Left, tabsView, content), m.width, m.height)
}
