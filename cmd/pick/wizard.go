// SPDX-License-Identifier: Apache-2.0
package pick

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Sift/pkg/config"
	"github.com/Work-Fort/Sift/pkg/ui"
	"github.com/Work-Fort/Sift/pkg/wizard"
)

// Pane ids, one per option group
const (
	PaneCategory    = "category"
	PaneSubcategory = "time"
	PaneFeature     = "feature"
	PaneTag         = "tag"
)

var paneIDs = []string{PaneCategory, PaneSubcategory, PaneFeature, PaneTag}

// NewPage creates the page with the four panes of the catalog wizard
func NewPage() *ui.Page {
	return ui.NewPage(
		ui.NewOptionPane(PaneCategory, "Category"),
		ui.NewOptionPane(PaneSubcategory, "Time"),
		ui.NewOptionPane(PaneFeature, "Features"),
		ui.NewOptionPane(PaneTag, "Tags"),
	)
}

// WizardModel is the tabbed catalog wizard. Each tab mirrors one pane; the
// focused pane is the active tab.
type WizardModel struct {
	width  int
	height int

	tabs      []ui.Tab
	activeTab int
	panes     []*ui.OptionPane

	load    LoadFunc
	opts    []wizard.ControllerOption
	ctl     *wizard.Controller
	loading bool

	summary  string
	modal    *ui.ConfirmationForm
	quitting bool
	err      error
}

// NewWizardModel looks up the wizard's panes on page. A missing pane is a
// startup fault and is returned as an error.
func NewWizardModel(page *ui.Page, load LoadFunc, opts ...wizard.ControllerOption) (WizardModel, error) {
	panes, err := page.Lookup(paneIDs...)
	if err != nil {
		return WizardModel{}, err
	}

	tabs := make([]ui.Tab, len(panes))
	for i, pane := range panes {
		s := spinner.New()
		s.Spinner = spinner.Dot
		s.Style = lipgloss.NewStyle().Foreground(config.CurrentTheme.GetSecondaryColor())
		tabs[i] = ui.Tab{Title: pane.Title(), State: ui.TabPending, Spinner: s}
	}
	tabs[0].State = ui.TabActive
	tabs[0].Loading = true
	panes[0].Focus()

	return WizardModel{
		tabs:    tabs,
		panes:   panes,
		load:    load,
		opts:    opts,
		loading: true,
	}, nil
}

// Init implements tea.Model
func (m WizardModel) Init() tea.Cmd {
	return tea.Batch(m.tabs[0].Spinner.Tick, loadCatalog(m.load))
}

// loadCatalog runs the load off the update loop
func loadCatalog(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		c, err := load()
		return CatalogLoadedMsg{Catalog: c, Err: err}
	}
}

// Update implements tea.Model
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debugf("pick.Update: msg=%T activeTab=%d w=%d h=%d", msg, m.activeTab, m.width, m.height)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.tabs[m.activeTab].Spinner, cmd = m.tabs[m.activeTab].Spinner.Update(msg)
		return m, cmd

	case CatalogLoadedMsg:
		m.loading = false
		m.tabs[m.activeTab].Loading = false
		if msg.Err != nil {
			m.tabs[m.activeTab].State = ui.TabError
			m.err = msg.Err
			m.quitting = true
			return m, tea.Quit
		}
		m.ctl = wizard.NewController(msg.Catalog, wizard.Renderers{
			Category:    m.panes[0],
			Subcategory: m.panes[1],
			Feature:     m.panes[2],
			Tag:         m.panes[3],
		}, m.opts...)
		m.ctl.Start()
		m.syncTabs()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ui.PaneActivatedMsg:
		m.afterPick(msg.PaneID)
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

	// ctrl+c quits from anywhere
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modal != nil {
		if ui.DismissKey.Matches(key) {
			m.closeModal()
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
		m.closeModal()
		return m, nil
	}

	if ui.QuitKey.Matches(key) {
		m.quitting = true
		return m, tea.Quit
	}

	// panes are inert until the catalog is loaded
	if m.ctl == nil {
		return m, nil
	}

	switch {
	case ui.NextPaneKey.Matches(key):
		m.focus((m.activeTab + 1) % len(m.panes))
		return m, nil
	case ui.PrevPaneKey.Matches(key):
		m.focus((m.activeTab - 1 + len(m.panes)) % len(m.panes))
		return m, nil
	case ui.TriggerKey.Matches(key):
		return m.fire()
	}

	return m, m.panes[m.activeTab].Update(msg)
}

// afterPick refreshes the tabs and moves focus on after a single-choice pick
func (m *WizardModel) afterPick(paneID string) {
	m.syncTabs()

	switch paneID {
	case PaneCategory:
		if m.panes[1].Len() > 0 {
			m.focus(1)
		} else if m.panes[3].Len() > 0 {
			m.focus(3)
		}
	case PaneSubcategory:
		if m.panes[2].Len() > 0 {
			m.focus(2)
		}
	}
}

// fire runs the trigger's bound action
func (m WizardModel) fire() (tea.Model, tea.Cmd) {
	outcome, err := m.ctl.Fire()
	if err != nil {
		log.Debug("pick: trigger not ready", "err", err)
		return m, nil
	}

	m.syncTabs()
	if outcome.Action == wizard.ActionShowConfirmation {
		m.focus(3)
	}
	if !outcome.Terminal() {
		return m, nil
	}

	m.summary = outcome.Summary
	m.modal = ui.NewConfirmationForm("quit", "Done picking?", "Quit now or keep refining the selection.", "Quit", "Keep going")
	return m, m.modal.Init()
}

func (m *WizardModel) closeModal() {
	m.modal = nil
	m.summary = ""
}

// focus moves the focused pane and the active tab together
func (m *WizardModel) focus(i int) {
	m.panes[m.activeTab].Blur()
	m.activeTab = i
	m.panes[i].Focus()
	m.syncTabs()
}

// syncTabs derives tab states from the controller
func (m *WizardModel) syncTabs() {
	var done [4]bool
	if m.ctl != nil {
		st := m.ctl.State()
		done = [4]bool{
			st.Category != "",
			st.Subcategory != "",
			len(st.Features) > 0,
			len(st.ConfirmedTags) > 0,
		}
	}

	for i := range m.tabs {
		switch {
		case i == m.activeTab:
			m.tabs[i].State = ui.TabActive
		case done[i]:
			m.tabs[i].State = ui.TabComplete
		default:
			m.tabs[i].State = ui.TabPending
		}
	}
}

// Summary returns the finalized summary, empty until the trigger finalizes
func (m WizardModel) Summary() string {
	return m.summary
}

// Err returns the fault that ended the wizard, if any
func (m WizardModel) Err() error {
	return m.err
}

// View implements tea.Model
func (m WizardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	theme := config.CurrentTheme

	if m.modal != nil {
		body := m.modal.View() + "\n" + ui.ModalKeyBindings().Render(theme.SubtleStyle())
		return ui.RenderSummaryModal("Your selection", m.summary, body, m.width, m.height, 50)
	}

	tabsView := ui.RenderTabs(m.tabs, ui.TabsConfig{
		ActiveIndex: m.activeTab,
		Width:       m.width,
	})

	contentHeight := m.height - 4 // Account for tabs and padding
	content := ui.RenderTabContent(m.body(contentHeight), m.width-2, contentHeight)

	return ui.FillTerminal(lipgloss.JoinVertical(lipgloss.Left, tabsView, content), m.width, m.height)
}

// body renders the panes, the trigger and the key help
func (m WizardModel) body(contentHeight int) string {
	theme := config.CurrentTheme

	if m.loading {
		return m.tabs[m.activeTab].Spinner.View() + " Loading catalog..."
	}
	if m.ctl == nil {
		return theme.ErrorMessage(fmt.Sprintf("catalog unavailable: %v", m.err))
	}

	// inside the tab frame: 2 columns of padding each side
	innerWidth := m.width - 6
	dims := ui.CalculateContentHeight(
		contentHeight,
		map[string]int{"padding": 2, "paneBorder": 2, "trigger": 3},
		map[string]int{"instructionsLines": 1, "blankLines": 1},
		3,
	)
	cols := ui.CalculateColumnDimensions(innerWidth, dims.ContentHeight, len(m.panes))

	views := make([]string, 0, len(m.panes)*2)
	for i, pane := range m.panes {
		if i > 0 {
			views = append(views, " ")
		}
		views = append(views, pane.View(cols.PaneContentWidth, dims.ContentHeight))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, views...)}

	trigger := m.ctl.Trigger()
	rows = append(rows, ui.RenderTrigger(trigger, trigger.Ready()))

	if dims.ShowInstructions {
		for i := 0; i < dims.BlankLineCount; i++ {
			rows = append(rows, "")
		}
		rows = append(rows, ui.PickKeyBindings(trigger.Label).Render(theme.SubtleStyle()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
