// SPDX-License-Identifier: Apache-2.0
package pick

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/Work-Fort/Sift/pkg/catalog"
	"github.com/Work-Fort/Sift/pkg/ui"
	"github.com/Work-Fort/Sift/pkg/wizard"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a wizard whose catalog load has completed
func loadedModel(t *testing.T, opts ...wizard.ControllerOption) WizardModel {
	t.Helper()
	c := sampleCatalog(t)
	m, err := NewWizardModel(NewPage(), func() (*catalog.Catalog, error) { return c, nil }, opts...)
	if err != nil {
		t.Fatalf("NewWizardModel failed: %v", err)
	}
	updated, _ := m.Update(CatalogLoadedMsg{Catalog: c})
	return updated.(WizardModel)
}

// press sends a key and discards any command
func press(m WizardModel, msg tea.KeyMsg) WizardModel {
	updated, _ := m.Update(msg)
	return updated.(WizardModel)
}

// pick sends a key that must activate a pane button and feeds the resulting
// message back into the model
func pick(t *testing.T, m WizardModel, msg tea.KeyMsg) WizardModel {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(WizardModel)
	if cmd == nil {
		t.Fatalf("key %q did not activate a button", msg.String())
	}
	activated, ok := cmd().(ui.PaneActivatedMsg)
	if !ok {
		t.Fatalf("key %q produced %T, want PaneActivatedMsg", msg.String(), cmd())
	}
	updated, _ = m.Update(activated)
	return updated.(WizardModel)
}

func TestWizardModel_Init(t *testing.T) {
	m, err := NewWizardModel(NewPage(), func() (*catalog.Catalog, error) { return nil, nil })
	if err != nil {
		t.Fatalf("NewWizardModel failed: %v", err)
	}

	if len(m.tabs) != 4 {
		t.Errorf("expected 4 tabs, got %d", len(m.tabs))
	}
	if m.activeTab != 0 {
		t.Errorf("expected activeTab 0, got %d", m.activeTab)
	}
	if m.tabs[0].State != ui.TabActive || !m.tabs[0].Loading {
		t.Errorf("first tab should be active and loading, got %v loading=%v", m.tabs[0].State, m.tabs[0].Loading)
	}
	for i := 1; i < len(m.tabs); i++ {
		if m.tabs[i].State != ui.TabPending {
			t.Errorf("expected tab %d to be pending, got %v", i, m.tabs[i].State)
		}
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner and the catalog load")
	}
}

func TestNewWizardModel_MissingPane(t *testing.T) {
	page := ui.NewPage(ui.NewOptionPane(PaneCategory, "Category"))

	_, err := NewWizardModel(page, func() (*catalog.Catalog, error) { return nil, nil })
	if !errors.Is(err, ui.ErrContainerMissing) {
		t.Errorf("expected ErrContainerMissing, got %v", err)
	}
}

func TestLoadCatalog_DeliversMessage(t *testing.T) {
	loadErr := errors.New("unreachable")
	msg := loadCatalog(func() (*catalog.Catalog, error) { return nil, loadErr })()

	loaded, ok := msg.(CatalogLoadedMsg)
	if !ok {
		t.Fatalf("expected CatalogLoadedMsg, got %T", msg)
	}
	if !errors.Is(loaded.Err, loadErr) {
		t.Errorf("expected load error, got %v", loaded.Err)
	}
}

func TestWizardModel_LoadFailureIsFatal(t *testing.T) {
	m, _ := NewWizardModel(NewPage(), nil)

	updated, cmd := m.Update(CatalogLoadedMsg{Err: errors.New("boom")})
	m = updated.(WizardModel)

	if m.Err() == nil {
		t.Error("load failure should be kept as the wizard error")
	}
	if !m.quitting {
		t.Error("load failure should quit")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.tabs[0].State != ui.TabError {
		t.Errorf("active tab should show the error, got %v", m.tabs[0].State)
	}
}

func TestWizardModel_InertUntilLoaded(t *testing.T) {
	m, _ := NewWizardModel(NewPage(), nil)

	updated, cmd := m.Update(runes("1"))
	m = updated.(WizardModel)

	if cmd != nil {
		t.Error("keys should do nothing before the catalog is loaded")
	}
	if m.panes[0].Len() != 0 {
		t.Error("no options should be displayed before the catalog is loaded")
	}
}

func TestWizardModel_CatalogLoaded(t *testing.T) {
	m := loadedModel(t)

	if m.loading || m.tabs[0].Loading {
		t.Error("loading should stop once the catalog arrives")
	}
	if got := m.panes[0].Labels(); !slices.Equal(got, []string{"E", "F", "G"}) {
		t.Errorf("category pane = %v, want [E F G]", got)
	}
	for i := 1; i < len(m.panes); i++ {
		if m.panes[i].Len() != 0 {
			t.Errorf("pane %d should start empty", i)
		}
	}
}

func TestWizardModel_FullRun(t *testing.T) {
	m := loadedModel(t)

	m = pick(t, m, runes("1")) // E
	if m.activeTab != 1 {
		t.Fatalf("category pick should focus the time pane, activeTab=%d", m.activeTab)
	}
	if m.tabs[0].State != ui.TabComplete {
		t.Errorf("category tab should be complete, got %v", m.tabs[0].State)
	}
	if got := m.panes[1].Labels(); !slices.Equal(got, []string{"summer", "autumn", "spring", "winter"}) {
		t.Errorf("time pane = %v", got)
	}

	m = pick(t, m, runes("1")) // summer
	if m.activeTab != 2 {
		t.Fatalf("time pick should focus the feature pane, activeTab=%d", m.activeTab)
	}

	m = pick(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // sweet
	if got := m.panes[2].Labels(); !slices.Equal(got, []string{"sweet"}) {
		t.Errorf("other features should be suppressed, got %v", got)
	}
	if tr := m.ctl.Trigger(); !tr.Visible || tr.Label != wizard.LabelNext {
		t.Errorf("trigger = %+v, want visible NEXT", tr)
	}

	m = press(m, runes("n"))
	if m.activeTab != 3 {
		t.Fatalf("showing the matches should focus the tag pane, activeTab=%d", m.activeTab)
	}
	if got := m.panes[3].Labels(); !slices.Equal(got, []string{"apple", "grape"}) {
		t.Errorf("tag pane = %v, want [apple grape]", got)
	}

	m = pick(t, m, runes("2")) // grape
	m = pick(t, m, runes("1")) // apple
	if tr := m.ctl.Trigger(); tr.Label != wizard.LabelDone {
		t.Errorf("trigger label = %q, want DONE", tr.Label)
	}

	m = press(m, runes("n"))
	if m.Summary() != "grape, apple" {
		t.Errorf("summary = %q, want %q", m.Summary(), "grape, apple")
	}
	if m.modal == nil {
		t.Fatal("finalizing should open the summary modal")
	}

	updated, cmd := m.Update(runes("y"))
	m = updated.(WizardModel)
	if !m.quitting || cmd == nil {
		t.Error("confirming the modal should quit")
	}
}

func TestWizardModel_ModalKeepGoing(t *testing.T) {
	m := loadedModel(t, wizard.WithQuickConfirm())

	m = pick(t, m, runes("2")) // F shows its items directly
	if m.activeTab != 3 {
		t.Fatalf("quick confirm should focus the tag pane, activeTab=%d", m.activeTab)
	}
	m = pick(t, m, runes("3")) // melon
	m = press(m, runes("n"))
	if m.modal == nil || m.Summary() != "melon" {
		t.Fatalf("expected modal with summary melon, got %q", m.Summary())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil || m.quitting {
		t.Error("esc should dismiss the modal without quitting")
	}
	if got := m.ctl.State().ConfirmedTags; !slices.Equal(got, []string{"melon"}) {
		t.Errorf("dismissing should keep the selection, got %v", got)
	}
}

func TestWizardModel_PaneNavigation(t *testing.T) {
	m := loadedModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyTab}, 2},
		{tea.KeyMsg{Type: tea.KeyRight}, 3},
		{tea.KeyMsg{Type: tea.KeyRight}, 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 3},
	}

	for _, tt := range tests {
		m = press(m, tt.key)
		if m.activeTab != tt.want {
			t.Errorf("after %q activeTab = %d, want %d", tt.key.String(), m.activeTab, tt.want)
		}
		for i, pane := range m.panes {
			if pane.Focused() != (i == tt.want) {
				t.Errorf("after %q pane %d focused = %v", tt.key.String(), i, pane.Focused())
			}
		}
	}
}

func TestWizardModel_HiddenTriggerDoesNothing(t *testing.T) {
	m := loadedModel(t)

	m = press(m, runes("n"))
	if m.modal != nil || m.Summary() != "" {
		t.Error("an inactive trigger should not finalize")
	}
}

func TestWizardModel_Quitting(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(runes("q"))
	m = updated.(WizardModel)

	if !m.quitting {
		t.Error("expected quitting to be true")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestWizardModel_View(t *testing.T) {
	m, _ := NewWizardModel(NewPage(), nil)

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(WizardModel)
	if !strings.Contains(m.View(), "Loading catalog") {
		t.Error("View should show the loading state")
	}

	loaded := loadedModel(t)
	updated, _ = loaded.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := updated.(WizardModel).View()
	for _, want := range []string{"Category", "Time", "Features", "Tags", "E"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}
