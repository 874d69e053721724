// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeyBinding represents a single key action
type KeyBinding struct {
	Key         string   // Display name: "ENTER", "TAB", "←/→"
	Keys        []string // Actual keys to match: ["enter", " "], ["tab"]
	Description string   // What it does
}

// Matches reports whether key is one of the binding's keys
func (kb KeyBinding) Matches(key string) bool {
	return slices.Contains(kb.Keys, key)
}

// KeyBindingSet is a collection of related key bindings
type KeyBindingSet struct {
	Bindings []KeyBinding
}

// Contains checks if a key press matches any binding in the set
func (kbs KeyBindingSet) Contains(key string) *KeyBinding {
	for i := range kbs.Bindings {
		if kbs.Bindings[i].Matches(key) {
			return &kbs.Bindings[i]
		}
	}
	return nil
}

// Render formats key bindings for display
// Format: "[KEY] Action  •  [KEY] Action"
func (kbs KeyBindingSet) Render(style lipgloss.Style) string {
	if len(kbs.Bindings) == 0 {
		return ""
	}

	parts := make([]string, len(kbs.Bindings))
	for i, binding := range kbs.Bindings {
		parts[i] = fmt.Sprintf("[%s] %s", binding.Key, binding.Description)
	}

	return style.Render(strings.Join(parts, "  •  "))
}

// RenderInline formats key bindings for inline display (more compact)
// Format: "Key: action | Key: action"
func (kbs KeyBindingSet) RenderInline(style lipgloss.Style) string {
	if len(kbs.Bindings) == 0 {
		return ""
	}

	parts := make([]string, len(kbs.Bindings))
	caser := cases.Title(language.Und, cases.NoLower)
	for i, binding := range kbs.Bindings {
		// Use first key alias for display (e.g., "enter" instead of showing all)
		keyName := caser.String(binding.Keys[0])
		parts[i] = fmt.Sprintf("%s: %s", keyName, strings.ToLower(binding.Description))
	}

	return style.Render(strings.Join(parts, " | "))
}

// Bindings shared by the wizards
var (
	UpKey       = KeyBinding{Key: "↑", Keys: []string{"up", "k"}, Description: "Up"}
	DownKey     = KeyBinding{Key: "↓", Keys: []string{"down", "j"}, Description: "Down"}
	PickKey     = KeyBinding{Key: "ENTER", Keys: []string{"enter", " "}, Description: "Pick"}
	NextPaneKey = KeyBinding{Key: "→/TAB", Keys: []string{"right", "tab", "l"}, Description: "Next Pane"}
	PrevPaneKey = KeyBinding{Key: "←", Keys: []string{"left", "shift+tab", "h"}, Description: "Previous Pane"}
	TriggerKey  = KeyBinding{Key: "N", Keys: []string{"n"}, Description: "Next"}
	DismissKey  = KeyBinding{Key: "ESC", Keys: []string{"esc"}, Description: "Dismiss"}
	QuitKey     = KeyBinding{Key: "Q", Keys: []string{"q", "ctrl+c"}, Description: "Quit"}
)

// PickKeyBindings returns the help line of the catalog wizard
func PickKeyBindings(triggerLabel string) KeyBindingSet {
	trigger := TriggerKey
	if triggerLabel != "" {
		trigger.Description = cases.Title(language.Und).String(triggerLabel)
	}
	return KeyBindingSet{
		Bindings: []KeyBinding{
			NextPaneKey,
			{Key: "↑/↓", Keys: []string{"up", "down"}, Description: "Move"},
			PickKey,
			trigger,
			QuitKey,
		},
	}
}

// StageKeyBindings returns the help line of the stage wizard
func StageKeyBindings(triggerLabel string) KeyBindingSet {
	trigger := TriggerKey
	if triggerLabel != "" {
		trigger.Description = cases.Title(language.Und).String(triggerLabel)
	}
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "↑/↓", Keys: []string{"up", "down"}, Description: "Move"},
			PickKey,
			{Key: "1-5", Keys: []string{"1", "2", "3", "4", "5"}, Description: "Toggle"},
			trigger,
			QuitKey,
		},
	}
}

// ModalKeyBindings returns the bindings shown under the summary modal
func ModalKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "Y", Keys: []string{"y"}, Description: "Quit"},
			{Key: "N", Keys: []string{"n"}, Description: "Keep Going"},
			DismissKey,
		},
	}
}
