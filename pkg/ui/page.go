// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrContainerMissing is returned when a pane id is not registered on the page
var ErrContainerMissing = errors.New("container not found")

// Page is the registry of panes a wizard renders into. Panes are looked up
// once when a wizard starts; a missing pane is a startup fault.
type Page struct {
	panes map[string]*OptionPane
	order []string
}

// NewPage registers panes in display order. A later pane with a repeated id
// replaces the earlier one.
func NewPage(panes ...*OptionPane) *Page {
	p := &Page{panes: make(map[string]*OptionPane, len(panes))}
	for _, pane := range panes {
		if _, exists := p.panes[pane.ID()]; !exists {
			p.order = append(p.order, pane.ID())
		}
		p.panes[pane.ID()] = pane
	}
	return p
}

// Pane looks up a single pane by id
func (p *Page) Pane(id string) (*OptionPane, error) {
	pane, ok := p.panes[id]
	if !ok {
		return nil, fmt.Errorf("pane %q: %w", id, ErrContainerMissing)
	}
	return pane, nil
}

// Lookup resolves every id or fails on the first one that is missing
func (p *Page) Lookup(ids ...string) ([]*OptionPane, error) {
	out := make([]*OptionPane, 0, len(ids))
	for _, id := range ids {
		pane, err := p.Pane(id)
		if err != nil {
			log.Error("page lookup failed", "id", id, "registered", p.order)
			return nil, err
		}
		out = append(out, pane)
	}
	return out, nil
}

// Panes returns every registered pane in display order
func (p *Page) Panes() []*OptionPane {
	out := make([]*OptionPane, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.panes[id])
	}
	return out
}

// Len returns the number of registered panes
func (p *Page) Len() int {
	return len(p.order)
}
