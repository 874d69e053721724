// SPDX-License-Identifier: Apache-2.0
package wizard

// GroupKind names one of the option groups of the catalog wizard
type GroupKind int

const (
	GroupCategory GroupKind = iota
	GroupSubcategory
	GroupFeature
	GroupTag
	GroupStage // single group of the stage wizard
)

func (k GroupKind) String() string {
	switch k {
	case GroupCategory:
		return "category"
	case GroupSubcategory:
		return "subcategory"
	case GroupFeature:
		return "feature"
	case GroupTag:
		return "tag"
	case GroupStage:
		return "stage"
	default:
		return "unknown"
	}
}

// Set is an unordered set of option values
type Set map[string]struct{}

// NewSet returns a set holding values
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership; a nil set is empty
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Difference returns the values not in s, keeping their order
func (s Set) Difference(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !s.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// OptionGroup is the displayed set of choices for one wizard step
type OptionGroup struct {
	Kind       GroupKind
	Options    []string
	Suppressed Set // options that must not be offered
	Selected   Set // options shown in the selected state
}

// Visible returns the options to display: blanks and suppressed options removed
func (g OptionGroup) Visible() []string {
	visible := g.Suppressed.Difference(g.Options)
	out := visible[:0]
	for _, o := range visible {
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Contains reports whether option is one of the group's non-blank options
func (g OptionGroup) Contains(option string) bool {
	if option == "" {
		return false
	}
	for _, o := range g.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Element is one interactive choice created by a Renderer
type Element interface {
	ID() string
	Label() string
	Selected() bool
	SetSelected(selected bool)
}

// PickFunc is invoked when the user picks an element. The element is the one
// that was activated so callers can update its state directly.
type PickFunc func(option string, el Element)

// Renderer displays an option group. Render replaces every element previously
// shown for the group and binds onPick to each new element.
type Renderer interface {
	Render(group OptionGroup, onPick PickFunc)
}
