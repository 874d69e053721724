// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Sift/pkg/catalog"
)

// Phase is the progress of the catalog wizard
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCategoryChosen
	PhaseSubcategoryChosen
	PhaseFeaturesChosen
	PhaseTagsConfirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCategoryChosen:
		return "category-chosen"
	case PhaseSubcategoryChosen:
		return "subcategory-chosen"
	case PhaseFeaturesChosen:
		return "features-chosen"
	case PhaseTagsConfirmed:
		return "tags-confirmed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SuppressionPolicy decides which features stay offered once one is picked
type SuppressionPolicy int

const (
	// SuppressExclusive hides every unpicked feature while any feature is picked
	SuppressExclusive SuppressionPolicy = iota
	// SuppressCompatible hides features that would leave no matching item
	SuppressCompatible
)

func (p SuppressionPolicy) String() string {
	if p == SuppressCompatible {
		return "compatible"
	}
	return "exclusive"
}

// ParseSuppressionPolicy maps a config value to a policy
func ParseSuppressionPolicy(s string) (SuppressionPolicy, error) {
	switch s {
	case "", "exclusive":
		return SuppressExclusive, nil
	case "compatible":
		return SuppressCompatible, nil
	default:
		return SuppressExclusive, fmt.Errorf("unknown suppression policy %q (must be exclusive or compatible)", s)
	}
}

// Renderers are the displays for the four option groups. A nil renderer
// leaves its group undisplayed, which is how headless callers run the wizard.
type Renderers struct {
	Category    Renderer
	Subcategory Renderer
	Feature     Renderer
	Tag         Renderer
}

func (r Renderers) forKind(kind GroupKind) Renderer {
	switch kind {
	case GroupCategory:
		return r.Category
	case GroupSubcategory:
		return r.Subcategory
	case GroupFeature:
		return r.Feature
	case GroupTag:
		return r.Tag
	default:
		return nil
	}
}

// State is a snapshot of the current selections
type State struct {
	Category      string
	Subcategory   string
	Features      []string // in feature group order
	ConfirmedTags []string // in selection order
}

// ControllerOption customises a Controller
type ControllerOption func(*Controller)

// WithSuppression sets the feature suppression policy
func WithSuppression(p SuppressionPolicy) ControllerOption {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithQuickConfirm makes a category pick show the matching items directly,
// skipping the subcategory and feature steps
func WithQuickConfirm() ControllerOption {
	return func(c *Controller) {
		c.quick = true
	}
}

// Controller is the selection state machine of the catalog wizard. It is
// created once per session and is not safe for concurrent use.
type Controller struct {
	catalog   *catalog.Catalog
	renderers Renderers
	policy    SuppressionPolicy
	quick     bool

	phase         Phase
	category      string
	subcategory   string
	features      Set
	confirmedTags []string

	// confirmation group is displayed
	confirming bool
	// a tag was confirmed since the confirmation group was last cleared
	everConfirmed bool

	groups   map[GroupKind]OptionGroup
	selected map[GroupKind]Element
}

// NewController creates a controller over an already loaded catalog
func NewController(c *catalog.Catalog, renderers Renderers, opts ...ControllerOption) *Controller {
	ctl := &Controller{
		catalog:   c,
		renderers: renderers,
		features:  NewSet(),
		groups:    make(map[GroupKind]OptionGroup),
		selected:  make(map[GroupKind]Element),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// Start displays the category group
func (c *Controller) Start() {
	c.render(OptionGroup{Kind: GroupCategory, Options: c.catalog.Categories()})
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// Group returns the currently displayed group of a kind
func (c *Controller) Group(kind GroupKind) OptionGroup {
	return c.groups[kind]
}

// State returns a copy of the current selections
func (c *Controller) State() State {
	return State{
		Category:      c.category,
		Subcategory:   c.subcategory,
		Features:      c.featureList(),
		ConfirmedTags: slices.Clone(c.confirmedTags),
	}
}

// PickCategory selects a category and restarts everything downstream.
// Picking the current category again changes nothing.
func (c *Controller) PickCategory(category string) error {
	if !c.groups[GroupCategory].Contains(category) {
		return fmt.Errorf("category %q: %w", category, ErrUnknownOption)
	}
	if c.phase != PhaseIdle && category == c.category {
		return nil
	}

	c.category = category
	c.subcategory = ""
	c.features = NewSet()
	c.resetConfirmation()
	c.phase = PhaseCategoryChosen

	if c.quick {
		c.clear(GroupSubcategory)
		c.clear(GroupFeature)
		c.showConfirmation(c.catalog.ItemsInCategory(category))
	} else {
		c.render(OptionGroup{Kind: GroupSubcategory, Options: c.catalog.Subcategories(category)})
		c.clear(GroupFeature)
		c.clear(GroupTag)
	}

	log.Debug("wizard: category picked", "category", category, "phase", c.phase)
	return nil
}

// PickSubcategory selects a subcategory of the current category
func (c *Controller) PickSubcategory(subcategory string) error {
	if c.phase < PhaseCategoryChosen {
		return fmt.Errorf("pick subcategory: %w", ErrOutOfPhase)
	}
	if !c.groups[GroupSubcategory].Contains(subcategory) {
		return fmt.Errorf("subcategory %q: %w", subcategory, ErrUnknownOption)
	}
	if subcategory == c.subcategory {
		return nil
	}

	c.subcategory = subcategory
	c.features = NewSet()
	c.resetConfirmation()
	c.phase = PhaseSubcategoryChosen

	c.renderFeatures()
	c.clear(GroupTag)

	log.Debug("wizard: subcategory picked", "subcategory", subcategory, "phase", c.phase)
	return nil
}

// ToggleFeature adds or removes a feature from the picked set. Any displayed
// confirmation group is discarded since it no longer matches.
func (c *Controller) ToggleFeature(feature string) error {
	if c.phase < PhaseSubcategoryChosen {
		return fmt.Errorf("toggle feature: %w", ErrOutOfPhase)
	}
	if !c.groups[GroupFeature].Contains(feature) {
		return fmt.Errorf("feature %q: %w", feature, ErrUnknownOption)
	}
	// a suppressed feature is not offered; only picked ones can be toggled off
	if !c.features.Has(feature) && c.groups[GroupFeature].Suppressed.Has(feature) {
		return fmt.Errorf("feature %q is suppressed: %w", feature, ErrUnknownOption)
	}

	if c.features.Has(feature) {
		delete(c.features, feature)
	} else {
		c.features[feature] = struct{}{}
	}

	if c.confirming {
		c.resetConfirmation()
		c.clear(GroupTag)
	}

	c.phase = PhaseSubcategoryChosen
	if c.features.Len() > 0 {
		c.phase = PhaseFeaturesChosen
	}
	c.renderFeatures()

	log.Debug("wizard: feature toggled", "feature", feature, "picked", c.features.Len(), "phase", c.phase)
	return nil
}

// ConfirmFeatures displays every item matching the category, subcategory and
// all picked features
func (c *Controller) ConfirmFeatures() error {
	if c.phase < PhaseSubcategoryChosen {
		return fmt.Errorf("confirm features: %w", ErrOutOfPhase)
	}
	if c.features.Len() == 0 {
		return fmt.Errorf("confirm features: %w", ErrNothingSelected)
	}

	ids := c.catalog.Match(c.category, c.subcategory, c.featureList())
	c.showConfirmation(ids)

	log.Debug("wizard: confirmation shown", "matches", len(ids))
	return nil
}

// ToggleTag adds a tag to the end of the confirmed list, or removes it when
// already confirmed
func (c *Controller) ToggleTag(tag string) error {
	if !c.confirming {
		return fmt.Errorf("toggle tag: %w", ErrOutOfPhase)
	}
	group := c.groups[GroupTag]
	if !group.Contains(tag) {
		return fmt.Errorf("tag %q: %w", tag, ErrUnknownOption)
	}

	group.Selected = group.Selected.Clone()
	if i := slices.Index(c.confirmedTags, tag); i >= 0 {
		c.confirmedTags = slices.Delete(c.confirmedTags, i, i+1)
		delete(group.Selected, tag)
	} else {
		c.confirmedTags = append(c.confirmedTags, tag)
		group.Selected[tag] = struct{}{}
	}
	c.groups[GroupTag] = group
	c.everConfirmed = true

	switch {
	case len(c.confirmedTags) > 0:
		c.phase = PhaseTagsConfirmed
	case c.features.Len() > 0:
		c.phase = PhaseFeaturesChosen
	default:
		c.phase = PhaseCategoryChosen
	}

	log.Debug("wizard: tag toggled", "tag", tag, "confirmed", len(c.confirmedTags))
	return nil
}

// Finalize returns the confirmed tags joined in selection order. It does not
// change any state.
func (c *Controller) Finalize() (string, error) {
	if len(c.confirmedTags) == 0 {
		return "", fmt.Errorf("finalize: %w", ErrNothingSelected)
	}
	return strings.Join(c.confirmedTags, ", "), nil
}

// Trigger derives the action control from the current state
func (c *Controller) Trigger() Trigger {
	switch {
	case c.confirming && c.everConfirmed:
		visible := len(c.confirmedTags) > 0
		return Trigger{Visible: visible, Enabled: visible, Label: LabelDone, Action: ActionFinalize}
	case !c.quick && c.features.Len() > 0:
		return Trigger{Visible: true, Enabled: true, Label: LabelNext, Action: ActionShowConfirmation}
	default:
		return inactiveTrigger
	}
}

// Fire runs the action currently bound to the trigger
func (c *Controller) Fire() (Outcome, error) {
	t := c.Trigger()
	if !t.Ready() {
		return Outcome{Action: ActionInactive}, ErrTriggerInactive
	}

	switch t.Action {
	case ActionShowConfirmation:
		if err := c.ConfirmFeatures(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Action: t.Action}, nil
	case ActionFinalize:
		summary, err := c.Finalize()
		if err != nil {
			return Outcome{}, err
		}
		log.Info("wizard: finalized", "tags", summary)
		return Outcome{Action: t.Action, Summary: summary}, nil
	default:
		return Outcome{Action: ActionInactive}, ErrTriggerInactive
	}
}

// featureList returns picked features in feature group order
func (c *Controller) featureList() []string {
	var out []string
	for _, f := range c.groups[GroupFeature].Options {
		if c.features.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (c *Controller) resetConfirmation() {
	c.confirmedTags = nil
	c.confirming = false
	c.everConfirmed = false
}

func (c *Controller) showConfirmation(ids []string) {
	c.confirming = true
	c.render(OptionGroup{
		Kind:     GroupTag,
		Options:  ids,
		Selected: NewSet(c.confirmedTags...),
	})
}

// renderFeatures displays the feature group with its suppression set
func (c *Controller) renderFeatures() {
	options := c.catalog.Features(c.category, c.subcategory)
	c.render(OptionGroup{
		Kind:       GroupFeature,
		Options:    options,
		Suppressed: c.suppressed(options),
		Selected:   c.features.Clone(),
	})
}

func (c *Controller) suppressed(options []string) Set {
	out := NewSet()
	if c.features.Len() == 0 {
		return out
	}

	picks := make([]string, 0, c.features.Len())
	for _, f := range options {
		if c.features.Has(f) {
			picks = append(picks, f)
		}
	}

	for _, f := range options {
		if c.features.Has(f) {
			continue
		}
		if c.policy == SuppressCompatible {
			want := append(slices.Clone(picks), f)
			if len(c.catalog.Match(c.category, c.subcategory, want)) > 0 {
				continue
			}
		}
		out[f] = struct{}{}
	}
	return out
}

func (c *Controller) clear(kind GroupKind) {
	c.render(OptionGroup{Kind: kind})
}

func (c *Controller) render(group OptionGroup) {
	if group.Suppressed == nil {
		group.Suppressed = NewSet()
	}
	if group.Selected == nil {
		group.Selected = NewSet()
	}
	c.groups[group.Kind] = group
	delete(c.selected, group.Kind)

	if r := c.renderers.forKind(group.Kind); r != nil {
		r.Render(group, c.pickFunc(group.Kind))
	}
}

// pickFunc binds the handler of a group kind for its rendered elements
func (c *Controller) pickFunc(kind GroupKind) PickFunc {
	return func(option string, el Element) {
		var err error
		switch kind {
		case GroupCategory:
			if err = c.PickCategory(option); err == nil {
				c.markSingle(kind, option, el)
			}
		case GroupSubcategory:
			if err = c.PickSubcategory(option); err == nil {
				c.markSingle(kind, option, el)
			}
		case GroupFeature:
			err = c.ToggleFeature(option)
		case GroupTag:
			if err = c.ToggleTag(option); err == nil && el != nil {
				el.SetSelected(c.groups[GroupTag].Selected.Has(option))
			}
		}
		if err != nil {
			log.Warn("wizard: pick rejected", "group", kind, "option", option, "err", err)
		}
	}
}

// markSingle moves the selected state of a single-choice group to el
func (c *Controller) markSingle(kind GroupKind, option string, el Element) {
	if el == nil {
		return
	}
	if prev := c.selected[kind]; prev != nil && prev != el {
		prev.SetSelected(false)
	}
	el.SetSelected(true)
	c.selected[kind] = el

	group := c.groups[kind]
	group.Selected = NewSet(option)
	c.groups[kind] = group
}
