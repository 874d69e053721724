// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Work-Fort/Sift/pkg/catalog"
)

const fruitJSON = `{
  "apple":  {"type": "E", "time": ["summer", "autumn"], "feature": ["sweet", "red"]},
  "grape":  {"type": "E", "time": ["summer"], "feature": ["sweet"]},
  "lemon":  {"type": "E", "time": ["winter"], "feature": ["sour"]},
  "melon":  {"type": "F", "time": ["summer"], "feature": ["sweet", "green"]}
}`

func fruitCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(fruitJSON), catalog.FormatJSON)
	require.NoError(t, err)
	return c
}

type fakeElement struct {
	id       string
	label    string
	selected bool
}

func (e *fakeElement) ID() string                { return e.id }
func (e *fakeElement) Label() string             { return e.label }
func (e *fakeElement) Selected() bool            { return e.selected }
func (e *fakeElement) SetSelected(selected bool) { e.selected = selected }

// fakeRenderer keeps the elements of the last render, the way a real pane
// replaces its previous contents
type fakeRenderer struct {
	renders  int
	group    OptionGroup
	elements []*fakeElement
	onPick   PickFunc
}

func (r *fakeRenderer) Render(group OptionGroup, onPick PickFunc) {
	r.renders++
	r.group = group
	r.onPick = onPick
	r.elements = nil
	for _, o := range group.Visible() {
		r.elements = append(r.elements, &fakeElement{
			id:       group.Kind.String() + "-" + o,
			label:    o,
			selected: group.Selected.Has(o),
		})
	}
}

func (r *fakeRenderer) labels() []string {
	out := make([]string, 0, len(r.elements))
	for _, e := range r.elements {
		out = append(out, e.label)
	}
	return out
}

func (r *fakeRenderer) element(label string) *fakeElement {
	for _, e := range r.elements {
		if e.label == label {
			return e
		}
	}
	return nil
}

// click activates the displayed element with the given label
func (r *fakeRenderer) click(t *testing.T, label string) {
	t.Helper()
	el := r.element(label)
	require.NotNil(t, el, "element %q is not displayed", label)
	r.onPick(label, el)
}

type fakeRenderers struct {
	category, subcategory, feature, tag *fakeRenderer
}

func newFakeRenderers() *fakeRenderers {
	return &fakeRenderers{
		category:    &fakeRenderer{},
		subcategory: &fakeRenderer{},
		feature:     &fakeRenderer{},
		tag:         &fakeRenderer{},
	}
}

func (f *fakeRenderers) renderers() Renderers {
	return Renderers{
		Category:    f.category,
		Subcategory: f.subcategory,
		Feature:     f.feature,
		Tag:         f.tag,
	}
}
