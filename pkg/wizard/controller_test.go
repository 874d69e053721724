// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedController(t *testing.T, opts ...ControllerOption) (*Controller, *fakeRenderers) {
	t.Helper()
	fr := newFakeRenderers()
	c := NewController(fruitCatalog(t), fr.renderers(), opts...)
	c.Start()
	return c, fr
}

func TestController_StartShowsCategories(t *testing.T) {
	c, fr := startedController(t)

	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, []string{"E", "F"}, fr.category.labels())
	assert.Equal(t, ActionInactive, c.Trigger().Action)
}

func TestController_PickCategoryShowsSubcategories(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	assert.Equal(t, PhaseCategoryChosen, c.Phase())
	assert.Equal(t, []string{"summer", "autumn", "winter"}, fr.subcategory.labels())
	assert.Empty(t, fr.feature.labels())
	assert.Empty(t, fr.tag.labels())
}

func TestController_PickCategoryUnknown(t *testing.T) {
	c, _ := startedController(t)

	err := c.PickCategory("Z")
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestController_PickCategoryTwiceIsIdempotent(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	before := c.State()
	subRenders := fr.subcategory.renders

	require.NoError(t, c.PickCategory("E"))
	assert.Equal(t, before, c.State())
	assert.Equal(t, PhaseFeaturesChosen, c.Phase())
	assert.Equal(t, subRenders, fr.subcategory.renders)
}

func TestController_PickOtherCategoryResetsDownstream(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	require.NoError(t, c.ConfirmFeatures())
	require.NoError(t, c.ToggleTag("apple"))

	require.NoError(t, c.PickCategory("F"))
	assert.Equal(t, State{Category: "F"}, c.State())
	assert.Equal(t, PhaseCategoryChosen, c.Phase())
	assert.Equal(t, []string{"summer"}, fr.subcategory.labels())
	assert.Empty(t, fr.feature.labels())
	assert.Empty(t, fr.tag.labels())
	assert.Equal(t, ActionInactive, c.Trigger().Action)
}

func TestController_PickSubcategoryOutOfPhase(t *testing.T) {
	c, _ := startedController(t)
	assert.ErrorIs(t, c.PickSubcategory("summer"), ErrOutOfPhase)
}

func TestController_PickSubcategoryShowsFeatureUnion(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))

	assert.Equal(t, PhaseSubcategoryChosen, c.Phase())
	assert.Equal(t, []string{"sweet", "red"}, fr.feature.labels())
}

func TestController_ToggleFeatureTwiceRestoresState(t *testing.T) {
	c, _ := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	before := c.State()

	require.NoError(t, c.ToggleFeature("sweet"))
	assert.Equal(t, []string{"sweet"}, c.State().Features)
	require.NoError(t, c.ToggleFeature("sweet"))

	assert.Equal(t, before, c.State())
	assert.Equal(t, PhaseSubcategoryChosen, c.Phase())
}

func TestController_FeatureSuppression(t *testing.T) {
	tests := []struct {
		name   string
		policy SuppressionPolicy
		want   []string
	}{
		{name: "exclusive", policy: SuppressExclusive, want: []string{"sweet"}},
		{name: "compatible", policy: SuppressCompatible, want: []string{"sweet", "red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fr := startedController(t, WithSuppression(tt.policy))
			require.NoError(t, c.PickCategory("E"))
			require.NoError(t, c.PickSubcategory("summer"))
			require.NoError(t, c.ToggleFeature("sweet"))

			assert.Equal(t, tt.want, fr.feature.labels())
			assert.True(t, fr.feature.element("sweet").Selected())
		})
	}
}

func TestController_ConjunctiveMatch(t *testing.T) {
	c, fr := startedController(t, WithSuppression(SuppressCompatible))

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	require.NoError(t, c.ToggleFeature("red"))

	trig := c.Trigger()
	assert.True(t, trig.Ready())
	assert.Equal(t, LabelNext, trig.Label)

	out, err := c.Fire()
	require.NoError(t, err)
	assert.Equal(t, ActionShowConfirmation, out.Action)
	assert.False(t, out.Terminal())
	assert.Equal(t, []string{"apple"}, fr.tag.labels())
}

func TestController_ToggleSuppressedFeatureRejected(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	renders := fr.feature.renders

	err := c.ToggleFeature("red")
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, []string{"sweet"}, c.State().Features)
	assert.Equal(t, []string{"sweet"}, fr.feature.labels())
	assert.Equal(t, renders, fr.feature.renders)

	// the picked feature itself can still be toggled off, which lifts the suppression
	require.NoError(t, c.ToggleFeature("sweet"))
	assert.Equal(t, []string{"sweet", "red"}, fr.feature.labels())
	require.NoError(t, c.ToggleFeature("red"))
	assert.Equal(t, []string{"red"}, c.State().Features)
}

func TestController_PickSubcategoryTwiceIsIdempotent(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	before := c.State()
	featureRenders := fr.feature.renders
	tagRenders := fr.tag.renders

	require.NoError(t, c.PickSubcategory("summer"))
	assert.Equal(t, before, c.State())
	assert.Equal(t, PhaseFeaturesChosen, c.Phase())
	assert.Equal(t, featureRenders, fr.feature.renders)
	assert.Equal(t, tagRenders, fr.tag.renders)
}

func TestController_ConfirmWithoutFeatures(t *testing.T) {
	c, _ := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	assert.ErrorIs(t, c.ConfirmFeatures(), ErrNothingSelected)

	_, err := c.Fire()
	assert.ErrorIs(t, err, ErrTriggerInactive)
}

func TestController_FinalizeKeepsSelectionOrder(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	require.NoError(t, c.ConfirmFeatures())
	require.Equal(t, []string{"apple", "grape"}, fr.tag.labels())

	// DONE stays hidden until a tag has been confirmed
	assert.False(t, c.Trigger().Visible)

	require.NoError(t, c.ToggleTag("grape"))
	require.NoError(t, c.ToggleTag("apple"))
	require.NoError(t, c.ToggleTag("grape"))
	require.NoError(t, c.ToggleTag("grape"))

	assert.Equal(t, []string{"apple", "grape"}, c.State().ConfirmedTags)
	assert.Equal(t, PhaseTagsConfirmed, c.Phase())

	trig := c.Trigger()
	assert.Equal(t, ActionFinalize, trig.Action)
	assert.Equal(t, LabelDone, trig.Label)

	out, err := c.Fire()
	require.NoError(t, err)
	assert.True(t, out.Terminal())
	assert.Equal(t, "apple, grape", out.Summary)

	// finalize leaves state alone
	assert.Equal(t, []string{"apple", "grape"}, c.State().ConfirmedTags)
}

func TestController_TriggerHiddenWhenAllTagsCleared(t *testing.T) {
	c, _ := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	require.NoError(t, c.ConfirmFeatures())
	require.NoError(t, c.ToggleTag("apple"))
	require.NoError(t, c.ToggleTag("apple"))

	trig := c.Trigger()
	assert.Equal(t, ActionFinalize, trig.Action)
	assert.False(t, trig.Visible)
	assert.Equal(t, PhaseFeaturesChosen, c.Phase())

	_, err := c.Finalize()
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestController_ToggleFeatureAfterConfirmationStartsOver(t *testing.T) {
	c, fr := startedController(t)

	require.NoError(t, c.PickCategory("E"))
	require.NoError(t, c.PickSubcategory("summer"))
	require.NoError(t, c.ToggleFeature("sweet"))
	require.NoError(t, c.ConfirmFeatures())
	require.NoError(t, c.ToggleTag("grape"))

	require.NoError(t, c.ToggleFeature("sweet"))
	assert.Empty(t, c.State().ConfirmedTags)
	assert.Empty(t, fr.tag.labels())
	assert.ErrorIs(t, c.ToggleTag("grape"), ErrOutOfPhase)
}

func TestController_ToggleTagBeforeConfirmation(t *testing.T) {
	c, _ := startedController(t)
	require.NoError(t, c.PickCategory("E"))
	assert.ErrorIs(t, c.ToggleTag("apple"), ErrOutOfPhase)
}

func TestController_QuickConfirm(t *testing.T) {
	c, fr := startedController(t, WithQuickConfirm())

	require.NoError(t, c.PickCategory("E"))
	assert.Equal(t, []string{"apple", "grape", "lemon"}, fr.tag.labels())
	assert.Empty(t, fr.subcategory.labels())
	assert.Equal(t, ActionInactive, c.Trigger().Action)

	require.NoError(t, c.ToggleTag("lemon"))
	out, err := c.Fire()
	require.NoError(t, err)
	assert.Equal(t, "lemon", out.Summary)
}

func TestController_ClicksMoveSingleSelection(t *testing.T) {
	c, fr := startedController(t)

	fr.category.click(t, "E")
	first := fr.category.element("E")
	assert.True(t, first.Selected())

	fr.category.click(t, "F")
	assert.False(t, first.Selected())
	assert.True(t, fr.category.element("F").Selected())
	assert.Equal(t, "F", c.State().Category)
	assert.True(t, c.Group(GroupCategory).Selected.Has("F"))
}

func TestController_ClickSequenceFinalizesOnce(t *testing.T) {
	c, fr := startedController(t)

	fr.category.click(t, "E")
	fr.subcategory.click(t, "summer")
	fr.feature.click(t, "sweet")

	out, err := c.Fire()
	require.NoError(t, err)
	assert.Equal(t, ActionShowConfirmation, out.Action)

	fr.tag.click(t, "apple")
	assert.True(t, fr.tag.element("apple").Selected())

	// the trigger has exactly one action bound, so firing yields one summary
	out, err = c.Fire()
	require.NoError(t, err)
	assert.Equal(t, ActionFinalize, out.Action)
	assert.Equal(t, "apple", out.Summary)

	// firing again finalizes again without touching state
	out, err = c.Fire()
	require.NoError(t, err)
	assert.Equal(t, "apple", out.Summary)
	assert.Equal(t, []string{"apple"}, c.State().ConfirmedTags)
}

func TestParseSuppressionPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SuppressionPolicy
		wantErr bool
	}{
		{"", SuppressExclusive, false},
		{"exclusive", SuppressExclusive, false},
		{"compatible", SuppressCompatible, false},
		{"loose", SuppressExclusive, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSuppressionPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
