package sectiontable

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(cfg Config, sections []Section) (*Reconciler, *Index, *[]ToggleEvent) {
	idx := NewIndex()
	idx.SetDataset(sections)
	var toggles []ToggleEvent
	r := NewReconciler(cfg, idx, func(ev ToggleEvent) { toggles = append(toggles, ev) })
	return r, idx, &toggles
}

func TestResolveView_TitleMatchesDescriptor(t *testing.T) {
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{
		Title: "A",
		Cells: []Cell{{Title: "Foo"}, {}},
	}})
	pool := newFakePool()

	first := r.ResolveView(Coordinate{Section: 0, Row: 0}, pool).(*fakeView)
	assert.Equal(t, "Foo", first.title)
	assert.False(t, first.titleHidden)

	second := r.ResolveView(Coordinate{Section: 0, Row: 1}, pool).(*fakeView)
	assert.Equal(t, "", second.title, "absent title renders as empty string")
}

func TestResolveView_StaleCoordinateReturnsDefaultView(t *testing.T) {
	var diags diagnostics
	r, _, _ := newTestReconciler(testConfig(&diags), []Section{{Cells: []Cell{{Title: "Foo"}}}})
	pool := newFakePool()

	view := r.ResolveView(Coordinate{Section: 4, Row: 0}, pool).(*fakeView)

	assert.Equal(t, DefaultIdentifier, view.identifier)
	assert.Equal(t, DefaultClass, view.class)
	assert.Empty(t, view.title)
	assert.Equal(t, 0, view.setupCalls, "fallback view is not configured")
	assert.Equal(t, []DiagnosticKind{KindLookupMiss}, diags.kinds())
}

func TestResolveView_DefaultsAndStructureOnce(t *testing.T) {
	cell := Cell{
		Title:           "Foo",
		Identifier:      "Fancy",
		Class:           "fancyClass",
		Style:           StyleSubtitle,
		MasksToBounds:   true,
		BackgroundColor: color.White,
		SelectionStyle:  SelectionGray,
	}
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{cell, {Title: "Plain"}}}})
	pool := newFakePool()

	view := r.ResolveView(Coordinate{}, pool).(*fakeView)
	require.Len(t, pool.constructed, 1)
	assert.Equal(t, "Fancy", view.identifier)
	assert.Equal(t, "fancyClass", view.class)
	assert.Equal(t, StyleSubtitle, view.style)
	assert.True(t, view.clips)
	assert.Equal(t, color.White, view.background)
	assert.Equal(t, SelectionGray, view.selection)
	assert.Equal(t, 1, view.setupCalls)

	pool.recycle(view)
	again := r.ResolveView(Coordinate{}, pool).(*fakeView)
	assert.Same(t, view, again)
	assert.Len(t, pool.constructed, 1, "recycled view is reused")
	assert.Equal(t, 1, again.setupCalls, "structural setup runs only on construction")

	plain := r.ResolveView(Coordinate{Row: 1}, pool).(*fakeView)
	assert.Equal(t, DefaultIdentifier, plain.identifier)
	assert.Equal(t, DefaultClass, plain.class)
	assert.Equal(t, StyleDefault, plain.style)
}

func TestResolveView_ReuseIsIdempotent(t *testing.T) {
	sub1 := "badge"
	sub3 := "spinner"
	cell := Cell{
		Title:     "Foo",
		Subtitle:  "Bar",
		Image:     &Image{Name: "folder", Radius: 4},
		Accessory: AccessorySwitch,
		SubViews:  []any{sub1, nil, sub3},
		Details:   "details",
	}
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{cell}}})
	pool := newFakePool()

	view := r.ResolveView(Coordinate{}, pool).(*fakeView)
	snapshot := func(v *fakeView) []any {
		return []any{v.title, v.subtitle, v.image, v.imageRadius, v.accessory, v.switchOn, v.details, v.Subviews()}
	}
	first := snapshot(view)
	assert.Equal(t, map[int]any{1: sub1, 3: sub3}, view.subviews)

	pool.recycle(view)
	again := r.ResolveView(Coordinate{}, pool).(*fakeView)
	require.Same(t, view, again)

	assert.Equal(t, first, snapshot(again))
	assert.Equal(t, map[int]any{1: sub1, 3: sub3}, again.subviews, "no duplicate subviews")
	assert.Equal(t, []int{1, 3}, again.removed, "previous subviews removed before re-adding")
}

func TestResolveView_ReuseClearsPreviousContent(t *testing.T) {
	rich := Cell{
		Title:         "Rich",
		Subtitle:      "sub",
		Image:         &Image{Name: "folder"},
		AccessoryView: "chevron",
		SubViews:      []any{"a", "b", "c"},
		NoSelect:      true,
	}
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{rich, {Title: "Bare", SubViews: []any{"x"}}}}})
	pool := newFakePool()

	view := r.ResolveView(Coordinate{}, pool).(*fakeView)
	assert.Equal(t, SelectionNone, view.selection)
	pool.recycle(view)

	bare := r.ResolveView(Coordinate{Row: 1}, pool).(*fakeView)
	require.Same(t, view, bare)
	assert.Equal(t, "Bare", bare.title)
	assert.Empty(t, bare.subtitle)
	assert.Nil(t, bare.image)
	assert.Nil(t, bare.accessory)
	assert.Equal(t, map[int]any{1: "x"}, bare.subviews, "slots beyond the new sequence are emptied")
	assert.Equal(t, SelectionBlue, bare.selection)
}

func TestResolveView_SwitchAccessoryWinsOverAccessoryView(t *testing.T) {
	cell := Cell{
		AccessoryView:    "manual",
		Accessory:        AccessorySwitch,
		AccessoryDefault: true,
	}
	r, _, toggles := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{cell}}})

	view := r.ResolveView(Coordinate{}, newFakePool()).(*fakeView)

	assert.Equal(t, "switch", view.accessory)
	assert.True(t, view.switchOn)
	require.NotNil(t, view.switchChanged)

	view.switchChanged(false)
	require.Len(t, *toggles, 1)
	assert.Same(t, view, (*toggles)[0].View)
	assert.False(t, (*toggles)[0].On)
}

func TestResolveView_RemoteImage(t *testing.T) {
	remote := &RemoteImage{URL: "https://example.com/a.png", Placeholder: "placeholder", Size: 40, Radius: 20}
	cell := Cell{RemoteImage: remote, Image: &Image{Name: "local"}}

	t.Run("loader wins over local image", func(t *testing.T) {
		loader := &fakeLoader{}
		cfg := DefaultConfig()
		cfg.ImageLoader = loader
		r, _, _ := newTestReconciler(cfg, []Section{{Cells: []Cell{cell}}})

		view := r.ResolveView(Coordinate{}, newFakePool()).(*fakeView)

		require.Len(t, loader.loads, 1)
		assert.Equal(t, *remote, loader.loads[0])
		assert.Equal(t, "placeholder", view.image.Name)
		assert.Equal(t, float32(40), view.imageSize)
		assert.Equal(t, float32(20), view.imageRadius)
	})

	t.Run("missing loader is a diagnostic", func(t *testing.T) {
		var diags diagnostics
		r, _, _ := newTestReconciler(testConfig(&diags), []Section{{Cells: []Cell{cell}}})

		view := r.ResolveView(Coordinate{}, newFakePool()).(*fakeView)

		assert.Nil(t, view.image)
		require.Equal(t, []DiagnosticKind{KindMissingImageCapability}, diags.kinds())
		assert.ErrorIs(t, diags.items[0], ErrNoImageLoader)
	})
}

func TestResolveView_CustomLabel(t *testing.T) {
	cell := Cell{
		Title: "ignored",
		Styles: AttributesFrom(map[string]any{
			"textLabel": map[string]any{
				"text":  "Positioned",
				"frame": []any{10, 0, 200, 44},
			},
		}),
	}
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{cell, {Title: "Normal"}}}})
	pool := newFakePool()

	view := r.ResolveView(Coordinate{}, pool).(*fakeView)
	require.NotNil(t, view.label)
	assert.True(t, view.titleHidden)
	assert.Equal(t, "Positioned", view.label.props["text"])
	assert.Equal(t, []any{10, 0, 200, 44}, view.label.props["frame"])
	assert.Equal(t, false, view.label.props["hidden"])

	label := view.label
	pool.recycle(view)
	again := r.ResolveView(Coordinate{}, pool).(*fakeView)
	assert.Same(t, label, again.label, "existing content label is reused")

	pool.recycle(again)
	normal := r.ResolveView(Coordinate{Row: 1}, pool).(*fakeView)
	assert.False(t, normal.titleHidden)
	assert.Equal(t, "Normal", normal.title)
	assert.Equal(t, true, normal.label.props["hidden"])
}

func TestResolveView_ClassAttributes(t *testing.T) {
	cell := Cell{ClassAttributes: AttributesFrom(map[string]any{
		"customProperty":  "from attributes",
		"detailTextLabel": map[string]any{"text": "nested"},
		"bogus":           42,
	})}
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{cell}}})

	view := r.ResolveView(Coordinate{}, newFakePool()).(*fakeView)

	assert.Equal(t, "from attributes", view.customProperty)
	assert.Equal(t, "nested", view.detailLabel.text)
}

func TestResolveView_SelectionStyleFromAttributes(t *testing.T) {
	gray := Cell{Title: "Gray", ClassAttributes: AttributesFrom(map[string]any{"selectionStyle": "gray"})}
	muted := Cell{Title: "Muted", NoSelect: true, ClassAttributes: AttributesFrom(map[string]any{"selectionStyle": "gray"})}
	r, _, _ := newTestReconciler(DefaultConfig(), []Section{{Cells: []Cell{gray, {Title: "Plain"}, muted}}})
	pool := newFakePool()

	view := r.ResolveView(Coordinate{}, pool).(*fakeView)
	assert.Equal(t, SelectionGray, view.selection, "class attributes set the selection style")

	pool.recycle(view)
	plain := r.ResolveView(Coordinate{Row: 1}, pool).(*fakeView)
	require.Same(t, view, plain)
	assert.Equal(t, SelectionBlue, plain.selection, "reuse restores the default style")

	pool.recycle(plain)
	noSelect := r.ResolveView(Coordinate{Row: 2}, pool).(*fakeView)
	assert.Equal(t, SelectionNone, noSelect.selection, "noSelect wins over attributes")
}
