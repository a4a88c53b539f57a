package sectiontable

import (
	"image/color"
	"maps"
	"slices"
)

// fakeLabel records the properties applied to a custom content label.
type fakeLabel struct {
	props map[string]any
}

func (l *fakeLabel) SetProperty(name string, value any) bool {
	switch name {
	case "text", "frame", "hidden", "bold":
		l.props[name] = value
		return true
	}
	return false
}

// fakeSubLabel is a nested property target.
type fakeSubLabel struct {
	text  string
	color any
}

func (l *fakeSubLabel) SetProperty(name string, value any) bool {
	switch name {
	case "text":
		l.text, _ = value.(string)
		return true
	case "textColor":
		l.color = value
		return true
	}
	return false
}

type fakeView struct {
	identifier string
	style      CellStyle
	class      string

	clips          bool
	background     color.Color
	selection      SelectionStyle
	flexible       bool
	setupCalls     int
	accessory      any
	switchOn       bool
	switchChanged  func(bool)
	title          string
	titleHidden    bool
	subtitle       string
	image          *Image
	imageSize      float32
	imageRadius    float32
	subviews       map[int]any
	removed        []int
	details        any
	label          *fakeLabel
	detailLabel    *fakeSubLabel
	customProperty string
}

func newFakeView(identifier string, style CellStyle, class string) *fakeView {
	return &fakeView{
		identifier:  identifier,
		style:       style,
		class:       class,
		subviews:    make(map[int]any),
		detailLabel: &fakeSubLabel{},
	}
}

func (v *fakeView) ReuseIdentifier() string { return v.identifier }

func (v *fakeView) SetClipsToBounds(clip bool) { v.clips = clip }

func (v *fakeView) SetBackgroundColor(c color.Color) { v.background = c }

func (v *fakeView) SetSelectionStyle(s SelectionStyle) { v.selection = s }

func (v *fakeView) SetFlexibleWidth(flexible bool) {
	v.flexible = flexible
	v.setupCalls++
}

func (v *fakeView) SetAccessoryView(a any) {
	v.accessory = a
	v.switchChanged = nil
}

func (v *fakeView) SetSwitchAccessory(on bool, changed func(bool)) {
	v.accessory = "switch"
	v.switchOn = on
	v.switchChanged = changed
}

func (v *fakeView) SetTitle(text string) { v.title = text }

func (v *fakeView) SetTitleHidden(hidden bool) { v.titleHidden = hidden }

func (v *fakeView) SetSubtitle(text string) { v.subtitle = text }

func (v *fakeView) SetImage(img *Image) { v.image = img }

func (v *fakeView) SetImageSize(size float32) { v.imageSize = size }

func (v *fakeView) SetImageCornerRadius(radius float32) { v.imageRadius = radius }

func (v *fakeView) Subviews() []int {
	return slices.Sorted(maps.Keys(v.subviews))
}

func (v *fakeView) SetSubview(slot int, sub any) { v.subviews[slot] = sub }

func (v *fakeView) RemoveSubview(slot int) {
	delete(v.subviews, slot)
	v.removed = append(v.removed, slot)
}

func (v *fakeView) SetDetails(d any) { v.details = d }

func (v *fakeView) ContentLabel() (PropertySetter, bool) {
	if v.label == nil {
		return nil, false
	}
	return v.label, true
}

func (v *fakeView) AddContentLabel() PropertySetter {
	v.label = &fakeLabel{props: make(map[string]any)}
	return v.label
}

func (v *fakeView) SetProperty(name string, value any) bool {
	switch name {
	case "customProperty":
		v.customProperty, _ = value.(string)
		return true
	case "selectionStyle":
		s, _ := value.(string)
		style, ok := ParseSelectionStyle(s)
		if ok {
			v.selection = style
		}
		return ok
	}
	return false
}

func (v *fakeView) Property(name string) (any, bool) {
	if name == "detailTextLabel" {
		return v.detailLabel, true
	}
	return nil, false
}

// fakePool hands out one recycled view per identifier.
type fakePool struct {
	free        map[string]*fakeView
	constructed []*fakeView
}

func newFakePool() *fakePool {
	return &fakePool{free: make(map[string]*fakeView)}
}

func (p *fakePool) Acquire(identifier string) CellView {
	v, ok := p.free[identifier]
	if !ok {
		return nil
	}
	delete(p.free, identifier)
	return v
}

func (p *fakePool) Construct(identifier string, style CellStyle, class string) CellView {
	v := newFakeView(identifier, style, class)
	p.constructed = append(p.constructed, v)
	return v
}

// recycle returns view to the pool so the next Acquire reuses it.
func (p *fakePool) recycle(view CellView) {
	v := view.(*fakeView)
	p.free[v.identifier] = v
}

type fakeContainer struct {
	reloads    int
	deselected []Coordinate
	positions  map[CellView]Coordinate
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{positions: make(map[CellView]Coordinate)}
}

func (c *fakeContainer) Reload() { c.reloads++ }

func (c *fakeContainer) Deselect(co Coordinate) { c.deselected = append(c.deselected, co) }

func (c *fakeContainer) CoordinateOf(view CellView) (Coordinate, bool) {
	co, ok := c.positions[view]
	return co, ok
}

type fakeLoader struct {
	loads []RemoteImage
}

func (l *fakeLoader) Load(target ImageTarget, img RemoteImage) {
	l.loads = append(l.loads, img)
	target.SetImage(&Image{Name: img.Placeholder})
}

// diagnostics collects reported diagnostics.
type diagnostics struct {
	items []*Diagnostic
}

func (d *diagnostics) hook(diag *Diagnostic) {
	d.items = append(d.items, diag)
}

func (d *diagnostics) kinds() []DiagnosticKind {
	out := make([]DiagnosticKind, 0, len(d.items))
	for _, item := range d.items {
		out = append(out, item.Kind)
	}
	return out
}

func testConfig(d *diagnostics) Config {
	cfg := DefaultConfig()
	cfg.OnDiagnostic = d.hook
	return cfg
}
