// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"image/color"
	"maps"
	"slices"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// TableCell is the recyclable row view of a SectionedList.
type TableCell struct {
	widget.BaseWidget

	identifier string
	style      sectiontable.CellStyle
	class      string

	background *canvas.Rectangle
	highlight  *canvas.Rectangle
	image      *canvas.Image
	imageFrame *canvas.Rectangle
	imageBox   *fyne.Container
	title      *widget.Label
	subtitle   *widget.Label
	slotBox    *fyne.Container
	details    *fyne.Container
	accessory  *fyne.Container
	toggle     *widget.Check
	overlay    *fyne.Container
	label      *contentLabel

	textLabel   *labelTarget
	detailLabel *labelTarget

	slots     map[int]fyne.CanvasObject
	clips     bool
	flexible  bool
	selection sectiontable.SelectionStyle
	height    float32

	highlighted bool

	// OnTapped is called when the row is tapped.
	OnTapped func()
}

var (
	_ sectiontable.CellView          = (*TableCell)(nil)
	_ sectiontable.PropertySetter    = (*TableCell)(nil)
	_ sectiontable.PropertyContainer = (*TableCell)(nil)
	_ fyne.Tappable                  = (*TableCell)(nil)
)

// NewTableCell creates a cell laid out for style. class is kept for
// attribute handlers; every class shares the same widget tree.
func NewTableCell(identifier string, style sectiontable.CellStyle, class string) *TableCell {
	c := &TableCell{
		identifier: identifier,
		style:      style,
		class:      class,
		background: canvas.NewRectangle(color.Transparent),
		highlight:  canvas.NewRectangle(color.Transparent),
		image:      canvas.NewImageFromResource(nil),
		imageFrame: canvas.NewRectangle(color.Transparent),
		title:      widget.NewLabel(""),
		subtitle:   widget.NewLabel(""),
		slotBox:    container.NewHBox(),
		details:    container.NewStack(),
		accessory:  container.NewStack(),
		overlay:    container.NewWithoutLayout(),
		slots:      make(map[int]fyne.CanvasObject),
		selection:  sectiontable.SelectionBlue,
	}
	c.image.FillMode = canvas.ImageFillContain
	c.image.SetMinSize(fyne.NewSquareSize(theme.Size(theme.SizeNameInlineIcon)))
	c.imageBox = container.NewStack(c.imageFrame, c.image)
	c.imageBox.Hide()
	c.highlight.Hide()
	c.title.Truncation = fyne.TextTruncateEllipsis
	c.subtitle.Truncation = fyne.TextTruncateEllipsis
	c.textLabel = &labelTarget{label: c.title}
	c.detailLabel = &labelTarget{label: c.subtitle}

	switch style {
	case sectiontable.StyleValue1:
		c.subtitle.Alignment = fyne.TextAlignTrailing
		c.subtitle.Importance = widget.LowImportance
	case sectiontable.StyleValue2:
		c.title.SizeName = theme.SizeNameCaptionText
		c.title.Importance = widget.HighImportance
	case sectiontable.StyleSubtitle:
		c.subtitle.SizeName = theme.SizeNameCaptionText
		c.subtitle.Importance = widget.LowImportance
	}
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (c *TableCell) CreateRenderer() fyne.WidgetRenderer {
	var labels fyne.CanvasObject
	switch c.style {
	case sectiontable.StyleValue1:
		labels = container.NewBorder(nil, nil, c.title, nil, c.subtitle)
	case sectiontable.StyleValue2:
		labels = container.NewBorder(nil, nil, c.title, nil, c.subtitle)
	case sectiontable.StyleSubtitle:
		labels = container.NewVBox(c.title, c.subtitle)
	default:
		labels = c.title
	}
	trailing := container.NewHBox(c.slotBox, c.details, c.accessory)
	row := container.NewBorder(nil, nil, container.NewCenter(c.imageBox), trailing, labels)
	root := container.NewStack(c.background, c.highlight, container.NewPadded(row), c.overlay)
	return &tableCellRenderer{cell: c, root: root}
}

// Tapped highlights the row in its selection style and notifies OnTapped.
func (c *TableCell) Tapped(*fyne.PointEvent) {
	c.setHighlighted(true)
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

// setHighlighted shows the selection highlight. Clearing it fades out.
func (c *TableCell) setHighlighted(on bool) {
	if on {
		name, ok := selectionColorName(c.selection)
		if !ok {
			return
		}
		c.highlighted = true
		c.highlight.FillColor = theme.Color(name)
		c.highlight.Show()
		c.highlight.Refresh()
		return
	}
	if !c.highlighted {
		return
	}
	c.highlighted = false
	fade := canvas.NewColorRGBAAnimation(c.highlight.FillColor, color.Transparent, 250*time.Millisecond, func(col color.Color) {
		c.highlight.FillColor = col
		c.highlight.Refresh()
	})
	fade.Start()
}

func (c *TableCell) ReuseIdentifier() string { return c.identifier }

// Class returns the cell class the view was constructed for.
func (c *TableCell) Class() string { return c.class }

func (c *TableCell) SetClipsToBounds(clip bool) {
	c.clips = clip
	c.Refresh()
}

func (c *TableCell) SetBackgroundColor(col color.Color) {
	if col == nil {
		col = color.Transparent
	}
	c.background.FillColor = col
	c.background.Refresh()
}

func (c *TableCell) SetSelectionStyle(style sectiontable.SelectionStyle) {
	c.selection = style
}

func (c *TableCell) SetFlexibleWidth(flexible bool) {
	c.flexible = flexible
}

func (c *TableCell) SetAccessoryView(v any) {
	if obj := canvasObject(v); obj != nil {
		c.accessory.Objects = []fyne.CanvasObject{obj}
	} else {
		c.accessory.Objects = nil
	}
	c.accessory.Refresh()
}

func (c *TableCell) SetSwitchAccessory(on bool, changed func(on bool)) {
	if c.toggle == nil {
		c.toggle = widget.NewCheck("", nil)
	}
	c.toggle.OnChanged = nil
	c.toggle.SetChecked(on)
	c.toggle.OnChanged = changed
	c.accessory.Objects = []fyne.CanvasObject{c.toggle}
	c.accessory.Refresh()
}

func (c *TableCell) SetTitle(text string) {
	c.title.SetText(text)
}

func (c *TableCell) SetTitleHidden(hidden bool) {
	if hidden {
		c.title.Hide()
	} else {
		c.title.Show()
	}
}

func (c *TableCell) SetSubtitle(text string) {
	c.subtitle.SetText(text)
	if text == "" && c.style != sectiontable.StyleValue1 {
		c.subtitle.Hide()
	} else {
		c.subtitle.Show()
	}
}

func (c *TableCell) SetImage(img *sectiontable.Image) {
	res, ok := imageResource(img)
	if !ok {
		c.image.Resource = nil
		c.imageBox.Hide()
		c.image.Refresh()
		return
	}
	if img.Radius > 0 {
		c.SetImageCornerRadius(img.Radius)
	}
	c.image.Resource = res
	c.imageBox.Show()
	c.image.Refresh()
}

func (c *TableCell) SetImageSize(size float32) {
	c.image.SetMinSize(fyne.NewSquareSize(size))
	c.imageBox.Refresh()
}

// SetImageCornerRadius draws a rounded frame behind the image.
func (c *TableCell) SetImageCornerRadius(radius float32) {
	c.imageFrame.CornerRadius = radius
	if radius > 0 {
		c.imageFrame.FillColor = theme.Color(theme.ColorNameInputBackground)
	} else {
		c.imageFrame.FillColor = color.Transparent
	}
	c.imageFrame.Refresh()
}

func (c *TableCell) Subviews() []int {
	return slices.Sorted(maps.Keys(c.slots))
}

func (c *TableCell) SetSubview(slot int, v any) {
	obj := canvasObject(v)
	if obj == nil {
		c.RemoveSubview(slot)
		return
	}
	c.slots[slot] = obj
	c.layoutSlots()
}

func (c *TableCell) RemoveSubview(slot int) {
	if _, ok := c.slots[slot]; !ok {
		return
	}
	delete(c.slots, slot)
	c.layoutSlots()
}

func (c *TableCell) layoutSlots() {
	objects := make([]fyne.CanvasObject, 0, len(c.slots))
	for _, slot := range c.Subviews() {
		objects = append(objects, c.slots[slot])
	}
	c.slotBox.Objects = objects
	c.slotBox.Refresh()
}

func (c *TableCell) SetDetails(v any) {
	if obj := canvasObject(v); obj != nil {
		c.details.Objects = []fyne.CanvasObject{obj}
	} else {
		c.details.Objects = nil
	}
	c.details.Refresh()
}

func (c *TableCell) ContentLabel() (sectiontable.PropertySetter, bool) {
	if c.label == nil {
		return nil, false
	}
	return c.label, true
}

func (c *TableCell) AddContentLabel() sectiontable.PropertySetter {
	c.label = newContentLabel(c)
	c.overlay.Objects = []fyne.CanvasObject{c.label.text}
	c.overlay.Refresh()
	return c.label
}

// SetProperty handles the class attributes a cell understands.
func (c *TableCell) SetProperty(name string, value any) bool {
	switch name {
	case "backgroundColor":
		col, ok := toColor(value)
		if ok {
			c.SetBackgroundColor(col)
		}
		return ok
	case "height":
		h, ok := toFloat(value)
		if ok {
			c.height = h
			c.Refresh()
		}
		return ok
	case "clipsToBounds", "masksToBounds":
		b, ok := toBool(value)
		if ok {
			c.SetClipsToBounds(b)
		}
		return ok
	case "selectionStyle":
		s, _ := value.(string)
		style, ok := sectiontable.ParseSelectionStyle(s)
		if ok {
			c.selection = style
		}
		return ok
	}
	return false
}

// Property exposes the built-in labels for nested attribute mappings.
func (c *TableCell) Property(name string) (any, bool) {
	switch name {
	case "textLabel":
		return c.textLabel, true
	case "detailTextLabel":
		return c.detailLabel, true
	}
	return nil, false
}

type tableCellRenderer struct {
	cell *TableCell
	root *fyne.Container
}

func (r *tableCellRenderer) Layout(size fyne.Size) {
	r.root.Resize(size)
	if l := r.cell.label; l != nil {
		l.layout(size, r.cell.clips)
	}
}

func (r *tableCellRenderer) MinSize() fyne.Size {
	min := r.root.MinSize()
	if r.cell.flexible {
		min.Width = 0
	}
	if r.cell.height > min.Height {
		min.Height = r.cell.height
	}
	return min
}

func (r *tableCellRenderer) Refresh() {
	r.root.Refresh()
	r.Layout(r.cell.Size())
}

func (r *tableCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.root}
}

func (r *tableCellRenderer) Destroy() {}

// labelTarget applies attributes to a built-in label.
type labelTarget struct {
	label *widget.Label
}

func (l *labelTarget) SetProperty(name string, value any) bool {
	switch name {
	case "text":
		s, ok := value.(string)
		if ok {
			l.label.SetText(s)
		}
		return ok
	case "bold", "italic", "monospace":
		b, ok := toBool(value)
		if !ok {
			return false
		}
		switch name {
		case "bold":
			l.label.TextStyle.Bold = b
		case "italic":
			l.label.TextStyle.Italic = b
		default:
			l.label.TextStyle.Monospace = b
		}
		l.label.Refresh()
		return true
	case "alignment":
		a, ok := parseAlignment(value)
		if ok {
			l.label.Alignment = a
			l.label.Refresh()
		}
		return ok
	case "wrap":
		b, ok := toBool(value)
		if ok {
			if b {
				l.label.Wrapping = fyne.TextWrapWord
				l.label.Truncation = fyne.TextTruncateOff
			} else {
				l.label.Wrapping = fyne.TextWrapOff
				l.label.Truncation = fyne.TextTruncateEllipsis
			}
			l.label.Refresh()
		}
		return ok
	case "hidden":
		b, ok := toBool(value)
		if ok {
			if b {
				l.label.Hide()
			} else {
				l.label.Show()
			}
		}
		return ok
	}
	return false
}

// contentLabel is a label positioned by frame inside the cell's content area.
type contentLabel struct {
	cell  *TableCell
	text  *canvas.Text
	frame sectiontable.Frame
}

func newContentLabel(cell *TableCell) *contentLabel {
	t := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	t.TextSize = theme.TextSize()
	return &contentLabel{cell: cell, text: t}
}

func (l *contentLabel) SetProperty(name string, value any) bool {
	switch name {
	case "text":
		s, ok := value.(string)
		if ok {
			l.text.Text = s
			l.text.Refresh()
		}
		return ok
	case "frame":
		f, ok := sectiontable.ParseFrame(value)
		if ok {
			l.frame = f
			l.layout(l.cell.Size(), l.cell.clips)
		}
		return ok
	case "hidden":
		b, ok := toBool(value)
		if ok {
			if b {
				l.text.Hide()
			} else {
				l.text.Show()
			}
		}
		return ok
	case "bold":
		b, ok := toBool(value)
		if ok {
			l.text.TextStyle.Bold = b
			l.text.Refresh()
		}
		return ok
	case "italic":
		b, ok := toBool(value)
		if ok {
			l.text.TextStyle.Italic = b
			l.text.Refresh()
		}
		return ok
	case "textColor":
		col, ok := toColor(value)
		if ok {
			l.text.Color = col
			l.text.Refresh()
		}
		return ok
	case "fontSize":
		size, ok := toFloat(value)
		if ok && size > 0 {
			l.text.TextSize = size
			l.text.Refresh()
		}
		return ok
	case "alignment":
		a, ok := parseAlignment(value)
		if ok {
			l.text.Alignment = a
			l.text.Refresh()
		}
		return ok
	}
	return false
}

// layout places the label at its frame. Clipping cells keep it inside size.
func (l *contentLabel) layout(size fyne.Size, clip bool) {
	f := l.frame
	w, h := f.Width, f.Height
	if clip {
		w = max(0, min(w, size.Width-f.X))
		h = max(0, min(h, size.Height-f.Y))
	}
	l.text.Move(fyne.NewPos(f.X, f.Y))
	l.text.Resize(fyne.NewSize(w, h))
}

func parseAlignment(v any) (fyne.TextAlign, bool) {
	switch v {
	case "leading", "left":
		return fyne.TextAlignLeading, true
	case "center":
		return fyne.TextAlignCenter, true
	case "trailing", "right":
		return fyne.TextAlignTrailing, true
	}
	return fyne.TextAlignLeading, false
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	}
	return 0, false
}
