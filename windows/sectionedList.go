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

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// listRow is one entry of the flattened list: a section header or a cell.
type listRow struct {
	header bool
	coord  sectiontable.Coordinate
}

// SectionedList renders a Table as a scrolling list with section headers.
// It recycles TableCells per reuse identifier.
type SectionedList struct {
	widget.BaseWidget

	table *sectiontable.Table
	list  *widget.List

	rows    []listRow
	headers []int
	heights map[widget.ListItemID]float32

	free      map[string][]*TableCell
	positions map[*TableCell]sectiontable.Coordinate
	holders   map[*fyne.Container]*TableCell

	// OnReload is called after the rows are rebuilt.
	OnReload func()
}

var (
	_ sectiontable.Container = (*SectionedList)(nil)
	_ sectiontable.Pool      = (*SectionedList)(nil)
)

// NewSectionedList creates a list attached to table.
func NewSectionedList(table *sectiontable.Table) *SectionedList {
	l := &SectionedList{
		table:     table,
		free:      make(map[string][]*TableCell),
		positions: make(map[*TableCell]sectiontable.Coordinate),
		holders:   make(map[*fyne.Container]*TableCell),
		heights:   make(map[widget.ListItemID]float32),
	}
	l.list = widget.NewList(
		func() int { return len(l.rows) },
		func() fyne.CanvasObject { return container.NewStack(rowSpacer()) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			l.updateItem(id, obj.(*fyne.Container))
		},
	)
	l.list.OnSelected = func(id widget.ListItemID) {
		// Rows handle their own taps; list selection only comes from the keyboard.
		l.list.Unselect(id)
		if id >= 0 && id < len(l.rows) && !l.rows[id].header {
			l.table.OnSelect(l.rows[id].coord)
		}
	}
	l.ExtendBaseWidget(l)
	table.Attach(l)
	l.rebuild()
	return l
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (l *SectionedList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.list)
}

// Reload rebuilds the rows from the table and redraws every visible row.
func (l *SectionedList) Reload() {
	l.rebuild()
	l.list.Refresh()
	if l.OnReload != nil {
		l.OnReload()
	}
}

// Deselect clears the highlight of the row at c.
func (l *SectionedList) Deselect(c sectiontable.Coordinate) {
	for cell, at := range l.positions {
		if at == c {
			cell.setHighlighted(false)
		}
	}
	if id, ok := l.rowID(c); ok {
		l.list.Unselect(id)
	}
}

// CoordinateOf returns the coordinate a displayed view currently shows.
func (l *SectionedList) CoordinateOf(view sectiontable.CellView) (sectiontable.Coordinate, bool) {
	cell, ok := view.(*TableCell)
	if !ok {
		return sectiontable.Coordinate{}, false
	}
	c, ok := l.positions[cell]
	return c, ok
}

// Acquire pops a released cell for identifier.
func (l *SectionedList) Acquire(identifier string) sectiontable.CellView {
	free := l.free[identifier]
	if len(free) == 0 {
		return nil
	}
	cell := free[len(free)-1]
	l.free[identifier] = free[:len(free)-1]
	return cell
}

// Construct creates a new cell.
func (l *SectionedList) Construct(identifier string, style sectiontable.CellStyle, class string) sectiontable.CellView {
	cell := NewTableCell(identifier, style, class)
	cell.OnTapped = func() { l.tapped(cell) }
	return cell
}

// ScrollToSection scrolls the header of section to the top.
func (l *SectionedList) ScrollToSection(section int) {
	if section < 0 || section >= len(l.headers) {
		return
	}
	l.list.ScrollTo(l.headers[section])
}

// RowCount returns the number of list rows, headers included.
func (l *SectionedList) RowCount() int {
	return len(l.rows)
}

func (l *SectionedList) tapped(cell *TableCell) {
	if c, ok := l.positions[cell]; ok {
		l.table.OnSelect(c)
	}
}

// rebuild flattens the table into rows. Sections without a title have no
// header row.
func (l *SectionedList) rebuild() {
	l.rows = l.rows[:0]
	l.headers = l.headers[:0]
	for s := 0; s < l.table.SectionCount(); s++ {
		l.headers = append(l.headers, len(l.rows))
		if title, _ := l.table.SectionTitle(s); title != "" {
			l.rows = append(l.rows, listRow{header: true, coord: sectiontable.Coordinate{Section: s}})
		}
		for r := 0; r < l.table.RowCount(s); r++ {
			l.rows = append(l.rows, listRow{coord: sectiontable.Coordinate{Section: s, Row: r}})
		}
	}
	l.applyHeights()
}

// applyHeights sets the height of every row that differs from the default
// and resets rows that no longer do.
func (l *SectionedList) applyHeights() {
	def := theme.Size(SizeNameRowHeight)
	next := make(map[widget.ListItemID]float32)
	for id, row := range l.rows {
		if h := l.rowHeight(row); h != def {
			next[id] = h
		}
	}
	for id := range l.heights {
		if _, ok := next[id]; !ok && id < len(l.rows) {
			l.list.SetItemHeight(id, def)
		}
	}
	for id, h := range next {
		if l.heights[id] != h {
			l.list.SetItemHeight(id, h)
		}
	}
	l.heights = next
}

func (l *SectionedList) rowHeight(row listRow) float32 {
	if row.header {
		return theme.Size(SizeNameHeaderHeight)
	}
	cell, ok := l.table.CellAt(row.coord)
	if !ok {
		return theme.Size(SizeNameRowHeight)
	}
	if v, ok := cell.ClassAttributes.Leaf("height"); ok {
		if h, ok := toFloat(v); ok && h > 0 {
			return h
		}
	}
	if cell.Style == sectiontable.StyleSubtitle {
		return theme.Size(SizeNameSubtitleRowHeight)
	}
	return theme.Size(SizeNameRowHeight)
}

func (l *SectionedList) rowID(c sectiontable.Coordinate) (widget.ListItemID, bool) {
	for id, row := range l.rows {
		if !row.header && row.coord == c {
			return id, true
		}
	}
	return 0, false
}

// release returns the cell held by holder to the free list.
func (l *SectionedList) release(holder *fyne.Container) {
	cell, ok := l.holders[holder]
	if !ok {
		return
	}
	delete(l.holders, holder)
	delete(l.positions, cell)
	cell.setHighlighted(false)
	l.free[cell.identifier] = append(l.free[cell.identifier], cell)
}

func (l *SectionedList) updateItem(id widget.ListItemID, holder *fyne.Container) {
	l.release(holder)
	if id < 0 || id >= len(l.rows) {
		holder.Objects = []fyne.CanvasObject{rowSpacer()}
		holder.Refresh()
		return
	}
	row := l.rows[id]
	if row.header {
		title, _ := l.table.SectionTitle(row.coord.Section)
		holder.Objects = []fyne.CanvasObject{rowSpacer(), sectionHeader(title)}
		holder.Refresh()
		return
	}

	view := l.table.ResolveView(row.coord, l)
	cell, ok := view.(*TableCell)
	if !ok {
		holder.Objects = []fyne.CanvasObject{rowSpacer()}
		holder.Refresh()
		return
	}
	l.holders[holder] = cell
	l.positions[cell] = row.coord
	holder.Objects = []fyne.CanvasObject{rowSpacer(), cell}
	holder.Refresh()
}

// rowSpacer gives the item template the default row height.
func rowSpacer() fyne.CanvasObject {
	r := canvas.NewRectangle(color.Transparent)
	r.SetMinSize(fyne.NewSize(0, theme.Size(SizeNameRowHeight)))
	return r
}

func sectionHeader(title string) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(ColorNameSectionHeader))
	label := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	label.SizeName = theme.SizeNameCaptionText
	return container.NewStack(bg, label)
}
