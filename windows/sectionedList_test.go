package windows

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

func sampleDataset() []sectiontable.Section {
	return []sectiontable.Section{
		{Title: "Network", Cells: []sectiontable.Cell{
			{Title: "Wi-Fi", Action: "pick", Arguments: sectiontable.Arguments{"id": "wifi"}},
			{Title: "Airplane Mode", Accessory: sectiontable.AccessorySwitch, AccessoryAction: "toggle"},
		}},
		{Cells: []sectiontable.Cell{
			{Title: "About", Style: sectiontable.StyleSubtitle, Subtitle: "Version"},
		}},
	}
}

func newTestList(t *testing.T, sections []sectiontable.Section) (*sectiontable.Table, *SectionedList) {
	t.Helper()
	test.NewTempApp(t).Settings().SetTheme(CustomTheme{})
	table := sectiontable.NewTable(sectiontable.DefaultConfig())
	table.SetDataset(sections)
	return table, NewSectionedList(table)
}

func cellIn(t *testing.T, holder *fyne.Container) *TableCell {
	t.Helper()
	require.Len(t, holder.Objects, 2)
	cell, ok := holder.Objects[1].(*TableCell)
	require.True(t, ok, "holder shows a table cell")
	return cell
}

func TestSectionedList_Rows(t *testing.T) {
	table, l := newTestList(t, sampleDataset())

	assert.Equal(t, 4, l.RowCount(), "untitled sections have no header row")
	assert.Equal(t, []int{0, 3}, l.headers)
	assert.True(t, l.rows[0].header)
	assert.Equal(t, sectiontable.Coordinate{Section: 1, Row: 0}, l.rows[3].coord)

	reloaded := 0
	l.OnReload = func() { reloaded++ }
	table.RefreshWithDataset(sampleDataset()[:1])
	assert.Equal(t, 1, reloaded)
	assert.Equal(t, 3, l.RowCount())
}

func TestSectionedList_RowHeights(t *testing.T) {
	_, l := newTestList(t, []sectiontable.Section{
		{Title: "Sized", Cells: []sectiontable.Cell{
			{Title: "Tall", ClassAttributes: sectiontable.Attributes{"height": sectiontable.Leaf{Value: 90}}},
			{Title: "Plain"},
			{Title: "Sub", Style: sectiontable.StyleSubtitle},
		}},
	})

	assert.Equal(t, float32(90), l.rowHeight(l.rows[1]))
	assert.Equal(t, float32(44), l.rowHeight(l.rows[2]))
	assert.Equal(t, float32(64), l.rowHeight(l.rows[3]))
	assert.Equal(t, float32(32), l.rowHeight(l.rows[0]))
	assert.NotContains(t, l.heights, 2, "default rows keep the list height")
}

func TestSectionedList_UpdateItemReusesCells(t *testing.T) {
	_, l := newTestList(t, sampleDataset())
	holder := container.NewStack()

	l.updateItem(0, holder)
	require.Len(t, holder.Objects, 2)
	_, isCell := holder.Objects[1].(*TableCell)
	assert.False(t, isCell, "row 0 is a header")

	l.updateItem(1, holder)
	first := cellIn(t, holder)
	assert.Equal(t, "Wi-Fi", first.title.Text)
	c, ok := l.CoordinateOf(first)
	require.True(t, ok)
	assert.Equal(t, sectiontable.Coordinate{Section: 0, Row: 0}, c)

	l.updateItem(2, holder)
	second := cellIn(t, holder)
	assert.Same(t, first, second, "the released cell is acquired again")
	assert.Equal(t, "Airplane Mode", second.title.Text)
	c, _ = l.CoordinateOf(second)
	assert.Equal(t, sectiontable.Coordinate{Section: 0, Row: 1}, c)

	other := container.NewStack()
	l.updateItem(1, other)
	assert.NotSame(t, second, cellIn(t, other), "displayed cells are not shared")
}

func TestSectionedList_TapDispatchesAction(t *testing.T) {
	table, l := newTestList(t, sampleDataset())
	var got sectiontable.Arguments
	require.NoError(t, table.Actions().Register("pick", func(args sectiontable.Arguments) { got = args }))

	holder := container.NewStack()
	l.updateItem(1, holder)
	test.Tap(cellIn(t, holder))

	require.NotNil(t, got)
	assert.Equal(t, "wifi", got["id"])
	cell, ok := got[sectiontable.ArgumentCell].(*sectiontable.Cell)
	require.True(t, ok)
	assert.Equal(t, "Wi-Fi", cell.Title)
}

func TestSectionedList_SwitchDispatchesAccessoryAction(t *testing.T) {
	table, l := newTestList(t, sampleDataset())
	var got sectiontable.Arguments
	require.NoError(t, table.Actions().Register("toggle", func(args sectiontable.Arguments) { got = args }))

	holder := container.NewStack()
	l.updateItem(2, holder)
	cell := cellIn(t, holder)
	require.NotNil(t, cell.toggle)
	test.Tap(cell.toggle)

	require.NotNil(t, got)
	assert.Equal(t, true, got[sectiontable.ArgumentValue])
}

func TestSectionedList_CoordinateOfUnknownView(t *testing.T) {
	_, l := newTestList(t, sampleDataset())

	_, ok := l.CoordinateOf(NewTableCell("cell", sectiontable.StyleDefault, "default"))
	assert.False(t, ok)
	_, ok = l.CoordinateOf(nil)
	assert.False(t, ok)
}

func TestSectionedList_ScrollToSection(t *testing.T) {
	_, l := newTestList(t, sampleDataset())

	assert.NotPanics(t, func() {
		l.ScrollToSection(1)
		l.ScrollToSection(5)
		l.ScrollToSection(-1)
	})
}
