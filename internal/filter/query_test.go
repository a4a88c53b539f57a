package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

func cells() []sectiontable.Cell {
	return []sectiontable.Cell{
		{Title: "Wi-Fi", Subtitle: "On", Action: "openWifi", Arguments: sectiontable.Arguments{"rank": 3}},
		{Title: "Bluetooth", Subtitle: "Off", SearchText: "pairing devices"},
		{Title: "Battery", Subtitle: "82%", Arguments: sectiontable.Arguments{"rank": 12, "owner": "system"}},
	}
}

func matching(t *testing.T, query string) []string {
	t.Helper()
	f, err := Parse(query)
	require.NoError(t, err)
	require.NotNil(t, f)

	var titles []string
	for _, c := range cells() {
		ok, err := f.Evaluate(&c)
		require.NoError(t, err)
		if ok {
			titles = append(titles, c.Title)
		}
	}
	return titles
}

func TestParse_Queries(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"blue", []string{"Bluetooth"}},
		{"pairing", []string{"Bluetooth"}},
		{"system", []string{"Battery"}},
		{"title = wi-fi", []string{"Wi-Fi"}},
		{"subtitle != off", []string{"Wi-Fi", "Battery"}},
		{"title ~ t", []string{"Bluetooth", "Battery"}},
		{"rank > 5", []string{"Battery"}},
		{"rank <= 3", []string{"Wi-Fi"}},
		{"rank >= 3 AND title ~ bat", []string{"Battery"}},
		{"title = Bluetooth or action = openWifi", []string{"Wi-Fi", "Bluetooth"}},
		{"title ~ b AND subtitle = off OR rank = 3", []string{"Wi-Fi", "Bluetooth"}},
		{`title = "Wi-Fi"`, []string{"Wi-Fi"}},
		{"missing = x", nil},
		{"title > c", []string{"Wi-Fi"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, matching(t, tt.query))
		})
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse("   ")
	assert.NoError(t, err)
	assert.Nil(t, f)
}

func TestParse_Invalid(t *testing.T) {
	for _, query := range []string{
		"AND title = x",
		"title = x OR",
		"title = x AND OR subtitle = y",
		"= value",
	} {
		_, err := Parse(query)
		assert.ErrorIs(t, err, ErrInvalidQuery, query)
	}
}

func TestParse_OperatorInValue(t *testing.T) {
	f, err := Parse("title ~ a=b")
	require.NoError(t, err)

	expr, ok := f.(*Expression)
	require.True(t, ok)
	assert.Equal(t, "title", expr.Field)
	assert.Equal(t, OpContains, expr.Operator)
	assert.Equal(t, "a=b", expr.Value)
}

func TestParse_Description(t *testing.T) {
	f, err := Parse("title ~ wi AND rank > 2")
	require.NoError(t, err)
	assert.Equal(t, `(title ~ "wi" AND rank > "2")`, f.Description())
}

type errFilter struct{}

func (errFilter) Evaluate(*sectiontable.Cell) (bool, error) { return false, errors.New("boom") }

func (errFilter) Description() string { return "err" }

func TestCompositeFilter(t *testing.T) {
	cell := &sectiontable.Cell{Title: "Wi-Fi"}
	yes := &Expression{Field: "title", Operator: OpEqual, Value: "wi-fi"}
	no := &Expression{Field: "title", Operator: OpEqual, Value: "other"}

	empty := &CompositeFilter{}
	ok, err := empty.Evaluate(cell)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "empty filter", empty.Description())

	ok, _ = (&CompositeFilter{Filters: []sectiontable.Filter{yes, no}, Logic: LogicAND}).Evaluate(cell)
	assert.False(t, ok)
	ok, _ = (&CompositeFilter{Filters: []sectiontable.Filter{no, yes}, Logic: LogicOR}).Evaluate(cell)
	assert.True(t, ok)

	_, err = (&CompositeFilter{Filters: []sectiontable.Filter{errFilter{}}}).Evaluate(cell)
	assert.EqualError(t, err, "boom")

	_, err = (&CompositeFilter{Filters: []sectiontable.Filter{yes}, Logic: LogicOp(7)}).Evaluate(cell)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParse_ChainsStayFlat(t *testing.T) {
	f, err := Parse("title ~ a AND subtitle ~ b AND wifi OR rank > 2")
	require.NoError(t, err)

	or, ok := f.(*CompositeFilter)
	require.True(t, ok)
	assert.Equal(t, LogicOR, or.Logic)
	require.Len(t, or.Filters, 2)
	and, ok := or.Filters[0].(*CompositeFilter)
	require.True(t, ok)
	assert.Len(t, and.Filters, 3, "consecutive ANDs share one composite")
	assert.Equal(t, `((title ~ "a" AND subtitle ~ "b" AND any ~ "wifi") OR rank > "2")`, f.Description())

	assert.Equal(t, []string{"any", "rank", "subtitle", "title"}, Fields(f))
}

func TestCompositeFilter_ShortCircuits(t *testing.T) {
	cell := &sectiontable.Cell{Title: "Wi-Fi"}
	yes := &Expression{Field: "title", Operator: OpEqual, Value: "wi-fi"}
	no := &Expression{Field: "title", Operator: OpEqual, Value: "other"}

	ok, err := (&CompositeFilter{Filters: []sectiontable.Filter{no, errFilter{}}, Logic: LogicAND}).Evaluate(cell)
	require.NoError(t, err, "AND stops at the first failing filter")
	assert.False(t, ok)

	ok, err = (&CompositeFilter{Filters: []sectiontable.Filter{yes, errFilter{}}, Logic: LogicOR}).Evaluate(cell)
	require.NoError(t, err, "OR stops at the first passing filter")
	assert.True(t, ok)

	left := Combine(LogicAND, yes, no)
	joined := Combine(LogicAND, left, yes)
	assert.Len(t, joined.Filters, 3)
	assert.Len(t, left.Filters, 2, "combining does not grow the left composite")
	assert.Len(t, Combine(LogicOR, left, yes).Filters, 2)
}

func TestFilterSectionsWithQuery(t *testing.T) {
	f, err := Parse("subtitle = off")
	require.NoError(t, err)

	out, err := sectiontable.FilterSections([]sectiontable.Section{
		{Title: "Radios", Cells: cells()[:2]},
		{Title: "Power", Cells: cells()[2:]},
	}, f)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Radios", out[0].Title)
	require.Len(t, out[0].Cells, 1)
	assert.Equal(t, "Bluetooth", out[0].Cells[0].Title)
}
