package windows

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
)

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.CSV", "notes.md", ".hidden.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	entries, err := listDirectory(dir, datasetExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "a.CSV", "b.yaml"}, entries)

	_, err = listDirectory(filepath.Join(dir, "missing"), datasetExtensions)
	assert.Error(t, err)
}

func TestQueryOptionsDialog_Mapping(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("query")
	current := arrowsource.Mapping{SectionColumn: "region", SectionTitle: "Rows", Action: "openRow", Limit: 10}
	qod := NewQueryOptionsDialog(w, []string{"region", "city", "population"}, current, nil)

	assert.Equal(t, "region", qod.sectionSelect.Selected)
	assert.Equal(t, noColumn, qod.titleSelect.Selected)
	assert.Equal(t, "10", qod.limitEntry.Text)

	qod.titleSelect.SetSelected("city")
	qod.subtitleSelect.SetSelected("population")
	qod.limitEntry.SetText("")
	m, err := qod.Mapping()
	require.NoError(t, err)
	assert.Equal(t, arrowsource.Mapping{
		SectionColumn:  "region",
		SectionTitle:   "Rows",
		TitleColumn:    "city",
		SubtitleColumn: "population",
		Action:         "openRow",
	}, m)

	qod.limitEntry.SetText("-3")
	_, err = qod.Mapping()
	assert.Error(t, err)

	qod.limitEntry.SetText("25")
	qod.titleSelect.SetSelected("region")
	_, err = qod.Mapping()
	assert.Error(t, err, "title and group column must differ")
}

func TestQueryOptionsDialog_Confirm(t *testing.T) {
	a := test.NewTempApp(t)
	var got *arrowsource.Mapping
	qod := NewQueryOptionsDialog(a.NewWindow("query"), []string{"city"}, arrowsource.DefaultMapping(), func(m arrowsource.Mapping) {
		got = &m
	})

	qod.sectionSelect.SetSelected("city")
	qod.handleConfirm()

	require.NotNil(t, got)
	assert.Equal(t, "city", got.SectionColumn)
	assert.Equal(t, "openRow", got.Action)
}
