package deltasharing

import (
	"testing"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

func TestSections(t *testing.T) {
	sections := Sections(
		[]string{"sales", "empty", "hr"},
		[]delta_sharing.Table{
			{Share: "sales", Schema: "eu", Name: "orders"},
			{Share: "hr", Schema: "core", Name: "staff"},
			{Share: "sales", Schema: "eu", Name: "customers"},
			{Share: "sales", Schema: "us", Name: "orders"},
		},
	)

	require.Len(t, sections, 4)
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"empty", "hr.core", "sales.eu", "sales.us"}, titles)

	assert.NotNil(t, sections[0].Cells)
	assert.Empty(t, sections[0].Cells)

	eu := sections[2].Cells
	require.Len(t, eu, 2)
	assert.Equal(t, "customers", eu[0].Title)
	assert.Equal(t, "orders", eu[1].Title)
	assert.Equal(t, ActionOpenTable, eu[1].Action)
	assert.Equal(t, sectiontable.Arguments{ArgShare: "sales", ArgSchema: "eu", ArgTable: "orders"}, eu[1].Arguments)
}

func TestTableFromArguments(t *testing.T) {
	table, ok := TableFromArguments(sectiontable.Arguments{
		ArgShare: "sales", ArgSchema: "eu", ArgTable: "orders", "cell": &sectiontable.Cell{},
	})
	require.True(t, ok)
	assert.Equal(t, "sales", table.Share)
	assert.Equal(t, "eu", table.Schema)
	assert.Equal(t, "orders", table.Name)

	_, ok = TableFromArguments(sectiontable.Arguments{ArgShare: "sales"})
	assert.False(t, ok)
}

func TestIsProfile(t *testing.T) {
	assert.True(t, IsProfile([]byte(`{"shareCredentialsVersion": 1, "endpoint": "https://x", "bearerToken": "t"}`)))
	assert.False(t, IsProfile([]byte(`{"endpoint": "https://x"}`)))
	assert.False(t, IsProfile([]byte(`sections: []`)))
}
