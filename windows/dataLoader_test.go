package windows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
)

const profileJSON = `{"shareCredentialsVersion": 1, "endpoint": "https://sharing.example.com/delta-sharing/", "bearerToken": "token"}`

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    FileType
	}{
		{"settings.yaml", "", FileTypeDocument},
		{"SETTINGS.YML", "", FileTypeDocument},
		{"cities.csv", "", FileTypeCSV},
		{"cities.parquet", "", FileTypeParquet},
		{"dataset.json", `{"sections": []}`, FileTypeDocument},
		{"profile.json", profileJSON, FileTypeDeltaSharingProfile},
		{"config.share", profileJSON, FileTypeDeltaSharingProfile},
		{"notes.txt", "hello", FileTypeUnknown},
		{"image.png", "", FileTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFileType(tt.path, []byte(tt.content)))
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataset_Document(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
sections:
  - title: Network
    cells:
      - title: Wi-Fi
        action: openWifi
      - title: Bluetooth
        cellStyle: sideways
  - title: Empty
`)

	ds, err := LoadDataset(path, arrowsource.DefaultMapping(), 5)
	require.NoError(t, err)
	assert.Equal(t, FileTypeDocument, ds.Type)
	require.Len(t, ds.Sections, 2)
	assert.Len(t, ds.Sections[0].Cells, 2)
	assert.Len(t, ds.Diagnostics, 1, "the unknown cell style is reported")
	assert.Equal(t, "Loaded document: settings.yaml (2 sections, 2 rows), 1 warnings", ds.Summary())
}

func TestLoadDataset_CSV(t *testing.T) {
	path := writeFile(t, "cities.csv", "city,population\nStockholm,975000\nOslo,709000\n")

	ds, err := LoadDataset(path, arrowsource.DefaultMapping(), 5)
	require.NoError(t, err)
	assert.Equal(t, FileTypeCSV, ds.Type)
	require.Len(t, ds.Sections, 1)
	assert.Equal(t, "Rows", ds.Sections[0].Title)
	require.Len(t, ds.Sections[0].Cells, 2)
	assert.Equal(t, "Stockholm", ds.Sections[0].Cells[0].Title)
}

func TestLoadDataset_Unsupported(t *testing.T) {
	path := writeFile(t, "notes.txt", "plain text")

	_, err := LoadDataset(path, arrowsource.DefaultMapping(), 5)
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.json"), arrowsource.DefaultMapping(), 5)
	assert.Error(t, err)
}
