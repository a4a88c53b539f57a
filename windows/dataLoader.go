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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
	"github.com/magpierre/fyne-sectiontable/adapters/deltasharing"
	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// ErrUnsupportedFile is returned for files no loader understands.
var ErrUnsupportedFile = errors.New("unsupported file type")

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeDocument
	FileTypeCSV
	FileTypeParquet
	FileTypeDeltaSharingProfile
)

// String returns the string representation of a FileType.
func (t FileType) String() string {
	switch t {
	case FileTypeDocument:
		return "document"
	case FileTypeCSV:
		return "csv"
	case FileTypeParquet:
		return "parquet"
	case FileTypeDeltaSharingProfile:
		return "delta sharing profile"
	default:
		return "unknown"
	}
}

// datasetExtensions are the file extensions the dataset picker shows.
var datasetExtensions = []string{".yaml", ".yml", ".json", ".csv", ".parquet", ".share", ".txt"}

// DetectFileType determines the type of file based on extension and content
func DetectFileType(filePath string, content []byte) FileType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FileTypeDocument
	case ".csv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		if deltasharing.IsProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeDocument
	case ".share", ".txt":
		if deltasharing.IsProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeUnknown
	default:
		return FileTypeUnknown
	}
}

// Dataset is a loaded file ready for a Table.
type Dataset struct {
	Path     string
	Type     FileType
	Sections []sectiontable.Section
	// Diagnostics are the recovered problems of a document.
	Diagnostics []*sectiontable.Diagnostic
	// Profile holds the profile content of a Delta Sharing profile.
	Profile string
}

// Summary describes the dataset for the status bar.
func (d *Dataset) Summary() string {
	rows := 0
	for _, s := range d.Sections {
		rows += len(s.Cells)
	}
	msg := fmt.Sprintf("Loaded %s: %s (%d sections, %d rows)",
		d.Type, filepath.Base(d.Path), len(d.Sections), rows)
	if n := len(d.Diagnostics); n > 0 {
		msg += fmt.Sprintf(", %d warnings", n)
	}
	return msg
}

// LoadDataset loads the file at path. Tabular files are grouped with m and
// profiles are browsed with a timeout of timeoutSeconds.
func LoadDataset(path string, m arrowsource.Mapping, timeoutSeconds int) (*Dataset, error) {
	var content []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".share", ".txt":
		var err error
		if content, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	ds := &Dataset{Path: path, Type: DetectFileType(path, content)}
	switch ds.Type {
	case FileTypeDocument:
		res, err := yamldoc.LoadFile(path)
		if err != nil {
			return nil, err
		}
		ds.Sections = res.Sections
		ds.Diagnostics = res.Diagnostics
	case FileTypeCSV:
		sections, err := arrowsource.LoadCSV(path, m)
		if err != nil {
			return nil, err
		}
		ds.Sections = sections
	case FileTypeParquet:
		ctx, cancel := createTimeoutContext(timeoutSeconds)
		defer cancel()
		sections, err := arrowsource.LoadParquet(ctx, path, m)
		if err != nil {
			return nil, err
		}
		ds.Sections = sections
	case FileTypeDeltaSharingProfile:
		ds.Profile = string(content)
		ctx, cancel := createTimeoutContext(timeoutSeconds)
		defer cancel()
		sections, err := deltasharing.Browse(ctx, ds.Profile)
		if err != nil {
			return nil, err
		}
		ds.Sections = sections
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
	return ds, nil
}

// loadSharedTable loads the rows of a shared table as a dataset.
func loadSharedTable(ctx context.Context, profile string, args sectiontable.Arguments, m arrowsource.Mapping) ([]sectiontable.Section, string, error) {
	table, ok := deltasharing.TableFromArguments(args)
	if !ok {
		return nil, "", fmt.Errorf("missing share, schema or table argument")
	}
	sections, err := deltasharing.LoadTable(ctx, profile, table, m)
	if err != nil {
		return nil, "", err
	}
	return sections, table.Share + "." + table.Schema + "." + table.Name, nil
}
