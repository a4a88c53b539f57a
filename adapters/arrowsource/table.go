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

// Package arrowsource builds section datasets from Arrow tables, Parquet
// files and CSV files. Each row becomes one cell; rows are grouped into
// sections by the value of a column.
package arrowsource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// ErrUnknownColumn is returned when a mapping names a column the table lacks.
var ErrUnknownColumn = errors.New("unknown column")

// Mapping describes how table columns map onto cells.
type Mapping struct {
	// SectionColumn groups rows into sections titled by its value. When
	// empty all rows go into one section titled SectionTitle.
	SectionColumn string
	SectionTitle  string

	// TitleColumn defaults to the first column that is not SectionColumn.
	TitleColumn    string
	SubtitleColumn string

	// Action is dispatched when a cell is selected. Every column value of
	// the row is passed in the arguments under its column name.
	Action string

	// Limit caps the number of rows read; zero reads all rows.
	Limit int64
}

// DefaultMapping returns a mapping that titles cells by the first column.
func DefaultMapping() Mapping {
	return Mapping{SectionTitle: "Rows", Action: "openRow"}
}

// columns are the resolved column indexes of a mapping; -1 means unused.
type columns struct {
	section, title, subtitle int
}

func resolve(schema *arrow.Schema, m Mapping) (columns, error) {
	lookup := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		idx := schema.FieldIndices(name)
		if len(idx) == 0 {
			return -1, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		return idx[0], nil
	}

	var (
		c   columns
		err error
	)
	if c.section, err = lookup(m.SectionColumn); err != nil {
		return c, err
	}
	if c.title, err = lookup(m.TitleColumn); err != nil {
		return c, err
	}
	if c.subtitle, err = lookup(m.SubtitleColumn); err != nil {
		return c, err
	}
	if c.title < 0 {
		for i := 0; i < schema.NumFields(); i++ {
			if i != c.section {
				c.title = i
				break
			}
		}
	}
	return c, nil
}

// FromTable converts tbl into sections. Sections appear in the order their
// group value is first seen.
func FromTable(tbl arrow.Table, m Mapping) ([]sectiontable.Section, error) {
	tr := array.NewTableReader(tbl, 1024)
	defer tr.Release()
	return FromRecords(tr, m)
}

// FromRecords converts every record of rr into sections. Columns are
// resolved against the first record, since inferring readers only know their
// schema after reading.
func FromRecords(rr array.RecordReader, m Mapping) ([]sectiontable.Section, error) {
	var (
		cols     columns
		resolved bool
		err      error
	)
	b := newBuilder(m)
	for rr.Next() {
		rec := rr.Record()
		if !resolved {
			if cols, err = resolve(rec.Schema(), m); err != nil {
				return nil, err
			}
			resolved = true
		}
		if !b.add(rec, cols) {
			break
		}
	}
	if err := rr.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return b.sections, nil
}

type builder struct {
	m        Mapping
	rows     int64
	sections []sectiontable.Section
	bySource map[string]int
}

func newBuilder(m Mapping) *builder {
	return &builder{m: m, bySource: make(map[string]int)}
}

// add appends the rows of rec and reports whether more rows are wanted.
func (b *builder) add(rec arrow.Record, cols columns) bool {
	schema := rec.Schema()
	for i := 0; i < int(rec.NumRows()); i++ {
		if b.m.Limit > 0 && b.rows >= b.m.Limit {
			return false
		}
		b.rows++

		args := make(sectiontable.Arguments, rec.NumCols())
		var search []string
		for c := 0; c < int(rec.NumCols()); c++ {
			col := rec.Column(c)
			if col.IsNull(i) {
				continue
			}
			args[schema.Field(c).Name] = col.GetOneForMarshal(i)
			if c != cols.title && c != cols.subtitle {
				search = append(search, col.ValueStr(i))
			}
		}

		cell := sectiontable.Cell{
			Title:      text(rec, cols.title, i),
			Subtitle:   text(rec, cols.subtitle, i),
			Action:     b.m.Action,
			Arguments:  args,
			SearchText: strings.Join(search, " "),
		}
		if cell.Subtitle != "" {
			cell.Style = sectiontable.StyleSubtitle
		}

		title := b.m.SectionTitle
		if cols.section >= 0 {
			title = text(rec, cols.section, i)
		}
		idx, ok := b.bySource[title]
		if !ok {
			idx = len(b.sections)
			b.bySource[title] = idx
			b.sections = append(b.sections, sectiontable.Section{Title: title, Cells: []sectiontable.Cell{}})
		}
		b.sections[idx].Cells = append(b.sections[idx].Cells, cell)
	}
	return true
}

func text(rec arrow.Record, col, row int) string {
	if col < 0 || col >= int(rec.NumCols()) {
		return ""
	}
	arr := rec.Column(col)
	if arr.IsNull(row) {
		return ""
	}
	return arr.ValueStr(row)
}
