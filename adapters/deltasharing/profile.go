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

// Package deltasharing lists the tables of a Delta Sharing profile as a
// section dataset and loads shared tables as datasets of rows.
package deltasharing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// ActionOpenTable is the action of every table cell. Its arguments carry the
// share, schema and table names.
const ActionOpenTable = "openTable"

// Argument keys of ActionOpenTable.
const (
	ArgShare  = "share"
	ArgSchema = "schema"
	ArgTable  = "table"
)

// ErrNoFiles is returned when a shared table has no data files.
var ErrNoFiles = errors.New("table has no data files")

// IsProfile reports whether content looks like a Delta Sharing profile.
func IsProfile(content []byte) bool {
	var profile map[string]any
	if err := json.Unmarshal(content, &profile); err != nil {
		return false
	}
	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]
	return hasVersion && hasEndpoint && hasBearerToken
}

// Browse connects with profile and returns one section per share and schema
// with one cell per table.
func Browse(ctx context.Context, profile string) ([]sectiontable.Section, error) {
	client, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}

	shares, _, err := client.ListShares(ctx, 0, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	names := make([]string, 0, len(shares))
	for _, share := range shares {
		names = append(names, share.Name)
	}

	// maxConcurrency=0 uses the client default.
	tables, _, err := client.ListAllTables_V2(ctx, 0, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list all tables: %w", err)
	}
	return Sections(names, tables), nil
}

// Sections groups tables into sections titled "share.schema", sorted by
// title. Shares without tables get an empty section titled by the share.
func Sections(shares []string, tables []delta_sharing.Table) []sectiontable.Section {
	byTitle := make(map[string]*sectiontable.Section)
	withTables := make(map[string]bool)

	for _, t := range tables {
		title := t.Share + "." + t.Schema
		s, ok := byTitle[title]
		if !ok {
			s = &sectiontable.Section{Title: title, Cells: []sectiontable.Cell{}}
			byTitle[title] = s
		}
		s.Cells = append(s.Cells, sectiontable.Cell{
			Title:      t.Name,
			Subtitle:   t.Share + "." + t.Schema + "." + t.Name,
			Style:      sectiontable.StyleSubtitle,
			Image:      &sectiontable.Image{Name: "table"},
			Action:     ActionOpenTable,
			Arguments:  sectiontable.Arguments{ArgShare: t.Share, ArgSchema: t.Schema, ArgTable: t.Name},
			SearchText: t.Share + " " + t.Schema,
		})
		withTables[t.Share] = true
	}
	for _, share := range shares {
		if !withTables[share] {
			if _, ok := byTitle[share]; !ok {
				byTitle[share] = &sectiontable.Section{Title: share, Cells: []sectiontable.Cell{}}
			}
		}
	}

	out := make([]sectiontable.Section, 0, len(byTitle))
	for _, s := range byTitle {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	for i := range out {
		cells := out[i].Cells
		sort.SliceStable(cells, func(a, b int) bool { return cells[a].Title < cells[b].Title })
	}
	return out
}

// TableFromArguments rebuilds the table reference carried by an
// ActionOpenTable dispatch.
func TableFromArguments(args sectiontable.Arguments) (delta_sharing.Table, bool) {
	share, ok1 := args[ArgShare].(string)
	schema, ok2 := args[ArgSchema].(string)
	name, ok3 := args[ArgTable].(string)
	if !ok1 || !ok2 || !ok3 {
		return delta_sharing.Table{}, false
	}
	return delta_sharing.Table{Share: share, Schema: schema, Name: name}, true
}

// LoadTable downloads the first data file of table and converts its rows
// into sections using m.
func LoadTable(ctx context.Context, profile string, table delta_sharing.Table, m arrowsource.Mapping) ([]sectiontable.Section, error) {
	ds, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}

	resp, err := ds.ListFilesInTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list files of %s: %w", table.Name, err)
	}
	if len(resp.AddFiles) == 0 {
		return nil, fmt.Errorf("%s: %w", table.Name, ErrNoFiles)
	}

	arrowTable, err := delta_sharing.LoadArrowTable(ctx, ds, table, resp.AddFiles[0].Id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table.Name, err)
	}
	defer arrowTable.Release()

	return arrowsource.FromTable(arrowTable, m)
}
