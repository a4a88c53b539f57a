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

package sectiontable

import "fmt"

// Filter decides which cells the filtered dataset keeps.
type Filter interface {
	// Evaluate returns true if the cell passes the filter.
	Evaluate(cell *Cell) (bool, error)

	// Description returns a human-readable description of the filter.
	Description() string
}

// IndexTitler is implemented by controllers that provide jump-list titles.
type IndexTitler interface {
	IndexTitles() []string
}

// Table is the surface a host container drives: counts, titles, views and
// interaction events.
type Table struct {
	cfg        Config
	index      *Index
	actions    *ActionRegistry
	reconciler *Reconciler
	selection  *SelectionHandler
	container  Container
	titler     IndexTitler
	filter     Filter
}

// NewTable returns an empty Table.
func NewTable(cfg Config) *Table {
	cfg = cfg.withDefaults()
	t := &Table{
		cfg:     cfg,
		index:   NewIndex(),
		actions: NewActionRegistry(cfg),
	}
	t.selection = NewSelectionHandler(cfg, t.index, t.actions)
	t.reconciler = NewReconciler(cfg, t.index, t.selection.OnAccessoryToggle)
	return t
}

// Attach connects the host container.
func (t *Table) Attach(c Container) {
	t.container = c
	t.selection.SetContainer(c)
}

// SetController registers the exported methods of controller as actions and
// uses it for jump-list titles when it implements IndexTitler. Methods with
// unusable signatures are returned as an error and reported on dispatch.
func (t *Table) SetController(controller any) error {
	if titler, ok := controller.(IndexTitler); ok {
		t.titler = titler
	}
	return t.actions.RegisterMethods(controller)
}

// Actions returns the action registry.
func (t *Table) Actions() *ActionRegistry {
	return t.actions
}

// Index returns the data index.
func (t *Table) Index() *Index {
	return t.index
}

// SetDataset replaces the dataset without redrawing. An active filter is
// re-evaluated against the new dataset.
func (t *Table) SetDataset(sections []Section) {
	if t.filter == nil {
		t.index.SetDataset(sections)
		return
	}
	filtered, err := FilterSections(sections, t.filter)
	if err != nil {
		t.cfg.Logger.Warn("filter re-evaluation failed, showing full dataset",
			"filter", t.filter.Description(), "error", err)
		t.filter = nil
		t.index.Replace(sections, nil, false)
		return
	}
	t.index.Replace(sections, filtered, true)
}

// RefreshWithDataset replaces the dataset and redraws the container.
func (t *Table) RefreshWithDataset(sections []Section) {
	t.SetDataset(sections)
	t.reload()
}

// SectionCount returns the number of sections of the active dataset.
func (t *Table) SectionCount() int {
	return t.index.SectionCount()
}

// RowCount returns the number of rows of a section.
func (t *Table) RowCount(section int) int {
	return t.index.RowCount(section)
}

// SectionTitle returns the header title of a section.
func (t *Table) SectionTitle(section int) (string, bool) {
	return t.index.SectionTitle(section)
}

// CellAt returns the cell descriptor at c.
func (t *Table) CellAt(c Coordinate) (*Cell, bool) {
	return t.index.CellAt(c)
}

// ResolveView returns the configured view for c.
func (t *Table) ResolveView(c Coordinate, pool Pool) CellView {
	return t.reconciler.ResolveView(c, pool)
}

// OnSelect handles a row selection.
func (t *Table) OnSelect(c Coordinate) {
	t.selection.OnSelect(c)
}

// OnAccessoryToggle handles a switch accessory change.
func (t *Table) OnAccessoryToggle(ev ToggleEvent) {
	t.selection.OnAccessoryToggle(ev)
}

// IndexTitles returns the jump-list titles, or nil when the controller
// provides none.
func (t *Table) IndexTitles() []string {
	if t.titler == nil {
		return nil
	}
	return t.titler.IndexTitles()
}

// SetFilter serves the cells of the full dataset that pass f and redraws.
// Sections left without cells are dropped.
func (t *Table) SetFilter(f Filter) error {
	if f == nil {
		t.ClearFilter()
		return nil
	}
	if err := t.applyFilter(f); err != nil {
		return err
	}
	t.filter = f
	t.reload()
	return nil
}

// ClearFilter serves the full dataset again and redraws.
func (t *Table) ClearFilter() {
	t.clearFilter()
	t.reload()
}

// Filter returns the active filter, or nil.
func (t *Table) Filter() Filter {
	return t.filter
}

func (t *Table) applyFilter(f Filter) error {
	filtered, err := FilterSections(t.index.FullDataset(), f)
	if err != nil {
		return err
	}
	t.index.Replace(t.index.FullDataset(), filtered, true)
	return nil
}

func (t *Table) clearFilter() {
	t.filter = nil
	t.index.ClearFiltered()
}

func (t *Table) reload() {
	if t.container != nil {
		t.container.Reload()
	}
}

// FilterSections returns the sections of sections with only the cells that
// pass f. Sections without passing cells are dropped.
func FilterSections(sections []Section, f Filter) ([]Section, error) {
	out := make([]Section, 0, len(sections))
	for si := range sections {
		var kept []Cell
		for ri := range sections[si].Cells {
			ok, err := f.Evaluate(&sections[si].Cells[ri])
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", f.Description(), err)
			}
			if ok {
				kept = append(kept, sections[si].Cells[ri])
			}
		}
		if len(kept) > 0 {
			out = append(out, Section{Title: sections[si].Title, Cells: kept})
		}
	}
	return out, nil
}
