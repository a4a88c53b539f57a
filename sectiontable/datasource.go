package sectiontable

import "sync/atomic"

// ActiveView names the dataset an Index currently serves: Full or Filtered.
type ActiveView interface {
	sections(s *indexState) []Section
}

// Full serves the full dataset.
type Full struct{}

func (Full) sections(s *indexState) []Section { return s.full }

// Filtered serves a reduced dataset without discarding the full one.
type Filtered struct{}

func (Filtered) sections(s *indexState) []Section { return s.filtered }

// indexState is immutable once published.
type indexState struct {
	full     []Section
	filtered []Section
	active   ActiveView
}

// Index answers coordinate lookups over the active dataset.
// Every mutation publishes a new state with a single pointer swap, so a
// reader observes either the old or the new dataset, never a mix.
// Lookups never panic; out of range input yields an absent result.
type Index struct {
	state atomic.Pointer[indexState]
}

// NewIndex returns an empty Index serving the full dataset. The zero value is
// also ready to use.
func NewIndex() *Index {
	return &Index{}
}

var emptyState = &indexState{active: Full{}}

func (idx *Index) load() *indexState {
	if s := idx.state.Load(); s != nil {
		return s
	}
	return emptyState
}

// update publishes a modified copy of the current state.
func (idx *Index) update(fn func(s *indexState)) {
	for {
		old := idx.state.Load()
		next := *emptyState
		if old != nil {
			next = *old
		}
		fn(&next)
		if idx.state.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetDataset replaces the full dataset. It does not trigger a redraw.
func (idx *Index) SetDataset(sections []Section) {
	idx.update(func(s *indexState) {
		s.full = sections
	})
}

// SetFilteredDataset replaces the filtered dataset.
func (idx *Index) SetFilteredDataset(sections []Section) {
	idx.update(func(s *indexState) {
		s.filtered = sections
	})
}

// SetFilterActive selects which dataset is served.
func (idx *Index) SetFilterActive(active bool) {
	idx.update(func(s *indexState) {
		if active {
			s.active = Filtered{}
		} else {
			s.active = Full{}
		}
	})
}

// Replace publishes both datasets and the active view in one swap.
func (idx *Index) Replace(full, filtered []Section, active bool) {
	next := &indexState{full: full, filtered: filtered, active: Full{}}
	if active {
		next.active = Filtered{}
	}
	idx.state.Store(next)
}

// ClearFiltered drops the filtered dataset and serves the full one.
func (idx *Index) ClearFiltered() {
	idx.update(func(s *indexState) {
		s.filtered = nil
		s.active = Full{}
	})
}

// Active returns the dataset currently served.
func (idx *Index) Active() ActiveView {
	return idx.load().active
}

// Sections returns the active dataset.
func (idx *Index) Sections() []Section {
	s := idx.load()
	return s.active.sections(s)
}

// FullDataset returns the full dataset regardless of the active view.
func (idx *Index) FullDataset() []Section {
	return idx.load().full
}

// SectionCount returns the length of the active dataset, 0 when none was set.
func (idx *Index) SectionCount() int {
	return len(idx.Sections())
}

// section returns the active section at index.
func (idx *Index) section(index int) (*Section, bool) {
	sections := idx.Sections()
	if index < 0 || index >= len(sections) {
		return nil, false
	}
	return &sections[index], true
}

// RowCount returns the number of cells in a section, or 0 for an out of range
// section or one without cells.
func (idx *Index) RowCount(section int) int {
	sec, ok := idx.section(section)
	if !ok {
		return 0
	}
	return len(sec.Cells)
}

// SectionTitle returns the section title. The second result is false when the
// section is out of range or has no title.
func (idx *Index) SectionTitle(section int) (string, bool) {
	sec, ok := idx.section(section)
	if !ok || sec.Title == "" {
		return "", false
	}
	return sec.Title, true
}

// CellAt returns the cell at c. The second result is false when either index
// is out of range or the section has no cells.
func (idx *Index) CellAt(c Coordinate) (*Cell, bool) {
	sec, ok := idx.section(c.Section)
	if !ok || sec.Cells == nil {
		return nil, false
	}
	if c.Row < 0 || c.Row >= len(sec.Cells) {
		return nil, false
	}
	return &sec.Cells[c.Row], true
}

// Locate returns the coordinate of the first active cell matching pred.
func (idx *Index) Locate(pred func(*Cell) bool) (Coordinate, bool) {
	sections := idx.Sections()
	for si := range sections {
		for ri := range sections[si].Cells {
			if pred(&sections[si].Cells[ri]) {
				return Coordinate{Section: si, Row: ri}, true
			}
		}
	}
	return Coordinate{}, false
}
