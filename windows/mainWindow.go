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
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/internal/filter"
	"github.com/magpierre/fyne-sectiontable/script"
	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// Options configures a MainWindow.
type Options struct {
	Title string
	// DataPath is loaded when the window opens.
	DataPath string
	// ScriptPath names a Go source file whose exported functions become actions.
	ScriptPath string
	// Watch reloads document datasets when their file changes.
	Watch bool
	// APITimeout bounds network calls, in seconds.
	APITimeout int
	// Mapping groups the rows of tabular files.
	Mapping arrowsource.Mapping
	Logger  *slog.Logger
}

// MainWindow hosts a SectionedList with search, a jump list and a status bar.
type MainWindow struct {
	a      fyne.App
	w      fyne.Window
	opts   Options
	logger *slog.Logger

	top, bottom fyne.CanvasObject
	table       *sectiontable.Table
	list        *SectionedList
	search      *widget.Entry
	jump        *widget.Select
	statusBar   *widget.Label

	dataset *Dataset
	history []page

	stopWatch context.CancelFunc
}

// page is a dataset the Back action returns to.
type page struct {
	title    string
	sections []sectiontable.Section
}

// NewMainWindow builds the window on a. It does not show it.
func NewMainWindow(a fyne.App, opts Options) *MainWindow {
	if opts.Title == "" {
		opts.Title = "Section Table Browser"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Mapping == (arrowsource.Mapping{}) {
		opts.Mapping = arrowsource.DefaultMapping()
	}

	t := &MainWindow{a: a, opts: opts, logger: opts.Logger}

	cfg := sectiontable.DefaultConfig()
	cfg.Logger = opts.Logger
	cfg.ImageLoader = NewHTTPImageLoader(nil, opts.APITimeout, opts.Logger)
	t.table = sectiontable.NewTable(cfg)

	t.w = a.NewWindow(opts.Title)
	t.w.Resize(fyne.NewSize(700, 600))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.statusBar.Truncation = fyne.TextTruncateEllipsis
	t.bottom = t.statusBar

	t.list = NewSectionedList(t.table)
	t.list.OnReload = t.updateJumpList

	t.search = widget.NewEntry()
	t.search.SetPlaceHolder(`Search, or query: title ~ "wi" AND subtitle != ""`)
	t.search.OnChanged = func(text string) { t.ApplyQuery(text) }

	t.jump = widget.NewSelect(nil, func(title string) {
		for i, s := range t.jump.Options {
			if s == title {
				t.list.ScrollToSection(i)
				return
			}
		}
	})
	t.jump.PlaceHolder = "Jump to"

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.OpenFile),
		widget.NewToolbarAction(theme.NavigateBackIcon(), t.Back),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), t.Reload),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.Export),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.SettingsIcon(), t.ShowQueryOptions),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), t.EditScript),
		widget.NewToolbarAction(theme.DocumentIcon(), t.EditDataset),
	)
	t.top = container.NewBorder(nil, nil, toolbar, t.jump, t.search)

	if err := t.table.SetController(&Browser{w: t}); err != nil {
		t.logger.Warn("controller actions skipped", "error", err)
	}
	if opts.ScriptPath != "" {
		t.LoadScript(opts.ScriptPath)
	}

	t.w.SetContent(container.NewBorder(t.top, t.bottom, nil, nil, t.list))
	t.w.SetOnClosed(t.stopWatching)

	if opts.DataPath != "" {
		t.LoadPath(opts.DataPath)
	}
	return t
}

// Window returns the fyne window.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// Table returns the table shown by the window.
func (t *MainWindow) Table() *sectiontable.Table {
	return t.table
}

func (t *MainWindow) ShowAndRun() {
	t.w.ShowAndRun()
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// ApplyQuery filters the table with query. An empty query shows every cell.
func (t *MainWindow) ApplyQuery(query string) {
	f, err := filter.Parse(query)
	if err != nil {
		t.SetStatus("Invalid query: " + err.Error())
		return
	}
	if f == nil {
		t.table.ClearFilter()
		t.SetStatus("Filter cleared")
		return
	}
	if err := t.table.SetFilter(f); err != nil {
		t.SetStatus("Filter failed: " + err.Error())
		return
	}
	t.logger.Debug("filter applied", "query", query, "fields", filter.Fields(f))
	t.SetStatus("Filter: " + f.Description())
}

// LoadScript registers the actions of the Go script at path.
func (t *MainWindow) LoadScript(path string) {
	s, err := script.LoadFile(path, script.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: t.logger,
	})
	if err != nil {
		t.logger.Error("failed to load script", "path", path, "error", err)
		t.SetStatus("Script error: " + err.Error())
		return
	}
	if err := s.Register(t.table.Actions()); err != nil {
		t.logger.Warn("some scripted actions were skipped", "path", path, "error", err)
	}
	t.SetStatus(fmt.Sprintf("Loaded %d actions from %s", len(s.Actions()), filepath.Base(path)))
}

// EditScript opens an editor whose applied scripts register their actions.
func (t *MainWindow) EditScript() {
	src := scriptTemplate
	if t.opts.ScriptPath != "" {
		if data, err := os.ReadFile(t.opts.ScriptPath); err == nil {
			src = string(data)
		}
	}
	t.openEditor("Actions Script", EditorScript, src, func(se *SourceEditor) {
		se.OnScript = func(s *script.Script) {
			if err := s.Register(t.table.Actions()); err != nil {
				t.logger.Warn("some scripted actions were skipped", "error", err)
			}
			t.SetStatus(fmt.Sprintf("Registered %d scripted actions", len(s.Actions())))
		}
	})
}

// EditDataset opens the shown dataset as a document. Applying it replaces
// the table contents.
func (t *MainWindow) EditDataset() {
	data, err := yamldoc.Encode(t.table.Index().FullDataset())
	if err != nil {
		dialog.ShowError(err, t.w)
		return
	}
	t.openEditor("Dataset Document", EditorDocument, string(data), func(se *SourceEditor) {
		se.OnDocument = func(res *yamldoc.Result) {
			for _, d := range res.Diagnostics {
				t.logger.Warn("dataset warning", "error", d)
			}
			t.history = nil
			t.table.RefreshWithDataset(res.Sections)
			t.SetStatus(fmt.Sprintf("Applied edited dataset: %d sections", len(res.Sections)))
		}
	})
}

func (t *MainWindow) openEditor(title string, mode EditorMode, src string, wire func(*SourceEditor)) {
	w := t.a.NewWindow(t.opts.Title + " - " + title)
	se := NewSourceEditor(w, mode, t.logger)
	wire(se)
	se.SetText(src)
	w.SetContent(se.Content())
	w.SetOnClosed(se.Close)
	w.Resize(fyne.NewSize(900, 600))
	w.Show()
}

// OpenFile shows the dataset picker.
func (t *MainWindow) OpenFile() {
	dir := ""
	if t.dataset != nil {
		dir = filepath.Dir(t.dataset.Path)
	}
	fd := NewFileDialog(t.w, "Open Dataset", dir, datasetExtensions, func(path string, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		t.LoadPath(path)
	})
	fd.Show()
}

// LoadPath loads the file at path in the background and shows it.
func (t *MainWindow) LoadPath(path string) {
	t.SetStatus("Loading " + filepath.Base(path) + "...")
	mapping := t.opts.Mapping
	go func() {
		ds, err := LoadDataset(path, mapping, t.opts.APITimeout)
		fyne.Do(func() {
			if err != nil {
				t.logger.Error("failed to load dataset", "path", path, "error", err)
				t.SetStatus("Error loading " + filepath.Base(path))
				dialog.ShowError(err, t.w)
				return
			}
			t.showDataset(ds)
		})
	}()
}

// showDataset replaces the current dataset and history.
func (t *MainWindow) showDataset(ds *Dataset) {
	for _, d := range ds.Diagnostics {
		t.logger.Warn("dataset warning", "path", ds.Path, "error", d)
	}
	t.stopWatching()
	t.dataset = ds
	t.history = nil
	t.table.RefreshWithDataset(ds.Sections)
	t.w.SetTitle(t.opts.Title + " - " + filepath.Base(ds.Path))
	t.SetStatus(ds.Summary())

	if t.opts.Watch && ds.Type == FileTypeDocument {
		t.watch(ds.Path)
	}
}

// push shows sections and remembers the current dataset for Back.
func (t *MainWindow) push(title string, sections []sectiontable.Section) {
	t.history = append(t.history, page{title: t.w.Title(), sections: t.table.Index().FullDataset()})
	t.table.RefreshWithDataset(sections)
	t.w.SetTitle(t.opts.Title + " - " + title)
}

// Back returns to the previous dataset.
func (t *MainWindow) Back() {
	if len(t.history) == 0 {
		return
	}
	prev := t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]
	t.table.RefreshWithDataset(prev.sections)
	t.w.SetTitle(prev.title)
	t.SetStatus("Back")
}

// Reload loads the current file again.
func (t *MainWindow) Reload() {
	if t.dataset == nil {
		return
	}
	t.LoadPath(t.dataset.Path)
}

// ShowQueryOptions lets the user regroup a CSV or Parquet dataset.
func (t *MainWindow) ShowQueryOptions() {
	if t.dataset == nil || (t.dataset.Type != FileTypeCSV && t.dataset.Type != FileTypeParquet) {
		dialog.ShowInformation("Query Options", "Open a CSV or Parquet file to choose how rows are grouped.", t.w)
		return
	}
	columns, err := arrowsource.Columns(t.dataset.Path)
	if err != nil {
		dialog.ShowError(err, t.w)
		return
	}
	NewQueryOptionsDialog(t.w, columns, t.opts.Mapping, func(m arrowsource.Mapping) {
		t.opts.Mapping = m
		t.Reload()
	}).Show()
}

func (t *MainWindow) updateJumpList() {
	t.jump.Options = t.table.IndexTitles()
	t.jump.ClearSelected()
	t.jump.Refresh()
}

func (t *MainWindow) watch(path string) {
	ctx, cancel := context.WithCancel(context.Background())
	t.stopWatch = cancel
	go func() {
		err := yamldoc.Watch(ctx, path, func(res *yamldoc.Result, err error) {
			fyne.Do(func() {
				if err != nil {
					t.logger.Warn("reload failed", "path", path, "error", err)
					t.SetStatus("Reload failed: " + err.Error())
					return
				}
				t.dataset.Sections = res.Sections
				t.dataset.Diagnostics = res.Diagnostics
				t.history = nil
				t.table.RefreshWithDataset(res.Sections)
				t.SetStatus("Reloaded " + filepath.Base(path))
			})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			t.logger.Error("watch stopped", "path", path, "error", err)
		}
	}()
}

func (t *MainWindow) stopWatching() {
	if t.stopWatch != nil {
		t.stopWatch()
		t.stopWatch = nil
	}
}
