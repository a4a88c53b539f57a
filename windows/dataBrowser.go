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
	"fmt"
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// Browser is the controller of the main window. Its exported methods are the
// built-in actions cells can name.
type Browser struct {
	w *MainWindow
}

// IndexTitles returns one jump-list title per section of the active dataset.
func (b *Browser) IndexTitles() []string {
	sections := b.w.table.Index().Sections()
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
		if titles[i] == "" {
			titles[i] = fmt.Sprintf("Section %d", i+1)
		}
	}
	return titles
}

// OpenTable loads the rows of the shared table named by args and shows them.
// Back returns to the table list.
func (b *Browser) OpenTable(args sectiontable.Arguments) {
	t := b.w
	if t.dataset == nil || t.dataset.Profile == "" {
		t.SetStatus("Open a Delta Sharing profile to browse tables")
		return
	}
	profile := t.dataset.Profile
	mapping := t.opts.Mapping

	pbi := widget.NewProgressBarInfinite()
	di := dialog.NewCustomWithoutButtons("Loading table...", pbi, t.w)
	di.Resize(fyne.NewSize(300, 100))
	di.Show()
	pbi.Start()

	go func() {
		ctx, cancel := createTimeoutContext(t.opts.APITimeout)
		defer cancel()
		sections, title, err := loadSharedTable(ctx, profile, args, mapping)
		fyne.Do(func() {
			pbi.Stop()
			di.Hide()
			if err != nil {
				t.logger.Error("failed to load shared table", "error", err)
				t.SetStatus("Error loading table")
				dialog.ShowError(err, t.w)
				return
			}
			t.push(title, sections)
			t.SetStatus("Table loaded: " + title)
		})
	}()
}

// OpenRow shows the arguments of a row.
func (b *Browser) OpenRow(args sectiontable.Arguments) {
	form := widget.NewForm()
	for _, key := range slices.Sorted(maps.Keys(args)) {
		if key == sectiontable.ArgumentCell {
			continue
		}
		value := widget.NewLabel(fmt.Sprint(args[key]))
		value.Wrapping = fyne.TextWrapWord
		form.Append(key, value)
	}
	title := "Row"
	if cell, ok := args[sectiontable.ArgumentCell].(*sectiontable.Cell); ok && cell.Title != "" {
		title = cell.Title
	}
	d := dialog.NewCustom(title, "Close", form, b.w.w)
	d.Resize(fyne.NewSize(400, 300))
	d.Show()
}

// Back returns to the previous dataset.
func (b *Browser) Back() {
	b.w.Back()
}
