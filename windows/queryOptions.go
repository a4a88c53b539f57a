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
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
)

// noColumn is the select option for an unset column.
const noColumn = "(none)"

// QueryOptionsDialog lets the user choose how the rows of a tabular file are
// grouped into sections.
type QueryOptionsDialog struct {
	dialog   dialog.Dialog
	window   fyne.Window
	columns  []string
	mapping  arrowsource.Mapping
	callback func(arrowsource.Mapping)

	sectionSelect  *widget.Select
	titleSelect    *widget.Select
	subtitleSelect *widget.Select
	sectionEntry   *widget.Entry
	limitEntry     *widget.Entry
}

// NewQueryOptionsDialog creates a dialog seeded with current.
func NewQueryOptionsDialog(w fyne.Window, columns []string, current arrowsource.Mapping, callback func(arrowsource.Mapping)) *QueryOptionsDialog {
	qod := &QueryOptionsDialog{
		window:   w,
		columns:  columns,
		mapping:  current,
		callback: callback,
	}
	qod.createDialog()
	return qod
}

func (qod *QueryOptionsDialog) createDialog() {
	options := append([]string{noColumn}, qod.columns...)

	qod.sectionSelect = widget.NewSelect(options, nil)
	qod.sectionSelect.SetSelected(orNone(qod.mapping.SectionColumn))
	qod.titleSelect = widget.NewSelect(options, nil)
	qod.titleSelect.SetSelected(orNone(qod.mapping.TitleColumn))
	qod.subtitleSelect = widget.NewSelect(options, nil)
	qod.subtitleSelect.SetSelected(orNone(qod.mapping.SubtitleColumn))

	qod.sectionEntry = widget.NewEntry()
	qod.sectionEntry.SetText(qod.mapping.SectionTitle)
	qod.sectionEntry.SetPlaceHolder("Title of the single section")

	qod.limitEntry = widget.NewEntry()
	if qod.mapping.Limit > 0 {
		qod.limitEntry.SetText(strconv.FormatInt(qod.mapping.Limit, 10))
	}
	qod.limitEntry.SetPlaceHolder("Leave empty for all rows, or enter a number (e.g., 1000)")

	form := widget.NewForm(
		widget.NewFormItem("Group by", qod.sectionSelect),
		widget.NewFormItem("Section title", qod.sectionEntry),
		widget.NewFormItem("Title", qod.titleSelect),
		widget.NewFormItem("Subtitle", qod.subtitleSelect),
		widget.NewFormItem("Row limit", qod.limitEntry),
	)

	help := widget.NewLabel("Rows are grouped into one section per value of the group column. Without a title column the first other column is used.")
	help.TextStyle = fyne.TextStyle{Italic: true}
	help.Wrapping = fyne.TextWrapWord

	qod.dialog = dialog.NewCustomConfirm(
		"Query Options",
		"Load Data",
		"Cancel",
		container.NewVBox(form, widget.NewSeparator(), help),
		func(confirmed bool) {
			if confirmed {
				qod.handleConfirm()
			}
		},
		qod.window,
	)
	qod.dialog.Resize(fyne.NewSize(500, 400))
}

// Mapping returns the mapping entered in the dialog.
func (qod *QueryOptionsDialog) Mapping() (arrowsource.Mapping, error) {
	m := qod.mapping
	m.SectionColumn = fromNone(qod.sectionSelect.Selected)
	m.TitleColumn = fromNone(qod.titleSelect.Selected)
	m.SubtitleColumn = fromNone(qod.subtitleSelect.Selected)
	m.SectionTitle = strings.TrimSpace(qod.sectionEntry.Text)
	m.Limit = 0

	if limitText := strings.TrimSpace(qod.limitEntry.Text); limitText != "" {
		limit, err := strconv.ParseInt(limitText, 10, 64)
		if err != nil || limit <= 0 {
			return m, fmt.Errorf("invalid limit: must be a positive number")
		}
		m.Limit = limit
	}
	if m.TitleColumn != "" && m.TitleColumn == m.SectionColumn {
		return m, fmt.Errorf("title and group column must differ")
	}
	return m, nil
}

func (qod *QueryOptionsDialog) handleConfirm() {
	m, err := qod.Mapping()
	if err != nil {
		dialog.ShowError(err, qod.window)
		return
	}
	if qod.callback != nil {
		qod.callback(m)
	}
}

func (qod *QueryOptionsDialog) Show() {
	qod.dialog.Show()
}

func orNone(column string) string {
	if column == "" {
		return noColumn
	}
	return column
}

func fromNone(selected string) string {
	if selected == noColumn {
		return ""
	}
	return selected
}
