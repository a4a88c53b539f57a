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
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// SyntaxEditor is a read-only, syntax-highlighted view of source text with
// one line that can be marked, typically the line of an error.
type SyntaxEditor struct {
	widget.BaseWidget

	textGrid   *widget.TextGrid
	language   Language
	lines      []string
	markedLine int // 1-indexed, 0 = none
}

// NewSyntaxEditor creates a view highlighting lang.
func NewSyntaxEditor(lang Language) *SyntaxEditor {
	se := &SyntaxEditor{
		textGrid: widget.NewTextGrid(),
		language: lang,
	}
	se.textGrid.ShowLineNumbers = true
	se.ExtendBaseWidget(se)
	return se
}

// SetText replaces the text and highlights every line.
func (se *SyntaxEditor) SetText(text string) {
	se.lines = strings.Split(text, "\n")
	rows := make([]widget.TextGridRow, len(se.lines))
	for i, line := range se.lines {
		rows[i] = se.styledRow(line, i+1 == se.markedLine)
	}
	se.textGrid.Rows = rows
	se.textGrid.Refresh()
}

// Text returns the current text.
func (se *SyntaxEditor) Text() string {
	return strings.Join(se.lines, "\n")
}

// MarkLine marks the 1-indexed line; 0 clears the mark.
func (se *SyntaxEditor) MarkLine(line int) {
	if line == se.markedLine {
		return
	}
	old := se.markedLine
	se.markedLine = line
	for _, n := range []int{old, line} {
		if n > 0 && n <= len(se.lines) && n <= len(se.textGrid.Rows) {
			se.textGrid.SetRow(n-1, se.styledRow(se.lines[n-1], n == line))
		}
	}
}

// MarkedLine returns the marked line, 0 when none is.
func (se *SyntaxEditor) MarkedLine() int {
	return se.markedLine
}

func (se *SyntaxEditor) styledRow(line string, marked bool) widget.TextGridRow {
	cells := se.language.Highlight(line)
	row := widget.TextGridRow{Cells: make([]widget.TextGridCell, len(cells))}
	for i, c := range cells {
		style := SyntaxStyles[c.Token]
		if marked {
			marker := &widget.CustomTextGridStyle{BGColor: theme.Color(theme.ColorNameError)}
			if custom, ok := style.(*widget.CustomTextGridStyle); ok {
				marker.FGColor = custom.FGColor
				marker.TextStyle = custom.TextStyle
			}
			style = marker
		}
		row.Cells[i] = widget.TextGridCell{Rune: c.Rune, Style: style}
	}
	return row
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (se *SyntaxEditor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(se.textGrid)
}
