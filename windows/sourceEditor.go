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
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/script"
)

// EditorMode selects what a SourceEditor edits.
type EditorMode int

const (
	// EditorScript edits a Go actions script.
	EditorScript EditorMode = iota
	// EditorDocument edits a YAML dataset document.
	EditorDocument
)

const scriptTemplate = `package actions

import (
	"fmt"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

func OpenRow(args sectiontable.Arguments) {
	if cell, ok := args[sectiontable.ArgumentCell].(*sectiontable.Cell); ok {
		fmt.Println("selected", cell.Title)
	}
}
`

const highlightDelay = 150 * time.Millisecond

// SourceEditor edits a script or a dataset document next to a highlighted
// preview and applies it to the table.
type SourceEditor struct {
	w      fyne.Window
	mode   EditorMode
	logger *slog.Logger

	code        *widget.Entry
	preview     *SyntaxEditor
	output      *widget.RichText
	applyButton *widget.Button
	container   *fyne.Container

	updates chan string
	stop    chan struct{}

	// OnScript receives a script that loaded without errors.
	OnScript func(*script.Script)
	// OnDocument receives a document that decoded without errors.
	OnDocument func(*yamldoc.Result)
}

// NewSourceEditor creates an editor shown in w.
func NewSourceEditor(w fyne.Window, mode EditorMode, logger *slog.Logger) *SourceEditor {
	if logger == nil {
		logger = slog.Default()
	}
	se := &SourceEditor{
		w:       w,
		mode:    mode,
		logger:  logger,
		updates: make(chan string, 10),
		stop:    make(chan struct{}),
	}
	se.createUI()
	go se.highlightLoop()
	return se
}

func (se *SourceEditor) language() Language {
	if se.mode == EditorDocument {
		return YAMLLanguage
	}
	return GoLanguage
}

func (se *SourceEditor) createUI() {
	se.code = widget.NewMultiLineEntry()
	se.code.Wrapping = fyne.TextWrapOff
	se.code.TextStyle = fyne.TextStyle{Monospace: true}
	se.code.OnChanged = func(text string) {
		select {
		case se.updates <- text:
		default:
		}
	}
	se.preview = NewSyntaxEditor(se.language())

	se.output = widget.NewRichText()
	se.output.Wrapping = fyne.TextWrapWord
	se.setOutput("Output will appear here...")

	se.applyButton = widget.NewButtonWithIcon("Apply", theme.MediaPlayIcon(), se.Apply)
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), se.open),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), se.save),
		widget.NewToolbarAction(theme.ContentClearIcon(), se.clearOutput),
	)

	editorSplit := container.NewVSplit(
		container.NewScroll(se.code),
		container.NewScroll(se.preview),
	)
	split := container.NewHSplit(
		widget.NewCard("", se.language().Name(), editorSplit),
		widget.NewCard("", "Output", container.NewScroll(se.output)),
	)
	split.SetOffset(0.65)

	se.container = container.NewBorder(container.NewBorder(nil, nil, toolbar, se.applyButton), nil, nil, nil, split)
}

// Content returns the root object of the editor.
func (se *SourceEditor) Content() fyne.CanvasObject {
	return se.container
}

// SetText replaces the source and highlights it at once.
func (se *SourceEditor) SetText(text string) {
	se.code.SetText(text)
	se.preview.SetText(text)
	se.preview.MarkLine(0)
}

// Text returns the source.
func (se *SourceEditor) Text() string {
	return se.code.Text
}

// Close stops the highlighter.
func (se *SourceEditor) Close() {
	select {
	case <-se.stop:
	default:
		close(se.stop)
	}
}

// highlightLoop refreshes the preview once typing pauses.
func (se *SourceEditor) highlightLoop() {
	timer := time.NewTimer(highlightDelay)
	timer.Stop()
	pending := ""
	for {
		select {
		case <-se.stop:
			timer.Stop()
			return
		case text := <-se.updates:
			pending = text
			timer.Reset(highlightDelay)
		case <-timer.C:
			text := pending
			fyne.Do(func() {
				se.preview.SetText(text)
			})
		}
	}
}

// Apply loads the source in the background. A script is handed to OnScript,
// a document to OnDocument. Errors are shown in the output pane and mark the
// line they name.
func (se *SourceEditor) Apply() {
	src := se.code.Text
	if src == "" {
		se.setOutput("Nothing to apply\n")
		return
	}
	se.setOutput("Applying...\n")
	se.applyButton.Disable()
	se.preview.MarkLine(0)

	go func() {
		var (
			s   *script.Script
			res *yamldoc.Result
			err error
		)
		if se.mode == EditorDocument {
			res, err = yamldoc.Decode([]byte(src))
		} else {
			s, err = script.Load(src, script.Options{
				Stdout: &outputWriter{se: se},
				Stderr: &outputWriter{se: se},
				Logger: se.logger,
			})
		}
		fyne.Do(func() {
			se.applyButton.Enable()
			se.applied(s, res, err)
		})
	}()
}

func (se *SourceEditor) applied(s *script.Script, res *yamldoc.Result, err error) {
	if err != nil {
		se.logger.Warn("apply failed", "mode", se.language().Name(), "error", err)
		se.appendOutput(fmt.Sprintf("Error: %v\n", err))
		if line := errorLine(err); line > 0 {
			se.preview.SetText(se.code.Text)
			se.preview.MarkLine(line)
		}
		return
	}
	if s != nil {
		se.appendOutput(fmt.Sprintf("Loaded package %s with %d actions\n", s.Package(), len(s.Actions())))
		for _, name := range s.Actions() {
			se.appendOutputBold("  " + name + "\n")
		}
		if se.OnScript != nil {
			se.OnScript(s)
		}
		return
	}
	cells := 0
	for _, sec := range res.Sections {
		cells += len(sec.Cells)
	}
	se.appendOutput(fmt.Sprintf("Decoded %d sections with %d cells\n", len(res.Sections), cells))
	for _, d := range res.Diagnostics {
		se.appendOutputBold(d.Error() + "\n")
	}
	if se.OnDocument != nil {
		se.OnDocument(res)
	}
}

var (
	goErrorLine   = regexp.MustCompile(`(?:^|[\s:])(\d+):\d+: `)
	yamlErrorLine = regexp.MustCompile(`line (\d+)`)
)

// errorLine returns the 1-indexed source line an error names, or 0.
func errorLine(err error) int {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{goErrorLine, yamlErrorLine} {
		if m := re.FindStringSubmatch(msg); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}
	return 0
}

// outputWriter appends script output to the output pane.
type outputWriter struct {
	se *SourceEditor
}

func (o *outputWriter) Write(p []byte) (int, error) {
	text := string(p)
	fyne.Do(func() {
		o.se.appendOutputBold(text)
	})
	return len(p), nil
}

func (se *SourceEditor) setOutput(text string) {
	se.output.Segments = nil
	se.appendOutputStyled(text, false)
}

func (se *SourceEditor) appendOutput(text string) {
	se.appendOutputStyled(text, false)
}

func (se *SourceEditor) appendOutputBold(text string) {
	se.appendOutputStyled(text, true)
}

func (se *SourceEditor) appendOutputStyled(text string, bold bool) {
	se.output.Segments = append(se.output.Segments, &widget.TextSegment{
		Text: text,
		Style: widget.RichTextStyle{
			TextStyle: fyne.TextStyle{Bold: bold},
			ColorName: theme.ColorNameForeground,
		},
	})
	se.output.Refresh()
}

func (se *SourceEditor) clearOutput() {
	se.output.Segments = nil
	se.output.Refresh()
}

func (se *SourceEditor) extension() string {
	if se.mode == EditorDocument {
		return ".yaml"
	}
	return ".go"
}

func (se *SourceEditor) save() {
	src := se.code.Text
	if src == "" {
		dialog.ShowInformation("Nothing to Save", "The editor is empty.", se.w)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, se.w)
			return
		}
		if writer == nil {
			return
		}
		go func() {
			defer writer.Close()
			_, err := io.WriteString(writer, src)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(fmt.Errorf("failed to save file: %w", err), se.w)
					return
				}
				se.setOutput(fmt.Sprintf("Saved %s (%d bytes)\n", writer.URI().Name(), len(src)))
			})
		}()
	}, se.w)
	if se.mode == EditorDocument {
		d.SetFileName("dataset.yaml")
	} else {
		d.SetFileName("actions.go")
	}
	d.SetFilter(storage.NewExtensionFileFilter([]string{se.extension()}))
	d.Show()
}

func (se *SourceEditor) open() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, se.w)
			return
		}
		if reader == nil {
			return
		}
		go func() {
			defer reader.Close()
			data, err := io.ReadAll(reader)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, se.w)
					return
				}
				se.SetText(string(data))
				se.setOutput(fmt.Sprintf("Loaded %s (%d bytes)\n", reader.URI().Name(), len(data)))
			})
		}()
	}, se.w)
	d.SetFilter(storage.NewExtensionFileFilter([]string{se.extension()}))
	d.Show()
}
