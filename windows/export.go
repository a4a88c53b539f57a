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

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// ExportSections writes sections to w as a YAML dataset document.
func ExportSections(w io.Writer, sections []sectiontable.Section) error {
	data, err := yamldoc.Encode(sections)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// Export saves the sections currently shown, filtered or not, as a YAML
// document.
func (t *MainWindow) Export() {
	sections := t.table.Index().Sections()
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if uc == nil {
			return
		}
		defer uc.Close()

		if err := ExportSections(uc, sections); err != nil {
			t.logger.Error("export failed", "uri", uc.URI().String(), "error", err)
			dialog.ShowError(err, t.w)
			return
		}
		t.SetStatus("Exported to " + uc.URI().Name())
	}, t.w)
	d.SetFileName("dataset.yaml")
	d.Show()
}
