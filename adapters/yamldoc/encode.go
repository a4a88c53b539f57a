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

package yamldoc

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// encodedSection keeps a nil cell sequence distinct from an empty one.
type encodedSection struct {
	Title string     `yaml:"title,omitempty"`
	Cells *[]cellDoc `yaml:"cells,omitempty"`
}

// Encode writes sections as a document Decode reads back. Subviews,
// accessory views and details that are not names or images are dropped, as
// are host resources.
func Encode(sections []sectiontable.Section) ([]byte, error) {
	doc := struct {
		Sections []encodedSection `yaml:"sections"`
	}{Sections: make([]encodedSection, len(sections))}

	for i, s := range sections {
		doc.Sections[i].Title = s.Title
		if s.Cells == nil {
			continue
		}
		cells := make([]cellDoc, len(s.Cells))
		for j := range s.Cells {
			cells[j] = encodeCell(&s.Cells[j])
		}
		doc.Sections[i].Cells = &cells
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes sections into the file at path.
func WriteFile(path string, sections []sectiontable.Section) error {
	data, err := Encode(sections)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

func encodeCell(c *sectiontable.Cell) cellDoc {
	out := cellDoc{
		CellIdentifier:      c.Identifier,
		CellClass:           c.Class,
		Title:               c.Title,
		Subtitle:            c.Subtitle,
		Styles:              attributesMap(c.Styles),
		CellClassAttributes: attributesMap(c.ClassAttributes),
		AccessoryView:       encodeView(c.AccessoryView),
		Accessory:           c.Accessory,
		AccessoryDefault:    c.AccessoryDefault,
		Image:               encodeImage(c.Image),
		Details:             encodeView(c.Details),
		Action:              c.Action,
		AccessoryAction:     c.AccessoryAction,
		NoSelect:            c.NoSelect,
		MasksToBounds:       c.MasksToBounds,
		SearchText:          c.SearchText,
	}
	if c.Style != sectiontable.StyleDefault {
		out.CellStyle = c.Style.String()
	}
	if c.SelectionStyle != sectiontable.SelectionUnset {
		out.SelectionStyle = c.SelectionStyle.String()
	}
	if c.BackgroundColor != nil {
		out.BackgroundColor = FormatColor(c.BackgroundColor)
	}
	if r := c.RemoteImage; r != nil {
		out.RemoteImage = &remoteDoc{URL: r.URL, Placeholder: r.Placeholder, Size: r.Size, Radius: r.Radius}
	}
	for _, v := range c.SubViews {
		out.SubViews = append(out.SubViews, encodeView(v))
	}
	if len(c.Arguments) > 0 {
		args := make(map[string]any, len(c.Arguments))
		for k, v := range c.Arguments {
			args[k] = v
		}
		out.Arguments = args
	}
	return out
}

func encodeImage(img *sectiontable.Image) any {
	if img == nil || img.Name == "" {
		return nil
	}
	if img.Radius > 0 {
		return map[string]any{"image": img.Name, "radius": img.Radius}
	}
	return img.Name
}

// encodeView keeps the values a document can express.
func encodeView(v any) any {
	switch v := v.(type) {
	case string, int, int64, float64, bool:
		return v
	case *sectiontable.Image:
		if v == nil || v.Name == "" {
			return nil
		}
		return map[string]any{"image": v.Name}
	}
	return nil
}

func attributesMap(a sectiontable.Attributes) map[string]any {
	if a == nil {
		return nil
	}
	out := make(map[string]any, len(a))
	for k, v := range a {
		switch v := v.(type) {
		case sectiontable.Attributes:
			out[k] = attributesMap(v)
		case sectiontable.Leaf:
			if f, ok := v.Value.(sectiontable.Frame); ok {
				out[k] = []float32{f.X, f.Y, f.Width, f.Height}
				continue
			}
			if c, ok := v.Value.(color.Color); ok {
				out[k] = FormatColor(c)
				continue
			}
			out[k] = v.Value
		}
	}
	return out
}

// FormatColor formats c as #rrggbb, or #rrggbbaa when it is translucent.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
