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

// Package yamldoc reads section datasets from YAML or JSON documents.
//
// A document is either a sequence of sections or a mapping with a
// "sections" key:
//
//	sections:
//	  - title: Network
//	    cells:
//	      - title: Wi-Fi
//	        subtitle: Home
//	        cellStyle: subtitle
//	        accessory: switch
//	        accessoryDefault: true
//	        accessoryAction: toggleWifi
//	      - title: Bluetooth
//	        action: openBluetooth
//	        arguments: {id: 7}
//
// Malformed values are replaced by defaults and reported as
// InvalidDescriptor diagnostics.
package yamldoc

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// ErrInvalidDocument is returned when a document has no usable section list.
var ErrInvalidDocument = errors.New("invalid dataset document")

// Result is a decoded dataset with the diagnostics found while decoding.
type Result struct {
	Sections    []sectiontable.Section
	Diagnostics []*sectiontable.Diagnostic
}

type document struct {
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	Title string    `yaml:"title,omitempty"`
	Cells []cellDoc `yaml:"cells"`
}

type cellDoc struct {
	CellStyle      string `yaml:"cellStyle,omitempty"`
	CellIdentifier string `yaml:"cellIdentifier,omitempty"`
	CellClass      string `yaml:"cellClass,omitempty"`

	Title    string `yaml:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty"`

	Styles              map[string]any `yaml:"styles,omitempty"`
	CellClassAttributes map[string]any `yaml:"cellClassAttributes,omitempty"`

	AccessoryView    any    `yaml:"accessoryView,omitempty"`
	Accessory        string `yaml:"accessory,omitempty"`
	AccessoryDefault bool   `yaml:"accessoryDefault,omitempty"`

	Image       any        `yaml:"image,omitempty"`
	RemoteImage *remoteDoc `yaml:"remoteImage,omitempty"`
	SubViews    []any      `yaml:"subViews,omitempty"`
	Details     any        `yaml:"details,omitempty"`

	Action          string         `yaml:"action,omitempty"`
	AccessoryAction string `yaml:"accessoryAction,omitempty"`
	Arguments       any    `yaml:"arguments,omitempty"`

	NoSelect        bool   `yaml:"noSelect,omitempty"`
	NoSelectAlias   bool   `yaml:"no_select,omitempty"`
	MasksToBounds   bool   `yaml:"masksToBounds,omitempty"`
	BackgroundColor string `yaml:"backgroundColor,omitempty"`
	SelectionStyle  string `yaml:"selectionStyle,omitempty"`
	SearchText      string `yaml:"searchText,omitempty"`
}

type remoteDoc struct {
	URL         string  `yaml:"url,omitempty"`
	Placeholder string  `yaml:"placeholder,omitempty"`
	Size        float32 `yaml:"size,omitempty"`
	Radius      float32 `yaml:"radius,omitempty"`
}

// Decode parses a YAML or JSON dataset document.
func Decode(data []byte) (*Result, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if len(root.Content) == 0 {
		return &Result{}, nil
	}

	var sections []sectionDoc
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&sections); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		sections = doc.Sections
	default:
		return nil, fmt.Errorf("%w: line %d: expected a list of sections or a mapping", ErrInvalidDocument, node.Line)
	}

	var d decoder
	out := make([]sectiontable.Section, len(sections))
	for si, s := range sections {
		out[si] = sectiontable.Section{Title: s.Title}
		if s.Cells == nil {
			continue
		}
		out[si].Cells = make([]sectiontable.Cell, len(s.Cells))
		for ri := range s.Cells {
			out[si].Cells[ri] = d.cell(sectiontable.Coordinate{Section: si, Row: ri}, &s.Cells[ri])
		}
	}
	return &Result{Sections: out, Diagnostics: d.diags}, nil
}

// LoadFile reads and decodes the dataset document at path.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	res, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

type decoder struct {
	diags []*sectiontable.Diagnostic
}

func (d *decoder) invalid(at sectiontable.Coordinate, key string, value any) {
	d.diags = append(d.diags, &sectiontable.Diagnostic{
		Op:   "yamldoc.Decode",
		Kind: sectiontable.KindInvalidDescriptor,
		Err:  fmt.Errorf("%w: cell %s: %s: %v", sectiontable.ErrInvalidDescriptor, at, key, value),
	})
}

func (d *decoder) cell(at sectiontable.Coordinate, c *cellDoc) sectiontable.Cell {
	out := sectiontable.Cell{
		Identifier:       c.CellIdentifier,
		Class:            c.CellClass,
		Title:            c.Title,
		Subtitle:         c.Subtitle,
		Styles:           sectiontable.AttributesFrom(c.Styles),
		ClassAttributes:  sectiontable.AttributesFrom(c.CellClassAttributes),
		AccessoryView:    c.AccessoryView,
		Accessory:        c.Accessory,
		AccessoryDefault: c.AccessoryDefault,
		SubViews:         c.SubViews,
		Details:          details(c.Details),
		Action:           c.Action,
		AccessoryAction:  c.AccessoryAction,
		NoSelect:         c.NoSelect || c.NoSelectAlias,
		MasksToBounds:    c.MasksToBounds,
		SearchText:       c.SearchText,
	}
	switch args := c.Arguments.(type) {
	case nil:
	case map[string]any:
		out.Arguments = sectiontable.Arguments(args)
	default:
		d.invalid(at, "arguments", args)
	}

	if c.CellStyle != "" {
		style, ok := sectiontable.ParseCellStyle(c.CellStyle)
		if !ok {
			d.invalid(at, "cellStyle", c.CellStyle)
		}
		out.Style = style
	}
	if c.SelectionStyle != "" {
		style, ok := sectiontable.ParseSelectionStyle(c.SelectionStyle)
		if !ok {
			d.invalid(at, "selectionStyle", c.SelectionStyle)
		}
		out.SelectionStyle = style
	}
	if c.Accessory != "" && c.Accessory != sectiontable.AccessorySwitch {
		d.invalid(at, "accessory", c.Accessory)
		out.Accessory = ""
	}
	if c.BackgroundColor != "" {
		col, err := ParseColor(c.BackgroundColor)
		if err != nil {
			d.invalid(at, "backgroundColor", c.BackgroundColor)
		} else {
			out.BackgroundColor = col
		}
	}
	if c.Image != nil {
		img, ok := parseImage(c.Image)
		if !ok {
			d.invalid(at, "image", c.Image)
		}
		out.Image = img
	}
	if r := c.RemoteImage; r != nil {
		if r.URL == "" {
			d.invalid(at, "remoteImage.url", r.URL)
		} else {
			out.RemoteImage = &sectiontable.RemoteImage{
				URL:         r.URL,
				Placeholder: r.Placeholder,
				Size:        r.Size,
				Radius:      r.Radius,
			}
		}
	}
	if frame, ok := textLabelFrame(out.Styles); ok {
		if _, valid := sectiontable.ParseFrame(frame); !valid {
			d.invalid(at, "styles.textLabel.frame", frame)
		}
	}
	return out
}

// parseImage accepts a name or a mapping with image and radius keys.
func parseImage(v any) (*sectiontable.Image, bool) {
	switch v := v.(type) {
	case string:
		return &sectiontable.Image{Name: v}, true
	case map[string]any:
		name, _ := v["image"].(string)
		if name == "" {
			name, _ = v["name"].(string)
		}
		if name == "" {
			return nil, false
		}
		img := &sectiontable.Image{Name: name}
		switch r := v["radius"].(type) {
		case int:
			img.Radius = float32(r)
		case float64:
			img.Radius = float32(r)
		}
		return img, true
	}
	return nil, false
}

// details unwraps the {image: name} form into an Image.
func details(v any) any {
	if m, ok := v.(map[string]any); ok {
		if name, ok := m["image"].(string); ok {
			return &sectiontable.Image{Name: name}
		}
	}
	return v
}

func textLabelFrame(styles sectiontable.Attributes) (any, bool) {
	label, ok := styles.Nested("textLabel")
	if !ok {
		return nil, false
	}
	return label.Leaf("frame")
}

// ParseColor parses #rgb, #rrggbb and #rrggbbaa hex colors.
func ParseColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return nil, fmt.Errorf("color %q: missing #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
