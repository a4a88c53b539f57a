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

// Package sectiontable binds a declarative "sections → cells" description to a
// scrolling list of recyclable cell views.
package sectiontable

import (
	"fmt"
	"image/color"
	"maps"
)

const (
	// DefaultIdentifier is the reuse identifier used when a cell does not name one.
	DefaultIdentifier = "Cell"
	// DefaultClass is the cell class constructed when a cell does not name one.
	DefaultClass = "base"

	// ArgumentCell is the reserved argument key holding the selected cell.
	ArgumentCell = "cell"
	// ArgumentValue is the reserved argument key holding a toggle's state.
	ArgumentValue = "value"
)

// CellStyle selects the layout of the built-in labels of a cell.
type CellStyle int

const (
	// StyleDefault shows a single title label.
	StyleDefault CellStyle = iota
	// StyleValue1 shows the title on the left and the subtitle right-aligned.
	StyleValue1
	// StyleValue2 shows a small title label followed by the subtitle.
	StyleValue2
	// StyleSubtitle stacks the subtitle below the title.
	StyleSubtitle
)

// String returns the string representation of a CellStyle.
func (s CellStyle) String() string {
	switch s {
	case StyleDefault:
		return "default"
	case StyleValue1:
		return "value1"
	case StyleValue2:
		return "value2"
	case StyleSubtitle:
		return "subtitle"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ParseCellStyle maps a style name to a CellStyle.
func ParseCellStyle(name string) (CellStyle, bool) {
	for s := StyleDefault; s <= StyleSubtitle; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return StyleDefault, false
}

// SelectionStyle controls the highlight drawn when a row is selected.
type SelectionStyle int

const (
	// SelectionUnset leaves the view's own highlight in place.
	SelectionUnset SelectionStyle = iota
	// SelectionNone disables the highlight.
	SelectionNone
	// SelectionBlue uses the primary color.
	SelectionBlue
	// SelectionGray uses a neutral color.
	SelectionGray
)

// String returns the string representation of a SelectionStyle.
func (s SelectionStyle) String() string {
	switch s {
	case SelectionUnset:
		return "unset"
	case SelectionNone:
		return "none"
	case SelectionBlue:
		return "blue"
	case SelectionGray:
		return "gray"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ParseSelectionStyle maps a selection style name to a SelectionStyle.
func ParseSelectionStyle(name string) (SelectionStyle, bool) {
	for s := SelectionUnset; s <= SelectionGray; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return SelectionUnset, false
}

// AccessorySwitch is the Accessory value that builds a toggle control.
const AccessorySwitch = "switch"

// Coordinate addresses one cell. Both indexes are zero-based.
type Coordinate struct {
	Section int
	Row     int
}

// String returns "section:row".
func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%d", c.Section, c.Row)
}

// Arguments is the mapping passed to action handlers.
type Arguments map[string]any

// with returns a copy of a extended with the given key.
func (a Arguments) with(key string, value any) Arguments {
	out := make(Arguments, len(a)+1)
	maps.Copy(out, a)
	out[key] = value
	return out
}

// Image is a locally available image.
type Image struct {
	// Name identifies the image: a theme icon name or a file path.
	Name string
	// Resource is a host-specific image value; it wins over Name when set.
	Resource any
	// Radius rounds the image corners when greater than zero.
	Radius float32
}

// RemoteImage is an image fetched by an ImageLoader.
type RemoteImage struct {
	URL string
	// Placeholder names the image shown until the download completes.
	Placeholder string
	// Size is the edge length of the image view; zero keeps the view's size.
	Size   float32
	Radius float32
}

// Section is one titled group of cells.
type Section struct {
	// Title is rendered as the section header; empty means no header.
	Title string
	// Cells is nil when the section carries no cell sequence.
	Cells []Cell
}

// Cell describes the content and behaviour of one row.
type Cell struct {
	Style      CellStyle
	Identifier string
	Class      string

	Title    string
	Subtitle string

	// Styles holds the label style mapping. A textLabel.frame entry routes
	// the title to a custom positioned label.
	Styles Attributes
	// ClassAttributes is applied to the view on every resolve.
	ClassAttributes Attributes

	AccessoryView    any
	Accessory        string
	AccessoryDefault bool

	Image       *Image
	RemoteImage *RemoteImage

	// SubViews are placed in numbered slots starting at 1. Nil entries leave
	// their slot empty.
	SubViews []any
	// Details is added after the subviews.
	Details any

	Action          string
	AccessoryAction string
	Arguments       Arguments

	NoSelect        bool
	MasksToBounds   bool
	BackgroundColor color.Color
	SelectionStyle  SelectionStyle

	// SearchText is matched by filters in addition to title and subtitle.
	SearchText string
}

// identifier returns the reuse identifier, applying the default.
func (c *Cell) identifier(cfg Config) string {
	if c.Identifier != "" {
		return c.Identifier
	}
	return cfg.DefaultIdentifier
}

// class returns the cell class, applying the default.
func (c *Cell) class(cfg Config) string {
	if c.Class != "" {
		return c.Class
	}
	return cfg.DefaultClass
}

// customLabel returns the textLabel style mapping when it positions the label
// with a frame.
func (c *Cell) customLabel() (Attributes, bool) {
	label, ok := c.Styles.Nested("textLabel")
	if !ok {
		return nil, false
	}
	if _, ok := label["frame"]; !ok {
		return nil, false
	}
	return label, true
}

// Frame positions a custom label inside a cell's content area.
type Frame struct {
	X, Y, Width, Height float32
}

// ParseFrame converts a frame leaf value into a Frame. It accepts a Frame, a
// four element numeric sequence or a mapping with x, y, width and height.
func ParseFrame(v any) (Frame, bool) {
	switch f := v.(type) {
	case Frame:
		return f, true
	case []any:
		if len(f) != 4 {
			return Frame{}, false
		}
		var out [4]float32
		for i, n := range f {
			x, ok := toFloat32(n)
			if !ok {
				return Frame{}, false
			}
			out[i] = x
		}
		return Frame{X: out[0], Y: out[1], Width: out[2], Height: out[3]}, true
	case []float32:
		if len(f) != 4 {
			return Frame{}, false
		}
		return Frame{X: f[0], Y: f[1], Width: f[2], Height: f[3]}, true
	case map[string]any:
		var out Frame
		var ok bool
		if out.X, ok = toFloat32(f["x"]); !ok {
			return Frame{}, false
		}
		if out.Y, ok = toFloat32(f["y"]); !ok {
			return Frame{}, false
		}
		if out.Width, ok = toFloat32(f["width"]); !ok {
			return Frame{}, false
		}
		if out.Height, ok = toFloat32(f["height"]); !ok {
			return Frame{}, false
		}
		return out, true
	default:
		return Frame{}, false
	}
}

func toFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	default:
		return 0, false
	}
}
