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
	"image/color"
	"strings"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// TokenType represents the type of a syntax token
type TokenType int

const (
	TokenPlain   TokenType = iota
	TokenKeyword           // Go keywords, document keys
	TokenString            // "...", `...`, '...'
	TokenComment           // //, #
	TokenNumber            // 123, 3.14, 0x1A
	TokenOperator          // +, -, :=, ==
	TokenBuiltin           // int, string, true, null
	TokenAPI               // names of the section table API and cell keys
)

// StyledCell represents a single character with its style
type StyledCell struct {
	Rune  rune
	Token TokenType
}

// SyntaxStyles defines the color scheme for different token types
var SyntaxStyles = map[TokenType]widget.TextGridStyle{
	TokenKeyword: &widget.CustomTextGridStyle{
		FGColor:   color.NRGBA{R: 255, G: 20, B: 147, A: 255},
		TextStyle: fyne.TextStyle{Bold: true},
	},
	TokenString: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 0, G: 180, B: 0, A: 255},
	},
	TokenComment: &widget.CustomTextGridStyle{
		FGColor:   color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		TextStyle: fyne.TextStyle{Italic: true},
	},
	TokenNumber: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 0, G: 150, B: 255, A: 255},
	},
	TokenOperator: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 120, G: 120, B: 120, A: 255},
	},
	TokenBuiltin: &widget.CustomTextGridStyle{
		FGColor:   color.NRGBA{R: 0, G: 180, B: 180, A: 255},
		TextStyle: fyne.TextStyle{Bold: true},
	},
	TokenAPI: &widget.CustomTextGridStyle{
		FGColor: color.NRGBA{R: 255, G: 140, B: 0, A: 255},
	},
}

// Language highlights one line of source at a time.
type Language interface {
	Name() string
	Highlight(line string) []StyledCell
}

var (
	// GoLanguage highlights action scripts.
	GoLanguage Language = goLanguage{}
	// YAMLLanguage highlights dataset documents.
	YAMLLanguage Language = yamlLanguage{}
)

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

var goBuiltins = map[string]bool{
	"bool": true, "byte": true, "error": true, "float32": true, "float64": true,
	"int": true, "int64": true, "rune": true, "string": true, "uint": true,
	"any": true, "nil": true, "true": true, "false": true,
}

// apiNames are the script symbols exported by the sectiontable package.
var apiNames = map[string]bool{
	"sectiontable": true, "Arguments": true, "Cell": true, "Section": true,
	"Coordinate": true, "Image": true, "RemoteImage": true,
	"ArgumentCell": true, "ArgumentValue": true, "AccessorySwitch": true,
}

// cellKeys are the keys of a cell in a dataset document.
var cellKeys = map[string]bool{
	"sections": true, "cells": true, "title": true, "subtitle": true,
	"cellStyle": true, "cellIdentifier": true, "cellClass": true,
	"styles": true, "cellClassAttributes": true, "accessoryView": true,
	"accessory": true, "accessoryDefault": true, "image": true,
	"remoteImage": true, "subViews": true, "details": true, "action": true,
	"accessoryAction": true, "arguments": true, "noSelect": true,
	"masksToBounds": true, "backgroundColor": true, "selectionStyle": true,
	"searchText": true,
}

type goLanguage struct{}

func (goLanguage) Name() string { return "Go" }

// Highlight tokenizes a line of Go.
func (goLanguage) Highlight(line string) []StyledCell {
	runes := []rune(line)
	cells := make([]StyledCell, 0, len(runes))
	emit := func(from, to int, tok TokenType) {
		for _, r := range runes[from:to] {
			cells = append(cells, StyledCell{Rune: r, Token: tok})
		}
	}

	for pos := 0; pos < len(runes); {
		r := runes[pos]
		switch {
		case unicode.IsSpace(r):
			emit(pos, pos+1, TokenPlain)
			pos++
		case r == '/' && pos+1 < len(runes) && runes[pos+1] == '/':
			emit(pos, len(runes), TokenComment)
			pos = len(runes)
		case r == '"' || r == '`' || r == '\'':
			end := scanString(runes, pos)
			emit(pos, end, TokenString)
			pos = end
		case isDigit(r):
			end := scanNumber(runes, pos)
			emit(pos, end, TokenNumber)
			pos = end
		case isIdentStart(r):
			end := scanIdentifier(runes, pos)
			word := string(runes[pos:end])
			tok := TokenPlain
			switch {
			case goKeywords[word]:
				tok = TokenKeyword
			case goBuiltins[word]:
				tok = TokenBuiltin
			case apiNames[word]:
				tok = TokenAPI
			}
			emit(pos, end, tok)
			pos = end
		case strings.ContainsRune("+-*/%&|^<>=!:;,.()[]{}~", r):
			emit(pos, pos+1, TokenOperator)
			pos++
		default:
			emit(pos, pos+1, TokenPlain)
			pos++
		}
	}
	return cells
}

type yamlLanguage struct{}

func (yamlLanguage) Name() string { return "YAML" }

// Highlight tokenizes a line of YAML: keys, scalars and comments.
func (yamlLanguage) Highlight(line string) []StyledCell {
	runes := []rune(line)
	cells := make([]StyledCell, 0, len(runes))
	emit := func(from, to int, tok TokenType) {
		for _, r := range runes[from:to] {
			cells = append(cells, StyledCell{Rune: r, Token: tok})
		}
	}

	pos := 0
	for pos < len(runes) && (unicode.IsSpace(runes[pos]) || runes[pos] == '-') {
		tok := TokenPlain
		if runes[pos] == '-' {
			tok = TokenOperator
		}
		emit(pos, pos+1, tok)
		pos++
	}

	// A key runs up to the first ": " or a trailing colon.
	if end := keyEnd(runes, pos); end > pos {
		tok := TokenKeyword
		if cellKeys[string(runes[pos:end])] {
			tok = TokenAPI
		}
		emit(pos, end, tok)
		emit(end, end+1, TokenOperator)
		pos = end + 1
	}

	for pos < len(runes) {
		r := runes[pos]
		switch {
		case r == '#' && (pos == 0 || unicode.IsSpace(runes[pos-1])):
			emit(pos, len(runes), TokenComment)
			pos = len(runes)
		case r == '"' || r == '\'':
			end := scanString(runes, pos)
			emit(pos, end, TokenString)
			pos = end
		case isDigit(r):
			end := scanNumber(runes, pos)
			emit(pos, end, TokenNumber)
			pos = end
		case isIdentStart(r):
			end := scanIdentifier(runes, pos)
			tok := TokenPlain
			switch string(runes[pos:end]) {
			case "true", "false", "null", "yes", "no":
				tok = TokenBuiltin
			}
			emit(pos, end, tok)
			pos = end
		case strings.ContainsRune("[]{},:", r):
			emit(pos, pos+1, TokenOperator)
			pos++
		default:
			emit(pos, pos+1, TokenPlain)
			pos++
		}
	}
	return cells
}

// keyEnd returns the index of the colon ending a mapping key at start, or
// start when the line has no key there.
func keyEnd(runes []rune, start int) int {
	if start >= len(runes) || runes[start] == '#' || runes[start] == '"' || runes[start] == '\'' {
		return start
	}
	for i := start; i < len(runes); i++ {
		switch runes[i] {
		case ':':
			if i+1 == len(runes) || runes[i+1] == ' ' {
				return i
			}
		case ' ', '{', '[', ',':
			return start
		}
	}
	return start
}

// scanString returns the end of the quoted string starting at start. Raw
// strings have no escapes; unclosed strings run to the end of the line.
func scanString(runes []rune, start int) int {
	quote := runes[start]
	for pos := start + 1; pos < len(runes); pos++ {
		if runes[pos] == '\\' && quote != '`' {
			pos++
			continue
		}
		if runes[pos] == quote {
			return pos + 1
		}
	}
	return len(runes)
}

func scanNumber(runes []rune, start int) int {
	pos := start
	for pos < len(runes) {
		r := runes[pos]
		if !isDigit(r) && r != '.' && r != 'e' && r != 'E' && r != 'x' && r != 'X' && r != '_' {
			break
		}
		pos++
	}
	return pos
}

func scanIdentifier(runes []rune, start int) int {
	pos := start
	for pos < len(runes) && (isIdentStart(runes[pos]) || isDigit(runes[pos])) {
		pos++
	}
	return pos
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
