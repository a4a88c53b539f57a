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

// Package filter builds cell filters from search queries.
//
// A query is a list of expressions joined by AND or OR, evaluated left to
// right without precedence:
//
//	title ~ wifi AND subtitle != off
//	price >= 10 OR featured = true
//	bluetooth
//
// The left side of an expression names a cell field (title, subtitle,
// action, identifier, class, search) or an argument key. A bare word
// matches any text of the cell.
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

var (
	// ErrInvalidFilter is returned when a filter cannot be evaluated.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidQuery is returned when a query string cannot be parsed.
	ErrInvalidQuery = errors.New("invalid query")
)

// CompOp is a comparison operator.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// operators are matched in order, so two-character symbols come first.
var operators = []struct {
	op     CompOp
	symbol string
}{
	{OpGreaterEqual, ">="},
	{OpLessEqual, "<="},
	{OpNotEqual, "!="},
	{OpEqual, "="},
	{OpGreater, ">"},
	{OpLess, "<"},
	{OpContains, "~"},
}

func (op CompOp) String() string {
	for _, o := range operators {
		if o.op == op {
			return o.symbol
		}
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Expression compares one cell field with a value. An empty Field searches
// every text of the cell.
type Expression struct {
	Field    string
	Operator CompOp
	Value    string
}

// Evaluate implements the sectiontable.Filter interface.
func (e *Expression) Evaluate(cell *sectiontable.Cell) (bool, error) {
	if e.Field == "" {
		needle := strings.ToLower(e.Value)
		for _, text := range searchable(cell) {
			if strings.Contains(strings.ToLower(text), needle) {
				return true, nil
			}
		}
		return false, nil
	}

	value, ok := fieldValue(cell, e.Field)
	if !ok {
		return false, nil
	}

	switch e.Operator {
	case OpEqual:
		return strings.EqualFold(value, e.Value), nil
	case OpNotEqual:
		return !strings.EqualFold(value, e.Value), nil
	case OpContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(e.Value)), nil
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return compare(value, e.Value, e.Operator), nil
	}
	return false, fmt.Errorf("%w: unknown operator %d", ErrInvalidFilter, e.Operator)
}

// Description implements the sectiontable.Filter interface.
func (e *Expression) Description() string {
	if e.Field == "" {
		return fmt.Sprintf("any ~ %q", e.Value)
	}
	return fmt.Sprintf("%s %s %q", e.Field, e.Operator, e.Value)
}

// Parse turns a query string into a filter. An empty query returns nil.
func Parse(query string) (sectiontable.Filter, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	var (
		result  sectiontable.Filter
		pending *LogicOp
	)
	for _, part := range splitByLogicOps(query) {
		if part.isOperator {
			if result == nil || pending != nil {
				return nil, fmt.Errorf("%w: misplaced %s", ErrInvalidQuery, part.text)
			}
			op := LogicAND
			if part.text == "OR" {
				op = LogicOR
			}
			pending = &op
			continue
		}

		expr, err := parseExpression(part.text)
		if err != nil {
			return nil, err
		}
		switch {
		case result == nil:
			result = expr
		case pending == nil:
			return nil, fmt.Errorf("%w: missing AND or OR before %q", ErrInvalidQuery, part.text)
		default:
			result = Combine(*pending, result, expr)
			pending = nil
		}
	}
	if pending != nil {
		return nil, fmt.Errorf("%w: trailing %s", ErrInvalidQuery, *pending)
	}
	return result, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits query by AND/OR while preserving the operators.
func splitByLogicOps(query string) []queryPart {
	var (
		parts   []queryPart
		current strings.Builder
	)
	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			parts = append(parts, queryPart{text: text})
		}
		current.Reset()
	}

	for i := 0; i < len(query); {
		matched := false
		for _, word := range []string{"AND", "OR"} {
			end := i + len(word)
			if end > len(query) || !strings.EqualFold(query[i:end], word) {
				continue
			}
			if (i == 0 || isWhitespace(query[i-1])) && (end == len(query) || isWhitespace(query[end])) {
				flush()
				parts = append(parts, queryPart{text: word, isOperator: true})
				i = end
				matched = true
				break
			}
		}
		if !matched {
			current.WriteByte(query[i])
			i++
		}
	}
	flush()
	return parts
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseExpression parses a single expression like "title = value". The
// leftmost operator splits field from value.
func parseExpression(text string) (*Expression, error) {
	best, at := -1, -1
	for i, o := range operators {
		idx := strings.Index(text, o.symbol)
		if idx >= 0 && (at < 0 || idx < at) {
			best, at = i, idx
		}
	}
	if best < 0 {
		return &Expression{Operator: OpContains, Value: strings.Trim(text, "\"'")}, nil
	}

	o := operators[best]
	field := strings.TrimSpace(text[:at])
	if field == "" {
		return nil, fmt.Errorf("%w: %q has no field before %s", ErrInvalidQuery, text, o.symbol)
	}
	value := strings.Trim(strings.TrimSpace(text[at+len(o.symbol):]), "\"'")
	return &Expression{Field: field, Operator: o.op, Value: value}, nil
}

// fieldValue returns the text of a named cell field or argument.
func fieldValue(cell *sectiontable.Cell, field string) (string, bool) {
	switch strings.ToLower(field) {
	case "title":
		return cell.Title, true
	case "subtitle":
		return cell.Subtitle, true
	case "action":
		return cell.Action, true
	case "identifier":
		return cell.Identifier, true
	case "class":
		return cell.Class, true
	case "search":
		return cell.SearchText, true
	}
	if v, ok := cell.Arguments[field]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	return "", false
}

func searchable(cell *sectiontable.Cell) []string {
	texts := []string{cell.Title, cell.Subtitle, cell.SearchText}
	for _, v := range cell.Arguments {
		if s, ok := v.(string); ok {
			texts = append(texts, s)
		}
	}
	return texts
}

// compare orders numerically when both sides parse as numbers and
// case-insensitively otherwise.
func compare(a, b string, op CompOp) bool {
	var cmp int
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			cmp = -1
		case fa > fb:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}

	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}
