package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// LogicOp joins the expressions of a query.
type LogicOp int

const (
	// LogicAND requires every filter to pass.
	LogicAND LogicOp = iota
	// LogicOR requires one filter to pass.
	LogicOR
)

func (op LogicOp) String() string {
	switch op {
	case LogicAND:
		return "AND"
	case LogicOR:
		return "OR"
	default:
		return fmt.Sprintf("unknown(%d)", op)
	}
}

// CompositeFilter joins cell filters with one logic operator.
type CompositeFilter struct {
	Filters []sectiontable.Filter
	Logic   LogicOp
}

// Combine joins left and right with op. A composite on the left using the
// same operator is extended instead of nested, so a chain of ANDs stays flat.
func Combine(op LogicOp, left, right sectiontable.Filter) *CompositeFilter {
	if c, ok := left.(*CompositeFilter); ok && c.Logic == op {
		return &CompositeFilter{Filters: append(slices.Clip(c.Filters), right), Logic: op}
	}
	return &CompositeFilter{Filters: []sectiontable.Filter{left, right}, Logic: op}
}

// Evaluate stops at the first filter that decides the result: a failing one
// for AND, a passing one for OR. An empty composite passes every cell.
func (f *CompositeFilter) Evaluate(cell *sectiontable.Cell) (bool, error) {
	var decisive bool
	switch f.Logic {
	case LogicAND:
		decisive = false
	case LogicOR:
		decisive = true
	default:
		return false, fmt.Errorf("%w: unknown logic operator %d", ErrInvalidFilter, f.Logic)
	}
	if len(f.Filters) == 0 {
		return true, nil
	}
	for _, sub := range f.Filters {
		passes, err := sub.Evaluate(cell)
		if err != nil {
			return false, err
		}
		if passes == decisive {
			return decisive, nil
		}
	}
	return !decisive, nil
}

func (f *CompositeFilter) Description() string {
	if len(f.Filters) == 0 {
		return "empty filter"
	}
	parts := make([]string, len(f.Filters))
	for i, sub := range f.Filters {
		parts[i] = sub.Description()
	}
	return "(" + strings.Join(parts, " "+f.Logic.String()+" ") + ")"
}

func (f *CompositeFilter) fields() []string {
	var out []string
	for _, sub := range f.Filters {
		out = append(out, Fields(sub)...)
	}
	return out
}

// Fields lists the cell fields f inspects, sorted and without duplicates.
// Bare words are reported as "any".
func Fields(f sectiontable.Filter) []string {
	var out []string
	switch f := f.(type) {
	case *Expression:
		name := f.Field
		if name == "" {
			name = "any"
		}
		out = []string{name}
	case *CompositeFilter:
		out = f.fields()
	}
	slices.Sort(out)
	return slices.Compact(out)
}
