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

package sectiontable

import "fmt"

// Container is the scrolling host that displays the table.
type Container interface {
	// Reload redraws every visible row from the current dataset.
	Reload()
	// Deselect removes the selection highlight of a row.
	Deselect(c Coordinate)
	// CoordinateOf returns the coordinate a view is currently displayed at.
	CoordinateOf(view CellView) (Coordinate, bool)
}

// SelectionHandler turns selection and toggle events into action dispatches.
type SelectionHandler struct {
	index     *Index
	actions   *ActionRegistry
	container Container
	rep       reporter
}

// NewSelectionHandler returns a handler dispatching through actions.
func NewSelectionHandler(cfg Config, index *Index, actions *ActionRegistry) *SelectionHandler {
	return &SelectionHandler{
		index:   index,
		actions: actions,
		rep:     newReporter(cfg.withDefaults()),
	}
}

// SetContainer attaches the host container used to deselect rows and to
// locate toggled views.
func (h *SelectionHandler) SetContainer(c Container) {
	h.container = c
}

// OnSelect deselects the row at c and dispatches the cell's action with the
// cell under ArgumentCell.
func (h *SelectionHandler) OnSelect(c Coordinate) {
	cell, ok := h.index.CellAt(c)
	if !ok {
		h.rep.report("OnSelect", KindLookupMiss, fmt.Errorf("%w: %s", ErrLookupMiss, c))
		return
	}
	if h.container != nil {
		h.container.Deselect(c)
	}
	if cell.Action == "" {
		return
	}
	h.actions.Dispatch(cell.Action, cell.Arguments.with(ArgumentCell, cell))
}

// OnAccessoryToggle locates the toggled view and dispatches the cell's
// accessory action with the toggle state under ArgumentValue and the cell
// under ArgumentCell.
func (h *SelectionHandler) OnAccessoryToggle(ev ToggleEvent) {
	if h.container == nil {
		h.rep.report("OnAccessoryToggle", KindLookupMiss,
			fmt.Errorf("%w: no container attached", ErrLookupMiss))
		return
	}
	c, ok := h.container.CoordinateOf(ev.View)
	if !ok {
		h.rep.report("OnAccessoryToggle", KindLookupMiss,
			fmt.Errorf("%w: toggled view is not displayed", ErrLookupMiss))
		return
	}
	cell, ok := h.index.CellAt(c)
	if !ok {
		h.rep.report("OnAccessoryToggle", KindLookupMiss, fmt.Errorf("%w: %s", ErrLookupMiss, c))
		return
	}
	if cell.AccessoryAction == "" {
		return
	}
	args := cell.Arguments.with(ArgumentValue, ev.On).with(ArgumentCell, cell)
	h.actions.Dispatch(cell.AccessoryAction, args)
}
