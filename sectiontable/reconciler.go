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

import (
	"fmt"
	"image/color"
	"slices"
)

// ImageTarget receives images. A nil image clears the current one.
type ImageTarget interface {
	SetImage(img *Image)
}

// ImageLoader fetches remote images asynchronously. Load returns immediately;
// the loader sets the placeholder and later the downloaded image on target.
// When the same target is loaded again the latest request must win.
type ImageLoader interface {
	Load(target ImageTarget, img RemoteImage)
}

// CellView is a recyclable view provided by the host. The reconciler
// configures it but does not own its lifecycle.
type CellView interface {
	ImageTarget

	ReuseIdentifier() string

	// Structural setup, applied once when the view is constructed.
	SetClipsToBounds(clip bool)
	SetBackgroundColor(c color.Color)
	SetSelectionStyle(style SelectionStyle)
	SetFlexibleWidth(flexible bool)

	// SetAccessoryView shows v at the trailing edge; nil removes the accessory.
	SetAccessoryView(v any)
	// SetSwitchAccessory shows a toggle seeded with on. changed is called with
	// the new state whenever the user flips it.
	SetSwitchAccessory(on bool, changed func(on bool))

	SetTitle(text string)
	// SetTitleHidden makes the built-in title label transparent.
	SetTitleHidden(hidden bool)
	SetSubtitle(text string)

	SetImageSize(size float32)
	SetImageCornerRadius(radius float32)

	// Subviews returns the occupied subview slots.
	Subviews() []int
	SetSubview(slot int, v any)
	RemoveSubview(slot int)
	// SetDetails shows v after the subviews; nil removes it.
	SetDetails(v any)

	// ContentLabel returns the custom label of the content area, if any.
	ContentLabel() (PropertySetter, bool)
	// AddContentLabel creates the custom label of the content area.
	AddContentLabel() PropertySetter
}

// Pool hands out recyclable views. Acquire returns nil on a miss.
type Pool interface {
	Acquire(identifier string) CellView
	Construct(identifier string, style CellStyle, class string) CellView
}

// ToggleEvent is delivered when a switch accessory changes state.
type ToggleEvent struct {
	View CellView
	On   bool
}

// Reconciler maps a coordinate and an optionally recycled view to a fully
// configured view.
type Reconciler struct {
	cfg      Config
	index    *Index
	rep      reporter
	onToggle func(ToggleEvent)
}

// NewReconciler returns a Reconciler resolving cells from index. onToggle
// receives switch accessory changes.
func NewReconciler(cfg Config, index *Index, onToggle func(ToggleEvent)) *Reconciler {
	cfg = cfg.withDefaults()
	return &Reconciler{
		cfg:      cfg,
		index:    index,
		rep:      newReporter(cfg),
		onToggle: onToggle,
	}
}

// ResolveView returns the view to display at c. A stale coordinate yields an
// unconfigured default view.
func (r *Reconciler) ResolveView(c Coordinate, pool Pool) CellView {
	cell, ok := r.index.CellAt(c)
	if !ok {
		r.rep.report("ResolveView", KindLookupMiss, fmt.Errorf("%w: %s", ErrLookupMiss, c))
		return pool.Construct(r.cfg.DefaultIdentifier, r.cfg.DefaultStyle, r.cfg.DefaultClass)
	}

	identifier := cell.identifier(r.cfg)
	style := cell.Style
	if style == StyleDefault {
		style = r.cfg.DefaultStyle
	}

	view := pool.Acquire(identifier)
	if view == nil {
		view = pool.Construct(identifier, style, cell.class(r.cfg))
		r.setupStructure(view, cell)
	}

	r.resetSelection(view, cell)
	if cell.ClassAttributes != nil {
		Apply(view, cell.ClassAttributes)
	}
	r.configureAccessory(view, cell)
	view.SetSubtitle(cell.Subtitle)
	if cell.NoSelect {
		view.SetSelectionStyle(SelectionNone)
	}
	r.configureImage(view, cell)
	r.reconcileSubviews(view, cell)
	r.configureTitle(view, cell)

	return view
}

// setupStructure runs once per constructed view.
func (r *Reconciler) setupStructure(view CellView, cell *Cell) {
	if cell.MasksToBounds {
		view.SetClipsToBounds(true)
	}
	if cell.BackgroundColor != nil {
		view.SetBackgroundColor(cell.BackgroundColor)
	}
	view.SetFlexibleWidth(true)
}

// configureAccessory installs the accessory. A switch accessory replaces an
// explicit accessory view on the same cell.
func (r *Reconciler) configureAccessory(view CellView, cell *Cell) {
	switch {
	case cell.Accessory == AccessorySwitch:
		view.SetSwitchAccessory(cell.AccessoryDefault, func(on bool) {
			if r.onToggle != nil {
				r.onToggle(ToggleEvent{View: view, On: on})
			}
		})
	case cell.AccessoryView != nil:
		view.SetAccessoryView(cell.AccessoryView)
	default:
		view.SetAccessoryView(nil)
	}
}

// resetSelection restores the cell's own selection style on a reused view.
// Class attributes applied afterwards may still override it.
func (r *Reconciler) resetSelection(view CellView, cell *Cell) {
	if cell.SelectionStyle != SelectionUnset {
		view.SetSelectionStyle(cell.SelectionStyle)
		return
	}
	view.SetSelectionStyle(SelectionBlue)
}

// configureImage prefers the remote image over the local one.
func (r *Reconciler) configureImage(view CellView, cell *Cell) {
	switch {
	case cell.RemoteImage != nil:
		if r.cfg.ImageLoader == nil {
			r.rep.report("ResolveView", KindMissingImageCapability,
				fmt.Errorf("%w: cannot load %s", ErrNoImageLoader, cell.RemoteImage.URL))
			view.SetImage(nil)
			return
		}
		if cell.RemoteImage.Size > 0 {
			view.SetImageSize(cell.RemoteImage.Size)
		}
		view.SetImageCornerRadius(cell.RemoteImage.Radius)
		r.cfg.ImageLoader.Load(view, *cell.RemoteImage)
	case cell.Image != nil:
		view.SetImageCornerRadius(cell.Image.Radius)
		view.SetImage(cell.Image)
	default:
		view.SetImage(nil)
	}
}

// reconcileSubviews empties every occupied slot before placing the cell's
// subviews at slots 1..N.
func (r *Reconciler) reconcileSubviews(view CellView, cell *Cell) {
	occupied := slices.Clone(view.Subviews())
	slices.Sort(occupied)
	for _, slot := range occupied {
		view.RemoveSubview(slot)
	}
	for i, sub := range cell.SubViews {
		if sub == nil {
			continue
		}
		view.SetSubview(i+1, sub)
	}
	view.SetDetails(cell.Details)
}

// configureTitle renders the title either in the built-in label or, when the
// style mapping positions the label with a frame, in a custom content label.
func (r *Reconciler) configureTitle(view CellView, cell *Cell) {
	attrs, custom := cell.customLabel()
	label, ok := view.ContentLabel()
	if !custom {
		if ok {
			label.SetProperty("hidden", true)
		}
		view.SetTitleHidden(false)
		view.SetTitle(cell.Title)
		return
	}
	if !ok {
		label = view.AddContentLabel()
	}
	label.SetProperty("hidden", false)
	Apply(label, attrs)
	view.SetTitleHidden(true)
}
