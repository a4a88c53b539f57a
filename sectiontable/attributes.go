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
	"maps"
	"slices"
)

// AttrValue is a node of an attribute tree: either a Leaf or nested Attributes.
type AttrValue interface {
	attrValue()
}

// Leaf is a terminal attribute value.
type Leaf struct {
	Value any
}

func (Leaf) attrValue() {}

// Attributes maps property names to leaf values or nested mappings.
type Attributes map[string]AttrValue

func (Attributes) attrValue() {}

// Nested returns the nested mapping stored under key.
func (a Attributes) Nested(key string) (Attributes, bool) {
	v, ok := a[key].(Attributes)
	return v, ok
}

// Leaf returns the leaf value stored under key.
func (a Attributes) Leaf(key string) (any, bool) {
	v, ok := a[key].(Leaf)
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// leafKeys are always stored as leaves even when their value is a mapping.
var leafKeys = map[string]bool{
	"frame": true,
}

// AttributesFrom converts a loosely typed nested mapping, as produced by a
// YAML or JSON decoder, into an attribute tree.
func AttributesFrom(m map[string]any) Attributes {
	if m == nil {
		return nil
	}
	out := make(Attributes, len(m))
	for k, v := range m {
		nested, isMap := v.(map[string]any)
		if isMap && !leafKeys[k] {
			out[k] = AttributesFrom(nested)
			continue
		}
		out[k] = Leaf{Value: v}
	}
	return out
}

// PropertySetter is implemented by targets that accept attribute values.
// SetProperty reports whether the name was handled.
type PropertySetter interface {
	SetProperty(name string, value any) bool
}

// PropertyContainer is implemented by targets exposing named sub-targets for
// nested attribute mappings.
type PropertyContainer interface {
	Property(name string) (any, bool)
}

// Apply sets every attribute on target and returns target. Nested mappings
// are applied to the sub-target the key names. Keys the target does not
// support are skipped. Keys are applied in sorted order.
func Apply(target any, attrs Attributes) any {
	if target == nil {
		return target
	}
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		switch v := attrs[key].(type) {
		case Attributes:
			container, ok := target.(PropertyContainer)
			if !ok {
				continue
			}
			sub, ok := container.Property(key)
			if !ok || sub == nil {
				continue
			}
			Apply(sub, v)
		case Leaf:
			if setter, ok := target.(PropertySetter); ok {
				setter.SetProperty(key, v.Value)
			}
		}
	}
	return target
}
