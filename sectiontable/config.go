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

import "log/slog"

// Config holds the configuration of a Table.
type Config struct {
	// DefaultIdentifier is used for cells without an Identifier.
	DefaultIdentifier string
	// DefaultClass is used for cells without a Class.
	DefaultClass string
	// DefaultStyle is used for cells that leave Style at its zero value.
	DefaultStyle CellStyle

	// ImageLoader fetches remote images. Nil disables remote images.
	ImageLoader ImageLoader

	// Logger receives diagnostics at warn level. Nil uses slog.Default().
	Logger *slog.Logger
	// OnDiagnostic, when set, is called for every diagnostic after it is logged.
	OnDiagnostic func(*Diagnostic)
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		DefaultIdentifier: DefaultIdentifier,
		DefaultClass:      DefaultClass,
		DefaultStyle:      StyleDefault,
		Logger:            slog.Default(),
	}
}

// withDefaults fills empty fields of c from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultIdentifier == "" {
		c.DefaultIdentifier = d.DefaultIdentifier
	}
	if c.DefaultClass == "" {
		c.DefaultClass = d.DefaultClass
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	return c
}
