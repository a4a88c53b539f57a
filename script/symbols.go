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

package script

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// Symbols exposes the sectiontable types to interpreted scripts, which
// import them as "github.com/magpierre/fyne-sectiontable/sectiontable".
var Symbols = interp.Exports{
	"github.com/magpierre/fyne-sectiontable/sectiontable/sectiontable": {
		// types
		"Arguments":   reflect.ValueOf((*sectiontable.Arguments)(nil)),
		"Cell":        reflect.ValueOf((*sectiontable.Cell)(nil)),
		"Section":     reflect.ValueOf((*sectiontable.Section)(nil)),
		"Coordinate":  reflect.ValueOf((*sectiontable.Coordinate)(nil)),
		"Image":       reflect.ValueOf((*sectiontable.Image)(nil)),
		"RemoteImage": reflect.ValueOf((*sectiontable.RemoteImage)(nil)),

		// constants
		"ArgumentCell":    reflect.ValueOf(sectiontable.ArgumentCell),
		"ArgumentValue":   reflect.ValueOf(sectiontable.ArgumentValue),
		"AccessorySwitch": reflect.ValueOf(sectiontable.AccessorySwitch),
	},
}
