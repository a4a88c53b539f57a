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
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"
)

// action is a validated handler. Exactly one of call0 and call1 is set.
type action struct {
	call0 func()
	call1 func(Arguments)
}

// ActionRegistry maps action names from cell descriptors to handlers.
// Handlers take no arguments or a single Arguments mapping; any other
// signature is rejected when it is registered.
type ActionRegistry struct {
	actions  map[string]action
	rejected map[string]error
	rep      reporter
}

// NewActionRegistry returns an empty registry reporting through cfg.
func NewActionRegistry(cfg Config) *ActionRegistry {
	return &ActionRegistry{
		actions:  make(map[string]action),
		rejected: make(map[string]error),
		rep:      newReporter(cfg.withDefaults()),
	}
}

// Register binds name to handler. Accepted handlers are func(),
// func(Arguments), func(map[string]any) and any function, including a
// reflect.Value, taking zero parameters, one parameter a mapping can be
// assigned to, or only a variadic parameter of such a type.
// An unusable signature returns ErrUnsupportedArity and later dispatches of
// name are reported rather than invoked.
func (r *ActionRegistry) Register(name string, handler any) error {
	a, err := newAction(handler)
	if err != nil {
		err = fmt.Errorf("action %q: %w", name, err)
		delete(r.actions, name)
		r.rejected[name] = err
		return err
	}
	delete(r.rejected, name)
	r.actions[name] = a
	return nil
}

// RegisterMethods registers every exported method of host under its Go name
// and its lower camel case name. Methods with unusable signatures are skipped
// and returned as a joined error; the others stay registered.
func (r *ActionRegistry) RegisterMethods(host any) error {
	v := reflect.ValueOf(host)
	if !v.IsValid() {
		return nil
	}
	t := v.Type()
	var errs []error
	for i := 0; i < t.NumMethod(); i++ {
		name := t.Method(i).Name
		fn := v.Method(i)
		if err := r.Register(name, fn); err != nil {
			errs = append(errs, err)
		}
		if alias := ActionAlias(name); alias != name {
			// The alias shares the result of the Go name.
			_ = r.Register(alias, fn)
		}
	}
	return errors.Join(errs...)
}

// Has reports whether a handler is registered for name.
func (r *ActionRegistry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Names returns the registered action names in sorted order.
func (r *ActionRegistry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes the handler registered for name. Unknown names and
// rejected handlers are reported as diagnostics and dropped.
func (r *ActionRegistry) Dispatch(name string, args Arguments) {
	a, ok := r.actions[name]
	if !ok {
		if err, rejected := r.rejected[name]; rejected {
			r.rep.report("Dispatch", KindUnsupportedActionArity, err)
			return
		}
		r.rep.report("Dispatch", KindUnimplementedAction,
			fmt.Errorf("%w: %s", ErrActionNotImplemented, name))
		return
	}

	defer func() {
		if p := recover(); p != nil {
			r.rep.logger.Error("action handler panicked", "action", name, "panic", p)
		}
	}()
	if a.call0 != nil {
		a.call0()
		return
	}
	a.call1(args)
}

func newAction(handler any) (action, error) {
	switch fn := handler.(type) {
	case nil:
		return action{}, ErrNotAFunction
	case func():
		return action{call0: fn}, nil
	case func(Arguments):
		return action{call1: fn}, nil
	case func(map[string]any):
		return action{call1: func(args Arguments) { fn(args) }}, nil
	case reflect.Value:
		return reflectAction(fn)
	default:
		return reflectAction(reflect.ValueOf(handler))
	}
}

var argumentsType = reflect.TypeOf(Arguments(nil))

func reflectAction(fn reflect.Value) (action, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return action{}, ErrNotAFunction
	}
	t := fn.Type()
	switch {
	case t.NumIn() == 0:
		return action{call0: func() { fn.Call(nil) }}, nil
	case t.NumIn() == 1 && t.IsVariadic():
		if !argumentsFit(t.In(0).Elem()) {
			return action{}, fmt.Errorf("%w: variadic parameter of type %s", ErrUnsupportedArity, t.In(0).Elem())
		}
		elem := t.In(0).Elem()
		return action{call1: func(args Arguments) {
			fn.Call([]reflect.Value{argumentsValue(args, elem)})
		}}, nil
	case t.NumIn() == 1:
		if !argumentsFit(t.In(0)) {
			return action{}, fmt.Errorf("%w: parameter of type %s", ErrUnsupportedArity, t.In(0))
		}
		param := t.In(0)
		return action{call1: func(args Arguments) {
			fn.Call([]reflect.Value{argumentsValue(args, param)})
		}}, nil
	default:
		return action{}, fmt.Errorf("%w: handler expects %d arguments, at most 1 is supported",
			ErrUnsupportedArity, t.NumIn())
	}
}

func argumentsFit(param reflect.Type) bool {
	return argumentsType.AssignableTo(param) || argumentsType.ConvertibleTo(param)
}

func argumentsValue(args Arguments, param reflect.Type) reflect.Value {
	v := reflect.ValueOf(args)
	if args == nil {
		v = reflect.ValueOf(Arguments{})
	}
	if v.Type().AssignableTo(param) {
		return v
	}
	return v.Convert(param)
}

// ActionAlias returns name with its first letter lowered, the spelling
// descriptors use for a method such as OpenRow.
func ActionAlias(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
