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

// Package script loads action handlers written as Go source and runs them
// with the yaegi interpreter. Every exported top-level function of a script
// becomes an action:
//
//	package actions
//
//	import (
//		"fmt"
//
//		"github.com/magpierre/fyne-sectiontable/sectiontable"
//	)
//
//	func OpenWifi(args sectiontable.Arguments) {
//		cell := args[sectiontable.ArgumentCell].(*sectiontable.Cell)
//		fmt.Println("selected", cell.Title)
//	}
package script

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

// ErrNoPackage is returned for sources that lack a package clause.
var ErrNoPackage = errors.New("script has no package clause")

// Options configures the interpreter of a script.
type Options struct {
	// Stdout and Stderr receive the script's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// Exports are additional symbols made importable by the script.
	Exports []interp.Exports

	Logger *slog.Logger
}

// Script is an interpreted source file.
type Script struct {
	interp  *interp.Interpreter
	pkg     string
	actions []string
	logger  *slog.Logger
}

// Load interprets src.
func Load(src string, opts Options) (*Script, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "script.go", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if file.Name == nil {
		return nil, ErrNoPackage
	}

	var actions []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !fn.Name.IsExported() {
			continue
		}
		actions = append(actions, fn.Name.Name)
	}

	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	i := interp.New(interp.Options{
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("error loading stdlib: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("error loading sectiontable symbols: %w", err)
	}
	for _, exports := range opts.Exports {
		if err := i.Use(exports); err != nil {
			return nil, fmt.Errorf("error loading exports: %w", err)
		}
	}

	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("evaluate script: %w", err)
	}

	return &Script{
		interp:  i,
		pkg:     file.Name.Name,
		actions: actions,
		logger:  opts.Logger,
	}, nil
}

// LoadFile interprets the script at path.
func LoadFile(path string, opts Options) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Load(string(src), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Package returns the package name of the script.
func (s *Script) Package() string {
	return s.pkg
}

// Actions returns the names of the exported functions in source order.
func (s *Script) Actions() []string {
	return s.actions
}

// Register adds every exported function of the script to r under its own
// name and its lower-camel name. Functions the registry rejects are
// returned as a joined error; the others are registered.
func (s *Script) Register(r *sectiontable.ActionRegistry) error {
	var errs []error
	for _, name := range s.actions {
		v, err := s.interp.Eval(s.pkg + "." + name)
		if err != nil {
			errs = append(errs, fmt.Errorf("resolve %s: %w", name, err))
			continue
		}
		if err := r.Register(name, v); err != nil {
			errs = append(errs, err)
			continue
		}
		if alias := sectiontable.ActionAlias(name); alias != name {
			_ = r.Register(alias, v)
		}
		s.logger.Debug("registered scripted action", "package", s.pkg, "action", name)
	}
	return errors.Join(errs...)
}
