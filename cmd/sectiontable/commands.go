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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/magpierre/fyne-sectiontable/adapters/arrowsource"
	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/windows"
)

const appID = "io.github.magpierre.sectiontable"

// errDiagnostics is returned by lint when a document has warnings.
var errDiagnostics = errors.New("dataset has warnings")

type globalFlags struct {
	logLevel string
	timeout  int
	mapping  arrowsource.Mapping
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{mapping: arrowsource.DefaultMapping()}

	root := &cobra.Command{
		Use:           "sectiontable",
		Short:         "Browse section datasets in a grouped table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.IntVar(&g.timeout, "timeout", 60, "timeout in seconds for network calls")
	pf.StringVar(&g.mapping.SectionColumn, "group", "", "column that groups CSV and Parquet rows into sections")
	pf.StringVar(&g.mapping.TitleColumn, "title-column", "", "column used for cell titles")
	pf.StringVar(&g.mapping.SubtitleColumn, "subtitle-column", "", "column used for cell subtitles")
	pf.Int64Var(&g.mapping.Limit, "limit", 0, "maximum number of rows to read, 0 reads all")

	root.AddCommand(newShowCmd(g), newLintCmd(g), newConvertCmd(g))
	return root
}

func (g *globalFlags) logger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func newShowCmd(g *globalFlags) *cobra.Command {
	var (
		scriptPath string
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "show [dataset]",
		Short: "Open the browser window, optionally with a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			opts := windows.Options{
				ScriptPath: scriptPath,
				Watch:      watch,
				APITimeout: g.timeout,
				Mapping:    g.mapping,
				Logger:     logger,
			}
			if len(args) == 1 {
				opts.DataPath = args[0]
			}

			a := app.NewWithID(appID)
			a.Settings().SetTheme(windows.CustomTheme{})
			windows.NewMainWindow(a, opts).ShowAndRun()
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "Go source file whose exported functions become actions")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload YAML documents when they change")
	return cmd
}

func newLintCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <dataset>...",
		Short: "Load datasets and report their warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			warned := false
			for _, path := range args {
				ds, err := windows.LoadDataset(path, g.mapping, g.timeout)
				if err != nil {
					return err
				}
				for _, d := range ds.Diagnostics {
					fmt.Fprintf(out, "%s: %s\n", path, d)
					warned = true
				}
				fmt.Fprintln(out, ds.Summary())
			}
			if warned {
				return errDiagnostics
			}
			return nil
		},
	}
}

func newConvertCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <dataset> <output.yaml>",
		Short: "Write a dataset as a YAML document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := windows.LoadDataset(args[0], g.mapping, g.timeout)
			if err != nil {
				return err
			}
			if err := yamldoc.WriteFile(args[1], ds.Sections); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sections to %s\n", len(ds.Sections), filepath.Base(args[1]))
			return nil
		},
	}
}
