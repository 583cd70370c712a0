/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package cli wires every operation of the designer into one scriptable
// command tree. The desktop app and the terminal UI are subcommands; all
// other commands print JSON so scripts and agents can consume them.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	applog "golabeldesigner/internal/log"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/version"
)

// App carries the persistent flag state shared by all subcommands.
type App struct {
	Library    string
	PrettyJSON bool
}

// NewRootCmd builds the golabeldesigner command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "golabeldesigner",
		Short:        "Shelf label designer: templates, product merges, print exports",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the desktop app (requires a fyne build)
  golabeldesigner ui

  # Start the terminal UI
  golabeldesigner tui

  # Scriptable commands
  golabeldesigner init --dir ./store-labels --name "Nordwest Store"
  golabeldesigner templates list
  golabeldesigner search --text apples
  golabeldesigner export pdf --out labels.pdf
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		applog.Init(applog.FromEnv())
	}

	cmd.PersistentFlags().StringVar(&app.Library, "library", envOr("GLD_LIBRARY", ""), "Path to the library directory (default: current directory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newVersionCmd(app))
	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newInfoCmd(app))
	cmd.AddCommand(newUICmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newStocksCmd(app))
	cmd.AddCommand(newProductsCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newReindexCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newStylesCmd(app))
	cmd.AddCommand(newCatalogCmd(app))

	return cmd
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"version": version.String()})
		},
	}
}

// openLib resolves the library directory from --library / GLD_LIBRARY /
// the working directory and opens it.
func openLib(app *App) (*storage.LibraryHandle, error) {
	dir := strings.TrimSpace(app.Library)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	lh, err := storage.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open library %s: %w", dir, err)
	}
	return lh, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
