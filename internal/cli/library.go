/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/tui"
	"golabeldesigner/internal/ui"
)

func newInitCmd(app *App) *cobra.Command {
	var name, dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new label library",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := strings.TrimSpace(dir)
			if d == "" {
				d = strings.TrimSpace(app.Library)
			}
			if d == "" {
				d = "."
			}
			lh, err := storage.InitLibrary(d, domain.Library{
				Name: strings.TrimSpace(name),
				Stocks: []domain.Stock{
					{Name: "a7-shelf", Width: 210, Height: 74, DPI: 300},
				},
				Templates: []domain.Template{
					{Name: "starter", Stock: "a7-shelf", Width: 210, Height: 74},
				},
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"root":     lh.Root,
				"manifest": lh.ManifestPath,
				"name":     lh.Library.Name,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Library name")
	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (defaults to --library or the working directory)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show library summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tplNames := make([]string, 0, len(lh.Library.Templates))
			for _, t := range lh.Library.Templates {
				tplNames = append(tplNames, t.Name)
			}
			stockNames := make([]string, 0, len(lh.Library.Stocks))
			for _, s := range lh.Library.Stocks {
				stockNames = append(stockNames, s.Name)
			}
			return writeOut(cmd, app, map[string]any{
				"root":      lh.Root,
				"name":      lh.Library.Name,
				"templates": tplNames,
				"stocks":    stockNames,
			})
		},
	}
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui [libraryDir]",
		Short: "Start the desktop app (fyne build)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Library
			if len(args) == 1 {
				dir = args[0]
			}
			return ui.Run(dir)
		},
	}
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [libraryDir]",
		Short: "Start the terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Library
			if len(args) == 1 {
				dir = args[0]
			}
			return tui.Run(dir)
		},
	}
}
