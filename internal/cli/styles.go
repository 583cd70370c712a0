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
	"github.com/spf13/cobra"

	"golabeldesigner/internal/stylepack"
)

func newStylesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Style pack commands",
	}
	cmd.AddCommand(newStylesExportCmd(app))
	cmd.AddCommand(newStylesInstallCmd(app))
	return cmd
}

func newStylesExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library's styles and fonts as a pack ZIP",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := stylepack.ExportLibraryStyles(lh.Root, out); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"out": out})
		},
	}
	cmd.Flags().StringVar(&out, "out", "styles.gldpack.zip", "Output pack path")
	return cmd
}

func newStylesInstallCmd(app *App) *cobra.Command {
	var pack string
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install a style pack ZIP into the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := stylepack.InstallPack(lh.Root, pack)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"installed": n})
		},
	}
	cmd.Flags().StringVar(&pack, "pack", "", "Path to the style pack ZIP")
	_ = cmd.MarkFlagRequired("pack")
	return cmd
}
