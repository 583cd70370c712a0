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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"golabeldesigner/internal/products"
	"golabeldesigner/internal/storage"
)

func newProductsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Product list commands",
	}
	cmd.AddCommand(newProductsShowCmd(app))
	cmd.AddCommand(newProductsSetCmd(app))
	cmd.AddCommand(newProductsCheckCmd(app))
	cmd.AddCommand(newProductsSnapshotsCmd(app))
	return cmd
}

func newProductsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the parsed product list",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			text, err := storage.ReadProductList(lh)
			if err != nil {
				return writeErr(cmd, err)
			}
			list, errs := products.Parse(text)
			out := map[string]any{
				"sections": len(list.Sections),
				"products": list.Products(),
			}
			if len(errs) > 0 {
				out["errors"] = errs
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newProductsSetCmd(app *App) *cobra.Command {
	var file string
	var force bool
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the product list from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return writeErr(cmd, err)
			}
			text := string(data)
			list, errs := products.Parse(text)
			if len(errs) > 0 && !force {
				return writeErr(cmd, fmt.Errorf("product list: line %d: %s (use --force to save anyway)", errs[0].Line, errs[0].Message))
			}
			if err := storage.WriteProductList(lh, text); err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := storage.SaveProductListSnapshot(ctx, lh, text, time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"products": len(list.Products()),
				"errors":   len(errs),
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the product list file")
	cmd.Flags().BoolVar(&force, "force", false, "Save even when the list has parse errors")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newProductsCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report per-template placeholder coverage for the product list",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			text, err := storage.ReadProductList(lh)
			if err != nil {
				return writeErr(cmd, err)
			}
			list, errs := products.Parse(text)
			if len(errs) > 0 {
				return writeErr(cmd, fmt.Errorf("product list: line %d: %s", errs[0].Line, errs[0].Message))
			}
			cov := storage.ComputeFieldCoverage(lh.Library, list)
			return writeOut(cmd, app, cov)
		},
	}
}

func newProductsSnapshotsCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List saved product list snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			snaps, err := storage.ListProductListSnapshots(ctx, lh, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, snaps)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum snapshots to list")
	return cmd
}
