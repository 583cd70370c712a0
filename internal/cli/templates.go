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
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Template commands",
	}
	cmd.AddCommand(newTemplatesListCmd(app))
	cmd.AddCommand(newTemplatesCreateCmd(app))
	cmd.AddCommand(newTemplatesAddItemCmd(app))
	cmd.AddCommand(newTemplatesRemoveItemCmd(app))
	cmd.AddCommand(newTemplatesMoveItemCmd(app))
	cmd.AddCommand(newTemplatesBindStockCmd(app))
	return cmd
}

func newTemplatesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			type row struct {
				Name   string  `json:"name"`
				Stock  string  `json:"stock,omitempty"`
				Width  float64 `json:"width"`
				Height float64 `json:"height"`
				Items  int     `json:"items"`
			}
			rows := make([]row, 0, len(lh.Library.Templates))
			for _, t := range lh.Library.Templates {
				rows = append(rows, row{Name: t.Name, Stock: t.Stock, Width: t.Width, Height: t.Height, Items: len(t.Items)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

func newTemplatesCreateCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty template",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpl, err := storage.EnsureTemplate(lh, strings.TrimSpace(name))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.Save(lh); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tpl})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Template name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTemplatesAddItemCmd(app *App) *cobra.Command {
	var (
		template, kind, itColor, text      string
		x, y, width, height, radius, fsize float64
	)
	cmd := &cobra.Command{
		Use:   "add-item",
		Short: "Append an item to a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it := domain.Item{
				Kind:     strings.TrimSpace(kind),
				X:        x,
				Y:        y,
				Color:    strings.TrimSpace(itColor),
				Width:    width,
				Height:   height,
				Radius:   radius,
				Text:     text,
				FontSize: fsize,
			}
			added, err := storage.AddItem(lh, template, it)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.Save(lh); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": added})
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "Template name")
	cmd.Flags().StringVar(&kind, "kind", "", "Item kind (rect|circle|text)")
	cmd.Flags().Float64Var(&x, "x", 0, "Anchor x")
	cmd.Flags().Float64Var(&y, "y", 0, "Anchor y")
	cmd.Flags().StringVar(&itColor, "color", "#000000", "Fill color #rrggbb")
	cmd.Flags().Float64Var(&width, "width", 0, "Rect width")
	cmd.Flags().Float64Var(&height, "height", 0, "Rect height")
	cmd.Flags().Float64Var(&radius, "radius", 0, "Circle radius")
	cmd.Flags().StringVar(&text, "text", "", "Text content (supports {field} placeholders)")
	cmd.Flags().Float64Var(&fsize, "font-size", 12, "Text font size")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func newTemplatesRemoveItemCmd(app *App) *cobra.Command {
	var template string
	var id int
	cmd := &cobra.Command{
		Use:   "remove-item",
		Short: "Remove an item from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.RemoveItem(lh, template, id); err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.Save(lh); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"removed": id})
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "Template name")
	cmd.Flags().IntVar(&id, "id", 0, "Item id")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTemplatesMoveItemCmd(app *App) *cobra.Command {
	var template string
	var id, delta int
	cmd := &cobra.Command{
		Use:   "move-item",
		Short: "Move an item within the paint order",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.MoveItemZ(lh, template, id, delta); err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.Save(lh); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"moved": id, "delta": delta})
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "Template name")
	cmd.Flags().IntVar(&id, "id", 0, "Item id")
	cmd.Flags().IntVar(&delta, "delta", 1, "Positions to move (+ forward, - backward)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTemplatesBindStockCmd(app *App) *cobra.Command {
	var template, stock string
	cmd := &cobra.Command{
		Use:   "bind-stock",
		Short: "Bind a template to a label stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.BindTemplateStock(lh, template, stock); err != nil {
				return writeErr(cmd, err)
			}
			if err := storage.Save(lh); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"template": template, "stock": stock})
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "Template name")
	cmd.Flags().StringVar(&stock, "stock", "", "Stock name")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("stock")
	return cmd
}

func newStocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stocks",
		Short: "Stock commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List label stocks and their usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": storage.ComputeStockUsage(lh.Library)})
		},
	})
	return cmd
}
