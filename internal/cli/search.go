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
	"time"

	"github.com/spf13/cobra"

	"golabeldesigner/internal/storage"
)

func newSearchCmd(app *App) *cobra.Command {
	var (
		text, template, sku, stock string
		tags, types                []string
		limit, offset              int
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Full-text search over the library index",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			res, err := storage.Search(ctx, lh.Root, storage.SearchQuery{
				Text:     text,
				Template: template,
				SKU:      sku,
				Stock:    stock,
				Tags:     tags,
				Types:    types,
				Limit:    limit,
				Offset:   offset,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res, "count": len(res)})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Full-text query")
	cmd.Flags().StringVar(&template, "template", "", "Filter by template name")
	cmd.Flags().StringVar(&sku, "sku", "", "Filter by product SKU")
	cmd.Flags().StringVar(&stock, "stock", "", "Filter by stock name")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Require @tag (repeatable)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Restrict document types (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Result offset")
	return cmd
}

func newReindexCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the embedded search index from the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			if err := storage.RebuildIndex(ctx, lh.Root, lh.Library); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"reindexed": lh.Root})
		},
	}
}
