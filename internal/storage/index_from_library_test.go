/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"testing"
	"time"

	"golabeldesigner/internal/domain"
)

// Validates FTS5 and cross-ref queries using an index built from a domain.Library and its product list.
func TestIndexBuildFromLibraryFTSAndCrossRef(t *testing.T) {
	root := t.TempDir()
	lib := domain.Library{
		Name:     "Concept Case",
		Metadata: domain.Metadata{Store: "Corner Store", Region: "North", Contact: "A Drost"},
		Stocks:   []domain.Stock{{Name: "thermal-58x40", Width: 164, Height: 113, DPI: 203}},
		Templates: []domain.Template{{
			Name:   "shelf-price",
			Stock:  "thermal-58x40",
			Width:  164,
			Height: 113,
			Product: &domain.Product{
				SKU: "4001", Name: "Oat Milk", Price: "2.49", Unit: "1L",
			},
			Items: []domain.Item{
				{ID: 1, Kind: domain.KindText, X: 10, Y: 30, Text: "Hello from the dairy aisle", FontSize: 12},
				{ID: 2, Kind: domain.KindRect, X: 0, Y: 0, Width: 164, Height: 113},
			},
		}},
	}
	lh, err := InitLibrary(root, lib)
	if err != nil || lh == nil {
		t.Fatalf("InitLibrary: %v", err)
	}
	if err := WriteProductList(lh, "# Dairy\n4001 | Oat Milk | 2.49 | 1L @vegan\n"); err != nil {
		t.Fatalf("WriteProductList: %v", err)
	}
	// Wait for background first build to complete to avoid locking
	time.Sleep(300 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RebuildIndex(ctx, root, lib); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	// FTS: search phrase Hello
	res, err := Search(ctx, root, SearchQuery{Text: "Hello"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res) == 0 {
		t.Fatalf("expected FTS results for 'Hello'")
	}
	// Tag filter
	res, err = Search(ctx, root, SearchQuery{Tags: []string{"vegan"}})
	if err != nil || len(res) == 0 {
		t.Fatalf("Search tags: %v len=%d", err, len(res))
	}
	// Template filter should find the template row and its text item
	res, err = Search(ctx, root, SearchQuery{Template: "shelf-price"})
	if err != nil || len(res) == 0 {
		t.Fatalf("Search template: %v len=%d", err, len(res))
	}
	// SKU filter should find the product rows
	res, err = Search(ctx, root, SearchQuery{SKU: "4001"})
	if err != nil || len(res) == 0 {
		t.Fatalf("Search sku: %v len=%d", err, len(res))
	}
	// Cross-refs: the stock should be referenced by the bound template
	res, err = WhereUsedByPath(ctx, root, "stock:thermal-58x40", 10, 0)
	if err != nil {
		t.Fatalf("WhereUsedByPath: %v", err)
	}
	if len(res) == 0 || res[0].Template != "shelf-price" {
		t.Fatalf("expected shelf-price to reference the stock, got %+v", res)
	}
}
