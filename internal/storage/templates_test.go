/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"testing"

	"golabeldesigner/internal/domain"
)

func TestAddItemAndOrdering(t *testing.T) {
	lh := &LibraryHandle{Library: domain.Library{Name: "Test"}}
	// Ensure template exists
	tpl, err := EnsureTemplate(lh, "shelf-price")
	if err != nil {
		t.Fatalf("EnsureTemplate error: %v", err)
	}
	if tpl.Name != "shelf-price" {
		t.Fatalf("expected template shelf-price, got %q", tpl.Name)
	}

	// Add three items
	i1, err := AddItem(lh, "shelf-price", domain.Item{Kind: domain.KindRect})
	if err != nil {
		t.Fatalf("AddItem i1: %v", err)
	}
	i2, err := AddItem(lh, "shelf-price", domain.Item{Kind: domain.KindCircle})
	if err != nil {
		t.Fatalf("AddItem i2: %v", err)
	}
	i3, err := AddItem(lh, "shelf-price", domain.Item{ID: 9, Kind: domain.KindText, Text: "{name}"})
	if err != nil {
		t.Fatalf("AddItem i3: %v", err)
	}
	if i1.ID != 1 || i2.ID != 2 || i3.ID != 9 {
		t.Fatalf("unexpected ids: i1=%d i2=%d i3=%d", i1.ID, i2.ID, i3.ID)
	}
	// Defaults should make the items visible
	if i1.Width <= 0 || i1.Height <= 0 || i2.Radius <= 0 || i3.FontSize <= 0 {
		t.Fatalf("expected kind defaults applied: %+v %+v %+v", i1, i2, i3)
	}

	// Try duplicate ID
	if _, err := AddItem(lh, "shelf-price", domain.Item{ID: i1.ID}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	// Move middle (i2) up to top
	if err := MoveItemZ(lh, "shelf-price", i2.ID, +1); err != nil {
		t.Fatalf("MoveItemZ up: %v", err)
	}
	// After move, re-check ordering: slice order is paint order
	tpl2, err := EnsureTemplate(lh, "shelf-price")
	if err != nil {
		t.Fatalf("EnsureTemplate after move: %v", err)
	}
	if len(tpl2.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(tpl2.Items))
	}
	if tpl2.Items[2].ID != i2.ID {
		t.Fatalf("expected item %d to be top, got %+v", i2.ID, tpl2.Items[2])
	}

	// Move top up beyond the end (no change expected)
	if err := MoveItemZ(lh, "shelf-price", i2.ID, +10); err != nil {
		t.Fatalf("MoveItemZ out-of-range: %v", err)
	}
	tpl3, _ := EnsureTemplate(lh, "shelf-price")
	if tpl3.Items[2].ID != i2.ID {
		t.Fatalf("expected still top: %+v", tpl3.Items)
	}
}

func TestEnsureTemplateKeepsSortedOrder(t *testing.T) {
	lh := &LibraryHandle{Library: domain.Library{Name: "Test"}}
	for _, name := range []string{"weekly-offer", "shelf-price", "allergen-card"} {
		if _, err := EnsureTemplate(lh, name); err != nil {
			t.Fatalf("EnsureTemplate %s: %v", name, err)
		}
	}
	got := make([]string, 0, len(lh.Library.Templates))
	for _, tpl := range lh.Library.Templates {
		got = append(got, tpl.Name)
	}
	want := []string{"allergen-card", "shelf-price", "weekly-offer"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("templates not sorted: got %v", got)
		}
	}
	// EnsureTemplate on an existing name must not duplicate
	if _, err := EnsureTemplate(lh, "shelf-price"); err != nil {
		t.Fatalf("EnsureTemplate existing: %v", err)
	}
	if len(lh.Library.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(lh.Library.Templates))
	}
}

func TestRemoveItem(t *testing.T) {
	lh := &LibraryHandle{Library: domain.Library{Name: "Test", Templates: []domain.Template{{
		Name: "promo",
		Items: []domain.Item{
			{ID: 1, Kind: domain.KindRect, Width: 100, Height: 50},
			{ID: 2, Kind: domain.KindText, Text: "{price}", FontSize: 18},
			{ID: 3, Kind: domain.KindCircle, Radius: 12},
		},
	}}}}
	if err := RemoveItem(lh, "promo", 2); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	tpl := domain.FindTemplate(&lh.Library, "promo")
	if len(tpl.Items) != 2 || tpl.Items[0].ID != 1 || tpl.Items[1].ID != 3 {
		t.Fatalf("unexpected items after remove: %+v", tpl.Items)
	}
	// Removing a missing item should error
	if err := RemoveItem(lh, "promo", 42); err == nil {
		t.Fatalf("expected missing item error")
	}
}
