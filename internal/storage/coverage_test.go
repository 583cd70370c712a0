/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/products"
	"testing"
)

func TestComputeFieldCoverage(t *testing.T) {
	// Prepare a product list with two rows; only one has a unit
	txt := `# Dairy
4001 | Oat Milk | 2.49 | 1L
4002 | Butter | 3.19`
	list, errs := products.Parse(txt)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %+v", errs)
	}

	lib := domain.Library{
		Name: "Test",
		Templates: []domain.Template{
			{Name: "shelf-price", Items: []domain.Item{
				{ID: 1, Kind: domain.KindText, Text: "{name}", FontSize: 18},
				{ID: 2, Kind: domain.KindText, Text: "{price} / {unit}", FontSize: 12},
				{ID: 3, Kind: domain.KindText, Text: "{ean}", FontSize: 8},
			}},
			{Name: "blank", Items: []domain.Item{
				{ID: 1, Kind: domain.KindRect, Width: 100, Height: 40},
			}},
		},
	}

	cov := ComputeFieldCoverage(lib, list)
	if len(cov) != 2 {
		t.Fatalf("expected 2 coverage entries, got %d", len(cov))
	}
	if cov[0].Template != "shelf-price" {
		t.Fatalf("unexpected first entry: %+v", cov[0])
	}
	if cov[0].FieldCounts["name"] != 2 || cov[0].FieldCounts["price"] != 2 {
		t.Fatalf("unexpected name/price counts: %+v", cov[0].FieldCounts)
	}
	if cov[0].FieldCounts["unit"] != 1 {
		t.Fatalf("expected one row with a unit, got %d", cov[0].FieldCounts["unit"])
	}
	// {ean} is not a product field at all, so no row can fill it
	if len(cov[0].Unbound) != 1 || cov[0].Unbound[0] != "ean" {
		t.Fatalf("unexpected unbound fields: %+v", cov[0].Unbound)
	}
	// A template without text items references no fields
	if len(cov[1].Fields) != 0 || len(cov[1].Unbound) != 0 {
		t.Fatalf("unexpected coverage for blank template: %+v", cov[1])
	}
}

func TestComputeStockUsage(t *testing.T) {
	lib := domain.Library{
		Name: "Test",
		Stocks: []domain.Stock{
			{Name: "thermal-58x40", Width: 164, Height: 113},
			{Name: "a6", Width: 297, Height: 420},
		},
		Templates: []domain.Template{
			{Name: "shelf-price", Stock: "thermal-58x40"},
			{Name: "promo", Stock: "thermal-58x40"},
			{Name: "legacy", Stock: "roll-32"},
			{Name: "draft"},
		},
	}
	usage := ComputeStockUsage(lib)
	if len(usage) != 4 {
		t.Fatalf("expected 4 usage groups, got %d (%+v)", len(usage), usage)
	}
	if usage[0].Stock != "thermal-58x40" || len(usage[0].Templates) != 2 || usage[0].Unknown {
		t.Fatalf("unexpected thermal usage: %+v", usage[0])
	}
	if usage[1].Stock != "a6" || len(usage[1].Templates) != 0 {
		t.Fatalf("expected empty a6 group, got %+v", usage[1])
	}
	if usage[2].Stock != "roll-32" || !usage[2].Unknown {
		t.Fatalf("expected unknown stock group for roll-32, got %+v", usage[2])
	}
	if usage[3].Stock != "" || len(usage[3].Templates) != 1 || usage[3].Templates[0] != "draft" {
		t.Fatalf("expected unbound group with draft, got %+v", usage[3])
	}
}

func TestBindTemplateStock(t *testing.T) {
	lh := &LibraryHandle{Library: domain.Library{
		Name:      "Test",
		Stocks:    []domain.Stock{{Name: "a6", Width: 297, Height: 420}},
		Templates: []domain.Template{{Name: "promo"}},
	}}

	if err := BindTemplateStock(lh, "promo", "a6"); err != nil {
		t.Fatalf("BindTemplateStock error: %v", err)
	}
	// Binding again should be a no-op
	if err := BindTemplateStock(lh, "promo", "a6"); err != nil {
		t.Fatalf("BindTemplateStock duplicate error: %v", err)
	}
	if got := domain.FindTemplate(&lh.Library, "promo").Stock; got != "a6" {
		t.Fatalf("unexpected binding: %q", got)
	}

	// Unknown stock must be rejected
	if err := BindTemplateStock(lh, "promo", "missing"); err == nil {
		t.Fatalf("expected unknown stock error")
	}
	// Unknown template must be rejected
	if err := BindTemplateStock(lh, "missing", "a6"); err == nil {
		t.Fatalf("expected unknown template error")
	}
}
