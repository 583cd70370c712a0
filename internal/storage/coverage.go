/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/products"
)

// TemplateCoverage summarizes how well a product list feeds one template:
// the placeholder fields the template references, how many rows provide a
// non-empty value for each, and the referenced fields no row fills at all.
type TemplateCoverage struct {
	Template    string
	Fields      []string
	FieldCounts map[string]int
	Unbound     []string
}

// ComputeFieldCoverage reports, per template, which placeholder fields a merge
// run over the given product list would actually resolve. Fields listed in
// Unbound would print as raw braces on every label.
func ComputeFieldCoverage(lib domain.Library, list products.List) []TemplateCoverage {
	rows := list.Products()
	out := make([]TemplateCoverage, 0, len(lib.Templates))
	for _, tpl := range lib.Templates {
		cov := TemplateCoverage{
			Template:    tpl.Name,
			Fields:      products.Fields(tpl),
			FieldCounts: map[string]int{},
		}
		for _, f := range cov.Fields {
			n := 0
			for _, p := range rows {
				if v, ok := products.FieldValue(p, f); ok && v != "" {
					n++
				}
			}
			cov.FieldCounts[f] = n
			if n == 0 {
				cov.Unbound = append(cov.Unbound, f)
			}
		}
		out = append(out, cov)
	}
	return out
}

// StockUsage lists the templates bound to one stock. Stock == "" collects the
// templates with no binding; Unknown marks names that no stock in the library
// defines (e.g. after a stock was renamed or deleted).
type StockUsage struct {
	Stock     string
	Templates []string
	Unknown   bool
}

// ComputeStockUsage groups the library's templates by the stock they are
// bound to, in library stock order, followed by unknown bindings and finally
// the unbound group if any. Stocks without templates are still reported so
// the UI can show them as empty.
func ComputeStockUsage(lib domain.Library) []StockUsage {
	byStock := map[string][]string{}
	for _, tpl := range lib.Templates {
		byStock[tpl.Stock] = append(byStock[tpl.Stock], tpl.Name)
	}
	known := map[string]struct{}{}
	var out []StockUsage
	for _, st := range lib.Stocks {
		known[st.Name] = struct{}{}
		out = append(out, StockUsage{Stock: st.Name, Templates: byStock[st.Name]})
	}
	for _, tpl := range lib.Templates {
		if tpl.Stock == "" {
			continue
		}
		if _, ok := known[tpl.Stock]; ok {
			continue
		}
		known[tpl.Stock] = struct{}{}
		out = append(out, StockUsage{Stock: tpl.Stock, Templates: byStock[tpl.Stock], Unknown: true})
	}
	if names, ok := byStock[""]; ok {
		out = append(out, StockUsage{Stock: "", Templates: names})
	}
	return out
}

// BindTemplateStock binds the named template to the named stock. The stock
// must exist in the library; binding a template to the stock it already uses
// is a no-op. Returns an error if the template or stock cannot be found.
func BindTemplateStock(lh *LibraryHandle, templateName, stockName string) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}
	if stockName == "" {
		return fmt.Errorf("stock name is empty")
	}
	if domain.FindStock(&lh.Library, stockName) == nil {
		return fmt.Errorf("stock %q not found", stockName)
	}
	tpl := domain.FindTemplate(&lh.Library, templateName)
	if tpl == nil {
		return fmt.Errorf("template %q not found", templateName)
	}
	if tpl.Stock == stockName {
		return nil // already bound
	}
	tpl.Stock = stockName
	return nil
}
