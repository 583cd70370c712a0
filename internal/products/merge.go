/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package products

import (
	"fmt"

	"golabeldesigner/internal/domain"
)

// Apply resolves the template's placeholders from one product and returns the
// resolved copy. Item ids and order are preserved so a resolved template can
// be opened in the editor; the source product is recorded on the copy.
// Placeholders with no matching product field stay verbatim, which is what
// UnboundFields reports ahead of a merge run.
func Apply(t domain.Template, p domain.Product) domain.Template {
	out := t
	out.Items = make([]domain.Item, len(t.Items))
	copy(out.Items, t.Items)
	for i := range out.Items {
		if out.Items[i].Kind != domain.KindText {
			continue
		}
		out.Items[i].Text = expand(out.Items[i].Text, p)
	}
	prod := p
	out.Product = &prod
	return out
}

// GenerateAll resolves the template once per product in the list, in file
// order. Each copy is renamed with the product's SKU so batch exports get
// distinct file names.
func GenerateAll(t domain.Template, l List) []domain.Template {
	prods := l.Products()
	out := make([]domain.Template, 0, len(prods))
	for i, p := range prods {
		resolved := Apply(t, p)
		if p.SKU != "" {
			resolved.Name = fmt.Sprintf("%s-%s", t.Name, p.SKU)
		} else {
			resolved.Name = fmt.Sprintf("%s-%d", t.Name, i+1)
		}
		out = append(out, resolved)
	}
	return out
}

func expand(s string, p domain.Product) string {
	return rePlaceholder.ReplaceAllStringFunc(s, func(m string) string {
		field := m[1 : len(m)-1]
		if v, ok := FieldValue(p, field); ok {
			return v
		}
		return m
	})
}
