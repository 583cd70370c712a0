/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package products

import (
	"regexp"
	"sort"

	"golabeldesigner/internal/domain"
)

// rePlaceholder matches merge placeholders like {name} or {price}. Field
// names are lower-case identifiers; anything else in braces is left alone.
var rePlaceholder = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// FieldValue resolves a placeholder name against a product. The bool reports
// whether the field exists at all, independent of whether its value is empty.
func FieldValue(p domain.Product, field string) (string, bool) {
	switch field {
	case "sku":
		return p.SKU, true
	case "name":
		return p.Name, true
	case "price":
		return p.Price, true
	case "unit":
		return p.Unit, true
	case "description":
		return p.Description, true
	}
	return "", false
}

// Fields returns the distinct placeholder names used by the template's text
// items, sorted.
func Fields(t domain.Template) []string {
	set := map[string]struct{}{}
	for _, it := range t.Items {
		if it.Kind != domain.KindText {
			continue
		}
		for _, m := range rePlaceholder.FindAllStringSubmatch(it.Text, -1) {
			set[m[1]] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// UnboundFields returns the placeholders in the template that no product
// field satisfies. A non-empty result means a merge run would leave raw
// braces on the printed label.
func UnboundFields(t domain.Template) []string {
	var out []string
	for _, f := range Fields(t) {
		if _, ok := FieldValue(domain.Product{}, f); !ok {
			out = append(out, f)
		}
	}
	return out
}
