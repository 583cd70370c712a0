/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package products

import "golabeldesigner/internal/domain"

// List represents a parsed product list with its sections. Product lists are
// plain text (products/*.txt) so stores can export them from whatever POS or
// inventory tool they have; the format is line-based and forgiving.

type List struct {
	Sections []Section
}

type Section struct {
	Title string
	Rows  []Row
}

// RowType indicates the kind of a list row.
// Product: SKU | Name | Price [| Unit]
// Note:    lines starting with ";" are author notes and skipped by the merge
// Unknown: anything else; kept so nothing silently disappears

type RowType int

const (
	RowUnknown RowType = iota
	RowProduct
	RowNote
)

// Row captures a single logical row (possibly with continuations) in a
// section. For Product rows the parsed fields live in Product and indented
// follow-up lines extend Product.Description; Text holds the raw content for
// Note and Unknown rows.

type Row struct {
	Type    RowType
	Product domain.Product
	Text    string
	Tags    []string
	LineNo  int // 1-based starting line number in the source
}

// Error represents a parse error with position context.

type Error struct {
	Line    int
	Column  int
	Message string
}

// Products flattens the list into its product rows in file order.
func (l List) Products() []domain.Product {
	var out []domain.Product
	for _, sec := range l.Sections {
		for _, r := range sec.Rows {
			if r.Type == RowProduct {
				out = append(out, r.Product)
			}
		}
	}
	return out
}
