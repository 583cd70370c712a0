/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package products

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"golabeldesigner/internal/domain"
)

// Parse parses a product list text into a structured List.
// Supported syntax (minimal):
// - Section headings:
//   - Lines starting with "#" or "List:" introduce a new section. The rest of the line is the title.
//
// - Product rows: SKU | Name | Price  or  SKU | Name | Price | Unit
//   - Continuation lines indented by 2+ spaces extend the previous row's description.
//   - @tag tokens anywhere on the row are collected into Tags and stripped from the fields.
//
// - Notes: lines starting with ';' are RowNote.
// Rows with the wrong field count are kept as RowUnknown and reported in the
// error list; blank lines are separators and not represented as rows.
func Parse(input string) (List, []Error) {
	l := List{Sections: []Section{}}
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	currentSection := Section{}
	var lastRow *Row

	// Patterns
	reSection := regexp.MustCompile(`^(#+)\s*(.*)$`)
	reSectionAlt := regexp.MustCompile(`^(?i)\s*List:\s*(.+)$`)
	reTag := regexp.MustCompile(`(?i)@([a-z0-9_\-]+)`) // tags like @organic

	extractTags := func(s string) []string {
		found := reTag.FindAllStringSubmatch(s, -1)
		if len(found) == 0 {
			return nil
		}
		m := map[string]struct{}{}
		for _, f := range found {
			if len(f) > 1 {
				t := strings.ToLower(strings.TrimSpace(f[1]))
				if t != "" {
					m[t] = struct{}{}
				}
			}
		}
		if len(m) == 0 {
			return nil
		}
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		return out
	}

	mergeTags := func(row *Row, tags []string) {
		if len(tags) == 0 {
			return
		}
		m := map[string]struct{}{}
		for _, t := range row.Tags {
			m[t] = struct{}{}
		}
		for _, t := range tags {
			m[t] = struct{}{}
		}
		merged := make([]string, 0, len(m))
		for k := range m {
			merged = append(merged, k)
		}
		row.Tags = merged
	}

	flushSection := func() {
		if strings.TrimSpace(currentSection.Title) != "" || len(currentSection.Rows) > 0 {
			l.Sections = append(l.Sections, currentSection)
		}
	}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimRight(raw, "\r\n")

		// Continuation line (indented) -> extend the previous product's description
		if strings.HasPrefix(line, "  ") && lastRow != nil && lastRow.Type == RowProduct {
			cont := strings.TrimSpace(line)
			if cont != "" {
				mergeTags(lastRow, extractTags(cont))
				cont = strings.TrimSpace(reTag.ReplaceAllString(cont, ""))
				if cont != "" {
					if lastRow.Product.Description != "" {
						lastRow.Product.Description += "\n"
					}
					lastRow.Product.Description += cont
				}
			}
			continue
		}

		trim := strings.TrimSpace(line)
		if trim == "" {
			lastRow = nil
			continue
		}

		// Section heading
		if m := reSection.FindStringSubmatch(trim); m != nil {
			flushSection()
			currentSection = Section{Title: strings.TrimSpace(m[2])}
			lastRow = nil
			continue
		}
		if m := reSectionAlt.FindStringSubmatch(trim); m != nil {
			flushSection()
			currentSection = Section{Title: strings.TrimSpace(m[1])}
			lastRow = nil
			continue
		}

		// Rows before any heading land in an implicit section
		if len(l.Sections) == 0 && strings.TrimSpace(currentSection.Title) == "" && len(currentSection.Rows) == 0 {
			currentSection.Title = "Untitled"
		}

		// Note row
		if strings.HasPrefix(trim, ";") {
			currentSection.Rows = append(currentSection.Rows, Row{Type: RowNote, Text: strings.TrimSpace(strings.TrimPrefix(trim, ";")), LineNo: lineNo})
			lastRow = nil
			continue
		}

		// Product row: SKU | Name | Price [| Unit]
		if strings.Contains(trim, "|") {
			tags := extractTags(trim)
			clean := strings.TrimSpace(reTag.ReplaceAllString(trim, ""))
			fields := strings.Split(clean, "|")
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			if ok, reason := validProductFields(fields); !ok {
				errs = append(errs, Error{Line: lineNo, Column: 1, Message: reason})
				currentSection.Rows = append(currentSection.Rows, Row{Type: RowUnknown, Text: trim, Tags: tags, LineNo: lineNo})
				lastRow = nil
				continue
			}
			p := domain.Product{SKU: fields[0], Name: fields[1], Price: fields[2]}
			if len(fields) == 4 {
				p.Unit = fields[3]
			}
			currentSection.Rows = append(currentSection.Rows, Row{Type: RowProduct, Product: p, Tags: tags, LineNo: lineNo})
			lastRow = &currentSection.Rows[len(currentSection.Rows)-1]
			continue
		}

		// Anything else is unknown; keep it to avoid data loss
		currentSection.Rows = append(currentSection.Rows, Row{Type: RowUnknown, Text: trim, Tags: extractTags(trim), LineNo: lineNo})
		lastRow = nil
	}
	// Append last section
	flushSection()

	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Column: 1, Message: err.Error()})
	}
	return l, errs
}

func validProductFields(fields []string) (bool, string) {
	if len(fields) < 3 || len(fields) > 4 {
		return false, fmt.Sprintf("product row has %d fields, want 3 or 4 (SKU | Name | Price [| Unit])", len(fields))
	}
	switch {
	case fields[0] == "":
		return false, "product row has an empty SKU"
	case fields[1] == "":
		return false, "product row has an empty name"
	case fields[2] == "":
		return false, "product row has an empty price"
	}
	return true, ""
}
