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
	"sort"
)

// EnsureTemplate returns a pointer to the template with the given name, creating it if it does not exist yet.
// New templates are appended with an empty item list and default canvas size.
func EnsureTemplate(lh *LibraryHandle, name string) (*domain.Template, error) {
	if lh == nil {
		return nil, fmt.Errorf("library handle is nil")
	}
	if name == "" {
		return nil, fmt.Errorf("template name must not be empty")
	}
	if t := domain.FindTemplate(&lh.Library, name); t != nil {
		return t, nil
	}
	// Create new template
	tpl := domain.Template{Name: name, Width: 164, Height: 113, Items: []domain.Item{}}
	lh.Library.Templates = append(lh.Library.Templates, tpl)
	// Keep templates sorted by name
	sort.Slice(lh.Library.Templates, func(i, j int) bool { return lh.Library.Templates[i].Name < lh.Library.Templates[j].Name })
	// Return pointer to the (potentially moved) template
	if t := domain.FindTemplate(&lh.Library, name); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("failed to create template %q", name)
}

// NextItemID returns the next free item id on the given template.
// Item ids are unique per template, never reused within one editing session.
func NextItemID(t *domain.Template) int {
	return domain.MaxItemID(t) + 1
}

// AddItem creates a new item on the given template with default geometry if zero.
// If item.ID is 0, a unique one will be assigned. The item is appended at the
// end of the list, which paints it on top. Returns the created item.
func AddItem(lh *LibraryHandle, templateName string, item domain.Item) (domain.Item, error) {
	tpl, err := EnsureTemplate(lh, templateName)
	if err != nil {
		return domain.Item{}, err
	}
	if item.ID == 0 {
		item.ID = NextItemID(tpl)
	} else {
		// ensure unique
		for _, it := range tpl.Items {
			if it.ID == item.ID {
				return domain.Item{}, fmt.Errorf("item id %d already exists on template %q", item.ID, templateName)
			}
		}
	}
	if item.Kind == "" {
		item.Kind = domain.KindRect
	}
	// kind-specific defaults so a freshly added item is visible and hittable
	switch item.Kind {
	case domain.KindRect:
		if item.Width <= 0 || item.Height <= 0 {
			item.Width, item.Height = 120, 40
		}
	case domain.KindCircle:
		if item.Radius <= 0 {
			item.Radius = 20
		}
	case domain.KindText:
		if item.FontSize <= 0 {
			item.FontSize = 12
		}
	}
	if item.Color == "" {
		item.Color = "#000000"
	}
	tpl.Items = append(tpl.Items, item)
	return item, nil
}

// findItem returns template pointer, item index and pointer, or error.
func findItem(lh *LibraryHandle, templateName string, itemID int) (*domain.Template, int, *domain.Item, error) {
	if lh == nil {
		return nil, -1, nil, fmt.Errorf("library handle is nil")
	}
	tpl := domain.FindTemplate(&lh.Library, templateName)
	if tpl == nil {
		return nil, -1, nil, fmt.Errorf("template %q not found", templateName)
	}
	for k := range tpl.Items {
		if tpl.Items[k].ID == itemID {
			return tpl, k, &tpl.Items[k], nil
		}
	}
	return tpl, -1, nil, fmt.Errorf("item %d not found on template %q", itemID, templateName)
}

// RemoveItem deletes the item from the template, preserving the order of the
// remaining items.
func RemoveItem(lh *LibraryHandle, templateName string, itemID int) error {
	tpl, idx, _, err := findItem(lh, templateName, itemID)
	if err != nil {
		return err
	}
	tpl.Items = append(tpl.Items[:idx], tpl.Items[idx+1:]...)
	return nil
}

// MoveItemZ moves the item up or down in paint order by delta (+1 moves up/top, -1 moves down/back).
// Item order within the slice is the z-order, so this is a plain slice move with clamping at both ends.
func MoveItemZ(lh *LibraryHandle, templateName string, itemID int, delta int) error {
	tpl, idx, _, err := findItem(lh, templateName, itemID)
	if err != nil {
		return err
	}
	newIdx := idx + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(tpl.Items) {
		newIdx = len(tpl.Items) - 1
	}
	if newIdx == idx {
		return nil
	}
	it := tpl.Items[idx]
	if newIdx < idx {
		copy(tpl.Items[newIdx+1:idx+1], tpl.Items[newIdx:idx])
	} else {
		copy(tpl.Items[idx:newIdx], tpl.Items[idx+1:newIdx+1])
	}
	tpl.Items[newIdx] = it
	return nil
}
