/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the open template's items while they are being edited.
// It is the single source of truth between the interaction machine, the
// property panel and the renderers: items are value types, mutations replace
// an item wholesale, and slice order is paint order (later items draw on top).
package scene

import (
	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/vector"
)

// Scene is the ordered item list of one open template.
//
// Scene is not safe for concurrent use; the editor drives it from a single
// goroutine (the UI event loop).
type Scene struct {
	items  []domain.Item
	nextID int
}

// New builds a scene over a copy of items. Items with a zero or duplicate id
// are assigned fresh ones so that every item is uniquely addressable; a
// duplicate keeps its id at its first occurrence. Hand-edited manifests are
// the usual source of both.
func New(items []domain.Item) *Scene {
	s := &Scene{items: make([]domain.Item, len(items))}
	copy(s.items, items)
	max := 0
	for _, it := range s.items {
		if it.ID > max {
			max = it.ID
		}
	}
	s.nextID = max + 1
	seen := make(map[int]bool, len(s.items))
	for i := range s.items {
		if s.items[i].ID == 0 || seen[s.items[i].ID] {
			s.items[i].ID = s.nextID
			s.nextID++
		}
		seen[s.items[i].ID] = true
	}
	return s
}

// Len returns the number of items.
func (s *Scene) Len() int { return len(s.items) }

// Items returns the items in paint order. The slice is a copy; callers may
// not reach into the scene through it.
func (s *Scene) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id, or false when no such item exists.
func (s *Scene) Get(id int) (domain.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

// Update replaces the item with the given id by fn's result, keeping its
// position in paint order. The replacement keeps the original id even if fn
// changed it. Unknown ids are a no-op and return false.
func (s *Scene) Update(id int, fn func(domain.Item) domain.Item) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			next := fn(s.items[i])
			next.ID = id
			s.items[i] = next
			return true
		}
	}
	return false
}

// Add appends an item on top of the paint order, assigning it a fresh id,
// and returns the stored value.
func (s *Scene) Add(it domain.Item) domain.Item {
	it.ID = s.nextID
	s.nextID++
	s.items = append(s.items, it)
	return it
}

// Remove deletes the item with the given id. Unknown ids are a no-op and
// return false.
func (s *Scene) Remove(id int) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// HitTest returns the id of the topmost item whose bounds contain p. Items
// are scanned in reverse paint order so the item drawn last wins. Items with
// empty bounds (unknown kinds, empty text) are not hittable.
func (s *Scene) HitTest(p vector.Pt) (int, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		b := Bounds(s.items[i])
		if b.Empty() {
			continue
		}
		if b.Contains(p) {
			return s.items[i].ID, true
		}
	}
	return 0, false
}
