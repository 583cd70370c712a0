/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"golabeldesigner/internal/scene"
	"golabeldesigner/internal/vector"
)

// Drawable is the per-item descriptor handed to renderers. It carries
// everything a renderer needs to paint one item and its selection highlight
// without reaching back into the scene.
type Drawable struct {
	ID       int
	Kind     string
	Bounds   vector.Rect
	Color    string
	Text     string
	FontSize float64
	Selected bool
}

// EditorBox describes the inline text editor overlay: which item it edits,
// where to place it, and the text to seed it with.
type EditorBox struct {
	ID     int
	Bounds vector.Rect
	Text   string
}

// Drawables returns one descriptor per scene item in paint order. Exactly one
// descriptor has Selected set while the machine is in a selected, dragging or
// editing state.
func (m *Machine) Drawables() []Drawable {
	items := m.scene.Items()
	out := make([]Drawable, 0, len(items))
	selID, selOK := m.SelectedID()
	for _, it := range items {
		out = append(out, Drawable{
			ID:       it.ID,
			Kind:     it.Kind,
			Bounds:   scene.Bounds(it),
			Color:    it.Color,
			Text:     it.Text,
			FontSize: it.FontSize,
			Selected: selOK && it.ID == selID,
		})
	}
	return out
}

// EditorBox returns the overlay descriptor while a text item is being edited,
// or false otherwise.
func (m *Machine) EditorBox() (EditorBox, bool) {
	if m.state != StateEditing {
		return EditorBox{}, false
	}
	it, ok := m.scene.Get(m.selected)
	if !ok {
		return EditorBox{}, false
	}
	return EditorBox{ID: it.ID, Bounds: scene.Bounds(it), Text: it.Text}, true
}
