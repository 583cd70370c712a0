/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"strconv"

	"golabeldesigner/internal/domain"
)

// PropertyEditor applies property-panel edits to the current selection. Input
// arrives as the raw strings of the panel widgets; anything that does not
// apply (no selection, wrong kind, unparsable value) is dropped without
// touching the scene, so the panel never has to pre-validate.
type PropertyEditor struct {
	m *Machine
}

// NewPropertyEditor binds a property editor to m's selection.
func NewPropertyEditor(m *Machine) *PropertyEditor {
	return &PropertyEditor{m: m}
}

// Selected returns the selected item, or false when nothing is selected.
func (pe *PropertyEditor) Selected() (domain.Item, bool) {
	id, ok := pe.m.SelectedID()
	if !ok {
		return domain.Item{}, false
	}
	return pe.m.scene.Get(id)
}

// SetColor writes a new color onto the selected item. Every kind carries a
// color, so no kind check applies. The value is stored as given; renderers
// fall back to black when it does not parse.
func (pe *PropertyEditor) SetColor(value string) {
	id, ok := pe.m.SelectedID()
	if !ok {
		return
	}
	pe.m.scene.Update(id, func(it domain.Item) domain.Item {
		it.Color = value
		return it
	})
}

// SetFontSize parses the panel's font size field and writes it onto the
// selected item. Only text items take a font size; non-numeric and
// non-positive values are dropped.
func (pe *PropertyEditor) SetFontSize(value string) {
	id, ok := pe.m.SelectedID()
	if !ok {
		return
	}
	it, ok := pe.m.scene.Get(id)
	if !ok || it.Kind != domain.KindText {
		return
	}
	size, err := strconv.ParseFloat(value, 64)
	if err != nil || size <= 0 {
		return
	}
	pe.m.scene.Update(id, func(it domain.Item) domain.Item {
		it.FontSize = size
		return it
	})
}
