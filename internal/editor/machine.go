/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor implements the pointer interaction of the label canvas as an
// explicit state machine, independent of any UI toolkit. Hosts feed it press,
// move, release, double-click, text and blur events in label coordinates and
// render from the drawable descriptors it produces. Keeping the machine free
// of toolkit types is what lets the fyne canvas, the terminal UI and the tests
// share one behavior.
package editor

import (
	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/scene"
	"golabeldesigner/internal/vector"
)

// State identifies the interaction mode of the canvas.
type State int

const (
	// StateIdle means nothing is selected.
	StateIdle State = iota
	// StateSelected means one item is selected and at rest.
	StateSelected
	// StateDragging means the selected item follows the pointer.
	StateDragging
	// StateEditing means the selected text item has an open inline editor.
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// PointerHook is how the machine scopes pointer capture to a drag. Attach is
// called exactly once when a drag starts and Detach exactly once when it ends,
// on every exit path including Close. Hosts whose toolkit already delivers
// move events to the pressed widget can pass a NopHook.
type PointerHook interface {
	Attach()
	Detach()
}

// NopHook is a PointerHook that does nothing.
type NopHook struct{}

func (NopHook) Attach() {}
func (NopHook) Detach() {}

// Machine owns selection and the drag and edit sessions over one scene.
// Hit-testing stays with the caller: press and double-click take the item id
// the renderer resolved (0 or negative for the background). All coordinates
// are label coordinates; hosts convert from widget space before calling in.
//
// Machine is not safe for concurrent use.
type Machine struct {
	scene *scene.Scene
	hook  PointerHook

	state    State
	selected int
	grab     vector.Pt
	hooked   bool
}

// NewMachine builds a machine over s. A nil hook is replaced by NopHook.
func NewMachine(s *scene.Scene, hook PointerHook) *Machine {
	if hook == nil {
		hook = NopHook{}
	}
	return &Machine{scene: s, hook: hook, state: StateIdle}
}

// State returns the current interaction mode.
func (m *Machine) State() State { return m.state }

// SelectedID returns the selected item id, or false when nothing is selected.
func (m *Machine) SelectedID() (int, bool) {
	if m.state == StateIdle {
		return 0, false
	}
	return m.selected, true
}

// HandlePress processes a primary-button press. A press on an item selects it
// and starts a drag with the grab offset pinned to the pointer position inside
// the item's bounds; a press on the background (id <= 0) clears the selection.
// Either way an open inline editor is committed first and a drag still in
// flight (a lost release) gives its pointer hook back. A press on an id the
// scene does not know is ignored.
func (m *Machine) HandlePress(id int, p vector.Pt) {
	if id <= 0 {
		m.detachHook()
		m.endEdit()
		m.selected = 0
		m.state = StateIdle
		return
	}
	it, ok := m.scene.Get(id)
	if !ok {
		return
	}
	m.endEdit()
	b := scene.Bounds(it)
	m.grab = vector.Pt{X: p.X - b.X, Y: p.Y - b.Y}
	m.selected = id
	m.state = StateDragging
	m.attachHook()
}

// HandleMove processes pointer motion. Outside a drag it is a no-op. During a
// drag the item's anchor is overwritten with pointer minus grab offset, the
// same way for every kind, so the point grabbed at press stays under the
// pointer for the whole gesture.
func (m *Machine) HandleMove(p vector.Pt) {
	if m.state != StateDragging {
		return
	}
	pos := vector.Pt{X: p.X - m.grab.X, Y: p.Y - m.grab.Y}
	m.scene.Update(m.selected, func(it domain.Item) domain.Item {
		it.X = float64(pos.X)
		it.Y = float64(pos.Y)
		return it
	})
}

// HandleRelease ends a drag, keeping the item selected. Outside a drag it is
// a no-op.
func (m *Machine) HandleRelease() {
	if m.state != StateDragging {
		return
	}
	m.detachHook()
	m.state = StateSelected
}

// HandleDoubleClick opens the inline editor when the item is a text item;
// other kinds are just selected. Unknown ids and the background are ignored.
// A drag still in flight gives its pointer hook back before the transition.
func (m *Machine) HandleDoubleClick(id int, p vector.Pt) {
	if id <= 0 {
		return
	}
	it, ok := m.scene.Get(id)
	if !ok {
		return
	}
	m.detachHook()
	if m.state == StateEditing && m.selected != id {
		m.endEdit()
	}
	m.selected = id
	if it.Kind == domain.KindText {
		m.state = StateEditing
		return
	}
	m.state = StateSelected
}

// HandleTextChange writes the editor's current text through to the item.
// Every keystroke lands in the scene immediately; there is no separate commit
// step to lose. Outside an edit it is a no-op.
func (m *Machine) HandleTextChange(text string) {
	if m.state != StateEditing {
		return
	}
	m.scene.Update(m.selected, func(it domain.Item) domain.Item {
		it.Text = text
		return it
	})
}

// HandleBlur closes the inline editor, keeping the item selected. Outside an
// edit it is a no-op.
func (m *Machine) HandleBlur() {
	if m.state != StateEditing {
		return
	}
	m.state = StateSelected
}

// Close tears the machine down. A drag in flight releases its pointer hook so
// Attach and Detach stay balanced even when the host window goes away
// mid-gesture.
func (m *Machine) Close() {
	m.detachHook()
	m.selected = 0
	m.state = StateIdle
}

// endEdit commits an open inline editor. The scene already holds the latest
// text (HandleTextChange writes through), so ending the edit is a pure state
// transition.
func (m *Machine) endEdit() {
	if m.state == StateEditing {
		m.state = StateSelected
	}
}

func (m *Machine) attachHook() {
	if m.hooked {
		return
	}
	m.hook.Attach()
	m.hooked = true
}

func (m *Machine) detachHook() {
	if !m.hooked {
		return
	}
	m.hook.Detach()
	m.hooked = false
}
