/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"

	"golabeldesigner/internal/vector"
)

func TestSetColorRequiresSelection(t *testing.T) {
	s := testScene()
	m := NewMachine(s, nil)
	pe := NewPropertyEditor(m)

	pe.SetColor("#00ff00")
	for _, it := range s.Items() {
		if it.Color == "#00ff00" {
			t.Fatalf("SetColor without selection touched item %d", it.ID)
		}
	}

	m.HandlePress(2, vector.Pt{X: 100, Y: 100})
	m.HandleRelease()
	pe.SetColor("#00ff00")
	it, _ := s.Get(2)
	if it.Color != "#00ff00" {
		t.Fatalf("color = %q, want #00ff00", it.Color)
	}
}

func TestSetColorAppliesToAnyKind(t *testing.T) {
	s := testScene()
	m := NewMachine(s, nil)
	pe := NewPropertyEditor(m)

	m.HandlePress(3, vector.Pt{X: 12, Y: 195})
	m.HandleRelease()
	pe.SetColor("#336699")
	it, _ := s.Get(3)
	if it.Color != "#336699" {
		t.Fatalf("text color = %q, want #336699", it.Color)
	}
}

func TestSetFontSizeGuards(t *testing.T) {
	s := testScene()
	m := NewMachine(s, nil)
	pe := NewPropertyEditor(m)

	m.HandlePress(3, vector.Pt{X: 12, Y: 195})
	m.HandleRelease()

	for _, bad := range []string{"abc", "", "0", "-5", "12px"} {
		pe.SetFontSize(bad)
		it, _ := s.Get(3)
		if it.FontSize != 16 {
			t.Fatalf("SetFontSize(%q) changed font size to %v", bad, it.FontSize)
		}
	}

	pe.SetFontSize("18")
	it, _ := s.Get(3)
	if it.FontSize != 18 {
		t.Fatalf("font size = %v, want 18", it.FontSize)
	}
	pe.SetFontSize("9.5")
	it, _ = s.Get(3)
	if it.FontSize != 9.5 {
		t.Fatalf("font size = %v, want 9.5", it.FontSize)
	}
}

func TestSetFontSizeOnlyTouchesTextItems(t *testing.T) {
	s := testScene()
	m := NewMachine(s, nil)
	pe := NewPropertyEditor(m)

	m.HandlePress(1, vector.Pt{X: 60, Y: 60})
	m.HandleRelease()
	pe.SetFontSize("18")
	it, _ := s.Get(1)
	if it.FontSize != 0 {
		t.Fatalf("rect grew a font size: %v", it.FontSize)
	}
}

func TestSelectedReflectsMachine(t *testing.T) {
	s := testScene()
	m := NewMachine(s, nil)
	pe := NewPropertyEditor(m)

	if _, ok := pe.Selected(); ok {
		t.Fatalf("Selected() = true with nothing selected")
	}
	m.HandlePress(2, vector.Pt{X: 100, Y: 100})
	m.HandleRelease()
	it, ok := pe.Selected()
	if !ok || it.ID != 2 {
		t.Fatalf("Selected() = %+v,%v, want item 2", it, ok)
	}
}
