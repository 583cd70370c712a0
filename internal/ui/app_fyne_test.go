//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/editor"
	"golabeldesigner/internal/scene"
	"golabeldesigner/internal/vector"
)

func almostEqual(a, b, eps float32) bool {
	if a > b {
		return a-b <= eps
	}
	return b-a <= eps
}

func TestLabelCanvas_Defaults(t *testing.T) {
	lc := NewLabelCanvas()
	if lc.zoom != 1.0 {
		t.Fatalf("expected default zoom 1.0, got %v", lc.zoom)
	}
	if lc.labelW != 210 || lc.labelH != 74 {
		t.Fatalf("unexpected default label size: %v x %v", lc.labelW, lc.labelH)
	}
	sz := lc.PreferredSize()
	if sz.Width != 800 || sz.Height != 600 {
		t.Fatalf("unexpected PreferredSize: %v", sz)
	}
}

func TestLabelCanvas_LayoutGeometry(t *testing.T) {
	lc := NewLabelCanvas()
	r, ok := lc.CreateRenderer().(*labelCanvasRenderer)
	if !ok {
		t.Fatalf("expected labelCanvasRenderer, got %T", lc.CreateRenderer())
	}

	// With zero widget size the canvas falls back to PreferredSize (800x600).
	r.Layout(fyne.NewSize(800, 600))

	// Fit-to-window scale at default label size 210x74 with a 24pt margin:
	// min(752/210, 552/74) = 752/210.
	scale := float32(752) / 210
	expectedW := 210 * scale
	expectedH := float32(74) * scale
	page := r.page
	if !almostEqual(page.Size().Width, expectedW, 0.5) || !almostEqual(page.Size().Height, expectedH, 0.5) {
		t.Fatalf("unexpected page size: got %v, want approx (%v x %v)", page.Size(), expectedW, expectedH)
	}
	pos := page.Position()
	if !almostEqual(pos.X, (800-expectedW)/2, 0.5) || !almostEqual(pos.Y, (600-expectedH)/2, 0.5) {
		t.Fatalf("page not centered: %v", pos)
	}
}

func TestLabelCanvas_CoordinateRoundTrip(t *testing.T) {
	lc := NewLabelCanvas()
	for _, p := range []vector.Pt{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 210, Y: 74}} {
		back := lc.toLabel(lc.toScreen(p))
		if !almostEqual(back.X, p.X, 0.01) || !almostEqual(back.Y, p.Y, 0.01) {
			t.Fatalf("round trip of %v gave %v", p, back)
		}
	}
}

func TestLabelCanvas_RendersSessionItems(t *testing.T) {
	lc := NewLabelCanvas()
	r := lc.CreateRenderer().(*labelCanvasRenderer)

	scn := scene.New([]domain.Item{
		{ID: 1, Kind: domain.KindRect, X: 5, Y: 5, Width: 40, Height: 20, Color: "#336699"},
		{ID: 2, Kind: domain.KindCircle, X: 100, Y: 30, Radius: 10, Color: "#993333"},
		{ID: 3, Kind: domain.KindText, X: 10, Y: 50, Text: "Apples", FontSize: 12, Color: "#000000"},
	})
	m := editor.NewMachine(scn, editor.NopHook{})
	lc.SetSession(m, scn, 210, 74)

	r.Layout(fyne.NewSize(800, 600))
	if len(r.rects) < 1 || len(r.circles) < 1 || len(r.texts) < 1 {
		t.Fatalf("pools not grown: rects=%d circles=%d texts=%d", len(r.rects), len(r.circles), len(r.texts))
	}
	if r.texts[0].Text != "Apples" {
		t.Fatalf("text object not populated: %q", r.texts[0].Text)
	}
	if r.bbox.Visible() {
		t.Fatal("selection box should be hidden with no selection")
	}

	// Select the circle; the bbox must wrap its bounds.
	it, _ := scn.Get(2)
	m.HandlePress(2, scene.Bounds(it).Center())
	m.HandleRelease()
	r.Layout(fyne.NewSize(800, 600))
	if !r.bbox.Visible() {
		t.Fatal("selection box should be visible after selecting an item")
	}
}

func TestLabelCanvas_PoolShrinksByHiding(t *testing.T) {
	lc := NewLabelCanvas()
	r := lc.CreateRenderer().(*labelCanvasRenderer)

	big := scene.New([]domain.Item{
		{ID: 1, Kind: domain.KindRect, X: 0, Y: 0, Width: 10, Height: 10},
		{ID: 2, Kind: domain.KindRect, X: 20, Y: 0, Width: 10, Height: 10},
	})
	lc.SetSession(editor.NewMachine(big, editor.NopHook{}), big, 210, 74)
	r.Layout(fyne.NewSize(800, 600))

	small := scene.New([]domain.Item{
		{ID: 1, Kind: domain.KindRect, X: 0, Y: 0, Width: 10, Height: 10},
	})
	lc.SetSession(editor.NewMachine(small, editor.NopHook{}), small, 210, 74)
	r.Layout(fyne.NewSize(800, 600))

	if len(r.rects) < 2 {
		t.Fatalf("pool should retain grown capacity, got %d", len(r.rects))
	}
	if !r.rects[0].Visible() {
		t.Fatal("first pooled rect should be visible")
	}
	if r.rects[1].Visible() {
		t.Fatal("surplus pooled rect should be hidden")
	}
}
