/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestAlignmentGuides_LabelEdges(t *testing.T) {
	label := Rect{X: 0, Y: 0, W: 200, H: 100}
	moving := Rect{X: 3, Y: 4, W: 80, H: 40} // near top-left edges
	opts := GuideOptions{Threshold: 6, Edges: true}

	guides := ComputeAlignmentGuides(moving, []Anchor{{Rect: label, Weight: 1}}, opts)
	if len(guides) != 2 {
		t.Fatalf("expected one guide per axis, got %d", len(guides))
	}
	// expect a vertical guide at x=0 and a horizontal at y=0
	var vOK, hOK bool
	for _, g := range guides {
		if g.Orientation == "vertical" && g.Position == 0 {
			vOK = true
		}
		if g.Orientation == "horizontal" && g.Position == 0 {
			hOK = true
		}
	}
	if !vOK || !hOK {
		t.Fatalf("expected guides at x=0 (%v) and y=0 (%v)", vOK, hOK)
	}
}

func TestAlignmentGuides_Centers(t *testing.T) {
	label := Rect{X: 0, Y: 0, W: 200, H: 100}
	// Place moving so its center is within threshold of label center
	moving := Rect{X: 200/2 - 50 - 2, Y: 100/2 - 30 - 3, W: 100, H: 60}
	opts := GuideOptions{Threshold: 5, Centers: true}

	guides := ComputeAlignmentGuides(moving, []Anchor{{Rect: label, Weight: 1}}, opts)
	var vOK, hOK bool
	for _, g := range guides {
		if g.Orientation == "vertical" && g.Kind == "center" && g.Position == float32(label.X+label.W/2) {
			vOK = true
		}
		if g.Orientation == "horizontal" && g.Kind == "center" && g.Position == float32(label.Y+label.H/2) {
			hOK = true
		}
	}
	if !vOK || !hOK {
		t.Fatalf("expected center guides present, got %+v", guides)
	}
}

func TestAlignmentGuides_ThresholdFilters(t *testing.T) {
	label := Rect{X: 0, Y: 0, W: 200, H: 100}
	moving := Rect{X: 10, Y: 10, W: 50, H: 20} // 10px away from top-left
	opts := GuideOptions{Threshold: 5, Edges: true}

	guides := ComputeAlignmentGuides(moving, []Anchor{{Rect: label, Weight: 1}}, opts)
	if len(guides) != 0 {
		t.Fatalf("expected no guides outside threshold, got %+v", guides)
	}
}

func TestAlignmentGuides_NeverMoveTheRect(t *testing.T) {
	// Guides are feedback only; the caller's rect must stay where the drag
	// math put it even when perfectly aligned.
	label := Rect{X: 0, Y: 0, W: 200, H: 100}
	moving := Rect{X: 0, Y: 0, W: 80, H: 40}
	before := moving
	_ = ComputeAlignmentGuides(moving, []Anchor{{Rect: label, Weight: 1}}, GuideOptions{Threshold: 6, Edges: true, Centers: true})
	if moving != before {
		t.Fatalf("moving rect was mutated: %+v", moving)
	}
}

func TestAlignmentGuides_PicksClosestAxisIndependently(t *testing.T) {
	anchors := []Anchor{
		{Rect: Rect{X: 0, Y: 0, W: 100, H: 100}, Weight: 1},
		{Rect: Rect{X: 300, Y: 0, W: 100, H: 100}, Weight: 1},
	}
	// Near X=0 (left of first anchor) and near Y=100 (its bottom edge).
	moving := Rect{X: 2, Y: 97, W: 80, H: 80}

	guides := ComputeAlignmentGuides(moving, anchors, GuideOptions{Threshold: 5, Edges: true})
	var vPos, hPos float32 = -1, -1
	for _, g := range guides {
		switch g.Orientation {
		case "vertical":
			vPos = g.Position
		case "horizontal":
			hPos = g.Position
		}
	}
	if vPos != 0 {
		t.Fatalf("expected vertical guide at 0, got %v", vPos)
	}
	if hPos != 100 {
		t.Fatalf("expected horizontal guide at 100, got %v", hPos)
	}
}
