/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"testing"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/vector"
)

func TestBoundsRectIsIdentity(t *testing.T) {
	it := domain.Item{ID: 1, Kind: domain.KindRect, X: 50, Y: 50, Width: 120, Height: 70}
	got := Bounds(it)
	want := vector.R(50, 50, 120, 70)
	if got != want {
		t.Fatalf("rect bounds = %+v, want %+v", got, want)
	}
}

func TestBoundsCircleFromCenter(t *testing.T) {
	it := domain.Item{ID: 2, Kind: domain.KindCircle, X: 100, Y: 80, Radius: 30}
	got := Bounds(it)
	want := vector.R(70, 50, 60, 60)
	if got != want {
		t.Fatalf("circle bounds = %+v, want %+v", got, want)
	}
}

func TestBoundsTextFromBaseline(t *testing.T) {
	it := domain.Item{ID: 3, Kind: domain.KindText, X: 10, Y: 40, Text: "Price", FontSize: 20}
	got := Bounds(it)
	// Five runes at 0.6 of the font size each; box extends one font size
	// above the baseline.
	want := vector.R(10, 20, 5*20*0.6, 20)
	if got != want {
		t.Fatalf("text bounds = %+v, want %+v", got, want)
	}
}

func TestBoundsTextCountsRunesNotBytes(t *testing.T) {
	it := domain.Item{ID: 4, Kind: domain.KindText, X: 0, Y: 10, Text: "äöü", FontSize: 10}
	got := Bounds(it)
	if want := float32(3 * 10 * 0.6); got.W != want {
		t.Fatalf("width = %v, want %v (3 runes)", got.W, want)
	}
}

func TestBoundsEmptyTextIsEmptyBox(t *testing.T) {
	it := domain.Item{ID: 5, Kind: domain.KindText, X: 7, Y: 9, Text: "", FontSize: 12}
	got := Bounds(it)
	if got.W != 0 {
		t.Fatalf("empty text width = %v, want 0", got.W)
	}
	if got.X != 7 || got.Y != -3 || got.H != 12 {
		t.Fatalf("empty text box = %+v", got)
	}
}

func TestBoundsUnknownKindAnchorsEmptyRect(t *testing.T) {
	it := domain.Item{ID: 6, Kind: "barcode", X: 33, Y: 44}
	got := Bounds(it)
	want := vector.R(33, 44, 0, 0)
	if got != want {
		t.Fatalf("unknown kind bounds = %+v, want %+v", got, want)
	}
	if !got.Empty() {
		t.Fatalf("unknown kind bounds should be empty")
	}
}
