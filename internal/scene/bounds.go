/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"unicode/utf8"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/vector"
)

// textWidthFactor approximates the average glyph advance as a fraction of the
// font size. Deliberately not real font metrics: item bounds must be identical
// across platforms and renderers, and the interactive box model only needs a
// stable envelope.
const textWidthFactor = 0.6

// Bounds returns the axis-aligned bounding box of an item in label
// coordinates. Pure and total: unknown kinds yield an empty rect at the
// anchor rather than an error.
//
// Anchor semantics per kind: rect X,Y is the top-left corner; circle X,Y is
// the center; text X,Y is the baseline origin, so the box extends one font
// size upward.
func Bounds(it domain.Item) vector.Rect {
	switch it.Kind {
	case domain.KindRect:
		return vector.R(float32(it.X), float32(it.Y), float32(it.Width), float32(it.Height))
	case domain.KindCircle:
		r := float32(it.Radius)
		return vector.R(float32(it.X)-r, float32(it.Y)-r, 2*r, 2*r)
	case domain.KindText:
		fs := float32(it.FontSize)
		w := float32(utf8.RuneCountInString(it.Text)) * fs * textWidthFactor
		return vector.R(float32(it.X), float32(it.Y)-fs, w, fs)
	default:
		return vector.R(float32(it.X), float32(it.Y), 0, 0)
	}
}
