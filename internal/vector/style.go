/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Color values and the hex notation used by item styles. Items store colors
// as "#rrggbb" strings; renderers and exporters go through ParseColor.

import (
	"fmt"
	"image/color"
	"strings"
)

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// NRGBA adapts the color for the image/color consumers (Fyne, gg).
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Hex renders "#rrggbb", or "#rrggbbaa" when the color is translucent.
func (c Color) Hex() string {
	if c.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb", "#rrggbb" and "#rrggbbaa" notations (leading '#'
// optional, case-insensitive). Invalid input reports ok=false so callers can
// fall back to a default instead of drawing garbage.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), "#")
	switch len(s) {
	case 3:
		r, ok1 := hexNibble(s[0])
		g, ok2 := hexNibble(s[1])
		b, ok3 := hexNibble(s[2])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, false
		}
		return Color{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6, 8:
		var bytes [4]uint8
		bytes[3] = 255
		for i := 0; i < len(s)/2; i++ {
			hi, ok1 := hexNibble(s[2*i])
			lo, ok2 := hexNibble(s[2*i+1])
			if !ok1 || !ok2 {
				return Color{}, false
			}
			bytes[i] = hi<<4 | lo
		}
		return Color{R: bytes[0], G: bytes[1], B: bytes[2], A: bytes[3]}, true
	default:
		return Color{}, false
	}
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}
