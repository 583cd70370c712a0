/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Alignment guides for interactive dragging. The guides are purely visual:
// they report where the moving rect lines up with nearby anchors, but never
// displace it, so drag arithmetic stays exact.
// UI-agnostic and deterministic to enable unit testing and reuse across
// different frontends.

import "math"

// GuideOptions controls which guide candidates are considered and the threshold.
type GuideOptions struct {
	// Threshold is the maximum distance (in the same units as Rect) at which
	// a guide appears. Typical UI values are 6–8 points/pixels.
	Threshold float32
	// Consider edges (left, right, top, bottom)
	Edges bool
	// Consider centers (cx, cy)
	Centers bool
}

// Anchor represents a static reference rect (label bounds or another item).
// Weight biases selection when distances tie (higher = preferred).
// When uncertain, set Weight to 1.
type Anchor struct {
	Rect   Rect
	Weight float32
}

// GuideLine describes one visual alignment guide.
// Orientation is "vertical" or "horizontal".
// Kind indicates which features aligned: "edge" or "center".
// From and To denote the guide extents for rendering.
// Position is the x (vertical) or y (horizontal) coordinate of the guide.
// For deterministic behavior, values are rounded to 3 decimal places.
type GuideLine struct {
	Orientation string
	Kind        string
	Position    float32
	From        Pt
	To          Pt
}

// ComputeAlignmentGuides reports at most one vertical and one horizontal
// guide for a moving rectangle against a set of anchors: the closest
// alignment per axis within the threshold. Axes are independent.
func ComputeAlignmentGuides(moving Rect, anchors []Anchor, opts GuideOptions) []GuideLine {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var guides []GuideLine

	// Vertical guide candidates come from X alignments, horizontal from Y.
	// Best per axis by weighted distance.
	bestXScore, bestXGuide := float32(+1e9), (GuideLine{})
	bestYScore, bestYGuide := float32(+1e9), (GuideLine{})

	mxL, mxR, mxT, mxB := moving.X, moving.X+moving.W, moving.Y, moving.Y+moving.H
	mxCX, mxCY := moving.X+moving.W/2, moving.Y+moving.H/2

	for _, a := range anchors {
		axL, axR, axT, axB := a.Rect.X, a.Rect.X+a.Rect.W, a.Rect.Y, a.Rect.Y+a.Rect.H
		axCX, axCY := a.Rect.X+a.Rect.W/2, a.Rect.Y+a.Rect.H/2

		// X axis
		if opts.Edges {
			consider(&bestXScore, &bestXGuide, mxL-axL, opts.Threshold, a.Weight, verticalGuide(axL, moving, a.Rect, "edge"))
			consider(&bestXScore, &bestXGuide, mxR-axR, opts.Threshold, a.Weight, verticalGuide(axR, moving, a.Rect, "edge"))
			// abutting: left-to-right and right-to-left
			consider(&bestXScore, &bestXGuide, mxL-axR, opts.Threshold, a.Weight, verticalGuide(axR, moving, a.Rect, "edge"))
			consider(&bestXScore, &bestXGuide, mxR-axL, opts.Threshold, a.Weight, verticalGuide(axL, moving, a.Rect, "edge"))
		}
		if opts.Centers {
			consider(&bestXScore, &bestXGuide, mxCX-axCX, opts.Threshold, a.Weight, verticalGuide(axCX, moving, a.Rect, "center"))
		}

		// Y axis
		if opts.Edges {
			consider(&bestYScore, &bestYGuide, mxT-axT, opts.Threshold, a.Weight, horizontalGuide(axT, moving, a.Rect, "edge"))
			consider(&bestYScore, &bestYGuide, mxB-axB, opts.Threshold, a.Weight, horizontalGuide(axB, moving, a.Rect, "edge"))
			consider(&bestYScore, &bestYGuide, mxT-axB, opts.Threshold, a.Weight, horizontalGuide(axB, moving, a.Rect, "edge"))
			consider(&bestYScore, &bestYGuide, mxB-axT, opts.Threshold, a.Weight, horizontalGuide(axT, moving, a.Rect, "edge"))
		}
		if opts.Centers {
			consider(&bestYScore, &bestYGuide, mxCY-axCY, opts.Threshold, a.Weight, horizontalGuide(axCY, moving, a.Rect, "center"))
		}
	}

	if bestXScore <= opts.Threshold {
		guides = append(guides, bestXGuide)
	}
	if bestYScore <= opts.Threshold {
		guides = append(guides, bestYGuide)
	}
	return guides
}

func consider(bestScore *float32, bestGuide *GuideLine, delta float32, threshold float32, weight float32, g GuideLine) {
	dist := float32(math.Abs(float64(delta)))
	if dist > threshold {
		return
	}
	score := dist / max(1, weight)
	if score < *bestScore {
		*bestScore = score
		*bestGuide = g
	}
}

func verticalGuide(x float32, a Rect, b Rect, kind string) GuideLine {
	minY := min(a.Y, b.Y)
	maxY := max(a.Y+a.H, b.Y+b.H)
	x = FloatRound(x, 3)
	return GuideLine{
		Orientation: "vertical",
		Kind:        kind,
		Position:    x,
		From:        Pt{x, minY},
		To:          Pt{x, maxY},
	}
}

func horizontalGuide(y float32, a Rect, b Rect, kind string) GuideLine {
	minX := min(a.X, b.X)
	maxX := max(a.X+a.W, b.X+b.W)
	y = FloatRound(y, 3)
	return GuideLine{
		Orientation: "horizontal",
		Kind:        kind,
		Position:    y,
		From:        Pt{minX, y},
		To:          Pt{maxX, y},
	}
}
