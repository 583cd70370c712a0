/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/vector"
)

// PNGOptions controls PNG export behavior.
// - DPI: when > 0 overrides the stock DPI for output pixel size
// - IncludeGuides: draw the cut line similar to PDF
// - GuideColor defaults to red when zero.
//
//nolint:revive // clarity is preferred
type PNGOptions struct {
	IncludeGuides bool
	DPI           int
	GuideColor    vector.Color
}

// RenderTemplate rasterizes one template at its effective DPI and returns the
// image. The preview cache and the exporters share this renderer.
func RenderTemplate(lib *domain.Library, tpl domain.Template, opt PNGOptions) (image.Image, error) {
	guideCol := opt.GuideColor
	if guideCol == (vector.Color{}) {
		guideCol = vector.Color{R: 255, A: 255}
	}
	dpi := dpiFor(lib, tpl, opt.DPI)

	// Calculate pixel dimensions from points (1pt = 1/72")
	scale := float64(dpi) / 72.0
	pixW := int(math.Round(tpl.Width * scale))
	pixH := int(math.Round(tpl.Height * scale))
	if pixW <= 0 || pixH <= 0 {
		return nil, fmt.Errorf("template %q has no printable area", tpl.Name)
	}

	dc := gg.NewContext(pixW, pixH)
	dc.SetColor(color.White)
	dc.Clear()

	for _, it := range tpl.Items {
		col := itemColor(it.Color)
		dc.SetColor(col.NRGBA())
		switch it.Kind {
		case domain.KindRect:
			dc.DrawRectangle(it.X*scale, it.Y*scale, it.Width*scale, it.Height*scale)
			dc.Fill()
		case domain.KindCircle:
			dc.DrawCircle(it.X*scale, it.Y*scale, it.Radius*scale)
			dc.Fill()
		case domain.KindText:
			fsz := it.FontSize
			if fsz <= 0 {
				fsz = 12
			}
			face, err := gofontFace(fsz * scale)
			if err != nil {
				return nil, err
			}
			dc.SetFontFace(face)
			lines, err := wrapLines(it.Text, fsz*scale, (tpl.Width-it.X)*scale)
			if err != nil {
				return nil, err
			}
			y := it.Y * scale
			for _, ln := range lines {
				dc.DrawString(ln, it.X*scale, y)
				y += fsz * 1.2 * scale
			}
		default:
			// Unknown kinds are carried in documents but have no visual.
		}
	}

	if opt.IncludeGuides {
		dc.SetColor(guideCol.NRGBA())
		dc.SetLineWidth(1)
		dc.DrawRectangle(0.5, 0.5, float64(pixW)-1, float64(pixH)-1)
		dc.Stroke()
	}

	return dc.Image(), nil
}

// ExportTemplatePNGs exports each template as a separate PNG file.
// Output files are named label-<template>.png under the library's exports
// folder unless outDir is absolute.
func ExportTemplatePNGs(lh *storage.LibraryHandle, tpls []domain.Template, outDir string, opt PNGOptions) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}
	if len(tpls) == 0 {
		return fmt.Errorf("no templates to export")
	}

	// Resolve output directory
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(lh.Root, "exports", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	for i := range tpls {
		img, err := RenderTemplate(&lh.Library, tpls[i], opt)
		if err != nil {
			return err
		}
		name := filepath.Join(outDir, fmt.Sprintf("label-%s.png", safeFileName(tpls[i].Name)))
		if err := gg.SavePNG(name, img); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}
	return nil
}
