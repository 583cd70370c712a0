/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/vector"
)

// SVGOptions controls SVG export behavior.
// - DPI defines the physical pixel size; width/height attributes use pixels derived from DPI.
// - The coordinate system matches the model (points). A viewBox is provided to scale.
//
//nolint:revive // clarity is preferred
type SVGOptions struct {
	IncludeGuides bool
	DPI           int
	GuideColor    vector.Color
}

// ExportTemplatesSVG exports each template as a separate SVG file.
// Files will be named label-<template>.svg under outDir or the library's exports.
func ExportTemplatesSVG(lh *storage.LibraryHandle, tpls []domain.Template, outDir string, opt SVGOptions) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}
	if len(tpls) == 0 {
		return fmt.Errorf("no templates to export")
	}

	// Defaults
	guideCol := opt.GuideColor
	if guideCol == (vector.Color{}) {
		guideCol = vector.Color{R: 255, A: 255}
	}

	// Resolve output directory
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(lh.Root, "exports", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	for i := range tpls {
		tpl := tpls[i]
		dpi := dpiFor(&lh.Library, tpl, opt.DPI)

		// Derived pixel size for width/height attributes
		scale := float64(dpi) / 72.0
		pxW := int(math.Round(tpl.Width * scale))
		pxH := int(math.Round(tpl.Height * scale))

		var buf bytes.Buffer
		var werr error
		wf := func(format string, args ...any) {
			if werr != nil {
				return
			}
			_, werr = fmt.Fprintf(&buf, format, args...)
		}

		wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
		wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, tpl.Width, tpl.Height)
		// Background white
		wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", tpl.Width, tpl.Height)

		if opt.IncludeGuides {
			// Cut line at the label edge
			wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.2\"/>\n", tpl.Width, tpl.Height, guideCol.Hex())
		}

		for _, it := range tpl.Items {
			col := itemColor(it.Color).Hex()
			switch it.Kind {
			case domain.KindRect:
				wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", it.X, it.Y, it.Width, it.Height, col)
			case domain.KindCircle:
				wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\"/>\n", it.X, it.Y, it.Radius, col)
			case domain.KindText:
				fsz := it.FontSize
				if fsz <= 0 {
					fsz = 12
				}
				lines, err := wrapLines(it.Text, fsz, tpl.Width-it.X)
				if err != nil {
					return err
				}
				// We don't embed fonts here; the font family is a hint only.
				y := it.Y
				for _, ln := range lines {
					wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\">%s</text>\n", it.X, y, escAttr("Helvetica, Arial, sans-serif"), fsz, col, escText(ln))
					y += fsz * 1.2
				}
			default:
				// Unknown kinds are carried in documents but have no visual.
			}
		}

		wf("</svg>\n")

		if werr != nil {
			return fmt.Errorf("build svg: %w", werr)
		}

		name := filepath.Join(outDir, fmt.Sprintf("label-%s.svg", safeFileName(tpl.Name)))
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}

func escAttr(s string) string {
	// naive escaping sufficient for our simple usage
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
