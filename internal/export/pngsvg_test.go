/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/storage"
)

func sampleLibrary() domain.Library {
	return domain.Library{
		Name:     "Test Library",
		Metadata: domain.Metadata{Store: "Corner Market", Region: "north"},
		Stocks:   []domain.Stock{{Name: "thermal-58x40", Width: 164, Height: 113, DPI: 203}},
		Templates: []domain.Template{{
			Name:   "shelf-price",
			Stock:  "thermal-58x40",
			Width:  164,
			Height: 113,
			Items: []domain.Item{
				{ID: 1, Kind: domain.KindRect, X: 4, Y: 4, Width: 156, Height: 26, Color: "#e8f4e8"},
				{ID: 2, Kind: domain.KindText, X: 8, Y: 22, Text: "Bread & Butter", FontSize: 12, Color: "#102030"},
				{ID: 3, Kind: domain.KindText, X: 8, Y: 64, Text: "2.49", FontSize: 22, Color: "#000000"},
				{ID: 4, Kind: domain.KindCircle, X: 140, Y: 88, Radius: 14, Color: "#cc0000"},
			},
		}},
	}
}

func TestExportTemplatePNGs(t *testing.T) {
	root := t.TempDir()
	lh, err := storage.InitLibrary(root, sampleLibrary())
	if err != nil {
		t.Fatalf("init library: %v", err)
	}
	outDir := filepath.Join(root, "exports", "pngtest")
	if err := ExportTemplatePNGs(lh, lh.Library.Templates, outDir, PNGOptions{IncludeGuides: true, DPI: 96}); err != nil {
		t.Fatalf("export png: %v", err)
	}
	path := filepath.Join(outDir, "label-shelf-price.png")
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("png empty")
	}
}

func TestExportTemplatesSVG(t *testing.T) {
	root := t.TempDir()
	lh, err := storage.InitLibrary(root, sampleLibrary())
	if err != nil {
		t.Fatalf("init library: %v", err)
	}
	outDir := filepath.Join(root, "exports", "svgtest")
	if err := ExportTemplatesSVG(lh, lh.Library.Templates, outDir, SVGOptions{IncludeGuides: true, DPI: 144}); err != nil {
		t.Fatalf("export svg: %v", err)
	}
	path := filepath.Join(outDir, "label-shelf-price.svg")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "<circle") {
		t.Fatalf("circle item missing from svg: %s", s)
	}
	if !strings.Contains(s, "Bread &amp; Butter") {
		t.Fatalf("text not escaped: %s", s)
	}
}

func TestRenderTemplate_StockDPI(t *testing.T) {
	lib := sampleLibrary()
	img, err := RenderTemplate(&lib, lib.Templates[0], PNGOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 164pt at the stock's 203 DPI ≈ 462 px
	if w := img.Bounds().Dx(); w < 450 || w > 475 {
		t.Fatalf("expected stock DPI to size the render, got width %d", w)
	}
}
