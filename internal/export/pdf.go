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
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/vector"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt) unless otherwise noted.
// Vector text is used whenever possible; we rely on built-in Helvetica for portability.
// In later phases, font embedding can be added using TTFs.
//
// Coordinates:
// - Page origin is top-left.
// - Item coordinates are template coordinates; each page is sized to its template.
// - IncludeGuides draws the cut line as a hairline rectangle at the label edge.
//
//nolint:revive // keep options grouped and explicit for clarity
type PDFOptions struct {
	IncludeGuides bool
	EmbedFonts    bool // reserved; not used yet
	GuideColor    vector.Color
}

// SheetOptions controls grid layout for ExportSheetPDF.
// The grid fills a standard sheet with copies of label templates, the way a
// print shop lays out die-cut sheets.
//
//nolint:revive // clarity
type SheetOptions struct {
	Paper         string  // "A4" (default) or "Letter"
	Margin        float64 // outer sheet margin in pt; default 24
	GapX, GapY    float64 // spacing between cells in pt; default 6
	Copies        int     // when exporting a single template: number of copies; 0 fills one sheet
	IncludeGuides bool    // draw a cut line around every placed label
	GuideColor    vector.Color
}

// ExportTemplatesPDF writes the given templates into a single PDF at outPath,
// one label per page, each page sized exactly to its template.
func ExportTemplatesPDF(lh *storage.LibraryHandle, tpls []domain.Template, outPath string, opt PDFOptions) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}
	if len(tpls) == 0 {
		return fmt.Errorf("no templates to export")
	}

	guideCol := opt.GuideColor
	if guideCol == (vector.Color{}) {
		guideCol = vector.Color{R: 255, A: 255}
	}

	first := tpls[0]
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: first.Width, Ht: first.Height},
		// Orientation follows the page size
		OrientationStr: "",
	})
	pdf.SetTitle(fmt.Sprintf("%s — Labels", lh.Library.Name), false)
	pdf.SetAuthor("Go Label Designer", false)
	pdf.SetAutoPageBreak(false, 0)

	// Built-in Helvetica keeps text vector without embedding
	pdf.SetFont("Helvetica", "", 12)

	for i := range tpls {
		tpl := tpls[i]
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: tpl.Width, Ht: tpl.Height})

		if opt.IncludeGuides {
			setDrawColor(pdf, guideCol)
			pdf.SetLineWidth(0.2)
			pdf.Rect(0, 0, tpl.Width, tpl.Height, "D")
		}
		if err := drawItemsPDF(pdf, tpl, 0, 0); err != nil {
			return err
		}
	}

	// Ensure output path is under the library exports folder if relative
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(lh.Root, "exports", outPath)
	}
	// Ensure directory exists
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportSheetPDF lays the given templates out as a grid on standard sheet
// paper. A merge run passes its resolved copies and each fills the next cell;
// a single template is repeated Copies times (or until one sheet is full).
// Cell size follows the first template; merge copies share its dimensions.
func ExportSheetPDF(lh *storage.LibraryHandle, tpls []domain.Template, outPath string, opt SheetOptions) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}
	if len(tpls) == 0 {
		return fmt.Errorf("no templates to export")
	}

	paper := opt.Paper
	if paper == "" {
		paper = "A4"
	}
	margin := opt.Margin
	if margin <= 0 {
		margin = 24
	}
	gapX := opt.GapX
	if gapX <= 0 {
		gapX = 6
	}
	gapY := opt.GapY
	if gapY <= 0 {
		gapY = 6
	}
	guideCol := opt.GuideColor
	if guideCol == (vector.Color{}) {
		guideCol = vector.Color{R: 255, A: 255}
	}

	pdf := gofpdf.New("P", "pt", paper, "")
	pdf.SetTitle(fmt.Sprintf("%s — Label sheet", lh.Library.Name), false)
	pdf.SetAuthor("Go Label Designer", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 12)

	pageW, pageH := pdf.GetPageSize()
	cellW := tpls[0].Width
	cellH := tpls[0].Height
	cols := int((pageW - 2*margin + gapX) / (cellW + gapX))
	rows := int((pageH - 2*margin + gapY) / (cellH + gapY))
	if cols < 1 || rows < 1 {
		return fmt.Errorf("label %gx%g pt does not fit on %s with margin %g", cellW, cellH, paper, margin)
	}
	perPage := cols * rows

	instances := tpls
	if len(tpls) == 1 {
		n := opt.Copies
		if n <= 0 {
			n = perPage
		}
		instances = make([]domain.Template, n)
		for i := range instances {
			instances[i] = tpls[0]
		}
	}

	for i := range instances {
		slot := i % perPage
		if slot == 0 {
			pdf.AddPage()
		}
		cx := margin + float64(slot%cols)*(cellW+gapX)
		cy := margin + float64(slot/cols)*(cellH+gapY)

		if opt.IncludeGuides {
			setDrawColor(pdf, guideCol)
			pdf.SetLineWidth(0.2)
			pdf.Rect(cx, cy, cellW, cellH, "D")
		}
		if err := drawItemsPDF(pdf, instances[i], cx, cy); err != nil {
			return err
		}
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(lh.Root, "exports", outPath)
	}
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// drawItemsPDF paints the template's items in slice order at the given page
// offset. Rect anchors top-left, circle anchors center, text anchors the
// baseline origin, which matches pdf.Text.
func drawItemsPDF(pdf *gofpdf.Fpdf, tpl domain.Template, offX, offY float64) error {
	for _, it := range tpl.Items {
		col := itemColor(it.Color)
		switch it.Kind {
		case domain.KindRect:
			setFillColor(pdf, col)
			pdf.Rect(offX+it.X, offY+it.Y, it.Width, it.Height, "F")
		case domain.KindCircle:
			setFillColor(pdf, col)
			pdf.Circle(offX+it.X, offY+it.Y, it.Radius, "F")
		case domain.KindText:
			fsz := it.FontSize
			if fsz <= 0 {
				fsz = 12
			}
			pdf.SetFont("Helvetica", "", fsz)
			pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
			lines, err := wrapLines(it.Text, fsz, tpl.Width-it.X)
			if err != nil {
				return err
			}
			y := offY + it.Y
			for _, ln := range lines {
				pdf.Text(offX+it.X, y, ln)
				y += fsz * 1.2
			}
		default:
			// Unknown kinds are carried in documents but have no visual.
		}
	}
	return nil
}

// itemColor parses an item's "#rrggbb" color, defaulting to black when unset
// or malformed. SetColor stores strings unvalidated; the exporters are where
// garbage must not reach the page.
func itemColor(s string) vector.Color {
	if c, ok := vector.ParseColor(s); ok {
		return c
	}
	return vector.Black
}

// dpiFor resolves the raster DPI for a template: explicit override first,
// then the bound stock's DPI, then 300.
func dpiFor(lib *domain.Library, tpl domain.Template, override int) int {
	if override > 0 {
		return override
	}
	if st := domain.FindStock(lib, tpl.Stock); st != nil && st.DPI > 0 {
		return st.DPI
	}
	return 300
}

// safeFileName maps a template name to a filesystem-safe file stem.
func safeFileName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_', ch == '.':
			out = append(out, ch)
		default:
			out = append(out, '-')
		}
	}
	s := strings.Trim(string(out), "-")
	if s == "" {
		s = "label"
	}
	return s
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
