/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/export"
	"golabeldesigner/internal/products"
	"golabeldesigner/internal/storage"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export commands",
	}
	cmd.AddCommand(newExportPDFCmd(app))
	cmd.AddCommand(newExportSheetCmd(app))
	cmd.AddCommand(newExportPNGCmd(app))
	cmd.AddCommand(newExportSVGCmd(app))
	cmd.AddCommand(newExportZipCmd(app))
	cmd.AddCommand(newExportPresetCmd(app))
	return cmd
}

// pickTemplates resolves --template flags against the library; empty means all.
func pickTemplates(lh *storage.LibraryHandle, names []string) ([]domain.Template, error) {
	if len(names) == 0 {
		return lh.Library.Templates, nil
	}
	out := make([]domain.Template, 0, len(names))
	for _, n := range names {
		t := domain.FindTemplate(&lh.Library, n)
		if t == nil {
			return nil, fmt.Errorf("template not found: %s", n)
		}
		out = append(out, *t)
	}
	return out, nil
}

func newExportPDFCmd(app *App) *cobra.Command {
	var out string
	var templates []string
	var guides bool
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export templates as a PDF, one label per page",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpls, err := pickTemplates(lh, templates)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := export.ExportTemplatesPDF(lh, tpls, out, export.PDFOptions{IncludeGuides: guides}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"out": out, "templates": len(tpls)})
		},
	}
	cmd.Flags().StringVar(&out, "out", "labels.pdf", "Output PDF path")
	cmd.Flags().StringSliceVar(&templates, "template", nil, "Template name (repeatable; empty = all)")
	cmd.Flags().BoolVar(&guides, "guides", false, "Draw cut guides")
	return cmd
}

func newExportSheetCmd(app *App) *cobra.Command {
	var out, paper string
	var templates []string
	var copies int
	var guides bool
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Export a print sheet PDF filled with label copies",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpls, err := pickTemplates(lh, templates)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := export.SheetOptions{Paper: paper, Copies: copies, IncludeGuides: guides}
			if err := export.ExportSheetPDF(lh, tpls, out, opt); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"out": out})
		},
	}
	cmd.Flags().StringVar(&out, "out", "sheet.pdf", "Output PDF path")
	cmd.Flags().StringVar(&paper, "paper", "A4", "Sheet paper size (A4|Letter)")
	cmd.Flags().StringSliceVar(&templates, "template", nil, "Template name (repeatable; empty = all)")
	cmd.Flags().IntVar(&copies, "copies", 0, "Copies of a single template (0 fills the sheet)")
	cmd.Flags().BoolVar(&guides, "guides", true, "Draw cut guides")
	return cmd
}

func newExportPNGCmd(app *App) *cobra.Command {
	var outDir string
	var templates []string
	var dpi int
	cmd := &cobra.Command{
		Use:   "png",
		Short: "Export templates as PNG rasters",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpls, err := pickTemplates(lh, templates)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := export.ExportTemplatePNGs(lh, tpls, outDir, export.PNGOptions{DPI: dpi}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"out": outDir, "templates": len(tpls)})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "exports/png", "Output directory")
	cmd.Flags().StringSliceVar(&templates, "template", nil, "Template name (repeatable; empty = all)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "Raster DPI (0 = stock/default)")
	return cmd
}

func newExportSVGCmd(app *App) *cobra.Command {
	var outDir string
	var templates []string
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Export templates as SVG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpls, err := pickTemplates(lh, templates)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := export.ExportTemplatesSVG(lh, tpls, outDir, export.SVGOptions{}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"out": outDir, "templates": len(tpls)})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "exports/svg", "Output directory")
	cmd.Flags().StringSliceVar(&templates, "template", nil, "Template name (repeatable; empty = all)")
	return cmd
}

func newExportZipCmd(app *App) *cobra.Command {
	var out, template string
	var dpi int
	cmd := &cobra.Command{
		Use:   "zip",
		Short: "Merge the product list into one template and ZIP the rendered labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tpl := domain.FindTemplate(&lh.Library, template)
			if tpl == nil {
				return writeErr(cmd, fmt.Errorf("template not found: %s", template))
			}
			text, err := storage.ReadProductList(lh)
			if err != nil {
				return writeErr(cmd, err)
			}
			list, errs := products.Parse(text)
			if len(errs) > 0 {
				return writeErr(cmd, fmt.Errorf("product list: line %d: %s", errs[0].Line, errs[0].Message))
			}
			if err := export.ExportBatchZIP(lh, *tpl, list, out, export.BatchZIPOptions{DPI: dpi}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"out": out, "products": len(list.Products())})
		},
	}
	cmd.Flags().StringVar(&out, "out", "labels.zip", "Output ZIP path")
	cmd.Flags().StringVar(&template, "template", "", "Template name")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "Raster DPI")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newExportPresetCmd(app *App) *cobra.Command {
	var formats, templates []string
	var outDir string
	var dpi int
	cmd := &cobra.Command{
		Use:   "preset <screen|print>",
		Short: "Run a named export preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset := export.PresetName(strings.ToLower(args[0]))
			switch preset {
			case export.PresetScreen, export.PresetPrint:
			default:
				return writeErr(cmd, fmt.Errorf("unknown preset %q (want screen or print)", args[0]))
			}
			lh, err := openLib(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := export.BatchOptions{
				Preset:      preset,
				Formats:     formats,
				Templates:   templates,
				DPIOverride: dpi,
				OutDir:      outDir,
			}
			if err := export.BatchExport(lh, opt); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"preset": string(preset), "out": outDir})
		},
	}
	cmd.Flags().StringSliceVar(&formats, "format", nil, "Output formats (pdf|png|svg|zip; empty = preset defaults)")
	cmd.Flags().StringSliceVar(&templates, "template", nil, "Template name (repeatable; empty = all)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (defaults under <library>/exports/<preset>)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "DPI override")
	return cmd
}
