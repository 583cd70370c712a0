/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/products"
	"golabeldesigner/internal/storage"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetScreen PresetName = "screen"
	PresetPrint  PresetName = "print"
)

// BatchOptions controls batch export across multiple formats and templates.
//
// Path semantics:
//   - If OutDir is empty or relative, it will be created under <library>/exports/<preset>/.
//   - For PDF output the file is pdf/labels.pdf in OutDir (one template per page).
//   - For PNG/SVG per-template outputs, files are label-<template>.(png|svg) in
//     subfolders png/ or svg/ inside OutDir. This keeps assets grouped by preset and format.
//   - For ZIP outputs, one archive per template: zip/batch-<template>.zip, built
//     from the library's product list (the raw template when the list is empty).
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset        PresetName
	Formats       []string // allowed: pdf, png, svg, zip; empty means preset defaults
	Templates     []string // template names; empty means all templates
	DPIOverride   int      // when > 0 overrides raster/vector viewport DPI where applicable
	IncludeGuides *bool    // when set, overrides preset's default for cut lines
	OutDir        string   // base directory for outputs (created per preset if relative)
}

// BatchExport runs exports according to the given preset.
func BatchExport(lh *storage.LibraryHandle, opt BatchOptions) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}
	if len(lh.Library.Templates) == 0 {
		return fmt.Errorf("library has no templates")
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	// normalize format strings
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	// Resolve output base directory
	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	if !filepath.IsAbs(baseOut) {
		baseOut = filepath.Join(lh.Root, "exports", baseOut)
	}

	tpls := selectTemplates(&lh.Library, opt.Templates)
	if len(tpls) == 0 {
		return fmt.Errorf("no matching templates")
	}

	// Helpers to compute IncludeGuides default
	guides := presetIncludeGuides(opt.Preset)
	if opt.IncludeGuides != nil {
		guides = *opt.IncludeGuides
	}

	for _, f := range formats {
		switch f {
		case "pdf":
			// Single file, one template per page
			out := filepath.Join(baseOut, "pdf", "labels.pdf")
			po := PDFOptions{IncludeGuides: guides}
			if err := ExportTemplatesPDF(lh, tpls, out, po); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "png":
			outDir := filepath.Join(baseOut, "png")
			po := PNGOptions{IncludeGuides: guides}
			if opt.DPIOverride > 0 {
				po.DPI = opt.DPIOverride
			}
			if err := ExportTemplatePNGs(lh, tpls, outDir, po); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		case "svg":
			outDir := filepath.Join(baseOut, "svg")
			so := SVGOptions{IncludeGuides: guides}
			if opt.DPIOverride > 0 {
				so.DPI = opt.DPIOverride
			}
			if err := ExportTemplatesSVG(lh, tpls, outDir, so); err != nil {
				return fmt.Errorf("svg: %w", err)
			}
		case "zip":
			text, err := storage.ReadProductList(lh)
			if err != nil {
				return fmt.Errorf("zip: %w", err)
			}
			list, _ := products.Parse(text)
			for i := range tpls {
				out := filepath.Join(baseOut, "zip", fmt.Sprintf("batch-%s.zip", safeFileName(tpls[i].Name)))
				zo := BatchZIPOptions{IncludeGuides: guides}
				if opt.DPIOverride > 0 {
					zo.DPI = opt.DPIOverride
				}
				if err := ExportBatchZIP(lh, tpls[i], list, out, zo); err != nil {
					return fmt.Errorf("zip template %s: %w", tpls[i].Name, err)
				}
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

// selectTemplates returns the named templates in library order, or all of
// them when names is empty. Unknown names are skipped.
func selectTemplates(lib *domain.Library, names []string) []domain.Template {
	if len(names) == 0 {
		out := make([]domain.Template, len(lib.Templates))
		copy(out, lib.Templates)
		return out
	}
	var out []domain.Template
	for _, n := range names {
		if t := domain.FindTemplate(lib, n); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetScreen:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "png", "zip"}
	default:
		return []string{"pdf"}
	}
}

func presetIncludeGuides(p PresetName) bool {
	switch p {
	case PresetScreen:
		return false
	case PresetPrint:
		return true
	default:
		return true
	}
}
