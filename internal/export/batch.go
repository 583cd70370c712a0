/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/products"
	"golabeldesigner/internal/storage"
)

// BatchZIPOptions controls batch ZIP export behavior.
// Labels are exported as PNG with optional cut lines, similar to PNGOptions.
//
//nolint:revive // clarity
type BatchZIPOptions struct {
	IncludeGuides bool
	DPI           int
}

// ExportBatchZIP resolves the template once per product in the list, renders
// each copy as PNG, and packages them into a ZIP archive together with a
// labelbatch.xml manifest describing the run. An empty list falls back to the
// raw template so the archive is never produced without a label.
func ExportBatchZIP(lh *storage.LibraryHandle, tpl domain.Template, list products.List, outPath string, opt BatchZIPOptions) error {
	if lh == nil {
		return fmt.Errorf("library handle is nil")
	}

	resolved := products.GenerateAll(tpl, list)
	if len(resolved) == 0 {
		resolved = []domain.Template{tpl}
	}

	// Ensure output path is under the library exports folder if relative
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(lh.Root, "exports", outPath)
	}
	// Enforce .zip extension
	if !strings.HasSuffix(strings.ToLower(outPath), ".zip") {
		outPath = outPath + ".zip"
	}

	// Create ZIP writer
	zw, f, err := createZip(outPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	imgBuf := &bytes.Buffer{}
	for i := range resolved {
		img, err := RenderTemplate(&lh.Library, resolved[i], PNGOptions{IncludeGuides: opt.IncludeGuides, DPI: opt.DPI})
		if err != nil {
			return err
		}
		imgBuf.Reset()
		if err := png.Encode(imgBuf, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		name := safeFileName(resolved[i].Name) + ".png"
		if err := addZipFile(zw, name, imgBuf.Bytes()); err != nil {
			return fmt.Errorf("zip add image: %w", err)
		}
	}

	// Add labelbatch.xml manifest
	manifest, merr := buildLabelBatchXML(lh, tpl, list, len(resolved))
	if merr != nil {
		return fmt.Errorf("build manifest: %w", merr)
	}
	if err := addZipFile(zw, "labelbatch.xml", []byte(manifest)); err != nil {
		return fmt.Errorf("zip add manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func createZip(outPath string) (*zip.Writer, *os.File, error) {
	// Ensure directory exists
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create zip: %w", err)
	}
	return zip.NewWriter(f), f, nil
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func buildLabelBatchXML(lh *storage.LibraryHandle, tpl domain.Template, list products.List, count int) (string, error) {
	store := lh.Library.Metadata.Store
	if store == "" {
		store = lh.Library.Name
	}
	buf := &bytes.Buffer{}
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(buf, format, args...)
	}
	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<LabelBatch xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\">\n")
	wf("  <Store>%s</Store>\n", xmlEsc(store))
	wf("  <Template>%s</Template>\n", xmlEsc(tpl.Name))
	if tpl.Stock != "" {
		wf("  <Stock>%s</Stock>\n", xmlEsc(tpl.Stock))
	}
	wf("  <Count>%d</Count>\n", count)
	wf("  <Sections>%d</Sections>\n", len(list.Sections))
	if region := lh.Library.Metadata.Region; region != "" {
		wf("  <Region>%s</Region>\n", xmlEsc(region))
	}
	wf("</LabelBatch>\n")
	if werr != nil {
		return "", fmt.Errorf("build xml: %w", werr)
	}
	return buf.String(), nil
}

func xmlEsc(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '\'':
			out = append(out, '&', 'a', 'p', 'o', 's', ';')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
