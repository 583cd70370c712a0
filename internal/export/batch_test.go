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
	"io"
	"os"
	"path/filepath"
	"testing"

	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/products"
	"golabeldesigner/internal/storage"
)

func TestExportBatchZIP(t *testing.T) {
	root := t.TempDir()
	lib := domain.Library{
		Name:     "Test Library",
		Metadata: domain.Metadata{Store: "Corner Market"},
		Stocks:   []domain.Stock{{Name: "thermal-58x40", Width: 164, Height: 113, DPI: 96}},
		Templates: []domain.Template{{
			Name:   "shelf-price",
			Stock:  "thermal-58x40",
			Width:  164,
			Height: 113,
			Items: []domain.Item{
				{ID: 1, Kind: domain.KindText, X: 8, Y: 22, Text: "{name}", FontSize: 12},
				{ID: 2, Kind: domain.KindText, X: 8, Y: 64, Text: "{price}", FontSize: 22},
			},
		}},
	}
	lh, err := storage.InitLibrary(root, lib)
	if err != nil {
		t.Fatalf("init library: %v", err)
	}
	list, perrs := products.Parse("# Dairy\n4001 | Oat Milk | 2.49 | 1L\n4002 | Butter | 3.19 | 250g\n")
	if len(perrs) != 0 {
		t.Fatalf("parse errors: %v", perrs)
	}

	out := filepath.Join(root, "exports", "batch-shelf-price.zip")
	if err := ExportBatchZIP(lh, lh.Library.Templates[0], list, out, BatchZIPOptions{IncludeGuides: true, DPI: 96}); err != nil {
		t.Fatalf("export zip: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("zip empty")
	}

	// Open zip and check entries
	rd, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer func() { _ = rd.Close() }()
	var found4001, found4002, foundXML bool
	for _, f := range rd.File {
		switch f.Name {
		case "shelf-price-4001.png":
			found4001 = true
		case "shelf-price-4002.png":
			found4002 = true
		case "labelbatch.xml":
			foundXML = true
		}
	}
	if !found4001 || !found4002 {
		t.Fatalf("per-product pngs not found in zip")
	}
	if !foundXML {
		t.Fatalf("labelbatch.xml not found in zip")
	}

	// Read manifest to ensure fields exist
	for _, f := range rd.File {
		if f.Name == "labelbatch.xml" {
			r, err := f.Open()
			if err != nil {
				t.Fatalf("open manifest: %v", err)
			}
			data, err := io.ReadAll(r)
			if err != nil {
				_ = r.Close()
				t.Fatalf("read manifest: %v", err)
			}
			if err := r.Close(); err != nil {
				t.Fatalf("close manifest: %v", err)
			}
			text := string(data)
			if !(contains(text, "<Store>Corner Market</Store>") && contains(text, "<Template>shelf-price</Template>") && contains(text, "<Count>2</Count>")) {
				t.Fatalf("manifest missing expected fields: %s", text)
			}
		}
	}
}

func TestExportBatchZIP_EmptyListFallsBack(t *testing.T) {
	root := t.TempDir()
	lh, err := storage.InitLibrary(root, sampleLibrary())
	if err != nil {
		t.Fatalf("init library: %v", err)
	}
	out := filepath.Join(root, "exports", "batch-raw.zip")
	if err := ExportBatchZIP(lh, lh.Library.Templates[0], products.List{}, out, BatchZIPOptions{DPI: 72}); err != nil {
		t.Fatalf("export zip: %v", err)
	}
	rd, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer func() { _ = rd.Close() }()
	var foundRaw bool
	for _, f := range rd.File {
		if f.Name == "shelf-price.png" {
			foundRaw = true
		}
	}
	if !foundRaw {
		t.Fatalf("raw template png not found in zip for empty list")
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && (s == sub || (len(s) > len(sub) && (func() bool { return (string([]byte(s)[:len(sub)]) == sub) || contains(s[1:], sub) })()))
}
