/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"golabeldesigner/internal/domain"
)

func TestManifestConformsToSchema(t *testing.T) {
	root := t.TempDir()
	lh, err := InitLibrary(root, defaultMinimalLibrary())
	if err != nil {
		t.Fatalf("InitLibrary error: %v", err)
	}

	// Load manifest bytes
	data, err := os.ReadFile(lh.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	// Load schema bytes via relative path to repository docs
	schemaPath := filepath.Join("..", "..", "docs", "label.schema.json")
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		t.Fatalf("schema validate error: %v", err)
	}
	if !result.Valid() {
		for _, e := range result.Errors() {
			t.Logf("schema error: %s", e)
		}
		t.Fatalf("manifest does not conform to schema")
	}
}

// defaultMinimalLibrary returns a small library for schema compliance checks
func defaultMinimalLibrary() domain.Library {
	return domain.Library{
		Name:   "Schema Test",
		Stocks: []domain.Stock{{Name: "thermal-58x40", Width: 164, Height: 113, DPI: 203}},
		Templates: []domain.Template{{
			Name: "shelf-price", Stock: "thermal-58x40", Width: 164, Height: 113,
			Items: []domain.Item{
				{ID: 1, Kind: domain.KindRect, X: 0, Y: 0, Width: 164, Height: 113, Color: "#ffffff"},
				{ID: 2, Kind: domain.KindText, X: 8, Y: 32, Text: "{name}", FontSize: 14, Color: "#000000"},
				{ID: 3, Kind: domain.KindCircle, X: 140, Y: 20, Radius: 10, Color: "#cc0000"},
			},
		}},
	}
}
