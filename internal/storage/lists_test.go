/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProductListPath_NilHandle(t *testing.T) {
	if p := ProductListPath(nil); p != "" {
		t.Fatalf("expected empty path for nil handle, got %q", p)
	}
}

func TestReadProductList_MissingReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	lh := &LibraryHandle{Root: root, ManifestPath: filepath.Join(root, ManifestFileName)}
	s, err := ReadProductList(lh)
	if err != nil {
		t.Fatalf("ReadProductList unexpected error for missing file: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for missing product list, got %q", s)
	}
}

func TestWriteProductList_AndReadBack(t *testing.T) {
	root := t.TempDir()
	lh := &LibraryHandle{Root: root, ManifestPath: filepath.Join(root, ManifestFileName)}

	text := "# Bakery\n3010 | Sourdough | 3.80 | 750g\n; restock friday"
	if err := WriteProductList(lh, text); err != nil {
		t.Fatalf("WriteProductList error: %v", err)
	}
	// Verify file exists at expected location
	p := ProductListPath(lh)
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("expected product list file to exist at %s: %v", p, err)
	}
	// Read back and compare
	got, err := ReadProductList(lh)
	if err != nil {
		t.Fatalf("ReadProductList error: %v", err)
	}
	if got != text {
		t.Fatalf("roundtrip mismatch: %q vs %q", got, text)
	}
}
