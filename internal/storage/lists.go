/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ListsDirName holds the plain-text product lists inside a library.
const ListsDirName = "products"

// DefaultListFileName is the list the editor reads and writes by default.
const DefaultListFileName = "products.txt"

// ProductListPath returns the path of the default product list file, or ""
// for a nil handle.
func ProductListPath(lh *LibraryHandle) string {
	if lh == nil {
		return ""
	}
	return filepath.Join(lh.Root, ListsDirName, DefaultListFileName)
}

// ReadProductList returns the default product list text. A missing file is
// not an error: a fresh library simply has no products yet.
func ReadProductList(lh *LibraryHandle) (string, error) {
	if lh == nil {
		return "", errors.New("nil LibraryHandle")
	}
	b, err := os.ReadFile(ProductListPath(lh))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read product list: %w", err)
	}
	return string(b), nil
}

// WriteProductList writes the default product list text, creating the
// products directory if needed.
func WriteProductList(lh *LibraryHandle, text string) error {
	if lh == nil {
		return errors.New("nil LibraryHandle")
	}
	dir := filepath.Join(lh.Root, ListsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure products dir: %w", err)
	}
	if err := writeFileSync(ProductListPath(lh), []byte(text)); err != nil {
		return fmt.Errorf("write product list: %w", err)
	}
	return nil
}
