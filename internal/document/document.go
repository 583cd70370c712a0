/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package document exchanges single templates as YAML files, the format used
// for sharing a design outside a library (mail, catalog push, version
// control). One template per document; the conventional home inside a library
// is templates/<name>.yaml but paths are caller-chosen.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"golabeldesigner/internal/domain"
)

// Encode renders a template as YAML. Items keep their scene order; unknown
// kinds pass through untouched.
func Encode(t domain.Template) ([]byte, error) {
	data, err := yaml.Marshal(&t)
	if err != nil {
		return nil, fmt.Errorf("encode template %q: %w", t.Name, err)
	}
	return data, nil
}

// Decode parses a YAML template and normalizes item ids: items with a missing
// or duplicate id get a fresh one above the document's maximum so every item
// is addressable once the template is opened in the editor.
func Decode(data []byte) (domain.Template, error) {
	var t domain.Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return domain.Template{}, fmt.Errorf("decode template: %w", err)
	}
	normalizeItemIDs(&t)
	return t, nil
}

// Write encodes t to path, creating parent directories as needed.
func Write(path string, t domain.Template) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create template dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}
	return nil
}

// Read loads and decodes the template at path.
func Read(path string) (domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Template{}, fmt.Errorf("read template %s: %w", path, err)
	}
	return Decode(data)
}

func normalizeItemIDs(t *domain.Template) {
	max := 0
	for _, it := range t.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	seen := make(map[int]bool, len(t.Items))
	for i := range t.Items {
		id := t.Items[i].ID
		if id <= 0 || seen[id] {
			max++
			t.Items[i].ID = max
			id = max
		}
		seen[id] = true
	}
}
