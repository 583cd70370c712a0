/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for label libraries and templates.
// A library serializes to a human-readable JSON manifest (label.json); single
// templates additionally travel as standalone YAML documents, hence the dual
// struct tags.

// Library represents a label library: the named designs of one store plus the
// physical stock formats they print on.
type Library struct {
	Name      string     `json:"name" yaml:"name"`
	Metadata  Metadata   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Stocks    []Stock    `json:"stocks,omitempty" yaml:"stocks,omitempty"`
	Templates []Template `json:"templates" yaml:"templates"`
}

// Metadata contains optional descriptive metadata for a library.
type Metadata struct {
	Store   string `json:"store,omitempty" yaml:"store,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	Contact string `json:"contact,omitempty" yaml:"contact,omitempty"`
	Notes   string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Stock describes a physical label format (thermal roll, die-cut sheet cell).
// Dimensions are in points; DPI drives raster export defaults.
type Stock struct {
	Name   string  `json:"name" yaml:"name"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	DPI    int     `json:"dpi,omitempty" yaml:"dpi,omitempty"`
}

// Template is one label design: a fixed-size canvas and an ordered item list.
// Item order is paint order; later items draw on top and win hit-test ties.
type Template struct {
	Name    string   `json:"name" yaml:"name"`
	Stock   string   `json:"stock,omitempty" yaml:"stock,omitempty"`
	Width   float64  `json:"width" yaml:"width"`
	Height  float64  `json:"height" yaml:"height"`
	Product *Product `json:"product,omitempty" yaml:"product,omitempty"`
	Items   []Item   `json:"items" yaml:"items"`
}

// Product carries the merge-source values a template was resolved with.
// Unresolved templates leave it nil and keep their {field} placeholders.
type Product struct {
	SKU         string `json:"sku,omitempty" yaml:"sku,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Price       string `json:"price,omitempty" yaml:"price,omitempty"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Item kinds. Kind is an open string so documents written by newer builds
// still load; unknown kinds are carried through untouched.
const (
	KindRect   = "rect"
	KindCircle = "circle"
	KindText   = "text"
)

// Item is one visual element on a template. Kind discriminates the variant:
// rect uses Width/Height, circle uses Radius, text uses Text/FontSize.
// X,Y is the anchor and its meaning follows the kind: rect top-left,
// circle center, text baseline origin.
type Item struct {
	ID       int     `json:"id" yaml:"id"`
	Kind     string  `json:"kind" yaml:"kind"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Color    string  `json:"color,omitempty" yaml:"color,omitempty"` // #rrggbb
	Width    float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height   float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Radius   float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
}

// FindTemplate returns a pointer to the named template, or nil.
func FindTemplate(lib *Library, name string) *Template {
	if lib == nil {
		return nil
	}
	for i := range lib.Templates {
		if lib.Templates[i].Name == name {
			return &lib.Templates[i]
		}
	}
	return nil
}

// FindStock returns a pointer to the named stock, or nil.
func FindStock(lib *Library, name string) *Stock {
	if lib == nil {
		return nil
	}
	for i := range lib.Stocks {
		if lib.Stocks[i].Name == name {
			return &lib.Stocks[i]
		}
	}
	return nil
}

// MaxItemID returns the highest item id in the template, 0 when empty.
func MaxItemID(t *Template) int {
	max := 0
	if t == nil {
		return max
	}
	for _, it := range t.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max
}
