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
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"golabeldesigner/internal/textlayout"
)

var (
	gofontOnce sync.Once
	gofontTT   *truetype.Font
	gofontErr  error
)

// gofontFace returns the builtin Go Regular face at the given size.
// Size and the resulting metrics are in the caller's render units: points for
// vector outputs, pixels for raster ones (identical at 72 DPI).
func gofontFace(size float64) (font.Face, error) {
	gofontOnce.Do(func() {
		gofontTT, gofontErr = truetype.Parse(goregular.TTF)
	})
	if gofontErr != nil {
		return nil, fmt.Errorf("parse builtin font: %w", gofontErr)
	}
	return truetype.NewFace(gofontTT, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// faceProvider pins every FontSpec to one concrete face so the word wrapper
// measures with the same face the exporter draws with.
type faceProvider struct{ face font.Face }

func (p faceProvider) Resolve(textlayout.FontSpec) (font.Face, textlayout.Metrics) {
	m := p.face.Metrics()
	return p.face, textlayout.Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// wrapLines breaks text into lines no wider than maxWidth. Long merged values
// (product descriptions in particular) would otherwise run off the label.
// maxWidth <= 0 disables wrapping.
func wrapLines(text string, size, maxWidth float64) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	if maxWidth <= 0 {
		return []string{text}, nil
	}
	face, err := gofontFace(size)
	if err != nil {
		return nil, err
	}
	ww := textlayout.NewWordWrap(faceProvider{face: face})
	box, err := ww.Layout([]textlayout.Span{{Text: text}}, float32(maxWidth))
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(box.Lines))
	for _, ln := range box.Lines {
		var sb strings.Builder
		for _, sp := range ln.Spans {
			sb.WriteString(sp.Text)
		}
		if s := strings.TrimRight(sb.String(), " "); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, nil
}
