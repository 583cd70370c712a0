/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"golabeldesigner/internal/domain"
)

type templateItem struct {
	tpl domain.Template
}

func (i templateItem) FilterValue() string { return i.tpl.Name }
func (i templateItem) Title() string       { return i.tpl.Name }
func (i templateItem) Description() string {
	stock := i.tpl.Stock
	if stock == "" {
		stock = "unbound"
	}
	return fmt.Sprintf("%.0f×%.0f mm  %s  %d items", i.tpl.Width, i.tpl.Height, stock, len(i.tpl.Items))
}

type sceneItem struct {
	item     domain.Item
	selected bool
}

func (i sceneItem) FilterValue() string {
	if i.item.Kind == domain.KindText {
		return i.item.Text
	}
	return i.item.Kind
}

func (i sceneItem) Title() string {
	mark := "  "
	if i.selected {
		mark = "▶ "
	}
	switch i.item.Kind {
	case domain.KindText:
		txt := i.item.Text
		if txt == "" {
			txt = "(empty)"
		}
		return fmt.Sprintf("%s#%d text %q", mark, i.item.ID, txt)
	case domain.KindCircle:
		return fmt.Sprintf("%s#%d circle r=%.1f", mark, i.item.ID, i.item.Radius)
	default:
		return fmt.Sprintf("%s#%d %s %.1f×%.1f", mark, i.item.ID, i.item.Kind, i.item.Width, i.item.Height)
	}
}

func (i sceneItem) Description() string {
	return fmt.Sprintf("  at %.1f,%.1f  %s", i.item.X, i.item.Y, i.item.Color)
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	// ESC is "back" here, not quit.
	l.KeyMap.Quit.SetKeys("q")
	return l
}

func emptyAsDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
