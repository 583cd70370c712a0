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
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"golabeldesigner/internal/document"
	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/editor"
	"golabeldesigner/internal/scene"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/vector"
)

type view int

const (
	viewTemplates view = iota
	viewItems
)

type promptKind int

const (
	promptNone promptKind = iota
	promptEditText
	promptColor
	promptFontSize
	promptAdd
)

// nudgeStep is how far one keypress moves the selected item, in label units.
const nudgeStep = 1.0

type appModel struct {
	lh *storage.LibraryHandle

	width  int
	height int

	view view

	templatesList list.Model
	itemsList     list.Model

	tplName string
	scn     *scene.Scene
	machine *editor.Machine
	props   *editor.PropertyEditor

	prompt   promptKind
	input    textinput.Model
	editOrig string

	status string
}

func newAppModel(lh *storage.LibraryHandle) appModel {
	m := appModel{lh: lh, view: viewTemplates}
	m.templatesList = newList(nil)
	m.itemsList = newList(nil)
	m.input = textinput.New()
	m.input.CharLimit = 256
	m.refreshTemplates()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) refreshTemplates() {
	tpls := append([]domain.Template(nil), m.lh.Library.Templates...)
	sort.Slice(tpls, func(i, j int) bool { return tpls[i].Name < tpls[j].Name })
	items := make([]list.Item, 0, len(tpls))
	for _, t := range tpls {
		items = append(items, templateItem{tpl: t})
	}
	m.templatesList.SetItems(items)
}

// openTemplate builds a fresh scene and machine over the named template.
func (m *appModel) openTemplate(name string) {
	tpl := domain.FindTemplate(&m.lh.Library, name)
	if tpl == nil {
		m.status = "template not found: " + name
		return
	}
	if m.machine != nil {
		m.machine.Close()
	}
	m.tplName = name
	m.scn = scene.New(tpl.Items)
	m.machine = editor.NewMachine(m.scn, editor.NopHook{})
	m.props = editor.NewPropertyEditor(m.machine)
	m.view = viewItems
	m.refreshItems()
}

func (m *appModel) refreshItems() {
	selID := 0
	if m.machine != nil {
		if id, ok := m.machine.SelectedID(); ok {
			selID = id
		}
	}
	var rows []list.Item
	if m.scn != nil {
		for _, it := range m.scn.Items() {
			rows = append(rows, sceneItem{item: it, selected: it.ID == selID})
		}
	}
	m.itemsList.SetItems(rows)
}

// selectCursorItem mirrors the list cursor into the machine with a synthetic
// press/release at the item's center, the same path a pointer click takes.
func (m *appModel) selectCursorItem() {
	it, ok := m.itemsList.SelectedItem().(sceneItem)
	if !ok || m.machine == nil {
		return
	}
	m.machine.HandlePress(it.item.ID, centerOf(it.item))
	m.machine.HandleRelease()
	m.refreshItems()
}

func centerOf(it domain.Item) vector.Pt {
	b := scene.Bounds(it)
	return vector.Pt{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// commit writes the scene back into the template, saves the manifest and
// refreshes the index in the background.
func (m *appModel) commit() {
	tpl := domain.FindTemplate(&m.lh.Library, m.tplName)
	if tpl == nil || m.scn == nil {
		return
	}
	tpl.Items = m.scn.Items()
	if err := storage.Save(m.lh); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	lib := m.lh.Library
	root := m.lh.Root
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = storage.UpdateIndex(ctx, root, lib)
	}()
}

func (m *appModel) nudge(dx, dy float32) {
	if m.machine == nil {
		return
	}
	id, ok := m.machine.SelectedID()
	if !ok {
		return
	}
	it, ok := m.scn.Get(id)
	if !ok {
		return
	}
	c := centerOf(it)
	m.machine.HandlePress(id, c)
	m.machine.HandleMove(vector.Pt{X: c.X + dx, Y: c.Y + dy})
	m.machine.HandleRelease()
	m.commit()
	m.refreshItems()
}

func (m *appModel) openPrompt(kind promptKind, placeholder, value string) {
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
		switch m.view {
		case viewTemplates:
			return m.updateTemplates(msg)
		case viewItems:
			return m.updateItems(msg)
		}
	}
	return m, nil
}

func (m appModel) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if !m.templatesList.SettingFilter() {
			return m, tea.Quit
		}
	case "enter":
		if it, ok := m.templatesList.SelectedItem().(templateItem); ok {
			m.openTemplate(it.tpl.Name)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.templatesList, cmd = m.templatesList.Update(msg)
	return m, cmd
}

func (m appModel) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.itemsList.SettingFilter() {
		var cmd tea.Cmd
		m.itemsList, cmd = m.itemsList.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		if m.machine != nil {
			m.machine.Close()
		}
		m.view = viewTemplates
		m.refreshTemplates()
		return m, nil
	case "enter", " ":
		m.selectCursorItem()
		return m, nil
	case "e":
		if it, ok := m.itemsList.SelectedItem().(sceneItem); ok && it.item.Kind == domain.KindText {
			m.machine.HandleDoubleClick(it.item.ID, centerOf(it.item))
			if m.machine.State() == editor.StateEditing {
				m.editOrig = it.item.Text
				m.openPrompt(promptEditText, "text", it.item.Text)
			}
		}
		return m, nil
	case "c":
		if sel, ok := m.selectedItem(); ok {
			m.openPrompt(promptColor, "#rrggbb", sel.Color)
		}
		return m, nil
	case "f":
		if sel, ok := m.selectedItem(); ok && sel.Kind == domain.KindText {
			m.openPrompt(promptFontSize, "font size", fmt.Sprintf("%g", sel.FontSize))
		}
		return m, nil
	case "a":
		m.openPrompt(promptAdd, "rect | circle | text", "")
		return m, nil
	case "d":
		if id, ok := m.machine.SelectedID(); ok {
			m.machine.Close()
			m.scn.Remove(id)
			m.commit()
			m.refreshItems()
			m.status = fmt.Sprintf("deleted item #%d", id)
		}
		return m, nil
	case "+", "=":
		m.moveZ(1)
		return m, nil
	case "-":
		m.moveZ(-1)
		return m, nil
	case "H":
		m.nudge(-nudgeStep, 0)
		return m, nil
	case "L":
		m.nudge(nudgeStep, 0)
		return m, nil
	case "K":
		m.nudge(0, -nudgeStep)
		return m, nil
	case "J":
		m.nudge(0, nudgeStep)
		return m, nil
	case "y":
		m.copyTemplateYAML()
		return m, nil
	}
	var cmd tea.Cmd
	m.itemsList, cmd = m.itemsList.Update(msg)
	return m, cmd
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.prompt == promptEditText && m.machine != nil {
			// The machine writes through on every keystroke; cancel by
			// restoring the original text before closing the editor.
			m.machine.HandleTextChange(m.editOrig)
			m.machine.HandleBlur()
		}
		m.closePrompt()
		m.refreshItems()
		return m, nil
	case "enter":
		m.applyPrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptEditText && m.machine != nil {
		m.machine.HandleTextChange(m.input.Value())
	}
	return m, cmd
}

func (m *appModel) applyPrompt() {
	value := strings.TrimSpace(m.input.Value())
	switch m.prompt {
	case promptEditText:
		if m.machine != nil {
			m.machine.HandleTextChange(m.input.Value())
			m.machine.HandleBlur()
			m.commit()
		}
	case promptColor:
		if m.props != nil {
			m.props.SetColor(value)
			m.commit()
		}
	case promptFontSize:
		if m.props != nil {
			m.props.SetFontSize(value)
			m.commit()
		}
	case promptAdd:
		m.addItem(value)
	}
	m.closePrompt()
	m.refreshItems()
}

func (m *appModel) addItem(kind string) {
	if m.scn == nil {
		return
	}
	tpl := domain.FindTemplate(&m.lh.Library, m.tplName)
	if tpl == nil {
		return
	}
	it := domain.Item{Kind: kind, X: tpl.Width / 4, Y: tpl.Height / 4, Color: "#000000"}
	switch kind {
	case domain.KindRect:
		it.Width, it.Height = 40, 16
	case domain.KindCircle:
		it.Radius = 8
	case domain.KindText:
		it.Text, it.FontSize = "Text", 12
	default:
		m.status = "unknown kind: " + kind
		return
	}
	added := m.scn.Add(it)
	m.commit()
	m.machine.HandlePress(added.ID, centerOf(added))
	m.machine.HandleRelease()
	m.status = fmt.Sprintf("added %s #%d", kind, added.ID)
}

func (m *appModel) moveZ(delta int) {
	id, ok := m.machine.SelectedID()
	if !ok {
		return
	}
	if err := storage.MoveItemZ(m.lh, m.tplName, id, delta); err != nil {
		m.status = err.Error()
		return
	}
	if err := storage.Save(m.lh); err != nil {
		m.status = err.Error()
		return
	}
	// Rebuild the scene from the reordered template, keeping the selection.
	tpl := domain.FindTemplate(&m.lh.Library, m.tplName)
	m.scn = scene.New(tpl.Items)
	m.machine.Close()
	m.machine = editor.NewMachine(m.scn, editor.NopHook{})
	m.props = editor.NewPropertyEditor(m.machine)
	if it, ok := m.scn.Get(id); ok {
		m.machine.HandlePress(id, centerOf(it))
		m.machine.HandleRelease()
	}
	m.refreshItems()
}

func (m *appModel) copyTemplateYAML() {
	tpl := domain.FindTemplate(&m.lh.Library, m.tplName)
	if tpl == nil {
		return
	}
	data, err := document.Encode(*tpl)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.status = "clipboard: " + err.Error()
		return
	}
	m.status = "copied " + m.tplName + " to clipboard"
}

func (m *appModel) selectedItem() (domain.Item, bool) {
	if m.props == nil {
		return domain.Item{}, false
	}
	return m.props.Selected()
}

func (m *appModel) resizeLists() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.templatesList.SetSize(w, h)
	m.itemsList.SetSize(w/2, h)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func (m appModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Go Label Designer  Library=%s  Template=%s",
		m.lh.Library.Name, emptyAsDash(m.tplName)))

	var body string
	switch m.view {
	case viewTemplates:
		body = m.templatesList.View()
	case viewItems:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.itemsList.View(), m.detailPane())
	}

	footer := footerStyle.Render(m.footerHelp())
	parts := []string{header, body, footer}
	if m.prompt != promptNone {
		parts = append(parts, m.input.View())
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	return strings.Join(parts, "\n\n")
}

func (m appModel) footerHelp() string {
	switch m.view {
	case viewItems:
		return "enter: select  e: edit text  c: color  f: font  a: add  d: delete  +/-: z-order  HJKL: nudge  y: copy yaml  esc: back  q: quit"
	default:
		return "enter: open  /: filter  q: quit"
	}
}

func (m appModel) detailPane() string {
	w := m.width/2 - 4
	if w < 24 {
		w = 24
	}
	sel, ok := m.selectedItem()
	if !ok {
		return paneStyle.Width(w).Render("No selection.\n\nMove the cursor and press enter\nto select an item.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Item #%d  %s\n", sel.ID, sel.Kind)
	fmt.Fprintf(&b, "State: %s\n\n", m.machine.State())
	fmt.Fprintf(&b, "x: %.1f  y: %.1f\n", sel.X, sel.Y)
	switch sel.Kind {
	case domain.KindRect:
		fmt.Fprintf(&b, "w: %.1f  h: %.1f\n", sel.Width, sel.Height)
	case domain.KindCircle:
		fmt.Fprintf(&b, "r: %.1f\n", sel.Radius)
	case domain.KindText:
		fmt.Fprintf(&b, "text: %s\nfont: %.1f\n", sel.Text, sel.FontSize)
	}
	fmt.Fprintf(&b, "color: %s\n", emptyAsDash(sel.Color))
	bounds := scene.Bounds(sel)
	fmt.Fprintf(&b, "\nbounds: %.1f,%.1f %.1f×%.1f", bounds.X, bounds.Y, bounds.W, bounds.H)
	return paneStyle.Width(w).Render(b.String())
}
