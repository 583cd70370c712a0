//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"golabeldesigner/internal/catalog"
	"golabeldesigner/internal/config"
	"golabeldesigner/internal/crash"
	"golabeldesigner/internal/domain"
	"golabeldesigner/internal/editor"
	"golabeldesigner/internal/export"
	applog "golabeldesigner/internal/log"
	"golabeldesigner/internal/products"
	"golabeldesigner/internal/scene"
	"golabeldesigner/internal/storage"
	"golabeldesigner/internal/stylepack"
	"golabeldesigner/internal/vector"
	"golabeldesigner/internal/version"
)

// Run starts the Fyne-based desktop UI: template list on the left, the label
// canvas in the middle, item inspector and property panel on the right.
func Run(libraryDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	var lh *storage.LibraryHandle
	defer func() { crash.Recover(lh) }()

	fyneApp := app.NewWithID("golabeldesigner")
	w := fyneApp.NewWindow("Go Label Designer")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	canvasWidget := NewLabelCanvas()

	currentTemplate := ""

	// Session wiring: one scene+machine per open template. The machine owns
	// selection and gestures; everything below renders from it.
	var scn *scene.Scene
	var machine *editor.Machine
	var propEd *editor.PropertyEditor

	// commitScene writes the edited item list back into the manifest and
	// refreshes the embedded index in the background.
	commitScene := func() {
		if lh == nil || scn == nil || currentTemplate == "" {
			return
		}
		tpl := domain.FindTemplate(&lh.Library, currentTemplate)
		if tpl == nil {
			return
		}
		tpl.Items = scn.Items()
		if err := storage.Save(lh); err != nil {
			dialog.ShowError(err, w)
			return
		}
		go func(root string, lib domain.Library) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := storage.UpdateIndex(ctx, root, lib); err != nil {
				l.Warn("index update failed", slog.String("error", err.Error()))
			}
		}(lh.Root, lh.Library)
	}

	// Template list (left)
	templateNames := []string{}
	templatesList := widget.NewList(
		func() int { return len(templateNames) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(templateNames) {
				o.(*widget.Label).SetText(templateNames[i])
			} else {
				o.(*widget.Label).SetText("")
			}
		},
	)

	// Item inspector (right)
	itemDisplay := []string{}
	itemIDs := []int{}
	itemsList := widget.NewList(
		func() int { return len(itemDisplay) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(itemDisplay) {
				o.(*widget.Label).SetText(itemDisplay[i])
			}
		},
	)
	itemsHeaderLabel := widget.NewLabel("Items")

	// Property panel (right, below the inspector). Raw strings go straight to
	// the property editor; it drops whatever does not apply.
	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#rrggbb")
	fontSizeEntry := widget.NewEntry()
	fontSizeEntry.SetPlaceHolder("pt")
	positionLabel := widget.NewLabel("")

	refreshProps := func() {
		if propEd == nil {
			colorEntry.SetText("")
			fontSizeEntry.SetText("")
			positionLabel.SetText("")
			return
		}
		it, ok := propEd.Selected()
		if !ok {
			colorEntry.SetText("")
			fontSizeEntry.SetText("")
			positionLabel.SetText("No selection")
			return
		}
		colorEntry.SetText(it.Color)
		if it.Kind == domain.KindText {
			fontSizeEntry.SetText(strconv.FormatFloat(it.FontSize, 'f', -1, 64))
		} else {
			fontSizeEntry.SetText("")
		}
		positionLabel.SetText(fmt.Sprintf("%s #%d @ %.1f, %.1f", it.Kind, it.ID, it.X, it.Y))
	}
	colorEntry.OnSubmitted = func(s string) {
		if propEd == nil {
			return
		}
		propEd.SetColor(strings.TrimSpace(s))
		canvasWidget.Refresh()
		commitScene()
	}
	fontSizeEntry.OnSubmitted = func(s string) {
		if propEd == nil {
			return
		}
		propEd.SetFontSize(strings.TrimSpace(s))
		canvasWidget.Refresh()
		commitScene()
	}

	refreshItemsUI := func() {
		itemDisplay = itemDisplay[:0]
		itemIDs = itemIDs[:0]
		if machine == nil {
			itemsList.Refresh()
			itemsHeaderLabel.SetText("Items")
			refreshProps()
			return
		}
		selID, selOK := machine.SelectedID()
		for _, d := range machine.Drawables() {
			line := fmt.Sprintf("#%d %s @ %.0f,%.0f", d.ID, d.Kind, d.Bounds.X, d.Bounds.Y)
			if d.Kind == domain.KindText && strings.TrimSpace(d.Text) != "" {
				line += " — " + d.Text
			}
			if selOK && d.ID == selID {
				line = "▶ " + line
			}
			itemIDs = append(itemIDs, d.ID)
			itemDisplay = append(itemDisplay, line)
		}
		itemsList.Refresh()
		itemsHeaderLabel.SetText(fmt.Sprintf("Items (%s)", currentTemplate))
		refreshProps()
	}

	itemsList.OnSelected = func(id widget.ListItemID) {
		if machine == nil || scn == nil || id < 0 || int(id) >= len(itemIDs) {
			return
		}
		it, ok := scn.Get(itemIDs[id])
		if !ok {
			return
		}
		b := scene.Bounds(it)
		machine.HandlePress(it.ID, b.Center())
		machine.HandleRelease()
		canvasWidget.Refresh()
		refreshItemsUI()
	}

	refreshTemplatesList := func() {
		templateNames = templateNames[:0]
		if lh != nil {
			for _, t := range lh.Library.Templates {
				templateNames = append(templateNames, t.Name)
			}
			sort.Strings(templateNames)
		}
		templatesList.Refresh()
	}

	openTemplate := func(name string) {
		if lh == nil {
			return
		}
		tpl := domain.FindTemplate(&lh.Library, name)
		if tpl == nil {
			return
		}
		if machine != nil {
			machine.Close()
		}
		currentTemplate = name
		scn = scene.New(tpl.Items)
		// Fyne keeps delivering drag events to the pressed widget, so the
		// machine needs no extra pointer capture here.
		machine = editor.NewMachine(scn, editor.NopHook{})
		propEd = editor.NewPropertyEditor(machine)
		labelW, labelH := tpl.Width, tpl.Height
		if st := domain.FindStock(&lh.Library, tpl.Stock); st != nil {
			labelW, labelH = st.Width, st.Height
		}
		canvasWidget.SetSession(machine, scn, float32(labelW), float32(labelH))
		refreshItemsUI()
		status.SetText(fmt.Sprintf("Template %q (%.0f×%.0f pt)", name, labelW, labelH))
		l.Info("template opened", slog.String("template", name))
	}

	templatesList.OnSelected = func(id widget.ListItemID) {
		if id < 0 || int(id) >= len(templateNames) {
			return
		}
		openTemplate(templateNames[id])
	}

	canvasWidget.onChanged = func() {
		commitScene()
		refreshItemsUI()
	}
	canvasWidget.onSelectionChanged = func() {
		refreshItemsUI()
	}

	refreshAll := func() {
		refreshTemplatesList()
		refreshItemsUI()
	}

	doOpenLibrary := func(dir string) {
		if err := openLibrary(dir, &lh, w, l, status); err != nil {
			dialog.ShowError(err, w)
			return
		}
		currentTemplate = ""
		scn = nil
		machine = nil
		propEd = nil
		canvasWidget.ClearSession()
		refreshAll()
		if len(lh.Library.Templates) > 0 {
			openTemplate(lh.Library.Templates[0].Name)
			templatesList.Select(0)
		}
		if abs, err := filepath.Abs(dir); err == nil {
			addRecentLibrary(prefs, abs)
		}
	}

	// Insert operations share one path: append through the store, then reopen
	// the template so the scene, machine and canvas pick up the new item.
	insertItem := func(it domain.Item) {
		if lh == nil || currentTemplate == "" {
			dialog.ShowInformation("No template", "Open a template before inserting items.", w)
			return
		}
		added, err := storage.AddItem(lh, currentTemplate, it)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := storage.Save(lh); err != nil {
			dialog.ShowError(err, w)
			return
		}
		openTemplate(currentTemplate)
		status.SetText(fmt.Sprintf("Inserted %s #%d.", added.Kind, added.ID))
	}

	deleteSelected := func() {
		if lh == nil || machine == nil {
			return
		}
		id, ok := machine.SelectedID()
		if !ok {
			status.SetText("Nothing selected.")
			return
		}
		if err := storage.RemoveItem(lh, currentTemplate, id); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := storage.Save(lh); err != nil {
			dialog.ShowError(err, w)
			return
		}
		openTemplate(currentTemplate)
		status.SetText(fmt.Sprintf("Removed item #%d.", id))
	}

	moveSelectedZ := func(delta int) {
		if lh == nil || machine == nil {
			return
		}
		id, ok := machine.SelectedID()
		if !ok {
			return
		}
		if err := storage.MoveItemZ(lh, currentTemplate, id, delta); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := storage.Save(lh); err != nil {
			dialog.ShowError(err, w)
			return
		}
		sel := id
		openTemplate(currentTemplate)
		if it, ok := scn.Get(sel); ok {
			machine.HandlePress(it.ID, scene.Bounds(it).Center())
			machine.HandleRelease()
			canvasWidget.Refresh()
			refreshItemsUI()
		}
	}

	btnRect := widget.NewButton("Rect", func() {
		insertItem(domain.Item{Kind: domain.KindRect, X: 10, Y: 10, Width: 60, Height: 30, Color: "#336699"})
	})
	btnCircle := widget.NewButton("Circle", func() {
		insertItem(domain.Item{Kind: domain.KindCircle, X: 40, Y: 40, Radius: 18, Color: "#993333"})
	})
	btnText := widget.NewButton("Text", func() {
		insertItem(domain.Item{Kind: domain.KindText, X: 10, Y: 24, Text: "{name}", FontSize: 12, Color: "#000000"})
	})
	btnDelete := widget.NewButton("Delete", deleteSelected)
	btnUp := widget.NewButton("Forward", func() { moveSelectedZ(+1) })
	btnDown := widget.NewButton("Backward", func() { moveSelectedZ(-1) })

	right := container.NewBorder(
		container.NewVBox(itemsHeaderLabel, widget.NewSeparator()),
		container.NewVBox(
			widget.NewSeparator(),
			container.NewGridWithColumns(3, btnRect, btnCircle, btnText),
			container.NewGridWithColumns(3, btnDelete, btnUp, btnDown),
			widget.NewSeparator(),
			widget.NewForm(
				widget.NewFormItem("Color", colorEntry),
				widget.NewFormItem("Font size", fontSizeEntry),
			),
			positionLabel,
		),
		nil, nil,
		itemsList,
	)
	left := container.NewBorder(
		container.NewVBox(widget.NewLabel("Templates"), widget.NewSeparator()),
		nil, nil, nil,
		templatesList,
	)

	inner := container.NewHSplit(canvasWidget, right)
	inner.SetOffset(0.72)
	split := container.NewHSplit(left, inner)
	split.SetOffset(0.18)
	w.SetContent(container.NewBorder(nil, status, nil, nil, split))

	// --- Menus ---

	newLibItem := fyne.NewMenuItem("New Library…", func() {
		nameEntry := widget.NewEntry()
		nameEntry.SetPlaceHolder("Store name")
		dirEntry := widget.NewEntry()
		dirEntry.SetPlaceHolder("Directory")
		form := dialog.NewForm("New Library", "Create", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Directory", dirEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			dir := strings.TrimSpace(dirEntry.Text)
			name := strings.TrimSpace(nameEntry.Text)
			if dir == "" || name == "" {
				dialog.ShowInformation("Missing input", "Both name and directory are required.", w)
				return
			}
			nh, err := storage.InitLibrary(dir, domain.Library{
				Name: name,
				Stocks: []domain.Stock{
					{Name: "a7-shelf", Width: 210, Height: 74, DPI: 300},
				},
				Templates: []domain.Template{
					{Name: "starter", Stock: "a7-shelf", Width: 210, Height: 74},
				},
			})
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			lh = nh
			doOpenLibrary(dir)
			status.SetText("Library created.")
		}, w)
		form.Resize(fyne.NewSize(460, 200))
		form.Show()
	})

	openItem := fyne.NewMenuItem("Open…", func() {
		fo := dialog.NewFolderOpen(func(lu fyne.ListableURI, err error) {
			if err != nil || lu == nil {
				return
			}
			doOpenLibrary(lu.Path())
		}, w)
		fo.Show()
	})

	saveItem := fyne.NewMenuItem("Save", func() {
		if lh == nil {
			return
		}
		commitScene()
		status.SetText("Saved.")
	})

	saveAsItem := fyne.NewMenuItem("Save As…", func() {
		if lh == nil {
			return
		}
		dirEntry := widget.NewEntry()
		dirEntry.SetPlaceHolder("New directory")
		dialog.NewForm("Save Library As", "Save", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Directory", dirEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			dir := strings.TrimSpace(dirEntry.Text)
			if dir == "" {
				return
			}
			if err := storage.SaveAs(lh, dir); err != nil {
				dialog.ShowError(err, w)
				return
			}
			addRecentLibrary(prefs, dir)
			status.SetText("Saved to " + dir + ".")
		}, w).Show()
	})

	searchItem := fyne.NewMenuItem("Search…", func() {
		if lh == nil {
			dialog.ShowInformation("No library", "Open a library first.", w)
			return
		}
		queryEntry := widget.NewEntry()
		queryEntry.SetPlaceHolder("text, e.g. apples @produce")
		tplEntry := widget.NewEntry()
		tplEntry.SetPlaceHolder("template name (optional)")
		skuEntry := widget.NewEntry()
		skuEntry.SetPlaceHolder("SKU (optional)")
		results := widget.NewMultiLineEntry()
		results.Wrapping = fyne.TextWrapWord

		runSearch := func() {
			q := storage.SearchQuery{
				Text:     strings.TrimSpace(queryEntry.Text),
				Template: strings.TrimSpace(tplEntry.Text),
				SKU:      strings.TrimSpace(skuEntry.Text),
				Limit:    50,
			}
			// Tags ride along in the text box as @tag tokens
			var rest []string
			for _, tok := range strings.Fields(q.Text) {
				if strings.HasPrefix(tok, "@") && len(tok) > 1 {
					q.Tags = append(q.Tags, tok[1:])
				} else {
					rest = append(rest, tok)
				}
			}
			q.Text = strings.Join(rest, " ")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			res, err := storage.Search(ctx, lh.Root, q)
			if err != nil {
				results.SetText("search failed: " + err.Error())
				return
			}
			var sb strings.Builder
			for _, r := range res {
				fmt.Fprintf(&sb, "[%s] %s", r.Type, r.Path)
				if r.Template != "" {
					fmt.Fprintf(&sb, " (template %s)", r.Template)
				}
				if r.Snippet != "" {
					fmt.Fprintf(&sb, " — %s", r.Snippet)
				}
				sb.WriteString("\n")
			}
			if sb.Len() == 0 {
				sb.WriteString("No matches.")
			}
			results.SetText(sb.String())
		}
		queryEntry.OnSubmitted = func(string) { runSearch() }
		searchBtn := widget.NewButton("Search", runSearch)
		content := container.NewBorder(
			container.NewVBox(queryEntry, container.NewGridWithColumns(2, tplEntry, skuEntry), searchBtn),
			nil, nil, nil,
			results,
		)
		d := dialog.NewCustom("Search Library", "Close", content, w)
		d.Resize(fyne.NewSize(640, 480))
		d.Show()
	})

	rebuildIndexItem := fyne.NewMenuItem("Rebuild Index", func() {
		if lh == nil {
			return
		}
		status.SetText("Rebuilding index…")
		go func(root string, lib domain.Library) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			err := storage.RebuildIndex(ctx, root, lib)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w)
					status.SetText("Index rebuild failed.")
					return
				}
				status.SetText("Index rebuilt.")
			})
		}(lh.Root, lh.Library)
	})

	importStylePackItem := fyne.NewMenuItem("Import Style Pack…", func() {
		if lh == nil {
			return
		}
		fo := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			n, err := stylepack.InstallPack(lh.Root, path)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText(fmt.Sprintf("Installed %d style files.", n))
		}, w)
		fo.SetFilter(fstorage.NewExtensionFileFilter([]string{".zip"}))
		fo.Show()
	})

	exportStylePackItem := fyne.NewMenuItem("Export Styles as Pack…", func() {
		if lh == nil {
			return
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			if err := stylepack.ExportLibraryStyles(lh.Root, path); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Style pack exported.")
		}, w)
		fs.SetFileName("styles.zip")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".zip"}))
		fs.Show()
	})

	var closeLibItem *fyne.MenuItem
	closeLibItem = fyne.NewMenuItem("Close Library", func() {
		if lh == nil {
			return
		}
		commitScene()
		if machine != nil {
			machine.Close()
		}
		lh = nil
		scn = nil
		machine = nil
		propEd = nil
		currentTemplate = ""
		canvasWidget.ClearSession()
		refreshAll()
		status.SetText("Library closed.")
		closeLibItem.Disabled = true
	})

	recentMenuItems := []*fyne.MenuItem{}
	for _, p := range loadRecentLibraries(prefs) {
		path := p
		recentMenuItems = append(recentMenuItems, fyne.NewMenuItem(path, func() { doOpenLibrary(path) }))
	}
	recentSub := fyne.NewMenuItem("Open Recent", nil)
	if len(recentMenuItems) == 0 {
		recentMenuItems = append(recentMenuItems, fyne.NewMenuItem("(empty)", nil))
	}
	recentSub.ChildMenu = fyne.NewMenu("Open Recent", recentMenuItems...)

	fileMenu := fyne.NewMenu("File",
		newLibItem, openItem, recentSub, saveItem, saveAsItem,
		fyne.NewMenuItemSeparator(),
		searchItem, rebuildIndexItem, importStylePackItem, exportStylePackItem,
		fyne.NewMenuItemSeparator(),
		closeLibItem,
	)

	// Template menu
	newTemplateItem := fyne.NewMenuItem("New Template…", func() {
		if lh == nil {
			return
		}
		nameEntry := widget.NewEntry()
		dialog.NewForm("New Template", "Create", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				return
			}
			if _, err := storage.EnsureTemplate(lh, name); err != nil {
				dialog.ShowError(err, w)
				return
			}
			if err := storage.Save(lh); err != nil {
				dialog.ShowError(err, w)
				return
			}
			refreshTemplatesList()
			openTemplate(name)
		}, w).Show()
	})
	bindStockItem := fyne.NewMenuItem("Bind Stock…", func() {
		if lh == nil || currentTemplate == "" {
			return
		}
		names := make([]string, 0, len(lh.Library.Stocks))
		for _, s := range lh.Library.Stocks {
			names = append(names, s.Name)
		}
		sel := widget.NewSelect(names, nil)
		dialog.NewForm("Bind Stock", "Bind", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Stock", sel),
		}, func(ok bool) {
			if !ok || sel.Selected == "" {
				return
			}
			if err := storage.BindTemplateStock(lh, currentTemplate, sel.Selected); err != nil {
				dialog.ShowError(err, w)
				return
			}
			if err := storage.Save(lh); err != nil {
				dialog.ShowError(err, w)
				return
			}
			openTemplate(currentTemplate)
			status.SetText(fmt.Sprintf("Template bound to stock %q.", sel.Selected))
		}, w).Show()
	})
	templateMenu := fyne.NewMenu("Template", newTemplateItem, bindStockItem)

	// Insert menu mirrors the toolbar buttons so everything is reachable by
	// keyboard users too.
	insertRectMenu := fyne.NewMenuItem("Rectangle", func() {
		insertItem(domain.Item{Kind: domain.KindRect, X: 10, Y: 10, Width: 60, Height: 30, Color: "#336699"})
	})
	insertCircleMenu := fyne.NewMenuItem("Circle", func() {
		insertItem(domain.Item{Kind: domain.KindCircle, X: 40, Y: 40, Radius: 18, Color: "#993333"})
	})
	insertTextMenu := fyne.NewMenuItem("Text", func() {
		insertItem(domain.Item{Kind: domain.KindText, X: 10, Y: 24, Text: "{name}", FontSize: 12, Color: "#000000"})
	})
	deleteSelectedMenu := fyne.NewMenuItem("Delete Selected", deleteSelected)
	insertMenu := fyne.NewMenu("Insert", insertRectMenu, insertCircleMenu, insertTextMenu, fyne.NewMenuItemSeparator(), deleteSelectedMenu)

	// Products menu
	editListItem := fyne.NewMenuItem("Edit Product List…", func() {
		if lh == nil {
			return
		}
		text, err := storage.ReadProductList(lh)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		entry := widget.NewMultiLineEntry()
		entry.SetText(text)
		entry.Wrapping = fyne.TextWrapOff
		d := dialog.NewCustomConfirm("Product List", "Save", "Cancel", entry, func(ok bool) {
			if !ok {
				return
			}
			if _, errs := products.Parse(entry.Text); len(errs) > 0 {
				dialog.ShowError(fmt.Errorf("line %d: %s", errs[0].Line, errs[0].Message), w)
				return
			}
			if err := storage.WriteProductList(lh, entry.Text); err != nil {
				dialog.ShowError(err, w)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = storage.SaveProductListSnapshot(ctx, lh, entry.Text, time.Now())
			status.SetText("Product list saved.")
		}, w)
		d.Resize(fyne.NewSize(640, 480))
		d.Show()
	})
	coverageItem := fyne.NewMenuItem("Check Field Coverage", func() {
		if lh == nil {
			return
		}
		text, err := storage.ReadProductList(lh)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		list, errs := products.Parse(text)
		if len(errs) > 0 {
			dialog.ShowError(fmt.Errorf("product list has %d error(s); first: line %d: %s", len(errs), errs[0].Line, errs[0].Message), w)
			return
		}
		var sb strings.Builder
		for _, c := range storage.ComputeFieldCoverage(lh.Library, list) {
			fmt.Fprintf(&sb, "%s: %d field(s), %d unbound\n", c.Template, len(c.Fields), len(c.Unbound))
			for _, f := range c.Unbound {
				fmt.Fprintf(&sb, "  missing {%s}\n", f)
			}
		}
		if sb.Len() == 0 {
			sb.WriteString("No templates with fields.")
		}
		dialog.ShowInformation("Field Coverage", sb.String(), w)
	})
	productsMenu := fyne.NewMenu("Products", editListItem, coverageItem)

	// Export menu
	exportPDFItem := fyne.NewMenuItem("Templates as PDF…", func() {
		if lh == nil {
			return
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			if err := export.ExportTemplatesPDF(lh, lh.Library.Templates, path, export.PDFOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("PDF exported.")
		}, w)
		fs.SetFileName("labels.pdf")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		fs.Show()
	})
	exportSheetItem := fyne.NewMenuItem("Print Sheet PDF…", func() {
		if lh == nil {
			return
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			tpls := lh.Library.Templates
			if currentTemplate != "" {
				if t := domain.FindTemplate(&lh.Library, currentTemplate); t != nil {
					tpls = []domain.Template{*t}
				}
			}
			if err := export.ExportSheetPDF(lh, tpls, path, export.SheetOptions{IncludeGuides: true}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Sheet exported.")
		}, w)
		fs.SetFileName("sheet.pdf")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		fs.Show()
	})
	exportPNGItem := fyne.NewMenuItem("Templates as PNGs…", func() {
		if lh == nil {
			return
		}
		dirEntry := widget.NewEntry()
		dirEntry.SetText(filepath.Join(lh.Root, "exports", "png"))
		dialog.NewForm("Export PNGs", "Export", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Directory", dirEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			if err := export.ExportTemplatePNGs(lh, lh.Library.Templates, dirEntry.Text, export.PNGOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("PNGs exported.")
		}, w).Show()
	})
	exportSVGItem := fyne.NewMenuItem("Templates as SVGs…", func() {
		if lh == nil {
			return
		}
		dirEntry := widget.NewEntry()
		dirEntry.SetText(filepath.Join(lh.Root, "exports", "svg"))
		dialog.NewForm("Export SVGs", "Export", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Directory", dirEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			if err := export.ExportTemplatesSVG(lh, lh.Library.Templates, dirEntry.Text, export.SVGOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("SVGs exported.")
		}, w).Show()
	})
	exportBatchItem := fyne.NewMenuItem("Batch ZIP (current template)…", func() {
		if lh == nil || currentTemplate == "" {
			dialog.ShowInformation("No template", "Open a template first.", w)
			return
		}
		tpl := domain.FindTemplate(&lh.Library, currentTemplate)
		if tpl == nil {
			return
		}
		text, err := storage.ReadProductList(lh)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		list, errs := products.Parse(text)
		if len(errs) > 0 {
			dialog.ShowError(fmt.Errorf("product list has errors; fix them first"), w)
			return
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			if err := export.ExportBatchZIP(lh, *tpl, list, path, export.BatchZIPOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Batch ZIP exported.")
		}, w)
		fs.SetFileName("labels.zip")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".zip"}))
		fs.Show()
	})
	presetScreenItem := fyne.NewMenuItem("Run Preset: screen", func() {
		if lh == nil {
			return
		}
		if err := export.BatchExport(lh, export.BatchOptions{Preset: export.PresetScreen}); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Screen preset exported.")
	})
	presetPrintItem := fyne.NewMenuItem("Run Preset: print", func() {
		if lh == nil {
			return
		}
		if err := export.BatchExport(lh, export.BatchOptions{Preset: export.PresetPrint}); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Print preset exported.")
	})
	exportMenu := fyne.NewMenu("Export",
		exportPDFItem, exportSheetItem, exportPNGItem, exportSVGItem, exportBatchItem,
		fyne.NewMenuItemSeparator(),
		presetScreenItem, presetPrintItem,
	)

	// Catalog menu (feature-flagged)
	catalogClient := func() (*catalog.Client, error) {
		cfg, token, err := config.Load()
		if err != nil {
			return nil, err
		}
		if !cfg.General.EnableCatalog {
			return nil, fmt.Errorf("catalog disabled; enable it in the config file or set %s=1", config.EnvEnableCatalog)
		}
		c := catalog.NewClient(cfg.Catalog.BaseURL, token)
		if cfg.Catalog.TimeoutMs > 0 {
			c.SetTimeout(time.Duration(cfg.Catalog.TimeoutMs) * time.Millisecond)
		}
		return c, nil
	}
	browseCatalogItem := fyne.NewMenuItem("Browse Libraries…", func() {
		c, err := catalogClient()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			libs, err := c.ListLibraries(ctx)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				var sb strings.Builder
				for _, p := range libs {
					fmt.Fprintf(&sb, "#%d %s (v%d, %s)\n", p.ID, p.Name, p.Version, p.UpdatedAt.Format("2006-01-02"))
				}
				if sb.Len() == 0 {
					sb.WriteString("No libraries published.")
				}
				dialog.ShowInformation("Catalog Libraries", sb.String(), w)
			})
		}()
	})
	publishItem := fyne.NewMenuItem("Publish Index Snapshot…", func() {
		if lh == nil {
			return
		}
		c, err := catalogClient()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		idEntry := widget.NewEntry()
		idEntry.SetPlaceHolder("catalog library id")
		dialog.NewForm("Publish Snapshot", "Publish", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Library ID", idEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			lid, err := strconv.ParseInt(strings.TrimSpace(idEntry.Text), 10, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid library id"), w)
				return
			}
			names := make([]string, 0, len(lh.Library.Templates))
			for _, t := range lh.Library.Templates {
				names = append(names, t.Name)
			}
			snap := map[string]any{
				"name":         lh.Library.Name,
				"templates":    names,
				"generated_at": time.Now().UTC().Format(time.RFC3339),
			}
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				ver, err := c.PushIndexSnapshot(ctx, lid, snap)
				fyne.Do(func() {
					if err != nil {
						dialog.ShowError(err, w)
						return
					}
					status.SetText(fmt.Sprintf("Published snapshot v%d.", ver))
				})
			}()
		}, w).Show()
	})
	discoverItem := fyne.NewMenuItem("Discover on LAN…", func() {
		go func() {
			var addrs []string
			_ = catalog.Browse(func(addr string) { addrs = append(addrs, addr) })
			fyne.Do(func() {
				if len(addrs) == 0 {
					dialog.ShowInformation("Discovery", "No catalog found on the local network.", w)
					return
				}
				dialog.ShowInformation("Discovery", "Found: "+strings.Join(addrs, ", "), w)
			})
		}()
	})
	catalogMenu := fyne.NewMenu("Catalog", browseCatalogItem, publishItem, discoverItem)

	aboutItem := fyne.NewMenuItem("About Go Label Designer", func() {
		dialog.ShowInformation("About", "Go Label Designer\n"+version.String(), w)
	})
	aboutMenu := fyne.NewMenu("About", aboutItem)

	w.SetMainMenu(fyne.NewMainMenu(fileMenu, templateMenu, insertMenu, productsMenu, exportMenu, catalogMenu, aboutMenu))

	// Ctrl+S saves without reaching for the menu.
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		commitScene()
		status.SetText("Saved.")
	})

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if lh != nil {
			commitScene()
			addRecentLibrary(prefs, lh.Root)
		}
		if machine != nil {
			machine.Close()
		}
		w.Close()
	})

	if strings.TrimSpace(libraryDir) != "" {
		doOpenLibrary(libraryDir)
	}

	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

func openLibrary(dir string, lhOut **storage.LibraryHandle, w fyne.Window, l *slog.Logger, status *widget.Label) error {
	h, err := storage.Open(dir)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	*lhOut = h
	l.Info("library opened", slog.String("root", h.Root), slog.String("name", h.Library.Name))
	status.SetText(fmt.Sprintf("Library %q (%d templates)", h.Library.Name, len(h.Library.Templates)))
	return nil
}

// LabelCanvas renders one template at a time and feeds pointer gestures into
// the editor machine. All geometry inside the widget is label points; the
// renderer maps to screen pixels with a fit-to-window scale times zoom.
type LabelCanvas struct {
	widget.BaseWidget

	zoom           float32
	labelW, labelH float32

	machine *editor.Machine
	scn     *scene.Scene

	dragging  bool
	guides    []vector.GuideLine
	editEntry *widget.Entry

	onChanged          func()
	onSelectionChanged func()
}

// NewLabelCanvas creates an empty canvas. Call SetSession once a template is open.
func NewLabelCanvas() *LabelCanvas {
	c := &LabelCanvas{
		zoom:   1.0,
		labelW: 210,
		labelH: 74,
	}
	c.editEntry = widget.NewEntry()
	c.editEntry.OnChanged = func(s string) {
		if c.machine == nil {
			return
		}
		c.machine.HandleTextChange(s)
		c.Refresh()
	}
	c.editEntry.OnSubmitted = func(string) { c.finishEditing() }
	c.editEntry.Hide()
	c.ExtendBaseWidget(c)
	return c
}

// SetSession points the canvas at a new machine and scene and sets the label size in points.
func (c *LabelCanvas) SetSession(m *editor.Machine, s *scene.Scene, labelW, labelH float32) {
	c.machine = m
	c.scn = s
	if labelW > 0 {
		c.labelW = labelW
	}
	if labelH > 0 {
		c.labelH = labelH
	}
	c.dragging = false
	c.guides = nil
	c.editEntry.Hide()
	c.Refresh()
}

// ClearSession detaches the canvas from any machine.
func (c *LabelCanvas) ClearSession() {
	c.machine = nil
	c.scn = nil
	c.dragging = false
	c.guides = nil
	c.editEntry.Hide()
	c.Refresh()
}

func (c *LabelCanvas) PreferredSize() fyne.Size { return fyne.NewSize(800, 600) }

// labelOriginAndScale computes the top-left screen position of the label and
// the points-to-pixels scale: fit the label into the widget with a margin,
// then apply zoom.
func (c *LabelCanvas) labelOriginAndScale() (ox, oy, scale float32) {
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 {
		size = c.PreferredSize()
	}
	const margin = float32(24)
	availW := size.Width - 2*margin
	availH := size.Height - 2*margin
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}
	fit := availW / c.labelW
	if h := availH / c.labelH; h < fit {
		fit = h
	}
	scale = fit * c.zoom
	if scale <= 0 {
		scale = 1
	}
	ox = (size.Width - c.labelW*scale) / 2
	oy = (size.Height - c.labelH*scale) / 2
	return ox, oy, scale
}

func (c *LabelCanvas) toScreen(pt vector.Pt) fyne.Position {
	ox, oy, scale := c.labelOriginAndScale()
	return fyne.NewPos(ox+pt.X*scale, oy+pt.Y*scale)
}

func (c *LabelCanvas) toLabel(pos fyne.Position) vector.Pt {
	ox, oy, scale := c.labelOriginAndScale()
	return vector.Pt{X: (pos.X - ox) / scale, Y: (pos.Y - oy) / scale}
}

// Tapped selects the hit item, or clears the selection on background.
func (c *LabelCanvas) Tapped(e *fyne.PointEvent) {
	if c.machine == nil || c.scn == nil {
		return
	}
	p := c.toLabel(e.Position)
	id, ok := c.scn.HitTest(p)
	if !ok {
		id = 0
	}
	wasEditing := c.machine.State() == editor.StateEditing
	c.machine.HandlePress(id, p)
	c.machine.HandleRelease()
	if wasEditing {
		c.editEntry.Hide()
		if c.onChanged != nil {
			c.onChanged()
		}
	}
	c.Refresh()
	if c.onSelectionChanged != nil {
		c.onSelectionChanged()
	}
}

// DoubleTapped opens the inline editor on text items.
func (c *LabelCanvas) DoubleTapped(e *fyne.PointEvent) {
	if c.machine == nil || c.scn == nil {
		return
	}
	p := c.toLabel(e.Position)
	id, ok := c.scn.HitTest(p)
	if !ok {
		return
	}
	c.machine.HandleDoubleClick(id, p)
	if box, editing := c.machine.EditorBox(); editing {
		c.editEntry.SetText(box.Text)
		c.editEntry.Show()
		if cnv := fyne.CurrentApp().Driver().CanvasForObject(c); cnv != nil {
			cnv.Focus(c.editEntry)
		}
	}
	c.Refresh()
	if c.onSelectionChanged != nil {
		c.onSelectionChanged()
	}
}

// Dragged feeds the machine: a press at the gesture's start point on the
// first event, then a move per event. Guides are recomputed each move.
func (c *LabelCanvas) Dragged(e *fyne.DragEvent) {
	if c.machine == nil || c.scn == nil {
		return
	}
	if !c.dragging {
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		p := c.toLabel(start)
		id, ok := c.scn.HitTest(p)
		if !ok {
			return
		}
		c.machine.HandlePress(id, p)
		c.dragging = true
	}
	p := c.toLabel(e.Position)
	c.machine.HandleMove(p)
	c.updateGuides()
	c.Refresh()
}

// DragEnd finishes the gesture, keeping the selection.
func (c *LabelCanvas) DragEnd() {
	if c.machine == nil {
		return
	}
	if c.dragging {
		c.machine.HandleRelease()
		c.dragging = false
		c.guides = nil
		c.Refresh()
		if c.onChanged != nil {
			c.onChanged()
		}
	}
}

// Scrolled zooms around the label center.
func (c *LabelCanvas) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		c.zoom *= 1.1
	} else if e.Scrolled.DY < 0 {
		c.zoom /= 1.1
	}
	if c.zoom < 0.2 {
		c.zoom = 0.2
	}
	if c.zoom > 4 {
		c.zoom = 4
	}
	c.Refresh()
}

func (c *LabelCanvas) finishEditing() {
	if c.machine == nil {
		return
	}
	if c.machine.State() != editor.StateEditing {
		return
	}
	c.machine.HandleBlur()
	c.editEntry.Hide()
	c.Refresh()
	if c.onChanged != nil {
		c.onChanged()
	}
	if c.onSelectionChanged != nil {
		c.onSelectionChanged()
	}
}

// updateGuides recomputes alignment guides for the item under drag against
// the label bounds and every other item.
func (c *LabelCanvas) updateGuides() {
	c.guides = nil
	id, ok := c.machine.SelectedID()
	if !ok {
		return
	}
	it, ok := c.scn.Get(id)
	if !ok {
		return
	}
	moving := scene.Bounds(it)
	anchors := []vector.Anchor{{Rect: vector.R(0, 0, c.labelW, c.labelH), Weight: 2}}
	for _, other := range c.scn.Items() {
		if other.ID == id {
			continue
		}
		anchors = append(anchors, vector.Anchor{Rect: scene.Bounds(other), Weight: 1})
	}
	c.guides = vector.ComputeAlignmentGuides(moving, anchors, vector.GuideOptions{
		Threshold: 6,
		Edges:     true,
		Centers:   true,
	})
}

func (c *LabelCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff})
	page := canvas.NewRectangle(color.White)
	page.StrokeColor = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	page.StrokeWidth = 1
	bbox := canvas.NewRectangle(color.Transparent)
	bbox.StrokeColor = color.NRGBA{R: 0x1e, G: 0x66, B: 0xd0, A: 0xff}
	bbox.StrokeWidth = 2
	bbox.Hide()
	vGuide := canvas.NewLine(color.NRGBA{R: 0xd0, G: 0x30, B: 0x90, A: 0xff})
	vGuide.StrokeWidth = 1
	vGuide.Hide()
	hGuide := canvas.NewLine(color.NRGBA{R: 0xd0, G: 0x30, B: 0x90, A: 0xff})
	hGuide.StrokeWidth = 1
	hGuide.Hide()
	return &labelCanvasRenderer{
		lc:     c,
		bg:     bg,
		page:   page,
		bbox:   bbox,
		vGuide: vGuide,
		hGuide: hGuide,
	}
}

type labelCanvasRenderer struct {
	lc   *LabelCanvas
	bg   *canvas.Rectangle
	page *canvas.Rectangle
	bbox *canvas.Rectangle

	vGuide *canvas.Line
	hGuide *canvas.Line

	// object pools, grown on demand and hidden when surplus
	rects   []*canvas.Rectangle
	circles []*canvas.Circle
	texts   []*canvas.Text

	objects []fyne.CanvasObject
}

func (r *labelCanvasRenderer) Destroy()                     {}
func (r *labelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *labelCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(320, 240) }
func (r *labelCanvasRenderer) Refresh()                     { r.Layout(r.lc.Size()); canvas.Refresh(r.lc) }

func (r *labelCanvasRenderer) ensurePools(nRect, nCircle, nText int) {
	for len(r.rects) < nRect {
		r.rects = append(r.rects, canvas.NewRectangle(color.Black))
	}
	for len(r.circles) < nCircle {
		r.circles = append(r.circles, canvas.NewCircle(color.Black))
	}
	for len(r.texts) < nText {
		r.texts = append(r.texts, canvas.NewText("", color.Black))
	}
}

func (r *labelCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(size)

	lc := r.lc
	ox, oy, scale := lc.labelOriginAndScale()
	r.page.Move(fyne.NewPos(ox, oy))
	r.page.Resize(fyne.NewSize(lc.labelW*scale, lc.labelH*scale))

	var drawables []editor.Drawable
	if lc.machine != nil {
		drawables = lc.machine.Drawables()
	}
	nRect, nCircle, nText := 0, 0, 0
	for _, d := range drawables {
		switch d.Kind {
		case domain.KindCircle:
			nCircle++
		case domain.KindText:
			nText++
		default:
			nRect++
		}
	}
	r.ensurePools(nRect, nCircle, nText)

	// rebuild the object list in paint order
	r.objects = r.objects[:0]
	r.objects = append(r.objects, r.bg, r.page)

	iRect, iCircle, iText := 0, 0, 0
	var selBounds vector.Rect
	selected := false
	for _, d := range drawables {
		col := color.NRGBA{A: 0xff}
		if c, ok := vector.ParseColor(d.Color); ok {
			col = c.NRGBA()
		}
		pos := lc.toScreen(vector.Pt{X: d.Bounds.X, Y: d.Bounds.Y})
		sz := fyne.NewSize(d.Bounds.W*scale, d.Bounds.H*scale)
		switch d.Kind {
		case domain.KindCircle:
			obj := r.circles[iCircle]
			iCircle++
			obj.FillColor = col
			obj.Move(pos)
			obj.Resize(sz)
			obj.Show()
			r.objects = append(r.objects, obj)
		case domain.KindText:
			obj := r.texts[iText]
			iText++
			obj.Text = d.Text
			obj.Color = col
			obj.TextSize = float32(d.FontSize) * scale
			if obj.TextSize <= 0 {
				obj.TextSize = 12 * scale
			}
			obj.Move(pos)
			obj.Show()
			r.objects = append(r.objects, obj)
		default:
			obj := r.rects[iRect]
			iRect++
			obj.FillColor = col
			obj.Move(pos)
			obj.Resize(sz)
			obj.Show()
			r.objects = append(r.objects, obj)
		}
		if d.Selected {
			selBounds = d.Bounds
			selected = true
		}
	}
	// hide surplus pool objects
	for i := iRect; i < len(r.rects); i++ {
		r.rects[i].Hide()
	}
	for i := iCircle; i < len(r.circles); i++ {
		r.circles[i].Hide()
	}
	for i := iText; i < len(r.texts); i++ {
		r.texts[i].Hide()
	}

	if selected {
		pad := float32(2)
		pos := lc.toScreen(vector.Pt{X: selBounds.X, Y: selBounds.Y})
		r.bbox.Move(fyne.NewPos(pos.X-pad, pos.Y-pad))
		r.bbox.Resize(fyne.NewSize(selBounds.W*scale+2*pad, selBounds.H*scale+2*pad))
		r.bbox.Show()
	} else {
		r.bbox.Hide()
	}
	r.objects = append(r.objects, r.bbox)

	r.vGuide.Hide()
	r.hGuide.Hide()
	for _, g := range lc.guides {
		from := lc.toScreen(g.From)
		to := lc.toScreen(g.To)
		switch g.Orientation {
		case "vertical":
			r.vGuide.Position1 = from
			r.vGuide.Position2 = to
			r.vGuide.Show()
		case "horizontal":
			r.hGuide.Position1 = from
			r.hGuide.Position2 = to
			r.hGuide.Show()
		}
	}
	r.objects = append(r.objects, r.vGuide, r.hGuide)

	// inline text editor overlay
	if lc.machine != nil {
		if box, editing := lc.machine.EditorBox(); editing {
			pos := lc.toScreen(vector.Pt{X: box.Bounds.X, Y: box.Bounds.Y})
			width := box.Bounds.W * scale
			if width < 120 {
				width = 120
			}
			lc.editEntry.Move(pos)
			lc.editEntry.Resize(fyne.NewSize(width, box.Bounds.H*scale+8))
			lc.editEntry.Show()
		} else {
			lc.editEntry.Hide()
		}
	}
	r.objects = append(r.objects, lc.editEntry)
}

// --- Recent libraries (stored in preferences as JSON array) ---

const recentPrefsKey = "recent.libraries"
const recentMax = 10

func loadRecentLibraries(p fyne.Preferences) []string {
	raw := p.StringWithFallback(recentPrefsKey, "[]")
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	out := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		if _, err := os.Stat(it); err == nil {
			out = append(out, it)
		}
	}
	return out
}

func saveRecentLibraries(p fyne.Preferences, items []string) {
	if len(items) > recentMax {
		items = items[:recentMax]
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	p.SetString(recentPrefsKey, string(b))
}

func addRecentLibrary(p fyne.Preferences, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	items := loadRecentLibraries(p)
	out := make([]string, 0, len(items)+1)
	out = append(out, path)
	for _, it := range items {
		if it != path {
			out = append(out, it)
		}
	}
	saveRecentLibraries(p, out)
}
