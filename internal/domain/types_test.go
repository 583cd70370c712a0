package domain

import (
	"encoding/json"
	"testing"
)

func TestLibraryJSONRoundTrip(t *testing.T) {
	lib := Library{
		Name: "RoundTrip",
		Stocks: []Stock{
			{Name: "thermal-58x40", Width: 164.4, Height: 113.4, DPI: 203},
		},
		Templates: []Template{
			{
				Name:   "shelf-basic",
				Stock:  "thermal-58x40",
				Width:  164.4,
				Height: 113.4,
				Items: []Item{
					{ID: 1, Kind: KindRect, X: 0, Y: 0, Color: "#ffffff", Width: 164.4, Height: 113.4},
					{ID: 2, Kind: KindText, X: 8, Y: 24, Color: "#000000", Text: "{name}", FontSize: 14},
				},
			},
		},
	}

	b, err := json.Marshal(lib)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Library
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != lib.Name {
		t.Fatalf("name mismatch: got %q want %q", got.Name, lib.Name)
	}
	if len(got.Templates) != 1 || len(got.Templates[0].Items) != 2 {
		t.Fatalf("unexpected templates/items structure: %+v", got)
	}
	if got.Templates[0].Items[1].Text != "{name}" {
		t.Fatalf("placeholder text lost: %+v", got.Templates[0].Items[1])
	}
}

func TestUnknownKindSurvivesJSON(t *testing.T) {
	in := []byte(`{"id":7,"kind":"barcode","x":10,"y":20,"color":"#112233","text":"4006381333931"}`)
	var it Item
	if err := json.Unmarshal(in, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Kind != "barcode" || it.ID != 7 {
		t.Fatalf("unknown kind not preserved: %+v", it)
	}
	out, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Item
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if back != it {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, it)
	}
}

func TestFindTemplateAndMaxItemID(t *testing.T) {
	lib := Library{
		Name: "Lookups",
		Templates: []Template{
			{Name: "a", Items: []Item{{ID: 3}, {ID: 9}, {ID: 5}}},
			{Name: "b"},
		},
	}
	if tpl := FindTemplate(&lib, "a"); tpl == nil || tpl.Name != "a" {
		t.Fatalf("FindTemplate failed: %+v", tpl)
	}
	if tpl := FindTemplate(&lib, "missing"); tpl != nil {
		t.Fatalf("expected nil for missing template")
	}
	if got := MaxItemID(FindTemplate(&lib, "a")); got != 9 {
		t.Fatalf("MaxItemID = %d, want 9", got)
	}
	if got := MaxItemID(FindTemplate(&lib, "b")); got != 0 {
		t.Fatalf("MaxItemID on empty = %d, want 0", got)
	}
}
