package icons

import (
	"strings"
	"testing"
)

func TestCatalogEntriesAreComplete(t *testing.T) {
	defs := Catalog()
	if len(defs) == 0 {
		t.Fatal("expected catalog to include icon definitions")
	}

	seen := make(map[ID]struct{})
	for _, def := range defs {
		if _, ok := seen[def.ID]; ok {
			t.Errorf("duplicate icon id in catalog: %s", def.ID)
		}
		seen[def.ID] = struct{}{}
		if strings.TrimSpace(def.Name) == "" {
			t.Errorf("icon %s missing name", def.ID)
		}
		name, ok := LucideName(def.ID)
		if !ok {
			t.Errorf("icon %s has no lucide mapping", def.ID)
			continue
		}
		if _, ok := lucideSymbols[name]; !ok {
			t.Errorf("lucide icon %s has no symbol markup", name)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	defs := Catalog()
	defs[0].Name = "changed"
	if Catalog()[0].Name == "changed" {
		t.Fatal("expected catalog copy")
	}
}

func TestLucideSpriteDefinesEverySymbol(t *testing.T) {
	sprite := LucideSprite()
	for _, def := range Catalog() {
		symbol := `id="` + LucideSymbolID(LucideNameOrDefault(def.ID)) + `"`
		if !strings.Contains(sprite, symbol) {
			t.Errorf("sprite missing %s", symbol)
		}
	}
}

func TestLucideNameOrDefault(t *testing.T) {
	if got := LucideNameOrDefault(Edit); got != "pencil" {
		t.Fatalf("edit = %q", got)
	}
	if got := LucideNameOrDefault(ID("missing")); got != "list-filter" {
		t.Fatalf("fallback = %q", got)
	}
}
