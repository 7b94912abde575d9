package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func houseJSON(id, name string) string {
	return `{
  "id": "` + id + `",
  "name": "` + name + `",
  "address": "somewhere",
  "year_built": 1924,
  "style": "Art Deco",
  "floors": 3,
  "model": {"color": "#aabbcc", "height": 10, "footprint": {"width": 10, "depth": 10}},
  "map_position": {"x": 1, "z": 2}
}`
}

func TestLoadLexicalOrderWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bravo.json", houseJSON("bravo", "Bravo House"))
	writeFile(t, dir, "alpha.json", houseJSON("alpha", "Alpha House"))

	houses, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(houses) != 2 {
		t.Fatalf("expected 2 houses, got %d", len(houses))
	}
	if houses[0].ID != "alpha" || houses[1].ID != "bravo" {
		t.Errorf("order = [%s %s], want [alpha bravo]", houses[0].ID, houses[1].ID)
	}
}

func TestLoadManifestOrderWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.json", houseJSON("alpha", "Alpha House"))
	writeFile(t, dir, "bravo.json", houseJSON("bravo", "Bravo House"))
	writeFile(t, dir, "manifest.yaml", "houses:\n  - bravo\n  - alpha\n")

	houses, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if houses[0].ID != "bravo" || houses[1].ID != "alpha" {
		t.Errorf("order = [%s %s], want [bravo alpha]", houses[0].ID, houses[1].ID)
	}
}

func TestLoadManifestReferencesMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "manifest.yaml", "houses:\n  - ghost\n")

	if _, err := Load(dir); err == nil {
		t.Error("expected an error for a missing house file")
	}
}

func TestLoadEmptyManifestRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "manifest.yaml", "houses: []\n")

	if _, err := Load(dir); err == nil {
		t.Error("expected an error for an empty manifest")
	}
}

func TestLoadIDMustMatchFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.json", houseJSON("not-alpha", "Mismatch House"))

	if _, err := Load(dir); err == nil {
		t.Error("expected an error for an id/filename mismatch")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"MissingID", `{"name": "x", "year_built": 1900}`},
		{"MissingName", `{"id": "alpha", "year_built": 1900}`},
		{"MissingYear", `{"id": "alpha", "name": "x"}`},
		{"Malformed", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "alpha.json", tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadParsesScripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.json", `{
  "id": "alpha",
  "name": "Alpha House",
  "year_built": 1924,
  "script": {
    "home": [
      {"character": "AI", "text": "hello", "delay_ms": 2000},
      {"character": "AI", "text": "go", "navigate_to": "house/alpha"}
    ],
    "detail": [
      {"character": "AI", "text": "inside", "action": "enterInterior"}
    ]
  }
}`)

	houses, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	script := houses[0].Script
	if len(script.Home) != 2 || len(script.Detail) != 1 {
		t.Fatalf("script lengths = %d/%d, want 2/1", len(script.Home), len(script.Detail))
	}
	if script.Home[0].DelayMs != 2000 {
		t.Errorf("delay_ms = %d, want 2000", script.Home[0].DelayMs)
	}
	if script.Home[1].NavigateTo != "house/alpha" {
		t.Errorf("navigate_to = %q", script.Home[1].NavigateTo)
	}
	if script.Detail[0].Action != "enterInterior" {
		t.Errorf("action = %q", script.Detail[0].Action)
	}
}
