package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AnyUserName/spritepack/internal/export"
	"github.com/AnyUserName/spritepack/internal/hasher"
	"github.com/AnyUserName/spritepack/internal/manifest"
)

func writeLayoutFixture(t *testing.T, dir string, atlasBytes []byte) string {
	t.Helper()
	const atlasFile = "sheet.32x16.deadbeef.png"
	if err := os.WriteFile(filepath.Join(dir, atlasFile), atlasBytes, 0o644); err != nil {
		t.Fatal(err)
	}
	doc := &export.Document{
		Version:     export.Version,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Manifest:    "sheet.json",
		Atlas: export.AtlasInfo{
			Path:   atlasFile,
			Width:  32,
			Height: 16,
			Format: "Rgba8UnormSrgb",
			Hash:   hasher.Content(atlasBytes, 0),
		},
		Regions: []export.Region{
			{Path: "hero.png", Index: 0, Min: manifest.Vec2{}, Max: manifest.Vec2{X: 8, Y: 8}},
		},
		Stats: export.Stats{Entries: 1, Regions: 1},
	}
	path := filepath.Join(dir, "sheet.layout.json")
	if err := export.WriteJSON(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspectLayoutVerifiesAtlas(t *testing.T) {
	dir := t.TempDir()
	path := writeLayoutFixture(t, dir, []byte("atlas image bytes"))

	if err := runInspectLayout(path); err != nil {
		t.Fatalf("runInspectLayout: %v", err)
	}
}

func TestInspectLayoutDetectsModifiedAtlas(t *testing.T) {
	dir := t.TempDir()
	path := writeLayoutFixture(t, dir, []byte("atlas image bytes"))
	doc, err := export.ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, doc.Atlas.Path), []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = verifyAtlasFile(doc, dir)
	if err == nil || !strings.Contains(err.Error(), "hash mismatch") {
		t.Fatalf("err = %v, want hash mismatch", err)
	}
}

func TestInspectLayoutDetectsMissingAtlas(t *testing.T) {
	dir := t.TempDir()
	path := writeLayoutFixture(t, dir, []byte("atlas image bytes"))
	doc, err := export.ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(dir, doc.Atlas.Path)); err != nil {
		t.Fatal(err)
	}
	if err := verifyAtlasFile(doc, dir); err == nil {
		t.Fatal("expected missing atlas error")
	}
}

func TestVerifyAtlasFileTruncatedHash(t *testing.T) {
	dir := t.TempDir()
	data := []byte("atlas image bytes")
	if err := os.WriteFile(filepath.Join(dir, "a.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	doc := &export.Document{
		Atlas: export.AtlasInfo{Path: "a.png", Hash: hasher.Content(data, 8)},
	}
	if err := verifyAtlasFile(doc, dir); err != nil {
		t.Fatalf("truncated hash should verify: %v", err)
	}
}
