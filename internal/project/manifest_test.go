package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/angelscript-go/asc/internal/project"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "asc.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadResolvesRelativeSources(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
sources:
  - main.as
  - lib/util.as
namespaces:
  - Game
  - Game::Util
ffi_manifest: ffi.yaml
`)

	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q, want demo", m.Name)
	}
	got := m.SourcePaths()
	want := []string{filepath.Join(dir, "main.as"), filepath.Join(dir, "lib/util.as")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SourcePaths() = %v, want %v", got, want)
	}
	if len(m.Namespaces) != 2 || m.Namespaces[0] != "Game" {
		t.Errorf("Namespaces = %v", m.Namespaces)
	}
	if want := filepath.Join(dir, "ffi.yaml"); m.FFIManifestPath() != want {
		t.Errorf("FFIManifestPath() = %q, want %q", m.FFIManifestPath(), want)
	}
}

func TestLoadRejectsEmptySources(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "name: demo\nsources: []\n")

	if _, err := project.Load(path); err == nil {
		t.Fatal("expected Load to reject a manifest with no sources")
	}
}

func TestFFIManifestPathEmptyWhenUnset(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "name: demo\nsources:\n  - main.as\n")

	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.FFIManifestPath() != "" {
		t.Errorf("FFIManifestPath() = %q, want empty", m.FFIManifestPath())
	}
}
