// Package project decodes an asc.yaml manifest: the set of source files a
// compilation unit comprises, which namespaces are active, and where a host
// application's FFI manifest lives, keeping a unit's file list out of the
// command line.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Manifest is the decoded shape of an asc.yaml file.
type Manifest struct {
	// Name is a human-readable identifier for the compilation unit, used
	// only in diagnostics and build logs.
	Name string `yaml:"name"`

	// Sources lists source file paths, relative to the manifest's own
	// directory, in compilation order.
	Sources []string `yaml:"sources"`

	// Namespaces lists namespace names that should be treated as
	// implicitly imported for every source file in this unit, the way a
	// project-wide "uses" clause would.
	Namespaces []string `yaml:"namespaces"`

	// FFIManifest optionally names a path (relative to the manifest's own
	// directory) describing which native registrations a host expects to
	// be present before these sources are compiled against it. asc itself
	// does not interpret this file's contents; it only threads the path
	// through for tooling that does.
	FFIManifest string `yaml:"ffi_manifest"`

	dir string // directory the manifest was loaded from, for resolving relative paths
}

// Load reads and decodes the asc.yaml manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("project: parsing manifest %s: %w", path, err)
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("project: manifest %s declares no sources", path)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// SourcePaths returns every entry of Sources resolved against the
// manifest's own directory, so callers never need to know where the
// manifest file itself lived.
func (m *Manifest) SourcePaths() []string {
	paths := make([]string, len(m.Sources))
	for i, s := range m.Sources {
		if filepath.IsAbs(s) {
			paths[i] = s
		} else {
			paths[i] = filepath.Join(m.dir, s)
		}
	}
	return paths
}

// FFIManifestPath resolves FFIManifest against the manifest's directory; it
// returns "" if no FFI manifest was declared.
func (m *Manifest) FFIManifestPath() string {
	if m.FFIManifest == "" {
		return ""
	}
	if filepath.IsAbs(m.FFIManifest) {
		return m.FFIManifest
	}
	return filepath.Join(m.dir, m.FFIManifest)
}
