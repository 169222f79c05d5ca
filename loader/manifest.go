package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultManifestName is the manifest file looked up when none is given.
const DefaultManifestName = "bindgen.toml"

// ErrUnknownPrefix reports a library whose prefix has no module mapping.
var ErrUnknownPrefix = errors.New("unknown library prefix")

// Manifest lists the libraries to bind and where their modules go.
type Manifest struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	ModuleRoot string    `toml:"module_root"`
	Lang       string    `toml:"lang"`
	Libraries  []Library `toml:"library"`
}

// Library is one [[library]] table.
type Library struct {
	Prefix string   `toml:"prefix"`
	IR     string   `toml:"ir"`
	Header string   `toml:"header"`
	Deps   []string `toml:"deps"`
}

// LoadManifest reads a TOML manifest. Relative paths inside it are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("module_root") || strings.TrimSpace(m.ModuleRoot) == "" {
		return nil, fmt.Errorf("%s: missing module_root", path)
	}
	if len(m.Libraries) == 0 {
		return nil, fmt.Errorf("%s: no [[library]] entries", path)
	}

	m.Path = path
	m.Root = filepath.Dir(path)
	if m.Lang == "" {
		m.Lang = "v"
	}

	seen := make(map[string]bool, len(m.Libraries))
	for i := range m.Libraries {
		lib := &m.Libraries[i]
		if strings.TrimSpace(lib.Prefix) == "" {
			return nil, fmt.Errorf("%s: library[%d]: missing prefix", path, i)
		}
		if !strings.HasSuffix(lib.Prefix, "_") {
			return nil, fmt.Errorf("%s: library[%d]: prefix %q must end with '_'", path, i, lib.Prefix)
		}
		if seen[lib.Prefix] {
			return nil, fmt.Errorf("%s: library[%d]: duplicate prefix %q", path, i, lib.Prefix)
		}
		seen[lib.Prefix] = true
		if strings.TrimSpace(lib.IR) == "" {
			return nil, fmt.Errorf("%s: library[%d] (%s): missing ir", path, i, lib.Prefix)
		}
	}
	return &m, nil
}

// Resolve turns a manifest-relative path into one usable from the
// current directory.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// ModuleRootDir returns the resolved output root.
func (m *Manifest) ModuleRootDir() string {
	return m.Resolve(m.ModuleRoot)
}

// Library returns the entry for prefix.
func (m *Manifest) Library(prefix string) (*Library, bool) {
	for i := range m.Libraries {
		if m.Libraries[i].Prefix == prefix {
			return &m.Libraries[i], true
		}
	}
	return nil, false
}
