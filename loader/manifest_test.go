package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultManifestName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest_Testdata(t *testing.T) {
	path := filepath.Join("..", "testdata", "bindgen.toml")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ModuleRoot != "out/sokol" {
		t.Errorf("expected module_root 'out/sokol', got %q", m.ModuleRoot)
	}
	if m.Lang != "v" {
		t.Errorf("expected default lang 'v', got %q", m.Lang)
	}
	if len(m.Libraries) != 3 {
		t.Fatalf("expected 3 libraries, got %d", len(m.Libraries))
	}
	gl, ok := m.Library("sgl_")
	if !ok {
		t.Fatal("library sgl_ not found")
	}
	if strings.Join(gl.Deps, ",") != "slog_,sg_" {
		t.Errorf("expected deps in order, got %v", gl.Deps)
	}
	if _, ok := m.Library("sapp_"); ok {
		t.Error("unexpected library sapp_")
	}
}

func TestLoadManifest_Resolve(t *testing.T) {
	path := writeManifest(t, `
module_root = "src/sokol"

[[library]]
prefix = "sg_"
ir = "ir/sokol_gfx.json"
header = "/abs/sokol_gfx.h"
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := filepath.Dir(path)
	if got, want := m.ModuleRootDir(), filepath.Join(dir, "src", "sokol"); got != want {
		t.Errorf("ModuleRootDir() = %q, want %q", got, want)
	}
	lib := m.Libraries[0]
	if got, want := m.Resolve(lib.IR), filepath.Join(dir, "ir", "sokol_gfx.json"); got != want {
		t.Errorf("Resolve(ir) = %q, want %q", got, want)
	}
	if got := m.Resolve(lib.Header); got != "/abs/sokol_gfx.h" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := m.Resolve(""); got != "" {
		t.Errorf("empty path resolved to %q", got)
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad toml",
			content: "module_root = ",
			wantErr: "failed to parse TOML",
		},
		{
			name:    "missing module_root",
			content: "[[library]]\nprefix = \"sg_\"\nir = \"a.json\"\n",
			wantErr: "missing module_root",
		},
		{
			name:    "no libraries",
			content: "module_root = \"out\"\n",
			wantErr: "no [[library]] entries",
		},
		{
			name:    "missing prefix",
			content: "module_root = \"out\"\n[[library]]\nir = \"a.json\"\n",
			wantErr: "missing prefix",
		},
		{
			name:    "prefix without underscore",
			content: "module_root = \"out\"\n[[library]]\nprefix = \"sg\"\nir = \"a.json\"\n",
			wantErr: "must end with '_'",
		},
		{
			name:    "duplicate prefix",
			content: "module_root = \"out\"\n[[library]]\nprefix = \"sg_\"\nir = \"a.json\"\n[[library]]\nprefix = \"sg_\"\nir = \"b.json\"\n",
			wantErr: "duplicate prefix",
		},
		{
			name:    "missing ir",
			content: "module_root = \"out\"\n[[library]]\nprefix = \"sg_\"\n",
			wantErr: "missing ir",
		},
		{
			name:    "unknown key",
			content: "module_root = \"out\"\noutput = \"x\"\n[[library]]\nprefix = \"sg_\"\nir = \"a.json\"\n",
			wantErr: "unknown keys: output",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tt.content))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifest_NotFound(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}
