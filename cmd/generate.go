package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/benn-herrera/vbindgen/gen"
	"github.com/benn-herrera/vbindgen/loader"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
	"github.com/benn-herrera/vbindgen/validate"
	"github.com/spf13/cobra"
)

var (
	genOutput string
	genLang   string
	genDryRun bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [manifest.toml]",
	Short: "Generate binding modules for every library in a manifest",
	Long:  "Generates one module per [[library]] entry of the manifest (default " + loader.DefaultManifestName + ") and copies the C headers next to them.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output module root (overrides module_root from the manifest)")
	generateCmd.Flags().StringVar(&genLang, "lang", "", "Generator to run (overrides lang from the manifest)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show what would be generated without writing")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	manifestPath := loader.DefaultManifestName
	if len(args) == 1 {
		manifestPath = args[0]
	}

	if !quiet {
		fmt.Printf("Generating from %s\n", manifestPath)
	}

	m, err := loader.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	if genLang != "" {
		m.Lang = genLang
	}
	outRoot := m.ModuleRootDir()
	if genOutput != "" {
		outRoot = genOutput
	}

	files, err := buildLibraries(m, policy.Sokol())
	if err != nil {
		return err
	}

	written, err := writeOutputs(outRoot, files, genDryRun)
	if err != nil {
		return err
	}
	if !quiet && !genDryRun {
		fmt.Printf("Generated %d files in %s\n", written, outRoot)
	}
	return nil
}

// buildLibraries generates every library of the manifest in order. A
// library whose prefix the policy does not know is skipped with a
// warning. Errors from all libraries are collected; if there are any, no
// files are returned.
func buildLibraries(m *loader.Manifest, pol *policy.Table) ([]*gen.OutputFile, error) {
	g, ok := gen.Get(m.Lang)
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (available: %s)", m.Lang, strings.Join(gen.All(), ", "))
	}
	if verbose {
		fmt.Printf("  Running generator: %s\n", g.Name())
	}

	var all []*gen.OutputFile
	errs := &gen.ErrorList{}
	for i := range m.Libraries {
		lib := &m.Libraries[i]
		moduleName, ok := pol.ModuleName(lib.Prefix)
		if !ok {
			warnf("skipping generation for %s prefix (%v)", lib.Prefix, loader.ErrUnknownPrefix)
			continue
		}
		if !quiet {
			fmt.Printf("  %s => %s\n", lib.IR, moduleName)
		}
		files, err := buildLibrary(m, lib, pol, g)
		if err != nil {
			errs.Add(fmt.Errorf("%s: %w", lib.Prefix, err))
			continue
		}
		all = append(all, files...)
	}
	if err := errs.Err(); err != nil {
		return nil, fmt.Errorf("generation failed:\n%w", err)
	}
	return all, nil
}

func buildLibrary(m *loader.Manifest, lib *loader.Library, pol *policy.Table, g gen.Generator) ([]*gen.OutputFile, error) {
	irPath := m.Resolve(lib.IR)
	mod, err := loader.LoadModule(irPath)
	if err != nil {
		return nil, fmt.Errorf("loading IR: %w", err)
	}
	if mod.Prefix != lib.Prefix {
		return nil, fmt.Errorf("%s declares prefix %q, manifest expects %q", lib.IR, mod.Prefix, lib.Prefix)
	}
	// The manifest's dependency list wins over the one recorded in the IR.
	if lib.Deps != nil {
		mod.DepPrefixes = lib.Deps
	}

	st := resolver.NewSymbolTable(mod, pol)
	if result := validate.Validate(mod, st); !result.IsValid() {
		return nil, fmt.Errorf("validation failed:\n%s", result.Error())
	}

	files, err := g.Generate(gen.NewContext(mod, pol, irPath))
	if err != nil {
		return nil, err
	}

	if lib.Header != "" {
		data, err := os.ReadFile(m.Resolve(lib.Header))
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		files = append(files, &gen.OutputFile{
			Path:    path.Join("c", filepath.Base(lib.Header)),
			Content: data,
		})
	}
	return files, nil
}

// writeOutputs writes files below root and returns how many were written.
// Each file is first staged in a temporary file next to its target, and
// targets are only replaced once every file has been staged, so a failed
// write leaves existing outputs unchanged.
func writeOutputs(root string, files []*gen.OutputFile, dryRun bool) (int, error) {
	if dryRun {
		for _, f := range files {
			fmt.Printf("  Would write: %s\n", filepath.Join(root, filepath.FromSlash(f.Path)))
		}
		return 0, nil
	}

	type staged struct{ tmp, target string }
	var pending []staged
	discard := func(rest []staged) {
		for _, s := range rest {
			os.Remove(s.tmp)
		}
	}

	for _, f := range files {
		outPath := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			discard(pending)
			return 0, fmt.Errorf("creating directory for %s: %w", outPath, err)
		}
		tmp, err := stageFile(outPath, f.Content)
		if err != nil {
			discard(pending)
			return 0, err
		}
		pending = append(pending, staged{tmp: tmp, target: outPath})
	}

	var written int
	for i, s := range pending {
		if err := os.Rename(s.tmp, s.target); err != nil {
			discard(pending[i:])
			return written, fmt.Errorf("replacing %s: %w", s.target, err)
		}
		written++
		if verbose {
			fmt.Printf("  Wrote: %s\n", s.target)
		}
	}
	return written, nil
}

// stageFile writes content to a new temporary file in target's directory
// and returns its path.
func stageFile(target string, content []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return tmp.Name(), nil
}
