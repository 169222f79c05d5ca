package cmd

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/benn-herrera/vbindgen/loader"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/spf13/cobra"
)

var (
	initModuleRoot string
	initPrefixes   []string
	initOutput     string
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter " + loader.DefaultManifestName,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initModuleRoot, "module-root", "sokol-v/src/sokol", "Directory the generated modules go to")
	initCmd.Flags().StringSliceVar(&initPrefixes, "prefixes", nil, "Library prefixes to list (default: all known)")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", ".", "Output directory")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing manifest")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	manifestPath := filepath.Join(initOutput, loader.DefaultManifestName)
	if !quiet {
		fmt.Printf("Writing %s\n", manifestPath)
	}

	if _, err := os.Stat(manifestPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", manifestPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", manifestPath, err)
	}

	content, err := scaffoldManifest(policy.Sokol(), initModuleRoot, initPrefixes)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(initOutput, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	if !quiet {
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Produce the IR documents listed in the manifest")
		fmt.Println("  2. Fill in deps for libraries that use types of other libraries")
		fmt.Printf("  3. Run: vbindgen generate %s\n", manifestPath)
	}
	return nil
}

// scaffoldManifest renders a manifest with one [[library]] per prefix.
// IR and header names are derived from the library's C source path.
func scaffoldManifest(pol *policy.Table, moduleRoot string, prefixes []string) (string, error) {
	if len(prefixes) == 0 {
		prefixes = pol.Prefixes()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "module_root = %q\n", moduleRoot)
	b.WriteString("lang = \"v\"\n")
	for _, prefix := range prefixes {
		src, ok := pol.CSourcePaths[prefix]
		if !ok {
			return "", fmt.Errorf("%w: %s", loader.ErrUnknownPrefix, prefix)
		}
		base := strings.TrimSuffix(path.Base(src), path.Ext(src))
		b.WriteString("\n[[library]]\n")
		fmt.Fprintf(&b, "prefix = %q\n", prefix)
		fmt.Fprintf(&b, "ir = %q\n", "ir/"+base+".json")
		fmt.Fprintf(&b, "header = %q\n", path.Join(path.Dir(src), base+".h"))
		b.WriteString("# deps = [\"slog_\"]\n")
	}
	return b.String(), nil
}
