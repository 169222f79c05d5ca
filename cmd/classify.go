package cmd

import (
	"fmt"

	"github.com/benn-herrera/vbindgen/gen"
	"github.com/benn-herrera/vbindgen/loader"
	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
	"github.com/spf13/cobra"
)

var classifyIR string

var classifyCmd = &cobra.Command{
	Use:   "classify <prefix> <c-type>...",
	Short: "Show how C type strings are classified and mapped",
	Long: `Classifies each C type string as the generator would for the library with
the given prefix. Struct and enum names are only known when --ir points at
that library's IR document.`,
	Example: `  vbindgen classify sg_ "const char *" "float [4]"
  vbindgen classify --ir ir/sokol_gfx.json sg_ "const sg_desc *"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyIR, "ir", "", "IR document providing struct and enum names")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	mod := &model.Module{Prefix: args[0]}
	if classifyIR != "" {
		loaded, err := loader.LoadModule(classifyIR)
		if err != nil {
			return fmt.Errorf("loading IR: %w", err)
		}
		if loaded.Prefix != args[0] {
			warnf("%s declares prefix %q, classifying for %q", classifyIR, loaded.Prefix, args[0])
		}
		loaded.Prefix = args[0]
		mod = loaded
	}

	st := resolver.NewSymbolTable(mod, policy.Sokol())
	failed := 0
	for _, raw := range args[1:] {
		shape, err := st.Classify(raw)
		if err != nil {
			fmt.Printf("%q: %v\n", raw, err)
			failed++
			continue
		}
		cType, vType := gen.TypeNames(st, shape)
		fmt.Printf("%q: %s\n", raw, shape.Describe())
		if verbose || cType != vType {
			fmt.Printf("  C side: %s\n  V side: %s\n", orVoid(cType), orVoid(vType))
		} else {
			fmt.Printf("  V: %s\n", orVoid(vType))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d type(s) could not be classified", failed)
	}
	return nil
}

func orVoid(t string) string {
	if t == "" {
		return "(none)"
	}
	return t
}
