package cmd

import (
	"fmt"

	"github.com/benn-herrera/vbindgen/loader"
	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
	"github.com/benn-herrera/vbindgen/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [ir-file...]",
	Short: "Check IR documents and classify every type without generating",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	pol := policy.Sokol()
	failed := 0
	for _, irPath := range args {
		if err := validateFile(irPath, pol); err != nil {
			fmt.Printf("%s:\n%v\n", irPath, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	if !quiet {
		fmt.Println("Validation passed.")
	}
	return nil
}

func validateFile(irPath string, pol *policy.Table) error {
	if !quiet {
		fmt.Printf("Validating %s\n", irPath)
	}

	mod, err := loader.LoadModule(irPath)
	if err != nil {
		return fmt.Errorf("loading IR: %w", err)
	}

	if verbose {
		fmt.Printf("  Module: %s (prefix %s)\n", mod.Module, mod.Prefix)
		fmt.Printf("  Structs: %d\n", mod.CountKind(model.KindStruct))
		fmt.Printf("  Enums: %d\n", mod.CountKind(model.KindEnum))
		fmt.Printf("  Functions: %d\n", mod.CountKind(model.KindFunc))
	}
	if _, ok := pol.ModuleName(mod.Prefix); !ok {
		warnf("%v: %s", loader.ErrUnknownPrefix, mod.Prefix)
	}

	result := validate.Validate(mod, resolver.NewSymbolTable(mod, pol))
	if !result.IsValid() {
		return fmt.Errorf("semantic validation failed:\n%s", result.Error())
	}
	return nil
}
