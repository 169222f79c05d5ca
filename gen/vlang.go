package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
)

func init() {
	Register("v", func() Generator { return &VGenerator{} })
}

// VGenerator produces one V module file per library:
// <module>/<module>.c.v
type VGenerator struct{}

func (g *VGenerator) Name() string { return "v" }

func (g *VGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	mod := ctx.Module
	content, err := RenderModule(mod, ctx.Policy)
	if err != nil {
		if ctx.IRPath != "" {
			return nil, fmt.Errorf("module %s (%s): %w", mod.Module, ctx.IRPath, err)
		}
		return nil, fmt.Errorf("module %s: %w", mod.Module, err)
	}
	return []*OutputFile{
		{Path: ModuleFilePath(VModuleName(mod, ctx.Policy)), Content: []byte(content)},
	}, nil
}

// VModuleName returns the V module name for mod: the policy's name for
// its prefix, or the IR module name when the prefix is not mapped.
func VModuleName(mod *model.Module, pol *policy.Table) string {
	if name, ok := pol.ModuleName(mod.Prefix); ok {
		return name
	}
	return mod.Module
}

// ModuleFilePath returns the path of a V module file relative to the
// module root.
func ModuleFilePath(module string) string {
	return module + "/" + module + ".c.v"
}

// RenderModule assembles the complete V source for mod. The output is
// built in three stages: header and module line, imports and helpers,
// then the declarations in source order. If any declaration fails, the
// returned error is an *ErrorList holding every problem found and no
// text is returned.
func RenderModule(mod *model.Module, pol *policy.Table) (string, error) {
	var b strings.Builder

	b.WriteString("// machine generated, do not edit\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "module %s\n", VModuleName(mod, pol))

	if err := writeImports(&b, mod, pol); err != nil {
		return "", err
	}
	for _, line := range pol.HelperPrelude {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	st := resolver.NewSymbolTable(mod, pol)
	w := newVWriter(&b, st, pol)
	for i := range mod.Decls {
		d := &mod.Decls[i]
		if d.IsDep {
			continue
		}
		switch {
		case d.IsConsts():
			w.emitConsts(d)
		case pol.Ignored(d.Name):
			continue
		case d.IsStruct():
			w.emitStruct(d)
		case d.IsEnum():
			w.emitEnum(d)
		case d.IsFunc():
			w.emitFunc(d)
		default:
			w.errs.Add(fmt.Errorf("%s: unknown declaration kind %q", d.Name, d.Kind))
		}
	}

	if err := w.errs.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeImports writes one import per dependency prefix, aliased to the
// prefix without its trailing underscore.
func writeImports(b *strings.Builder, mod *model.Module, pol *policy.Table) error {
	for _, dep := range mod.DepPrefixes {
		depModule, ok := pol.ModuleName(dep)
		if !ok {
			return fmt.Errorf("unknown dependency prefix %q", dep)
		}
		fmt.Fprintf(b, "import %s as %s\n", depModule, model.DepAlias(dep))
	}
	b.WriteString("\n")
	return nil
}
