package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benn-herrera/vbindgen/gen"
	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
)

// ValidationError represents a single semantic validation error.
type ValidationError struct {
	Path    string // e.g., "decls[3].fields[1].type"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult holds all validation errors.
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) addError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Validate performs semantic validation on a parsed IR module.
// st may be nil, which skips type classification checks.
func Validate(mod *model.Module, st *resolver.SymbolTable) *ValidationResult {
	result := &ValidationResult{}

	if !strings.HasSuffix(mod.Prefix, "_") {
		result.addError("prefix", fmt.Sprintf("prefix %q must end with '_'", mod.Prefix))
	}
	depSeen := make(map[string]bool)
	for i, dep := range mod.DepPrefixes {
		path := fmt.Sprintf("dep_prefixes[%d]", i)
		if dep == mod.Prefix {
			result.addError(path, fmt.Sprintf("module cannot depend on its own prefix %q", dep))
		}
		if depSeen[dep] {
			result.addError(path, fmt.Sprintf("duplicate dependency prefix %q", dep))
		}
		depSeen[dep] = true
	}

	var pol *policy.Table
	if st != nil {
		pol = st.Policy()
	}

	// Check for duplicate declaration names
	seen := make(map[string]int)
	for i := range mod.Decls {
		d := &mod.Decls[i]
		declPath := fmt.Sprintf("decls[%d]", i)

		switch d.Kind {
		case model.KindStruct, model.KindEnum, model.KindFunc:
			if d.Name == "" {
				result.addError(declPath+".name", fmt.Sprintf("%s declaration has no name", d.Kind))
				continue
			}
			if prev, ok := seen[d.Name]; ok {
				result.addError(declPath+".name", fmt.Sprintf("duplicate declaration %q (first at decls[%d])", d.Name, prev))
			}
			seen[d.Name] = i
			if !d.IsDep && !strings.HasPrefix(d.Name, mod.Prefix) {
				result.addError(declPath+".name", fmt.Sprintf("%q does not start with the module prefix %q and is not marked is_dep", d.Name, mod.Prefix))
			}
		case model.KindConsts:
		default:
			result.addError(declPath+".kind", fmt.Sprintf("unknown declaration kind %q", d.Kind))
			continue
		}

		switch d.Kind {
		case model.KindStruct:
			validateStruct(result, declPath, d)
		case model.KindEnum:
			validateEnum(result, declPath, d, pol)
		case model.KindConsts:
			validateConsts(result, declPath, d)
		case model.KindFunc:
			validateFunc(result, declPath, d)
		}

		if st != nil && !d.IsDep && !(pol.Ignored(d.Name) && !d.IsConsts()) {
			classifyDecl(result, declPath, d, st)
		}
	}

	return result
}

func validateStruct(result *ValidationResult, declPath string, d *model.Decl) {
	fieldSeen := make(map[string]bool)
	for j, f := range d.Fields {
		fieldPath := fmt.Sprintf("%s.fields[%d]", declPath, j)
		if f.Name == "" {
			result.addError(fieldPath+".name", "field has no name")
		} else if fieldSeen[f.Name] {
			result.addError(fieldPath+".name", fmt.Sprintf("duplicate field %q in struct %q", f.Name, d.Name))
		}
		fieldSeen[f.Name] = true
		if strings.TrimSpace(f.Type) == "" {
			result.addError(fieldPath+".type", fmt.Sprintf("field %q has no type", f.Name))
		}
	}
}

func validateEnum(result *ValidationResult, declPath string, d *model.Decl, pol *policy.Table) {
	if len(d.Items) == 0 {
		result.addError(declPath+".items", fmt.Sprintf("enum %q has no members", d.Name))
		return
	}
	itemSeen := make(map[string]bool)
	for j, it := range d.Items {
		itemPath := fmt.Sprintf("%s.items[%d]", declPath, j)
		if itemSeen[it.Name] {
			result.addError(itemPath+".name", fmt.Sprintf("duplicate enum member %q", it.Name))
		}
		itemSeen[it.Name] = true

		name := it.Name
		if pol != nil {
			name = pol.Override(policy.Sym(it.Name))
		}
		if gen.EnumItemBase(name) == "" {
			result.addError(itemPath+".name", fmt.Sprintf("enum member %q has no name after the enum prefix", name))
		}
	}
}

func validateConsts(result *ValidationResult, declPath string, d *model.Decl) {
	for j, it := range d.Items {
		itemPath := fmt.Sprintf("%s.items[%d]", declPath, j)
		if it.Name == "" {
			result.addError(itemPath+".name", "constant has no name")
		}
		if !it.HasValue() {
			result.addError(itemPath+".value", fmt.Sprintf("constant %q has no value", it.Name))
		}
	}
}

func validateFunc(result *ValidationResult, declPath string, d *model.Decl) {
	if !strings.Contains(d.Type, "(") {
		result.addError(declPath+".type", fmt.Sprintf("function %q has signature %q without a parameter list", d.Name, d.Type))
	} else if d.ResultType() == "" {
		result.addError(declPath+".type", fmt.Sprintf("function %q has no result type", d.Name))
	}
	paramSeen := make(map[string]bool)
	for j, p := range d.Params {
		paramPath := fmt.Sprintf("%s.params[%d]", declPath, j)
		if p.Name == "" {
			result.addError(paramPath+".name", "parameter has no name")
		} else if paramSeen[p.Name] {
			result.addError(paramPath+".name", fmt.Sprintf("duplicate parameter %q in function %q", p.Name, d.Name))
		}
		paramSeen[p.Name] = true
	}
}

// classifyDecl runs every type of d through the classifier, with
// overrides applied the same way the generator applies them.
func classifyDecl(result *ValidationResult, declPath string, d *model.Decl, st *resolver.SymbolTable) {
	pol := st.Policy()
	check := func(path string, key policy.Key, raw string) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		if _, err := st.Classify(pol.OverrideOr(key, raw)); err != nil {
			var ce *resolver.ClassifyError
			if errors.As(err, &ce) {
				result.addError(path, fmt.Sprintf("unsupported type %q: %s", ce.Type, ce.Reason))
				return
			}
			result.addError(path, err.Error())
		}
	}

	switch d.Kind {
	case model.KindStruct:
		for j, f := range d.Fields {
			if strings.HasPrefix(pol.Override(policy.Sym(f.Name)), "_") {
				continue
			}
			check(fmt.Sprintf("%s.fields[%d].type", declPath, j), policy.Member(d.Name, f.Name), f.Type)
		}
	case model.KindFunc:
		for j, p := range d.Params {
			check(fmt.Sprintf("%s.params[%d].type", declPath, j), policy.Member(d.Name, p.Name), p.Type)
		}
		if strings.Contains(d.Type, "(") {
			check(declPath+".type", policy.Member(d.Name, policy.Result), d.ResultType())
		}
	}
}
