package resolver

import (
	"errors"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"github.com/benn-herrera/vbindgen/ctype"
	"github.com/benn-herrera/vbindgen/model"
	"github.com/benn-herrera/vbindgen/policy"
)

// SymbolTable holds the struct and enum names known while generating one
// module. It is built from every declaration of the module, dependency
// declarations included, and must not be shared between modules.
type SymbolTable struct {
	Prefix    string
	policy    *policy.Table
	structs   map[string]bool
	enums     map[string]bool
	enumItems map[string][]string
}

// NewSymbolTable runs the registration pre-pass over mod.
func NewSymbolTable(mod *model.Module, pol *policy.Table) *SymbolTable {
	st := &SymbolTable{
		Prefix:    mod.Prefix,
		policy:    pol,
		structs:   make(map[string]bool),
		enums:     make(map[string]bool),
		enumItems: make(map[string][]string),
	}
	for i := range mod.Decls {
		d := &mod.Decls[i]
		switch d.Kind {
		case model.KindStruct:
			st.structs[d.Name] = true
		case model.KindEnum:
			st.enums[d.Name] = true
			items := make([]string, 0, len(d.Items))
			for _, it := range d.Items {
				items = append(items, pol.Override(policy.Sym(it.Name)))
			}
			st.enumItems[d.Name] = items
		}
	}
	return st
}

// Policy returns the policy tables the symbol table classifies against.
func (st *SymbolTable) Policy() *policy.Table {
	return st.policy
}

func (st *SymbolTable) IsStruct(name string) bool { return st.structs[name] }
func (st *SymbolTable) IsEnum(name string) bool   { return st.enums[name] }

// EnumItems returns the C member names of an enum in declaration order,
// with overrides applied.
func (st *SymbolTable) EnumItems(name string) []string {
	return st.enumItems[name]
}

// EnumDefault returns the first declared member of an enum, which is the
// default value of fields of that enum type.
func (st *SymbolTable) EnumDefault(name string) (string, bool) {
	items := st.enumItems[name]
	if len(items) == 0 {
		return "", false
	}
	return items[0], true
}

// Classify parses a raw C type string and assigns it a Shape. Tests run in
// a fixed priority order: void, primitive, struct, enum, void pointer,
// string pointer, struct or primitive pointer, function pointer, arrays.
// Errors are always *ClassifyError.
func (st *SymbolTable) Classify(raw string) (Shape, error) {
	expr, err := ctype.Parse(raw)
	if err != nil {
		return Shape{}, &ClassifyError{Type: raw, Reason: "not a recognized C type expression"}
	}
	shape, err := st.classifyExpr(expr)
	if err != nil {
		var ce *ClassifyError
		if errors.As(err, &ce) {
			ce.Type = raw
			return Shape{}, ce
		}
		return Shape{}, &ClassifyError{Type: raw, Reason: err.Error()}
	}
	shape.Raw = raw
	return shape, nil
}

func (st *SymbolTable) classifyExpr(e *ctype.Expr) (Shape, error) {
	switch {
	case e.IsFuncPtr():
		return st.classifyFuncPtr(e)
	case e.IsArray():
		return st.classifyArray(e)
	case e.Name != "":
		return Shape{}, &ClassifyError{Reason: fmt.Sprintf("unexpected declarator name %q", e.Name)}
	}
	return st.classifyScalar(e)
}

func (st *SymbolTable) classifyScalar(e *ctype.Expr) (Shape, error) {
	raw := e.String()
	switch e.PointerDepth() {
	case 0:
		if e.Const {
			return Shape{}, &ClassifyError{Reason: "const qualified value type"}
		}
		switch {
		case e.Base == "void":
			return Shape{Kind: ShapeVoid, Raw: raw}, nil
		case st.policy.IsPrim(e.Base):
			return Shape{Kind: ShapePrim, Name: e.Base, Raw: raw}, nil
		case st.structs[e.Base]:
			return Shape{Kind: ShapeStruct, Name: e.Base, Raw: raw}, nil
		case st.enums[e.Base]:
			return Shape{Kind: ShapeEnum, Name: e.Base, Raw: raw}, nil
		}
		return Shape{}, &ClassifyError{Reason: fmt.Sprintf("unknown type name %q", e.Base)}
	case 1:
		switch {
		case e.Base == "void":
			return Shape{Kind: ShapeVoidPtr, Const: e.Const, Raw: raw}, nil
		// Any const char pointer is taken to be a NUL-terminated string.
		case e.Base == "char" && e.Const:
			return Shape{Kind: ShapeString, Const: true, Name: "char", Raw: raw}, nil
		case st.structs[e.Base]:
			return Shape{Kind: ShapeStructPtr, Const: e.Const, Name: e.Base, Raw: raw}, nil
		case st.policy.IsPrim(e.Base):
			return Shape{Kind: ShapePrimPtr, Const: e.Const, Name: e.Base, Raw: raw}, nil
		}
		return Shape{}, &ClassifyError{Reason: fmt.Sprintf("pointer to unsupported type %q", e.Base)}
	}
	return Shape{}, &ClassifyError{Reason: "multi-level pointers are not supported"}
}

func (st *SymbolTable) classifyFuncPtr(e *ctype.Expr) (Shape, error) {
	res, err := st.classifyScalar(e.Result())
	if err != nil {
		return Shape{}, err
	}
	shape := Shape{Kind: ShapeFuncPtr, Result: &res, Raw: e.String()}
	if e.Func.IsVoidParams() {
		return shape, nil
	}
	for _, p := range e.Func.Params {
		if p.IsFuncPtr() || p.IsArray() || p.Name != "" {
			return Shape{}, &ClassifyError{Reason: fmt.Sprintf("unsupported function pointer argument %q", p.String())}
		}
		ps, err := st.classifyScalar(p)
		if err != nil {
			return Shape{}, err
		}
		if ps.Kind == ShapeVoid {
			return Shape{}, &ClassifyError{Reason: "void in a non-empty argument list"}
		}
		shape.Params = append(shape.Params, ps)
	}
	return shape, nil
}

func (st *SymbolTable) classifyArray(e *ctype.Expr) (Shape, error) {
	elem, err := st.classifyScalar(e.Elem())
	if err != nil {
		return Shape{}, err
	}
	switch elem.Kind {
	case ShapePrim, ShapeStruct, ShapeEnum, ShapeVoidPtr:
	default:
		return Shape{}, &ClassifyError{Reason: fmt.Sprintf("unsupported array element %s", elem.Kind)}
	}

	dims := make([]int, 0, len(e.Dims))
	for _, d := range e.Dims {
		n, err := parseDim(d)
		if err != nil {
			return Shape{}, &ClassifyError{Reason: err.Error()}
		}
		dims = append(dims, n)
	}

	shape := Shape{Elem: &elem, Dims: dims, Raw: e.String()}
	switch len(dims) {
	case 1:
		shape.Kind = ShapeArray1D
	case 2:
		shape.Kind = ShapeArray2D
	default:
		return Shape{}, &ClassifyError{Reason: fmt.Sprintf("%d-dimensional arrays are not supported", len(dims))}
	}
	return shape, nil
}

func parseDim(s string) (int, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid array size %q", s)
	}
	n, err := safecast.Conv[int](u)
	if err != nil {
		return 0, fmt.Errorf("array size %s out of range: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("zero-sized array")
	}
	return n, nil
}
