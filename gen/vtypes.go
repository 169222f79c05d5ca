package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benn-herrera/vbindgen/policy"
	"github.com/benn-herrera/vbindgen/resolver"
)

// vWriter renders declarations of one module as V source into b.
// Classification problems are collected in errs; rendering continues so
// that every problem of a module is reported in one pass.
type vWriter struct {
	b     *strings.Builder
	st    *resolver.SymbolTable
	pol   *policy.Table
	names *Namer
	errs  *ErrorList
}

func newVWriter(b *strings.Builder, st *resolver.SymbolTable, pol *policy.Table) *vWriter {
	return &vWriter{
		b:     b,
		st:    st,
		pol:   pol,
		names: NewNamer(st.Prefix, pol),
		errs:  &ErrorList{},
	}
}

// TypeNames renders a classified shape as the C-side and V-side type
// spellings used for the module st was built for.
func TypeNames(st *resolver.SymbolTable, s resolver.Shape) (cType, vType string) {
	w := newVWriter(&strings.Builder{}, st, st.Policy())
	return w.cType(s), w.vType(s)
}

// classify classifies raw and records a failure against symbol.
func (w *vWriter) classify(symbol, kind, raw string) (resolver.Shape, bool) {
	shape, err := w.st.Classify(raw)
	if err != nil {
		var ce *resolver.ClassifyError
		if errors.As(err, &ce) {
			ce.Symbol = symbol
			ce.Kind = kind
		}
		w.errs.Add(err)
		return resolver.Shape{}, false
	}
	return shape, true
}

func (w *vWriter) fail(symbol, kind string, shape resolver.Shape, reason string) {
	w.errs.Add(&resolver.ClassifyError{Symbol: symbol, Kind: kind, Type: shape.Raw, Reason: reason})
}

// cType returns the C-compatible V type of a shape as used in foreign
// declarations and struct layouts. Void maps to "".
func (w *vWriter) cType(s resolver.Shape) string {
	switch s.Kind {
	case resolver.ShapePrim:
		return w.pol.PrimType(s.Name)
	case resolver.ShapeStruct:
		return w.names.StructType(s.Name)
	case resolver.ShapeEnum:
		return w.names.EnumType(s.Name)
	case resolver.ShapeVoidPtr:
		return "voidptr"
	case resolver.ShapeString:
		return "&u8"
	case resolver.ShapePrimPtr:
		return "&" + w.pol.PrimType(s.Name)
	case resolver.ShapeStructPtr:
		return "&" + w.names.StructType(s.Name)
	case resolver.ShapeFuncPtr:
		return w.funcPtrType(s)
	case resolver.ShapeArray1D:
		return fmt.Sprintf("[%d]%s", s.Dims[0], w.cType(*s.Elem))
	case resolver.ShapeArray2D:
		return fmt.Sprintf("[%d][%d]%s", s.Dims[0], s.Dims[1], w.cType(*s.Elem))
	default:
		return ""
	}
}

// vType returns the V type used in wrapper signatures: strings become
// managed V strings, everything else matches cType.
func (w *vWriter) vType(s resolver.Shape) string {
	if s.Kind == resolver.ShapeString {
		return "string"
	}
	return w.cType(s)
}

func (w *vWriter) funcPtrType(s resolver.Shape) string {
	args := make([]string, len(s.Params))
	for i, p := range s.Params {
		args[i] = w.cType(p)
	}
	res := w.cType(*s.Result)
	if res == "" {
		return fmt.Sprintf("fn (%s)", strings.Join(args, ", "))
	}
	return fmt.Sprintf("fn (%s) %s", strings.Join(args, ", "), res)
}

// fieldDefault returns the initializer for a struct field of the given
// shape, or "" when V's zero value is already the default.
func (w *vWriter) fieldDefault(s resolver.Shape) (string, error) {
	switch s.Kind {
	case resolver.ShapePrim:
		def := w.pol.PrimDefault(s.Name)
		if def == "0" || def == "false" {
			return "", nil
		}
		return def, nil
	case resolver.ShapeStruct:
		return "", nil
	case resolver.ShapeEnum:
		return w.enumDefault(s.Name)
	case resolver.ShapeVoidPtr, resolver.ShapeString, resolver.ShapePrimPtr,
		resolver.ShapeStructPtr, resolver.ShapeFuncPtr:
		return "unsafe { nil }", nil
	case resolver.ShapeArray1D:
		return w.cType(s) + "{}", nil
	case resolver.ShapeArray2D:
		elemDef, err := w.elemDefault(*s.Elem)
		if err != nil {
			return "", err
		}
		inner := fmt.Sprintf("[%d]%s", s.Dims[1], w.cType(*s.Elem))
		return fmt.Sprintf("%s{init: %s{init: %s}}", w.cType(s), inner, elemDef), nil
	}
	return "", fmt.Errorf("no default value for %s", s.Kind)
}

// elemDefault returns the explicit default of an array element.
func (w *vWriter) elemDefault(s resolver.Shape) (string, error) {
	switch s.Kind {
	case resolver.ShapePrim:
		return w.pol.PrimDefault(s.Name), nil
	case resolver.ShapeStruct:
		return w.cType(s) + "{}", nil
	case resolver.ShapeEnum:
		return w.enumDefault(s.Name)
	case resolver.ShapeVoidPtr:
		return "unsafe { nil }", nil
	}
	return "", fmt.Errorf("no default value for array element %s", s.Kind)
}

func (w *vWriter) enumDefault(enumName string) (string, error) {
	first, ok := w.st.EnumDefault(enumName)
	if !ok {
		return "", fmt.Errorf("enum %s has no members", enumName)
	}
	return "." + w.names.EnumItem(first), nil
}
