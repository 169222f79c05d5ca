package resolver

import (
	"fmt"
	"strings"
)

// ShapeKind is the category a C type string is classified into.
type ShapeKind int

const (
	ShapeVoid ShapeKind = iota
	ShapePrim
	ShapeStruct
	ShapeEnum
	ShapeVoidPtr
	ShapeString
	ShapePrimPtr
	ShapeStructPtr
	ShapeFuncPtr
	ShapeArray1D
	ShapeArray2D
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeVoid:
		return "void"
	case ShapePrim:
		return "primitive"
	case ShapeStruct:
		return "struct"
	case ShapeEnum:
		return "enum"
	case ShapeVoidPtr:
		return "void pointer"
	case ShapeString:
		return "string pointer"
	case ShapePrimPtr:
		return "primitive pointer"
	case ShapeStructPtr:
		return "struct pointer"
	case ShapeFuncPtr:
		return "function pointer"
	case ShapeArray1D:
		return "1d array"
	case ShapeArray2D:
		return "2d array"
	default:
		return "unknown"
	}
}

// Shape is a classified C type.
type Shape struct {
	Kind   ShapeKind
	Name   string  // C name of the primitive, struct or enum; empty otherwise
	Const  bool    // pointer shapes: pointee is const
	Elem   *Shape  // arrays: element shape
	Dims   []int   // arrays: sizes, outermost first
	Params []Shape // function pointers; empty for "(void)"
	Result *Shape  // function pointers
	Raw    string
}

// IsPointer reports whether values of this shape are pointers at the C level.
func (s Shape) IsPointer() bool {
	switch s.Kind {
	case ShapeVoidPtr, ShapeString, ShapePrimPtr, ShapeStructPtr, ShapeFuncPtr:
		return true
	}
	return false
}

// IsArray reports whether the shape is a fixed-size array.
func (s Shape) IsArray() bool {
	return s.Kind == ShapeArray1D || s.Kind == ShapeArray2D
}

// Describe renders a short human-readable description, e.g.
// "1d array of primitive float [4]".
func (s Shape) Describe() string {
	switch {
	case s.IsArray():
		dims := make([]string, len(s.Dims))
		for i, d := range s.Dims {
			dims[i] = fmt.Sprintf("[%d]", d)
		}
		return fmt.Sprintf("%s of %s %s", s.Kind, s.Elem.Describe(), strings.Join(dims, ""))
	case s.Kind == ShapeFuncPtr:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Describe()
		}
		return fmt.Sprintf("function pointer (%s) -> %s", strings.Join(params, ", "), s.Result.Describe())
	case s.Name != "":
		return fmt.Sprintf("%s %s", s.Kind, s.Name)
	default:
		return s.Kind.String()
	}
}

// ClassifyError reports a type string outside the supported vocabulary.
type ClassifyError struct {
	Symbol string // declaration (and member) the type belongs to, e.g. "sg_desc.buffer"
	Kind   string // declaration kind: struct, func, ...
	Type   string // the raw C type string
	Reason string
}

func (e *ClassifyError) Error() string {
	var b strings.Builder
	if e.Symbol != "" {
		fmt.Fprintf(&b, "%s", e.Symbol)
		if e.Kind != "" {
			fmt.Fprintf(&b, " (%s)", e.Kind)
		}
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "unsupported type %q", e.Type)
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}
