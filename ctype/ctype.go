// Package ctype parses the raw C type strings found in IR documents into a
// structured form. The grammar covers the type vocabulary of the supported
// headers: optionally const base types, pointers, function pointers with a
// flat argument list, and fixed-size arrays.
package ctype

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a parsed C type.
//
//	const char *                 Const, Base="char", Stars=1
//	float [4][4]                 Base="float", Dims=[4 4]
//	void (*)(const char *, int)  Base="void", Func with two params
//
// The trailing parts are parsed as a plain sequence; Parse rejects a
// function pointer that also carries a name or dimensions.
type Expr struct {
	Const bool      `parser:"@'const'?"`
	Base  string    `parser:"@Ident"`
	Stars []string  `parser:"@'*'*"`
	Func  *FuncTail `parser:"@@?"`
	Name  string    `parser:"@Ident?"`
	Dims  []string  `parser:"( '[' @Int ']' )*"`
}

// FuncTail is the "(*)(args)" part of a function pointer type.
type FuncTail struct {
	Params []*Expr `parser:"'(' '*' ')' '(' ( @@ ( ',' @@ )* )? ')'"`
}

var (
	typeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[*()\[\],]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	typeParser = participle.MustBuild[Expr](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// Parse parses a raw C type string.
func Parse(raw string) (*Expr, error) {
	expr, err := typeParser.ParseString("", raw)
	if err != nil {
		return nil, fmt.Errorf("parsing C type %q: %w", raw, err)
	}
	if err := expr.check(); err != nil {
		return nil, fmt.Errorf("parsing C type %q: %w", raw, err)
	}
	return expr, nil
}

func (e *Expr) check() error {
	if e.Func == nil {
		return nil
	}
	if e.Name != "" || len(e.Dims) > 0 {
		return fmt.Errorf("function pointer with a declarator name or dimensions")
	}
	for _, p := range e.Func.Params {
		if err := p.check(); err != nil {
			return err
		}
	}
	return nil
}

// PointerDepth returns the number of '*' after the base type.
func (e *Expr) PointerDepth() int {
	return len(e.Stars)
}

// IsFuncPtr reports whether the type is a function pointer.
func (e *Expr) IsFuncPtr() bool {
	return e.Func != nil
}

// IsArray reports whether the type has array dimensions.
func (e *Expr) IsArray() bool {
	return len(e.Dims) > 0
}

// Elem returns the element type of an array, i.e. the type without its
// dimensions and declarator name.
func (e *Expr) Elem() *Expr {
	return &Expr{Const: e.Const, Base: e.Base, Stars: e.Stars}
}

// Result returns the return type of a function pointer.
func (e *Expr) Result() *Expr {
	return &Expr{Const: e.Const, Base: e.Base, Stars: e.Stars}
}

// IsVoidParams reports whether a function pointer's parameter list is
// empty or the single keyword "void".
func (f *FuncTail) IsVoidParams() bool {
	if len(f.Params) == 0 {
		return true
	}
	p := f.Params[0]
	return len(f.Params) == 1 && p.Base == "void" && !p.Const && len(p.Stars) == 0
}

// String renders the type in the spacing convention of the IR
// ("const char *", "float [4]", "void (*)(void *)").
func (e *Expr) String() string {
	var b strings.Builder
	if e.Const {
		b.WriteString("const ")
	}
	b.WriteString(e.Base)
	if len(e.Stars) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Repeat("*", len(e.Stars)))
	}
	if e.Func != nil {
		if len(e.Stars) == 0 {
			b.WriteString(" ")
		}
		b.WriteString("(*)(")
		for i, p := range e.Func.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(")")
		return b.String()
	}
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if len(e.Dims) > 0 {
		if e.Name == "" {
			b.WriteString(" ")
		}
		for _, d := range e.Dims {
			fmt.Fprintf(&b, "[%s]", d)
		}
	}
	return b.String()
}
