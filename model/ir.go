package model

import "strings"

// Declaration kinds as they appear in an IR document.
const (
	KindStruct = "struct"
	KindEnum   = "enum"
	KindConsts = "consts"
	KindFunc   = "func"
)

// Module is the IR produced for one library header.
type Module struct {
	Module      string   `yaml:"module"`
	Prefix      string   `yaml:"prefix"`
	DepPrefixes []string `yaml:"dep_prefixes,omitempty"`
	Decls       []Decl   `yaml:"decls"`
}

// Decl is a single top-level declaration. The payload fields that are
// populated depend on Kind.
type Decl struct {
	Kind   string  `yaml:"kind"`
	Name   string  `yaml:"name,omitempty"`
	IsDep  bool    `yaml:"is_dep"`
	Type   string  `yaml:"type,omitempty"`   // func only: raw C signature
	Fields []Field `yaml:"fields,omitempty"` // struct only
	Items  []Item  `yaml:"items,omitempty"`  // enum and consts
	Params []Param `yaml:"params,omitempty"` // func only
}

// Field is a struct member with its raw C type string.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Item is an enum member or a named constant. Enum members may omit Value.
type Item struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`
}

// Param is a function parameter.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func (d *Decl) IsStruct() bool { return d.Kind == KindStruct }
func (d *Decl) IsEnum() bool   { return d.Kind == KindEnum }
func (d *Decl) IsConsts() bool { return d.Kind == KindConsts }
func (d *Decl) IsFunc() bool   { return d.Kind == KindFunc }

// ResultType returns the return type of a func declaration, which is
// everything in the signature before the first '('.
func (d *Decl) ResultType() string {
	idx := strings.Index(d.Type, "(")
	if idx < 0 {
		return strings.TrimSpace(d.Type)
	}
	return strings.TrimSpace(d.Type[:idx])
}

// HasValue reports whether an enum item carries an explicit value.
func (it *Item) HasValue() bool {
	return it.Value != ""
}

// DepAlias returns the import alias for a dependency prefix, e.g. "sg_" -> "sg".
func DepAlias(prefix string) string {
	return strings.TrimSuffix(prefix, "_")
}

// CountKind returns the number of non-dependency declarations of a kind.
func (m *Module) CountKind(kind string) int {
	n := 0
	for i := range m.Decls {
		if m.Decls[i].Kind == kind && !m.Decls[i].IsDep {
			n++
		}
	}
	return n
}
