package policy

import "sort"

// Result is the member sentinel used to override a function's return type.
const Result = "RESULT"

// Key addresses an override entry: a bare symbol, or a member of it
// (struct field, function parameter, or Result).
type Key struct {
	Symbol string
	Member string
}

// Sym builds a key for a bare symbol.
func Sym(symbol string) Key {
	return Key{Symbol: symbol}
}

// Member builds a key for a member of symbol.
func Member(symbol, member string) Key {
	return Key{Symbol: symbol, Member: member}
}

// String renders the key in the dotted "symbol.member" form.
func (k Key) String() string {
	if k.Member == "" {
		return k.Symbol
	}
	return k.Symbol + "." + k.Member
}

// Table holds the read-only lookup tables that steer code generation.
// A Table is never mutated after construction.
type Table struct {
	ModuleNames   map[string]string // C prefix -> V module name
	CSourcePaths  map[string]string // C prefix -> companion C source file
	Ignores       map[string]bool
	Callbacks     map[string]bool // functions exposed as raw C callbacks
	Overrides     map[Key]string
	Keywords      map[string]bool
	PrimTypes     map[string]string // C primitive -> V type
	PrimDefaults  map[string]string // C primitive -> V default literal
	HelperPrelude []string          // lines emitted after the imports of every module
}

// Lookup returns the override registered for key, if any.
func (t *Table) Lookup(key Key) (string, bool) {
	v, ok := t.Overrides[key]
	return v, ok
}

// Override returns the override for key, or the key's own text.
func (t *Table) Override(key Key) string {
	if v, ok := t.Overrides[key]; ok {
		return v
	}
	return key.String()
}

// OverrideOr returns the override for key, or def.
func (t *Table) OverrideOr(key Key, def string) string {
	if v, ok := t.Overrides[key]; ok {
		return v
	}
	return def
}

// Ignored reports whether a symbol is dropped from generation entirely.
func (t *Table) Ignored(name string) bool {
	return t.Ignores[name]
}

// IsCallback reports whether a function is forwarded as a raw C callback.
func (t *Table) IsCallback(name string) bool {
	return t.Callbacks[name]
}

// Escape prepends an underscore to identifiers that collide with a
// reserved word of the target language.
func (t *Table) Escape(id string) string {
	if t.Keywords[id] {
		return "_" + id
	}
	return id
}

// IsPrim reports whether c is a primitive C type name.
func (t *Table) IsPrim(c string) bool {
	_, ok := t.PrimTypes[c]
	return ok
}

// PrimType maps a primitive C type name to its V type.
func (t *Table) PrimType(c string) string {
	return t.PrimTypes[c]
}

// PrimDefault returns the V default literal for a primitive C type.
func (t *Table) PrimDefault(c string) string {
	return t.PrimDefaults[c]
}

// ModuleName returns the V module name for a C prefix.
func (t *Table) ModuleName(prefix string) (string, bool) {
	name, ok := t.ModuleNames[prefix]
	return name, ok
}

// Prims returns the primitive C type names, sorted.
func (t *Table) Prims() []string {
	names := make([]string, 0, len(t.PrimTypes))
	for name := range t.PrimTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prefixes returns the known library prefixes, sorted.
func (t *Table) Prefixes() []string {
	names := make([]string, 0, len(t.ModuleNames))
	for name := range t.ModuleNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
