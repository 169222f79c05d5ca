package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/benn-herrera/vbindgen/policy"
)

// Namer converts C identifiers of one library into V identifiers.
// Identifiers that do not start with the library's own prefix are treated
// as imported from a dependency module and qualified with its alias.
type Namer struct {
	Prefix string
	Policy *policy.Table
}

// NewNamer creates a Namer for the library with the given C prefix.
func NewNamer(prefix string, pol *policy.Table) *Namer {
	return &Namer{Prefix: prefix, Policy: pol}
}

// StructType converts a C struct name to a V type name.
// e.g., "sg_pass_action" → "PassAction", "slog_logger_t" → "slog.Logger"
func (n *Namer) StructType(cName string) string {
	return pascalTypeName(cName, n.Prefix)
}

// EnumType converts a C enum name to a V enum type name. Unlike struct
// names, enum names are checked against the reserved words.
func (n *Namer) EnumType(cName string) string {
	return n.Policy.Escape(pascalTypeName(cName, n.Prefix))
}

// Snake converts a function, field, parameter or constant name: lowercase,
// own prefix stripped, reserved words escaped.
// e.g., "sg_draw" → "draw", "SG_INVALID_ID" → "invalid_id"
func (n *Namer) Snake(name string) string {
	return n.Policy.Escape(stripPrefix(strings.ToLower(name), n.Prefix))
}

// EnumItem converts a C enum constant to a V enum member name by dropping
// the library prefix and enum name segments.
// e.g., "SG_PIXELFORMAT_RGBA8" → "rgba8", "_SG_PIXELFORMAT_DEFAULT" → "default",
// "SG_UNIFORMTYPE_4F" → "_4f"
func (n *Namer) EnumItem(name string) string {
	return n.Policy.Escape(EnumItemBase(name))
}

// EnumItemBase is EnumItem without reserved word escaping.
func EnumItemBase(name string) string {
	parts := strings.Split(strings.TrimLeft(name, "_"), "_")
	if len(parts) <= 2 {
		return ""
	}
	out := strings.Join(parts[2:], "_")
	if out == "" {
		return ""
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return strings.ToLower(out)
}

// pascalTypeName implements the shared struct/enum rename:
// prefix_bla_blub(_t) → (dep.)BlaBlub
func pascalTypeName(cName, prefix string) string {
	parts := strings.Split(strings.ToLower(cName), "_")
	var b strings.Builder
	if !strings.HasPrefix(cName, prefix) {
		b.WriteString(parts[0])
		b.WriteString(".")
	}
	for _, part := range parts[1:] {
		// '_t' typedef suffix
		if part == "t" {
			continue
		}
		b.WriteString(Capitalize(part))
	}
	return b.String()
}

// Capitalize upper-cases the first letter of a segment and lower-cases
// the rest. Segments that start with a digit ("3d") are only lower-cased.
func Capitalize(segment string) string {
	if segment == "" || !unicode.IsLetter(rune(segment[0])) {
		return strings.ToLower(segment)
	}
	return cases.Title(language.Und).String(segment)
}

func stripPrefix(s, prefix string) string {
	if prefix != "" && strings.HasPrefix(s, prefix) {
		return s[len(prefix):]
	}
	return s
}
