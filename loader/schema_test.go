package loader

import (
	"strings"
	"testing"
)

func TestValidateSchema_ValidMinimal(t *testing.T) {
	yaml := `
module: sokol_time
prefix: stm_
decls:
  - kind: func
    name: stm_setup
    type: void (void)
    params: []
    is_dep: false
`
	if err := ValidateSchema([]byte(yaml)); err != nil {
		t.Errorf("expected valid schema, got error: %v", err)
	}
}

func TestValidateSchema_EmptyDecls(t *testing.T) {
	yaml := `
module: sokol_glue
prefix: sglue_
decls: []
`
	if err := ValidateSchema([]byte(yaml)); err != nil {
		t.Errorf("expected empty decl list to be valid, got: %v", err)
	}
}

func TestValidateSchema_MissingPrefix(t *testing.T) {
	yaml := `
module: sokol_time
decls: []
`
	if err := ValidateSchema([]byte(yaml)); err == nil {
		t.Error("expected error for missing 'prefix' key")
	}
}

func TestValidateSchema_BadPrefix(t *testing.T) {
	tests := []string{"stm", "STM_", "_stm_", "s-tm_"}
	for _, prefix := range tests {
		yaml := "module: sokol_time\nprefix: " + prefix + "\ndecls: []\n"
		if err := ValidateSchema([]byte(yaml)); err == nil {
			t.Errorf("expected error for prefix %q", prefix)
		}
	}
}

func TestValidateSchema_InvalidKind(t *testing.T) {
	yaml := `
module: sokol_gfx
prefix: sg_
decls:
  - kind: typedef
    name: sg_thing
`
	if err := ValidateSchema([]byte(yaml)); err == nil {
		t.Error("expected error for invalid kind 'typedef'")
	}
}

func TestValidateSchema_KindRequirements(t *testing.T) {
	tests := []struct {
		name string
		decl string
	}{
		{"struct without fields", "  - kind: struct\n    name: sg_color\n"},
		{"struct without name", "  - kind: struct\n    fields: []\n"},
		{"enum without items", "  - kind: enum\n    name: sg_action\n"},
		{"consts without items", "  - kind: consts\n"},
		{"func without type", "  - kind: func\n    name: sg_setup\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := "module: sokol_gfx\nprefix: sg_\ndecls:\n" + tt.decl
			if err := ValidateSchema([]byte(yaml)); err == nil {
				t.Errorf("expected schema error for %s", tt.name)
			}
		})
	}
}

func TestValidateSchema_FieldNeedsType(t *testing.T) {
	yaml := `
module: sokol_gfx
prefix: sg_
decls:
  - kind: struct
    name: sg_color
    fields:
      - name: r
`
	if err := ValidateSchema([]byte(yaml)); err == nil {
		t.Error("expected error for field without type")
	}
}

func TestValidateSchema_ItemValues(t *testing.T) {
	yaml := `
module: sokol_gfx
prefix: sg_
decls:
  - kind: consts
    items:
      - name: SG_INVALID_ID
        value: 0
      - name: SG_MAX_MIPMAPS
        value: "16"
      - name: SG_SCALE
        value: 1.5
`
	if err := ValidateSchema([]byte(yaml)); err != nil {
		t.Errorf("numeric and string values should both validate: %v", err)
	}

	bad := `
module: sokol_gfx
prefix: sg_
decls:
  - kind: consts
    items:
      - name: SG_FLAGS
        value: [1, 2]
`
	if err := ValidateSchema([]byte(bad)); err == nil {
		t.Error("expected error for list value")
	}
}

func TestValidateSchema_BadIdentifier(t *testing.T) {
	yaml := `
module: sokol_gfx
prefix: sg_
decls:
  - kind: struct
    name: "sg color"
    fields: []
`
	if err := ValidateSchema([]byte(yaml)); err == nil {
		t.Error("expected error for identifier with a space")
	}
}

func TestValidateSchema_DuplicateDepPrefixes(t *testing.T) {
	yaml := `
module: sokol_gl
prefix: sgl_
dep_prefixes: [sg_, sg_]
decls: []
`
	if err := ValidateSchema([]byte(yaml)); err == nil {
		t.Error("expected error for duplicate dep_prefixes")
	}
}

func TestValidateSchemaJSON(t *testing.T) {
	doc := `{"module": "sokol_log", "prefix": "slog_", "decls": [
		{"kind": "func", "name": "slog_func", "type": "void (void *)",
		 "params": [{"name": "user_data", "type": "void *"}], "is_dep": false}
	]}`
	if err := ValidateSchemaJSON([]byte(doc)); err != nil {
		t.Errorf("expected valid JSON document, got: %v", err)
	}
	if err := ValidateSchemaJSON([]byte(`{"module": "x"`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestSchemaJSON(t *testing.T) {
	s := SchemaJSON()
	for _, want := range []string{`"$schema"`, `"decls"`, `"dep_prefixes"`, `"is_dep"`} {
		if !strings.Contains(s, want) {
			t.Errorf("schema missing %s", want)
		}
	}
}

func TestConvertYAMLToJSON(t *testing.T) {
	in := map[string]interface{}{
		"a": 1,
		"b": []interface{}{int64(2), uint64(3), "x"},
	}
	out := convertYAMLToJSON(in).(map[string]interface{})
	if _, ok := out["a"].(float64); !ok {
		t.Errorf("int not converted: %T", out["a"])
	}
	list := out["b"].([]interface{})
	if _, ok := list[0].(float64); !ok {
		t.Errorf("int64 not converted: %T", list[0])
	}
	if _, ok := list[1].(float64); !ok {
		t.Errorf("uint64 not converted: %T", list[1])
	}
	if list[2] != "x" {
		t.Errorf("string changed: %v", list[2])
	}
}
