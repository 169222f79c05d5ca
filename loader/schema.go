package loader

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaJSON is the embedded JSON Schema for IR documents.
var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://vbindgen.dev/schemas/ir/v1",
  "title": "vbindgen IR module",
  "description": "Declarations parsed from one C library header.",
  "type": "object",
  "required": ["module", "prefix", "decls"],
  "properties": {
    "module": { "type": "string", "pattern": "^[a-z][a-z0-9_]*$" },
    "prefix": { "$ref": "#/$defs/prefix" },
    "dep_prefixes": {
      "type": "array",
      "items": { "$ref": "#/$defs/prefix" },
      "uniqueItems": true
    },
    "decls": {
      "type": "array",
      "items": { "$ref": "#/$defs/decl" }
    }
  },
  "$defs": {
    "prefix": { "type": "string", "pattern": "^[a-z][a-z0-9]*_$" },
    "identifier": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" },
    "decl": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": { "type": "string", "enum": ["struct", "enum", "consts", "func"] },
        "name": { "$ref": "#/$defs/identifier" },
        "is_dep": { "type": "boolean" },
        "type": { "type": "string", "minLength": 1 },
        "fields": {
          "type": "array",
          "items": { "$ref": "#/$defs/typed_name" }
        },
        "params": {
          "type": "array",
          "items": { "$ref": "#/$defs/typed_name" }
        },
        "items": {
          "type": "array",
          "items": { "$ref": "#/$defs/item" }
        }
      },
      "allOf": [
        {
          "if": { "properties": { "kind": { "const": "struct" } } },
          "then": { "required": ["name", "fields"] }
        },
        {
          "if": { "properties": { "kind": { "const": "enum" } } },
          "then": { "required": ["name", "items"] }
        },
        {
          "if": { "properties": { "kind": { "const": "consts" } } },
          "then": { "required": ["items"] }
        },
        {
          "if": { "properties": { "kind": { "const": "func" } } },
          "then": { "required": ["name", "type"] }
        }
      ]
    },
    "typed_name": {
      "type": "object",
      "required": ["name", "type"],
      "properties": {
        "name": { "$ref": "#/$defs/identifier" },
        "type": { "type": "string", "minLength": 1 }
      }
    },
    "item": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": { "$ref": "#/$defs/identifier" },
        "value": { "type": ["string", "number"] }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	// Decode the schema JSON into a generic value first
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// SchemaJSON returns the embedded IR JSON Schema.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema validates raw YAML (or JSON) bytes against the IR schema.
func ValidateSchema(data []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	err := compiledSchema.Validate(convertYAMLToJSON(raw))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// convertYAMLToJSON converts YAML-parsed values to JSON-compatible types.
// yaml.v3 decodes numbers as int, int64, uint64 or float64; the validator
// works on float64.
func convertYAMLToJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return v
	}
}

// ValidateSchemaJSON validates a JSON document against the schema (for testing).
func ValidateSchemaJSON(jsonData []byte) error {
	var raw interface{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	err := compiledSchema.Validate(raw)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
