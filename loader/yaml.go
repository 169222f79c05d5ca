package loader

import (
	"fmt"
	"os"

	"github.com/benn-herrera/vbindgen/model"
	"gopkg.in/yaml.v3"
)

// LoadModule reads and parses an IR document. JSON input is accepted
// as-is since it is a subset of YAML. The document is validated against
// the JSON Schema before unmarshalling.
func LoadModule(path string) (*model.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading IR: %w", err)
	}

	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	return LoadModuleNoValidate(data)
}

// LoadModuleNoValidate parses IR bytes without schema validation.
// Numeric item values keep their source spelling.
func LoadModuleNoValidate(data []byte) (*model.Module, error) {
	var mod model.Module
	if err := yaml.Unmarshal(data, &mod); err != nil {
		return nil, fmt.Errorf("parsing IR: %w", err)
	}
	return &mod, nil
}
