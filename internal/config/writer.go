package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultValuesPath is where gen-config writes unless told otherwise.
const DefaultValuesPath = "./generated_values.yaml"

// Marshal renders v as YAML with two-space indentation, matching Helm's own
// values files.
func (v Values) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteValues writes v to path, replacing any existing file. The file holds
// credentials, so it is only readable by the owner.
func WriteValues(path string, v Values) error {
	data, err := v.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write values file %s: %w", path, err)
	}
	return nil
}
