package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// apiFile is the subset of a preparsed .api.json file used for custom types
type apiFile struct {
	Types []json.RawMessage `json:"types"`
}

// ParseJSON reads custom type definitions from preparsed .api.json data.
// Each type is encoded as [name, field..., {"crc": "0x..."}] where a field is
// [type, name] for scalars, [type, name, N] for fixed arrays and
// [type, name, 0, lengthField] for variable arrays.
func ParseJSON(data []byte) ([]TypeDefinition, error) {
	var file apiFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse api json: %w", err)
	}

	defs := make([]TypeDefinition, 0, len(file.Types))
	for i, raw := range file.Types {
		def, err := parseJSONType(raw)
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseJSONType(raw json.RawMessage) (TypeDefinition, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return TypeDefinition{}, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}
	if len(parts) == 0 {
		return TypeDefinition{}, fmt.Errorf("%w: empty type entry", ErrMalformedDefinition)
	}

	var def TypeDefinition
	if err := json.Unmarshal(parts[0], &def.Name); err != nil {
		return TypeDefinition{}, fmt.Errorf("%w: type name must be a string", ErrMalformedDefinition)
	}
	def.Args = []string{}
	def.Types = []string{}
	def.Lengths = []Length{}

	for _, part := range parts[1:] {
		trimmed := bytes.TrimSpace(part)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var meta struct {
				CRC string `json:"crc"`
			}
			if err := json.Unmarshal(part, &meta); err != nil {
				return TypeDefinition{}, fmt.Errorf("type %s: %w: %v", def.Name, ErrMalformedDefinition, err)
			}
			def.CRC = meta.CRC
			continue
		}

		wireType, name, length, err := parseJSONField(part)
		if err != nil {
			return TypeDefinition{}, fmt.Errorf("type %s: %w", def.Name, err)
		}
		def.Args = append(def.Args, name)
		def.Types = append(def.Types, wireType)
		def.Lengths = append(def.Lengths, length)
	}
	return def, nil
}

func parseJSONField(raw json.RawMessage) (string, string, Length, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", "", Length{}, fmt.Errorf("%w: field must be an array: %v", ErrMalformedDefinition, err)
	}
	if len(parts) < 2 || len(parts) > 4 {
		return "", "", Length{}, fmt.Errorf("%w: field has %d elements", ErrMalformedDefinition, len(parts))
	}

	var wireType, name string
	if err := json.Unmarshal(parts[0], &wireType); err != nil {
		return "", "", Length{}, fmt.Errorf("%w: field type must be a string", ErrMalformedDefinition)
	}
	if err := json.Unmarshal(parts[1], &name); err != nil {
		return "", "", Length{}, fmt.Errorf("%w: field name must be a string", ErrMalformedDefinition)
	}
	if len(parts) == 2 {
		return wireType, name, Scalar(), nil
	}

	var size int
	if err := json.Unmarshal(parts[2], &size); err != nil {
		return "", "", Length{}, fmt.Errorf("%w: field %s: array size must be an integer", ErrMalformedDefinition, name)
	}
	arrayType := wireType + ArraySuffix

	if len(parts) == 4 {
		var lengthField string
		if err := json.Unmarshal(parts[3], &lengthField); err != nil {
			return "", "", Length{}, fmt.Errorf("%w: field %s: length field must be a string", ErrMalformedDefinition, name)
		}
		return arrayType, name, VariableLength(lengthField), nil
	}
	// A zero size without a length field is a trailing array Validate rejects.
	return arrayType, name, Fixed(size), nil
}
