package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads custom type definitions from path, choosing the front-end by
// file extension: .json (preparsed api), .api (api source) or .gql/.graphql.
func Load(path string) ([]TypeDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var defs []TypeDefinition
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		defs, err = ParseJSON(data)
	case ".api":
		defs, err = ParseAPI(string(data))
	case ".gql", ".graphql":
		defs, err = ParseSDL(string(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return defs, nil
}
