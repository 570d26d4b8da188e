package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLength_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Length
		isArray bool
	}{
		{"scalar", `[0, false]`, Scalar(), false},
		{"fixed", `[16, false]`, Fixed(16), true},
		{"variable", `["count", true]`, VariableLength("count"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Length
			require.NoError(t, json.Unmarshal([]byte(tt.input), &l))
			assert.Equal(t, tt.want, l)
			assert.Equal(t, tt.isArray, l.IsArray())

			// Test: Encoding gives back the same pair
			data, err := json.Marshal(l)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(data))
		})
	}
}

func TestLength_JSONErrors(t *testing.T) {
	for _, input := range []string{`{}`, `[1]`, `[1, false, 2]`, `["count", false]`, `[3, true]`, `[1, "yes"]`} {
		t.Run(input, func(t *testing.T) {
			var l Length
			assert.Error(t, json.Unmarshal([]byte(input), &l))
		})
	}
}

func TestTypeDefinition_Helpers(t *testing.T) {
	def := TypeDefinition{
		Name:    "ip4_prefix",
		Args:    []string{"count", "octets"},
		Types:   []string{"u8", "u8[]"},
		Lengths: []Length{Scalar(), VariableLength("count")},
	}

	// Test: Wire name follows the vl_api_<name>_t convention
	assert.Equal(t, "vl_api_ip4_prefix_t", def.WireName())

	// Test: Fields zips the positional slices
	fields := def.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Name: "octets", Type: "u8[]", Length: VariableLength("count")}, fields[1])

	// Test: IndexOf finds fields by name
	assert.Equal(t, 0, def.IndexOf("count"))
	assert.Equal(t, 1, def.IndexOf("octets"))
	assert.Equal(t, -1, def.IndexOf("missing"))
}

func TestElementType(t *testing.T) {
	assert.Equal(t, "u8", ElementType("u8[]"))
	assert.Equal(t, "vl_api_foo_t", ElementType("vl_api_foo_t"))
	assert.True(t, IsArrayType("vl_api_foo_t[]"))
	assert.False(t, IsArrayType("u32"))
}
