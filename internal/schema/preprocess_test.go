package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessAPI_TypeDeclarations(t *testing.T) {
	// Test plan:
	// - typeonly define with and without flags
	// - typedef declarations
	// - fixed, variable and trailing arrays
	// - bare custom type names are qualified
	// - messages and comments are dropped

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "typeonly define",
			input: `typeonly define address {
    u8 is_ipv6;
    u8 address[16];
};`,
			expected: `type address {
  is_ipv6: u8
  address: u8 @array(size: 16)
}
`,
		},
		{
			name: "typeonly with flags",
			input: `typeonly manual_print manual_endian define fib_path {
  u32 sw_if_index;
  u8 n_labels;
  vl_api_fib_mpls_label_t label_stack[n_labels];
};`,
			expected: `type fib_path {
  sw_if_index: u32
  n_labels: u8
  label_stack: vl_api_fib_mpls_label_t @array(length: "n_labels")
}
`,
		},
		{
			name: "typedef with bare custom type",
			input: `typedef prefix {
  address addr;
  u8 len;
};`,
			expected: `type prefix {
  addr: vl_api_address_t
  len: u8
}
`,
		},
		{
			name:     "trailing array",
			input:    `typedef blob { u32 n; u8 data[]; };`,
			expected: "type blob {\n  n: u32\n  data: u8 @array(size: 0)\n}\n",
		},
		{
			name: "messages and comments are dropped",
			input: `/* header
 * comment */
define show_version { u32 context; };
// typedef commented { u8 a; };
typedef kept { u8 a; /* inline */ };`,
			expected: "type kept {\n  a: u8\n}\n",
		},
		{
			name:     "empty body",
			input:    `typedef empty { };`,
			expected: "type empty\n",
		},
		{
			name:     "no types",
			input:    `define foo { u32 context; };`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := PreprocessAPI(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPreprocessAPI_MultipleTypesKeepOrder(t *testing.T) {
	// Test: Types are emitted in declaration order separated by a blank line
	input := `typedef b { u8 x; };
typeonly define a { vl_api_b_t inner; };`

	result, err := PreprocessAPI(input)
	require.NoError(t, err)
	assert.Equal(t, "type b {\n  x: u8\n}\n\ntype a {\n  inner: vl_api_b_t\n}\n", result)
}

func TestPreprocessAPI_UnsupportedStatement(t *testing.T) {
	// Test: Statements that are not `type name[len]` are rejected
	_, err := PreprocessAPI(`typedef bad { u8 data[len=3]; };`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDefinition)
	assert.True(t, strings.Contains(err.Error(), "type bad"))
}

func TestParseAPI(t *testing.T) {
	// Test: .api sources parse into definitions with array suffixes applied
	input := `typeonly define foo {
  u32 count;
  u16 values[count];
  u8 mac[6];
};`

	defs, err := ParseAPI(input)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	foo := defs[0]
	assert.Equal(t, "foo", foo.Name)
	assert.Equal(t, []string{"count", "values", "mac"}, foo.Args)
	assert.Equal(t, []string{"u32", "u16[]", "u8[]"}, foo.Types)
	assert.Equal(t, []Length{Scalar(), VariableLength("count"), Fixed(6)}, foo.Lengths)
	assert.NoError(t, Validate(foo))
}

func TestParseAPI_NoTypes(t *testing.T) {
	// Test: A source without custom types yields an empty, non-nil list
	defs, err := ParseAPI(`define foo { u32 context; };`)
	require.NoError(t, err)
	assert.NotNil(t, defs)
	assert.Empty(t, defs)
}
