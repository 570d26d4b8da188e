package java

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressClass() Class {
	return Class{
		Package:   "io.fd.vpp.jvpp.types",
		Name:      "Address",
		TypeName:  "address",
		InputFile: "vpe.api.json",
		Docs:      " * {\n *     \"name\": \"address\"\n * }",
		Fields: []Field{
			{Name: "isIpv6", Type: "byte"},
			{Name: "address", Type: "byte[]"},
		},
	}
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator("jvppgen")
	assert.Equal(t, "java", g.Language())
	assert.Equal(t, ".java", g.FileExtension())
}

func TestGenerator_ClassLayout(t *testing.T) {
	// Test: Package, javadoc and fields are rendered in order
	code, err := NewGenerator("jvppgen").Generate(addressClass())
	require.NoError(t, err)

	expected := `package io.fd.vpp.jvpp.types;

/**
 * <p>This class represents address type definition.
 * <br>It was generated by jvppgen based on vpe.api.json preparsed data:
 * <pre>
 * {
 *     "name": "address"
 * }
 * </pre>
 */
public final class Address {
    public byte isIpv6;
    public byte[] address;
`
	assert.True(t, strings.HasPrefix(string(code), expected), string(code))
	assert.True(t, strings.HasSuffix(string(code), "}\n"))
}

func TestGenerator_StructuralMethods(t *testing.T) {
	// Test: Each field kind uses the matching comparison
	c := Class{
		Package: "p",
		Name:    "Bar",
		Fields: []Field{
			{Name: "count", Type: "int"},
			{Name: "foo", Type: "p.Foo"},
			{Name: "data", Type: "short[]"},
			{Name: "foos", Type: "p.Foo[]"},
		},
	}

	code, err := NewGenerator("jvppgen").Generate(c)
	require.NoError(t, err)
	result := string(code)

	// hashCode
	assert.Contains(t, result, "return java.util.Objects.hash(count, foo, java.util.Arrays.hashCode(data), java.util.Arrays.deepHashCode(foos));")

	// equals
	assert.Contains(t, result, "final Bar other = (Bar) o;")
	assert.Contains(t, result, "if (this.count != other.count) {")
	assert.Contains(t, result, "if (!java.util.Objects.equals(this.foo, other.foo)) {")
	assert.Contains(t, result, "if (!java.util.Arrays.equals(this.data, other.data)) {")
	assert.Contains(t, result, "if (!java.util.Arrays.deepEquals(this.foos, other.foos)) {")

	// toString
	assert.Contains(t, result, `return "Bar{" +`)
	assert.Contains(t, result, `"count=" + count +`)
	assert.Contains(t, result, `", data=" + java.util.Arrays.toString(data) +`)
	assert.Contains(t, result, `", foos=" + java.util.Arrays.deepToString(foos) +`)
	assert.Contains(t, result, `"}";`)
}

func TestGenerator_FieldCount(t *testing.T) {
	// Test: Exactly one public field is rendered per field
	for n := 0; n < 20; n++ {
		c := Class{Package: "p", Name: "T"}
		for i := 0; i < n; i++ {
			c.Fields = append(c.Fields, Field{Name: "f" + strings.Repeat("x", i), Type: "int"})
		}

		code, err := NewGenerator("jvppgen").Generate(c)
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(string(code), "    public int f"))
	}
}

func TestGenerator_EmptyClass(t *testing.T) {
	// Test: A class without fields still compiles to valid structural methods
	code, err := NewGenerator("jvppgen").Generate(Class{Package: "p", Name: "Empty"})
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "return java.util.Objects.hash();")
	assert.NotContains(t, result, "other")
	assert.Contains(t, result, `return "Empty{" +`)
}

func TestGenerator_Deterministic(t *testing.T) {
	// Test: Rendering the same class twice gives identical bytes
	first, err := NewGenerator("jvppgen").Generate(addressClass())
	require.NoError(t, err)
	second, err := NewGenerator("jvppgen").Generate(addressClass())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerator_InvalidClass(t *testing.T) {
	tests := []struct {
		name string
		c    Class
	}{
		{"no name", Class{Package: "p"}},
		{"empty field", Class{Name: "A", Fields: []Field{{Name: "", Type: "int"}}}},
		{"duplicate field", Class{Name: "A", Fields: []Field{{Name: "a", Type: "int"}, {Name: "a", Type: "long"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator("jvppgen").Generate(tt.c)
			assert.Error(t, err)
		})
	}
}
