package types

import (
	"errors"

	"github.com/okra-platform/jvppgen/internal/codegen"
	"github.com/okra-platform/jvppgen/internal/naming"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// Kind is the array cardinality of a field
type Kind int

const (
	Scalar Kind = iota
	FixedArray
	VariableArray
)

func (k Kind) String() string {
	switch k {
	case FixedArray:
		return "fixed-array"
	case VariableArray:
		return "variable-array"
	default:
		return "scalar"
	}
}

// FieldBinding is a field of a custom type resolved against the registry
type FieldBinding struct {
	// WireName is the field name in the API definition
	WireName string

	// WireType is the registry key of the field type
	WireType string

	// HostName is the Java field name
	HostName string

	// HostType is the Java field type
	HostType string

	Kind Kind

	// Size is the element count of a fixed array
	Size int

	// LengthField names the field holding the element count of a variable array
	LengthField string

	// LengthType is the wire type of LengthField
	LengthType string
}

// ResolveFields resolves every field of def, in order. A field whose type is
// not registered fails with codegen.ErrUnregisteredType and a variable array
// whose length field is unknown fails with schema.ErrMissingLengthField.
func ResolveFields(reg *codegen.Registry, def schema.TypeDefinition) ([]FieldBinding, error) {
	bindings := make([]FieldBinding, 0, len(def.Args))
	for _, field := range def.Fields() {
		hostType, err := reg.HostType(field.Type)
		if err != nil {
			return nil, fieldError(def.Name, field.Name, field.Type, err)
		}

		binding := FieldBinding{
			WireName: field.Name,
			WireType: field.Type,
			HostName: naming.FieldName(field.Name),
			HostType: hostType,
		}

		switch {
		case field.Length.Variable:
			at := def.IndexOf(field.Length.Field)
			if at < 0 {
				return nil, &codegen.TypeError{Type: def.Name, Field: field.Name, Key: field.Length.Field, Err: schema.ErrMissingLengthField}
			}
			binding.Kind = VariableArray
			binding.LengthField = field.Length.Field
			binding.LengthType = def.Types[at]
		case field.Length.Size > 0:
			binding.Kind = FixedArray
			binding.Size = field.Length.Size
		}

		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// fieldError attaches the type and field to a registry failure
func fieldError(typeName, fieldName, key string, err error) error {
	if errors.Is(err, codegen.ErrUnregisteredType) {
		err = codegen.ErrUnregisteredType
	}
	return &codegen.TypeError{Type: typeName, Field: fieldName, Key: key, Err: err}
}
