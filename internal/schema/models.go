package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ArraySuffix marks the array form of a wire type (e.g. "u8[]").
const ArraySuffix = "[]"

// TypeDefinition is a custom (typeonly) type declared in an API file.
// Args, Types and Lengths are positionally paired: field i is named Args[i],
// has wire type Types[i] and array length Lengths[i].
type TypeDefinition struct {
	Name    string   `json:"name"`
	Args    []string `json:"args"`
	Types   []string `json:"types"`
	Lengths []Length `json:"lengths"`
	CRC     string   `json:"crc,omitempty"`
	Doc     string   `json:"doc,omitempty"`
}

// Length says whether a field is an array and how many elements it holds.
// A zero Length is a scalar. Fixed arrays have a positive Size, variable
// arrays name the sibling field holding the runtime element count.
type Length struct {
	Size     int
	Field    string
	Variable bool
}

// Field is a zipped view of one field of a TypeDefinition
type Field struct {
	Name   string
	Type   string
	Length Length
}

// Scalar is the length marker of a non-array field.
func Scalar() Length {
	return Length{}
}

// Fixed returns the length marker of a fixed-size array.
func Fixed(size int) Length {
	return Length{Size: size}
}

// VariableLength returns the length marker of an array sized by a sibling field.
func VariableLength(field string) Length {
	return Length{Field: field, Variable: true}
}

// IsArray reports whether the length marks an array.
func (l Length) IsArray() bool {
	return l.Variable || l.Size > 0
}

// MarshalJSON encodes the length as a [length, is_variable] pair, where the
// length is the size for fixed arrays and the field name for variable ones.
func (l Length) MarshalJSON() ([]byte, error) {
	if l.Variable {
		return json.Marshal([]any{l.Field, true})
	}
	return json.Marshal([]any{l.Size, false})
}

// UnmarshalJSON decodes a [length, is_variable] pair.
func (l *Length) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("length must be a [length, is_variable] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("length must be a [length, is_variable] pair, got %d elements", len(pair))
	}

	var variable bool
	if err := json.Unmarshal(pair[1], &variable); err != nil {
		return fmt.Errorf("invalid is_variable flag: %w", err)
	}

	if variable {
		var field string
		if err := json.Unmarshal(pair[0], &field); err != nil {
			return fmt.Errorf("variable length must name a field: %w", err)
		}
		*l = VariableLength(field)
		return nil
	}

	var size int
	if err := json.Unmarshal(pair[0], &size); err != nil {
		return fmt.Errorf("fixed length must be an integer: %w", err)
	}
	*l = Fixed(size)
	return nil
}

// WireName returns the name other definitions use to reference this type.
func (d TypeDefinition) WireName() string {
	return WireName(d.Name)
}

// WireName returns the wire type name of the custom type called name.
func WireName(name string) string {
	return "vl_api_" + name + "_t"
}

// Fields zips Args, Types and Lengths. It assumes the three have equal length.
func (d TypeDefinition) Fields() []Field {
	fields := make([]Field, 0, len(d.Args))
	for i := range d.Args {
		fields = append(fields, Field{
			Name:   d.Args[i],
			Type:   d.Types[i],
			Length: d.Lengths[i],
		})
	}
	return fields
}

// IndexOf returns the position of the named field, or -1.
func (d TypeDefinition) IndexOf(arg string) int {
	for i, a := range d.Args {
		if a == arg {
			return i
		}
	}
	return -1
}

// ElementType strips the array suffix from a wire type.
func ElementType(wireType string) string {
	return strings.TrimSuffix(wireType, ArraySuffix)
}

// IsArrayType reports whether the wire type is in array form.
func IsArrayType(wireType string) bool {
	return strings.HasSuffix(wireType, ArraySuffix)
}
