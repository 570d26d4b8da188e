// Package jni knows how VPP primitive wire types map to JNI and Java types
// and generates the field level marshalling code shared by custom types and
// messages.
package jni

import (
	"fmt"

	"github.com/okra-platform/jvppgen/internal/codegen"
	"github.com/okra-platform/jvppgen/internal/codegen/fragment"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// ObjectField is the accessor of every reference typed Java field
const ObjectField = "ObjectField"

// Primitive describes how one wire primitive is represented on the JNI and
// Java side.
type Primitive struct {
	WireType  string
	JNIType   string
	HostType  string
	Signature string
	// Kind is the JNI accessor stem (Byte, Short, Int, Long, Double)
	Kind string
	// Swap is set when values need byte order conversion
	Swap bool
}

// Primitives lists the supported wire primitives
var Primitives = []Primitive{
	{WireType: "u8", JNIType: "jbyte", HostType: "byte", Signature: "B", Kind: "Byte"},
	{WireType: "i8", JNIType: "jbyte", HostType: "byte", Signature: "B", Kind: "Byte"},
	{WireType: "u16", JNIType: "jshort", HostType: "short", Signature: "S", Kind: "Short", Swap: true},
	{WireType: "i16", JNIType: "jshort", HostType: "short", Signature: "S", Kind: "Short", Swap: true},
	{WireType: "u32", JNIType: "jint", HostType: "int", Signature: "I", Kind: "Int", Swap: true},
	{WireType: "i32", JNIType: "jint", HostType: "int", Signature: "I", Kind: "Int", Swap: true},
	{WireType: "u64", JNIType: "jlong", HostType: "long", Signature: "J", Kind: "Long", Swap: true},
	{WireType: "i64", JNIType: "jlong", HostType: "long", Signature: "J", Kind: "Long", Swap: true},
	{WireType: "f64", JNIType: "jdouble", HostType: "double", Signature: "D", Kind: "Double", Swap: true},
}

// Scalar returns the registry entry for the primitive itself
func (p Primitive) Scalar() codegen.Entry {
	values := p.values()
	values["accessor"] = p.Kind + "Field"

	binding := codegen.TemplateBinding{Struct: byteStructSetter, Dto: byteDtoSetter}
	if p.Swap {
		binding = codegen.TemplateBinding{Struct: structSetter, Dto: dtoSetter}
	}

	return codegen.Entry{
		HostType:  p.HostType,
		JNIType:   p.JNIType,
		Signature: p.Signature,
		Accessor:  p.Kind + "Field",
		Binding: codegen.TemplateBinding{
			Struct: binding.Struct.Fill(values),
			Dto:    binding.Dto.Fill(values),
		},
	}
}

// Array returns the registry entry for arrays of the primitive
func (p Primitive) Array() codegen.Entry {
	values := p.values()

	binding := codegen.TemplateBinding{Struct: byteArrayStructSetter, Dto: byteArrayDtoSetter}
	if p.Swap {
		binding = codegen.TemplateBinding{Struct: arrayStructSetter, Dto: arrayDtoSetter}
	}

	return codegen.Entry{
		HostType:  p.HostType + "[]",
		JNIType:   p.JNIType + "Array",
		Signature: "[" + p.Signature,
		Accessor:  ObjectField,
		Binding: codegen.TemplateBinding{
			Struct: binding.Struct.Fill(values),
			Dto:    binding.Dto.Fill(values),
		},
	}
}

func (p Primitive) values() fragment.Values {
	return fragment.Values{
		"jni_type":       p.JNIType,
		"array_accessor": p.Kind,
		"host_to_net":    "clib_host_to_net_" + p.WireType,
		"net_to_host":    "clib_net_to_host_" + p.WireType,
	}
}

// RegisterPrimitives registers every primitive and its array form
func RegisterPrimitives(reg *codegen.Registry) error {
	for _, p := range Primitives {
		entries := map[string]codegen.Entry{
			p.WireType:                      p.Scalar(),
			p.WireType + schema.ArraySuffix: p.Array(),
		}
		if err := reg.RegisterAll(entries); err != nil {
			return fmt.Errorf("failed to register primitive %s: %w", p.WireType, err)
		}
	}
	return nil
}

// NewRegistry returns a registry with all primitives registered
func NewRegistry() *codegen.Registry {
	reg := codegen.NewRegistry()
	if err := RegisterPrimitives(reg); err != nil {
		// An empty registry cannot hold duplicates
		panic(err)
	}
	return reg
}

// NetToHost wraps a native expression of the given wire type in the byte
// order conversion needed to read it on the host.
func NetToHost(wireType, expr string) string {
	for _, p := range Primitives {
		if p.WireType == wireType && p.Swap {
			return fmt.Sprintf("clib_net_to_host_%s(%s)", wireType, expr)
		}
	}
	return expr
}

// LengthValue reads the Java local ref of a length field as an array size.
// Java has no unsigned types, so u8 and u16 counts above the signed range
// arrive negative and are widened through their unsigned C type.
func LengthValue(wireType, ref string) string {
	switch wireType {
	case "u8", "u16":
		return fmt.Sprintf("(jsize)(%s)%s", wireType, ref)
	}
	return ref
}
