package jni

import (
	"strconv"

	"github.com/okra-platform/jvppgen/internal/codegen"
	"github.com/okra-platform/jvppgen/internal/codegen/fragment"
)

// RequestBinding generates the code copying Java field f of wireType into
// the native struct: the field lookup followed by the type's struct setter.
func RequestBinding(reg *codegen.Registry, wireType string, f codegen.Field) (fragment.Fragment, error) {
	entry, err := reg.Lookup(wireType)
	if err != nil {
		return fragment.Fragment{}, err
	}

	header := requestHeader.Fill(fragment.Values{
		"signature": entry.Signature,
		"jni_type":  entry.JNIType,
		"accessor":  entry.Accessor,
	}).Fill(f.Values())

	return fragment.Join(header, entry.Binding.StructSetter(f)), nil
}

// ReplyBinding generates the code copying the native value of wireType into
// Java field f: the field lookup followed by the type's dto setter.
func ReplyBinding(reg *codegen.Registry, wireType string, f codegen.Field) (fragment.Fragment, error) {
	entry, err := reg.Lookup(wireType)
	if err != nil {
		return fragment.Fragment{}, err
	}

	header := replyHeader.Fill(fragment.Values{
		"signature": entry.Signature,
	}).Fill(f.Values())

	return fragment.Join(header, entry.Binding.DtoSetter(f)), nil
}

// FixedLengthCheck rejects Java arrays whose length differs from a fixed
// native array.
func FixedLengthCheck(fieldName string, size int) string {
	return fixedLengthCheck.Fill(fragment.Values{
		"size":       strconv.Itoa(size),
		"field_name": fieldName,
	}).Text()
}

// VariableLengthCheck rejects Java arrays whose length differs from the
// value of the length field of wire type lengthType, held in the C local
// lengthRef.
func VariableLengthCheck(fieldName, lengthName, lengthType, lengthRef string) string {
	return variableLengthCheck.Fill(fragment.Values{
		"length_value": LengthValue(lengthType, lengthRef),
		"field_name":   fieldName,
		"length_name":  lengthName,
	}).Text()
}
