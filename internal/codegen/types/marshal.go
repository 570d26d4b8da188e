package types

import (
	"fmt"
	"strconv"

	"github.com/okra-platform/jvppgen/internal/codegen"
	"github.com/okra-platform/jvppgen/internal/codegen/fragment"
	"github.com/okra-platform/jvppgen/internal/codegen/jni"
	"github.com/okra-platform/jvppgen/internal/naming"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// Fragments are the marshalling templates generated for one custom type.
// Their open holes are bound by whoever embeds the type.
type Fragments struct {
	// Struct populates mp->${c_name} from the Java object ${field_reference_name}
	Struct fragment.Fragment

	// StructArray populates mp->${c_name}[] from the Java array ${field_reference_name}
	StructArray fragment.Fragment

	// Dto creates the Java object for mp->${c_name} and stores it in ${object_name}
	Dto fragment.Fragment

	// DtoArray creates a Java array of ${field_length} objects and stores it in ${object_name}
	DtoArray fragment.Fragment
}

// scope is where the fields of a custom type live inside its fragment
type scope struct {
	cPrefix   string
	refPrefix string
	object    string
}

var (
	scalarScope = scope{
		cPrefix:   "${c_name}.",
		refPrefix: "${field_reference_name}",
		object:    "${field_reference_name}",
	}
	arrayScope = scope{
		cPrefix:   "${c_name}[${field_reference_name}Index].",
		refPrefix: "${field_reference_name}ArrayElement",
		object:    "${field_reference_name}ArrayElement",
	}
)

// field describes fb to its binding when embedded in scope s
func (s scope) field(fb FieldBinding) codegen.Field {
	f := codegen.Field{
		CName:    s.cPrefix + fb.WireName,
		RefName:  s.refPrefix + naming.UpperCamel(fb.WireName),
		HostName: fb.HostName,
		Object:   s.object,
	}

	switch fb.Kind {
	case FixedArray:
		f.Length = strconv.Itoa(fb.Size)
		f.LengthCheck = jni.FixedLengthCheck(fb.HostName, fb.Size)
	case VariableArray:
		f.Length = jni.NetToHost(fb.LengthType, "mp->"+s.cPrefix+fb.LengthField)
		f.LengthCheck = jni.VariableLengthCheck(
			fb.HostName,
			naming.FieldName(fb.LengthField),
			fb.LengthType,
			s.refPrefix+naming.UpperCamel(fb.LengthField),
		)
	}
	return f
}

func structInitialization(reg *codegen.Registry, def schema.TypeDefinition, fields []FieldBinding, s scope) (string, error) {
	parts := make([]fragment.Fragment, 0, len(fields))
	for _, fb := range fields {
		code, err := jni.RequestBinding(reg, fb.WireType, s.field(fb))
		if err != nil {
			return "", fieldError(def.Name, fb.WireName, fb.WireType, err)
		}
		parts = append(parts, code)
	}
	return fragment.Join(parts...).Text(), nil
}

func typeInitialization(reg *codegen.Registry, def schema.TypeDefinition, fields []FieldBinding, s scope) (string, error) {
	parts := make([]fragment.Fragment, 0, len(fields))
	for _, fb := range fields {
		code, err := jni.ReplyBinding(reg, fb.WireType, s.field(fb))
		if err != nil {
			return "", fieldError(def.Name, fb.WireName, fb.WireType, err)
		}
		parts = append(parts, code)
	}
	return fragment.Join(parts...).Text(), nil
}

// BuildFragments generates the four marshalling fragments of def. jniClass
// is the slash separated class name of the generated DTO.
func BuildFragments(reg *codegen.Registry, def schema.TypeDefinition, fields []FieldBinding, jniClass string) (Fragments, error) {
	structScalar, err := structInitialization(reg, def, fields, scalarScope)
	if err != nil {
		return Fragments{}, err
	}
	structArray, err := structInitialization(reg, def, fields, arrayScope)
	if err != nil {
		return Fragments{}, err
	}
	dtoScalar, err := typeInitialization(reg, def, fields, scalarScope)
	if err != nil {
		return Fragments{}, err
	}
	dtoArray, err := typeInitialization(reg, def, fields, arrayScope)
	if err != nil {
		return Fragments{}, err
	}

	frags := Fragments{
		Struct: objectStructSetter.Fill(fragment.Values{
			"class_name":            jniClass,
			"struct_initialization": structScalar,
		}),
		StructArray: objectArrayStructSetter.Fill(fragment.Values{
			"class_name":            jniClass,
			"struct_initialization": structArray,
		}),
		Dto: objectDtoSetter.Fill(fragment.Values{
			"class_name":          jniClass,
			"type_initialization": dtoScalar,
		}),
		DtoArray: objectArrayDtoSetter.Fill(fragment.Values{
			"class_name":          jniClass,
			"type_initialization": dtoArray,
		}),
	}

	checks := []struct {
		name string
		f    fragment.Fragment
	}{
		{"struct", frags.Struct},
		{"struct array", frags.StructArray},
		{"dto", frags.Dto},
		{"dto array", frags.DtoArray},
	}
	for _, c := range checks {
		if err := codegen.CheckHoles(c.f); err != nil {
			return Fragments{}, &codegen.TypeError{Type: def.Name, Err: fmt.Errorf("%s fragment: %w", c.name, err)}
		}
	}
	return frags, nil
}

// Entries returns the registry entries of a custom type and its array form
func (f Fragments) Entries(wireName, fqn, jniClass string) map[string]codegen.Entry {
	signature := "L" + jniClass + ";"
	return map[string]codegen.Entry{
		wireName: {
			HostType:  fqn,
			JNIType:   "jobject",
			Signature: signature,
			Accessor:  jni.ObjectField,
			Binding:   codegen.TemplateBinding{Struct: f.Struct, Dto: f.Dto},
		},
		wireName + schema.ArraySuffix: {
			HostType:  fqn + "[]",
			JNIType:   "jobjectArray",
			Signature: "[" + signature,
			Accessor:  jni.ObjectField,
			Binding:   codegen.TemplateBinding{Struct: f.StructArray, Dto: f.DtoArray},
		},
	}
}
