package schema

import (
	"fmt"

	"go.uber.org/multierr"
)

// lengthTypes are the wire types allowed to hold the element count of a
// variable-length array.
var lengthTypes = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
}

// IsLengthType reports whether a field of the given wire type can size a
// variable-length array.
func IsLengthType(wireType string) bool {
	return lengthTypes[wireType]
}

// Validate checks the structural invariants of a type definition and reports
// every violation at once.
func Validate(def TypeDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: type name is empty", ErrMalformedDefinition)
	}
	if len(def.Args) != len(def.Types) || len(def.Args) != len(def.Lengths) {
		return fmt.Errorf("type %s: %w (args=%d, types=%d, lengths=%d)",
			def.Name, ErrFieldCountMismatch, len(def.Args), len(def.Types), len(def.Lengths))
	}

	var errs error
	seen := make(map[string]int, len(def.Args))
	for i, arg := range def.Args {
		if arg == "" {
			errs = multierr.Append(errs, fmt.Errorf("type %s: field %d: %w: field name is empty", def.Name, i, ErrMalformedDefinition))
			continue
		}
		if prev, ok := seen[arg]; ok {
			errs = multierr.Append(errs, fmt.Errorf("type %s: field %s (positions %d and %d): %w", def.Name, arg, prev, i, ErrDuplicateField))
			continue
		}
		seen[arg] = i
	}

	for i, field := range def.Fields() {
		errs = multierr.Append(errs, validateField(def, i, field, seen))
	}
	return errs
}

func validateField(def TypeDefinition, pos int, field Field, positions map[string]int) error {
	fail := func(err error, format string, args ...any) error {
		detail := ""
		if format != "" {
			detail = ": " + fmt.Sprintf(format, args...)
		}
		return fmt.Errorf("type %s: field %s: %w%s", def.Name, field.Name, err, detail)
	}

	length := field.Length
	array := IsArrayType(field.Type)

	if field.Type == "" || field.Type == ArraySuffix {
		return fail(ErrMalformedDefinition, "wire type is empty")
	}
	if length.Size < 0 {
		return fail(ErrMalformedDefinition, "negative array size %d", length.Size)
	}
	if array != length.IsArray() {
		if array {
			return fail(ErrUnsizedArray, "")
		}
		return fail(ErrArrayTypeMismatch, "scalar type %s has array length", field.Type)
	}
	if !length.Variable {
		return nil
	}

	if length.Field == field.Name {
		return fail(ErrSelfLength, "")
	}
	at, ok := positions[length.Field]
	if !ok {
		return fail(ErrMissingLengthField, "%q", length.Field)
	}
	if at > pos {
		return fail(ErrLengthFieldOrder, "%q is declared after the array", length.Field)
	}
	if !IsLengthType(def.Types[at]) || def.Lengths[at].IsArray() {
		return fail(ErrInvalidLengthField, "%q has type %s", length.Field, def.Types[at])
	}
	return nil
}
