package schema

import "errors"

var (
	// Definition errors
	ErrMalformedDefinition = errors.New("malformed type definition")
	ErrUnsupportedFormat   = errors.New("unsupported input format")

	// Validation errors
	ErrFieldCountMismatch  = errors.New("args, types and lengths differ in length")
	ErrDuplicateField      = errors.New("duplicate field name")
	ErrMissingLengthField  = errors.New("length field not found")
	ErrSelfLength          = errors.New("field cannot be its own length")
	ErrLengthFieldOrder    = errors.New("length field must precede the array it sizes")
	ErrInvalidLengthField  = errors.New("length field must be a scalar integer")
	ErrUnsizedArray        = errors.New("array field has neither a size nor a length field")
	ErrArrayTypeMismatch   = errors.New("array length does not match the field type")
	ErrDependencyCycle     = errors.New("dependency cycle between custom types")
)
