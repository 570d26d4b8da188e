// Package openapi describes generated DTO classes as Swagger 2.0 definitions
package openapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-openapi/spec"

	"github.com/okra-platform/jvppgen/internal/naming"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// ErrUnknownType is returned for a field type that is neither a primitive
// nor one of the described custom types
var ErrUnknownType = errors.New("unknown wire type")

// Vendor extensions carried by generated schemas
const (
	ExtWireType    = "x-vpp-type"
	ExtCRC         = "x-vpp-crc"
	ExtLengthField = "x-vpp-length-field"
)

var primitiveSchemas = map[string]func() *spec.Schema{
	"u8":  spec.Int8Property,
	"i8":  spec.Int8Property,
	"u16": spec.Int16Property,
	"i16": spec.Int16Property,
	"u32": spec.Int32Property,
	"i32": spec.Int32Property,
	"u64": spec.Int64Property,
	"i64": spec.Int64Property,
	"f64": spec.Float64Property,
}

// Generator builds Swagger documents for custom types
type Generator struct {
	title   string
	version string
}

// NewGenerator creates a generator. title and version fill the document info.
func NewGenerator(title, version string) *Generator {
	return &Generator{title: title, version: version}
}

// Generate returns a document with one definition per type, keyed by the
// Java class name.
func (g *Generator) Generate(defs []schema.TypeDefinition) (*spec.Swagger, error) {
	classes := make(map[string]string, len(defs))
	for _, def := range defs {
		classes[def.WireName()] = naming.UpperCamel(def.Name)
	}

	definitions := make(spec.Definitions, len(defs))
	for _, def := range defs {
		s, err := g.definition(def, classes)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", def.Name, err)
		}
		definitions[classes[def.WireName()]] = *s
	}

	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:   g.title,
					Version: g.version,
				},
			},
			Paths:       &spec.Paths{Paths: map[string]spec.PathItem{}},
			Definitions: definitions,
		},
	}, nil
}

// Marshal renders doc as indented JSON
func Marshal(doc *spec.Swagger) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

func (g *Generator) definition(def schema.TypeDefinition, classes map[string]string) (*spec.Schema, error) {
	s := new(spec.Schema).Typed("object", "").WithTitle(naming.UpperCamel(def.Name))
	if def.Doc != "" {
		s.WithDescription(def.Doc)
	}
	s.AddExtension(ExtWireType, def.WireName())
	if def.CRC != "" {
		s.AddExtension(ExtCRC, def.CRC)
	}

	required := make([]string, 0, len(def.Args))
	for _, field := range def.Fields() {
		prop, err := property(field, classes)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		name := naming.FieldName(field.Name)
		s.SetProperty(name, *prop)
		if !field.Length.IsArray() {
			required = append(required, name)
		}
	}
	if len(required) > 0 {
		s.WithRequired(required...)
	}
	return s, nil
}

func property(field schema.Field, classes map[string]string) (*spec.Schema, error) {
	elem, err := elementSchema(schema.ElementType(field.Type), classes)
	if err != nil {
		return nil, err
	}
	if !field.Length.IsArray() {
		return elem, nil
	}

	arr := spec.ArrayProperty(elem)
	if field.Length.Variable {
		arr.AddExtension(ExtLengthField, naming.FieldName(field.Length.Field))
	} else {
		arr.WithMaxItems(int64(field.Length.Size))
	}
	return arr, nil
}

func elementSchema(wireType string, classes map[string]string) (*spec.Schema, error) {
	if build, ok := primitiveSchemas[wireType]; ok {
		return build(), nil
	}
	if class, ok := classes[wireType]; ok {
		return spec.RefSchema("#/definitions/" + class), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, wireType)
}
