package schema

import (
	"fmt"
	"strconv"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

const (
	arrayDirective = "array"
	crcDirective   = "crc"
)

// ParseSDL parses custom type definitions written as GraphQL object types.
// Field types name the element wire type; arrays carry
// @array(size: N) or @array(length: "field"), and a type may carry
// @crc(value: "0x...").
func ParseSDL(input string) ([]TypeDefinition, error) {
	doc, report := astparser.ParseGraphqlDocumentString(input)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	defs := []TypeDefinition{}
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		if node.Kind != ast.NodeKindObjectTypeDefinition {
			continue
		}
		def, err := parseObjectType(&doc, node.Ref)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseObjectType(doc *ast.Document, ref int) (TypeDefinition, error) {
	typeDef := doc.ObjectTypeDefinitions[ref]

	def := TypeDefinition{
		Name:    doc.Input.ByteSliceString(typeDef.Name),
		Doc:     getDescription(doc, typeDef.Description),
		Args:    []string{},
		Types:   []string{},
		Lengths: []Length{},
	}

	for _, directiveRef := range typeDef.Directives.Refs {
		directive := doc.Directives[directiveRef]
		if doc.Input.ByteSliceString(directive.Name) == crcDirective {
			def.CRC = parseDirectiveArgs(doc, directive)["value"]
		}
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		name, wireType, length, err := parseField(doc, fieldRef)
		if err != nil {
			return TypeDefinition{}, fmt.Errorf("type %s: %w", def.Name, err)
		}
		def.Args = append(def.Args, name)
		def.Types = append(def.Types, wireType)
		def.Lengths = append(def.Lengths, length)
	}

	return def, nil
}

func parseField(doc *ast.Document, fieldRef int) (string, string, Length, error) {
	fieldDef := doc.FieldDefinitions[fieldRef]
	name := doc.Input.ByteSliceString(fieldDef.Name)

	fieldType := doc.Types[fieldDef.Type]
	if fieldType.TypeKind != ast.TypeKindNamed {
		return "", "", Length{}, fmt.Errorf("field %s: %w: use @array instead of list or non-null types", name, ErrMalformedDefinition)
	}
	wireType := doc.Input.ByteSliceString(fieldType.Name)

	for _, directiveRef := range fieldDef.Directives.Refs {
		directive := doc.Directives[directiveRef]
		if doc.Input.ByteSliceString(directive.Name) != arrayDirective {
			continue
		}

		args := parseDirectiveArgs(doc, directive)
		if lengthField, ok := args["length"]; ok {
			return name, wireType + ArraySuffix, VariableLength(lengthField), nil
		}
		size, err := strconv.Atoi(args["size"])
		if err != nil {
			return "", "", Length{}, fmt.Errorf("field %s: %w: @array needs an integer size or a length field", name, ErrMalformedDefinition)
		}
		return name, wireType + ArraySuffix, Fixed(size), nil
	}

	return name, wireType, Scalar(), nil
}

func parseDirectiveArgs(doc *ast.Document, directive ast.Directive) map[string]string {
	args := make(map[string]string)

	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		argName := doc.Input.ByteSliceString(arg.Name)

		value := doc.ArgumentValue(argRef)
		args[argName] = parseValue(doc, value)
	}

	return args
}

func parseValue(doc *ast.Document, value ast.Value) string {
	switch value.Kind {
	case ast.ValueKindString:
		return doc.StringValueContentString(value.Ref)

	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)
		}

	case ast.ValueKindInteger:
		return fmt.Sprintf("%d", doc.IntValueAsInt(value.Ref))
	}

	return ""
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}

	return doc.Input.ByteSliceString(desc.Content)
}
