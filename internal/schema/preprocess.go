package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// blockCommentRegex and lineCommentRegex match C style comments in .api sources.
var (
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRegex  = regexp.MustCompile(`//[^\n]*`)
)

// typeDefineRegex matches `typeonly [flags...] define name { ... };` and the
// newer `typedef name { ... };` declarations. Messages are not matched.
var typeDefineRegex = regexp.MustCompile(`(?s)(?:\btypeonly\s+(?:\w+\s+)*define|\btypedef)\s+(\w+)\s*\{(.*?)\}\s*;`)

// statementRegex matches one `type name` or `type name[len]` field statement.
var statementRegex = regexp.MustCompile(`^(\w+)\s+(\w+)\s*(?:\[\s*(\w*)\s*\])?$`)

// sizeRegex matches a literal array size
var sizeRegex = regexp.MustCompile(`^\d+$`)

var primitives = map[string]bool{
	"u8": true, "i8": true, "u16": true, "i16": true,
	"u32": true, "i32": true, "u64": true, "i64": true,
	"f64": true,
}

// IsPrimitive reports whether wireType names a built-in scalar wire type.
func IsPrimitive(wireType string) bool {
	return primitives[wireType]
}

// PreprocessAPI rewrites the custom type declarations of a .api source into
// GraphQL object types understood by ParseSDL. Everything other than custom
// type declarations is dropped.
func PreprocessAPI(input string) (string, error) {
	input = blockCommentRegex.ReplaceAllString(input, "")
	input = lineCommentRegex.ReplaceAllString(input, "")

	var sb strings.Builder
	for _, match := range typeDefineRegex.FindAllStringSubmatch(input, -1) {
		name, body := match[1], match[2]

		var fields []string
		for _, stmt := range strings.Split(body, ";") {
			stmt = strings.Join(strings.Fields(stmt), " ")
			if stmt == "" {
				continue
			}
			field, err := rewriteStatement(stmt)
			if err != nil {
				return "", fmt.Errorf("type %s: %w", name, err)
			}
			fields = append(fields, field)
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if len(fields) == 0 {
			sb.WriteString("type " + name + "\n")
			continue
		}
		sb.WriteString("type " + name + " {\n")
		for _, field := range fields {
			sb.WriteString("  " + field + "\n")
		}
		sb.WriteString("}\n")
	}

	return sb.String(), nil
}

func rewriteStatement(stmt string) (string, error) {
	parts := statementRegex.FindStringSubmatch(stmt)
	if parts == nil {
		return "", fmt.Errorf("%w: unsupported field statement %q", ErrMalformedDefinition, stmt)
	}
	wireType, name, length := qualifyType(parts[1]), parts[2], parts[3]

	isArray := strings.Contains(stmt, "[")
	switch {
	case !isArray:
		return name + ": " + wireType, nil
	case length == "" || sizeRegex.MatchString(length):
		if length == "" {
			length = "0"
		}
		return fmt.Sprintf("%s: %s @array(size: %s)", name, wireType, length), nil
	default:
		return fmt.Sprintf("%s: %s @array(length: %q)", name, wireType, length), nil
	}
}

// qualifyType turns a bare custom type name into its wire name.
func qualifyType(t string) string {
	if IsPrimitive(t) || strings.HasPrefix(t, "vl_api_") {
		return t
	}
	return WireName(t)
}

// ParseAPI parses the custom type declarations of a .api source.
func ParseAPI(input string) ([]TypeDefinition, error) {
	sdl, err := PreprocessAPI(input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sdl) == "" {
		return []TypeDefinition{}, nil
	}
	return ParseSDL(sdl)
}
