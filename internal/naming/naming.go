// Package naming converts VPP wire identifiers into Java identifiers and
// formats type definitions for generated documentation.
package naming

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// javaKeywords cannot be used as field names in generated classes
var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true,
}

// UpperCamel converts a snake_case wire name into UpperCamelCase.
// A letter following any non-letter starts a new word, so "ip4_fib_counter"
// becomes "Ip4FibCounter" and "is_ipv6" becomes "IsIpv6".
func UpperCamel(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevLetter := false
	for _, r := range name {
		switch {
		case r == '_':
			prevLetter = false
		case unicode.IsLetter(r):
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		default:
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// LowerCamel converts a snake_case wire name into lowerCamelCase.
func LowerCamel(name string) string {
	upper := UpperCamel(name)
	if upper == "" {
		return ""
	}
	r := []rune(upper)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// FieldName returns the Java field name for a wire field name. Java keywords
// get a trailing underscore.
func FieldName(name string) string {
	field := LowerCamel(name)
	if javaKeywords[field] {
		return field + "_"
	}
	return field
}

// Javadoc renders v as indented JSON with every line prefixed by " * ",
// ready to be placed inside a javadoc <pre> block.
func Javadoc(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to format documentation: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(" * "+line, " ")
	}
	return strings.Join(lines, "\n"), nil
}
