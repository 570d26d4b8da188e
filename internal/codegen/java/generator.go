package java

import (
	"fmt"
	"strings"

	"github.com/okra-platform/jvppgen/internal/codegen/writer"
)

// Field is one public field of a generated class
type Field struct {
	Name string
	Type string
}

// Class describes a DTO class to render
type Class struct {
	// Package is the Java package of the class
	Package string

	// Name is the simple class name
	Name string

	// TypeName is the API name of the type the class represents
	TypeName string

	// InputFile is the API file the type was read from
	InputFile string

	// Docs is the preformatted javadoc body describing the definition
	Docs string

	Fields []Field
}

var primitiveTypes = map[string]bool{
	"boolean": true, "byte": true, "short": true, "char": true,
	"int": true, "long": true, "float": true, "double": true,
}

// fieldKind selects how a field takes part in equals, hashCode and toString
type fieldKind int

const (
	kindPrimitive fieldKind = iota
	kindObject
	kindPrimitiveArray
	kindObjectArray
)

func kindOf(javaType string) fieldKind {
	elem, isArray := strings.CutSuffix(javaType, "[]")
	switch {
	case isArray && primitiveTypes[elem]:
		return kindPrimitiveArray
	case isArray:
		return kindObjectArray
	case primitiveTypes[javaType]:
		return kindPrimitive
	default:
		return kindObject
	}
}

// Generator renders DTO classes for custom types
type Generator struct {
	generatorName string
}

// NewGenerator creates a Java class generator. The name is quoted in the
// documentation of generated classes.
func NewGenerator(generatorName string) *Generator {
	return &Generator{generatorName: generatorName}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "java"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".java"
}

// Generate renders the class source
func (g *Generator) Generate(c Class) ([]byte, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("class name is empty")
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" || f.Type == "" {
			return nil, fmt.Errorf("class %s: field name and type are required", c.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("class %s: duplicate field %s", c.Name, f.Name)
		}
		seen[f.Name] = true
	}

	w := writer.NewWriter("    ")

	w.WriteLinef("package %s;", c.Package)
	w.BlankLine()

	doc := []string{
		fmt.Sprintf("<p>This class represents %s type definition.", c.TypeName),
		fmt.Sprintf("<br>It was generated by %s based on %s preparsed data:", g.generatorName, c.InputFile),
		"<pre>",
	}
	if c.Docs != "" {
		doc = append(doc, strings.Split(c.Docs, "\n")...)
	}
	doc = append(doc, "</pre>")
	w.WriteJavadoc(doc)

	w.WriteBlock(fmt.Sprintf("public final class %s {", c.Name), "}", func() {
		for _, f := range c.Fields {
			w.WriteLinef("public %s %s;", f.Type, f.Name)
		}
		w.BlankLine()
		g.generateHashCode(w, c)
		w.BlankLine()
		g.generateEquals(w, c)
		w.BlankLine()
		g.generateToString(w, c)
	})

	return w.Bytes(), nil
}

func (g *Generator) generateHashCode(w *writer.Writer, c Class) {
	args := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		switch kindOf(f.Type) {
		case kindPrimitiveArray:
			args = append(args, fmt.Sprintf("java.util.Arrays.hashCode(%s)", f.Name))
		case kindObjectArray:
			args = append(args, fmt.Sprintf("java.util.Arrays.deepHashCode(%s)", f.Name))
		default:
			args = append(args, f.Name)
		}
	}

	w.WriteLine("@Override")
	w.WriteBlock("public int hashCode() {", "}", func() {
		w.WriteLinef("return java.util.Objects.hash(%s);", strings.Join(args, ", "))
	})
}

func (g *Generator) generateEquals(w *writer.Writer, c Class) {
	w.WriteLine("@Override")
	w.WriteBlock("public boolean equals(final Object o) {", "}", func() {
		w.WriteBlock("if (this == o) {", "}", func() {
			w.WriteLine("return true;")
		})
		w.WriteBlock("if (o == null || getClass() != o.getClass()) {", "}", func() {
			w.WriteLine("return false;")
		})
		w.BlankLine()

		if len(c.Fields) > 0 {
			w.WriteLinef("final %s other = (%s) o;", c.Name, c.Name)
			w.BlankLine()
		}

		for _, f := range c.Fields {
			var cond string
			switch kindOf(f.Type) {
			case kindPrimitive:
				cond = fmt.Sprintf("this.%s != other.%s", f.Name, f.Name)
			case kindObject:
				cond = fmt.Sprintf("!java.util.Objects.equals(this.%s, other.%s)", f.Name, f.Name)
			case kindPrimitiveArray:
				cond = fmt.Sprintf("!java.util.Arrays.equals(this.%s, other.%s)", f.Name, f.Name)
			case kindObjectArray:
				cond = fmt.Sprintf("!java.util.Arrays.deepEquals(this.%s, other.%s)", f.Name, f.Name)
			}
			w.WriteBlock(fmt.Sprintf("if (%s) {", cond), "}", func() {
				w.WriteLine("return false;")
			})
		}
		if len(c.Fields) > 0 {
			w.BlankLine()
		}

		w.WriteLine("return true;")
	})
}

func (g *Generator) generateToString(w *writer.Writer, c Class) {
	w.WriteLine("@Override")
	w.WriteBlock("public String toString() {", "}", func() {
		w.WriteLinef(`return "%s{" +`, c.Name)
		w.Indent()
		w.Indent()
		for i, f := range c.Fields {
			sep := ""
			if i > 0 {
				sep = ", "
			}
			value := f.Name
			switch kindOf(f.Type) {
			case kindPrimitiveArray:
				value = fmt.Sprintf("java.util.Arrays.toString(%s)", f.Name)
			case kindObjectArray:
				value = fmt.Sprintf("java.util.Arrays.deepToString(%s)", f.Name)
			}
			w.WriteLinef(`"%s%s=" + %s +`, sep, f.Name, value)
		}
		w.WriteLine(`"}";`)
		w.Dedent()
		w.Dedent()
	})
}
