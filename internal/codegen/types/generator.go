// Package types generates the Java DTO and the JNI marshalling fragments of
// every custom type declared in an API file, and registers the fragments so
// later types and messages can embed them like primitives.
package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/okra-platform/jvppgen/internal/codegen"
	"github.com/okra-platform/jvppgen/internal/codegen/java"
	"github.com/okra-platform/jvppgen/internal/naming"
	"github.com/okra-platform/jvppgen/internal/output"
	"github.com/okra-platform/jvppgen/internal/schema"
)

// ErrDestinationMissing is returned when the types directory does not exist
var ErrDestinationMissing = errors.New("destination directory is missing")

// GeneratorName is quoted in the documentation of generated classes
const GeneratorName = "jvppgen"

// Result describes one generated custom type
type Result struct {
	// Type is the API name of the custom type
	Type string

	// WireName is the registry key of the type
	WireName string

	// Class is the simple Java class name
	Class string

	// FQN is the fully qualified Java class name
	FQN string

	// Path is the file the class was written to
	Path string

	Fields    []FieldBinding
	Source    []byte
	Fragments Fragments
}

// Generator generates custom types into a shared registry
type Generator struct {
	registry *codegen.Registry
	classes  *java.Generator
	fs       output.FileSystem
	opts     codegen.Options
	logger   zerolog.Logger
}

// NewGenerator creates a generator writing through fs and registering into reg
func NewGenerator(reg *codegen.Registry, fs output.FileSystem, opts codegen.Options, logger zerolog.Logger) *Generator {
	return &Generator{
		registry: reg,
		classes:  java.NewGenerator(GeneratorName),
		fs:       fs,
		opts:     opts,
		logger:   logger.With().Str("component", "types").Logger(),
	}
}

// Registry returns the registry the generator registers into
func (g *Generator) Registry() *codegen.Registry {
	return g.registry
}

// Generate generates every definition in dependency order. The first failure
// stops the run; types generated before it stay written and registered.
func (g *Generator) Generate(defs []schema.TypeDefinition) ([]Result, error) {
	if len(defs) == 0 {
		g.logger.Info().Msgf("Skipping custom types generation (%s does not define custom types).", g.opts.InputFile)
		return nil, nil
	}

	g.logger.Info().Int("types", len(defs)).Msg("Generating custom types")

	if err := g.checkDestination(); err != nil {
		return nil, err
	}

	sorted, err := schema.SortTypes(defs)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(sorted))
	for _, def := range sorted {
		result, err := g.GenerateType(def)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}

	g.logger.Info().Int("types", len(results)).Str("dir", g.opts.TypesDir()).Msg("Custom types generated")
	return results, nil
}

// GenerateType generates one definition. On failure nothing is written and
// nothing is registered.
func (g *Generator) GenerateType(def schema.TypeDefinition) (*Result, error) {
	if err := schema.Validate(def); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}

	fields, err := ResolveFields(g.registry, def)
	if err != nil {
		return nil, err
	}

	class := naming.UpperCamel(def.Name)
	fqn := g.opts.ClassFQN(class)
	jniClass := strings.ReplaceAll(fqn, ".", "/")
	wireName := def.WireName()

	source, err := g.renderClass(def, class, fields)
	if err != nil {
		return nil, &codegen.TypeError{Type: def.Name, Err: err}
	}

	frags, err := BuildFragments(g.registry, def, fields, jniClass)
	if err != nil {
		return nil, err
	}

	if err := g.registry.CheckFree(wireName, wireName+schema.ArraySuffix); err != nil {
		return nil, &codegen.TypeError{Type: def.Name, Err: err}
	}

	if err := g.checkDestination(); err != nil {
		return nil, err
	}
	path := filepath.Join(g.opts.TypesDir(), class+g.classes.FileExtension())
	if err := g.fs.WriteFile(path, source, 0644); err != nil {
		return nil, &codegen.TypeError{Type: def.Name, Err: err}
	}

	if err := g.registry.RegisterAll(frags.Entries(wireName, fqn, jniClass)); err != nil {
		return nil, &codegen.TypeError{Type: def.Name, Err: err}
	}

	g.logger.Debug().
		Str("type", def.Name).
		Str("class", fqn).
		Str("file", path).
		Int("fields", len(fields)).
		Msg("generated custom type")

	return &Result{
		Type:      def.Name,
		WireName:  wireName,
		Class:     class,
		FQN:       fqn,
		Path:      path,
		Fields:    fields,
		Source:    source,
		Fragments: frags,
	}, nil
}

func (g *Generator) renderClass(def schema.TypeDefinition, class string, fields []FieldBinding) ([]byte, error) {
	docs, err := naming.Javadoc(def)
	if err != nil {
		return nil, err
	}

	javaFields := make([]java.Field, len(fields))
	for i, fb := range fields {
		javaFields[i] = java.Field{Name: fb.HostName, Type: fb.HostType}
	}

	inputFile := g.opts.InputFile
	if inputFile != "" {
		inputFile = filepath.Base(inputFile)
	}

	return g.classes.Generate(java.Class{
		Package:   g.opts.JavaPackage(),
		Name:      class,
		TypeName:  def.Name,
		InputFile: inputFile,
		Docs:      docs,
		Fields:    javaFields,
	})
}

func (g *Generator) checkDestination() error {
	dir := g.opts.TypesDir()
	if !output.DirExists(g.fs, dir) {
		return fmt.Errorf("%w: %s", ErrDestinationMissing, dir)
	}
	return nil
}
