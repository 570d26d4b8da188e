package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okra-platform/jvppgen/internal/codegen/fragment"
)

// Hole names shared by every binding fragment
const (
	HoleCName       = "c_name"
	HoleRefName     = "field_reference_name"
	HoleFieldName   = "field_name"
	HoleObjectName  = "object_name"
	HoleLength      = "field_length"
	HoleLengthCheck = "field_length_check"
)

// freeHoles may stay open in a registered fragment; they are bound by
// whoever embeds it.
var freeHoles = map[string]bool{
	HoleCName:       true,
	HoleRefName:     true,
	HoleObjectName:  true,
	HoleLength:      true,
	HoleLengthCheck: true,
}

// Binding generates marshalling code for one field of a given wire type.
// Primitive and custom types implement it the same way.
type Binding interface {
	// StructSetter copies the Java value held in f.RefName into mp->f.CName
	StructSetter(f Field) fragment.Fragment

	// DtoSetter copies mp->f.CName into field f.HostName of f.Object
	DtoSetter(f Field) fragment.Fragment
}

// Field describes the field a Binding generates code for. Values may
// themselves contain holes, which stay open for the enclosing fragment.
type Field struct {
	// CName is the native path below mp->
	CName string

	// RefName is the base name of the C locals used for this field
	RefName string

	// HostName is the Java field name
	HostName string

	// Object is the jobject variable owning the Java field
	Object string

	// Length is the element count expression of an array field
	Length string

	// LengthCheck rejects Java arrays that do not fit the native array
	LengthCheck string
}

// Values maps the field to fragment hole values. Empty values are left out
// so that their holes stay open, except the length check which may be empty.
func (f Field) Values() fragment.Values {
	values := fragment.Values{HoleLengthCheck: f.LengthCheck}
	set := func(name, value string) {
		if value != "" {
			values[name] = value
		}
	}
	set(HoleCName, f.CName)
	set(HoleRefName, f.RefName)
	set(HoleFieldName, f.HostName)
	set(HoleObjectName, f.Object)
	set(HoleLength, f.Length)
	return values
}

// TemplateBinding is a Binding backed by two fragments
type TemplateBinding struct {
	Struct fragment.Fragment
	Dto    fragment.Fragment
}

// StructSetter fills the struct fragment with the field values
func (b TemplateBinding) StructSetter(f Field) fragment.Fragment {
	return b.Struct.Fill(f.Values())
}

// DtoSetter fills the dto fragment with the field values
func (b TemplateBinding) DtoSetter(f Field) fragment.Fragment {
	return b.Dto.Fill(f.Values())
}

// CheckHoles fails with ErrUnfilledHole if f has open holes other than the
// ones an embedding fragment binds.
func CheckHoles(f fragment.Fragment) error {
	var unexpected []string
	for _, hole := range f.Holes() {
		if !freeHoles[hole] {
			unexpected = append(unexpected, hole)
		}
	}
	if len(unexpected) > 0 {
		return fmt.Errorf("%w: %s", ErrUnfilledHole, strings.Join(unexpected, ", "))
	}
	return nil
}

// Options contains the settings of one generation run
type Options struct {
	// PluginPackage is the Java package of the plugin (e.g. io.fd.vpp.jvpp.core)
	PluginPackage string

	// TypesPackage is the sub-package holding generated types
	TypesPackage string

	// OutputDir is the root directory of the Java sources
	OutputDir string

	// InputFile is the API file name quoted in generated documentation
	InputFile string
}

// TypesDir returns the directory generated classes are written to
func (o Options) TypesDir() string {
	return filepath.Join(o.OutputDir, filepath.FromSlash(strings.ReplaceAll(o.TypesPackage, ".", "/")))
}

// JavaPackage returns the Java package of generated classes
func (o Options) JavaPackage() string {
	if o.PluginPackage == "" {
		return o.TypesPackage
	}
	return o.PluginPackage + "." + o.TypesPackage
}

// ClassFQN returns the fully qualified Java name of a generated class
func (o Options) ClassFQN(class string) string {
	return o.JavaPackage() + "." + class
}
