// Package fragment provides template fragments: source text with named
// ${hole} placeholders that can be filled a few at a time. A fragment with
// open holes can be spliced into another fragment and filled later, which is
// how marshalling code for nested types is composed.
package fragment

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrMissingValue is returned by Render when holes remain open
var ErrMissingValue = errors.New("missing value for fragment hole")

var holeRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Values maps hole names to the text that replaces them
type Values map[string]string

// Fragment is an immutable piece of source text with named holes
type Fragment struct {
	text string
}

// New creates a fragment from text
func New(text string) Fragment {
	return Fragment{text: text}
}

// Join concatenates fragments, one per line, skipping empty ones
func Join(parts ...Fragment) Fragment {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.text != "" {
			texts = append(texts, p.text)
		}
	}
	return Fragment{text: strings.Join(texts, "\n")}
}

// Text returns the raw text including open holes
func (f Fragment) Text() string {
	return f.text
}

// String implements fmt.Stringer
func (f Fragment) String() string {
	return f.text
}

// IsEmpty reports whether the fragment has no text
func (f Fragment) IsEmpty() bool {
	return f.text == ""
}

// Holes returns the sorted names of the holes still open
func (f Fragment) Holes() []string {
	seen := make(map[string]bool)
	var holes []string
	for _, m := range holeRegex.FindAllStringSubmatch(f.text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			holes = append(holes, m[1])
		}
	}
	sort.Strings(holes)
	return holes
}

// Has reports whether the named hole is open
func (f Fragment) Has(name string) bool {
	return strings.Contains(f.text, "${"+name+"}")
}

// Fill substitutes the holes named in values and returns a new fragment with
// the remaining holes still open. Substitution is a single pass: holes that
// appear inside a substituted value are left for a later Fill.
//
// A hole standing alone on its line is a block hole. Every line of its value
// is placed on its own line at the hole's indentation, and an empty value
// removes the line.
func (f Fragment) Fill(values Values) Fragment {
	if len(values) == 0 || f.text == "" {
		return f
	}

	lines := strings.Split(f.text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if name, indent, ok := blockHole(line); ok {
			if value, found := values[name]; found {
				out = append(out, indentBlock(value, indent)...)
				continue
			}
		}
		out = append(out, holeRegex.ReplaceAllStringFunc(line, func(hole string) string {
			name := hole[2 : len(hole)-1]
			if value, found := values[name]; found {
				return value
			}
			return hole
		}))
	}
	return Fragment{text: strings.Join(out, "\n")}
}

// Render fills every hole and returns the final text. It fails with
// ErrMissingValue if any hole remains open afterwards.
func (f Fragment) Render(values Values) (string, error) {
	filled := f.Fill(values)
	if holes := filled.Holes(); len(holes) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingValue, strings.Join(holes, ", "))
	}
	return filled.text, nil
}

// Indent prefixes every non-empty line with prefix
func (f Fragment) Indent(prefix string) Fragment {
	return Fragment{text: strings.Join(indentBlock(f.text, prefix), "\n")}
}

// blockHole reports whether line holds nothing but a single hole
func blockHole(line string) (name, indent string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimRight(trimmed, " \t") != trimmed {
		return "", "", false
	}
	loc := holeRegex.FindStringSubmatchIndex(trimmed)
	if loc == nil || loc[0] != 0 || loc[1] != len(trimmed) {
		return "", "", false
	}
	return trimmed[loc[2]:loc[3]], line[:len(line)-len(trimmed)], true
}

func indentBlock(value, indent string) []string {
	value = strings.Trim(value, "\n")
	if value == "" {
		return nil
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		} else {
			lines[i] = ""
		}
	}
	return lines
}
