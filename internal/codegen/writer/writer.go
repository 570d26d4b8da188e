// Package writer assembles generated Java source line by line
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates source lines at a tracked indentation depth. Text is
// written a whole line at a time so indentation is applied exactly once.
type Writer struct {
	buf    strings.Builder
	unit   string
	depth  int
	prefix string
}

// NewWriter creates a writer indenting each level with unit
func NewWriter(unit string) *Writer {
	return &Writer{unit: unit}
}

// Indent opens one indentation level
func (w *Writer) Indent() {
	w.depth++
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// Dedent closes one indentation level. It is a no-op at depth zero.
func (w *Writer) Dedent() {
	if w.depth == 0 {
		return
	}
	w.depth--
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// WriteLine writes s as one indented line. An empty s writes an empty line.
func (w *Writer) WriteLine(s string) {
	if s != "" {
		w.buf.WriteString(w.prefix)
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
}

// WriteLinef formats and writes one indented line
func (w *Writer) WriteLinef(format string, args ...any) {
	w.WriteLine(fmt.Sprintf(format, args...))
}

// WriteLines writes every line of s at the current indentation
func (w *Writer) WriteLines(s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		w.WriteLine(line)
	}
}

// BlankLine separates two sections. Consecutive calls and a call at the
// start of the output write nothing.
func (w *Writer) BlankLine() {
	out := w.buf.String()
	if out == "" || strings.HasSuffix(out, "\n\n") {
		return
	}
	w.buf.WriteByte('\n')
}

// WriteBlock writes opener, the content one level deeper, then closer
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteJavadoc writes a /** */ block. Lines already starting with " *" are
// written as they are, the rest get the " * " prefix.
func (w *Writer) WriteJavadoc(lines []string) {
	if len(lines) == 0 {
		return
	}
	w.WriteLine("/**")
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, " *"):
			w.WriteLine(line)
		case line == "":
			w.WriteLine(" *")
		default:
			w.WriteLine(" * " + line)
		}
	}
	w.WriteLine(" */")
}

// String returns the source written so far
func (w *Writer) String() string {
	return w.buf.String()
}

// Bytes returns the source written so far
func (w *Writer) Bytes() []byte {
	return []byte(w.buf.String())
}
