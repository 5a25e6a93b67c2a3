// Package render is the whitespace engine used to turn token streams into text.
//
// A Writer never emits whitespace eagerly: line breaks, blank lines and spaces
// are recorded as pending and only materialize when the next piece of text is
// written. This keeps output free of leading blank lines, doubled separators
// and trailing spaces regardless of how the stream was assembled.
package render

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Option configures a Writer.
type Option func(*Writer)

// WithIndent sets the string written once per indentation level.
func WithIndent(unit string) Option { return func(w *Writer) { w.indent = unit } }

// WithSpaces indents with n spaces per level.
func WithSpaces(n int) Option { return WithIndent(strings.Repeat(" ", n)) }

// WithTabs indents with one tab per level.
func WithTabs() Option { return WithIndent("\t") }

// WithNewline sets the line terminator.
func WithNewline(nl string) Option { return func(w *Writer) { w.newline = nl } }

// Writer formats text into an io.Writer. The first write error is kept and
// returned by every subsequent call; nothing written before it is rolled back.
type Writer struct {
	out     io.Writer
	indent  string
	newline string

	level     int
	started   bool
	lineStart bool
	pending   int // newlines owed before the next text
	space     bool
	err       error
}

// NewWriter returns a Writer indenting with four spaces and "\n" line endings
// unless overridden by opts.
func NewWriter(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:       out,
		indent:    "    ",
		newline:   "\n",
		lineStart: true,
	}
	for _, fn := range opts {
		fn(w)
	}
	return w
}

// WriteString writes a run of literal text, first flushing any pending line
// breaks, indentation and space.
func (w *Writer) WriteString(s string) error {
	if w.err != nil {
		return w.err
	}
	if s == "" {
		return nil
	}
	if w.pending > 0 {
		w.raw(strings.Repeat(w.newline, w.pending))
		w.pending = 0
		w.lineStart = true
		w.space = false
	}
	if w.lineStart {
		if w.level > 0 && w.indent != "" {
			w.raw(strings.Repeat(w.indent, w.level))
		}
	} else if w.space {
		w.raw(" ")
	}
	w.raw(s)
	w.started = true
	w.lineStart = false
	w.space = false
	return w.err
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = errors.Wrap(err, "write output")
	}
}

// Space requests a single space before the next text on the same line.
func (w *Writer) Space() {
	if w.started && !w.lineStart && w.pending == 0 {
		w.space = true
	}
}

// Push ends the current line, unless nothing has been written on it.
func (w *Writer) Push() { w.need(1) }

// Line ends the current line and requests one blank line before the next text.
// Repeated calls collapse into a single blank line.
func (w *Writer) Line() { w.need(2) }

func (w *Writer) need(n int) {
	w.space = false
	if !w.started {
		return
	}
	if w.lineStart && w.pending == 0 {
		n--
	}
	if n > w.pending {
		w.pending = n
	}
}

// Indent ends the current line and increases the indentation level.
func (w *Writer) Indent() {
	w.Push()
	w.level++
}

// Unindent ends the current line and decreases the indentation level.
func (w *Writer) Unindent() {
	w.Push()
	if w.level > 0 {
		w.level--
	}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error { return w.err }

// Close terminates the last line. Pending blank lines at the end of the
// output are dropped.
func (w *Writer) Close() error {
	if w.started && !w.lineStart {
		w.raw(w.newline)
		w.lineStart = true
	}
	w.pending = 0
	return w.err
}
