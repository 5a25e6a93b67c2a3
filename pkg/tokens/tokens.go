// Package tokens holds the language-neutral token stream: literal text runs,
// whitespace directives and embedded language items such as type references.
package tokens

import (
	"iter"

	"github.com/cmmoran/langgen/pkg/render"
)

// Item is a language-specific element embedded in a stream. S is the
// per-render scope of the language the item belongs to; it carries whatever
// the item needs to decide how to print itself (file package, import table).
type Item[S any] interface {
	// Format writes the item. level is the generic-argument nesting depth,
	// zero for items appearing directly in the stream.
	Format(w *render.Writer, scope S, level int) error
}

// Quoter turns raw text into a quoted string literal.
type Quoter interface {
	QuoteString(s string) string
}

// Kind identifies the type of a single token.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindSpace
	KindPush
	KindLine
	KindIndent
	KindUnindent
	KindQuoted
	KindItem
)

type token[S any] struct {
	kind Kind
	text string
	item Item[S]
}

// Tokens is an ordered stream of tokens for one language. The zero value is
// an empty stream ready to use.
type Tokens[S any] struct {
	toks []token[S]
}

// New returns an empty stream.
func New[S any]() *Tokens[S] {
	return &Tokens[S]{}
}

// Literal appends a run of text reproduced verbatim.
func (t *Tokens[S]) Literal(s string) *Tokens[S] {
	t.toks = append(t.toks, token[S]{kind: KindLiteral, text: s})
	return t
}

// Space appends a space separator.
func (t *Tokens[S]) Space() *Tokens[S] { return t.add(KindSpace) }

// Push appends a line break.
func (t *Tokens[S]) Push() *Tokens[S] { return t.add(KindPush) }

// Line appends a blank-line separator.
func (t *Tokens[S]) Line() *Tokens[S] { return t.add(KindLine) }

// Indent appends a line break followed by one more level of indentation.
func (t *Tokens[S]) Indent() *Tokens[S] { return t.add(KindIndent) }

// Unindent appends a line break followed by one less level of indentation.
func (t *Tokens[S]) Unindent() *Tokens[S] { return t.add(KindUnindent) }

// Quoted appends s, to be quoted by the language when formatted.
func (t *Tokens[S]) Quoted(s string) *Tokens[S] {
	t.toks = append(t.toks, token[S]{kind: KindQuoted, text: s})
	return t
}

// Append appends language items.
func (t *Tokens[S]) Append(items ...Item[S]) *Tokens[S] {
	for _, it := range items {
		if it == nil {
			continue
		}
		t.toks = append(t.toks, token[S]{kind: KindItem, item: it})
	}
	return t
}

// Extend appends every token of other.
func (t *Tokens[S]) Extend(other *Tokens[S]) *Tokens[S] {
	if other != nil {
		t.toks = append(t.toks, other.toks...)
	}
	return t
}

func (t *Tokens[S]) add(k Kind) *Tokens[S] {
	t.toks = append(t.toks, token[S]{kind: k})
	return t
}

// Len returns the number of tokens.
func (t *Tokens[S]) Len() int { return len(t.toks) }

// IsEmpty reports whether the stream has no tokens.
func (t *Tokens[S]) IsEmpty() bool { return len(t.toks) == 0 }

// Kinds returns the kind of every token, in order.
func (t *Tokens[S]) Kinds() []Kind {
	out := make([]Kind, len(t.toks))
	for i, tok := range t.toks {
		out[i] = tok.kind
	}
	return out
}

// Walk yields every embedded language item in document order.
func (t *Tokens[S]) Walk() iter.Seq[Item[S]] {
	return func(yield func(Item[S]) bool) {
		for _, tok := range t.toks {
			if tok.kind != KindItem {
				continue
			}
			if !yield(tok.item) {
				return
			}
		}
	}
}

// Format writes the stream to w. Items receive scope; quoted runs are quoted
// with q. Formatting stops at the first error.
func (t *Tokens[S]) Format(w *render.Writer, scope S, q Quoter) error {
	for _, tok := range t.toks {
		var err error
		switch tok.kind {
		case KindLiteral:
			err = w.WriteString(tok.text)
		case KindSpace:
			w.Space()
		case KindPush:
			w.Push()
		case KindLine:
			w.Line()
		case KindIndent:
			w.Indent()
		case KindUnindent:
			w.Unindent()
		case KindQuoted:
			err = w.WriteString(q.QuoteString(tok.text))
		case KindItem:
			err = tok.item.Format(w, scope, 0)
		}
		if err != nil {
			return err
		}
	}
	return w.Err()
}
