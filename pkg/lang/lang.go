// Package lang defines the contract every target language implements and the
// generic drivers that render a token stream into a complete source file.
package lang

import (
	"bytes"
	"io"
	"iter"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/langgen/pkg/render"
	"github.com/cmmoran/langgen/pkg/tokens"
)

// Language is implemented by every backend. S is the per-render scope handed
// to the language's items while formatting.
//
// Implementations hold configuration only. AssembleFile builds a fresh scope
// on every call, so a single Language value can serve concurrent renders.
type Language[S any] interface {
	tokens.Quoter

	// Name identifies the language, e.g. "go".
	Name() string

	// Scope returns a scope with the configured package and pre-registered
	// imports but nothing resolved from a stream.
	Scope() S

	// AssembleFile resolves the imports of body and returns the complete
	// file (package line, imports, body) together with the resolved scope.
	AssembleFile(body *tokens.Tokens[S]) (*tokens.Tokens[S], S)
}

// Importer is the import discovery half of a backend. K is the key used to
// deduplicate imports: a module path, a (package, name) pair.
type Importer[S any, K any] interface {
	// CollectImports returns the import keys reachable from items, ascending
	// and without duplicates. The result does not depend on iteration order.
	CollectImports(items iter.Seq[tokens.Item[S]]) []K
}

// WriteFile renders body as a complete file of language l into w.
func WriteFile[S any](w io.Writer, l Language[S], body *tokens.Tokens[S], opts ...render.Option) error {
	file, scope := l.AssembleFile(body)
	return write(w, l, file, scope, opts...)
}

// FileString renders body as a complete file and returns it.
func FileString[S any](l Language[S], body *tokens.Tokens[S], opts ...render.Option) (string, error) {
	var buf bytes.Buffer
	if err := WriteFile(&buf, l, body, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FileLines renders body as a complete file and splits it into lines without
// terminators.
func FileLines[S any](l Language[S], body *tokens.Tokens[S], opts ...render.Option) ([]string, error) {
	s, err := FileString(l, body, opts...)
	if err != nil {
		return nil, err
	}
	return splitLines(s), nil
}

// String renders toks without a file header. Nothing is imported, so every
// reference not covered by the configured package or pre-registered imports
// prints in its qualified form.
func String[S any](l Language[S], toks *tokens.Tokens[S], opts ...render.Option) (string, error) {
	var buf bytes.Buffer
	if err := write(&buf, l, toks, l.Scope(), opts...); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func write[S any](w io.Writer, l Language[S], toks *tokens.Tokens[S], scope S, opts ...render.Option) error {
	out := render.NewWriter(w, opts...)
	if err := toks.Format(out, scope, l); err != nil {
		return errors.Wrapf(err, "format %s tokens", l.Name())
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "finish %s output", l.Name())
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
