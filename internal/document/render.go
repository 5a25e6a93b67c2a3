package document

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/langgen/pkg/lang"
	"github.com/cmmoran/langgen/pkg/lang/golang"
	"github.com/cmmoran/langgen/pkg/lang/java"
	"github.com/cmmoran/langgen/pkg/render"
	"github.com/cmmoran/langgen/pkg/tokens"
)

// Result describes a rendered document.
type Result struct {
	Language string
	Package  string
	// Imports lists the emitted imports: module paths for Go, fully
	// qualified class names for Java.
	Imports []string
}

// DefaultIndent returns the writer option matching the conventional
// indentation of language.
func DefaultIndent(language string) render.Option {
	if language == LanguageGo {
		return render.WithTabs()
	}
	return render.WithSpaces(4)
}

// Render writes the file described by d to w. Writer options are applied
// after the language's default indentation.
func (d *Document) Render(w io.Writer, opts ...render.Option) (*Result, error) {
	if d.Language == "" {
		return nil, errors.WithHintf(errors.Wrap(ErrUnknownLanguage, "document has no language"), "set language to one of: %s", strings.Join(Languages, ", "))
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	segs, err := scanBody(d.Body)
	if err != nil {
		return nil, err
	}
	opts = append([]render.Option{DefaultIndent(d.Language)}, opts...)

	switch d.Language {
	case LanguageGo:
		return d.renderGo(w, segs, opts)
	case LanguageJava:
		return d.renderJava(w, segs, opts)
	}
	return nil, errors.Wrapf(ErrUnknownLanguage, "%q", d.Language)
}

func (d *Document) renderGo(w io.Writer, segs []segment, opts []render.Option) (*Result, error) {
	r := newResolver(d.Symbols, buildGo)
	if _, err := r.resolveAll(d.SymbolNames()); err != nil {
		return nil, err
	}
	toks := golang.NewTokens()
	err := appendBody(toks, segs, func(name string) (tokens.Item[*golang.Scope], error) {
		return r.resolve(name)
	})
	if err != nil {
		return nil, err
	}

	g := golang.New(golang.WithPackage(d.Package))
	if err := lang.WriteFile(w, g, toks, opts...); err != nil {
		return nil, err
	}
	return &Result{
		Language: LanguageGo,
		Package:  d.Package,
		Imports:  g.CollectImports(toks.Walk()),
	}, nil
}

func (d *Document) renderJava(w io.Writer, segs []segment, opts []render.Option) (*Result, error) {
	r := newResolver(d.Symbols, buildJava)
	if _, err := r.resolveAll(d.SymbolNames()); err != nil {
		return nil, err
	}
	toks := java.NewTokens()
	err := appendBody(toks, segs, func(name string) (tokens.Item[*java.Scope], error) {
		return r.resolve(name)
	})
	if err != nil {
		return nil, err
	}

	j := java.NewWithConfig(java.Config{Package: d.Package, Imported: d.Imports})
	if err := lang.WriteFile(w, j, toks, opts...); err != nil {
		return nil, err
	}
	keys := j.Resolve(j.CollectImports(toks.Walk())).Imports()
	imports := make([]string, 0, len(keys))
	for _, k := range keys {
		imports = append(imports, k.String())
	}
	return &Result{
		Language: LanguageJava,
		Package:  d.Package,
		Imports:  imports,
	}, nil
}
