package document

import (
	"go/token"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/langgen/pkg/lang/golang"
)

// AliasName returns the exported Go identifier used for the alias of symbol
// name.
func AliasName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// WriteAliases writes a Go file declaring one exported type alias per symbol
// of a Go document, e.g. `type Dur = time.Duration` for a symbol named dur.
// The file is built and formatted by jennifer, independently of the body.
func (d *Document) WriteAliases(w io.Writer) error {
	if d.Language != LanguageGo {
		return errors.WithHint(errors.Wrapf(ErrUnsupported, "aliases need a go document, got %q", d.Language), "set language to go")
	}
	if d.Package == "" {
		return errors.WithHint(errors.Wrap(ErrInvalid, "aliases need a package"), "set package in the document or pass --package")
	}
	if err := d.Validate(); err != nil {
		return err
	}

	r := newResolver(d.Symbols, buildGo)
	f := jen.NewFile(d.Package)
	if d.source != "" {
		f.HeaderComment("Code generated by langgen from " + d.source + ". DO NOT EDIT.")
	} else {
		f.HeaderComment("Code generated by langgen. DO NOT EDIT.")
	}

	owners := make(map[string]string, len(d.Symbols))
	for _, name := range d.SymbolNames() {
		item, err := r.resolve(name)
		if err != nil {
			return err
		}
		alias := AliasName(name)
		if !token.IsIdentifier(alias) {
			return errors.Wrapf(ErrInvalid, "symbol %q does not name a go identifier", name)
		}
		if other, ok := owners[alias]; ok {
			return errors.Wrapf(ErrInvalid, "symbols %q and %q both alias %s", other, name, alias)
		}
		owners[alias] = name
		// a local type named like its alias would alias itself
		if t, ok := item.(golang.Type); ok && t.Module() == "" && !t.IsGeneric() && len(t.Path()) == 0 && t.Name() == alias {
			continue
		}
		f.Type().Id(alias).Op("=").Add(golang.Code(item))
	}

	if err := f.Render(w); err != nil {
		return errors.Wrap(err, "render aliases")
	}
	return nil
}

// AliasFileName returns the file name aliases of a document named base are
// written to.
func AliasFileName(base string) string {
	return strings.TrimSuffix(base, ".go") + "_aliases.go"
}
