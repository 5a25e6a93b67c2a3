// Package java is the Java backend.
//
// Imports are keyed by (package, name). Keys are resolved in ascending order
// and the first package to claim a simple name owns it for the whole file:
// later types with the same simple name get no import and are printed fully
// qualified. Types in java.lang and in the file's own package are never
// imported.
package java

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/cmmoran/langgen/pkg/lang"
	"github.com/cmmoran/langgen/pkg/tokens"
)

// JavaLang is the package whose types are always in scope.
const JavaLang = "java.lang"

const sep = "."

// Tokens is a token stream of Java code.
type Tokens = tokens.Tokens[*Scope]

// NewTokens returns an empty Java token stream.
func NewTokens() *Tokens { return tokens.New[*Scope]() }

// Key is the import key of a Java type.
type Key struct {
	Package string
	Name    string
}

// Compare orders keys by package, then by name.
func (k Key) Compare(o Key) int {
	if c := strings.Compare(k.Package, o.Package); c != 0 {
		return c
	}
	return strings.Compare(k.Name, o.Name)
}

func (k Key) String() string { return k.Package + sep + k.Name }

// ImportTable maps a simple name to the single package allowed to use it
// unqualified in a file. Entries are never overwritten.
type ImportTable struct {
	owners map[string]string
}

func newImportTable(seed map[string]string) *ImportTable {
	owners := make(map[string]string, len(seed))
	maps.Copy(owners, seed)
	return &ImportTable{owners: owners}
}

// Lookup returns the package owning name.
func (t *ImportTable) Lookup(name string) (string, bool) {
	pkg, ok := t.owners[name]
	return pkg, ok
}

// Len returns the number of registered names.
func (t *ImportTable) Len() int { return len(t.owners) }

// Names returns the registered names in ascending order.
func (t *ImportTable) Names() []string {
	return slices.Sorted(maps.Keys(t.owners))
}

func (t *ImportTable) register(name, pkg string) bool {
	if _, ok := t.owners[name]; ok {
		return false
	}
	t.owners[name] = pkg
	return true
}

// Config holds the file-level settings of a Java render.
type Config struct {
	Package string `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	// Imported pre-registers simple names as already imported from a
	// package, for streams rendered into a file whose imports were written
	// by an earlier call.
	Imported map[string]string `json:"imported,omitempty" yaml:"imported,omitempty" toml:"imported,omitempty" mapstructure:"imported,omitempty"`
}

// Option configures a Java backend.
type Option func(*Config)

// WithPackage sets the package declaration of rendered files.
func WithPackage(name string) Option { return func(c *Config) { c.Package = name } }

// WithImported marks name as already imported from pkg.
func WithImported(name, pkg string) Option {
	return func(c *Config) {
		if c.Imported == nil {
			c.Imported = make(map[string]string)
		}
		c.Imported[name] = pkg
	}
}

// Java is the Java language backend.
type Java struct {
	cfg Config
}

var (
	_ lang.Language[*Scope]      = (*Java)(nil)
	_ lang.Importer[*Scope, Key] = (*Java)(nil)
)

// New returns a Java backend configured by opts.
func New(opts ...Option) *Java {
	j := &Java{}
	for _, fn := range opts {
		fn(&j.cfg)
	}
	return j
}

// NewWithConfig returns a Java backend using cfg.
func NewWithConfig(cfg Config) *Java {
	cfg.Imported = maps.Clone(cfg.Imported)
	return &Java{cfg: cfg}
}

// Config returns the backend configuration.
func (j *Java) Config() Config {
	cfg := j.cfg
	cfg.Imported = maps.Clone(j.cfg.Imported)
	return cfg
}

func (j *Java) Name() string { return "java" }

// QuoteString returns s as a Java string literal.
func (j *Java) QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\u00`)
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

const hex = "0123456789abcdef"

func (j *Java) CollectImports(items iter.Seq[tokens.Item[*Scope]]) []Key {
	keys := lang.NewKeySet(Key.Compare)
	for it := range items {
		if ty, ok := it.(Item); ok {
			ty.importKeys(keys.Add)
		}
	}
	return keys.Sorted()
}

func (j *Java) Scope() *Scope {
	return &Scope{
		pkg:   j.cfg.Package,
		table: newImportTable(j.cfg.Imported),
	}
}

// Resolve runs the import resolution pass over keys, which must be ascending
// and free of duplicates, and returns the resulting scope.
func (j *Java) Resolve(keys []Key) *Scope {
	s := j.Scope()
	for _, k := range keys {
		if k.Package == JavaLang || k.Package == s.pkg {
			continue
		}
		if !s.table.register(k.Name, k.Package) {
			continue
		}
		s.imports = append(s.imports, k)
	}
	return s
}

func (j *Java) AssembleFile(body *Tokens) (*Tokens, *Scope) {
	scope := j.Resolve(j.CollectImports(body.Walk()))

	file := NewTokens()
	if scope.pkg != "" {
		file.Literal("package").Space().Literal(scope.pkg + ";")
		file.Line()
	}
	if len(scope.imports) > 0 {
		for _, k := range scope.imports {
			file.Literal("import").Space().Literal(k.String() + ";")
			file.Push()
		}
		file.Line()
	}
	file.Extend(body)
	return file, scope
}
