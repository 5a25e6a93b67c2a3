// Package golang is the Go backend.
//
// Imports are keyed by module path only. Every distinct module referenced by
// a stream produces one import line, and every imported type is printed with
// the last segment of its module path as qualifier:
//
//	toks := golang.NewTokens().Append(golang.Imported("foo", "Debug"))
//	s, _ := lang.FileString(golang.New(), toks)
//	// import "foo"
//	//
//	// foo.Debug
//
// Two modules sharing a last path segment produce ambiguous output; callers
// must not mix them in one file.
package golang

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/cmmoran/langgen/pkg/lang"
	"github.com/cmmoran/langgen/pkg/tokens"
)

const sep = "."

// Tokens is a token stream of Go code.
type Tokens = tokens.Tokens[*Scope]

// NewTokens returns an empty Go token stream.
func NewTokens() *Tokens { return tokens.New[*Scope]() }

// Config holds the file-level settings of a Go render.
type Config struct {
	Package string `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
}

// Option configures a Go backend.
type Option func(*Config)

// WithPackage sets the package clause of rendered files.
func WithPackage(name string) Option { return func(c *Config) { c.Package = name } }

// Scope is the per-render state of a Go file.
type Scope struct {
	pkg     string
	modules []string
}

// Package returns the file's package name.
func (s *Scope) Package() string { return s.pkg }

// Modules returns the imported module paths in ascending order.
func (s *Scope) Modules() []string { return slices.Clone(s.modules) }

// Go is the Go language backend.
type Go struct {
	cfg Config
}

var (
	_ lang.Language[*Scope]         = (*Go)(nil)
	_ lang.Importer[*Scope, string] = (*Go)(nil)
)

// New returns a Go backend configured by opts.
func New(opts ...Option) *Go {
	g := &Go{}
	for _, fn := range opts {
		fn(&g.cfg)
	}
	return g
}

// NewWithConfig returns a Go backend using cfg.
func NewWithConfig(cfg Config) *Go {
	return &Go{cfg: cfg}
}

// Config returns the backend configuration.
func (g *Go) Config() Config { return g.cfg }

func (g *Go) Name() string { return "go" }

// QuoteString returns s as a Go interpreted string literal.
func (g *Go) QuoteString(s string) string {
	return strconv.Quote(s)
}

func (g *Go) CollectImports(items iter.Seq[tokens.Item[*Scope]]) []string {
	modules := lang.NewKeySet(strings.Compare)
	for it := range items {
		if ty, ok := it.(Item); ok {
			ty.importModules(modules.Add)
		}
	}
	return modules.Sorted()
}

func (g *Go) Scope() *Scope {
	return &Scope{pkg: g.cfg.Package}
}

func (g *Go) AssembleFile(body *Tokens) (*Tokens, *Scope) {
	scope := g.Scope()
	scope.modules = g.CollectImports(body.Walk())

	file := NewTokens()
	if scope.pkg != "" {
		file.Literal("package").Space().Literal(scope.pkg)
		file.Line()
	}
	if len(scope.modules) > 0 {
		for _, m := range scope.modules {
			file.Literal("import").Space().Quoted(m)
			file.Push()
		}
		file.Line()
	}
	file.Extend(body)
	return file, scope
}
