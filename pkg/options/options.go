package options

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/langgen/internal/document"
	"github.com/cmmoran/langgen/pkg/render"
)

// ErrInvalidOptions is returned by Normalize for contradictory settings.
var ErrInvalidOptions = errors.New("invalid options")

// Options control rendering.
//
// Documents – document files or glob patterns to render
// OutDir    – directory generated files are written to
// Manifest  – manifest file recording generated files
// Language  – language of documents that do not declare one
// Package   – package of documents that do not declare one
// Tabs      – indent with tabs
// Spaces    – indent with this many spaces
// GoFormat  – run gofmt over generated Go files
// Note: Tabs and Spaces are mutually exclusive; when neither is set each
// language uses its conventional indentation.
type Options struct {
	Documents []string `json:"documents,omitempty" yaml:"documents,omitempty" toml:"documents,omitempty" mapstructure:"documents,omitempty"`
	OutDir    string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Manifest  string   `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	Language  string   `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty" mapstructure:"language,omitempty"`
	Package   string   `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	Tabs      bool     `json:"tabs,omitempty" yaml:"tabs,omitempty" toml:"tabs,omitempty" mapstructure:"tabs,omitempty"`
	Spaces    int      `json:"spaces,omitempty" yaml:"spaces,omitempty" toml:"spaces,omitempty" mapstructure:"spaces,omitempty"`
	GoFormat  bool     `json:"go_format,omitempty" yaml:"go_format,omitempty" toml:"go_format,omitempty" mapstructure:"go_format,omitempty"`
}

func NewOptions(opts ...Option) *Options {
	o := &Options{
		OutDir:   "gen",
		Manifest: filepath.Join("gen", ".langgen.yaml"),
		GoFormat: true,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Normalize validates the options, expands document globs and fills in
// defaults.
func (o *Options) Normalize() error {
	if o.Tabs && o.Spaces > 0 {
		return errors.Wrap(ErrInvalidOptions, "tabs and spaces are mutually exclusive")
	}
	if o.Spaces < 0 {
		return errors.Wrapf(ErrInvalidOptions, "negative indentation %d", o.Spaces)
	}
	if o.Language != "" && !slices.Contains(document.Languages, o.Language) {
		return errors.Wrapf(document.ErrUnknownLanguage, "%q", o.Language)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "gen"
	}
	o.OutDir = filepath.Clean(o.OutDir)
	if len(o.Manifest) == 0 {
		o.Manifest = filepath.Join(o.OutDir, ".langgen.yaml")
	}
	o.Manifest = filepath.Clean(o.Manifest)

	docs := make([]string, 0, len(o.Documents))
	for _, pattern := range o.Documents {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return errors.Wrapf(err, "expand %q", pattern)
		}
		if len(matches) == 0 {
			// not a pattern, or nothing matched: keep it so loading reports it
			matches = []string{pattern}
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if !slices.Contains(docs, m) {
				docs = append(docs, m)
			}
		}
	}
	o.Documents = docs
	return nil
}

// WriterOptions returns the render options implied by the indentation
// settings. Empty means the language default.
func (o *Options) WriterOptions() []render.Option {
	switch {
	case o.Tabs:
		return []render.Option{render.WithTabs()}
	case o.Spaces > 0:
		return []render.Option{render.WithSpaces(o.Spaces)}
	}
	return nil
}

// Apply fills the language and package of d when the document leaves them
// empty.
func (o *Options) Apply(d *document.Document) {
	if d.Language == "" {
		d.Language = o.Language
	}
	if d.Package == "" {
		d.Package = o.Package
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithDocuments(paths ...string) Option {
	return func(o *Options) { o.Documents = append(o.Documents, paths...) }
}
func WithOutDir(d string) Option   { return func(o *Options) { o.OutDir = d } }
func WithManifest(p string) Option { return func(o *Options) { o.Manifest = p } }
func WithLanguage(l string) Option { return func(o *Options) { o.Language = l } }
func WithPackage(p string) Option  { return func(o *Options) { o.Package = p } }
func WithTabs() Option             { return func(o *Options) { o.Tabs, o.Spaces = true, 0 } }
func WithSpaces(n int) Option      { return func(o *Options) { o.Spaces, o.Tabs = n, false } }
func WithGoFormat(on bool) Option  { return func(o *Options) { o.GoFormat = on } }
