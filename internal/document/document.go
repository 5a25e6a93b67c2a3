// Package document loads render documents: a file describing one output
// source file as a language, a package, a table of named symbols and a body
// template referencing them.
package document

import (
	"bytes"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Supported languages.
const (
	LanguageGo   = "go"
	LanguageJava = "java"
)

// Languages lists the supported languages.
var Languages = []string{LanguageGo, LanguageJava}

var (
	// ErrUnknownLanguage is returned for a document in a language without a backend.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrUnknownSymbol is returned when a body or a symbol references an undeclared symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrSymbolCycle is returned when symbols reference each other in a loop.
	ErrSymbolCycle = errors.New("symbol cycle")
	// ErrUnsupported is returned for a symbol kind the document's language cannot express.
	ErrUnsupported = errors.New("unsupported symbol kind")
	// ErrInvalid is returned for documents failing validation.
	ErrInvalid = errors.New("invalid document")
)

// Format is the encoding of a document file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.Wrapf(ErrInvalid, "unsupported document extension %q", filepath.Ext(path))
}

// Document describes one generated file.
type Document struct {
	Language string            `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	Package  string            `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
	Output   string            `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	Imports  map[string]string `json:"imports,omitempty" yaml:"imports,omitempty" toml:"imports,omitempty"`
	Symbols  map[string]Symbol `json:"symbols,omitempty" yaml:"symbols,omitempty" toml:"symbols,omitempty"`
	Body     string            `json:"body,omitempty" yaml:"body,omitempty" toml:"body,omitempty"`

	source string
}

// Symbol declares one named type. Exactly one kind is set: a qualified
// type (Qualifier and Name), a local name (Name alone), a primitive, void, an
// optional, an array, a map, a pointer or the empty interface.
type Symbol struct {
	Qualifier string   `json:"qualifier,omitempty" yaml:"qualifier,omitempty" toml:"qualifier,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Path      []string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Args      []string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`

	Primitive string        `json:"primitive,omitempty" yaml:"primitive,omitempty" toml:"primitive,omitempty"`
	Void      bool          `json:"void,omitempty" yaml:"void,omitempty" toml:"void,omitempty"`
	Optional  *OptionalSpec `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	Array     string        `json:"array,omitempty" yaml:"array,omitempty" toml:"array,omitempty"`
	Map       *MapSpec      `json:"map,omitempty" yaml:"map,omitempty" toml:"map,omitempty"`
	Pointer   string        `json:"pointer,omitempty" yaml:"pointer,omitempty" toml:"pointer,omitempty"`
	Interface bool          `json:"interface,omitempty" yaml:"interface,omitempty" toml:"interface,omitempty"`
}

// OptionalSpec names the value and field symbols of an optional.
type OptionalSpec struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Field string `json:"field" yaml:"field" toml:"field"`
}

// MapSpec names the key and value symbols of a map.
type MapSpec struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Kind is the kind of a symbol.
type Kind string

const (
	KindQualified Kind = "qualified"
	KindLocal     Kind = "local"
	KindPrimitive Kind = "primitive"
	KindVoid      Kind = "void"
	KindOptional  Kind = "optional"
	KindArray     Kind = "array"
	KindMap       Kind = "map"
	KindPointer   Kind = "pointer"
	KindInterface Kind = "interface"
)

// Kind returns the kind of s, or an error when none or several are set.
func (s Symbol) Kind() (Kind, error) {
	var kinds []Kind
	switch {
	case s.Qualifier != "":
		kinds = append(kinds, KindQualified)
	case s.Name != "":
		kinds = append(kinds, KindLocal)
	}
	if s.Primitive != "" {
		kinds = append(kinds, KindPrimitive)
	}
	if s.Void {
		kinds = append(kinds, KindVoid)
	}
	if s.Optional != nil {
		kinds = append(kinds, KindOptional)
	}
	if s.Array != "" {
		kinds = append(kinds, KindArray)
	}
	if s.Map != nil {
		kinds = append(kinds, KindMap)
	}
	if s.Pointer != "" {
		kinds = append(kinds, KindPointer)
	}
	if s.Interface {
		kinds = append(kinds, KindInterface)
	}
	switch len(kinds) {
	case 0:
		return "", errors.Wrap(ErrInvalid, "symbol declares no kind")
	case 1:
		if kinds[0] == KindQualified && s.Name == "" {
			return "", errors.Wrap(ErrInvalid, "qualified symbol has no name")
		}
		if kinds[0] != KindQualified && kinds[0] != KindLocal && (len(s.Path) > 0 || len(s.Args) > 0) {
			return "", errors.Wrapf(ErrInvalid, "%s symbol cannot have a path or arguments", kinds[0])
		}
		return kinds[0], nil
	}
	return "", errors.Wrapf(ErrInvalid, "symbol declares several kinds: %v", kinds)
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read document %s", path)
	}
	d, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load document %s", path)
	}
	d.source = path
	return d, nil
}

// Decode parses and validates a document encoded as format.
func Decode(data []byte, format Format) (*Document, error) {
	var raw map[string]any
	if err := unmarshal(data, format, &raw); err != nil {
		return nil, err
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}
	d := &Document{}
	if err := unmarshal(data, format, d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
			return errors.Wrap(err, "decode toml")
		}
		return nil
	case FormatYAML, FormatJSON:
		// JSON documents are valid YAML.
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.Wrapf(err, "decode %s", format)
		}
		return nil
	}
	return errors.Wrapf(ErrInvalid, "unsupported format %q", format)
}

// Source returns the path the document was loaded from, if any.
func (d *Document) Source() string { return d.source }

// Validate checks the document for errors that do not need symbol
// resolution.
func (d *Document) Validate() error {
	if d.Language != "" && !slices.Contains(Languages, d.Language) {
		return errors.WithHintf(errors.Wrapf(ErrUnknownLanguage, "%q", d.Language), "supported languages: %s", strings.Join(Languages, ", "))
	}
	for _, name := range d.SymbolNames() {
		sym := d.Symbols[name]
		kind, err := sym.Kind()
		if err != nil {
			return errors.Wrapf(err, "symbol %q", name)
		}
		if kind == KindQualified && d.Language == LanguageGo {
			if err := module.CheckImportPath(sym.Qualifier); err != nil {
				return errors.Wrapf(ErrInvalid, "symbol %q: %v", name, err)
			}
		}
	}
	if d.Language == LanguageGo {
		if d.Package != "" && !token.IsIdentifier(d.Package) {
			return errors.Wrapf(ErrInvalid, "go package %q is not an identifier", d.Package)
		}
		if len(d.Imports) > 0 {
			return errors.Wrap(ErrInvalid, "pre-registered imports are only supported for java")
		}
	}
	return nil
}

// SymbolNames returns the declared symbol names in ascending order.
func (d *Document) SymbolNames() []string {
	names := make([]string, 0, len(d.Symbols))
	for name := range d.Symbols {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
