package golang

import (
	"slices"
	"strings"

	"github.com/cmmoran/langgen/pkg/render"
	"github.com/cmmoran/langgen/pkg/tokens"
)

// Item is a Go type that can be embedded in a token stream. The set of
// implementations is closed: Type, Map, Array, Pointer and InterfaceType.
type Item interface {
	tokens.Item[*Scope]
	importModules(add func(module string))
}

// Type is a named Go type, optionally imported from a module.
type Type struct {
	module string
	name   string
	path   []string
	args   []Item
}

// Imported returns a type named name declared in the package at module.
func Imported(module, name string) Type {
	return Type{module: module, name: name}
}

// Local returns a type that is never qualified nor imported, such as a type
// declared in the file's own package or a predeclared identifier.
func Local(name string) Type {
	return Type{name: name}
}

// Module returns the import path of the type, empty for local types.
func (t Type) Module() string { return t.module }

// Name returns the simple name of the type.
func (t Type) Name() string { return t.name }

// Qualifier returns the package qualifier printed before the name: the last
// segment of the module path.
func (t Type) Qualifier() string {
	if t.module == "" {
		return ""
	}
	return t.module[strings.LastIndexByte(t.module, '/')+1:]
}

// Path returns the nested selector segments.
func (t Type) Path() []string { return slices.Clone(t.path) }

// Arguments returns the generic type arguments.
func (t Type) Arguments() []Item { return slices.Clone(t.args) }

// WithPath returns a copy of t selecting the nested member seg. Generic
// arguments are discarded.
func (t Type) WithPath(seg string) Type {
	return Type{
		module: t.module,
		name:   t.name,
		path:   append(slices.Clone(t.path), seg),
	}
}

// WithArguments returns a copy of t instantiated with args.
func (t Type) WithArguments(args ...Item) Type {
	t.path = slices.Clone(t.path)
	t.args = slices.Clone(args)
	return t
}

// AsRaw returns a copy of t without generic arguments.
func (t Type) AsRaw() Type {
	t.path = slices.Clone(t.path)
	t.args = nil
	return t
}

// IsGeneric reports whether t carries generic arguments.
func (t Type) IsGeneric() bool { return len(t.args) > 0 }

func (t Type) Format(w *render.Writer, s *Scope, level int) error {
	if q := t.Qualifier(); q != "" {
		if err := w.WriteString(q + sep); err != nil {
			return err
		}
	}
	if err := w.WriteString(t.name); err != nil {
		return err
	}
	for _, seg := range t.path {
		if err := w.WriteString(sep + seg); err != nil {
			return err
		}
	}
	if len(t.args) == 0 {
		return nil
	}
	if err := w.WriteString("["); err != nil {
		return err
	}
	for i, arg := range t.args {
		if i > 0 {
			if err := w.WriteString(", "); err != nil {
				return err
			}
		}
		if err := arg.Format(w, s, level+1); err != nil {
			return err
		}
	}
	return w.WriteString("]")
}

func (t Type) importModules(add func(string)) {
	if t.module != "" {
		add(t.module)
	}
	for _, arg := range t.args {
		arg.importModules(add)
	}
}

// Map is the type map[Key]Value.
type Map struct {
	key   Item
	value Item
}

// MapOf returns map[key]value.
func MapOf(key, value Item) Map {
	return Map{key: key, value: value}
}

func (m Map) Format(w *render.Writer, s *Scope, level int) error {
	if err := w.WriteString("map["); err != nil {
		return err
	}
	if err := m.key.Format(w, s, level); err != nil {
		return err
	}
	if err := w.WriteString("]"); err != nil {
		return err
	}
	return m.value.Format(w, s, level)
}

func (m Map) importModules(add func(string)) {
	m.key.importModules(add)
	m.value.importModules(add)
}

// Array is the slice type []Elem.
type Array struct {
	elem Item
}

// ArrayOf returns []elem.
func ArrayOf(elem Item) Array {
	return Array{elem: elem}
}

func (a Array) Format(w *render.Writer, s *Scope, level int) error {
	if err := w.WriteString("[]"); err != nil {
		return err
	}
	return a.elem.Format(w, s, level)
}

func (a Array) importModules(add func(string)) {
	a.elem.importModules(add)
}

// Pointer is the type *Elem.
type Pointer struct {
	elem Item
}

// PointerTo returns *elem.
func PointerTo(elem Item) Pointer {
	return Pointer{elem: elem}
}

func (p Pointer) Format(w *render.Writer, s *Scope, level int) error {
	if err := w.WriteString("*"); err != nil {
		return err
	}
	return p.elem.Format(w, s, level)
}

func (p Pointer) importModules(add func(string)) {
	p.elem.importModules(add)
}

// InterfaceType is the empty interface.
type InterfaceType struct{}

// Interface is the type interface{}.
var Interface = InterfaceType{}

func (InterfaceType) Format(w *render.Writer, _ *Scope, _ int) error {
	return w.WriteString("interface{}")
}

func (InterfaceType) importModules(func(string)) {}
