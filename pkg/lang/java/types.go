package java

import (
	"slices"

	"github.com/cmmoran/langgen/pkg/render"
	"github.com/cmmoran/langgen/pkg/tokens"
)

// Item is a Java type that can be embedded in a token stream. The set of
// implementations is closed: Type, Local, Primitive, VoidType and Optional.
type Item interface {
	tokens.Item[*Scope]

	// Name returns the simple name.
	Name() string
	// Package returns the owning package, empty for local names.
	Package() string
	// Arguments returns the generic arguments.
	Arguments() []Item

	importKeys(add func(Key))
}

// Type is a class or interface declared in a package.
type Type struct {
	pkg  string
	name string
	path []string
	args []Item
}

// Imported returns the type pkg.name.
func Imported(pkg, name string) Type {
	return Type{pkg: pkg, name: name}
}

func (t Type) Name() string      { return t.name }
func (t Type) Package() string   { return t.pkg }
func (t Type) Arguments() []Item { return slices.Clone(t.args) }

// Path returns the nested class segments.
func (t Type) Path() []string { return slices.Clone(t.path) }

// WithPath returns a copy of t naming the nested class seg. Generic
// arguments are discarded.
func (t Type) WithPath(seg string) Type {
	return Type{
		pkg:  t.pkg,
		name: t.name,
		path: append(slices.Clone(t.path), seg),
	}
}

// WithArguments returns a copy of t with generic arguments args.
func (t Type) WithArguments(args ...Item) Type {
	t.path = slices.Clone(t.path)
	t.args = slices.Clone(args)
	return t
}

// AsRaw returns the raw type: t without generic arguments.
func (t Type) AsRaw() Type {
	t.path = slices.Clone(t.path)
	t.args = nil
	return t
}

// IsGeneric reports whether t carries generic arguments.
func (t Type) IsGeneric() bool { return len(t.args) > 0 }

// Key returns the import key of t.
func (t Type) Key() Key { return Key{Package: t.pkg, Name: t.name} }

func (t Type) Format(w *render.Writer, s *Scope, level int) error {
	if s.Qualification(t).Qualified() {
		if err := w.WriteString(t.pkg + sep); err != nil {
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
	if err := w.WriteString("<"); err != nil {
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
	return w.WriteString(">")
}

func (t Type) importKeys(add func(Key)) {
	for _, arg := range t.args {
		arg.importKeys(add)
	}
	add(t.Key())
}

// Local is a name used as is: never qualified, never imported.
type Local struct {
	name string
}

// LocalType returns the local name name.
func LocalType(name string) Local {
	return Local{name: name}
}

func (l Local) Name() string       { return l.name }
func (Local) Package() string      { return "" }
func (Local) Arguments() []Item    { return nil }
func (Local) importKeys(func(Key)) {}

func (l Local) Format(w *render.Writer, _ *Scope, _ int) error {
	return w.WriteString(l.name)
}

// Primitive is a primitive type with its boxed counterpart.
type Primitive struct {
	primitive string
	boxed     string
}

// Primitive types.
var (
	Short   = Primitive{primitive: "short", boxed: "Short"}
	Int     = Primitive{primitive: "int", boxed: "Integer"}
	Long    = Primitive{primitive: "long", boxed: "Long"}
	Float   = Primitive{primitive: "float", boxed: "Float"}
	Double  = Primitive{primitive: "double", boxed: "Double"}
	Char    = Primitive{primitive: "char", boxed: "Character"}
	Boolean = Primitive{primitive: "boolean", boxed: "Boolean"}
	Byte    = Primitive{primitive: "byte", boxed: "Byte"}
)

// Primitives lists every primitive type.
var Primitives = []Primitive{Short, Int, Long, Float, Double, Char, Boolean, Byte}

// LookupPrimitive returns the primitive spelled name, e.g. "int".
func LookupPrimitive(name string) (Primitive, bool) {
	for _, p := range Primitives {
		if p.primitive == name {
			return p, true
		}
	}
	return Primitive{}, false
}

func (p Primitive) Name() string       { return p.primitive }
func (Primitive) Package() string      { return JavaLang }
func (Primitive) Arguments() []Item    { return nil }
func (Primitive) importKeys(func(Key)) {}

// BoxedName returns the spelling used as a generic argument, e.g. "Integer".
func (p Primitive) BoxedName() string { return p.boxed }

// Boxed returns the boxed class of p, e.g. java.lang.Integer.
func (p Primitive) Boxed() Type {
	return Imported(JavaLang, p.boxed)
}

func (p Primitive) Format(w *render.Writer, _ *Scope, level int) error {
	if level > 0 {
		return w.WriteString(p.boxed)
	}
	return w.WriteString(p.primitive)
}

// VoidType is the void type.
type VoidType struct{}

// Void is void, or Void when used as a generic argument.
var Void = VoidType{}

func (VoidType) Name() string         { return "void" }
func (VoidType) Package() string      { return JavaLang }
func (VoidType) Arguments() []Item    { return nil }
func (VoidType) importKeys(func(Key)) {}

func (VoidType) Format(w *render.Writer, _ *Scope, level int) error {
	if level > 0 {
		return w.WriteString("Void")
	}
	return w.WriteString("void")
}

// Optional is an optional value. It imports and identifies as its value
// type, but is printed as its field type, the complete wrapper spelling.
type Optional struct {
	value Item
	field Item
}

// OptionalOf returns an optional of value printed as field, e.g.
// OptionalOf(Imported("a", "B"), Imported("java.util", "Optional").WithArguments(...)).
func OptionalOf(value, field Item) Optional {
	return Optional{value: value, field: field}
}

// Value returns the value type, without optionality.
func (o Optional) Value() Item { return o.value }

// Field returns the field type, including the wrapper.
func (o Optional) Field() Item { return o.field }

func (o Optional) Name() string      { return o.value.Name() }
func (o Optional) Package() string   { return o.value.Package() }
func (o Optional) Arguments() []Item { return o.value.Arguments() }

func (o Optional) importKeys(add func(Key)) {
	o.value.importKeys(add)
}

func (o Optional) Format(w *render.Writer, s *Scope, level int) error {
	return o.field.Format(w, s, level)
}
