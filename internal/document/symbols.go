package document

import (
	"github.com/cockroachdb/errors"

	"github.com/cmmoran/langgen/pkg/lang/golang"
	"github.com/cmmoran/langgen/pkg/lang/java"
)

// resolver builds the symbols of a document on demand, memoizing results
// and rejecting reference cycles.
type resolver[T any] struct {
	specs     map[string]Symbol
	built     map[string]T
	resolving map[string]bool
	build     func(r *resolver[T], sym Symbol) (T, error)
}

func newResolver[T any](specs map[string]Symbol, build func(r *resolver[T], sym Symbol) (T, error)) *resolver[T] {
	return &resolver[T]{
		specs:     specs,
		built:     make(map[string]T),
		resolving: make(map[string]bool),
		build:     build,
	}
}

func (r *resolver[T]) resolve(name string) (T, error) {
	var zero T
	if t, ok := r.built[name]; ok {
		return t, nil
	}
	sym, ok := r.specs[name]
	if !ok {
		return zero, errors.Wrapf(ErrUnknownSymbol, "%q", name)
	}
	if r.resolving[name] {
		return zero, errors.Wrapf(ErrSymbolCycle, "%q", name)
	}
	r.resolving[name] = true
	defer delete(r.resolving, name)

	t, err := r.build(r, sym)
	if err != nil {
		return zero, errors.Wrapf(err, "symbol %q", name)
	}
	r.built[name] = t
	return t, nil
}

func (r *resolver[T]) resolveAll(names []string) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, name := range names {
		t, err := r.resolve(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func unsupported(lang string, kind Kind) error {
	return errors.Wrapf(ErrUnsupported, "%s symbols are not supported for %s", kind, lang)
}

func buildGo(r *resolver[golang.Item], sym Symbol) (golang.Item, error) {
	kind, err := sym.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindQualified, KindLocal:
		t := golang.Local(sym.Name)
		if kind == KindQualified {
			t = golang.Imported(sym.Qualifier, sym.Name)
		}
		for _, seg := range sym.Path {
			t = t.WithPath(seg)
		}
		if len(sym.Args) > 0 {
			args, err := r.resolveAll(sym.Args)
			if err != nil {
				return nil, err
			}
			t = t.WithArguments(args...)
		}
		return t, nil
	case KindPrimitive:
		return golang.Local(sym.Primitive), nil
	case KindArray:
		elem, err := r.resolve(sym.Array)
		if err != nil {
			return nil, err
		}
		return golang.ArrayOf(elem), nil
	case KindMap:
		kv, err := r.resolveAll([]string{sym.Map.Key, sym.Map.Value})
		if err != nil {
			return nil, err
		}
		return golang.MapOf(kv[0], kv[1]), nil
	case KindPointer:
		elem, err := r.resolve(sym.Pointer)
		if err != nil {
			return nil, err
		}
		return golang.PointerTo(elem), nil
	case KindInterface:
		return golang.Interface, nil
	}
	return nil, unsupported(LanguageGo, kind)
}

func buildJava(r *resolver[java.Item], sym Symbol) (java.Item, error) {
	kind, err := sym.Kind()
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindQualified:
		t := java.Imported(sym.Qualifier, sym.Name)
		for _, seg := range sym.Path {
			t = t.WithPath(seg)
		}
		if len(sym.Args) > 0 {
			args, err := r.resolveAll(sym.Args)
			if err != nil {
				return nil, err
			}
			t = t.WithArguments(args...)
		}
		return t, nil
	case KindLocal:
		if len(sym.Path) > 0 || len(sym.Args) > 0 {
			return nil, errors.Wrap(ErrInvalid, "java local names cannot have a path or arguments")
		}
		return java.LocalType(sym.Name), nil
	case KindPrimitive:
		p, ok := java.LookupPrimitive(sym.Primitive)
		if !ok {
			return nil, errors.Wrapf(ErrInvalid, "%q is not a java primitive", sym.Primitive)
		}
		return p, nil
	case KindVoid:
		return java.Void, nil
	case KindOptional:
		vf, err := r.resolveAll([]string{sym.Optional.Value, sym.Optional.Field})
		if err != nil {
			return nil, err
		}
		return java.OptionalOf(vf[0], vf[1]), nil
	}
	return nil, unsupported(LanguageJava, kind)
}
