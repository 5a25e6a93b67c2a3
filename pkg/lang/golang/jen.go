package golang

import (
	"github.com/dave/jennifer/jen"
)

// Code converts a Go type tree into jennifer code, so types described for
// token streams can be reused in files built with jennifer. Jennifer applies
// its own import aliasing; the rendered qualifier can differ from the one
// this package prints when two modules share a last path segment.
func Code(it Item) *jen.Statement {
	switch t := it.(type) {
	case Type:
		var s *jen.Statement
		if t.module != "" {
			s = jen.Qual(t.module, t.name)
		} else {
			s = jen.Id(t.name)
		}
		for _, seg := range t.path {
			s = s.Dot(seg)
		}
		if len(t.args) > 0 {
			args := make([]jen.Code, 0, len(t.args))
			for _, arg := range t.args {
				args = append(args, Code(arg))
			}
			s = s.Types(args...)
		}
		return s
	case Map:
		return jen.Map(Code(t.key)).Add(Code(t.value))
	case Array:
		return jen.Index().Add(Code(t.elem))
	case Pointer:
		return jen.Op("*").Add(Code(t.elem))
	case InterfaceType:
		return jen.Interface()
	}
	return jen.Null()
}
