package java

import (
	"slices"
)

// Qualification is how a reference is printed within one file.
type Qualification int

const (
	// Unresolved references were not resolved for this file and print
	// qualified.
	Unresolved Qualification = iota
	// BuiltinUnqualified references live in java.lang.
	BuiltinUnqualified
	// SamePackageUnqualified references live in the file's package, or are
	// local names.
	SamePackageUnqualified
	// ImportedUnqualified references own their simple name in the file.
	ImportedUnqualified
	// CollidedQualified references lost their simple name to another
	// package and print fully qualified.
	CollidedQualified
)

var qualificationNames = [...]string{
	Unresolved:             "unresolved",
	BuiltinUnqualified:     "builtin",
	SamePackageUnqualified: "same-package",
	ImportedUnqualified:    "imported",
	CollidedQualified:      "collided",
}

func (q Qualification) String() string {
	if q < 0 || int(q) >= len(qualificationNames) {
		return "unknown"
	}
	return qualificationNames[q]
}

// Qualified reports whether the package is printed before the name.
func (q Qualification) Qualified() bool {
	return q == Unresolved || q == CollidedQualified
}

// Scope is the resolved state of one Java file render. It is read-only once
// returned by Resolve or AssembleFile.
type Scope struct {
	pkg     string
	table   *ImportTable
	imports []Key
}

// Package returns the file's package.
func (s *Scope) Package() string { return s.pkg }

// Table returns the import table.
func (s *Scope) Table() *ImportTable { return s.table }

// Imports returns the keys that produced an import statement, ascending.
func (s *Scope) Imports() []Key { return slices.Clone(s.imports) }

// Qualification reports how it is printed in this file.
func (s *Scope) Qualification(it Item) Qualification {
	pkg := it.Package()
	switch {
	case pkg == "":
		return SamePackageUnqualified
	case pkg == JavaLang:
		return BuiltinUnqualified
	case pkg == s.pkg:
		return SamePackageUnqualified
	}
	owner, ok := s.table.Lookup(it.Name())
	switch {
	case !ok:
		return Unresolved
	case owner == pkg:
		return ImportedUnqualified
	default:
		return CollidedQualified
	}
}
