package java

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/cmmoran/langgen/pkg/lang"
	"github.com/cmmoran/langgen/pkg/render"
)

const filePackage = "com.example"

var propertyPackages = []string{JavaLang, filePackage, "java.util", "org.acme"}

// typesFor maps each pick to a type whose simple name is shared by every
// fourth pick, so packages compete for names.
func typesFor(picks []int) []Item {
	items := make([]Item, 0, len(picks))
	for _, p := range picks {
		items = append(items, Imported(propertyPackages[p%len(propertyPackages)], fmt.Sprintf("T%d", p/len(propertyPackages))))
	}
	return items
}

func fileOf(items []Item) *Tokens {
	toks := NewTokens()
	for _, it := range items {
		toks.Append(it).Space()
	}
	return toks
}

// formatUnder prints it alone under scope.
func formatUnder(it Item, scope *Scope) string {
	var buf bytes.Buffer
	w := render.NewWriter(&buf)
	if err := it.Format(w, scope, 0); err != nil {
		return "error: " + err.Error()
	}
	if err := w.Close(); err != nil {
		return "error: " + err.Error()
	}
	return buf.String()
}

func TestImportProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	picks := gen.SliceOf(gen.IntRange(0, 15))
	j := New(WithPackage(filePackage))

	properties.Property("one import per importable simple name", prop.ForAll(
		func(p []int) bool {
			_, scope := j.AssembleFile(fileOf(typesFor(p)))

			var names []string
			for _, it := range typesFor(p) {
				if it.Package() == JavaLang || it.Package() == filePackage {
					continue
				}
				if !slices.Contains(names, it.Name()) {
					names = append(names, it.Name())
				}
			}
			return len(scope.Imports()) == len(names) && scope.Table().Len() == len(names)
		},
		picks,
	))

	properties.Property("imported names print unqualified, collided names qualified", prop.ForAll(
		func(p []int) bool {
			_, scope := j.AssembleFile(fileOf(typesFor(p)))
			for _, it := range typesFor(p) {
				q := scope.Qualification(it)
				owner, ok := scope.Table().Lookup(it.Name())
				switch it.Package() {
				case JavaLang, filePackage:
					if q.Qualified() {
						return false
					}
				default:
					if !ok || q.Qualified() != (owner != it.Package()) {
						return false
					}
				}
			}
			return true
		},
		picks,
	))

	properties.Property("imports and qualification ignore item order", prop.ForAll(
		func(p []int, seed int64) bool {
			items := typesFor(p)
			shuffled := slices.Clone(items)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, k int) {
				shuffled[i], shuffled[k] = shuffled[k], shuffled[i]
			})

			_, a := j.AssembleFile(fileOf(items))
			_, b := j.AssembleFile(fileOf(shuffled))
			if !slices.Equal(a.Imports(), b.Imports()) || !slices.Equal(a.Table().Names(), b.Table().Names()) {
				return false
			}
			for _, name := range a.Table().Names() {
				ownerA, _ := a.Table().Lookup(name)
				ownerB, _ := b.Table().Lookup(name)
				if ownerA != ownerB {
					return false
				}
			}
			for _, it := range items {
				if a.Qualification(it) != b.Qualification(it) || formatUnder(it, a) != formatUnder(it, b) {
					return false
				}
			}
			return true
		},
		picks,
		gen.Int64(),
	))

	properties.Property("rendering is idempotent", prop.ForAll(
		func(p []int) bool {
			toks := fileOf(typesFor(p))
			first, err := lang.FileString(j, toks)
			if err != nil {
				return false
			}
			second, err := lang.FileString(j, toks)
			return err == nil && first == second
		},
		picks,
	))

	properties.TestingRun(t)
}
