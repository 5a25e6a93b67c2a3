// Package action holds helpers shared by the CLI actions.
package action

import (
	"fmt"

	"github.com/jinzhu/inflection"
)

// Count formats n followed by noun, pluralized unless n is one.
func Count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}
