package document

import (
	_ "embed"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaBytes []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaBytes)

// Schema returns the JSON schema documents are validated against.
func Schema() []byte { return schemaBytes }

func validateSchema(raw map[string]any) error {
	if raw == nil {
		raw = map[string]any{}
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return errors.Wrap(err, "validate document schema")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, verr.Field()+": "+verr.Description())
	}
	return errors.Wrapf(ErrInvalid, "schema: %s", strings.Join(msgs, "; "))
}
