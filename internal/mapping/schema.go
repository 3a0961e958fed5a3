package mapping

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://module_mapping.json"

// schemaJSON describes module_mapping.json: an object whose values each
// carry a non-empty id and a name.
const schemaJSON = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["id", "name"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"}
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not raw bytes.
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks raw JSON against the mapping schema.
func Validate(raw []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile mapping schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
