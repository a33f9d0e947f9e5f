package generation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks doc against schema. An empty schema accepts anything.
func Validate(schema Schema, doc any) error {
	if len(schema) == 0 {
		return nil
	}
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrSchema)
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: validation error: %w", ErrSchema, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrSchema, strings.Join(errs, "; "))
	}
	return nil
}

// Object builds an object schema with the given properties, all required.
func Object(properties map[string]any, required ...string) Schema {
	schema := Schema{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Array builds an array schema.
func Array(items any, minItems, maxItems int) Schema {
	schema := Schema{"type": "array", "items": items}
	if minItems > 0 {
		schema["minItems"] = minItems
	}
	if maxItems > 0 {
		schema["maxItems"] = maxItems
	}
	return schema
}

// String is a string schema, optionally restricted to an enum.
func String(enum ...string) Schema {
	schema := Schema{"type": "string"}
	if len(enum) > 0 {
		schema["enum"] = enum
	}
	return schema
}

// NonEmptyString is a string schema with minLength 1.
func NonEmptyString() Schema {
	return Schema{"type": "string", "minLength": 1}
}

// NullableString accepts a string or null.
func NullableString() Schema {
	return Schema{"type": []string{"string", "null"}}
}

// Integer is an integer schema bounded to [minimum, maximum].
func Integer(minimum, maximum int) Schema {
	return Schema{"type": "integer", "minimum": minimum, "maximum": maximum}
}
