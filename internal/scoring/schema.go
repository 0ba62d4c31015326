package scoring

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/mindcheck/internal/catalog"
)

// Schema is a named JSON schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// RequestSchema describes the outbound payload: every field of the default
// catalog present, non-null, and nothing else. Value types are not checked
// here.
var RequestSchema = &Schema{
	Name:       "assessment-request",
	Definition: requestDefinition(catalog.Default()),
}

// ResponseSchema describes a successful scoring reply.
var ResponseSchema = &Schema{
	Name: "assessment-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"has_potential_depression": map[string]any{"type": "boolean"},
			"score":                    map[string]any{"type": "number"},
			"message":                  map[string]any{"type": []any{"string", "null"}},
		},
		"required": []any{"has_potential_depression", "score"},
	},
}

func requestDefinition(cat *catalog.Catalog) map[string]any {
	qs := cat.All()
	props := make(map[string]any, len(qs))
	required := make([]any, 0, len(qs))
	for _, q := range qs {
		props[q.Field] = map[string]any{"type": []any{"string", "number"}}
		required = append(required, q.Field)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateJSON validates raw JSON against the given schema.
func validateJSON(schema *Schema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, so round-trip the Go map.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
