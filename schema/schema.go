package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSON represents a JSON Schema definition for tool parameters.
type JSON struct {
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Properties  map[string]JSON `json:"properties,omitempty"`
	Required    []string        `json:"required,omitempty"`
	// AdditionalProperties set to false rejects keys missing from Properties.
	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
	Items       *JSON           `json:"items,omitempty"`
	Enum        []any           `json:"enum,omitempty"`
	Default     any             `json:"default,omitempty"`
	Minimum     *float64        `json:"minimum,omitempty"`
	Maximum     *float64        `json:"maximum,omitempty"`
	MinLength   *int            `json:"minLength,omitempty"`
	MaxLength   *int            `json:"maxLength,omitempty"`
	Pattern     string          `json:"pattern,omitempty"`
	Format      string          `json:"format,omitempty"`
}

// Any creates a JSON schema that accepts any type.
func Any() JSON {
	return JSON{}
}

// String creates a JSON schema for a string type.
func String() JSON {
	return JSON{Type: "string"}
}

// StringWithDesc creates a JSON schema for a string type with a description.
func StringWithDesc(desc string) JSON {
	return JSON{
		Type:        "string",
		Description: desc,
	}
}

// Int creates a JSON schema for an integer type.
func Int() JSON {
	return JSON{Type: "integer"}
}

// Number creates a JSON schema for a number type.
func Number() JSON {
	return JSON{Type: "number"}
}

// Bool creates a JSON schema for a boolean type.
func Bool() JSON {
	return JSON{Type: "boolean"}
}

// Array creates a JSON schema for an array type with the specified item schema.
func Array(items JSON) JSON {
	return JSON{
		Type:  "array",
		Items: &items,
	}
}

// Object creates a JSON schema for an object type with the specified properties and required fields.
func Object(properties map[string]JSON, required ...string) JSON {
	return JSON{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Enum creates a JSON schema with enumerated values.
func Enum(values ...any) JSON {
	return JSON{Enum: values}
}

// WithDescription returns a copy of the schema with the description set.
func (s JSON) WithDescription(desc string) JSON {
	s.Description = desc
	return s
}

// ToMap renders the schema as the generic map sent to model providers.
func (s JSON) ToMap() map[string]any {
	data, err := json.Marshal(s)
	if err != nil {
		// JSON only holds marshalable fields; Default is caller-supplied.
		return map[string]any{"type": s.Type}
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{"type": s.Type}
	}
	return out
}

// Validator checks values against a compiled schema.
type Validator struct {
	resolved *jsonschema.Resolved
}

// Compile resolves the schema into a reusable validator.
func (s JSON) Compile() (*Validator, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var js jsonschema.Schema
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	resolved, err := js.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}
	return &Validator{resolved: resolved}, nil
}

// Validate checks value against the schema. Go values are normalized to
// their JSON form first, so structs and typed integers are accepted.
func (v *Validator) Validate(value any) error {
	normalized, err := normalize(value)
	if err != nil {
		return err
	}
	return v.resolved.Validate(normalized)
}

// Validate compiles the schema and validates value against it.
// Use Compile when validating many values against the same schema.
func (s JSON) Validate(value any) error {
	v, err := s.Compile()
	if err != nil {
		return err
	}
	return v.Validate(value)
}

func normalize(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool, float64:
		return value, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON encodable: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("value is not JSON encodable: %w", err)
	}
	return out, nil
}
