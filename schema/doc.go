// Package schema builds the JSON Schema documents that describe tool
// parameters and validates decoded arguments against them.
//
// Schemas are plain values built with small constructors:
//
//	params := schema.Object(map[string]schema.JSON{
//		"location": schema.StringWithDesc("The city and state, e.g. San Francisco, CA"),
//		"unit":     schema.Enum("celsius", "fahrenheit"),
//	}, "location")
//
// or derived from an argument struct with FromType. ToMap renders a schema in
// the generic form model providers expect.
//
// Validation is delegated to github.com/google/jsonschema-go. Compile once and
// reuse the Validator when checking many values:
//
//	v, err := params.Compile()
//	if err != nil {
//		return err
//	}
//	err = v.Validate(map[string]any{"location": "London"}) // nil
//	err = v.Validate(map[string]any{})                     // missing required "location"
package schema
