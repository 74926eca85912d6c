package schema

import (
	"reflect"
	"strings"
	"time"
)

// FromType generates a JSON schema for a tool's argument struct.
// Struct schemas are closed: the model may only send the declared keys.
//
// Tools declare their arguments as a struct and advertise FromType of it:
//
//	type weatherArgs struct {
//		Location string `json:"location" description:"City name"`
//	}
//	params := schema.FromType(weatherArgs{})
//
// Supported types:
//   - struct: a closed object schema; embedded structs contribute their fields
//   - slice/array: generates an array schema
//   - map: generates an object schema
//   - string, int*, uint*, float*, bool: generates primitive schemas
//   - time.Time: generates string schema with date-time format
//   - interface{}/any: generates empty schema (allows any)
//
// Struct tags:
//   - `json:"name"`: uses the JSON tag name for the property
//   - `json:"-"`: skips the field
//   - `json:"name,omitempty"`: field is optional (not in required list)
//   - `description:"..."`: sets the property description shown to the model
func FromType(t any) JSON {
	if t == nil {
		return JSON{}
	}

	rt := reflect.TypeOf(t)
	return fromReflectType(rt)
}

func fromReflectType(t reflect.Type) JSON {
	if t.Kind() == reflect.Ptr {
		return fromReflectType(t.Elem())
	}

	if t == reflect.TypeOf(time.Time{}) {
		return JSON{
			Type:   "string",
			Format: "date-time",
		}
	}

	switch t.Kind() {
	case reflect.Struct:
		return fromStruct(t)
	case reflect.Slice, reflect.Array:
		itemSchema := fromReflectType(t.Elem())
		return JSON{
			Type:  "array",
			Items: &itemSchema,
		}
	case reflect.Map:
		// Maps are objects - we can't enforce key types in JSON schema
		return JSON{
			Type: "object",
		}
	case reflect.String:
		return JSON{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return JSON{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return JSON{Type: "number"}
	case reflect.Bool:
		return JSON{Type: "boolean"}
	case reflect.Interface:
		// interface{} or any - allows any type
		return JSON{}
	default:
		// Unknown types - allow any
		return JSON{}
	}
}

func fromStruct(t reflect.Type) JSON {
	closed := false
	s := JSON{
		Type:                 "object",
		Properties:           make(map[string]JSON),
		AdditionalProperties: &closed,
	}
	addFields(&s, t)
	return s
}

func addFields(s *JSON, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")

		if field.Anonymous && jsonTag == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				addFields(s, embedded)
				continue
			}
		}

		if !field.IsExported() || jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitempty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
			for _, part := range parts[1:] {
				if part == "omitempty" {
					isOmitempty = true
					break
				}
			}
		}

		fieldSchema := fromReflectType(field.Type)

		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema.Description = desc
		}

		s.Properties[fieldName] = fieldSchema

		if !isOmitempty {
			s.Required = append(s.Required, fieldName)
		}
	}
}
