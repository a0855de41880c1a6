package schema

import (
	"reflect"
	"strings"
	"time"
)

// For generates a raw JSON Schema from a Go type by reflection. The result
// feeds [Compile]; the json and description struct tags drive the shape:
//
//	type Review struct {
//	    Score   float64  `json:"score" description:"1-10 quality score"` // required
//	    Ready   bool     `json:"ready"`                                  // required
//	    Notes   []string `json:"notes,omitempty"`                        // optional
//	    Contact *string  `json:"contact"`                                // optional (pointer)
//	}
//
// Supported: primitives, pointers (nullable + optional), structs, slices,
// maps, time.Time (date-time string), time.Duration (duration string).
func For[T any]() map[string]any {
	return FromType(reflect.TypeFor[T]())
}

// FromType is the non-generic form of [For].
func FromType(t reflect.Type) map[string]any {
	if t == nil {
		return map[string]any{"type": "null"}
	}

	// Pointers are nullable in the schema and optional in structs.
	if t.Kind() == reflect.Ptr {
		s := FromType(t.Elem())
		if typeVal, ok := s["type"].(string); ok {
			s["type"] = []string{typeVal, "null"}
		}
		return s
	}

	if t == reflect.TypeFor[time.Time]() {
		return map[string]any{
			"type":   "string",
			"format": "date-time",
		}
	}

	if t == reflect.TypeFor[time.Duration]() {
		return map[string]any{
			"type":        "string",
			"description": "Duration string (e.g., '1h30m', '2s')",
		}
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}

	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}

	case reflect.Bool:
		return map[string]any{"type": "boolean"}

	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": FromType(t.Elem()),
		}

	case reflect.Map:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": FromType(t.Elem()),
		}

	case reflect.Struct:
		properties := make(map[string]any)
		required := make([]string, 0)

		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			jsonTag := field.Tag.Get("json")
			if jsonTag == "-" {
				continue
			}

			fieldName := field.Name
			omitempty := false
			if jsonTag != "" {
				parts := strings.Split(jsonTag, ",")
				if parts[0] != "" {
					fieldName = parts[0]
				}
				for _, part := range parts[1:] {
					if part == "omitempty" {
						omitempty = true
					}
				}
			}

			fieldSchema := FromType(field.Type)
			if desc := field.Tag.Get("description"); desc != "" {
				fieldSchema["description"] = desc
			}
			properties[fieldName] = fieldSchema

			if !omitempty && field.Type.Kind() != reflect.Ptr {
				required = append(required, fieldName)
			}
		}

		s := map[string]any{
			"type":       "object",
			"properties": properties,
		}
		if len(required) > 0 {
			s["required"] = required
		}
		return s

	default:
		return map[string]any{}
	}
}
