// Package schema builds, compiles, and validates the JSON Schemas the
// repair pipeline holds Collaborator output against.
//
// The usual entry point is reflection over the target Go type:
//
//	sch := schema.MustCompile(schema.For[duet.Feedback]())
//
// Hand-written schemas use the small builder API:
//
//	raw := schema.Object(map[string]*schema.Property{
//	    "score": schema.Number("Quality score, 1-10").Min(1).Max(10),
//	    "ready": schema.Boolean("True when the draft can ship"),
//	    "notes": schema.Array("Reviewer notes", map[string]any{"type": "string"}),
//	}, "score", "ready")
//	sch := schema.MustCompile(raw)
//
// A compiled [Schema] keeps both the raw map (rendered into prompts so the
// model sees exactly what it is validated against) and the compiled
// validator.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled JSON Schema plus its raw map form.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation, for prompt
// rendering and serialization.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// JSON renders the raw schema as indented JSON, the form shown to models.
func (s *Schema) JSON() string {
	if s == nil {
		return ""
	}
	out, err := json.MarshalIndent(s.raw, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// Validate checks decoded JSON data (as produced by encoding/json into any)
// against the schema. Returns nil when valid, or a *ValidationError.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a live validator.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	// jsonschema wants its own decoded form (json.Number for numerics).
	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error. Use for schemas fixed at
// init time, like the Feedback schema.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties. Variadic names
// mark required properties.
//
//	schema.Object(map[string]*schema.Property{
//	    "path":      schema.String("Section locator"),
//	    "operation": schema.String("Edit kind").Enum("replace", "add", "remove"),
//	    "content":   schema.String("Suggested text"),
//	}, "path", "operation")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// Property is one property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	format      string
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	pattern     string
	items       map[string]any
	def         any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.format != "" {
		m["format"] = p.format
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.items != nil {
		m["items"] = p.items
	}
	if p.def != nil {
		m["default"] = p.def
	}

	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
//
//	schema.Array("Open questions", map[string]any{"type": "string"})
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Enum restricts the property to the given values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Format sets a string format ("email", "date-time", "uri", ...).
func (p *Property) Format(format string) *Property {
	p.format = format
	return p
}

// Min sets the minimum for number/integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum for number/integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}

// Pattern sets a regex pattern for string properties.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

// Default sets the property's default value.
func (p *Property) Default(value any) *Property {
	p.def = value
	return p
}
