// Package schema provides declarative argument schemas for tools.
//
// A JSON value describes the accepted shape of a tool's arguments: types,
// required fields, defaults, enumerations, string patterns and formats, and
// nested object/array shapes. The same descriptor drives default-filling and
// validation for every front end, and marshals to standard JSON Schema for
// protocol-level tool listings.
package schema

import (
	"fmt"
	"regexp"
)

// JSON represents a JSON Schema definition.
type JSON struct {
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Properties  map[string]JSON `json:"properties,omitempty"`
	Required    []string        `json:"required,omitempty"`
	Items       *JSON           `json:"items,omitempty"`
	Enum        []any           `json:"enum,omitempty"`
	Default     any             `json:"default,omitempty"`
	Minimum     *float64        `json:"minimum,omitempty"`
	Maximum     *float64        `json:"maximum,omitempty"`
	MinLength   *int            `json:"minLength,omitempty"`
	Pattern     string          `json:"pattern,omitempty"`
	Format      string          `json:"format,omitempty"`
}

// String creates a schema for a string value.
func String() JSON {
	return JSON{Type: "string"}
}

// StringWithDesc creates a string schema with a description.
func StringWithDesc(desc string) JSON {
	return JSON{Type: "string", Description: desc}
}

// Int creates a schema for an integer value.
func Int() JSON {
	return JSON{Type: "integer"}
}

// Number creates a schema for a numeric value.
func Number() JSON {
	return JSON{Type: "number"}
}

// Bool creates a schema for a boolean value.
func Bool() JSON {
	return JSON{Type: "boolean"}
}

// Array creates a schema for an array whose items match the given schema.
func Array(items JSON) JSON {
	return JSON{Type: "array", Items: &items}
}

// Object creates a schema for an object with the given properties and
// required field names.
func Object(properties map[string]JSON, required ...string) JSON {
	return JSON{Type: "object", Properties: properties, Required: required}
}

// StringEnum creates a string schema restricted to the given values.
func StringEnum(values ...string) JSON {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return JSON{Type: "string", Enum: enum}
}

// WithDesc returns a copy with the description set.
func (j JSON) WithDesc(desc string) JSON {
	j.Description = desc
	return j
}

// WithDefault returns a copy with a default value. Absent arguments resolve
// to the default before validation, so a default-bearing field is never
// reported missing.
func (j JSON) WithDefault(v any) JSON {
	j.Default = v
	return j
}

// WithPattern returns a copy with a regular expression constraint.
func (j JSON) WithPattern(pattern string) JSON {
	j.Pattern = pattern
	return j
}

// WithFormat returns a copy with a named format constraint ("email").
func (j JSON) WithFormat(format string) JSON {
	j.Format = format
	return j
}

// WithMinLength returns a copy with a minimum string length constraint.
func (j JSON) WithMinLength(n int) JSON {
	j.MinLength = &n
	return j
}

// NumericString is a string schema constrained to decimal digits, used for
// identifiers that must be numeric (e.g., customer IDs).
func NumericString() JSON {
	return String().WithPattern(`^\d+$`)
}

// Email is a string schema constrained to the email format.
func Email() JSON {
	return String().WithFormat("email")
}

// emailRe is intentionally permissive: one @, no whitespace, a dot in the
// domain part.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// typeName reports the JSON Schema type of a decoded JSON value, for use in
// validation messages.
func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// asNumber converts a decoded JSON value to float64 when it is numeric.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
