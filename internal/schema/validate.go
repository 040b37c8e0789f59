package schema

import (
	"math"
	"regexp"
	"strconv"

	"shopify-mcp/internal/errs"
)

// ApplyDefaults returns a copy of args with every default-bearing property
// that the caller omitted set to its declared default, and every property
// not declared in the schema dropped. Undeclared fields are ignored, never
// forwarded to the executor. The input map is not mutated.
//
// ApplyDefaults is idempotent: applying it to its own output yields an
// equal map.
func (j JSON) ApplyDefaults(args map[string]any) map[string]any {
	out := make(map[string]any, len(j.Properties))
	for name, prop := range j.Properties {
		v, ok := args[name]
		if !ok {
			if prop.Default != nil {
				out[name] = prop.Default
			}
			continue
		}
		out[name] = v
	}
	return out
}

// Validate checks args against the schema: every required field must be
// present, and every supplied field must satisfy its declared type and
// constraints. Call ApplyDefaults first so defaults count as present.
// Returns a validation error carrying the offending field path.
func (j JSON) Validate(args map[string]any) error {
	return j.validateObject(args, "")
}

func (j JSON) validateObject(obj map[string]any, path string) error {
	for _, name := range j.Required {
		if _, ok := obj[name]; !ok {
			return errs.Validation(joinPath(path, name), "required field is missing")
		}
	}
	for name, v := range obj {
		prop, ok := j.Properties[name]
		if !ok {
			continue
		}
		if err := prop.validateValue(v, joinPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

func (j JSON) validateValue(v any, path string) error {
	if v == nil {
		return errs.Validation(path, "expected %s, got null", j.Type)
	}
	if len(j.Enum) > 0 {
		return j.validateEnum(v, path)
	}
	switch j.Type {
	case "string":
		return j.validateString(v, path)
	case "integer":
		n, ok := asNumber(v)
		if !ok {
			return errs.Validation(path, "expected integer, got %s", typeName(v))
		}
		if n != math.Trunc(n) {
			return errs.Validation(path, "expected integer, got %v", v)
		}
		return j.validateNumeric(n, path)
	case "number":
		n, ok := asNumber(v)
		if !ok {
			return errs.Validation(path, "expected number, got %s", typeName(v))
		}
		return j.validateNumeric(n, path)
	case "boolean":
		if _, ok := v.(bool); !ok {
			return errs.Validation(path, "expected boolean, got %s", typeName(v))
		}
	case "array":
		return j.validateArray(v, path)
	case "object":
		obj, ok := v.(map[string]any)
		if !ok {
			return errs.Validation(path, "expected object, got %s", typeName(v))
		}
		return j.validateObject(obj, path)
	}
	return nil
}

func (j JSON) validateString(v any, path string) error {
	s, ok := v.(string)
	if !ok {
		return errs.Validation(path, "expected string, got %s", typeName(v))
	}
	if j.MinLength != nil && len(s) < *j.MinLength {
		return errs.Validation(path, "must be at least %d characters", *j.MinLength)
	}
	if j.Pattern != "" {
		matched, err := regexp.MatchString(j.Pattern, s)
		if err != nil {
			return errs.Validation(path, "invalid pattern %q", j.Pattern)
		}
		if !matched {
			return errs.Validation(path, "%q does not match pattern %s", s, j.Pattern)
		}
	}
	if j.Format == "email" && !emailRe.MatchString(s) {
		return errs.Validation(path, "%q is not a valid email address", s)
	}
	return nil
}

func (j JSON) validateNumeric(n float64, path string) error {
	if j.Minimum != nil && n < *j.Minimum {
		return errs.Validation(path, "value %v is less than minimum %v", n, *j.Minimum)
	}
	if j.Maximum != nil && n > *j.Maximum {
		return errs.Validation(path, "value %v is greater than maximum %v", n, *j.Maximum)
	}
	return nil
}

func (j JSON) validateArray(v any, path string) error {
	arr, ok := v.([]any)
	if !ok {
		return errs.Validation(path, "expected array, got %s", typeName(v))
	}
	if j.Items != nil {
		for i, item := range arr {
			if err := j.Items.validateValue(item, indexPath(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (j JSON) validateEnum(v any, path string) error {
	for _, allowed := range j.Enum {
		if v == allowed {
			return nil
		}
	}
	return errs.Validation(path, "value %v is not one of the allowed values %v", v, j.Enum)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return joinPath(path, strconv.Itoa(i))
}
