package schema

import (
	"strings"
	"testing"

	"shopify-mcp/internal/errs"
)

func TestApplyDefaults(t *testing.T) {
	s := Object(map[string]JSON{
		"limit":  Int().WithDefault(10),
		"status": StringEnum("any", "open").WithDefault("any"),
		"title":  String(),
	})

	out := s.ApplyDefaults(map[string]any{})
	if out["limit"] != 10 {
		t.Errorf("expected limit default 10, got %v", out["limit"])
	}
	if out["status"] != "any" {
		t.Errorf("expected status default %q, got %v", "any", out["status"])
	}
	if _, ok := out["title"]; ok {
		t.Error("expected no value for defaultless optional field")
	}
}

func TestApplyDefaultsKeepsSuppliedValues(t *testing.T) {
	s := Object(map[string]JSON{
		"limit": Int().WithDefault(10),
	})

	out := s.ApplyDefaults(map[string]any{"limit": float64(5)})
	if out["limit"] != float64(5) {
		t.Errorf("expected supplied limit 5 to survive, got %v", out["limit"])
	}
}

func TestApplyDefaultsDropsUndeclaredFields(t *testing.T) {
	s := Object(map[string]JSON{
		"limit": Int().WithDefault(10),
	})

	out := s.ApplyDefaults(map[string]any{"bogus": "x", "limit": float64(3)})
	if _, ok := out["bogus"]; ok {
		t.Error("undeclared field must be dropped, not forwarded")
	}
}

func TestApplyDefaultsNilArgs(t *testing.T) {
	s := Object(map[string]JSON{
		"limit": Int().WithDefault(10),
	})

	out := s.ApplyDefaults(nil)
	if out["limit"] != 10 {
		t.Errorf("expected default fill on nil args, got %v", out["limit"])
	}
}

func TestValidateRequired(t *testing.T) {
	s := Object(map[string]JSON{
		"productId": String().WithMinLength(1),
	}, "productId")

	err := s.Validate(map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	if !errs.IsKind(err, errs.KindValidation) {
		t.Errorf("expected validation kind, got %s", errs.KindOf(err))
	}
	if !strings.Contains(err.Error(), "productId") {
		t.Errorf("expected field path in error, got %q", err.Error())
	}
}

func TestValidateTypes(t *testing.T) {
	s := Object(map[string]JSON{
		"title":     String(),
		"limit":     Int(),
		"taxExempt": Bool(),
		"tags":      Array(String()),
	})

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"valid full", map[string]any{"title": "x", "limit": float64(5), "taxExempt": true, "tags": []any{"a"}}, false},
		{"string as number", map[string]any{"limit": "5"}, true},
		{"fractional integer", map[string]any{"limit": 2.5}, true},
		{"number as string", map[string]any{"title": float64(1)}, true},
		{"bool as string", map[string]any{"taxExempt": "yes"}, true},
		{"bad array item", map[string]any{"tags": []any{"a", float64(1)}}, true},
		{"non-array", map[string]any{"tags": "a,b"}, true},
		{"empty args", map[string]any{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.args)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	s := Object(map[string]JSON{
		"customerId": NumericString(),
	}, "customerId")

	if err := s.Validate(map[string]any{"customerId": "12345"}); err != nil {
		t.Errorf("expected %q to be accepted, got %v", "12345", err)
	}
	if err := s.Validate(map[string]any{"customerId": "abc"}); err == nil {
		t.Errorf("expected %q to be rejected", "abc")
	}
}

func TestValidateEmailFormat(t *testing.T) {
	s := Object(map[string]JSON{
		"email": Email(),
	})

	if err := s.Validate(map[string]any{"email": "a@b.com"}); err != nil {
		t.Errorf("expected %q to be accepted, got %v", "a@b.com", err)
	}
	for _, bad := range []string{"not-an-email", "a@b", "a b@c.com", "@c.com"} {
		if err := s.Validate(map[string]any{"email": bad}); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateEnum(t *testing.T) {
	s := Object(map[string]JSON{
		"status": StringEnum("ACTIVE", "DRAFT", "ARCHIVED"),
	})

	if err := s.Validate(map[string]any{"status": "DRAFT"}); err != nil {
		t.Errorf("expected DRAFT to be accepted, got %v", err)
	}
	if err := s.Validate(map[string]any{"status": "draft"}); err == nil {
		t.Error("enum match must be exact")
	}
}

func TestValidateMinLength(t *testing.T) {
	s := Object(map[string]JSON{
		"title": String().WithMinLength(1),
	}, "title")

	if err := s.Validate(map[string]any{"title": ""}); err == nil {
		t.Error("expected empty title to be rejected")
	}
	if err := s.Validate(map[string]any{"title": "T"}); err != nil {
		t.Errorf("expected non-empty title to be accepted, got %v", err)
	}
}

func TestValidateNestedObject(t *testing.T) {
	s := Object(map[string]JSON{
		"shippingAddress": Object(map[string]JSON{
			"city": String(),
			"zip":  String(),
		}),
	})

	if err := s.Validate(map[string]any{
		"shippingAddress": map[string]any{"city": "Oslo"},
	}); err != nil {
		t.Errorf("expected valid nested object, got %v", err)
	}

	err := s.Validate(map[string]any{
		"shippingAddress": map[string]any{"city": float64(7)},
	})
	if err == nil {
		t.Fatal("expected nested type error")
	}
	if !strings.Contains(err.Error(), "shippingAddress.city") {
		t.Errorf("expected nested field path, got %q", err.Error())
	}
}

func TestValidateArrayOfObjects(t *testing.T) {
	s := Object(map[string]JSON{
		"customAttributes": Array(Object(map[string]JSON{
			"key":   String(),
			"value": String(),
		}, "key", "value")),
	})

	err := s.Validate(map[string]any{
		"customAttributes": []any{map[string]any{"key": "gift"}},
	})
	if err == nil {
		t.Fatal("expected missing item field error")
	}
	if !strings.Contains(err.Error(), "customAttributes.0.value") {
		t.Errorf("expected indexed field path, got %q", err.Error())
	}
}

func TestValidateNullValue(t *testing.T) {
	s := Object(map[string]JSON{
		"note": String(),
	})

	if err := s.Validate(map[string]any{"note": nil}); err == nil {
		t.Error("expected null value to be rejected for typed field")
	}
}
