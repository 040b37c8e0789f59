package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExecuteSendsAccessToken(t *testing.T) {
	var gotToken, gotContentType string
	var gotBody map[string]any
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"shop": map[string]any{"name": "test"}}})
	}))
	defer stub.Close()

	c := NewWithEndpoint(stub.URL, "shpat_test", nil)
	data, err := c.Execute(context.Background(), "query { shop { name } }", map[string]any{"first": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotToken != "shpat_test" {
		t.Errorf("expected access token header, got %q", gotToken)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected json content type, got %q", gotContentType)
	}
	if gotBody["query"] == "" {
		t.Error("expected query in request body")
	}
	vars, _ := gotBody["variables"].(map[string]any)
	if vars["first"] != float64(3) {
		t.Errorf("expected variables to round-trip, got %v", gotBody["variables"])
	}
	if _, ok := data["shop"]; !ok {
		t.Errorf("expected decoded data, got %v", data)
	}
}

func TestExecuteSurfacesGraphQLErrors(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "Field 'bogus' doesn't exist"}},
		})
	}))
	defer stub.Close()

	c := NewWithEndpoint(stub.URL, "shpat_test", nil)
	_, err := c.Execute(context.Background(), "query { bogus }", nil)
	if err == nil {
		t.Fatal("expected error from GraphQL errors payload")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected error message to surface, got %v", err)
	}
}

func TestExecuteSurfacesHTTPStatus(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer stub.Close()

	c := NewWithEndpoint(stub.URL, "bad-token", nil)
	_, err := c.Execute(context.Background(), "query { shop { name } }", nil)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestEndpointFor(t *testing.T) {
	got := EndpointFor("my-store.myshopify.com")
	want := "https://my-store.myshopify.com/admin/api/" + APIVersion + "/graphql.json"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if EndpointFor("http://localhost:9999") != "http://localhost:9999/admin/api/"+APIVersion+"/graphql.json" {
		t.Errorf("explicit scheme must be preserved, got %q", EndpointFor("http://localhost:9999"))
	}
}

func TestGID(t *testing.T) {
	if got := GID("Product", "123"); got != "gid://shopify/Product/123" {
		t.Errorf("unexpected gid %q", got)
	}
	qualified := "gid://shopify/Order/9"
	if got := GID("Order", qualified); got != qualified {
		t.Errorf("qualified id must pass through, got %q", got)
	}
}

func TestNodes(t *testing.T) {
	conn := map[string]any{
		"edges": []any{
			map[string]any{"node": map[string]any{"id": "1"}},
			map[string]any{"node": map[string]any{"id": "2"}},
		},
	}
	nodes := Nodes(conn)
	if len(nodes) != 2 || nodes[1]["id"] != "2" {
		t.Errorf("unexpected nodes %v", nodes)
	}
	if got := Nodes(nil); len(got) != 0 {
		t.Errorf("expected empty slice for missing connection, got %v", got)
	}
}

func TestUserErrors(t *testing.T) {
	payload := map[string]any{
		"userErrors": []any{
			map[string]any{"field": []any{"email"}, "message": "is invalid"},
		},
	}
	if got := UserErrors(payload); got != "is invalid" {
		t.Errorf("unexpected user errors %q", got)
	}
	if got := UserErrors(map[string]any{"userErrors": []any{}}); got != "" {
		t.Errorf("expected empty message, got %q", got)
	}
}
