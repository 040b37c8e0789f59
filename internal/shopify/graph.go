package shopify

import (
	"fmt"
	"strings"
)

// GID builds a Shopify global ID (e.g. "gid://shopify/Product/123") from a
// resource kind and a bare or already-qualified identifier.
func GID(kind, id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return fmt.Sprintf("gid://shopify/%s/%s", kind, id)
}

// Nodes flattens a GraphQL connection ({edges: [{node: ...}]}) into its
// node objects. Tolerates a missing or oddly shaped connection by returning
// an empty slice.
func Nodes(v any) []map[string]any {
	conn, _ := v.(map[string]any)
	edges, _ := conn["edges"].([]any)
	out := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		edge, _ := e.(map[string]any)
		if node, ok := edge["node"].(map[string]any); ok {
			out = append(out, node)
		}
	}
	return out
}

// Field walks nested objects by key, returning nil when any step is missing.
func Field(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[k]
	}
	return cur
}

// UserErrors extracts the userErrors entries of a mutation payload as a
// single message, or "" when the mutation succeeded.
func UserErrors(payload any) string {
	obj, _ := payload.(map[string]any)
	list, _ := obj["userErrors"].([]any)
	msgs := make([]string, 0, len(list))
	for _, it := range list {
		entry, _ := it.(map[string]any)
		if msg, ok := entry["message"].(string); ok && msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}
