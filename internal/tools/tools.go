// Package tools defines the Shopify tool units exposed by the server. Each
// constructor takes the shared Admin API client and returns a registry.Tool
// whose executor builds one GraphQL query or mutation per invocation.
package tools

import (
	"shopify-mcp/internal/registry"
	"shopify-mcp/internal/shopify"
)

// All returns the full tool set wired to the given client, in the order the
// server registers them.
func All(client *shopify.Client) []registry.Tool {
	return []registry.Tool{
		NewGetProducts(client),
		NewGetProductByID(client),
		NewGetCustomers(client),
		NewGetOrders(client),
		NewGetOrderByID(client),
		NewUpdateOrder(client),
		NewGetCustomerOrders(client),
		NewUpdateCustomer(client),
		NewCreateProduct(client),
	}
}

// defaultLimit caps list queries when the caller does not ask for a size.
const defaultLimit = 10

// stringArg returns the string value of an optional argument, or "".
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// intArg returns the integer value of an argument, handling both int
// defaults and float64 values produced by JSON decoding.
func intArg(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}
