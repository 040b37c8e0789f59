package tools

import (
	"context"
	"fmt"

	"shopify-mcp/internal/registry"
	"shopify-mcp/internal/schema"
	"shopify-mcp/internal/shopify"
)

const getCustomersQuery = `
query GetCustomers($first: Int!, $query: String) {
  customers(first: $first, query: $query) {
    edges {
      node {
        id
        firstName
        lastName
        email
        phone
        tags
        note
        numberOfOrders
        amountSpent { amount currencyCode }
      }
    }
  }
}`

// NewGetCustomers lists customers, optionally filtered by a search query.
func NewGetCustomers(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "get-customers",
		Description: "Get customers or search customers by name or email",
		ReadOnly:    true,
		InputSchema: schema.Object(map[string]schema.JSON{
			"searchQuery": schema.StringWithDesc("Filter customers by name or email"),
			"limit":       schema.Int().WithDesc("Maximum number of customers to return").WithDefault(defaultLimit),
		}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			vars := map[string]any{"first": intArg(args, "limit", defaultLimit)}
			if q := stringArg(args, "searchQuery"); q != "" {
				vars["query"] = q
			}
			data, err := client.Execute(ctx, getCustomersQuery, vars)
			if err != nil {
				return nil, err
			}
			return map[string]any{"customers": shopify.Nodes(data["customers"])}, nil
		},
	}
}

const getCustomerOrdersQuery = `
query GetCustomerOrders($id: ID!, $first: Int!) {
  customer(id: $id) {
    id
    firstName
    lastName
    email
    orders(first: $first) {
      edges {
        node {
          id
          name
          createdAt
          displayFinancialStatus
          displayFulfillmentStatus
          totalPriceSet { shopMoney { amount currencyCode } }
        }
      }
    }
  }
}`

// NewGetCustomerOrders lists the orders of one customer.
func NewGetCustomerOrders(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "get-customer-orders",
		Description: "Get the orders placed by a specific customer",
		ReadOnly:    true,
		InputSchema: schema.Object(map[string]schema.JSON{
			"customerId": schema.NumericString().WithDesc("Numeric customer ID"),
			"limit":      schema.Int().WithDesc("Maximum number of orders to return").WithDefault(defaultLimit),
		}, "customerId"),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			vars := map[string]any{
				"id":    shopify.GID("Customer", stringArg(args, "customerId")),
				"first": intArg(args, "limit", defaultLimit),
			}
			data, err := client.Execute(ctx, getCustomerOrdersQuery, vars)
			if err != nil {
				return nil, err
			}
			customer, ok := data["customer"].(map[string]any)
			if !ok || customer == nil {
				return nil, fmt.Errorf("customer %v not found", vars["id"])
			}
			flattenConnections(customer, "orders")
			return map[string]any{"customer": customer}, nil
		},
	}
}

const updateCustomerMutation = `
mutation UpdateCustomer($input: CustomerInput!) {
  customerUpdate(input: $input) {
    customer { id firstName lastName email phone tags note taxExempt }
    userErrors { field message }
  }
}`

// NewUpdateCustomer updates fields of an existing customer.
func NewUpdateCustomer(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "update-customer",
		Description: "Update an existing customer's information",
		InputSchema: schema.Object(map[string]schema.JSON{
			"id":        schema.NumericString().WithDesc("Numeric customer ID"),
			"firstName": schema.StringWithDesc("Customer first name"),
			"lastName":  schema.StringWithDesc("Customer last name"),
			"email":     schema.Email().WithDesc("Customer email address"),
			"phone":     schema.StringWithDesc("Customer phone number"),
			"tags":      schema.Array(schema.String()).WithDesc("Tags to set on the customer"),
			"note":      schema.StringWithDesc("Note to attach to the customer"),
			"taxExempt": schema.Bool().WithDesc("Whether the customer is tax exempt"),
			"metafields": schema.Array(schema.Object(map[string]schema.JSON{
				"id":        schema.String(),
				"namespace": schema.String(),
				"key":       schema.String(),
				"value":     schema.String(),
				"type":      schema.String(),
			}, "value")).WithDesc("Metafields to set on the customer"),
		}, "id"),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			input := map[string]any{"id": shopify.GID("Customer", stringArg(args, "id"))}
			for _, field := range []string{"firstName", "lastName", "email", "phone", "tags", "note", "taxExempt", "metafields"} {
				if v, ok := args[field]; ok {
					input[field] = v
				}
			}
			data, err := client.Execute(ctx, updateCustomerMutation, map[string]any{"input": input})
			if err != nil {
				return nil, err
			}
			payload := data["customerUpdate"]
			if msg := shopify.UserErrors(payload); msg != "" {
				return nil, fmt.Errorf("customerUpdate: %s", msg)
			}
			return map[string]any{"customer": shopify.Field(data, "customerUpdate", "customer")}, nil
		},
	}
}
