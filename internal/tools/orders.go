package tools

import (
	"context"
	"fmt"

	"shopify-mcp/internal/registry"
	"shopify-mcp/internal/schema"
	"shopify-mcp/internal/shopify"
)

const getOrdersQuery = `
query GetOrders($first: Int!, $query: String) {
  orders(first: $first, query: $query) {
    edges {
      node {
        id
        name
        email
        createdAt
        displayFinancialStatus
        displayFulfillmentStatus
        tags
        note
        totalPriceSet { shopMoney { amount currencyCode } }
        customer { id firstName lastName email }
      }
    }
  }
}`

// NewGetOrders lists orders filtered by status.
func NewGetOrders(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "get-orders",
		Description: "Get orders, optionally filtered by status",
		ReadOnly:    true,
		InputSchema: schema.Object(map[string]schema.JSON{
			"status": schema.StringEnum("any", "open", "closed", "cancelled").
				WithDesc("Order status filter").WithDefault("any"),
			"limit": schema.Int().WithDesc("Maximum number of orders to return").WithDefault(defaultLimit),
		}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			vars := map[string]any{"first": intArg(args, "limit", defaultLimit)}
			if status := stringArg(args, "status"); status != "" && status != "any" {
				vars["query"] = fmt.Sprintf("status:%s", status)
			}
			data, err := client.Execute(ctx, getOrdersQuery, vars)
			if err != nil {
				return nil, err
			}
			return map[string]any{"orders": shopify.Nodes(data["orders"])}, nil
		},
	}
}

const getOrderByIDQuery = `
query GetOrderById($id: ID!) {
  order(id: $id) {
    id
    name
    email
    createdAt
    displayFinancialStatus
    displayFulfillmentStatus
    tags
    note
    totalPriceSet { shopMoney { amount currencyCode } }
    customer { id firstName lastName email }
    shippingAddress { address1 address2 city province country zip }
    lineItems(first: 50) {
      edges {
        node {
          id
          title
          quantity
          originalUnitPriceSet { shopMoney { amount currencyCode } }
        }
      }
    }
  }
}`

// NewGetOrderByID fetches a single order with its line items.
func NewGetOrderByID(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "get-order-by-id",
		Description: "Get a single order by its ID, including line items",
		ReadOnly:    true,
		InputSchema: schema.Object(map[string]schema.JSON{
			"orderId": schema.String().WithDesc("Order ID").WithMinLength(1),
		}, "orderId"),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			id := shopify.GID("Order", stringArg(args, "orderId"))
			data, err := client.Execute(ctx, getOrderByIDQuery, map[string]any{"id": id})
			if err != nil {
				return nil, err
			}
			order, ok := data["order"].(map[string]any)
			if !ok || order == nil {
				return nil, fmt.Errorf("order %s not found", id)
			}
			flattenConnections(order, "lineItems")
			return map[string]any{"order": order}, nil
		},
	}
}

const updateOrderMutation = `
mutation UpdateOrder($input: OrderInput!) {
  orderUpdate(input: $input) {
    order { id name email tags note }
    userErrors { field message }
  }
}`

// NewUpdateOrder updates fields of an existing order.
func NewUpdateOrder(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "update-order",
		Description: "Update an existing order's attributes",
		InputSchema: schema.Object(map[string]schema.JSON{
			"id":    schema.String().WithDesc("Order ID").WithMinLength(1),
			"tags":  schema.Array(schema.String()).WithDesc("Tags to set on the order"),
			"email": schema.Email().WithDesc("Email to associate with the order"),
			"note":  schema.StringWithDesc("Note to attach to the order"),
			"customAttributes": schema.Array(schema.Object(map[string]schema.JSON{
				"key":   schema.String(),
				"value": schema.String(),
			}, "key", "value")).WithDesc("Custom attributes to set on the order"),
			"metafields": schema.Array(schema.Object(map[string]schema.JSON{
				"id":        schema.String(),
				"namespace": schema.String(),
				"key":       schema.String(),
				"value":     schema.String(),
				"type":      schema.String(),
			}, "value")).WithDesc("Metafields to set on the order"),
			"shippingAddress": schema.Object(map[string]schema.JSON{
				"address1":  schema.String(),
				"address2":  schema.String(),
				"city":      schema.String(),
				"province":  schema.String(),
				"country":   schema.String(),
				"zip":       schema.String(),
				"firstName": schema.String(),
				"lastName":  schema.String(),
				"phone":     schema.String(),
			}).WithDesc("Shipping address fields to update"),
		}, "id"),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			input := map[string]any{"id": shopify.GID("Order", stringArg(args, "id"))}
			for _, field := range []string{"tags", "email", "note", "customAttributes", "metafields", "shippingAddress"} {
				if v, ok := args[field]; ok {
					input[field] = v
				}
			}
			data, err := client.Execute(ctx, updateOrderMutation, map[string]any{"input": input})
			if err != nil {
				return nil, err
			}
			payload := data["orderUpdate"]
			if msg := shopify.UserErrors(payload); msg != "" {
				return nil, fmt.Errorf("orderUpdate: %s", msg)
			}
			return map[string]any{"order": shopify.Field(data, "orderUpdate", "order")}, nil
		},
	}
}
