package tools

import (
	"context"
	"fmt"

	"shopify-mcp/internal/registry"
	"shopify-mcp/internal/schema"
	"shopify-mcp/internal/shopify"
)

const getProductsQuery = `
query GetProducts($first: Int!, $query: String) {
  products(first: $first, query: $query) {
    edges {
      node {
        id
        title
        handle
        status
        description
        totalInventory
        priceRangeV2 {
          minVariantPrice { amount currencyCode }
        }
        variants(first: 5) {
          edges {
            node { id title price sku availableForSale }
          }
        }
      }
    }
  }
}`

// NewGetProducts lists products, optionally filtered by title.
func NewGetProducts(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "get-products",
		Description: "Get all products or search products by title",
		ReadOnly:    true,
		InputSchema: schema.Object(map[string]schema.JSON{
			"searchTitle": schema.StringWithDesc("Filter products whose title contains this text"),
			"limit":       schema.Int().WithDesc("Maximum number of products to return").WithDefault(defaultLimit),
		}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			vars := map[string]any{"first": intArg(args, "limit", defaultLimit)}
			if title := stringArg(args, "searchTitle"); title != "" {
				vars["query"] = fmt.Sprintf("title:*%s*", title)
			}
			data, err := client.Execute(ctx, getProductsQuery, vars)
			if err != nil {
				return nil, err
			}
			return map[string]any{"products": shopify.Nodes(data["products"])}, nil
		},
	}
}

const getProductByIDQuery = `
query GetProductById($id: ID!) {
  product(id: $id) {
    id
    title
    handle
    status
    description
    descriptionHtml
    vendor
    productType
    tags
    totalInventory
    variants(first: 20) {
      edges {
        node { id title price sku inventoryQuantity availableForSale }
      }
    }
    images(first: 10) {
      edges {
        node { id url altText }
      }
    }
  }
}`

// NewGetProductByID fetches a single product.
func NewGetProductByID(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "get-product-by-id",
		Description: "Get a single product by its ID, including variants and images",
		ReadOnly:    true,
		InputSchema: schema.Object(map[string]schema.JSON{
			"productId": schema.String().WithDesc("Product ID").WithMinLength(1),
		}, "productId"),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			id := shopify.GID("Product", stringArg(args, "productId"))
			data, err := client.Execute(ctx, getProductByIDQuery, map[string]any{"id": id})
			if err != nil {
				return nil, err
			}
			product, ok := data["product"].(map[string]any)
			if !ok || product == nil {
				return nil, fmt.Errorf("product %s not found", id)
			}
			flattenConnections(product, "variants", "images")
			return map[string]any{"product": product}, nil
		},
	}
}

const createProductMutation = `
mutation CreateProduct($input: ProductInput!) {
  productCreate(input: $input) {
    product { id title status handle }
    userErrors { field message }
  }
}`

// NewCreateProduct creates a product, defaulting to DRAFT status.
func NewCreateProduct(client *shopify.Client) registry.Tool {
	return registry.Tool{
		Name:        "create-product",
		Description: "Create a new product in the store",
		InputSchema: schema.Object(map[string]schema.JSON{
			"title":           schema.String().WithDesc("Product title").WithMinLength(1),
			"descriptionHtml": schema.StringWithDesc("Product description in HTML"),
			"vendor":          schema.StringWithDesc("Product vendor"),
			"productType":     schema.StringWithDesc("Product type"),
			"tags":            schema.Array(schema.String()).WithDesc("Tags to apply to the product"),
			"status":          schema.StringEnum("ACTIVE", "DRAFT", "ARCHIVED").WithDesc("Product status").WithDefault("DRAFT"),
		}, "title"),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			input := map[string]any{
				"title":  args["title"],
				"status": args["status"],
			}
			for _, field := range []string{"descriptionHtml", "vendor", "productType", "tags"} {
				if v, ok := args[field]; ok {
					input[field] = v
				}
			}
			data, err := client.Execute(ctx, createProductMutation, map[string]any{"input": input})
			if err != nil {
				return nil, err
			}
			payload := data["productCreate"]
			if msg := shopify.UserErrors(payload); msg != "" {
				return nil, fmt.Errorf("productCreate: %s", msg)
			}
			return map[string]any{"product": shopify.Field(data, "productCreate", "product")}, nil
		},
	}
}

// flattenConnections replaces edge/node connections on obj with plain node
// slices so callers see arrays instead of GraphQL connection wrappers.
func flattenConnections(obj map[string]any, keys ...string) {
	for _, key := range keys {
		if _, ok := obj[key]; ok {
			obj[key] = shopify.Nodes(obj[key])
		}
	}
}
