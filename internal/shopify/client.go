// Package shopify provides a minimal client for the Shopify Admin GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIVersion is the Admin API version the client pins its endpoint to.
const APIVersion = "2024-10"

// Client is a minimal HTTP client for the Admin GraphQL endpoint. It holds
// no per-request state and is safe for concurrent reuse.
type Client struct {
	Endpoint    string
	AccessToken string
	HTTP        *http.Client
}

// New returns a client for the given store domain (e.g. "my-store.myshopify.com").
// If httpClient is nil, a default with 15s timeout is used.
func New(storeDomain, accessToken string, httpClient *http.Client) *Client {
	return NewWithEndpoint(EndpointFor(storeDomain), accessToken, httpClient)
}

// NewWithEndpoint returns a client that posts to an explicit GraphQL URL.
// Used by tests to point at a stub server.
func NewWithEndpoint(endpoint, accessToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{Endpoint: endpoint, AccessToken: accessToken, HTTP: httpClient}
}

// EndpointFor builds the Admin GraphQL URL for a store domain.
func EndpointFor(storeDomain string) string {
	domain := strings.TrimRight(storeDomain, "/")
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", domain, APIVersion)
}

// graphqlRequest is the wire shape of a GraphQL-over-HTTP request.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the wire shape of a GraphQL-over-HTTP response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// Execute posts a query or mutation with variables and returns the decoded
// data payload. A transport failure, non-2xx status, or GraphQL errors
// payload is returned as an error.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.AccessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shopify api status %d", resp.StatusCode)
	}

	var body graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Errors) > 0 {
		return nil, fmt.Errorf("shopify graphql: %s", joinMessages(body.Errors))
	}

	var data map[string]any
	if len(body.Data) > 0 {
		if err := json.Unmarshal(body.Data, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func joinMessages(errs []graphqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}
