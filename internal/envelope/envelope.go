// Package envelope defines the uniform response shapes shared by the HTTP
// and stdio front ends. Success and failure are mutually exclusive: a tool
// invocation yields either a full result envelope or a full error envelope.
package envelope

import (
	"encoding/json"

	"shopify-mcp/internal/errs"
)

// ContentBlock is one piece of tool result content.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ToolResult wraps a successful executor result as serialized content.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
}

// Failure wraps a failed invocation as a message plus optional cause detail.
type Failure struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Result serializes a successful executor result into a text content block.
// String results pass through verbatim; everything else is JSON-encoded.
func Result(v any) (ToolResult, error) {
	text, ok := v.(string)
	if !ok {
		data, err := json.Marshal(v)
		if err != nil {
			return ToolResult{}, errs.Wrap("envelope.Result", errs.KindExecution, err)
		}
		text = string(data)
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}, nil
}

// Error converts any dispatch failure into a Failure envelope.
func Error(err error) Failure {
	return Failure{Error: errs.MessageOf(err), Details: errs.DetailOf(err)}
}
