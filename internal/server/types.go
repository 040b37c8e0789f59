package server

// mcpRequest is the body of a POST /mcp call: a method identifier plus an
// optional parameter object.
type mcpRequest struct {
	Method string     `json:"method"`
	Params *mcpParams `json:"params"`
}

// mcpParams carries the tool name and arguments for tools/call. Arguments
// is decoded as any so that null and non-object values degrade to an empty
// argument set instead of a decode failure.
type mcpParams struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// toolListing is one entry of a tools/list response.
type toolListing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
