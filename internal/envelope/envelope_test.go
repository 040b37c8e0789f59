package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-mcp/internal/errs"
)

func TestResultSerializesValue(t *testing.T) {
	res, err := Result(map[string]any{"products": []any{map[string]any{"id": "1"}}})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &parsed))
	assert.Contains(t, parsed, "products")
}

func TestResultPassesStringsThrough(t *testing.T) {
	res, err := Result("already serialized")
	require.NoError(t, err)
	assert.Equal(t, "already serialized", res.Content[0].Text)
}

func TestErrorEnvelope(t *testing.T) {
	cause := errs.Wrap("tool get-products", errs.KindExecution, assertableErr("status 502"))
	failure := Error(cause)
	assert.Equal(t, "status 502", failure.Error)
	assert.Equal(t, "status 502", failure.Details)
}

func TestErrorEnvelopeOmitsEmptyDetails(t *testing.T) {
	failure := Error(errs.New("server", errs.KindBadRequest, "Unknown method"))
	assert.Equal(t, "Unknown method", failure.Error)
	assert.Empty(t, failure.Details)

	data, err := json.Marshal(failure)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "details")
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
