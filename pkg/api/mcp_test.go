package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/hanzi-registry/pkg/kit"
)

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ep := NewEndpoints(testRegistry(t), nil)
	for _, tool := range mcpTools(ep) {
		if tool.tool.Name != name {
			continue
		}
		req := mcp.CallToolRequest{}
		req.Params.Name = name
		req.Params.Arguments = args
		res, err := kit.MCPHandler(tool.endpoint, tool.decode)(context.Background(), req)
		require.NoError(t, err)
		return res
	}
	t.Fatalf("tool %q not registered", name)
	return nil
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestMCPTools_Names(t *testing.T) {
	var names []string
	for _, tool := range mcpTools(NewEndpoints(testRegistry(t), nil)) {
		names = append(names, tool.tool.Name)
	}
	assert.Equal(t, []string{"search_words", "lookup_word", "decode_pinyin", "normalize_query", "list_corpora"}, names)
}

func TestMCPSearchWords(t *testing.T) {
	res := callTool(t, "search_words", map[string]any{"query": "ni3hao3", "sort": "level-asc", "limit": float64(1)})
	require.False(t, res.IsError, resultText(t, res))

	var resp searchResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "ni3 hao3", resp.Normalized)
	require.Len(t, resp.Words, 1)
	assert.Equal(t, "你好", resp.Words[0].Simplified)
}

func TestMCPSearchWords_BadSort(t *testing.T) {
	res := callTool(t, "search_words", map[string]any{"query": "ni", "sort": "random"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid arguments")
}

func TestMCPLookupWord(t *testing.T) {
	res := callTool(t, "lookup_word", map[string]any{"hanzi": " 你好 "})
	require.False(t, res.IsError)

	var resp lookupResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Len(t, resp.Words, 2)
}

func TestMCPLookupWord_Missing(t *testing.T) {
	res := callTool(t, "lookup_word", map[string]any{})
	assert.True(t, res.IsError)
}

func TestMCPDecodePinyin(t *testing.T) {
	res := callTool(t, "decode_pinyin", map[string]any{"text": "Bei3 jing1"})
	require.False(t, res.IsError)

	var resp decodeResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "Běi jīng", resp.Output)

	res = callTool(t, "decode_pinyin", map[string]any{"text": ":"})
	assert.True(t, res.IsError)
}

func TestMCPNormalizeQuery(t *testing.T) {
	res := callTool(t, "normalize_query", map[string]any{"query": "nǐ hǎo"})
	var resp normalizeResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "ni3 hao3", resp.Normalized)
}

func TestMCPListCorpora(t *testing.T) {
	res := callTool(t, "list_corpora", nil)
	var resp corporaResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Len(t, resp.Corpora, 2)
}

func TestRegisterMCPTools(t *testing.T) {
	srv := server.NewMCPServer("hanzi-registry", "test")
	assert.NotPanics(t, func() { RegisterMCPTools(srv, testRegistry(t), nil) })
}
