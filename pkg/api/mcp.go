package api

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
	"github.com/hazyhaar/hanzi-registry/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the hanzi registry MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *dict.Registry, logger *slog.Logger) {
	ep := NewEndpoints(reg, logger)
	for _, t := range mcpTools(ep) {
		kit.RegisterMCPTool(srv, t.tool, t.endpoint, t.decode)
	}
}

type mcpTool struct {
	tool     mcp.Tool
	endpoint kit.Endpoint
	decode   func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error)
}

func mcpTools(ep *Endpoints) []mcpTool {
	return []mcpTool{
		{
			tool: mcp.NewTool("search_words",
				mcp.WithDescription("Search Chinese words by hanzi, pinyin (tone marks, tone numbers or none) or English definition."),
				mcp.WithString("query", mcp.Required(), mcp.Description("Hanzi, pinyin such as \"nǐ hǎo\" or \"ni3hao3\", or English text")),
				mcp.WithString("sort", mcp.Description("frequency, alphabetic, level-asc or level-desc")),
				mcp.WithString("version", mcp.Description("HSK syllabus for level filters: 2.0 or 3.0 (default)")),
				mcp.WithString("levels", mcp.Description("Comma-separated HSK levels to keep (e.g. 1,2)")),
				mcp.WithNumber("limit", mcp.Description("Maximum number of words (default 50)")),
			),
			endpoint: ep.Search,
			decode:   decodeSearchArgs,
		},
		{
			tool: mcp.NewTool("lookup_word",
				mcp.WithDescription("Look up every dictionary entry for an exact simplified or traditional headword."),
				mcp.WithString("hanzi", mcp.Required(), mcp.Description("The headword, e.g. 中国 or 中國")),
			),
			endpoint: ep.Lookup,
			decode: func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
				hanzi, _ := req.GetArguments()["hanzi"].(string)
				return &kit.MCPDecodeResult{Request: &lookupReq{Hanzi: strings.TrimSpace(hanzi)}}, nil
			},
		},
		{
			tool: mcp.NewTool("decode_pinyin",
				mcp.WithDescription("Convert tone-number pinyin (ni3 hao3, lu:4) into tone-mark pinyin (nǐ hǎo, lǜ)."),
				mcp.WithString("text", mcp.Required(), mcp.Description("Numeric pinyin")),
			),
			endpoint: ep.Decode,
			decode: func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
				text, _ := req.GetArguments()["text"].(string)
				return &kit.MCPDecodeResult{Request: &decodeReq{Text: text}}, nil
			},
		},
		{
			tool: mcp.NewTool("normalize_query",
				mcp.WithDescription("Show how a search query is normalized before matching."),
				mcp.WithString("query", mcp.Required(), mcp.Description("The raw query")),
			),
			endpoint: ep.Normalize,
			decode: func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
				q, _ := req.GetArguments()["query"].(string)
				return &kit.MCPDecodeResult{Request: &normalizeReq{Query: q}}, nil
			},
		},
		{
			tool: mcp.NewTool("list_corpora",
				mcp.WithDescription("List the loaded corpora (CC-CEDICT, HSK lists) with source, license and word counts."),
			),
			endpoint: ep.ListCorpora,
			decode: func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
				return &kit.MCPDecodeResult{Request: nil}, nil
			},
		},
	}
}

func decodeSearchArgs(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)

	var (
		opts dict.SearchOptions
		err  error
	)
	sortArg, _ := args["sort"].(string)
	if opts.Sort, err = dict.ParseSortKey(sortArg); err != nil {
		return nil, err
	}
	version, _ := args["version"].(string)
	if opts.Version, err = dict.ParseHSKVersion(version); err != nil {
		return nil, err
	}
	levels, _ := args["levels"].(string)
	if opts.Levels, err = parseLevels(levels, opts.Version); err != nil {
		return nil, err
	}

	switch v := args["limit"].(type) {
	case nil:
	case float64:
		opts.Limit = int(v)
	default:
		return nil, fmt.Errorf("limit must be a number")
	}
	return &kit.MCPDecodeResult{Request: &searchReq{Query: query, Opts: opts}}, nil
}
