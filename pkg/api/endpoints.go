package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
	"github.com/hazyhaar/hanzi-registry/pkg/kit"
	"github.com/hazyhaar/hanzi-registry/pkg/pinyin"
)

// Shared request/response types used by both HTTP and MCP transports.

// Search limits for the network transports. A zero limit means defaultLimit.
const (
	defaultLimit = 50
	maxLimit     = 500
)

type searchReq struct {
	Query string
	Opts  dict.SearchOptions
}

type searchResponse struct {
	Query      string          `json:"query"`
	Normalized string          `json:"normalized"`
	Count      int             `json:"count"`
	Words      []dict.WordView `json:"words"`
}

type lookupReq struct {
	Hanzi string
}

type lookupResponse struct {
	Hanzi string          `json:"hanzi"`
	Words []dict.WordView `json:"words"`
}

type segmentReq struct {
	Text string
}

type segmentView struct {
	Text  string          `json:"text"`
	Known bool            `json:"known"`
	Words []dict.WordView `json:"words,omitempty"`
}

type segmentResponse struct {
	Text     string        `json:"text"`
	Segments []segmentView `json:"segments"`
}

type decodeReq struct {
	Text string
}

type decodeResponse struct {
	Input    string   `json:"input"`
	Output   string   `json:"output"`
	Warnings []string `json:"warnings,omitempty"`
}

type normalizeReq struct {
	Query string
}

type normalizeResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

type corporaResponse struct {
	Corpora []dict.CorpusInfo `json:"corpora"`
}

// errInvalidInput marks errors caused by the caller's input.
var errInvalidInput = errors.New("invalid input")

// Endpoints bundles every action, wrapped with the shared middlewares.
type Endpoints struct {
	Search      kit.Endpoint
	Lookup      kit.Endpoint
	Segment     kit.Endpoint
	Decode      kit.Endpoint
	Normalize   kit.Endpoint
	ListCorpora kit.Endpoint
}

// NewEndpoints builds the Endpoints backed by reg.
func NewEndpoints(reg *dict.Registry, logger *slog.Logger) *Endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, e kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(e)
	}
	return &Endpoints{
		Search:      wrap("search", searchEndpoint(reg)),
		Lookup:      wrap("lookup", lookupEndpoint(reg)),
		Segment:     wrap("segment", segmentEndpoint(reg)),
		Decode:      wrap("decode", decodeEndpoint()),
		Normalize:   wrap("normalize", normalizeEndpoint()),
		ListCorpora: wrap("list_corpora", listCorporaEndpoint(reg)),
	}
}

func searchEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*searchReq)
		if req.Opts.Limit < 0 || req.Opts.Limit > maxLimit {
			return nil, fmt.Errorf("%w: limit must be between 1 and %d", errInvalidInput, maxLimit)
		}
		if req.Opts.Limit == 0 {
			req.Opts.Limit = defaultLimit
		}
		words, err := reg.Search(req.Query, &req.Opts)
		if err != nil {
			return nil, err
		}
		return searchResponse{
			Query:      req.Query,
			Normalized: pinyin.NormalizeQuery(req.Query),
			Count:      len(words),
			Words:      dict.Views(words),
		}, nil
	}
}

func lookupEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lookupReq)
		if req.Hanzi == "" {
			return nil, fmt.Errorf("%w: missing hanzi", errInvalidInput)
		}
		words, err := reg.Lookup(req.Hanzi)
		if err != nil {
			return nil, err
		}
		return lookupResponse{Hanzi: req.Hanzi, Words: dict.Views(words)}, nil
	}
}

func segmentEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*segmentReq)
		segs, err := reg.Segment(req.Text)
		if err != nil {
			return nil, err
		}
		views := make([]segmentView, len(segs))
		for i, s := range segs {
			views[i] = segmentView{Text: s.Text, Known: s.Known()}
			if s.Known() {
				views[i].Words = dict.Views(s.Words)
			}
		}
		return segmentResponse{Text: req.Text, Segments: views}, nil
	}
}

func decodeEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*decodeReq)
		out, err := pinyin.Decode(req.Text)
		if errors.Is(err, pinyin.ErrInvalidColon) {
			return nil, fmt.Errorf("%w: %w", errInvalidInput, err)
		}
		return decodeResponse{Input: req.Text, Output: out, Warnings: warnings(err)}, nil
	}
}

// warnings flattens the ambiguity errors Decode joins together.
func warnings(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func normalizeEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		return normalizeResponse{Input: req.Query, Normalized: pinyin.NormalizeQuery(req.Query)}, nil
	}
}

func listCorporaEndpoint(reg *dict.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		if err := reg.Ensure(); err != nil {
			return nil, err
		}
		return corporaResponse{Corpora: reg.ListCorpora()}, nil
	}
}
