package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hazyhaar/hanzi-registry/pkg/dict"
	"github.com/hazyhaar/hanzi-registry/pkg/kit"
)

// NewRouter returns an http.Handler with all hanzi registry API routes.
func NewRouter(reg *dict.Registry, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{ep: NewEndpoints(reg, logger), reg: reg}

	mux.HandleFunc("GET /v1/search", h.handleSearch)
	mux.HandleFunc("GET /v1/words/{hanzi}", h.handleLookup)
	mux.HandleFunc("GET /v1/segment", h.handleSegment)
	mux.HandleFunc("GET /v1/pinyin/decode", h.handleDecode)
	mux.HandleFunc("GET /v1/pinyin/normalize", h.handleNormalize)
	mux.HandleFunc("GET /v1/corpora", h.handleListCorpora)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(kit.HTTPContext(mux))
}

type handler struct {
	ep  *Endpoints
	reg *dict.Registry
}

// --- search ---

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serve(w, r, h.ep.Search, &searchReq{Query: r.URL.Query().Get("q"), Opts: opts})
}

// --- lookup ---

func (h *handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.Lookup, &lookupReq{Hanzi: r.PathValue("hanzi")})
}

// --- segment ---

func (h *handler) handleSegment(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}
	h.serve(w, r, h.ep.Segment, &segmentReq{Text: text})
}

// --- pinyin ---

func (h *handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.Decode, &decodeReq{Text: r.URL.Query().Get("text")})
}

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.Normalize, &normalizeReq{Query: r.URL.Query().Get("q")})
}

// --- corpora ---

func (h *handler) handleListCorpora(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.ListCorpora, nil)
}

// --- health ---

type healthResponse struct {
	Status     string `json:"status"`
	Corpora    int    `json:"corpora"`
	TotalWords int    `json:"total_words"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Corpora:    h.reg.CorpusCount(),
		TotalWords: h.reg.TotalWords(),
	})
}

// --- helpers ---

func (h *handler) serve(w http.ResponseWriter, r *http.Request, e kit.Endpoint, req any) {
	resp, err := e(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, errInvalidInput) {
			code = http.StatusBadRequest
		}
		writeError(w, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseSearchOptions(r *http.Request) (dict.SearchOptions, error) {
	q := r.URL.Query()
	var (
		opts dict.SearchOptions
		err  error
	)
	if opts.Sort, err = dict.ParseSortKey(q.Get("sort")); err != nil {
		return opts, err
	}
	if opts.Version, err = dict.ParseHSKVersion(q.Get("version")); err != nil {
		return opts, err
	}
	if opts.Levels, err = parseLevels(q.Get("level"), opts.Version); err != nil {
		return opts, err
	}
	if v := q.Get("kind"); v != "" {
		for _, k := range strings.Split(v, ",") {
			opts.Kinds = append(opts.Kinds, dict.Kind(strings.TrimSpace(k)))
		}
	}
	if v := q.Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("invalid limit %q", v)
		}
	}
	return opts, nil
}

// parseLevels reads a comma-separated level list such as "1,2".
func parseLevels(s string, v dict.HSKVersion) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid level %q", part)
		}
		if n, err = v.NormalizeLevel(n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
