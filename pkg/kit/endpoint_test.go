package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChain_Order(t *testing.T) {
	var calls []string
	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				calls = append(calls, name)
				return next(ctx, req)
			}
		}
	}
	e := Chain(mw("a"), mw("b"), mw("c"))(func(context.Context, any) (any, error) {
		calls = append(calls, "endpoint")
		return nil, nil
	})
	e(context.Background(), nil)

	if got := strings.Join(calls, ","); got != "a,b,c,endpoint" {
		t.Errorf("calls = %s, want a,b,c,endpoint", got)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	e := RequestID()(func(ctx context.Context, _ any) (any, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	})

	e(context.Background(), nil)
	if len(seen) != 36 {
		t.Errorf("generated id = %q, want a UUID", seen)
	}

	e(WithRequestID(context.Background(), "fixed"), nil)
	if seen != "fixed" {
		t.Errorf("id = %q, want the existing one kept", seen)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := Logging(logger, "search")(func(context.Context, any) (any, error) { return "r", nil })
	fail := Logging(logger, "decode")(func(context.Context, any) (any, error) { return nil, errors.New("boom") })

	ctx := WithTransport(context.Background(), "mcp")
	if resp, err := ok(ctx, nil); err != nil || resp != "r" {
		t.Fatalf("ok = %v, %v", resp, err)
	}
	if _, err := fail(ctx, nil); err == nil {
		t.Fatal("expected error to pass through")
	}

	out := buf.String()
	for _, want := range []string{"endpoint=search", "endpoint=decode", "transport=mcp", "error=boom", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestGetTransport_Default(t *testing.T) {
	if got := GetTransport(context.Background()); got != "http" {
		t.Errorf("GetTransport = %q, want http", got)
	}
}

func TestHTTPContext(t *testing.T) {
	var id, transport string
	h := HTTPContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetRequestID(r.Context())
		transport = GetTransport(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if id == "" || rec.Header().Get(RequestIDHeader) != id {
		t.Errorf("id = %q, header = %q", id, rec.Header().Get(RequestIDHeader))
	}
	if transport != "http" {
		t.Errorf("transport = %q", transport)
	}
}
