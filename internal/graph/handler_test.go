package graph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hmans/bookshelf/internal/library"
	"github.com/hmans/bookshelf/internal/model"
)

func newTestHandler(t *testing.T, cfg HandlerConfig) http.Handler {
	t.Helper()
	store := library.NewStore(&model.Dataset{
		Authors: []model.Author{model.NewAuthor(1, "A")},
		Books:   []model.Book{model.NewBook(1, "B1", 1)},
	})
	return NewHandler(NewExecutableSchema(Config{Resolvers: NewResolver(store, nil, nil)}), cfg)
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) gqlResponse {
	t.Helper()
	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHandlerConsole(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{ConsoleTitle: "Bookshelf Test"})

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Bookshelf Test") {
		t.Error("console page does not contain the configured title")
	}
}

func TestHandlerConsoleDisabled(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{DisableConsole: true})

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Error("console served although it is disabled")
	}
}

func TestHandlerPost(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{})

	body := `{"query":"mutation($n: String!) { addBook(name: $n, authorId: 1) { id name author { name } } }","variables":{"n":"B2"}}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}
	want := `{"addBook":{"id":2,"name":"B2","author":{"name":"A"}}}`
	if string(resp.Data) != want {
		t.Errorf("data = %s, want %s", resp.Data, want)
	}
}

func TestHandlerGetQuery(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{})

	q := url.Values{"query": {"{ books { id name } }"}}
	req := httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil)
	// A browser sending a query still gets JSON.
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if want := `{"books":[{"id":1,"name":"B1"}]}`; string(resp.Data) != want {
		t.Errorf("data = %s, want %s", resp.Data, want)
	}
}

func TestHandlerPartialErrors(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{})

	body := `{"query":"mutation { updateAuthor(id: 7, name: \"x\") { id } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rec)
	if len(resp.Errors) != 1 || !strings.Contains(resp.Errors[0].Message, "author 7 not found") {
		t.Errorf("errors = %v, want author 7 not found", resp.Errors)
	}
	if want := `{"updateAuthor":null}`; string(resp.Data) != want {
		t.Errorf("data = %s, want %s", resp.Data, want)
	}
}

func TestHandlerRejectedRequests(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"syntax error", `{"query":"{ books { id "}`, http.StatusUnprocessableEntity},
		{"unknown field", `{"query":"{ magazines { id } }"}`, http.StatusUnprocessableEntity},
		{"subscription", `{"query":"subscription { books { id } }"}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"query":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if resp := decodeResponse(t, rec); len(resp.Errors) == 0 {
				t.Error("expected errors in response")
			}
		})
	}
}

func TestHandlerUnsupportedTransport(t *testing.T) {
	h := newTestHandler(t, HandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "transport not supported" {
		t.Errorf("errors = %v, want transport not supported", resp.Errors)
	}
}

func TestShouldRenderConsole(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		accept string
		want   bool
	}{
		{"browser navigation", http.MethodGet, "/graphql", "text/html,application/xhtml+xml", true},
		{"json client", http.MethodGet, "/graphql", "application/json", false},
		{"no accept header", http.MethodGet, "/graphql", "", false},
		{"query parameter", http.MethodGet, "/graphql?query=%7Bbooks%7Bid%7D%7D", "text/html", false},
		{"post", http.MethodPost, "/graphql", "text/html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := ShouldRenderConsole(req); got != tt.want {
				t.Errorf("ShouldRenderConsole() = %v, want %v", got, tt.want)
			}
		})
	}
}
