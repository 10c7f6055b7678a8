package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newObservedRouter(t *testing.T, graphql http.Handler) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	return NewRouter(graphql, zap.New(core)), logs
}

func TestHealth(t *testing.T) {
	r, _ := newObservedRouter(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, want := rec.Body.String(), `{"status":"ok"}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestGraphQLRouteAllMethods(t *testing.T) {
	var methods []string
	graphql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusTeapot)
	})
	r, _ := newObservedRouter(t, graphql)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodPut} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, GraphQLPath, nil))
		if rec.Code != http.StatusTeapot {
			t.Errorf("%s %s status = %d, want %d", method, GraphQLPath, rec.Code, http.StatusTeapot)
		}
	}
	if len(methods) != 4 {
		t.Errorf("handler called %d times, want 4", len(methods))
	}
}

func TestRequestLogger(t *testing.T) {
	t.Run("generates request id", func(t *testing.T) {
		r, logs := newObservedRouter(t, http.NotFoundHandler())

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

		id := rec.Header().Get(RequestIDHeader)
		if len(id) != 21 {
			t.Errorf("request id = %q, want a 21 character nanoid", id)
		}

		entries := logs.FilterMessage("request").All()
		if len(entries) != 1 {
			t.Fatalf("logged %d request lines, want 1", len(entries))
		}
		fields := entries[0].ContextMap()
		if fields["request_id"] != id {
			t.Errorf("logged request_id = %v, want %s", fields["request_id"], id)
		}
		if fields["path"] != HealthPath {
			t.Errorf("logged path = %v, want %s", fields["path"], HealthPath)
		}
		if fields["status"] != int64(http.StatusOK) {
			t.Errorf("logged status = %v, want %d", fields["status"], http.StatusOK)
		}
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		r, _ := newObservedRouter(t, http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, HealthPath, nil)
		req.Header.Set(RequestIDHeader, "abc123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "abc123" {
			t.Errorf("request id = %q, want abc123", got)
		}
	})

	t.Run("recovers panics as errors", func(t *testing.T) {
		graphql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
		r, logs := newObservedRouter(t, graphql)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, GraphQLPath, nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
		if n := logs.FilterLevelExact(zap.ErrorLevel).Len(); n != 1 {
			t.Errorf("error log lines = %d, want 1", n)
		}
	})
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := New(http.NotFoundHandler(), Options{Port: 0})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
