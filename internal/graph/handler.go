package graph

import (
	"net/http"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/vektah/gqlparser/v2/ast"
)

// HandlerConfig configures the HTTP endpoint returned by NewHandler.
type HandlerConfig struct {
	// Endpoint is the path the console sends its queries to.
	Endpoint string
	// ConsoleTitle is the page title of the interactive console.
	ConsoleTitle string
	// DisableConsole makes browser navigations go to the GET transport instead.
	DisableConsole bool
}

// NewServer creates the gqlgen server executing operations against es.
//
// Only single-response transports are registered. Requests asking for
// anything else (websocket upgrades, SSE, multipart incremental delivery)
// are answered with a 400 "transport not supported" error.
func NewServer(es graphql.ExecutableSchema) *handler.Server {
	srv := handler.New(es)

	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))

	srv.Use(extension.Introspection{})
	srv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New[string](100),
	})

	return srv
}

// NewHandler returns the /graphql endpoint: browser navigations get the
// console, everything else is executed as a GraphQL request.
func NewHandler(es graphql.ExecutableSchema, cfg HandlerConfig) http.Handler {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "/graphql"
	}
	if cfg.ConsoleTitle == "" {
		cfg.ConsoleTitle = "GraphQL"
	}

	srv := NewServer(es)
	console := playground.Handler(cfg.ConsoleTitle, cfg.Endpoint)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cfg.DisableConsole && ShouldRenderConsole(r) {
			console.ServeHTTP(w, r)
			return
		}
		srv.ServeHTTP(w, r)
	})
}

// ShouldRenderConsole reports whether r is a browser navigation: a GET that
// accepts HTML and carries no query of its own.
func ShouldRenderConsole(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.URL.Query().Get("query") != "" {
		return false
	}
	for _, accept := range r.Header.Values("Accept") {
		if strings.Contains(accept, "text/html") {
			return true
		}
	}
	return false
}
