package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmans/bookshelf/internal/graph"
	"github.com/hmans/bookshelf/internal/server"
)

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST, or GET with a query parameter)
  - GraphQL console at /graphql when opened in a browser
  - Health check at /healthz

Examples:
  # Start server on the configured port (5000 unless bookshelf.toml says otherwise)
  bookshelf serve

  # Start server on a custom port with human-readable logs
  bookshelf serve --port 3000 --dev`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		return runServer()
	},
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServer() error {
	logger, err := newLogger(serveDev)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	index, err := buildIndex()
	if err != nil {
		return err
	}
	defer index.Close()

	resolver := graph.NewResolver(store, index, logger.Named("graph"))
	resolver.SearchLimit = cfg.Search.Limit

	es := graph.NewExecutableSchema(graph.Config{Resolvers: resolver})
	gql := graph.NewHandler(es, graph.HandlerConfig{
		Endpoint:       server.GraphQLPath,
		ConsoleTitle:   cfg.Server.ConsoleTitle,
		DisableConsole: !cfg.ConsoleEnabled(),
	})

	srv := server.New(gql, server.Options{
		Port:   cfg.Server.Port,
		Logger: logger.Named("http"),
	})

	logger.Info("data loaded",
		zap.String("path", cfg.Data.Path),
		zap.Int("authors", len(store.Authors())),
		zap.Int("books", len(store.Books())),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("GraphQL endpoint: http://localhost:%d%s\n", cfg.Server.Port, server.GraphQLPath)
	if cfg.ConsoleEnabled() {
		fmt.Printf("GraphQL console:  http://localhost:%d%s (open in a browser)\n", cfg.Server.Port, server.GraphQLPath)
	}

	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 5000, "Port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "Use human-readable development logging")
	rootCmd.AddCommand(serveCmd)
}
