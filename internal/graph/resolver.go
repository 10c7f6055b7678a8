package graph

import (
	"go.uber.org/zap"

	"github.com/hmans/bookshelf/internal/library"
	"github.com/hmans/bookshelf/internal/search"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds the repository the fields are resolved against.
type Resolver struct {
	Repo library.Repository

	// Index backs searchBooks/searchAuthors and is kept in sync by the
	// mutation resolvers. Optional.
	Index *search.Index

	// SearchLimit caps search results when the query gives no limit.
	SearchLimit int

	Logger *zap.Logger
}

// NewResolver creates a Resolver. A nil logger disables logging.
func NewResolver(repo library.Repository, index *search.Index, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		Repo:        repo,
		Index:       index,
		SearchLimit: search.DefaultSearchLimit,
		Logger:      logger,
	}
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
