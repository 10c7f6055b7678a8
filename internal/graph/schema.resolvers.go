package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hmans/bookshelf/internal/library"
	"github.com/hmans/bookshelf/internal/model"
	"github.com/hmans/bookshelf/internal/search"
)

// Books is the resolver for the books field.
func (r *authorResolver) Books(ctx context.Context, obj *model.Author) ([]*model.Book, error) {
	return r.Repo.BooksByAuthor(obj.ID), nil
}

// Author is the resolver for the author field.
func (r *bookResolver) Author(ctx context.Context, obj *model.Book) (*model.Author, error) {
	if obj.AuthorID == nil {
		return nil, nil
	}
	a, err := r.Repo.FindAuthor(*obj.AuthorID)
	if errors.Is(err, library.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// AddBook is the resolver for the addBook field.
func (r *mutationResolver) AddBook(ctx context.Context, name string, authorID int) (*model.Book, error) {
	b := r.Repo.AddBook(name, authorID)
	r.logger().Info("book added", zap.Int("id", b.ID), zap.String("name", lo.FromPtr(b.Name)), zap.Intp("authorId", b.AuthorID))
	r.indexBook(b)
	return b, nil
}

// UpdateBook is the resolver for the updateBook field.
func (r *mutationResolver) UpdateBook(ctx context.Context, id int, name *string, authorID *int) (*model.Book, error) {
	b, err := r.Repo.UpdateBook(id, func(b *model.Book) {
		if authorID != nil && *authorID != 0 {
			b.AuthorID = authorID
		}
		if name != nil && *name != "" {
			b.Name = name
		}
	})
	if errors.Is(err, library.ErrNotFound) {
		return nil, fmt.Errorf("book %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	r.logger().Info("book updated", zap.Int("id", b.ID), zap.String("name", lo.FromPtr(b.Name)), zap.Intp("authorId", b.AuthorID))
	r.indexBook(b)
	return b, nil
}

// DeleteBook is the resolver for the deleteBook field.
func (r *mutationResolver) DeleteBook(ctx context.Context, id int) (*model.Book, error) {
	b, err := r.Repo.DeleteBook(id)
	if errors.Is(err, library.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger().Info("book deleted", zap.Int("id", b.ID))
	r.unindex(search.KindBook, b.ID)
	return b, nil
}

// AddAuthor is the resolver for the addAuthor field.
func (r *mutationResolver) AddAuthor(ctx context.Context, name string) (*model.Author, error) {
	a := r.Repo.AddAuthor(name)
	r.logger().Info("author added", zap.Int("id", a.ID), zap.String("name", lo.FromPtr(a.Name)))
	r.indexAuthor(a)
	return a, nil
}

// DeleteAuthor is the resolver for the deleteAuthor field.
func (r *mutationResolver) DeleteAuthor(ctx context.Context, id int) (*model.Author, error) {
	a, err := r.Repo.DeleteAuthor(id)
	if errors.Is(err, library.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger().Info("author deleted", zap.Int("id", a.ID), zap.Int("orphanedBooks", len(r.Repo.BooksByAuthor(id))))
	r.unindex(search.KindAuthor, a.ID)
	return a, nil
}

// UpdateAuthor is the resolver for the updateAuthor field.
func (r *mutationResolver) UpdateAuthor(ctx context.Context, id int, name *string) (*model.Author, error) {
	a, err := r.Repo.UpdateAuthor(id, func(a *model.Author) {
		if name != nil && *name != "" {
			a.Name = name
		}
	})
	if errors.Is(err, library.ErrNotFound) {
		return nil, fmt.Errorf("author %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	r.logger().Info("author updated", zap.Int("id", a.ID), zap.String("name", lo.FromPtr(a.Name)))
	r.indexAuthor(a)
	return a, nil
}

// Authors is the resolver for the authors field.
func (r *queryResolver) Authors(ctx context.Context) ([]*model.Author, error) {
	return r.Repo.Authors(), nil
}

// Books is the resolver for the books field.
func (r *queryResolver) Books(ctx context.Context) ([]*model.Book, error) {
	return r.Repo.Books(), nil
}

// Book is the resolver for the book field.
func (r *queryResolver) Book(ctx context.Context, id *int) (*model.Book, error) {
	if id == nil {
		return nil, nil
	}
	b, err := r.Repo.FindBook(*id)
	if errors.Is(err, library.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// Author is the resolver for the author field.
func (r *queryResolver) Author(ctx context.Context, id *int) (*model.Author, error) {
	if id == nil {
		return nil, nil
	}
	a, err := r.Repo.FindAuthor(*id)
	if errors.Is(err, library.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// SearchBooks is the resolver for the searchBooks field.
func (r *queryResolver) SearchBooks(ctx context.Context, query string, limit *int) ([]*model.Book, error) {
	ids, err := r.search(search.KindBook, query, limit)
	if err != nil {
		return nil, err
	}
	// Hits are ranked; ids the repository no longer knows are skipped.
	return lo.FilterMap(ids, func(id int, _ int) (*model.Book, bool) {
		b, err := r.Repo.FindBook(id)
		return b, err == nil
	}), nil
}

// SearchAuthors is the resolver for the searchAuthors field.
func (r *queryResolver) SearchAuthors(ctx context.Context, query string, limit *int) ([]*model.Author, error) {
	ids, err := r.search(search.KindAuthor, query, limit)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(ids, func(id int, _ int) (*model.Author, bool) {
		a, err := r.Repo.FindAuthor(id)
		return a, err == nil
	}), nil
}

// Author returns AuthorResolver implementation.
func (r *Resolver) Author() AuthorResolver { return &authorResolver{r} }

// Book returns BookResolver implementation.
func (r *Resolver) Book() BookResolver { return &bookResolver{r} }

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type authorResolver struct{ *Resolver }
type bookResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }

func (r *Resolver) search(kind search.Kind, query string, limit *int) ([]int, error) {
	if r.Index == nil {
		return nil, errors.New("search is not available")
	}
	if strings.TrimSpace(query) == "" {
		return []int{}, nil
	}

	n := r.SearchLimit
	if limit != nil {
		n = *limit
	}
	ids, err := r.Index.Search(kind, query, n)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return ids, nil
}

// Index failures are logged rather than failing the mutation: the repository
// change has already been applied.
func (r *Resolver) indexBook(b *model.Book) {
	if r.Index == nil {
		return
	}
	if err := r.Index.IndexBook(b); err != nil {
		r.logger().Warn("indexing book failed", zap.Int("id", b.ID), zap.Error(err))
	}
}

func (r *Resolver) indexAuthor(a *model.Author) {
	if r.Index == nil {
		return
	}
	if err := r.Index.IndexAuthor(a); err != nil {
		r.logger().Warn("indexing author failed", zap.Int("id", a.ID), zap.Error(err))
	}
}

func (r *Resolver) unindex(kind search.Kind, id int) {
	if r.Index == nil {
		return
	}
	if err := r.Index.Delete(kind, id); err != nil {
		r.logger().Warn("removing from index failed", zap.String("kind", string(kind)), zap.Int("id", id), zap.Error(err))
	}
}
