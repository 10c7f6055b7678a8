// Package library provides the author/book repository behind the GraphQL API:
// a thread-safe in-memory store seeded once from a JSON or YAML document.
package library

import (
	"errors"

	"github.com/hmans/bookshelf/internal/model"
)

var ErrNotFound = errors.New("not found")

// Repository is the narrow data contract the resolvers depend on.
// Returned records are copies; mutating them does not affect the repository.
type Repository interface {
	Authors() []*model.Author
	Books() []*model.Book

	// FindAuthor and FindBook return ErrNotFound when no record has the id.
	FindAuthor(id int) (*model.Author, error)
	FindBook(id int) (*model.Book, error)

	// BooksByAuthor returns every book whose AuthorID equals authorID.
	BooksByAuthor(authorID int) []*model.Book

	AddAuthor(name string) *model.Author
	AddBook(name string, authorID int) *model.Book

	// UpdateAuthor and UpdateBook apply fn to the stored record under the
	// write lock and return the updated copy.
	UpdateAuthor(id int, fn func(a *model.Author)) (*model.Author, error)
	UpdateBook(id int, fn func(b *model.Book)) (*model.Book, error)

	// DeleteAuthor and DeleteBook return the record as it was before removal.
	// Deleting an author leaves its books in place.
	DeleteAuthor(id int) (*model.Author, error)
	DeleteBook(id int) (*model.Book, error)
}
