// Package model holds the author and book records served by the GraphQL API.
package model

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Author is a writer of zero or more books. Books point back at their author
// through Book.AuthorID; the relation is never stored on the author itself.
//
// Name is nil only when the record has no name at all; an empty name is kept.
type Author struct {
	ID   int     `json:"id" yaml:"id"`
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Book is a single title. AuthorID is not required to reference an existing
// author, and may be absent.
type Book struct {
	ID       int     `json:"id" yaml:"id"`
	Name     *string `json:"name,omitempty" yaml:"name,omitempty"`
	AuthorID *int    `json:"authorId,omitempty" yaml:"authorId,omitempty"`
}

// Dataset is the seed document shape: two top-level collections.
type Dataset struct {
	Authors []Author `json:"authors" yaml:"authors"`
	Books   []Book   `json:"books" yaml:"books"`
}

// NewAuthor returns an author with the given name.
func NewAuthor(id int, name string) Author {
	return Author{ID: id, Name: &name}
}

// NewBook returns a book with the given name and author id.
func NewBook(id int, name string, authorID int) Book {
	return Book{ID: id, Name: &name, AuthorID: &authorID}
}

// Clone returns a copy that shares no pointers with a.
func (a Author) Clone() Author {
	a.Name = clonePtr(a.Name)
	return a
}

// Clone returns a copy that shares no pointers with b.
func (b Book) Clone() Book {
	b.Name = clonePtr(b.Name)
	b.AuthorID = clonePtr(b.AuthorID)
	return b
}

// WrittenBy reports whether the book's author id is set and equal to authorID.
func (b Book) WrittenBy(authorID int) bool {
	return b.AuthorID != nil && *b.AuthorID == authorID
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return lo.ToPtr(*p)
}

// SortAuthors orders authors by id.
func SortAuthors(authors []*Author) {
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].ID < authors[j].ID
	})
}

// SortBooks orders books by id.
func SortBooks(books []*Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].ID < books[j].ID
	})
}

// SortBooksByName orders books by name (case-insensitive), falling back to id
// for stable output. Books without a name sort first.
func SortBooksByName(books []*Book) {
	sort.SliceStable(books, func(i, j int) bool {
		ni := strings.ToLower(lo.FromPtr(books[i].Name))
		nj := strings.ToLower(lo.FromPtr(books[j].Name))
		if ni != nj {
			return ni < nj
		}
		return books[i].ID < books[j].ID
	})
}
