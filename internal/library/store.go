package library

import (
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/hmans/bookshelf/internal/model"
)

var _ Repository = (*Store)(nil)

// Store is an in-memory Repository guarded by a single RWMutex.
//
// New ids come from a per-collection counter that starts at the highest seeded
// id, so an id is never handed out twice, even after deletions.
type Store struct {
	mu      sync.RWMutex
	authors []model.Author
	books   []model.Book

	lastAuthorID int
	lastBookID   int
}

// NewStore creates a Store holding a copy of the given dataset. A nil dataset
// yields an empty store.
func NewStore(ds *model.Dataset) *Store {
	s := &Store{}
	if ds == nil {
		return s
	}

	s.authors = lo.Map(ds.Authors, func(a model.Author, _ int) model.Author { return a.Clone() })
	s.books = lo.Map(ds.Books, func(b model.Book, _ int) model.Book { return b.Clone() })
	s.lastAuthorID = lo.Max(lo.Map(s.authors, func(a model.Author, _ int) int { return a.ID }))
	s.lastBookID = lo.Max(lo.Map(s.books, func(b model.Book, _ int) int { return b.ID }))

	return s
}

// Authors returns all authors in insertion order.
func (s *Store) Authors() []*model.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.authors, func(a model.Author, _ int) *model.Author { return lo.ToPtr(a.Clone()) })
}

// Books returns all books in insertion order.
func (s *Store) Books() []*model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.books, func(b model.Book, _ int) *model.Book { return lo.ToPtr(b.Clone()) })
}

// FindAuthor returns the first author with the given id.
func (s *Store) FindAuthor(id int) (*model.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := lo.Find(s.authors, func(a model.Author) bool { return a.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return lo.ToPtr(a.Clone()), nil
}

// FindBook returns the first book with the given id.
func (s *Store) FindBook(id int) (*model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := lo.Find(s.books, func(b model.Book) bool { return b.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return lo.ToPtr(b.Clone()), nil
}

// BooksByAuthor returns the books written by the given author, in insertion order.
func (s *Store) BooksByAuthor(authorID int) []*model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(s.books, func(b model.Book, _ int) (*model.Book, bool) {
		return lo.ToPtr(b.Clone()), b.WrittenBy(authorID)
	})
}

// AddAuthor appends a new author and returns it.
func (s *Store) AddAuthor(name string) *model.Author {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAuthorID++
	a := model.NewAuthor(s.lastAuthorID, name)
	s.authors = append(s.authors, a)
	return lo.ToPtr(a.Clone())
}

// AddBook appends a new book and returns it. The author is not required to exist.
func (s *Store) AddBook(name string, authorID int) *model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastBookID++
	b := model.NewBook(s.lastBookID, name, authorID)
	s.books = append(s.books, b)
	return lo.ToPtr(b.Clone())
}

// UpdateAuthor modifies an existing author in place.
func (s *Store) UpdateAuthor(id int, fn func(a *model.Author)) (*model.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.authors, func(a model.Author) bool { return a.ID == id })
	if !ok {
		return nil, ErrNotFound
	}

	fn(&s.authors[i])
	s.authors[i] = s.authors[i].Clone()
	s.authors[i].ID = id

	return lo.ToPtr(s.authors[i].Clone()), nil
}

// UpdateBook modifies an existing book in place.
func (s *Store) UpdateBook(id int, fn func(b *model.Book)) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.books, func(b model.Book) bool { return b.ID == id })
	if !ok {
		return nil, ErrNotFound
	}

	fn(&s.books[i])
	s.books[i] = s.books[i].Clone()
	s.books[i].ID = id

	return lo.ToPtr(s.books[i].Clone()), nil
}

// DeleteAuthor removes the first author with the given id.
func (s *Store) DeleteAuthor(id int) (*model.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, i, ok := lo.FindIndexOf(s.authors, func(a model.Author) bool { return a.ID == id })
	if !ok {
		return nil, ErrNotFound
	}

	s.authors = slices.Delete(s.authors, i, i+1)
	return &a, nil
}

// DeleteBook removes the first book with the given id.
func (s *Store) DeleteBook(id int) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, i, ok := lo.FindIndexOf(s.books, func(b model.Book) bool { return b.ID == id })
	if !ok {
		return nil, ErrNotFound
	}

	s.books = slices.Delete(s.books, i, i+1)
	return &b, nil
}

// Snapshot returns a copy of the current contents as a Dataset.
func (s *Store) Snapshot() *model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &model.Dataset{
		Authors: lo.Map(s.authors, func(a model.Author, _ int) model.Author { return a.Clone() }),
		Books:   lo.Map(s.books, func(b model.Book, _ int) model.Book { return b.Clone() }),
	}
}
