package library

import (
	"github.com/samber/lo"

	"github.com/hmans/bookshelf/internal/model"
)

// OrphanedBook is a book whose author id is unset or does not match any
// author.
type OrphanedBook struct {
	BookID   int  `json:"book_id"`
	AuthorID *int `json:"author_id"`
}

// DuplicateID is an id shared by more than one record of the same collection.
type DuplicateID struct {
	Collection string `json:"collection"`
	ID         int    `json:"id"`
	Count      int    `json:"count"`
}

// CheckResult contains the integrity issues found in a dataset.
type CheckResult struct {
	OrphanedBooks []OrphanedBook `json:"orphaned_books"`
	DuplicateIDs  []DuplicateID  `json:"duplicate_ids"`
}

// HasIssues returns true if any issues were found.
func (r *CheckResult) HasIssues() bool {
	return len(r.OrphanedBooks) > 0 || len(r.DuplicateIDs) > 0
}

// TotalIssues returns the total count of all issues.
func (r *CheckResult) TotalIssues() int {
	return len(r.OrphanedBooks) + len(r.DuplicateIDs)
}

// Check reports books pointing at missing authors and ids used more than once.
// Neither is an error for the API itself; ids are looked up first-match.
func Check(ds *model.Dataset) *CheckResult {
	result := &CheckResult{
		OrphanedBooks: []OrphanedBook{},
		DuplicateIDs:  []DuplicateID{},
	}

	authorIDs := lo.SliceToMap(ds.Authors, func(a model.Author) (int, struct{}) {
		return a.ID, struct{}{}
	})
	for _, b := range ds.Books {
		if b.AuthorID != nil {
			if _, ok := authorIDs[*b.AuthorID]; ok {
				continue
			}
		}
		result.OrphanedBooks = append(result.OrphanedBooks, OrphanedBook{BookID: b.ID, AuthorID: b.AuthorID})
	}

	result.DuplicateIDs = append(result.DuplicateIDs, duplicates("authors",
		lo.Map(ds.Authors, func(a model.Author, _ int) int { return a.ID }))...)
	result.DuplicateIDs = append(result.DuplicateIDs, duplicates("books",
		lo.Map(ds.Books, func(b model.Book, _ int) int { return b.ID }))...)

	return result
}

func duplicates(collection string, ids []int) []DuplicateID {
	var out []DuplicateID
	counts := lo.CountValues(ids)
	for _, id := range lo.Uniq(ids) {
		if counts[id] > 1 {
			out = append(out, DuplicateID{Collection: collection, ID: id, Count: counts[id]})
		}
	}
	return out
}
