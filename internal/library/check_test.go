package library

import (
	"testing"

	"github.com/hmans/bookshelf/internal/model"
	"github.com/samber/lo"
)

func TestCheck(t *testing.T) {
	t.Run("clean dataset", func(t *testing.T) {
		r := Check(&model.Dataset{
			Authors: []model.Author{model.NewAuthor(1, "A")},
			Books:   []model.Book{model.NewBook(1, "B", 1)},
		})
		if r.HasIssues() {
			t.Errorf("HasIssues() = true, want false: %+v", r)
		}
	})

	t.Run("orphans and duplicates", func(t *testing.T) {
		r := Check(&model.Dataset{
			Authors: []model.Author{{ID: 1}, {ID: 1}},
			Books: []model.Book{
				{ID: 1, AuthorID: lo.ToPtr(1)},
				{ID: 2, AuthorID: lo.ToPtr(5)},
				{ID: 2, AuthorID: lo.ToPtr(1)},
			},
		})
		if len(r.OrphanedBooks) != 1 || r.OrphanedBooks[0].BookID != 2 || lo.FromPtr(r.OrphanedBooks[0].AuthorID) != 5 {
			t.Errorf("OrphanedBooks = %+v", r.OrphanedBooks)
		}
		if len(r.DuplicateIDs) != 2 {
			t.Fatalf("DuplicateIDs count = %d, want 2", len(r.DuplicateIDs))
		}
		if r.DuplicateIDs[0] != (DuplicateID{Collection: "authors", ID: 1, Count: 2}) {
			t.Errorf("DuplicateIDs[0] = %+v", r.DuplicateIDs[0])
		}
		if r.TotalIssues() != 3 {
			t.Errorf("TotalIssues() = %d, want 3", r.TotalIssues())
		}
	})

	t.Run("book without author id is orphaned", func(t *testing.T) {
		r := Check(&model.Dataset{
			Authors: []model.Author{model.NewAuthor(1, "A")},
			Books:   []model.Book{{ID: 7, Name: lo.ToPtr("B")}},
		})
		if len(r.OrphanedBooks) != 1 {
			t.Fatalf("OrphanedBooks count = %d, want 1", len(r.OrphanedBooks))
		}
		if o := r.OrphanedBooks[0]; o.BookID != 7 || o.AuthorID != nil {
			t.Errorf("OrphanedBooks[0] = %+v, want book 7 with nil author id", o)
		}
	})
}
