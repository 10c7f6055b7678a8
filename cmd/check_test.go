package cmd

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/hmans/bookshelf/internal/config"
	"github.com/hmans/bookshelf/internal/model"
)

func TestRunChecks(t *testing.T) {
	clean := &model.Dataset{
		Authors: []model.Author{model.NewAuthor(1, "A")},
		Books:   []model.Book{model.NewBook(1, "B", 1)},
	}
	dirty := &model.Dataset{
		Authors: []model.Author{{ID: 1}, {ID: 1}},
		Books:   []model.Book{model.NewBook(1, "B", 1), model.NewBook(2, "C", 5)},
	}
	unassigned := &model.Dataset{
		Authors: []model.Author{model.NewAuthor(1, "A")},
		Books:   []model.Book{{ID: 1}},
	}

	tests := []struct {
		name        string
		modify      func(c *config.Config)
		ds          *model.Dataset
		wantSuccess bool
		wantConfig  int
		wantTotal   int
	}{
		{"all good", nil, clean, true, 0, 0},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }, clean, false, 1, 1},
		{"bad search limit", func(c *config.Config) { c.Search.Limit = 0 }, clean, false, 1, 1},
		{"data issues", nil, dirty, false, 0, 2},
		{"book without author", nil, unassigned, false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			if tt.modify != nil {
				tt.modify(c)
			}

			result := runChecks(c, tt.ds)

			if result.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", result.Success, tt.wantSuccess)
			}
			if len(result.ConfigErrors) != tt.wantConfig {
				t.Errorf("ConfigErrors = %v, want %d", result.ConfigErrors, tt.wantConfig)
			}
			if got := result.TotalIssues(); got != tt.wantTotal {
				t.Errorf("TotalIssues() = %d, want %d", got, tt.wantTotal)
			}
		})
	}
}

func TestWriteCheckJSON(t *testing.T) {
	ds := &model.Dataset{
		Authors: []model.Author{model.NewAuthor(1, "A")},
		Books:   []model.Book{model.NewBook(1, "B", 3), {ID: 2}},
	}
	result := runChecks(config.Default(), ds)

	var buf bytes.Buffer
	if err := writeCheckJSON(&buf, result); err != nil {
		t.Fatalf("writeCheckJSON() error = %v", err)
	}

	var got struct {
		Success    bool `json:"success"`
		DataIssues struct {
			OrphanedBooks []struct {
				BookID   int  `json:"book_id"`
				AuthorID *int `json:"author_id"`
			} `json:"orphaned_books"`
		} `json:"data_issues"`
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if got.Success {
		t.Error("success = true, want false")
	}
	orphans := got.DataIssues.OrphanedBooks
	if len(orphans) != 2 {
		t.Fatalf("orphaned_books count = %d, want 2", len(orphans))
	}
	if orphans[0].AuthorID == nil || *orphans[0].AuthorID != 3 {
		t.Errorf("orphaned_books[0].author_id = %v, want 3", orphans[0].AuthorID)
	}
	if orphans[1].BookID != 2 || orphans[1].AuthorID != nil {
		t.Errorf("orphaned_books[1] = %+v, want book 2 with null author_id", orphans[1])
	}
}
