package library

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hmans/bookshelf/internal/model"
)

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	return path
}

func TestLoadDataset(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "db.json",
			content: `{"authors":[{"id":1,"name":"A"}],"books":[{"id":1,"name":"B1","authorId":1}]}`,
		},
		{
			name: "yaml",
			file: "db.yaml",
			content: `authors:
  - id: 1
    name: A
books:
  - id: 1
    name: B1
    authorId: 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := LoadDataset(writeSeed(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadDataset() error = %v", err)
			}
			if len(ds.Authors) != 1 || !reflect.DeepEqual(ds.Authors[0], model.NewAuthor(1, "A")) {
				t.Errorf("Authors = %+v", ds.Authors)
			}
			if len(ds.Books) != 1 || !reflect.DeepEqual(ds.Books[0], model.NewBook(1, "B1", 1)) {
				t.Errorf("Books = %+v", ds.Books)
			}
		})
	}
}

func TestLoadDatasetMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "db.json",
			content: `{"authors":[{"id":1,"name":""}],"books":[{"id":1},{"id":2,"name":"","authorId":0}]}`,
		},
		{
			name: "yaml",
			file: "db.yaml",
			content: `authors:
  - id: 1
    name: ""
books:
  - id: 1
  - id: 2
    name: ""
    authorId: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := LoadDataset(writeSeed(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadDataset() error = %v", err)
			}
			if a := ds.Authors[0]; a.Name == nil || *a.Name != "" {
				t.Errorf("author name = %v, want empty string", a.Name)
			}
			if b := ds.Books[0]; b.Name != nil || b.AuthorID != nil {
				t.Errorf("book 1 = %+v, want name and author id unset", b)
			}
			if b := ds.Books[1]; b.Name == nil || b.AuthorID == nil || *b.Name != "" || *b.AuthorID != 0 {
				t.Errorf("book 2 = %+v, want empty name and zero author id", b)
			}
		})
	}
}

func TestLoadDatasetErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("LoadDataset() error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := LoadDataset(writeSeed(t, "db.json", `{"authors": [`))
		if err == nil {
			t.Error("LoadDataset() error = nil, want parse error")
		}
	})
}

func TestOpen(t *testing.T) {
	s, err := Open(writeSeed(t, "db.json", `{"authors":[{"id":3,"name":"A"}],"books":[]}`))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if a := s.AddAuthor("B"); a.ID != 4 {
		t.Errorf("AddAuthor().ID = %d, want 4", a.ID)
	}
}

func TestSaveDataset(t *testing.T) {
	ds := &model.Dataset{
		Authors: []model.Author{model.NewAuthor(1, ""), {ID: 2}},
		Books:   []model.Book{model.NewBook(1, "B1", 1), {ID: 2}},
	}

	for _, file := range []string{"db.json", "db.yaml"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			if err := SaveDataset(path, ds); err != nil {
				t.Fatalf("SaveDataset() error = %v", err)
			}

			got, err := LoadDataset(path)
			if err != nil {
				t.Fatalf("LoadDataset() error = %v", err)
			}
			if !reflect.DeepEqual(got, ds) {
				t.Errorf("round trip = %+v, want %+v", got, ds)
			}
		})
	}

	t.Run("missing fields are omitted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")
		if err := SaveDataset(path, &model.Dataset{Authors: []model.Author{}, Books: []model.Book{{ID: 2}}}); err != nil {
			t.Fatalf("SaveDataset() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if strings.Contains(string(data), "name") || strings.Contains(string(data), "authorId") {
			t.Errorf("output = %s, want no name or authorId keys", data)
		}
	})
}
