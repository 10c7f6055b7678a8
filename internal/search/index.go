// Package search provides full-text search over author and book names using Bleve.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/samber/lo"

	"github.com/hmans/bookshelf/internal/model"
)

// Kind distinguishes the two collections sharing one index.
type Kind string

const (
	KindAuthor Kind = "author"
	KindBook   Kind = "book"
)

// DefaultSearchLimit is the default maximum number of search results.
const DefaultSearchLimit = 20

// Index wraps a Bleve in-memory index for searching authors and books.
type Index struct {
	index bleve.Index
}

// document is the structure stored in the Bleve index.
type document struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	// kind is only used as a filter, keep it out of the default _all field
	kindFieldMapping := bleve.NewKeywordFieldMapping()
	kindFieldMapping.IncludeInAll = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("kind", kindFieldMapping)
	docMapping.AddFieldMappingsAt("name", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

func docID(kind Kind, id int) string {
	return string(kind) + ":" + strconv.Itoa(id)
}

// IndexAuthor adds or updates an author in the search index.
func (idx *Index) IndexAuthor(a *model.Author) error {
	return idx.index.Index(docID(KindAuthor, a.ID), document{Kind: string(KindAuthor), Name: lo.FromPtr(a.Name)})
}

// IndexBook adds or updates a book in the search index.
func (idx *Index) IndexBook(b *model.Book) error {
	return idx.index.Index(docID(KindBook, b.ID), document{Kind: string(KindBook), Name: lo.FromPtr(b.Name)})
}

// Delete removes a record from the search index.
func (idx *Index) Delete(kind Kind, id int) error {
	return idx.index.Delete(docID(kind, id))
}

// IndexAll indexes a whole dataset in a single batch.
func (idx *Index) IndexAll(authors []*model.Author, books []*model.Book) error {
	batch := idx.index.NewBatch()
	for _, a := range authors {
		if err := batch.Index(docID(KindAuthor, a.ID), document{Kind: string(KindAuthor), Name: lo.FromPtr(a.Name)}); err != nil {
			return err
		}
	}
	for _, b := range books {
		if err := batch.Index(docID(KindBook, b.ID), document{Kind: string(KindBook), Name: lo.FromPtr(b.Name)}); err != nil {
			return err
		}
	}
	return idx.index.Batch(batch)
}

// Search runs a query string search restricted to one kind and returns the
// matching record ids, best match first. A limit of 0 or less uses
// DefaultSearchLimit.
//
// The query string syntax supports plain terms ("dispossessed"), wildcards
// ("dispo*"), phrases ("\"lathe of heaven\"") and boolean operators.
func (idx *Index) Search(kind Kind, queryStr string, limit int) ([]int, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	kindQuery := bleve.NewTermQuery(string(kind))
	kindQuery.SetField("kind")

	query := bleve.NewConjunctionQuery(bleve.NewQueryStringQuery(queryStr), kindQuery)

	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = limit

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(result.Hits))
	prefix := string(kind) + ":"
	for _, hit := range result.Hits {
		raw, ok := strings.CutPrefix(hit.ID, prefix)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed document id %q: %w", hit.ID, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
