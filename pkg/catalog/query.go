package catalog

import (
	"strings"

	"github.com/ursazoo/compdoc/pkg/docstore"
)

// SearchResult holds an entry match with the reason it matched.
type SearchResult struct {
	Entry       *Entry
	MatchReason string
}

// QueryService provides read-only query methods over a loaded catalog.
type QueryService struct {
	Catalog *Catalog
	Index   *CatalogIndex
}

// NewQueryService creates a QueryService from a catalog.
func NewQueryService(cat *Catalog) *QueryService {
	return &QueryService{Catalog: cat, Index: cat.BuildIndex()}
}

// LoadAndQuery loads the catalog from store and returns a ready-to-use QueryService.
func LoadAndQuery(store docstore.Store) (*QueryService, error) {
	cat, err := Load(store)
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat), nil
}

// ListCategories returns the categories that hold at least one entry, in index order.
func (q *QueryService) ListCategories() []Category {
	var out []Category
	for _, c := range Order {
		if len(q.Index.EntriesByCategory[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// ListEntries returns entries filtered by category and/or keyword.
// Both filters are optional (pass "" to skip). The keyword matches
// case-insensitively against name and description.
func (q *QueryService) ListEntries(category Category, keyword string) []Entry {
	var candidates []*Entry
	if category != "" {
		candidates = q.Index.EntriesByCategory[category]
	} else {
		for i := range q.Catalog.Entries {
			candidates = append(candidates, &q.Catalog.Entries[i])
		}
	}

	keyword = strings.ToLower(keyword)
	var out []Entry
	for _, e := range candidates {
		if keyword == "" ||
			strings.Contains(strings.ToLower(e.Name), keyword) ||
			strings.Contains(strings.ToLower(e.Description), keyword) {
			out = append(out, *e)
		}
	}
	return out
}

// Search performs a case-insensitive search over names first and
// descriptions second.
func (q *QueryService) Search(query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var results []SearchResult
	for i := range q.Catalog.Entries {
		e := &q.Catalog.Entries[i]
		switch {
		case strings.Contains(strings.ToLower(e.Name), query):
			results = append(results, SearchResult{Entry: e, MatchReason: "name"})
		case strings.Contains(strings.ToLower(e.Description), query):
			results = append(results, SearchResult{Entry: e, MatchReason: "description"})
		}
	}
	return results
}
