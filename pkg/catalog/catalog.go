// Package catalog classifies documented components and renders the aggregate
// index page.
package catalog

import (
	"fmt"
	"strings"

	"github.com/ursazoo/compdoc/pkg/docstore"
)

// Catalog is the set of documented components currently in a store.
type Catalog struct {
	Entries []Entry
}

// CatalogIndex provides O(1) lookups into the catalog.
type CatalogIndex struct {
	// EntryByName maps component name -> *Entry.
	EntryByName map[string]*Entry

	// EntriesByCategory maps category -> entries in name order.
	EntriesByCategory map[Category][]*Entry
}

// Load reads every component document in store and classifies it. The
// description of each entry is the document's preserved description.
func Load(store docstore.Store) (*Catalog, error) {
	names, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	cat := &Catalog{Entries: make([]Entry, 0, len(names))}
	for _, name := range names {
		data, err := store.Read(name)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", name, err)
		}
		cat.Entries = append(cat.Entries, Entry{
			Name:        name,
			Category:    Classify(name),
			Description: docstore.Description(data),
		})
	}
	return cat, nil
}

// BuildIndex creates lookup maps for fast access.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		EntryByName:       make(map[string]*Entry, len(c.Entries)),
		EntriesByCategory: make(map[Category][]*Entry),
	}
	for i := range c.Entries {
		e := &c.Entries[i]
		idx.EntryByName[e.Name] = e
		idx.EntriesByCategory[e.Category] = append(idx.EntriesByCategory[e.Category], e)
	}
	return idx
}

// IndexTitle is the heading of the index document.
const IndexTitle = "# Component index"

// DesignPrinciples closes every index document.
const DesignPrinciples = `## Design principles

- Consistency: components share naming, spacing and interaction conventions.
- Composition: small components combine into larger ones through props and slots.
- Accessibility: interactive components support keyboard use and screen readers.
- Documentation: every page is generated from source, so edit the description and the source rather than the tables.`

// Markdown renders the index: non-empty categories in Order, one bullet per
// component, then the design principles.
func (c *Catalog) Markdown() string {
	idx := c.BuildIndex()
	sections := []string{IndexTitle}
	for _, category := range Order {
		entries := idx.EntriesByCategory[category]
		if len(entries) == 0 {
			continue
		}
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			line := fmt.Sprintf("- [%s](./%s%s)", e.Name, e.Name, docstore.Ext)
			if s := e.Summary(); s != "" {
				line += " — " + s
			}
			lines = append(lines, line)
		}
		sections = append(sections, "## "+string(category), strings.Join(lines, "\n"))
	}
	sections = append(sections, DesignPrinciples)
	return strings.Join(sections, "\n\n") + "\n"
}

// BuildIndex loads the catalog from store and renders the index document.
func BuildIndex(store docstore.Store) (string, error) {
	cat, err := Load(store)
	if err != nil {
		return "", err
	}
	return cat.Markdown(), nil
}
