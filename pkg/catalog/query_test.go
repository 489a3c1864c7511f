package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQueryService() *QueryService {
	return NewQueryService(&Catalog{Entries: []Entry{
		{Name: "BaseButton", Category: CategoryBase, Description: "A clickable button."},
		{Name: "NavMenu", Category: CategoryNavigation, Description: "Top navigation with a dropdown."},
		{Name: "UserCard", Category: CategoryDataDisplay, Description: "Shows a user avatar and a button."},
	}})
}

func TestListCategories(t *testing.T) {
	q := testQueryService()
	assert.Equal(t, []Category{CategoryBase, CategoryNavigation, CategoryDataDisplay}, q.ListCategories())
}

func TestListEntries_NoFilter(t *testing.T) {
	assert.Len(t, testQueryService().ListEntries("", ""), 3)
}

func TestListEntries_ByCategory(t *testing.T) {
	got := testQueryService().ListEntries(CategoryNavigation, "")
	require.Len(t, got, 1)
	assert.Equal(t, "NavMenu", got[0].Name)
}

func TestListEntries_KeywordCaseInsensitive(t *testing.T) {
	got := testQueryService().ListEntries("", "BUTTON")
	assert.Len(t, got, 2)
}

func TestListEntries_NoMatch(t *testing.T) {
	assert.Empty(t, testQueryService().ListEntries(CategoryForm, ""))
}

func TestSearch(t *testing.T) {
	q := testQueryService()

	results := q.Search("button")
	require.Len(t, results, 2)
	assert.Equal(t, "BaseButton", results[0].Entry.Name)
	assert.Equal(t, "name", results[0].MatchReason)
	assert.Equal(t, "UserCard", results[1].Entry.Name)
	assert.Equal(t, "description", results[1].MatchReason)

	assert.Nil(t, q.Search("  "))
	assert.Empty(t, q.Search("nothing-like-this"))
}
