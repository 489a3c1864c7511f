package catalog

// Category groups components in the index.
type Category string

// Categories in index order.
const (
	CategoryBase        Category = "Base"
	CategoryNavigation  Category = "Navigation"
	CategoryForm        Category = "Form"
	CategoryDataDisplay Category = "DataDisplay"
	CategoryFeedback    Category = "Feedback"
	CategoryLayout      Category = "Layout"
	CategoryExample     Category = "Example"
)

// Order lists every category in the order the index renders them. The last
// entry is the fallback.
var Order = []Category{
	CategoryBase,
	CategoryNavigation,
	CategoryForm,
	CategoryDataDisplay,
	CategoryFeedback,
	CategoryLayout,
	CategoryExample,
}

// Rule assigns Category to names containing any of Substrings.
type Rule struct {
	Category   Category
	Substrings []string
}

// Entry is one documented component as seen by the index.
type Entry struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description,omitempty"`
}

// Summary returns the first line of the description.
func (e Entry) Summary() string {
	for i := 0; i < len(e.Description); i++ {
		if e.Description[i] == '\n' {
			return e.Description[:i]
		}
	}
	return e.Description
}
