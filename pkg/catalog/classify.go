package catalog

import "strings"

// DefaultRules is the ordered classification rule list. Matching is
// case-sensitive and the first matching rule wins.
var DefaultRules = []Rule{
	{Category: CategoryBase, Substrings: []string{"Icon", "Button", "Svg", "Link", "Text", "Typography"}},
	{Category: CategoryNavigation, Substrings: []string{"Nav", "Menu", "Tabs", "TabBar", "TabPane", "TabItem", "Breadcrumb", "Pagination", "Step"}},
	{Category: CategoryForm, Substrings: []string{"Form", "Input", "Select", "Checkbox", "Radio", "Switch", "Slider", "Picker", "Upload"}},
	{Category: CategoryDataDisplay, Substrings: []string{"Table", "List", "Card", "Tag", "Badge", "Avatar", "Tooltip", "Collapse", "Image"}},
	{Category: CategoryFeedback, Substrings: []string{"Alert", "Message", "Modal", "Dialog", "Notification", "Loading", "Progress", "Toast", "Drawer"}},
	{Category: CategoryLayout, Substrings: []string{"Layout", "Grid", "Row", "Col", "Container", "Divider", "Space", "Header", "Footer", "Sidebar", "Aside"}},
}

// Classify returns the category of a component name using DefaultRules.
func Classify(name string) Category {
	return ClassifyWith(DefaultRules, name)
}

// ClassifyWith returns the category of the first rule with a substring
// contained in name, or CategoryExample.
func ClassifyWith(rules []Rule, name string) Category {
	for _, r := range rules {
		for _, s := range r.Substrings {
			if strings.Contains(name, s) {
				return r.Category
			}
		}
	}
	return CategoryExample
}
