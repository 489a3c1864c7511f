// Package extractor recovers component documentation metadata from the
// zones of a single-file component.
//
// Every rule is a pure function over a string. Input that does not match the
// expected idioms degrades to empty fields; extraction never fails.
package extractor

// Prop is one documented configurable input of a component.
type Prop struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`

	// Default is the declared default value with surrounding quotes removed.
	// Only meaningful when HasDefault is true.
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`

	Description string `json:"description,omitempty"`
}

// StyleBlock is one style zone of a component.
type StyleBlock struct {
	Content string `json:"content"`
	// Lang is the declared lang attribute, "css" when absent.
	Lang string `json:"lang"`
	// Attrs is the raw attribute string of the style tag (e.g. `lang="scss" scoped`).
	Attrs string `json:"attrs,omitempty"`
}

// Metadata is everything extracted from one component file.
//
// It is rebuilt from source text on every run and never persisted itself.
type Metadata struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Props       []Prop       `json:"props"`
	Template    string       `json:"template,omitempty"`
	Styles      []StyleBlock `json:"styles,omitempty"`

	// Example is the author-supplied usage snippet when ExampleExplicit is
	// true. Otherwise it is empty until a synthesizer fills it in.
	Example         string `json:"example"`
	ExampleExplicit bool   `json:"example_explicit"`

	// HasSlot reports whether the template accepts injected child content.
	HasSlot bool `json:"has_slot"`

	// BehaviorLang is the lang attribute of the behavior zone ("ts", "tsx" or "").
	BehaviorLang string `json:"behavior_lang,omitempty"`
	// Behavior is the raw behavior zone, kept for diagnostics.
	Behavior string `json:"-"`
}
