// Package render turns component metadata into a Markdown reference page.
//
// Rendering is pure: the same metadata and preserved description always
// produce the same bytes.
package render

import (
	"strings"

	"github.com/ursazoo/compdoc/pkg/example"
	"github.com/ursazoo/compdoc/pkg/extractor"
)

// Section headings.
const (
	HeadingExample  = "## Example"
	HeadingProps    = "## Props"
	HeadingTemplate = "## Template"
	HeadingStyle    = "## Style"
)

// DefaultExampleLang is the fence language of the example section.
const DefaultExampleLang = "vue"

// Options tune rendering.
type Options struct {
	// ExampleLang is the fence language of the example block.
	ExampleLang string
}

// fenceRule selects a style fence language when Marker occurs in the style's
// lang tag. Rules are checked in order.
type fenceRule struct {
	Marker string
	Fence  string
}

var styleFenceRules = []fenceRule{
	{Marker: "scss", Fence: "scss"},
	{Marker: "sass", Fence: "sass"},
	{Marker: "less", Fence: "less"},
	{Marker: "styl", Fence: "stylus"},
}

// StyleFence returns the fence language for a style lang tag.
func StyleFence(lang string) string {
	lang = strings.ToLower(lang)
	for _, r := range styleFenceRules {
		if strings.Contains(lang, r.Marker) {
			return r.Fence
		}
	}
	return "css"
}

// Render produces the Markdown page for meta. A non-empty existingDescription
// replaces the extracted description.
func Render(meta *extractor.Metadata, existingDescription string, opts Options) string {
	if opts.ExampleLang == "" {
		opts.ExampleLang = DefaultExampleLang
	}

	sections := []string{"# " + meta.Name}

	description := meta.Description
	if strings.TrimSpace(existingDescription) != "" {
		description = existingDescription
	}
	if description != "" {
		sections = append(sections, description)
	}

	code := meta.Example
	if !meta.ExampleExplicit && code == "" {
		code = example.Synthesize(meta.Name, meta.Props, meta.HasSlot)
	}
	sections = append(sections, HeadingExample, fence(opts.ExampleLang, code))

	if len(meta.Props) > 0 {
		sections = append(sections, HeadingProps, PropsTable(meta.Props))
	}
	if meta.Template != "" {
		sections = append(sections, HeadingTemplate, fence("vue", "<template>\n"+indent(meta.Template)+"\n</template>"))
	}
	if len(meta.Styles) > 0 {
		sections = append(sections, HeadingStyle)
		for _, s := range meta.Styles {
			sections = append(sections, styleLine(s.Attrs), fence(StyleFence(s.Lang), s.Content))
		}
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// PropsTable renders props as a Markdown table in declaration order.
func PropsTable(props []extractor.Prop) string {
	var b strings.Builder
	b.WriteString("| Name | Type | Required | Default | Description |\n")
	b.WriteString("|------|------|:--------:|---------|-------------|")
	for _, p := range props {
		required := ""
		if p.Required {
			required = "✓"
		}
		def := "-"
		if p.HasDefault {
			def = p.Default
			if def == "" {
				def = `""`
			}
		}
		desc := p.Description
		if desc == "" {
			desc = "-"
		}
		b.WriteString("\n| " + cell(p.Name) + " | `" + cell(p.Type) + "` | " + required + " | " + cell(def) + " | " + cell(desc) + " |")
	}
	return b.String()
}

func styleLine(attrs string) string {
	if attrs == "" {
		return "The component uses CSS styles."
	}
	return "The component uses `" + attrs + "` styles."
}

func fence(lang, body string) string {
	return "```" + lang + "\n" + body + "\n```"
}

// indent prefixes every non-blank line with two spaces.
func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func cell(s string) string {
	return cellReplacer.Replace(s)
}
