// Package example synthesizes a usage snippet for components whose source
// carries no explicit @example annotation.
package example

import (
	"strings"

	"github.com/ursazoo/compdoc/pkg/extractor"
)

// SlotPlaceholder is the child content placed inside components that accept
// injected content.
const SlotPlaceholder = "内容"

// maxInlineAttrs is the largest attribute count rendered on one line.
const maxInlineAttrs = 3

// valueRule maps a type expression to an example literal. Rules are checked
// in order; the first rule with a marker contained in the lower-cased type
// wins.
type valueRule struct {
	markers []string
	value   func(name string) string
}

var valueRules = []valueRule{
	{markers: []string{"string"}, value: stringValue},
	{markers: []string{"number"}, value: numberValue},
	{markers: []string{"boolean"}, value: func(string) string { return "true" }},
	{markers: []string{"array", "[]"}, value: func(string) string { return "[]" }},
	{markers: []string{"object"}, value: func(string) string { return "{}" }},
}

// Name heuristics match case-sensitively, so "bgColor" is not a color and
// "iconSize" is not a size.
func stringValue(name string) string {
	switch {
	case strings.Contains(name, "color"):
		return `"#42b883"`
	case strings.Contains(name, "name"), strings.Contains(name, "title"):
		return `"示例` + name + `"`
	case strings.Contains(name, "msg"), strings.Contains(name, "message"):
		return `"这是一条消息"`
	default:
		return `"` + name + `内容"`
	}
}

func numberValue(name string) string {
	switch {
	case strings.Contains(name, "size"):
		return "24"
	case strings.Contains(name, "max"):
		return "100"
	case strings.Contains(name, "min"):
		return "0"
	default:
		return "42"
	}
}

// Value returns the example literal for one prop.
func Value(p extractor.Prop) string {
	typ := strings.ToLower(p.Type)
	for _, rule := range valueRules {
		for _, m := range rule.markers {
			if strings.Contains(typ, m) {
				return rule.value(p.Name)
			}
		}
	}
	return `"` + p.Name + `值"`
}

// Attributes returns the `name=value` pairs of the example tag in declaration
// order. Optional props that declare a default are left out.
func Attributes(props []extractor.Prop) []string {
	var attrs []string
	for _, p := range props {
		if p.HasDefault && !p.Required {
			continue
		}
		attrs = append(attrs, p.Name+"="+Value(p))
	}
	return attrs
}

// Synthesize returns a usage snippet for the named component. The result
// depends only on its arguments.
func Synthesize(name string, props []extractor.Prop, hasSlot bool) string {
	attrs := Attributes(props)

	var tag string
	switch {
	case len(attrs) == 0:
		tag = "<" + name + " />"
	case len(attrs) <= maxInlineAttrs:
		tag = "<" + name + " " + strings.Join(attrs, " ") + " />"
	default:
		tag = "<" + name + "\n  " + strings.Join(attrs, "\n  ") + "\n/>"
	}

	if !hasSlot {
		return tag
	}
	open := strings.TrimRight(strings.TrimSuffix(tag, "/>"), " ")
	return open + ">\n  " + SlotPlaceholder + "\n</" + name + ">"
}
