package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursazoo/compdoc/pkg/extractor"
)

func sampleMetadata() *extractor.Metadata {
	return &extractor.Metadata{
		Name:        "Tag",
		Description: "Auto text",
		Props: []extractor.Prop{
			{Name: "type", Type: "'info' | 'warn'", Required: true, Description: "Visual variant"},
			{Name: "closable", Type: "boolean", HasDefault: true, Default: "false"},
			{Name: "label", Type: "string", HasDefault: true},
		},
		Template: "<span class=\"tag\">\n  <slot />\n</span>",
		Styles: []extractor.StyleBlock{
			{Content: ".tag { color: red; }", Lang: "scss", Attrs: `lang="scss" scoped`},
			{Content: "span {}", Lang: "css"},
		},
		HasSlot: true,
	}
}

func TestRender_FullDocument(t *testing.T) {
	got := Render(sampleMetadata(), "", Options{})

	want := strings.Join([]string{
		"# Tag",
		"",
		"Auto text",
		"",
		"## Example",
		"",
		"```vue",
		"<Tag type=\"type值\">",
		"  内容",
		"</Tag>",
		"```",
		"",
		"## Props",
		"",
		"| Name | Type | Required | Default | Description |",
		"|------|------|:--------:|---------|-------------|",
		"| type | `'info' \\| 'warn'` | ✓ | - | Visual variant |",
		"| closable | `boolean` |  | false | - |",
		"| label | `string` |  | \"\" | - |",
		"",
		"## Template",
		"",
		"```vue",
		"<template>",
		"  <span class=\"tag\">",
		"    <slot />",
		"  </span>",
		"</template>",
		"```",
		"",
		"## Style",
		"",
		"The component uses `lang=\"scss\" scoped` styles.",
		"",
		"```scss",
		".tag { color: red; }",
		"```",
		"",
		"The component uses CSS styles.",
		"",
		"```css",
		"span {}",
		"```",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_Idempotent(t *testing.T) {
	meta := sampleMetadata()
	assert.Equal(t, Render(meta, "", Options{}), Render(meta, "", Options{}))
}

func TestRender_ExistingDescriptionWins(t *testing.T) {
	got := Render(sampleMetadata(), "Custom text", Options{})

	assert.Contains(t, got, "# Tag\n\nCustom text\n\n## Example")
	assert.NotContains(t, got, "Auto text")
}

func TestRender_MinimalDocument(t *testing.T) {
	got := Render(&extractor.Metadata{Name: "Spacer"}, "  ", Options{ExampleLang: "html"})

	assert.Equal(t, "# Spacer\n\n## Example\n\n```html\n<Spacer />\n```\n", got)
}

func TestRender_BlankStyleZone(t *testing.T) {
	meta := &extractor.Metadata{Name: "Spacer", Styles: []extractor.StyleBlock{{Lang: "css"}}}
	got := Render(meta, "", Options{})

	assert.True(t, strings.HasSuffix(got, "## Style\n\nThe component uses CSS styles.\n\n```css\n\n```\n"))
	assert.Equal(t, got, Render(meta, "", Options{}))
}

func TestRender_ExplicitExampleKept(t *testing.T) {
	meta := &extractor.Metadata{
		Name:            "Btn",
		Example:         "<Btn primary />",
		ExampleExplicit: true,
		Props:           []extractor.Prop{{Name: "primary", Type: "boolean"}},
	}
	assert.Contains(t, Render(meta, "", Options{}), "```vue\n<Btn primary />\n```")
}

func TestRender_PropOrder(t *testing.T) {
	meta := &extractor.Metadata{Name: "X", Props: []extractor.Prop{
		{Name: "zeta", Type: "string"},
		{Name: "alpha", Type: "string"},
		{Name: "mid", Type: "string"},
	}}
	out := Render(meta, "", Options{})

	z := strings.Index(out, "| zeta |")
	a := strings.Index(out, "| alpha |")
	m := strings.Index(out, "| mid |")
	require.True(t, z > 0 && a > 0 && m > 0)
	assert.Less(t, z, a)
	assert.Less(t, a, m)
}

func TestStyleFence(t *testing.T) {
	tests := map[string]string{
		"scss":    "scss",
		"sass":    "sass",
		"less":    "less",
		"stylus":  "stylus",
		"css":     "css",
		"":        "css",
		"postcss": "css",
	}
	for lang, want := range tests {
		assert.Equal(t, want, StyleFence(lang), lang)
	}
}
