package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "single paragraph",
			doc:  "# Tag\n\nCustom text\n\n## Example\n\n```vue\n<Tag />\n```\n",
			want: "Custom text",
		},
		{
			name: "several lines",
			doc:  "# Tag\n\nFirst line.\n\nSecond *line*.  \n\n## Props\n",
			want: "First line.\nSecond *line*.",
		},
		{
			name: "no description",
			doc:  "# Tag\n\n## Example\n",
			want: "",
		},
		{
			name: "no title",
			doc:  "Some text\n\n## Example\n",
			want: "",
		},
		{
			name: "no later heading",
			doc:  "# Tag\n\nDangling text\n",
			want: "",
		},
		{
			name: "heading marker inside fence ignored",
			doc:  "# Tag\n\nIntro\n\n```sh\n# not a heading\n```\n\n## Example\n",
			want: "Intro\n```sh\n# not a heading\n```",
		},
		{
			name: "setext title",
			doc:  "Tag\n===\n\nUnderlined\n\nProps\n-----\n",
			want: "Underlined",
		},
		{
			name: "leading h2 before title",
			doc:  "## Preface\n\n# Tag\n\nBody\n\n## Example\n",
			want: "Body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description([]byte(tt.doc)))
		})
	}
}

func TestLoadDescription(t *testing.T) {
	store := NewMemStore()

	desc, err := LoadDescription(store, "Missing")
	require.NoError(t, err)
	assert.Empty(t, desc)

	require.NoError(t, store.Write("Tag", []byte("# Tag\n\nCustom text\n\n## Example\n")))
	desc, err = LoadDescription(store, "Tag")
	require.NoError(t, err)
	assert.Equal(t, "Custom text", desc)
}
