package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptLanguage(t *testing.T) {
	tests := []struct {
		lang    string
		want    Language
		wantTSX bool
	}{
		{"", LanguageJavaScript, false},
		{"js", LanguageJavaScript, false},
		{"ts", LanguageTypeScript, false},
		{"TS", LanguageTypeScript, false},
		{"tsx", LanguageTypeScript, true},
		{"coffee", LanguageUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got, isTSX := ScriptLanguage(tt.lang)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTSX, isTSX)
		})
	}
}

func TestParseTypeScript(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	tree, err := manager.Parse([]byte("interface Props { size?: number }\n"), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind(), "Root should be a program node")
	assert.False(t, root.HasError())
}

func TestParseUnknownLanguage(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	_, err := manager.Parse([]byte("x"), LanguageUnknown, false)
	assert.Error(t, err)
}

func TestCheckSyntax_Valid(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	issues, err := manager.CheckSyntax([]byte("export default {\n  name: 'Ok',\n  props: { a: { type: String } }\n}\n"), "")
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = manager.CheckSyntax([]byte("const props = defineProps<{ a: string }>()\n"), "ts")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckSyntax_Broken(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	issues, err := manager.CheckSyntax([]byte("export default {\n  props: {\n    a: { type: String \n}\n"), "js")
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.LessOrEqual(t, len(issues), MaxIssues)
	assert.GreaterOrEqual(t, issues[0].Line, 1)
	assert.NotEmpty(t, issues[0].String())
}

func TestCheckSyntax_SkipsUnsupported(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	issues, err := manager.CheckSyntax([]byte("this is not checked {"), "coffee")
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 0, manager.ParsesCalled())
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc", snippet("  abc  \nnext"))
	long := "0123456789012345678901234567890123456789XYZ"
	assert.Equal(t, long[:40]+"...", snippet(long))
}
