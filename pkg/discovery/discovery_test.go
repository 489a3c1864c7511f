package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fileNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func fixtureTree(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	writeFile(t, tmp, "BaseButton.vue", "<template />")
	writeFile(t, tmp, "form/TextInput.vue", "<template />")
	writeFile(t, tmp, "form/helpers.ts", "export {}")
	writeFile(t, tmp, "nav/NavMenu.vue", "<template />")
	writeFile(t, tmp, "nav/NavMenu.spec.vue", "<template />")
	writeFile(t, tmp, "__tests__/Fake.vue", "<template />")
	writeFile(t, tmp, "node_modules/lib/Dep.vue", "<template />")
	return tmp
}

func TestDiscoverFiles(t *testing.T) {
	files, err := DiscoverFiles(fixtureTree(t), DefaultConfig(".vue"))
	require.NoError(t, err)

	assert.Equal(t, []string{"BaseButton.vue", "TextInput.vue", "NavMenu.vue"}, fileNames(files))
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), "expected absolute path, got %s", f)
	}
	for i := 1; i < len(files); i++ {
		assert.LessOrEqual(t, files[i-1], files[i], "files should be sorted")
	}
}

func TestDiscoverFiles_CustomInclude(t *testing.T) {
	files, err := DiscoverFiles(fixtureTree(t), Config{Include: []string{"form/**"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"TextInput.vue", "helpers.ts"}, fileNames(files))
}

func TestDiscoverFiles_MissingRoot(t *testing.T) {
	files, err := DiscoverFiles(filepath.Join(t.TempDir(), "nope"), DefaultConfig(".vue"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	_, err := DiscoverFiles(t.TempDir(), Config{Include: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestFindComponent(t *testing.T) {
	root := fixtureTree(t)

	files, err := FindComponent(root, DefaultConfig(".vue"), "NavMenu")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "nav", "NavMenu.vue")}, files)

	_, err = FindComponent(root, DefaultConfig(".vue"), "Missing")
	assert.ErrorIs(t, err, ErrComponentNotFound)

	_, err = FindComponent(root, DefaultConfig(".vue"), "../BaseButton")
	assert.ErrorIs(t, err, ErrComponentNotFound)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Button", BaseName("/a/b/Button.vue"))
	assert.Equal(t, "Button", BaseName("Button"))
}
