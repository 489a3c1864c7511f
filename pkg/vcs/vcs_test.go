package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupRepo creates a repository with one committed component.
func setupRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err, "failed to initialize git repo")
	w, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	writeFile(t, root, "README.md", "# project\n")
	writeFile(t, root, "src/components/Card.vue", "<template />\n")
	_, err = w.Add("README.md")
	require.NoError(t, err)
	_, err = w.Add("src/components/Card.vue")
	require.NoError(t, err)
	_, err = w.Commit("Initial test commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err, "failed to create initial commit")
	return root, w
}

func TestStagedFiles(t *testing.T) {
	root, w := setupRepo(t)

	writeFile(t, root, "src/components/Button.vue", "<template />\n")
	writeFile(t, root, "src/components/Card.vue", "<template><div /></template>\n")
	writeFile(t, root, "src/components/notes.md", "notes\n")
	writeFile(t, root, "src/views/Home.vue", "<template />\n")
	writeFile(t, root, "src/components/Untracked.vue", "<template />\n")
	for _, p := range []string{
		"src/components/Button.vue",
		"src/components/Card.vue",
		"src/components/notes.md",
		"src/views/Home.vue",
	} {
		_, err := w.Add(p)
		require.NoError(t, err)
	}

	files, err := StagedFiles(root, "src/components", ".vue")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "components", "Button.vue"),
		filepath.Join(root, "src", "components", "Card.vue"),
	}, files)

	abs, err := StagedFiles(filepath.Join(root, "src"), filepath.Join(root, "src", "views"), ".vue")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "views", "Home.vue")}, abs)
}

func TestStagedFiles_NothingStaged(t *testing.T) {
	root, _ := setupRepo(t)

	files, err := StagedFiles(root, "src/components", ".vue")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpen_NotRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestStage(t *testing.T) {
	root, w := setupRepo(t)
	repo, err := Open(root)
	require.NoError(t, err)

	doc := filepath.Join(root, "docs", "components", "Card.md")
	writeFile(t, root, "docs/components/Card.md", "# Card\n")
	require.NoError(t, repo.Stage(doc))

	status, err := w.Status()
	require.NoError(t, err)
	require.Contains(t, status, "docs/components/Card.md")
	assert.Equal(t, git.Added, status["docs/components/Card.md"].Staging)

	assert.Error(t, repo.Stage(filepath.Join(filepath.Dir(root), "elsewhere.md")))
}
