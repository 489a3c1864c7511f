// Package vcs reads and updates the git index of the project containing the
// components.
package vcs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no git repository contains the path.
var ErrNotRepository = errors.New("not a git repository")

// Repo is an opened git working tree.
type Repo struct {
	repo *git.Repository
	wt   *git.Worktree
	root string
}

// Open finds the repository containing path, searching parent directories.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get git worktree: %w", err)
	}
	return &Repo{repo: repo, wt: wt, root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute path of the working tree.
func (r *Repo) Root() string { return r.root }

// StagedFiles returns the absolute paths of files staged as added, modified,
// renamed or copied that live under dir and end in ext. dir may be absolute
// or relative to the working tree root. Files that no longer exist on disk
// are skipped. The result is sorted.
func (r *Repo) StagedFiles(dir, ext string) ([]string, error) {
	prefix, err := r.relative(dir)
	if err != nil {
		return nil, err
	}
	if prefix == "." {
		prefix = ""
	} else if prefix != "" {
		prefix += "/"
	}

	status, err := r.wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get git status: %w", err)
	}

	var files []string
	for path, st := range status {
		switch st.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
		default:
			continue
		}
		if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, ext) {
			continue
		}
		abs := filepath.Join(r.root, filepath.FromSlash(path))
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		files = append(files, abs)
	}
	sort.Strings(files)
	return files, nil
}

// Stage adds the given files to the index.
func (r *Repo) Stage(paths ...string) error {
	for _, p := range paths {
		rel, err := r.relative(p)
		if err != nil {
			return err
		}
		if _, err := r.wt.Add(rel); err != nil {
			return fmt.Errorf("git add %s: %w", rel, err)
		}
	}
	return nil
}

// relative converts p to a slash-separated path relative to the root.
func (r *Repo) relative(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return "", fmt.Errorf("path %s outside repository: %w", p, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s outside repository %s", p, r.root)
	}
	return filepath.ToSlash(rel), nil
}

// StagedFiles opens the repository containing repoPath and lists staged
// component files under dir with extension ext.
func StagedFiles(repoPath, dir, ext string) ([]string, error) {
	repo, err := Open(repoPath)
	if err != nil {
		return nil, err
	}
	return repo.StagedFiles(dir, ext)
}
