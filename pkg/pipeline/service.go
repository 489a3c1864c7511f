package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/ursazoo/compdoc/pkg/catalog"
	"github.com/ursazoo/compdoc/pkg/discovery"
	"github.com/ursazoo/compdoc/pkg/docstore"
	"github.com/ursazoo/compdoc/pkg/vcs"
)

// DefaultExtension is the component source extension.
const DefaultExtension = ".vue"

// ServiceConfig selects candidate files for each invocation mode.
type ServiceConfig struct {
	// ComponentsDir is the root searched for component sources.
	ComponentsDir string
	// Extension is the component file extension, DefaultExtension when empty.
	Extension string
	// Filter holds the include and exclude globs. A zero Filter selects
	// discovery.DefaultConfig(Extension).
	Filter discovery.Config
	// StageDocs stages written pages in the enclosing git repository after
	// a successful run.
	StageDocs bool
}

// Service maps invocation modes to candidate sets and runs the pipeline.
// Calls are serialized; the CLI, the watcher and MCP tools share one Service.
type Service struct {
	mu       sync.Mutex
	pipeline *Pipeline
	config   ServiceConfig
	logger   *slog.Logger
}

// NewService wraps p.
func NewService(p *Pipeline, config ServiceConfig, logger *slog.Logger) *Service {
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if len(config.Filter.Include) == 0 && len(config.Filter.Exclude) == 0 {
		config.Filter = discovery.DefaultConfig(config.Extension)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pipeline: p, config: config, logger: logger}
}

// Pipeline returns the wrapped pipeline.
func (s *Service) Pipeline() *Pipeline { return s.pipeline }

// Config returns the effective configuration.
func (s *Service) Config() ServiceConfig { return s.config }

// All documents every component under the components directory.
func (s *Service) All() (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := discovery.DiscoverFiles(s.config.ComponentsDir, s.config.Filter)
	if err != nil {
		return nil, fmt.Errorf("discover components: %w", err)
	}
	s.logger.Info("generating all component docs", "components", len(paths))
	return s.run(paths), nil
}

// Component documents the component whose file base name is name. Every
// file with that name is processed. A missing component returns an error
// wrapping discovery.ErrComponentNotFound and writes nothing.
func (s *Service) Component(name string) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := discovery.FindComponent(s.config.ComponentsDir, s.config.Filter, name)
	if err != nil {
		return nil, err
	}
	return s.run(paths), nil
}

// Staged documents the component files staged in git.
func (s *Service) Staged() (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := absPath(s.config.ComponentsDir)
	staged, err := vcs.StagedFiles(dir, dir, s.config.Extension)
	if err != nil {
		return nil, fmt.Errorf("list staged components: %w", err)
	}
	paths := s.filter(staged)
	s.logger.Info("generating staged component docs", "staged", len(staged), "components", len(paths))
	return s.run(paths), nil
}

// Changed documents a single file reported by the watcher.
func (s *Service) Changed(path string) *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run([]string{path})
}

// Check compares every stored page with a fresh render without writing.
func (s *Service) Check() (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := discovery.DiscoverFiles(s.config.ComponentsDir, s.config.Filter)
	if err != nil {
		return nil, fmt.Errorf("discover components: %w", err)
	}
	return s.pipeline.Check(paths), nil
}

// Document returns the stored page of the named component.
func (s *Service) Document(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.pipeline.Store().Read(name)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrInvalidName) {
			return "", fmt.Errorf("%w: %s", discovery.ErrComponentNotFound, name)
		}
		return "", err
	}
	return string(data), nil
}

// Query loads the stored pages into a catalog query service.
func (s *Service) Query() (*catalog.QueryService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.LoadAndQuery(s.pipeline.Store())
}

func (s *Service) run(paths []string) *Report {
	report := s.pipeline.Run(paths)
	if s.config.StageDocs && report.Success() {
		report.StageErr = s.stage(report)
	}
	return report
}

// filter keeps the paths the discovery globs accept.
func (s *Service) filter(paths []string) []string {
	root := absPath(s.config.ComponentsDir)
	var kept []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		if s.config.Filter.Match(filepath.ToSlash(rel)) {
			kept = append(kept, p)
		}
	}
	return kept
}

// stage adds the written pages and the index to the git index. Only
// filesystem stores can be staged.
func (s *Service) stage(report *Report) error {
	fsStore, ok := s.pipeline.Store().(*docstore.FSStore)
	if !ok {
		return nil
	}
	repo, err := vcs.Open(fsStore.Dir())
	if err != nil {
		s.logger.Warn("cannot stage generated docs", "error", err)
		return fmt.Errorf("stage docs: %w", err)
	}

	var paths []string
	for _, f := range report.Files {
		if f.Success {
			paths = append(paths, absPath(fsStore.Path(f.Output)))
		}
	}
	paths = append(paths, absPath(fsStore.Path(docstore.IndexName)))
	if err := repo.Stage(paths...); err != nil {
		s.logger.Warn("failed to stage generated docs", "error", err)
		return fmt.Errorf("stage docs: %w", err)
	}
	s.logger.Info("staged generated docs", "files", len(paths))
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
