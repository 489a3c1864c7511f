// Package pipeline turns component source files into documentation pages.
//
// Each candidate file is read, extracted, rendered with the author's
// preserved description and saved. After the batch the component index is
// regenerated from the full document set. Files are processed sequentially so
// the index always observes every write of the run.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ursazoo/compdoc/pkg/catalog"
	"github.com/ursazoo/compdoc/pkg/discovery"
	"github.com/ursazoo/compdoc/pkg/docstore"
	"github.com/ursazoo/compdoc/pkg/extractor"
	"github.com/ursazoo/compdoc/pkg/metrics"
	"github.com/ursazoo/compdoc/pkg/parser"
	"github.com/ursazoo/compdoc/pkg/render"
	"github.com/ursazoo/compdoc/pkg/util"
)

// Pipeline generates and checks component pages against a Store.
type Pipeline struct {
	store      docstore.Store
	extractor  *extractor.Extractor
	parsers    *parser.ParserManager
	cache      *MetadataCache
	recorder   metrics.Recorder
	renderOpts render.Options
	cacheSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractor replaces the default extractor.
func WithExtractor(e *extractor.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithParserManager enables behavior-zone syntax diagnostics.
func WithParserManager(pm *parser.ParserManager) Option {
	return func(p *Pipeline) { p.parsers = pm }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithExampleLang sets the fence language of example blocks.
func WithExampleLang(lang string) Option {
	return func(p *Pipeline) { p.renderOpts.ExampleLang = lang }
}

// WithCacheSize sets the metadata cache capacity.
func WithCacheSize(n int) Option {
	return func(p *Pipeline) { p.cacheSize = n }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline writing to store.
func New(store docstore.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:    store,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = extractor.New(extractor.WithLogger(p.logger))
	}
	p.cache = NewMetadataCache(p.cacheSize, p.logger)
	return p
}

// Store returns the document store.
func (p *Pipeline) Store() docstore.Store { return p.store }

// CacheStats returns the metadata cache counters.
func (p *Pipeline) CacheStats() CacheStats { return p.cache.Stats() }

// Run processes paths in order and regenerates the index. A failing file is
// recorded in the report and does not stop the batch. The index is rebuilt
// even when paths is empty.
func (p *Pipeline) Run(paths []string) *Report {
	start := time.Now()
	report := &Report{}

	for _, path := range paths {
		res := p.process(path, true)
		p.recorder.IncFileResult(metrics.OutcomeOf(res.Err))
		if res.Err != nil {
			p.logger.Warn("failed to document component", "path", path, "error", res.Err)
		} else {
			p.logger.Info("documented component", "component", res.Component, "output", res.Output)
		}
		report.add(res)
	}

	report.IndexErr = p.RebuildIndex()
	report.Duration = time.Since(start)
	p.recorder.ObserveRunDuration("run", report.Duration)
	p.logger.Info("documentation run complete",
		"processed", report.Processed,
		"failed", report.Failed,
		"duration_ms", report.Duration.Milliseconds())
	return report
}

// RebuildIndex regenerates the index page from every stored document.
func (p *Pipeline) RebuildIndex() error {
	err := p.rebuildIndex()
	p.recorder.IncIndexBuild(metrics.OutcomeOf(err))
	if err != nil {
		p.logger.Error("failed to build index", "error", err)
	}
	return err
}

func (p *Pipeline) rebuildIndex() error {
	content, err := catalog.BuildIndex(p.store)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if err := p.store.Write(docstore.IndexName, []byte(content)); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	return nil
}

// Check renders every path without writing and reports a unified diff for
// each page that is missing or differs from the stored one.
func (p *Pipeline) Check(paths []string) *Report {
	start := time.Now()
	report := &Report{}
	for _, path := range paths {
		report.add(p.process(path, false))
	}
	report.Duration = time.Since(start)
	p.recorder.ObserveRunDuration("check", report.Duration)
	return report
}

// process documents one file. With write unset the page is only rendered and
// compared with the stored one.
func (p *Pipeline) process(path string, write bool) FileResult {
	res := FileResult{Path: path}

	source, err := util.ReadSource(path)
	if err != nil {
		res.Err = fmt.Errorf("read component: %w", err)
		return res
	}

	meta, hit := p.extract(discovery.BaseName(path), source)
	res.Component = meta.Name
	res.Output = meta.Name
	res.CacheHit = hit
	res.Warnings = p.diagnose(meta)

	if docstore.Reserved(meta.Name) {
		res.Err = fmt.Errorf("%w: %q is the index page, declare a component name", docstore.ErrInvalidName, meta.Name)
		return res
	}

	existing, err := p.store.Read(meta.Name)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		res.Err = fmt.Errorf("load existing document %q: %w", meta.Name, err)
		return res
	}
	page := render.Render(meta, docstore.Description(existing), p.renderOpts)

	if !write {
		if string(existing) != page {
			res.Diff = unifiedDiff(meta.Name, string(existing), page)
		}
		res.Success = true
		return res
	}

	if err := p.store.Write(meta.Name, []byte(page)); err != nil {
		res.Err = fmt.Errorf("save document %q: %w", meta.Name, err)
		return res
	}
	res.Success = true
	return res
}

func (p *Pipeline) extract(baseName, source string) (*extractor.Metadata, bool) {
	key := Key(baseName, source)
	if meta, ok := p.cache.Get(key); ok {
		p.recorder.IncCacheLookup(true)
		return meta, true
	}
	p.recorder.IncCacheLookup(false)
	meta := p.extractor.Extract(baseName, source)
	p.cache.Add(key, meta)
	return meta, false
}

// diagnose returns syntax warnings for the behavior zone. Diagnostics never
// fail a file.
func (p *Pipeline) diagnose(meta *extractor.Metadata) []string {
	if p.parsers == nil || meta.Behavior == "" {
		return nil
	}
	issues, err := p.parsers.CheckSyntax([]byte(meta.Behavior), meta.BehaviorLang)
	if err != nil {
		p.logger.Debug("syntax check skipped", "component", meta.Name, "error", err)
		return nil
	}
	warnings := make([]string, 0, len(issues))
	for _, issue := range issues {
		warnings = append(warnings, issue.String())
	}
	if len(warnings) > 0 {
		p.logger.Warn("behavior zone has syntax errors", "component", meta.Name, "issues", len(warnings))
	}
	return warnings
}

func unifiedDiff(name, stored, fresh string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(stored),
		B:        difflib.SplitLines(fresh),
		FromFile: name + docstore.Ext + " (stored)",
		ToFile:   name + docstore.Ext + " (generated)",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text
}
