package main

import (
	"fmt"
	"log/slog"

	"github.com/ursazoo/compdoc/pkg/docstore"
	"github.com/ursazoo/compdoc/pkg/extractor"
	"github.com/ursazoo/compdoc/pkg/metrics"
	"github.com/ursazoo/compdoc/pkg/parser"
	"github.com/ursazoo/compdoc/pkg/pipeline"
)

// app bundles the long-lived objects a command needs.
type app struct {
	service *pipeline.Service
	store   *docstore.FSStore
	parsers *parser.ParserManager
}

// newApp wires the pipeline from cfg. recorder may be nil.
func newApp(cfg *ProjectConfig, logger *slog.Logger, recorder metrics.Recorder) (*app, error) {
	policy, err := extractor.ParseMergePolicy(cfg.PropsMerge)
	if err != nil {
		return nil, err
	}

	store := docstore.NewFSStore(cfg.OutputDir)
	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithExtractor(extractor.New(
			extractor.WithMergePolicy(policy),
			extractor.WithLogger(logger),
		)),
		pipeline.WithExampleLang(cfg.ExampleLang),
		pipeline.WithCacheSize(cfg.CacheSize),
		pipeline.WithRecorder(recorder),
	}

	a := &app{store: store}
	if cfg.SyntaxCheck {
		a.parsers = parser.NewParserManager(logger)
		opts = append(opts, pipeline.WithParserManager(a.parsers))
	}
	a.service = pipeline.NewService(pipeline.New(store, opts...), cfg.ServiceConfig(), logger)

	logger.Debug("pipeline configured",
		"components_dir", cfg.ComponentsDir,
		"output_dir", cfg.OutputDir,
		"props_merge", policy,
		"syntax_check", cfg.SyntaxCheck)
	return a, nil
}

// Close releases parser resources.
func (a *app) Close() error {
	if a.parsers == nil {
		return nil
	}
	if err := a.parsers.Close(); err != nil {
		return fmt.Errorf("close parsers: %w", err)
	}
	return nil
}
