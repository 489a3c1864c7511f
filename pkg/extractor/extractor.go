package extractor

import (
	"log/slog"

	"github.com/ursazoo/compdoc/pkg/sfc"
)

// Extractor turns component source text into Metadata.
//
// An Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	strategies []PropStrategy
	policy     MergePolicy
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrategies replaces the ordered prop strategy list.
func WithStrategies(strategies ...PropStrategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// WithMergePolicy selects how prop strategy results are combined.
func WithMergePolicy(policy MergePolicy) Option {
	return func(e *Extractor) {
		e.policy = policy
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor using DefaultStrategies and MergeConcat unless
// overridden.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(),
		policy:     MergeConcat,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the metadata of one component. baseName is the file name
// without extension and is used when the source declares no name.
//
// Extract never fails: missing zones and unrecognized declarations yield
// empty fields.
func (e *Extractor) Extract(baseName, source string) *Metadata {
	file := sfc.Split(source)
	behavior := file.Behavior.Content

	meta := &Metadata{
		Name:         ResolveName(behavior, baseName),
		Description:  ResolveDescription(behavior),
		Props:        ExtractProps(behavior, e.strategies, e.policy),
		Template:     TemplateExcerpt(file.Template.Content),
		Styles:       ExtractStyles(file.Styles),
		HasSlot:      HasSlot(file.Template.Content),
		BehaviorLang: file.Behavior.Lang(),
		Behavior:     behavior,
	}
	if code, ok := ResolveExample(behavior); ok {
		meta.Example = code
		meta.ExampleExplicit = true
	}

	e.logger.Debug("extracted component",
		"name", meta.Name,
		"props", len(meta.Props),
		"styles", len(meta.Styles),
		"explicit_example", meta.ExampleExplicit)
	return meta
}
