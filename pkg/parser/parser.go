package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// parserKey uniquely identifies a parser (language + TSX variant)
type parserKey struct {
	lang  Language
	isTSX bool
}

// ParserManager owns one lazily created tree-sitter parser per grammar.
//
// Memory Management:
// - ParserManager owns parser instances and must be closed via Close()
// - Callers own Tree instances and must call tree.Close() after use
//
// Parse calls are serialized; documentation runs process files one at a time.
type ParserManager struct {
	parsers map[parserKey]*ts.Parser
	mutex   sync.Mutex
	logger  *slog.Logger

	parsesCalled int
}

// NewParserManager creates a new ParserManager instance.
//
// The returned manager must be closed via Close() to free resources.
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		parsers: make(map[parserKey]*ts.Parser),
		logger:  logger,
	}
}

// Parse parses source code using the specified language grammar.
//
// Returns a Tree that MUST be closed by the caller via tree.Close().
func (pm *ParserManager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.parsesCalled++

	p, err := pm.parserLocked(parserKey{lang: lang, isTSX: isTSX})
	if err != nil {
		return nil, err
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}
	return tree, nil
}

// parserLocked returns the parser for key, creating it on first use.
// Must be called while holding mutex.
func (pm *ParserManager) parserLocked(key parserKey) (*ts.Parser, error) {
	if p, ok := pm.parsers[key]; ok {
		return p, nil
	}
	langPtr, err := languagePointer(key.lang, key.isTSX)
	if err != nil {
		return nil, err
	}
	p := ts.NewParser()
	if p == nil {
		return nil, fmt.Errorf("failed to create parser")
	}
	if err := p.SetLanguage(ts.NewLanguage(langPtr)); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	pm.parsers[key] = p
	pm.logger.Debug("created parser", "language", key.lang.String(), "isTSX", key.isTSX)
	return p, nil
}

// Close releases all parsers. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager",
		"parsers", len(pm.parsers),
		"parses_called", pm.parsesCalled)
	for _, p := range pm.parsers {
		p.Close()
	}
	pm.parsers = make(map[parserKey]*ts.Parser)
	return nil
}

// ParsesCalled returns the number of Parse calls so far.
func (pm *ParserManager) ParsesCalled() int {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	return pm.parsesCalled
}

func languagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}
