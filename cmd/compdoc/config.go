package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ursazoo/compdoc/pkg/discovery"
	"github.com/ursazoo/compdoc/pkg/extractor"
	"github.com/ursazoo/compdoc/pkg/pipeline"
	"github.com/ursazoo/compdoc/pkg/util"
	"github.com/ursazoo/compdoc/pkg/watcher"
)

// defaultConfigPath is read when --config is not given. A missing file is
// not an error.
const defaultConfigPath = ".compdoc.yaml"

// envPrefix prefixes every environment override.
const envPrefix = "COMPDOC_"

// ProjectConfig holds the contents of .compdoc.yaml.
type ProjectConfig struct {
	ComponentsDir string   `yaml:"components_dir"`
	OutputDir     string   `yaml:"output_dir"`
	Extension     string   `yaml:"extension"`
	Include       []string `yaml:"include"`
	Exclude       []string `yaml:"exclude"`
	ExampleLang   string   `yaml:"example_lang"`
	PropsMerge    string   `yaml:"props_merge"`
	StageDocs     bool     `yaml:"stage_docs"`
	SyntaxCheck   bool     `yaml:"syntax_check"`
	CacheSize     int      `yaml:"cache_size"`
	LogLevel      string   `yaml:"log_level"`
	LogFormat     string   `yaml:"log_format"`
	DebounceMs    int      `yaml:"debounce_ms"`
	MCPLogPath    string   `yaml:"mcp_log_path"`
}

// defaultProjectConfig mirrors the layout of a typical Vue project.
func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		ComponentsDir: "src/components",
		OutputDir:     "docs/components",
		Extension:     pipeline.DefaultExtension,
		SyntaxCheck:   true,
		CacheSize:     pipeline.DefaultCacheSize,
		LogLevel:      string(util.LevelInfo),
		LogFormat:     string(util.FormatText),
		DebounceMs:    int(watcher.DefaultDebounce / time.Millisecond),
	}
}

// loadProjectConfig reads the YAML file at path over the defaults and
// applies COMPDOC_* environment overrides. An empty path reads
// .compdoc.yaml when it exists.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	cfg := defaultProjectConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides fields from COMPDOC_* variables.
func (c *ProjectConfig) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"COMPONENTS_DIR": &c.ComponentsDir,
		"OUTPUT_DIR":     &c.OutputDir,
		"EXTENSION":      &c.Extension,
		"EXAMPLE_LANG":   &c.ExampleLang,
		"PROPS_MERGE":    &c.PropsMerge,
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_FORMAT":     &c.LogFormat,
		"MCP_LOG_PATH":   &c.MCPLogPath,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"STAGE_DOCS":   &c.StageDocs,
		"SYNTAX_CHECK": &c.SyntaxCheck,
	}
	for key, dst := range bools {
		if v, ok := lookup(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = b
		}
	}

	ints := map[string]*int{
		"CACHE_SIZE":  &c.CacheSize,
		"DEBOUNCE_MS": &c.DebounceMs,
	}
	for key, dst := range ints {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}
	return nil
}

// Validate reports the first invalid field.
func (c *ProjectConfig) Validate() error {
	if strings.TrimSpace(c.ComponentsDir) == "" {
		return errors.New("components_dir must not be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if _, err := extractor.ParseMergePolicy(c.PropsMerge); err != nil {
		return err
	}
	if _, err := util.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := util.ParseLogFormat(c.LogFormat); err != nil {
		return err
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	return c.Filter().Validate()
}

// Filter returns the discovery globs: configured patterns, or every file
// with the configured extension. Configured excludes extend the defaults.
func (c *ProjectConfig) Filter() discovery.Config {
	filter := discovery.DefaultConfig(c.Extension)
	if len(c.Include) > 0 {
		filter.Include = append([]string(nil), c.Include...)
	}
	filter.Exclude = append(filter.Exclude, c.Exclude...)
	return filter
}

// ServiceConfig converts the project config for pipeline.NewService.
func (c *ProjectConfig) ServiceConfig() pipeline.ServiceConfig {
	return pipeline.ServiceConfig{
		ComponentsDir: c.ComponentsDir,
		Extension:     c.Extension,
		Filter:        c.Filter(),
		StageDocs:     c.StageDocs,
	}
}

// Debounce returns the watcher quiet period.
func (c *ProjectConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
