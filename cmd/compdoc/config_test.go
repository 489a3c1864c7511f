package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursazoo/compdoc/pkg/discovery"
	"github.com/ursazoo/compdoc/pkg/pipeline"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadProjectConfig_DefaultsWithoutFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	assert.Equal(t, "src/components", cfg.ComponentsDir)
	assert.Equal(t, "docs/components", cfg.OutputDir)
	assert.Equal(t, ".vue", cfg.Extension)
	assert.True(t, cfg.SyntaxCheck)
	assert.Equal(t, pipeline.DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
}

func TestLoadProjectConfig_ReadsDefaultFile(t *testing.T) {
	chdirTemp(t)
	yamlText := `components_dir: app/ui
output_dir: site/ui
props_merge: dedupe
stage_docs: true
syntax_check: false
exclude:
  - "**/legacy/**"
`
	require.NoError(t, os.WriteFile(defaultConfigPath, []byte(yamlText), 0o644))

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	assert.Equal(t, "app/ui", cfg.ComponentsDir)
	assert.Equal(t, "site/ui", cfg.OutputDir)
	assert.Equal(t, "dedupe", cfg.PropsMerge)
	assert.True(t, cfg.StageDocs)
	assert.False(t, cfg.SyntaxCheck)
	assert.Equal(t, ".vue", cfg.Extension, "unset fields keep defaults")
	assert.Contains(t, cfg.Exclude, "**/legacy/**")
}

func TestLoadProjectConfig_ExplicitPathMustExist(t *testing.T) {
	dir := t.TempDir()

	_, err := loadProjectConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadProjectConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("components_dir: [unterminated"), 0o644))

	_, err := loadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadProjectConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: from-file\n"), 0o644))
	t.Setenv("COMPDOC_OUTPUT_DIR", "from-env")

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestApplyEnv(t *testing.T) {
	cfg := defaultProjectConfig()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"COMPDOC_COMPONENTS_DIR": "lib",
		"COMPDOC_STAGE_DOCS":     "true",
		"COMPDOC_SYNTAX_CHECK":   "0",
		"COMPDOC_CACHE_SIZE":     "16",
		"COMPDOC_DEBOUNCE_MS":    "50",
		"UNRELATED":              "x",
	}))
	require.NoError(t, err)
	assert.Equal(t, "lib", cfg.ComponentsDir)
	assert.True(t, cfg.StageDocs)
	assert.False(t, cfg.SyntaxCheck)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"COMPDOC_STAGE_DOCS":  "maybe",
		"COMPDOC_CACHE_SIZE":  "lots",
		"COMPDOC_DEBOUNCE_MS": "1.5",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := defaultProjectConfig()
			err := cfg.applyEnv(mapLookup(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProjectConfig)
		wantErr string
	}{
		{"defaults", func(*ProjectConfig) {}, ""},
		{"empty components dir", func(c *ProjectConfig) { c.ComponentsDir = " " }, "components_dir"},
		{"empty output dir", func(c *ProjectConfig) { c.OutputDir = "" }, "output_dir"},
		{"extension without dot", func(c *ProjectConfig) { c.Extension = "vue" }, "must start with a dot"},
		{"unknown merge policy", func(c *ProjectConfig) { c.PropsMerge = "union" }, "merge policy"},
		{"unknown log level", func(c *ProjectConfig) { c.LogLevel = "loud" }, "loud"},
		{"unknown log format", func(c *ProjectConfig) { c.LogFormat = "xml" }, "xml"},
		{"negative debounce", func(c *ProjectConfig) { c.DebounceMs = -1 }, "debounce_ms"},
		{"bad include glob", func(c *ProjectConfig) { c.Include = []string{"src/["} }, "invalid include pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultProjectConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilter(t *testing.T) {
	cfg := defaultProjectConfig()
	filter := cfg.Filter()
	assert.Equal(t, []string{"**/*.vue"}, filter.Include)
	assert.Equal(t, discovery.DefaultExcludes, filter.Exclude)

	cfg.Include = []string{"base/**/*.vue"}
	cfg.Exclude = []string{"**/Internal*.vue"}
	filter = cfg.Filter()
	assert.Equal(t, []string{"base/**/*.vue"}, filter.Include)
	assert.Len(t, filter.Exclude, len(discovery.DefaultExcludes)+1)
	assert.True(t, filter.Match("base/Button.vue"))
	assert.False(t, filter.Match("base/InternalButton.vue"))
	assert.False(t, filter.Match("forms/Input.vue"))

	assert.Len(t, discovery.DefaultExcludes, len(defaultProjectConfig().Filter().Exclude), "defaults are not mutated")
}

func TestServiceConfig(t *testing.T) {
	cfg := defaultProjectConfig()
	cfg.StageDocs = true

	sc := cfg.ServiceConfig()
	assert.Equal(t, "src/components", sc.ComponentsDir)
	assert.Equal(t, ".vue", sc.Extension)
	assert.True(t, sc.StageDocs)
	assert.Equal(t, []string{"**/*.vue"}, sc.Filter.Include)
}
