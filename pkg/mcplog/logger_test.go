package mcplog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeParams(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		wantKeys []string
		wantSkip []string
	}{
		{name: "nil map returns empty", input: nil},
		{
			name:     "short string passes through",
			input:    map[string]any{"componentName": "Button"},
			wantKeys: []string{"componentName"},
		},
		{
			name:     "long string replaced with _len key",
			input:    map[string]any{"componentName": strings.Repeat("x", 200)},
			wantKeys: []string{"componentName_len"},
			wantSkip: []string{"componentName"},
		},
		{
			name:     "non-string values pass through",
			input:    map[string]any{"force": true, "extra": nil},
			wantKeys: []string{"force", "extra"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := SanitizeParams(tc.input)
			assert.Len(t, out, len(tc.wantKeys))
			for _, k := range tc.wantKeys {
				assert.Contains(t, out, k)
			}
			for _, k := range tc.wantSkip {
				assert.NotContains(t, out, k)
			}
		})
	}
}

func TestResponseBytes(t *testing.T) {
	assert.Equal(t, 0, ResponseBytes(nil))
	assert.Greater(t, ResponseBytes(mcp.NewToolResultText("# Button")), len("# Button"))
}

func TestNilLogger(t *testing.T) {
	l, err := NewLogger("")
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.NoError(t, l.Write(Entry{Tool: "x"}))
	assert.NoError(t, l.Record("x", nil, time.Now(), nil, nil))
	assert.NoError(t, l.Close())
}

func TestLoggerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mcp.jsonl")
	l, err := NewLogger(path)
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := Now
	Now = func() time.Time { return start.Add(1500 * time.Millisecond) }
	defer func() { Now = orig }()

	require.NoError(t, l.Record("get_component_doc", map[string]any{"componentName": "Button"}, start, mcp.NewToolResultText("# Button"), nil))
	require.NoError(t, l.Record("generate_component_doc", map[string]any{"componentName": "Nope"}, start, mcp.NewToolResultError("component not found"), nil))
	require.NoError(t, l.Record("generate_all_component_docs", nil, start, nil, errors.New("boom")))
	require.NoError(t, l.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2026-01-02T03:04:05Z", entries[0].Ts)
	assert.Equal(t, "get_component_doc", entries[0].Tool)
	assert.Equal(t, "Button", entries[0].Params["componentName"])
	assert.Equal(t, int64(1500), entries[0].DurationMs)
	assert.Positive(t, entries[0].ResponseBytes)
	assert.False(t, entries[0].IsError)
	assert.Nil(t, entries[0].Error)

	assert.True(t, entries[1].IsError)

	require.NotNil(t, entries[2].Error)
	assert.Equal(t, "boom", *entries[2].Error)
	assert.Equal(t, 0, entries[2].ResponseBytes)
}

func TestLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.jsonl")
	for i := 0; i < 2; i++ {
		l, err := NewLogger(path)
		require.NoError(t, err)
		require.NoError(t, l.Write(Entry{Tool: "generate_staged_component_docs"}))
		require.NoError(t, l.Close())
	}
	entries, err := ReadEntries(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoggerConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.jsonl")
	l, err := NewLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Write(Entry{Tool: "get_component_doc"}))
		}()
	}
	wg.Wait()
	require.NoError(t, l.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestReadEntries_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"tool\":\"a\"}\nnot json\n"), 0o644))
	_, err := ReadEntries(path)
	assert.ErrorContains(t, err, "line 2")
}
