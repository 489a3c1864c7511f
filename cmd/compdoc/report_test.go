package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ursazoo/compdoc/pkg/pipeline"
)

func identityPath(name string) string { return "docs/" + name }

func TestPrintReport_Success(t *testing.T) {
	report := &pipeline.Report{
		Files: []pipeline.FileResult{
			{Path: "src/Button.vue", Component: "Button", Output: "Button.md", Success: true},
			{Path: "src/Nav.vue", Component: "NavMenu", Output: "NavMenu.md", Success: true, Warnings: []string{"syntax error at 3:1"}},
		},
		Processed: 2,
		Duration:  15 * time.Millisecond,
	}

	var buf bytes.Buffer
	printReport(&buf, report, identityPath)
	out := buf.String()

	assert.Contains(t, out, "✓ Button")
	assert.Contains(t, out, "→ docs/Button.md")
	assert.Contains(t, out, "! syntax error at 3:1")
	assert.Contains(t, out, "processed 2 component files, 0 failed (15ms)")
}

func TestPrintReport_Failures(t *testing.T) {
	report := &pipeline.Report{
		Files: []pipeline.FileResult{
			{Path: "src/Broken.vue", Err: errors.New("read source: permission denied")},
		},
		Processed: 1,
		Failed:    1,
		IndexErr:  errors.New("disk full"),
		StageErr:  errors.New("not a git repository"),
	}

	var buf bytes.Buffer
	printReport(&buf, report, identityPath)
	out := buf.String()

	assert.Contains(t, out, "✗ src/Broken.vue")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "✗ index: disk full")
	assert.Contains(t, out, "! not a git repository")
	assert.Contains(t, out, "1 failed")
}

func TestPrintCheck_UpToDate(t *testing.T) {
	report := &pipeline.Report{
		Files:     []pipeline.FileResult{{Component: "Button", Success: true}},
		Processed: 1,
	}

	var buf bytes.Buffer
	assert.Equal(t, 0, printCheck(&buf, report, true))
	assert.Contains(t, buf.String(), "✓ 1 component docs up to date")
}

func TestPrintCheck_Stale(t *testing.T) {
	diff := "--- a/Button.md\n+++ b/Button.md\n@@ -1 +1 @@\n-# Old\n+# Button\n"
	report := &pipeline.Report{
		Files: []pipeline.FileResult{
			{Component: "Button", Success: true, Diff: diff},
			{Component: "NavMenu", Success: true},
		},
		Processed: 2,
	}

	var buf bytes.Buffer
	assert.Equal(t, 1, printCheck(&buf, report, false))
	assert.Contains(t, buf.String(), "~ Button")
	assert.Contains(t, buf.String(), "1 of 2 component docs out of date")
	assert.NotContains(t, buf.String(), "+# Button")

	buf.Reset()
	printCheck(&buf, report, true)
	assert.Contains(t, buf.String(), "+# Button")
}
