package parser

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// MaxIssues caps the number of issues reported for one source.
const MaxIssues = 5

// Issue is one syntax problem found in a behavior zone. Line and Column are
// 1-based and relative to the start of the zone.
type Issue struct {
	Line    int
	Column  int
	Missing bool
	Near    string
}

func (i Issue) String() string {
	if i.Missing {
		return fmt.Sprintf("line %d:%d: missing %s", i.Line, i.Column, i.Near)
	}
	return fmt.Sprintf("line %d:%d: syntax error near %q", i.Line, i.Column, i.Near)
}

// CheckSyntax parses a behavior zone and returns up to MaxIssues syntax
// problems. scriptLang is the zone's lang attribute. Unsupported languages
// yield no issues.
func (pm *ParserManager) CheckSyntax(source []byte, scriptLang string) ([]Issue, error) {
	lang, isTSX := ScriptLanguage(scriptLang)
	if lang == LanguageUnknown || len(strings.TrimSpace(string(source))) == 0 {
		return nil, nil
	}

	tree, err := pm.Parse(source, lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lang, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	var issues []Issue
	collectIssues(root, source, &issues)
	return issues, nil
}

func collectIssues(node *ts.Node, source []byte, issues *[]Issue) {
	if len(*issues) >= MaxIssues {
		return
	}
	if node.IsError() || node.IsMissing() {
		pos := node.StartPosition()
		issue := Issue{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1, Missing: node.IsMissing()}
		if issue.Missing {
			issue.Near = node.Kind()
		} else {
			issue.Near = snippet(node.Utf8Text(source))
		}
		*issues = append(*issues, issue)
		return
	}
	if !node.HasError() {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectIssues(node.Child(i), source, issues)
	}
}

// snippet returns the first line of text, shortened to 40 runes.
func snippet(text string) string {
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > 40 {
		text = string(r[:40]) + "..."
	}
	return text
}
