package extractor

import (
	"regexp"
	"strings"
)

// descriptionPattern matches a documentation comment whose opening "/**" is
// followed by a line break, i.e. a multi-line block.
var descriptionPattern = regexp.MustCompile(`(?s)/\*\*[ \t]*\r?\n(.*?)\*/`)

// ResolveDescription returns the flattened text of the first multi-line
// documentation comment in the behavior zone, or "".
func ResolveDescription(behavior string) string {
	m := descriptionPattern.FindStringSubmatch(behavior)
	if m == nil {
		return ""
	}
	return CleanDocComment(m[1])
}

// CleanDocComment flattens the body of a documentation comment (the text
// between "/**" and "*/"): line prefixes are removed, everything from the
// first annotation tag onwards is dropped, and whitespace collapses to single
// spaces.
func CleanDocComment(body string) string {
	var words []string
	for _, line := range strings.Split(body, "\n") {
		line = stripCommentPrefix(line)
		if strings.HasPrefix(line, "@") {
			break
		}
		words = append(words, strings.Fields(line)...)
	}
	return strings.Join(words, " ")
}

// stripCommentPrefix removes leading whitespace and the "*" decoration of one
// comment line.
func stripCommentPrefix(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}

// precedingDocComment returns the body of the documentation comment that ends
// directly before pos (only whitespace between them).
func precedingDocComment(text string, pos int) (string, bool) {
	head := strings.TrimRight(text[:pos], " \t\r\n")
	if !strings.HasSuffix(head, "*/") {
		return "", false
	}
	open := strings.LastIndex(head, "/**")
	if open < 0 || open+3 > len(head)-2 {
		return "", false
	}
	body := head[open+3 : len(head)-2]
	if strings.Contains(body, "*/") {
		// The nearest "*/" closes a plain block comment, not a doc comment.
		return "", false
	}
	return body, true
}
