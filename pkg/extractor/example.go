package extractor

import (
	"regexp"
	"strings"
)

var examplePattern = regexp.MustCompile("(?s)@example[\\s*]*```[\\w-]*[ \\t]*\\r?\\n?(.*?)```")

// ResolveExample returns the fenced snippet following an @example tag in the
// behavior zone. Comment decoration (" * ") is stripped from every line and the
// result is trimmed. ok is false when no such annotation exists.
func ResolveExample(behavior string) (code string, ok bool) {
	m := examplePattern.FindStringSubmatch(behavior)
	if m == nil {
		return "", false
	}
	lines := strings.Split(m[1], "\n")
	for i, line := range lines {
		lines[i] = stripExampleDecoration(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

// stripExampleDecoration removes the leading " * " of a comment line while
// keeping the snippet's own indentation.
func stripExampleDecoration(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "*/") {
		return strings.TrimRight(line, " \t\r")
	}
	trimmed = strings.TrimPrefix(trimmed, "*")
	trimmed = strings.TrimPrefix(trimmed, " ")
	return strings.TrimRight(trimmed, " \t\r")
}
