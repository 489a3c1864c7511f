package extractor

import "strings"

// skipLiteral returns the index just past the string literal or comment that
// starts at s[i], or i when none starts there.
func skipLiteral(s string, i int) int {
	switch c := s[i]; {
	case c == '"' || c == '\'' || c == '`':
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case c:
				return j + 1
			}
		}
		return len(s)
	case strings.HasPrefix(s[i:], "//"):
		if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
			return i + nl
		}
		return len(s)
	case strings.HasPrefix(s[i:], "/*"):
		if end := strings.Index(s[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 2
		}
		return len(s)
	}
	return i
}

// matchBrace returns the index of the '}' closing the '{' at s[open], or -1.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); {
		if next := skipLiteral(s, i); next != i {
			i = next
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// braceDepths returns, for every byte of s, the '{' nesting depth in effect
// at that byte. Braces inside literals and comments are ignored. masked is
// true for bytes inside a comment and for string bytes after the opening
// quote, so a match may still start at a quoted key.
func braceDepths(s string) (depths []int, masked []bool) {
	depths = make([]int, len(s))
	masked = make([]bool, len(s))
	depth := 0
	for i := 0; i < len(s); {
		if next := skipLiteral(s, i); next != i {
			from := i
			if c := s[i]; c == '"' || c == '\'' || c == '`' {
				from = i + 1
			}
			for j := i; j < next; j++ {
				depths[j] = depth
				masked[j] = j >= from
			}
			i = next
			continue
		}
		if s[i] == '}' {
			depth--
		}
		depths[i] = depth
		if s[i] == '{' {
			depth++
		}
		i++
	}
	return depths, masked
}

// readValue reads the expression starting at s[i] up to the next top-level
// ',', ';' or line break. Quoted values are returned without their quotes.
// When angle is true, '<' and '>' also nest so generic type arguments stay
// intact.
func readValue(s string, i int, angle bool) (value string, quoted bool) {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) {
		return "", false
	}
	if c := s[i]; c == '"' || c == '\'' || c == '`' {
		end := skipLiteral(s, i)
		if end > len(s) || end-1 <= i || s[end-1] != c {
			return strings.TrimSpace(s[i+1:]), true
		}
		return s[i+1 : end-1], true
	}

	depth := 0
	start := i
	for i < len(s) {
		if s[i] == '"' || s[i] == '\'' || s[i] == '`' {
			i = skipLiteral(s, i)
			continue
		}
		c := s[i]
		switch {
		case c == '(' || c == '[' || c == '{' || (angle && c == '<'):
			depth++
		case c == ')' || c == ']' || c == '}' || (angle && c == '>' && !(i > 0 && s[i-1] == '=')):
			if depth == 0 {
				return strings.TrimSpace(s[start:i]), false
			}
			depth--
		case (c == ',' || c == ';' || c == '\n') && depth == 0:
			return strings.TrimSpace(s[start:i]), false
		}
		i++
	}
	return strings.TrimSpace(s[start:]), false
}
