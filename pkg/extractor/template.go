package extractor

import (
	"strings"
	"unicode/utf8"
)

const (
	// CollapseThreshold is the serialized length in characters above which a
	// child element is elided from the template excerpt.
	CollapseThreshold = 100
	// CollapsedMarker replaces an elided child element.
	CollapsedMarker = "<!-- 嵌套内容已省略 -->"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// TemplateExcerpt returns the template zone with every immediate child of a
// top-level element that is longer than CollapseThreshold replaced by
// CollapsedMarker. The marker keeps the child's indentation. The result is
// trimmed.
func TemplateExcerpt(template string) string {
	var b strings.Builder
	pos := 0
	for {
		start := nextElement(template, pos)
		if start < 0 {
			break
		}
		end := elementEnd(template, start)
		b.WriteString(template[pos:start])
		b.WriteString(collapseChildren(template[start:end]))
		pos = end
	}
	b.WriteString(template[pos:])
	return strings.TrimSpace(b.String())
}

// HasSlot reports whether the template accepts injected child content.
func HasSlot(template string) bool {
	return strings.Contains(template, "<slot")
}

// collapseChildren rewrites the direct children of one element.
func collapseChildren(elem string) string {
	gt := markupTagEnd(elem, 0)
	if gt < 0 || elem[gt-1] == '/' {
		return elem
	}
	openEnd := gt + 1
	closeStart := strings.LastIndex(elem, "</")
	if closeStart < openEnd {
		closeStart = len(elem)
	}
	inner := elem[openEnd:closeStart]

	var b strings.Builder
	b.WriteString(elem[:openEnd])
	pos := 0
	for {
		start := nextElement(inner, pos)
		if start < 0 {
			break
		}
		end := elementEnd(inner, start)
		b.WriteString(inner[pos:start])
		if child := inner[start:end]; utf8.RuneCountInString(child) > CollapseThreshold {
			b.WriteString(CollapsedMarker)
		} else {
			b.WriteString(child)
		}
		pos = end
	}
	b.WriteString(inner[pos:])
	b.WriteString(elem[closeStart:])
	return b.String()
}

// nextElement returns the offset of the next opening tag at or after from,
// skipping comments and stray closing tags, or -1.
func nextElement(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		if strings.HasPrefix(s[i:], "<!--") {
			end := strings.Index(s[i+4:], "-->")
			if end < 0 {
				return -1
			}
			i += 4 + end + 2
			continue
		}
		if i+1 < len(s) && isTagStart(s[i+1]) {
			return i
		}
	}
	return -1
}

// elementEnd returns the offset just past the element opening at s[start].
// Unclosed elements extend to the end of s.
func elementEnd(s string, start int) int {
	depth := 0
	for i := start; i < len(s); {
		if s[i] != '<' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], "<!--") {
			end := strings.Index(s[i+4:], "-->")
			if end < 0 {
				return len(s)
			}
			i += 4 + end + 3
			continue
		}
		gt := markupTagEnd(s, i)
		if gt < 0 {
			return len(s)
		}
		switch {
		case i+1 < len(s) && s[i+1] == '/':
			depth--
		case i+1 < len(s) && isTagStart(s[i+1]):
			if s[gt-1] != '/' && !voidElements[strings.ToLower(tagName(s, i))] {
				depth++
			}
		}
		i = gt + 1
		if depth <= 0 {
			return i
		}
	}
	return len(s)
}

func tagName(s string, lt int) string {
	j := lt + 1
	for j < len(s) && (isTagStart(s[j]) || s[j] == '-' || s[j] == ':' || s[j] == '.' || (s[j] >= '0' && s[j] <= '9')) {
		j++
	}
	return s[lt+1 : j]
}

func isTagStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// markupTagEnd returns the index of the '>' closing the tag at s[start],
// skipping quoted attribute values, or -1.
func markupTagEnd(s string, start int) int {
	var quote byte
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		}
	}
	return -1
}
