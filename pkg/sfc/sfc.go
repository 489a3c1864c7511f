// Package sfc splits a single-file component source into its behavior
// (<script>), template (<template>) and style (<style>) zones.
//
// Splitting is a substring scan over top-level markers, not an HTML parse.
// Missing zones are reported as empty, never as errors.
package sfc

import (
	"regexp"
	"strings"
)

// Zone is one delimited region of a component file.
type Zone struct {
	// Attrs is the raw attribute string of the opening tag (e.g. `setup lang="ts"`).
	Attrs string
	// Content is the text between the opening and closing tags, untrimmed.
	Content string
	// Found is false when the zone is absent from the file.
	Found bool
}

// Lang returns the zone's lang attribute, or "" when absent.
func (z Zone) Lang() string {
	return Attr(z.Attrs, "lang")
}

// File is a component source decomposed into zones.
type File struct {
	Behavior Zone
	Template Zone
	Styles   []Zone
}

const (
	tagScript   = "script"
	tagTemplate = "template"
	tagStyle    = "style"
)

// Split locates the first top-level behavior and template zones and every
// top-level style zone in source.
func Split(source string) File {
	var f File
	pos := 0
	for pos < len(source) {
		lt := strings.IndexByte(source[pos:], '<')
		if lt < 0 {
			break
		}
		start := pos + lt

		if strings.HasPrefix(source[start:], "<!--") {
			end := strings.Index(source[start+4:], "-->")
			if end < 0 {
				break
			}
			pos = start + 4 + end + 3
			continue
		}

		tag := openTagName(source, start)
		switch tag {
		case tagScript, tagTemplate, tagStyle:
			zone, next, ok := readZone(source, start, tag)
			if !ok {
				return f
			}
			switch tag {
			case tagScript:
				if !f.Behavior.Found {
					f.Behavior = zone
				}
			case tagTemplate:
				if !f.Template.Found {
					f.Template = zone
				}
			case tagStyle:
				f.Styles = append(f.Styles, zone)
			}
			pos = next
		default:
			pos = start + 1
		}
	}
	return f
}

// openTagName returns the zone tag name opening at src[start] ("<script ...")
// or "" when start is not one of the zone tags.
func openTagName(src string, start int) string {
	for _, tag := range []string{tagScript, tagTemplate, tagStyle} {
		if isOpenTag(src, start, tag) {
			return tag
		}
	}
	return ""
}

func isOpenTag(src string, i int, tag string) bool {
	if !strings.HasPrefix(src[i:], "<"+tag) {
		return false
	}
	j := i + 1 + len(tag)
	if j >= len(src) {
		return false
	}
	switch src[j] {
	case '>', '/', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// readZone reads the zone opening at src[start]. It returns the zone and the
// offset just past its closing tag. Template zones may nest <template> elements.
func readZone(src string, start int, tag string) (Zone, int, bool) {
	gt := tagEnd(src, start)
	if gt < 0 {
		return Zone{}, 0, false
	}
	attrs := strings.TrimSpace(src[start+1+len(tag) : gt])
	attrs = strings.TrimSpace(strings.TrimSuffix(attrs, "/"))
	if strings.HasSuffix(src[start:gt], "/") {
		// Self-closing zone tag has no content.
		return Zone{Attrs: attrs, Found: true}, gt + 1, true
	}

	bodyStart := gt + 1
	closeTag := "</" + tag
	depth := 0
	i := bodyStart
	for i < len(src) {
		lt := strings.IndexByte(src[i:], '<')
		if lt < 0 {
			break
		}
		i += lt
		if tag == tagTemplate && isOpenTag(src, i, tagTemplate) {
			inner := tagEnd(src, i)
			if inner < 0 {
				break
			}
			if !strings.HasSuffix(src[i:inner], "/") {
				depth++
			}
			i = inner + 1
			continue
		}
		if strings.HasPrefix(src[i:], closeTag) {
			end := strings.IndexByte(src[i:], '>')
			if end < 0 {
				break
			}
			if depth == 0 {
				return Zone{Attrs: attrs, Content: src[bodyStart:i], Found: true}, i + end + 1, true
			}
			depth--
			i += end + 1
			continue
		}
		i++
	}
	return Zone{}, 0, false
}

// tagEnd returns the index of the '>' that closes the tag opening at src[start],
// skipping quoted attribute values. Returns -1 when the tag never closes.
func tagEnd(src string, start int) int {
	var quote byte
	for i := start + 1; i < len(src); i++ {
		c := src[i]
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

var attrPattern = regexp.MustCompile(`(?:^|\s)([\w:@.-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// Attr returns the value of the named attribute in a raw attribute string.
func Attr(attrs, name string) string {
	for _, m := range attrPattern.FindAllStringSubmatch(attrs, -1) {
		if m[1] == name {
			if m[2] != "" {
				return m[2]
			}
			return m[3]
		}
	}
	return ""
}
