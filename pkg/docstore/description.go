package docstore

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Description returns the preserved description of a rendered document: the
// non-blank lines between the first level-1 heading and the next heading,
// joined with "\n". It returns "" when either heading is missing.
func Description(doc []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	start, end := -1, -1
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gmast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		if start < 0 {
			if h.Level == 1 {
				start = headingEnd(doc, h)
			}
			continue
		}
		end = lineStart(doc, h.Lines().At(0).Start)
		break
	}
	if start < 0 || end < start {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(string(doc[start:end]), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// headingEnd returns the offset just past the heading's last line, including a
// setext underline.
func headingEnd(doc []byte, h *gmast.Heading) int {
	pos := lineEnd(doc, h.Lines().At(h.Lines().Len()-1).Stop)
	next := lineEnd(doc, pos)
	underline := bytes.TrimSpace(doc[pos:next])
	if len(underline) > 0 && len(bytes.Trim(underline, "=-")) == 0 {
		return next
	}
	return pos
}

func lineStart(doc []byte, pos int) int {
	return bytes.LastIndexByte(doc[:pos], '\n') + 1
}

func lineEnd(doc []byte, pos int) int {
	if pos >= len(doc) {
		return len(doc)
	}
	if nl := bytes.IndexByte(doc[pos:], '\n'); nl >= 0 {
		return pos + nl + 1
	}
	return len(doc)
}

// LoadDescription reads the named document and returns its preserved
// description. A missing document yields "" and no error.
func LoadDescription(store Store, name string) (string, error) {
	data, err := store.Read(name)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return Description(data), nil
}
