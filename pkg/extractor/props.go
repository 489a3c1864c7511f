package extractor

import (
	"fmt"
	"regexp"
	"strings"
)

// PropStrategy recovers props written in one declaration idiom.
type PropStrategy interface {
	// Name identifies the strategy in logs and tests.
	Name() string
	// Extract returns the props found in the behavior zone, in declaration order.
	Extract(behavior string) []Prop
}

// DefaultStrategies returns the prop strategies in evaluation order:
// object-literal declarations first, typed interfaces second.
func DefaultStrategies() []PropStrategy {
	return []PropStrategy{ObjectStrategy{}, InterfaceStrategy{}}
}

// MergePolicy decides how the results of several strategies are combined.
type MergePolicy string

const (
	// MergeConcat appends every strategy's props in strategy order. A name
	// declared in both idioms appears twice.
	MergeConcat MergePolicy = "concat"
	// MergeDedupe keeps one prop per name. A later strategy replaces an
	// earlier one's entry in place, so typed interfaces win over object
	// literals while keeping the first declaration position.
	MergeDedupe MergePolicy = "dedupe"
)

// ParseMergePolicy converts a configuration string into a MergePolicy.
// The empty string selects MergeConcat.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeConcat:
		return MergeConcat, nil
	case MergeDedupe:
		return MergeDedupe, nil
	default:
		return "", fmt.Errorf("unknown props merge policy %q (want %q or %q)", s, MergeConcat, MergeDedupe)
	}
}

// ExtractProps runs every strategy over the behavior zone and merges the
// results according to policy.
func ExtractProps(behavior string, strategies []PropStrategy, policy MergePolicy) []Prop {
	var props []Prop
	index := make(map[string]int)
	for _, s := range strategies {
		for _, p := range s.Extract(behavior) {
			if policy == MergeDedupe {
				if i, ok := index[p.Name]; ok {
					props[i] = p
					continue
				}
				index[p.Name] = len(props)
			}
			props = append(props, p)
		}
	}
	return props
}

// --- object-literal declarations ---

var (
	objectBlockPattern = regexp.MustCompile(`\bprops\s*:\s*\{|\bdefineProps\s*\(\s*\{`)
	objectEntryPattern = regexp.MustCompile(`(?:'([^'\n]+)'|"([^"\n]+)"|([A-Za-z_$][\w$]*))\s*:\s*\{`)
	typeMarker         = regexp.MustCompile(`\btype\s*:`)
	defaultMarker      = regexp.MustCompile(`\bdefault\s*:`)
	requiredMarker     = regexp.MustCompile(`\brequired\s*:\s*(true|false)\b`)
)

// ObjectStrategy reads `props: { name: { type, default, required } }` and
// `defineProps({ ... })` declarations.
type ObjectStrategy struct{}

// Name implements PropStrategy.
func (ObjectStrategy) Name() string { return "object" }

// Extract implements PropStrategy.
func (ObjectStrategy) Extract(behavior string) []Prop {
	loc := objectBlockPattern.FindStringIndex(behavior)
	if loc == nil {
		return nil
	}
	open := loc[1] - 1
	end := matchBrace(behavior, open)
	if end < 0 {
		return nil
	}
	body := behavior[open+1 : end]
	depths, masked := braceDepths(body)

	var props []Prop
	for _, m := range objectEntryPattern.FindAllStringSubmatchIndex(body, -1) {
		start := m[0]
		if depths[start] != 0 || masked[start] || (start > 0 && isIdentByte(body[start-1])) {
			continue
		}
		entryOpen := m[1] - 1
		entryEnd := matchBrace(body, entryOpen)
		if entryEnd < 0 {
			break
		}
		p := parseObjectEntry(submatch(body, m), body[entryOpen+1:entryEnd])
		if doc, ok := precedingDocComment(body, start); ok {
			p.Description = CleanDocComment(doc)
		}
		props = append(props, p)
	}
	return props
}

// parseObjectEntry reads the type, default and required markers of one entry.
func parseObjectEntry(name, entry string) Prop {
	p := Prop{Name: name, Type: "Any"}
	if loc := typeMarker.FindStringIndex(entry); loc != nil {
		if v, _ := readValue(entry, loc[1], true); v != "" {
			p.Type = v
		}
	}
	if loc := defaultMarker.FindStringIndex(entry); loc != nil {
		v, quoted := readValue(entry, loc[1], false)
		if v != "" || quoted {
			p.Default = v
			p.HasDefault = true
		}
	}
	if m := requiredMarker.FindStringSubmatch(entry); m != nil {
		p.Required = m[1] == "true"
	}
	return p
}

// --- typed interface declarations ---

var (
	interfaceBlockPattern = regexp.MustCompile(`\binterface\s+[\w$]*Props\b[^{;]*\{|\btype\s+[\w$]*Props\s*=\s*\{`)
	paragraphSeparator    = regexp.MustCompile(`\n[ \t]*\r?\n`)
	declPattern           = regexp.MustCompile(`^(?:readonly\s+)?(?:'([^']+)'|"([^"]+)"|([A-Za-z_$][\w$]*))(\?)?\s*:\s*(.*)$`)
	withDefaultsPattern   = regexp.MustCompile(`withDefaults\s*\(\s*defineProps\s*(?:<[^>]*>)?\s*\(\s*\)\s*,\s*\{`)
)

// InterfaceStrategy reads `interface Props { name?: type; }` declarations.
// Defaults come from a bare `name: value` elsewhere in the behavior zone,
// preferring a withDefaults(...) block when present.
type InterfaceStrategy struct{}

// Name implements PropStrategy.
func (InterfaceStrategy) Name() string { return "interface" }

// Extract implements PropStrategy.
func (InterfaceStrategy) Extract(behavior string) []Prop {
	loc := interfaceBlockPattern.FindStringIndex(behavior)
	if loc == nil {
		return nil
	}
	open := loc[1] - 1
	end := matchBrace(behavior, open)
	if end < 0 {
		return nil
	}
	body := behavior[open+1 : end]
	rest := behavior[:loc[0]] + behavior[end+1:]

	var props []Prop
	for _, para := range paragraphSeparator.Split(body, -1) {
		props = append(props, parseParagraph(para)...)
	}
	for i := range props {
		if v, ok := FindDefault(rest, props[i].Name); ok {
			props[i].Default = v
			props[i].HasDefault = true
		}
	}
	return props
}

// parseParagraph reads the declarations of one blank-line separated group.
// A documentation comment applies to the declaration that follows it. Several
// declarations may share a line when separated by ';' or ','.
func parseParagraph(para string) []Prop {
	var (
		props  []Prop
		doc    string
		hasDoc bool
	)
	lines := strings.Split(para, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "/**"):
			text := line
			for !strings.Contains(text[3:], "*/") && i+1 < len(lines) {
				i++
				text += "\n" + lines[i]
			}
			closing := strings.Index(text[3:], "*/")
			if closing < 0 {
				continue
			}
			doc, hasDoc = CleanDocComment(text[3:3+closing]), true
			line = strings.TrimSpace(text[3+closing+2:])
			if line == "" {
				continue
			}
		case strings.HasPrefix(line, "//"), strings.HasPrefix(line, "/*"):
			continue
		}

		trailing := ""
		for line != "" {
			m := declPattern.FindStringSubmatch(line)
			if m == nil {
				doc, hasDoc = "", false
				break
			}
			typ, inline := splitInlineComment(m[5])
			if inline == "" {
				inline = trailing
			}
			trailing = inline
			for bracketBalance(typ) > 0 && i+1 < len(lines) {
				i++
				more, _ := splitInlineComment(strings.TrimSpace(lines[i]))
				typ += " " + more
			}
			decl, rest := cutDeclaration(typ)
			rest = strings.TrimSpace(rest)

			p := Prop{
				Name:     firstNonEmpty(m[1], m[2], m[3]),
				Type:     strings.TrimSpace(decl),
				Required: m[4] != "?",
			}
			switch {
			case hasDoc:
				p.Description = doc
			case rest == "":
				// A trailing comment belongs to the last declaration of the line.
				p.Description = inline
			}
			props = append(props, p)
			doc, hasDoc = "", false
			line = rest
		}
	}
	return props
}

// cutDeclaration splits s at the first ';' or ',' outside brackets, generic
// arguments and string literals.
func cutDeclaration(s string) (decl, rest string) {
	depth := 0
	for i := 0; i < len(s); {
		if next := skipLiteral(s, i); next != i {
			i = next
			continue
		}
		switch c := s[i]; {
		case c == '(' || c == '[' || c == '{' || c == '<':
			depth++
		case c == ')' || c == ']' || c == '}' || (c == '>' && !(i > 0 && s[i-1] == '=')):
			if depth > 0 {
				depth--
			}
		case (c == ';' || c == ',') && depth == 0:
			return s[:i], s[i+1:]
		}
		i++
	}
	return s, ""
}

// splitInlineComment separates a trailing `// comment` from a declaration.
func splitInlineComment(s string) (code, comment string) {
	idx := strings.Index(s, "//")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+2:])
}

// bracketBalance counts unclosed (, [ and { in s.
func bracketBalance(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			n++
		case ')', ']', '}':
			n--
		}
	}
	return n
}

// FindDefault looks for a bare `name: value` assignment in text. A
// withDefaults(...) block is searched first; otherwise the first match in
// text wins.
func FindDefault(text, name string) (string, bool) {
	if loc := withDefaultsPattern.FindStringIndex(text); loc != nil {
		open := loc[1] - 1
		if end := matchBrace(text, open); end > 0 {
			if v, ok := findAssignment(text[open+1:end], name); ok {
				return v, true
			}
		}
	}
	return findAssignment(text, name)
}

func findAssignment(text, name string) (string, bool) {
	pattern := regexp.MustCompile(`(?:^|[^\w$.?])` + regexp.QuoteMeta(name) + `\s*:`)
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	v, quoted := readValue(text, loc[1], false)
	if v == "" && !quoted {
		return "", false
	}
	return v, true
}

func submatch(s string, m []int) string {
	for g := 1; g*2+1 < len(m); g++ {
		if m[g*2] >= 0 {
			return s[m[g*2]:m[g*2+1]]
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
