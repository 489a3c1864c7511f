package parser

import "strings"

// Language represents a supported behavior-zone language.
type Language int

const (
	// LanguageTypeScript represents TypeScript (lang="ts" or lang="tsx")
	LanguageTypeScript Language = iota
	// LanguageJavaScript represents JavaScript (no lang attribute, "js" or "jsx")
	LanguageJavaScript
	// LanguageUnknown represents an unsupported language
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// ScriptLanguage maps the lang attribute of a <script> zone to a grammar.
// isTSX reports whether the TSX variant of the TypeScript grammar applies.
func ScriptLanguage(lang string) (l Language, isTSX bool) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ts", "typescript":
		return LanguageTypeScript, false
	case "tsx":
		return LanguageTypeScript, true
	case "", "js", "javascript", "jsx":
		return LanguageJavaScript, false
	default:
		return LanguageUnknown, false
	}
}
