package extractor

import "regexp"

var namePattern = regexp.MustCompile(`\bname\s*:\s*(?:'([^'\n]+)'|"([^"\n]+)")`)

// ResolveName returns the component name declared in the behavior zone
// (`name: "Foo"`), falling back to baseName.
func ResolveName(behavior, baseName string) string {
	m := namePattern.FindStringSubmatch(behavior)
	if m == nil {
		return baseName
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
