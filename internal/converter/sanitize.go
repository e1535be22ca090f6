package converter

import "regexp"

var (
	invalidNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	leadingDigit     = regexp.MustCompile(`^[0-9]`)
)

// SanitizeName maps an arbitrary JSON object key to a valid XML element
// name: every character outside [A-Za-z0-9_-] becomes an underscore, a
// leading digit gets an underscore prefix, and an empty key becomes a lone
// underscore. The function is total and deterministic.
func SanitizeName(key string) string {
	name := invalidNameChars.ReplaceAllString(key, "_")
	if name == "" {
		return "_"
	}
	if leadingDigit.MatchString(name) {
		name = "_" + name
	}
	return name
}
