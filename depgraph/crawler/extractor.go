package crawler

import "regexp"

// importPattern matches `import <anything> from "<relative specifier>"` on a single line.
var importPattern = regexp.MustCompile(`import\s+.*?from\s+['"](\.+/[^'"]+?)['"]`)

// ExtractReferences returns the relative import specifiers in content, in the
// order they appear. Duplicates are kept.
func ExtractReferences(content string) []string {
	matches := importPattern.FindAllStringSubmatch(content, -1)
	refs := make([]string, 0, len(matches))
	for _, match := range matches {
		refs = append(refs, match[1])
	}
	return refs
}
