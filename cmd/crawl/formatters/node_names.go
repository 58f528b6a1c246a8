package formatters

import (
	"path/filepath"
	"strings"
)

// BuildNodeNames returns short display names for paths: the base name, or the
// shortest trailing path that tells apart files sharing a base name.
func BuildNodeNames(paths []string) map[string]string {
	byBase := make(map[string][]string, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		byBase[base] = append(byBase[base], path)
	}

	names := make(map[string]string, len(paths))
	for _, group := range byBase {
		depth := 1
		maxDepth := 0
		for _, path := range group {
			maxDepth = max(maxDepth, len(splitPath(path)))
		}
		for len(group) > 1 && depth < maxDepth && !distinctSuffixes(group, depth) {
			depth++
		}
		for _, path := range group {
			names[path] = pathSuffix(path, depth)
		}
	}
	return names
}

func distinctSuffixes(paths []string, depth int) bool {
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		suffix := pathSuffix(path, depth)
		if seen[suffix] {
			return false
		}
		seen[suffix] = true
	}
	return true
}

func pathSuffix(path string, depth int) string {
	parts := splitPath(path)
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}

func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/"), "/")
}
