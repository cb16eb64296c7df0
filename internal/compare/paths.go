package compare

import "strings"

// RootPath is where every comparison starts.
const RootPath = "root"

func fieldPath(parent, name string) string {
	return parent + "." + name
}

func elementPath(parent string) string {
	return parent + "[]"
}

// PathSegments splits "root.items[].name" into {"root", "items[]", "name"}.
func PathSegments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
