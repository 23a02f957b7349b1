package stuffit

import "strings"

// Entry paths are colon-delimited, case-insensitive, Mac-style.

const pathSeparator = ":"

// joinPath appends name to prefix, where prefix is either "" (root) or
// already ends in the separator, matching how the folder-prefix stack in
// the container parser is built incrementally.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + name
}

// lastComponent returns the final colon-delimited component of path.
// Nothing in the package calls it: with tree-flattening enabled the
// container parser builds no folder prefix, so paths are bare names.
func lastComponent(path string) string {
	if i := strings.LastIndex(path, pathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// pathKey normalizes a path for case-insensitive lookup. Entry paths are
// stored and compared by this normalized form, never by their
// display-case original.
func pathKey(path string) string {
	return strings.ToLower(path)
}
