package navigation

// Item represents a navigation link that can be rendered in shared layouts.
// Emphasis marks the call-to-action entry that the desktop bar draws as a
// pill button instead of a plain link.
type Item struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// IsActive reports whether a link pointing at linkPath should be highlighted
// while currentPath is displayed. The comparison is exact: no trailing slash
// cleanup, no case folding and no prefix matching.
func IsActive(currentPath, linkPath string) bool {
	return currentPath == linkPath
}

// ActiveFlags evaluates IsActive for every link path in order.
func ActiveFlags(currentPath string, linkPaths []string) []bool {
	flags := make([]bool, len(linkPaths))
	for i, linkPath := range linkPaths {
		flags[i] = IsActive(currentPath, linkPath)
	}
	return flags
}
