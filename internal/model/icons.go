package model

// Markers used by the report, REPL and TUI output.
const (
	IconRoot   = "◆" // Root node
	IconLeaf   = "·" // Node without children
	IconOrphan = "✗" // Declared parent not found
	IconBranch = " " // Node with children (no icon to reduce noise)
)

// Icon picks the marker for an entry.
func Icon(e NodeEntry) string {
	switch {
	case e.Root:
		return IconRoot
	case !e.Resolved:
		return IconOrphan
	case e.Leaf:
		return IconLeaf
	}
	return IconBranch
}
