package model

import "treedata/internal/tree"

// NodeEntry is the display and JSON form of one tree record.
type NodeEntry struct {
	Name       string `json:"name"`
	ParentName string `json:"parent_name"` // Declared parent as written in the file
	Depth      int    `json:"depth"`
	Line       int    `json:"line"`     // 1-based line in the input file
	Resolved   bool   `json:"resolved"` // Parent name matched an earlier node
	Root       bool   `json:"root,omitempty"`
	Leaf       bool   `json:"leaf"`
}

// TreeRow is one line of the indented tree display.
type TreeRow struct {
	Indent string `json:"indent"`
	Name   string `json:"name"`
}

// QueryResult gathers every query over a loaded tree.
type QueryResult struct {
	Source   string      `json:"source"`
	Tree     []TreeRow   `json:"tree"`
	Leaves   []NodeEntry `json:"leaves"`
	MaxDepth int         `json:"max_depth"`
	Deepest  []NodeEntry `json:"deepest"`
	Orphans  []NodeEntry `json:"orphans"`
}

// NewNodeEntry converts rec for display.
func NewNodeEntry(v *tree.View, rec *tree.Record) NodeEntry {
	return NodeEntry{
		Name:       rec.Name(),
		ParentName: rec.ParentName(),
		Depth:      rec.Depth(),
		Line:       rec.Line(),
		Resolved:   rec.Resolved(),
		Root:       rec.IsRoot(),
		Leaf:       !rec.IsRoot() && v.IsLeaf(rec),
	}
}

// NewNodeEntries converts a query result in order.
func NewNodeEntries(v *tree.View, recs []*tree.Record) []NodeEntry {
	out := make([]NodeEntry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, NewNodeEntry(v, rec))
	}
	return out
}

// NewTreeRows converts the printable tree.
func NewTreeRows(v *tree.View) []TreeRow {
	lines := v.PrintableTree()
	out := make([]TreeRow, 0, len(lines))
	for _, l := range lines {
		out = append(out, TreeRow{Indent: l.Indent, Name: l.Name})
	}
	return out
}

// Analyze runs every query once.
func Analyze(source string, v *tree.View) QueryResult {
	return QueryResult{
		Source:   source,
		Tree:     NewTreeRows(v),
		Leaves:   NewNodeEntries(v, v.Leaves()),
		MaxDepth: v.MaxDepth(),
		Deepest:  NewNodeEntries(v, v.DeepestNodes()),
		Orphans:  NewNodeEntries(v, v.Orphans()),
	}
}
