// Package report renders query results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"treedata/internal/model"
)

const rule = "*********************************"

// Section titles, shared with the REPL.
const (
	TitleTree     = "DISPLAY TREE"
	TitleLeaves   = "GET_LEAVES"
	TitleLowest   = "GET_LOWEST"
	TitleFindNode = "FIND_NODE"
	TitleFindPar  = "FIND_PARENT"
	TitleOrphans  = "ORPHANS"
)

// WriteTree writes the indented tree between two rules.
func WriteTree(w io.Writer, rows []model.TreeRow) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "    %s\n", TitleTree)
	for _, r := range rows {
		fmt.Fprintf(w, "%s%s\n", r.Indent, r.Name)
	}
	fmt.Fprintln(w, rule)
}

// WriteNodes writes a titled node list, or NONE when it is empty.
func WriteNodes(w io.Writer, title string, nodes []model.NodeEntry, verbose bool) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "    %s    \n", title)
	if len(nodes) == 0 {
		fmt.Fprintln(w, "NONE")
		return
	}
	for _, n := range nodes {
		if verbose {
			fmt.Fprintf(w, "    NODE: %s|%s  %s depth=%d line=%d\n", n.ParentName, n.Name, model.Icon(n), n.Depth, n.Line)
			continue
		}
		fmt.Fprintf(w, "    NODE: %s|%s\n", n.ParentName, n.Name)
	}
}

// GenerateReport renders every query in res.
func GenerateReport(res model.QueryResult, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "treedata %s report for %s\n", model.Version, res.Source)
	fmt.Fprintf(&b, "Nodes: %d  Leaves: %d  Max depth: %d\n\n", len(res.Tree), len(res.Leaves), res.MaxDepth)

	WriteTree(&b, res.Tree)
	WriteNodes(&b, TitleLeaves, res.Leaves, verbose)
	WriteNodes(&b, TitleLowest, res.Deepest, verbose)

	if len(res.Orphans) > 0 {
		WriteNodes(&b, TitleOrphans, res.Orphans, verbose)
		b.WriteString("\nNote: orphan nodes name a parent that does not appear on an earlier line.\n")
		b.WriteString("They are placed at depth 0. Use --strict to reject such files.\n")
	}
	return b.String()
}
