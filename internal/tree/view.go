package tree

import "strings"

// TreeLine is one row of the tree display: the indent for the record's depth
// followed by its name.
type TreeLine struct {
	Indent string
	Name   string
}

func (l TreeLine) String() string { return l.Indent + l.Name }

// View is the read-only tree produced by a successful load.
//
// Nothing reachable from a View is ever written again, so a View may be
// shared between goroutines without locking.
type View struct {
	root   *Record
	marker string
}

// Root returns the first record of the chain.
func (v *View) Root() *Record { return v.root }

// Len returns the number of records.
func (v *View) Len() int {
	n := 0
	for rec := v.root; rec != nil; rec = rec.next {
		n++
	}
	return n
}

// Records returns every record in load order.
func (v *View) Records() []*Record {
	out := []*Record{}
	for rec := v.root; rec != nil; rec = rec.next {
		out = append(out, rec)
	}
	return out
}

// ResolveParentByName returns the first record named name, or nil.
func (v *View) ResolveParentByName(name string) *Record {
	return resolveParentByName(v.root, name)
}

func resolveParentByName(root *Record, name string) *Record {
	for rec := root; rec != nil; rec = rec.next {
		if rec.name == name {
			return rec
		}
	}
	return nil
}

// FindByName returns every record named name, in load order.
func (v *View) FindByName(name string) []*Record {
	return v.filter(func(rec *Record) bool { return rec.name == name })
}

// FindByDeclaredParentName returns every record whose declared parent name is
// name, whether or not that parent was resolved.
func (v *View) FindByDeclaredParentName(name string) []*Record {
	return v.filter(func(rec *Record) bool { return rec.parentName == name })
}

// IsLeaf reports whether no record after rec has rec as its resolved parent.
// Parents always resolve to earlier records, so scanning forward is enough.
func (v *View) IsLeaf(rec *Record) bool {
	if rec == nil {
		return false
	}
	for later := rec.next; later != nil; later = later.next {
		if later.parent == rec {
			return false
		}
	}
	return true
}

// Leaves returns every non-root record with no children.
func (v *View) Leaves() []*Record {
	out := []*Record{}
	for rec := v.root.next; rec != nil; rec = rec.next {
		if v.IsLeaf(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// MaxDepth returns the largest depth in the tree.
func (v *View) MaxDepth() int {
	depth := 0
	for rec := v.root; rec != nil; rec = rec.next {
		if rec.depth > depth {
			depth = rec.depth
		}
	}
	return depth
}

// DeepestNodes returns the records whose depth equals MaxDepth.
func (v *View) DeepestNodes() []*Record {
	depth := v.MaxDepth()
	return v.filter(func(rec *Record) bool { return rec.depth == depth })
}

// Orphans returns the non-root records whose declared parent was not found.
func (v *View) Orphans() []*Record {
	return v.filter(func(rec *Record) bool { return !rec.IsRoot() && rec.parent == nil })
}

// PrintableTree returns one line per record with depth repetitions of the
// marker as indent.
func (v *View) PrintableTree() []TreeLine {
	var out []TreeLine
	for rec := v.root; rec != nil; rec = rec.next {
		out = append(out, TreeLine{
			Indent: strings.Repeat(v.marker, rec.depth),
			Name:   rec.name,
		})
	}
	return out
}

func (v *View) filter(keep func(*Record) bool) []*Record {
	out := []*Record{}
	for rec := v.root; rec != nil; rec = rec.next {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
