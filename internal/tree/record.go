package tree

import "fmt"

// Record is one node read from the input file.
//
// Records form a singly linked chain in load order (Next). The parent link is
// a non-owning back reference resolved once at load time; there are no child
// lists. Every structural question is answered by scanning the chain.
type Record struct {
	name       string  // node name, not unique
	parentName string  // declared parent name as written in the file
	parent     *Record // resolved parent; nil for the root and for orphans
	depth      int     // parent.depth + 1, or 0
	next       *Record // next record in load order
	line       int     // 1-based input line
}

func newRecord(parentName, name string, parent *Record, line int) *Record {
	r := &Record{
		name:       name,
		parentName: parentName,
		parent:     parent,
		line:       line,
	}
	if parent != nil {
		r.depth = parent.depth + 1
	}
	return r
}

func (r *Record) Name() string       { return r.name }
func (r *Record) ParentName() string { return r.parentName }
func (r *Record) Parent() *Record    { return r.parent }
func (r *Record) Depth() int         { return r.depth }
func (r *Record) Next() *Record      { return r.next }
func (r *Record) Line() int          { return r.line }

// IsRoot reports whether r is the first record of the chain.
func (r *Record) IsRoot() bool { return r.line == 1 }

// Resolved reports whether the declared parent name was found among earlier
// records. The root is never resolved.
func (r *Record) Resolved() bool { return r.parent != nil }

// String renders the record the way it appeared in the input.
func (r *Record) String() string {
	return fmt.Sprintf("%s|%s", r.parentName, r.name)
}
