package tree

import (
	"fmt"
	"io"
	"os"
)

// State is the lifecycle state of an Index.
type State int

const (
	// Empty is the state before a successful load.
	Empty State = iota
	// Loaded is terminal: the chain is complete and never changes again.
	Loaded
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Loaded:
		return "Loaded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Index owns the load-order chain of records read from one file.
//
// An Index is written once by Load and is read-only afterwards. Queries made
// through the Index return ErrNotLoaded until then; View returns the
// immutable form for sharing.
type Index struct {
	path  string
	opts  options
	root  *Record
	last  *Record
	state State
}

// New returns an empty Index for the file at path.
func New(path string, opts ...Option) *Index {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Index{path: path, opts: o}
}

// Path returns the file the Index loads from.
func (ix *Index) Path() string { return ix.path }

// State returns the current lifecycle state.
func (ix *Index) State() State { return ix.state }

// Load reads the Index's file once. On any error the Index stays Empty.
func (ix *Index) Load() error {
	if ix.state == Loaded {
		return ErrAlreadyLoaded
	}
	if err := CheckFile(ix.path); err != nil {
		return err
	}
	f, err := os.Open(ix.path)
	if err != nil {
		return &FileNotFoundError{Path: ix.path, Err: err}
	}
	defer f.Close()
	return ix.load(f)
}

// LoadFrom reads records from r instead of the Index's file.
func (ix *Index) LoadFrom(r io.Reader) error {
	if ix.state == Loaded {
		return ErrAlreadyLoaded
	}
	return ix.load(r)
}

func (ix *Index) load(r io.Reader) error {
	c, err := parse(r, ix.path, ix.opts)
	if err != nil {
		ix.opts.log.Debug("load failed", "path", ix.path, "error", err)
		return err
	}
	ix.root, ix.last = c.root, c.last
	ix.state = Loaded
	ix.opts.log.Debug("tree loaded",
		"path", ix.path,
		"records", c.count,
		"orphans", c.orphans,
		"last", ix.last.name,
	)
	return nil
}

// View returns the immutable view of a loaded Index.
func (ix *Index) View() (*View, error) {
	if ix.state != Loaded {
		return nil, ErrNotLoaded
	}
	return &View{root: ix.root, marker: ix.opts.marker}, nil
}

// ResolveParentByName returns the first record named name, or nil.
func (ix *Index) ResolveParentByName(name string) (*Record, error) {
	v, err := ix.View()
	if err != nil {
		return nil, err
	}
	return v.ResolveParentByName(name), nil
}

// FindByName returns every record named name, in load order.
func (ix *Index) FindByName(name string) ([]*Record, error) {
	v, err := ix.View()
	if err != nil {
		return nil, err
	}
	return v.FindByName(name), nil
}

// FindByDeclaredParentName returns every record declaring name as its parent.
func (ix *Index) FindByDeclaredParentName(name string) ([]*Record, error) {
	v, err := ix.View()
	if err != nil {
		return nil, err
	}
	return v.FindByDeclaredParentName(name), nil
}

// IsLeaf reports whether rec has no children.
func (ix *Index) IsLeaf(rec *Record) (bool, error) {
	v, err := ix.View()
	if err != nil {
		return false, err
	}
	return v.IsLeaf(rec), nil
}

// Leaves returns every non-root record with no children.
func (ix *Index) Leaves() ([]*Record, error) {
	v, err := ix.View()
	if err != nil {
		return nil, err
	}
	return v.Leaves(), nil
}

// MaxDepth returns the largest record depth.
func (ix *Index) MaxDepth() (int, error) {
	v, err := ix.View()
	if err != nil {
		return 0, err
	}
	return v.MaxDepth(), nil
}

// DeepestNodes returns the records at MaxDepth.
func (ix *Index) DeepestNodes() ([]*Record, error) {
	v, err := ix.View()
	if err != nil {
		return nil, err
	}
	return v.DeepestNodes(), nil
}

// PrintableTree returns the indented display lines.
func (ix *Index) PrintableTree() ([]TreeLine, error) {
	v, err := ix.View()
	if err != nil {
		return nil, err
	}
	return v.PrintableTree(), nil
}
