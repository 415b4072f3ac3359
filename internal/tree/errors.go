package tree

import (
	"bufio"
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by Index queries issued before a successful Load.
	ErrNotLoaded = errors.New("tree not loaded")
	// ErrAlreadyLoaded is returned by a second call to Load.
	ErrAlreadyLoaded = errors.New("tree already loaded")
	// ErrEmptyInput is returned when the input holds no lines at all.
	ErrEmptyInput = errors.New("input contains no records")
)

// FileNotFoundError reports a path that does not name a readable file.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("file %q not found", e.Path)
	}
	return fmt.Sprintf("file %q not found: %v", e.Path, e.Err)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// MalformedLineError reports a line that does not split into exactly two
// '|'-separated fields.
type MalformedLineError struct {
	Path   string
	Line   int
	Text   string
	Fields int
}

func (e *MalformedLineError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("%s: malformed line %q: want 2 fields separated by '|', got %d", where, e.Text, e.Fields)
}

// LineTooLongError reports a line longer than MaxLineBytes.
type LineTooLongError struct {
	Path string
	Line int
}

func (e *LineTooLongError) Error() string {
	where := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("%s: line exceeds %d bytes", where, MaxLineBytes)
}

func (e *LineTooLongError) Unwrap() error { return bufio.ErrTooLong }

// UnresolvedParentError reports a declared parent name that matches no
// earlier record. Only returned in strict mode.
type UnresolvedParentError struct {
	Line       int
	Name       string
	ParentName string
}

func (e *UnresolvedParentError) Error() string {
	return fmt.Sprintf("line %d: parent %q of node %q not found in earlier lines", e.Line, e.ParentName, e.Name)
}
