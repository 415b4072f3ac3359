package tree

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// CheckFile verifies that path names a regular file before anything is
// parsed.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &FileNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &FileNotFoundError{Path: path}
	}
	return nil
}

// MaxLineBytes bounds the size of one input line, newline included.
const MaxLineBytes = 1024 * 1024

// chain is the result of one parse, committed to the Index only on success.
type chain struct {
	root, last *Record
	count      int
	orphans    int
}

// parse reads parent|name lines from r and links them into a chain.
func parse(r io.Reader, path string, opts options) (*chain, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxLineBytes)

	c := &chain{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		fields := strings.Split(text, "|")
		if len(fields) != 2 {
			return nil, &MalformedLineError{Path: path, Line: lineNum, Text: text, Fields: len(fields)}
		}
		parentName := strings.TrimSpace(fields[0])
		name := strings.TrimSpace(fields[1])

		if c.root == nil {
			// The first line is the root whatever its parent field says.
			c.root = newRecord(parentName, name, nil, lineNum)
			c.last = c.root
			c.count = 1
			continue
		}

		parent := resolveParentByName(c.root, parentName)
		if parent == nil {
			if opts.strict {
				return nil, &UnresolvedParentError{Line: lineNum, Name: name, ParentName: parentName}
			}
			c.orphans++
			opts.log.Debug("unresolved parent, loading as orphan",
				"line", lineNum,
				"node", name,
				"parent", parentName,
			)
		}

		rec := newRecord(parentName, name, parent, lineNum)
		c.last.next = rec
		c.last = rec
		c.count++
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &LineTooLongError{Path: path, Line: lineNum + 1}
		}
		return nil, err
	}
	if c.root == nil {
		return nil, ErrEmptyInput
	}
	return c, nil
}
