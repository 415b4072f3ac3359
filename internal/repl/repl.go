// Package repl is the line-oriented command loop over a loaded tree.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"treedata/internal/model"
	"treedata/internal/report"
	"treedata/internal/tree"
)

const prompt = "Enter Mode [0,?] or command [T,L,N,F,P] or Exit--> "

const menu = `Enter from the following commands
    0: Select input mode 0, abbreviation
    ?: Select input mode ?, verbose
    T: Display the Tree
    L: Display the Leaves
    N: Show lowest Nodes
    F: Find node by Name
    P: Find nodes by Parent Name
    E: Exit the program
`

// Session reads commands from in and writes results to out.
type Session struct {
	view    *tree.View
	in      *bufio.Scanner
	out     io.Writer
	log     *slog.Logger
	verbose bool
}

// New returns a Session over v.
func New(v *tree.View, in io.Reader, out io.Writer, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		view: v,
		in:   bufio.NewScanner(in),
		out:  out,
		log:  log,
	}
}

// Run loops until E or end of input.
func (s *Session) Run() error {
	for {
		if s.verbose {
			fmt.Fprint(s.out, menu)
		}
		cmd, ok := s.readLine(prompt)
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if !s.Dispatch(strings.ToUpper(cmd)) {
			return nil
		}
	}
}

// Dispatch runs one command and reports whether the loop should continue.
func (s *Session) Dispatch(cmd string) bool {
	s.log.Debug("command", "cmd", cmd)
	switch cmd {
	case "?":
		s.verbose = true
	case "0":
		s.verbose = false
	case "T":
		report.WriteTree(s.out, model.NewTreeRows(s.view))
	case "L":
		s.writeNodes(report.TitleLeaves, s.view.Leaves())
	case "N":
		s.writeNodes(report.TitleLowest, s.view.DeepestNodes())
	case "F":
		name, ok := s.readLine("Enter node to find --> ")
		if !ok {
			return false
		}
		s.writeNodes(report.TitleFindNode, s.view.FindByName(strings.TrimSpace(name)))
	case "P":
		name, ok := s.readLine("Enter parent to find --> ")
		if !ok {
			return false
		}
		s.writeNodes(report.TitleFindPar, s.view.FindByDeclaredParentName(strings.TrimSpace(name)))
	case "E", "EXIT":
		return false
	}
	return true
}

func (s *Session) writeNodes(title string, recs []*tree.Record) {
	report.WriteNodes(s.out, title, model.NewNodeEntries(s.view, recs), s.verbose)
}

func (s *Session) readLine(p string) (string, bool) {
	fmt.Fprint(s.out, p)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
