package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContextLine is one numbered line of input shown around an error.
type ContextLine struct {
	Number int
	Text   string
	Target bool // The line the error refers to
}

// LineContext is a window of input lines around a failing line.
type LineContext struct {
	Path     string
	Lines    []ContextLine
	ErrorMsg string // Set if the window could not be read
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// GetLineContext reads the lines within radius of lineNumber from filePath.
func GetLineContext(filePath string, lineNumber, radius int) LineContext {
	result := LineContext{Path: filePath}

	file, err := os.Open(ExpandTilde(filePath))
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	first, last := lineNumber-radius, lineNumber+radius
	scanner := bufio.NewScanner(file)
	current := 0
	for scanner.Scan() {
		current++
		if current < first {
			continue
		}
		if current > last {
			break
		}
		result.Lines = append(result.Lines, ContextLine{
			Number: current,
			Text:   strings.TrimSuffix(scanner.Text(), "\r"),
			Target: current == lineNumber,
		})
	}
	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	if lineNumber < 1 || lineNumber > current {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, current)
	}
	return result
}

// String renders the window with a marker on the target line.
func (c LineContext) String() string {
	if c.ErrorMsg != "" {
		return c.ErrorMsg
	}
	var b strings.Builder
	for _, l := range c.Lines {
		mark := "  "
		if l.Target {
			mark = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", mark, l.Number, l.Text)
	}
	return b.String()
}
