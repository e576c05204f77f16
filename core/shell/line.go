package shell

import (
	"fmt"
	"strings"
)

// CommandLine is a single line of user input bounded to a maximum size.
//
// The text is never modified by parsing, so it stays available for
// diagnostics and event logging after execution.
type CommandLine struct {
	text string
}

// NewCommandLine checks the line against the buffer size max (which, like
// a C line buffer, reserves one byte for the terminator) and strips a
// trailing newline.
func NewCommandLine(text string, max int) (CommandLine, error) {
	text = strings.TrimRight(text, "\r\n")
	if max > 0 && len(text) > max-1 {
		return CommandLine{}, fmt.Errorf("%w: %d bytes (max %d)", ErrLineTooLong, len(text), max-1)
	}
	return CommandLine{text: text}, nil
}

// String returns the original text of the line.
func (c CommandLine) String() string {
	return c.text
}

// IsBlank reports whether the line contains nothing but separators.
func (c CommandLine) IsBlank() bool {
	return strings.IndexFunc(c.text, func(r rune) bool { return !isBlank(r) }) < 0
}

// PipeCount returns the number of '|' characters in the line.
func (c CommandLine) PipeCount() int {
	return strings.Count(c.text, pipeOperator)
}

// Segments splits the line into its pipeline segments, in order. A line
// without a pipe has exactly one segment.
func (c CommandLine) Segments() []Segment {
	parts := strings.Split(c.text, pipeOperator)
	out := make([]Segment, len(parts))
	for i, p := range parts {
		out[i] = Segment(p)
	}
	return out
}

const pipeOperator = "|"
