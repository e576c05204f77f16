package shell

import (
	"strings"
)

// Direction is the stream a redirection rebinds.
type Direction int

const (
	// Input rebinds standard input to read from a file.
	Input Direction = iota
	// Output rebinds standard output to create or truncate a file.
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Operator returns the character introducing the redirection.
func (d Direction) Operator() byte {
	if d == Input {
		return '<'
	}
	return '>'
}

// Redirection binds a standard stream to a file path.
type Redirection struct {
	Direction Direction
	Path      string
}

// Segment is the text of one pipeline stage, or the whole line when there
// are no pipes.
type Segment string

// HasRedirection reports whether the segment contains '<' or '>'.
func (s Segment) HasRedirection() bool {
	return strings.ContainsAny(string(s), "<>")
}

// ResolvedSegment is a segment with its redirections split out from its
// argument vector.
type ResolvedSegment struct {
	// Redirections in the order they appear in the text. There is at most one
	// of each Direction.
	Redirections []Redirection
	Argv         Argv
}

// Resolve excises the redirections from the segment and tokenizes what
// remains with the given argument vector capacity.
func (s Segment) Resolve(maxArgs int) (*ResolvedSegment, error) {
	redirs, rest, err := s.splitRedirections()
	if err != nil {
		return nil, err
	}

	argv, err := Tokenize(rest, maxArgs)
	if err != nil {
		return nil, err
	}

	return &ResolvedSegment{Redirections: redirs, Argv: argv}, nil
}

func isBlankByte(c byte) bool {
	return c < 0x80 && isBlank(rune(c))
}

func isOperatorByte(c byte) bool {
	return c == Input.Operator() || c == Output.Operator()
}

// splitRedirections scans left to right for '<' and '>'. The operand is the
// next field after the operator, ending at a blank or another operator.
func (s Segment) splitRedirections() ([]Redirection, string, error) {
	text := string(s)

	var (
		out     []Redirection
		rest    strings.Builder
		seenIn  bool
		seenOut bool
	)

	for i := 0; i < len(text); {
		c := text[i]
		if !isOperatorByte(c) {
			rest.WriteByte(c)
			i++
			continue
		}

		dir := Output
		if c == Input.Operator() {
			dir = Input
		}

		switch {
		case dir == Input && seenIn:
			return nil, "", ErrTooManyInputRedirections
		case dir == Output && seenOut:
			return nil, "", ErrTooManyOutputRedirections
		case dir == Input:
			seenIn = true
		default:
			seenOut = true
		}

		start := i + 1
		for start < len(text) && isBlankByte(text[start]) {
			start++
		}
		end := start
		for end < len(text) && !isBlankByte(text[end]) && !isOperatorByte(text[end]) {
			end++
		}
		if end == start {
			return nil, "", ErrMissingRedirectionTarget
		}

		out = append(out, Redirection{Direction: dir, Path: text[start:end]})

		// Keep the fields on either side of the redirection apart.
		rest.WriteByte(' ')
		i = end
	}

	return out, rest.String(), nil
}
