package shell

import (
	"fmt"
	"strings"
)

// Argv is an ordered argument vector. Argv[0] names the command.
type Argv []string

// Name returns the command name or the empty string for an empty vector.
func (a Argv) Name() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Args returns the arguments following the command name.
func (a Argv) Args() []string {
	if len(a) < 2 {
		return nil
	}
	return a[1:]
}

func isBlank(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Tokenize splits text into fields on runs of blanks. There is no quoting or
// escaping; punctuation inside a field is kept verbatim.
//
// max is the argument vector capacity including the slot reserved for the
// exec terminator, so at most max-1 fields are accepted. Overflow is
// reported as ErrTooManyArguments rather than truncated. A max <= 0 means
// unbounded. An empty result is valid and means there is nothing to run.
func Tokenize(text string, max int) (Argv, error) {
	fields := strings.FieldsFunc(text, isBlank)
	if max > 0 && len(fields) > max-1 {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyArguments, len(fields), max-1)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return Argv(fields), nil
}
