package shell

import "errors"

var (
	// ErrLineTooLong is returned when a line exceeds the configured maximum.
	ErrLineTooLong = errors.New("line too long")
	// ErrTooManyArguments is returned when a segment has more fields than the
	// argument vector can hold.
	ErrTooManyArguments = errors.New("too many arguments")
	// ErrTooManyInputRedirections is returned for a second '<' in a segment.
	ErrTooManyInputRedirections = errors.New("too many input redirections")
	// ErrTooManyOutputRedirections is returned for a second '>' in a segment.
	ErrTooManyOutputRedirections = errors.New("too many output redirections")
	// ErrMissingRedirectionTarget is returned when '<' or '>' has no filename.
	ErrMissingRedirectionTarget = errors.New("missing redirection target")
)
