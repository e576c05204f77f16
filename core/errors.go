package core

import (
	"fmt"

	"github.com/josephlewis42/pipesh/core/shell"
)

// StageError is a failure confined to a single stage or, outside a pipeline,
// to a single line. The interpreter reports it and carries on.
type StageError struct {
	Segment shell.Segment
	Err     error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FatalError is a failure the interpreter cannot recover from, such as being
// unable to create any process for a pipeline.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
