package vos

import (
	"os"
)

// VIO is the standard stream triple of a process. The streams are files so
// they can be handed to child processes as descriptors 0, 1 and 2.
type VIO interface {
	Stdin() *os.File
	Stdout() *os.File
	Stderr() *os.File
}

// NewVIOAdapter creates a VIO from three files.
func NewVIOAdapter(stdin, stdout, stderr *os.File) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  stdin,
		IStdout: stdout,
		IStderr: stderr,
	}
}

// HostIO returns the process's own standard streams.
func HostIO() VIO {
	return NewVIOAdapter(os.Stdin, os.Stdout, os.Stderr)
}

type VIOAdapter struct {
	IStdin  *os.File
	IStdout *os.File
	IStderr *os.File
}

var _ VIO = (*VIOAdapter)(nil)

func (pr *VIOAdapter) Stdin() *os.File {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() *os.File {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() *os.File {
	return pr.IStderr
}

// Files returns the streams in descriptor order.
func Files(vio VIO) []*os.File {
	return []*os.File{vio.Stdin(), vio.Stdout(), vio.Stderr()}
}
