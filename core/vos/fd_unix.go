package vos

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Standard stream descriptor numbers.
const (
	StdinFd  = 0
	StdoutFd = 1
)

// OpenFd opens path and returns the raw descriptor. Unlike os.OpenFile the
// descriptor is inheritable and has no finalizer, so it can become one of the
// standard streams.
func OpenFd(path string, flag int, perm uint32) (int, error) {
	for {
		fd, err := unix.Open(path, flag, perm)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return -1, &os.PathError{Op: "open", Path: path, Err: err}
		}
		return fd, nil
	}
}

// Rebind duplicates fd onto the descriptor target and closes fd, leaving
// only target referring to the file. fd is closed even if the duplication
// fails, unless it already is target.
func Rebind(fd, target int) error {
	if fd == target {
		return nil
	}
	defer unix.Close(fd)

	return unix.Dup2(fd, target)
}

// Exec replaces the current process image. It only returns on failure.
func Exec(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}

// ReapAll waits for any child repeatedly until every process in procs has
// terminated, in whatever order they finish. Children not in procs that are
// reaped along the way are ignored. The returned map is keyed by pid.
func ReapAll(procs []*os.Process) (map[int]Outcome, error) {
	pending := make(map[int]*os.Process, len(procs))
	for _, p := range procs {
		if p != nil {
			pending[p.Pid] = p
		}
	}

	out := make(map[int]Outcome, len(pending))
	for len(pending) > 0 {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, 0, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			releaseAll(pending)
			return out, err
		}

		p, ok := pending[pid]
		if !ok {
			continue
		}
		delete(pending, pid)
		// The kernel has already reaped the child; release the handle so Go
		// does not try to wait on it again.
		_ = p.Release()

		if ws.Signaled() {
			out[pid] = Outcome{Signaled: true, Signal: ws.Signal()}
		} else {
			out[pid] = Exited(ws.ExitStatus())
		}
	}

	return out, nil
}

func releaseAll(procs map[int]*os.Process) {
	for _, p := range procs {
		_ = p.Release()
	}
}
