package vos

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// DefaultPath is searched when PATH is unset or empty, as execvp does.
const DefaultPath = "/bin:/usr/bin"

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH variable of env. If file contains a slash, it is tried directly
// and the PATH is not consulted. An unset or empty PATH searches DefaultPath.
// The result may be an absolute path or a path relative to the current
// directory.
func LookPath(env VEnv, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(file)
		if err == nil {
			return file, nil
		}
		return "", err
	}
	path := env.Getenv(EnvPath)
	if path == "" {
		path = DefaultPath
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

type ProcAttr struct {
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// Env gives the environment variables for the new process in the form
	// returned by Environ.
	Env []string
	// Files specifies the standard streams inherited by the new process.
	Files VIO
}

// Launcher starts processes. It is the only place the interpreter creates
// children, which lets tests observe how many processes a line spawns.
type Launcher interface {
	// StartProcess starts a new process with the program, arguments and
	// attributes specified by path, argv and attr. The argv slice will become
	// os.Args in the new process, so it normally starts with the program name.
	StartProcess(path string, argv []string, attr *ProcAttr) (*os.Process, error)
}

// HostLauncher starts real processes with os.StartProcess.
type HostLauncher struct{}

var _ Launcher = HostLauncher{}

// StartProcess implements Launcher.StartProcess.
func (HostLauncher) StartProcess(path string, argv []string, attr *ProcAttr) (*os.Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	files := HostIO()
	if attr.Files != nil {
		files = attr.Files
	}

	return os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   attr.Dir,
		Env:   attr.Env,
		Files: Files(files),
	})
}

// Outcome is how a process terminated.
type Outcome struct {
	// ExitCode is the status passed to exit(), valid when Signaled is false.
	ExitCode int
	// Signaled is true if the process was killed by Signal.
	Signaled bool
	Signal   syscall.Signal
}

// Exited creates the Outcome of a process that called exit(code).
func Exited(code int) Outcome {
	return Outcome{ExitCode: code}
}

// Status collapses the outcome to a single exit status, substituting
// signalStatus for processes that were killed.
func (o Outcome) Status(signalStatus int) int {
	if o.Signaled {
		return signalStatus
	}
	return o.ExitCode
}

func (o Outcome) String() string {
	if o.Signaled {
		return fmt.Sprintf("signal %d", int(o.Signal))
	}
	return fmt.Sprintf("exit %d", o.ExitCode)
}

// OutcomeOf decodes the state of a waited process.
func OutcomeOf(state *os.ProcessState) Outcome {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Outcome{Signaled: true, Signal: ws.Signal()}
	}
	return Exited(state.ExitCode())
}

// Wait blocks until the single process p terminates.
func Wait(p *os.Process) (Outcome, error) {
	state, err := p.Wait()
	if err != nil {
		return Outcome{}, err
	}
	return OutcomeOf(state), nil
}
