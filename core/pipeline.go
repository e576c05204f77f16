package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/josephlewis42/pipesh/core/shell"
	"github.com/josephlewis42/pipesh/core/vos"
)

type pipe struct {
	r, w *os.File
}

func closePipes(pipes []pipe) {
	for _, p := range pipes {
		p.r.Close()
		p.w.Close()
	}
}

// stageArgv builds the command line that re-executes this binary to run seg.
func (s *Shell) stageArgv(exe string, seg shell.Segment) []string {
	return []string{
		exe,
		StageCommand,
		"--" + flagArgsMax, strconv.Itoa(s.Config.ArgsMax),
		"--" + flagFailureCode, strconv.Itoa(s.Config.FailureExitCode),
		"--",
		string(seg),
	}
}

// runStages runs every segment in its own process, stage i reading from
// stage i-1 and writing to stage i+1. All K-1 pipes are created before the
// first process so no stage depends on another having started. Once every
// stage is spawned the interpreter closes its copies of the pipe ends, then
// reaps the stages in whatever order they finish.
//
// The last exit status becomes the outcome of the final stage.
func (s *Shell) runStages(segments []shell.Segment) error {
	exe, err := s.executable()
	if err != nil {
		return &FatalError{Op: "fork", Err: err}
	}

	pipes := make([]pipe, 0, len(segments)-1)
	for i := 0; i < len(segments)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closePipes(pipes)
			return &FatalError{Op: "pipe", Err: err}
		}
		pipes = append(pipes, pipe{r: r, w: w})
	}

	// Pipes are close-on-exec, so each stage only inherits the two ends it
	// is handed here.
	procs := make([]*os.Process, 0, len(segments))
	var spawnErr error
	for i, seg := range segments {
		stdin, stdout := s.VirtualOS.Stdin(), s.VirtualOS.Stdout()
		if i > 0 {
			stdin = pipes[i-1].r
		}
		if i < len(segments)-1 {
			stdout = pipes[i].w
		}

		proc, err := s.Launcher.StartProcess(exe, s.stageArgv(exe, seg), &vos.ProcAttr{
			Env:   s.VirtualOS.Environ(),
			Files: vos.NewVIOAdapter(stdin, stdout, s.VirtualOS.Stderr()),
		})
		if err != nil {
			spawnErr = err
			break
		}
		s.Log.Debug("spawned stage", "index", i, "pid", proc.Pid, "segment", string(seg))
		procs = append(procs, proc)
	}

	closePipes(pipes)

	// Reaping releases the handles, so remember the final pid first.
	lastPid := -1
	if len(procs) > 0 {
		lastPid = procs[len(procs)-1].Pid
	}

	outcomes, err := vos.ReapAll(procs)
	if err != nil {
		s.Log.Warn("couldn't reap stages", "err", err)
	}

	switch {
	case spawnErr != nil && len(procs) == 0:
		return &FatalError{Op: "fork", Err: spawnErr}
	case spawnErr != nil:
		s.setOutcome(vos.Exited(s.Config.FailureExitCode))
		return &StageError{
			Segment: segments[len(procs)],
			Err:     fmt.Errorf("fork: %w", spawnErr),
		}
	}

	last, ok := outcomes[lastPid]
	if !ok {
		last = vos.Exited(s.Config.FailureExitCode)
	}
	s.setOutcome(last)
	return nil
}
