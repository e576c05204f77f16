package core

import (
	"fmt"
	"os"

	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/shell"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/spf13/pflag"
)

// StageCommand is the hidden subcommand the interpreter re-executes itself
// with to run one stage in a child process.
const StageCommand = "__stage"

const (
	flagArgsMax     = "args-max"
	flagFailureCode = "failure-code"
)

// StageMain is the entry point of a stage process. args holds the flags
// followed by exactly one segment. It returns the status to exit with; when
// the stage runs an external command it never returns.
func StageMain(args []string) int {
	cfg := config.Default()

	flags := pflag.NewFlagSet(StageCommand, pflag.ContinueOnError)
	flags.IntVar(&cfg.ArgsMax, flagArgsMax, cfg.ArgsMax, "capacity of the argument vector")
	flags.IntVar(&cfg.FailureExitCode, flagFailureCode, cfg.FailureExitCode, "status for failed stages")

	if err := flags.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "%s%s: %v\n", DiagnosticPrefix, StageCommand, err)
		return cfg.FailureExitCode
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s%s: expected one segment, got %d\n", DiagnosticPrefix, StageCommand, flags.NArg())
		return cfg.FailureExitCode
	}

	s := NewShell(cfg, vos.Host())
	return s.RunStage(shell.Segment(flags.Arg(0)))
}

// RunStage applies the segment's redirections to this process and runs its
// command. Internal commands run here and their status is returned; external
// commands replace the process image. Any failure is reported and confined
// to this stage.
func (s *Shell) RunStage(seg shell.Segment) int {
	cmd, err := s.prepareStage(seg)
	if err != nil {
		s.diag("%v", err)
		return s.Config.FailureExitCode
	}

	switch {
	case cmd == nil:
		// Only redirections, which have been applied.
		return 0
	case cmd.Kind.IsInternal():
		return s.runBuiltin(*cmd)
	}

	path, err := vos.LookPath(s.VirtualOS, cmd.Argv.Name())
	if err == nil {
		err = vos.Exec(path, cmd.Argv, s.VirtualOS.Environ())
	}
	s.Log.Debug("exec failed", "name", cmd.Argv.Name(), "err", err)
	s.diag("%v", commandNotFound(cmd.Argv.Name()))
	return s.Config.FailureExitCode
}

// prepareStage resolves the segment and rebinds the standard streams. It
// returns a nil command if the segment only held redirections.
func (s *Shell) prepareStage(seg shell.Segment) (*shell.Command, error) {
	resolved, err := seg.Resolve(s.Config.ArgsMax)
	if err != nil {
		return nil, &StageError{Segment: seg, Err: err}
	}

	for _, r := range resolved.Redirections {
		if err := applyRedirection(r); err != nil {
			return nil, &StageError{Segment: seg, Err: err}
		}
	}

	if len(resolved.Argv) == 0 {
		if len(resolved.Redirections) == 0 {
			return nil, &StageError{Segment: seg, Err: ErrNoCommand}
		}
		return nil, nil
	}

	cmd := shell.Classify(resolved.Argv)
	return &cmd, nil
}

// applyRedirection opens the target and moves it onto the standard stream.
// The opened descriptor is always closed afterwards.
func applyRedirection(r shell.Redirection) error {
	var (
		fd     int
		err    error
		target int
	)

	switch r.Direction {
	case shell.Input:
		fd, err = vos.OpenFd(r.Path, os.O_RDONLY, 0)
		target = vos.StdinFd
	case shell.Output:
		fd, err = vos.OpenFd(r.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		target = vos.StdoutFd
	default:
		return fmt.Errorf("unknown redirection %v", r.Direction)
	}
	if err != nil {
		return fmt.Errorf("%s redirection: %w", r.Direction, err)
	}

	if err := vos.Rebind(fd, target); err != nil {
		return fmt.Errorf("%s redirection: %w", r.Direction, err)
	}
	return nil
}
