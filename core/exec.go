package core

import (
	"errors"
	"fmt"

	"github.com/josephlewis42/pipesh/core/logger"
	"github.com/josephlewis42/pipesh/core/shell"
	"github.com/josephlewis42/pipesh/core/vos"
)

var (
	// ErrCommandNotFound is reported when an external command can't be found
	// or its image can't be loaded.
	ErrCommandNotFound = errors.New("command not found or failed to execute")

	// ErrNoCommand is reported when a stage has neither a command nor a
	// redirection.
	ErrNoCommand = errors.New("no command specified")
)

func commandNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}

// Execute runs one line of input. Lines with no pipe and no redirection run
// in the interpreter itself (internal commands) or as a single child
// (external commands); everything else runs as a set of stage processes.
//
// A *StageError is returned for problems confined to the line, the
// interpreter should report it and read the next line. A *FatalError means
// the interpreter can't continue.
func (s *Shell) Execute(text string) error {
	event := &logger.Execution{Line: text}
	err := s.execute(text, event)
	if err != nil {
		event.Error = err.Error()
	}
	if event.Route != logger.RouteEmpty {
		s.recordEvent(event)
	}
	return err
}

func (s *Shell) execute(text string, event *logger.Execution) error {
	line, err := shell.NewCommandLine(text, s.Config.LineMax)
	if err != nil {
		event.Route = logger.RouteInvalid
		return &StageError{Segment: shell.Segment(text), Err: err}
	}
	if line.IsBlank() {
		event.Route = logger.RouteEmpty
		return nil
	}

	event.Line = line.String()
	segments := line.Segments()
	event.Stages = len(segments)
	event.Commands = commandNames(segments, s.Config.ArgsMax)

	switch {
	case len(segments) > 1:
		event.Route = logger.RoutePipeline
	case segments[0].HasRedirection():
		// Redirections rebind the standard streams, which must never happen
		// to the interpreter itself.
		event.Route = logger.RouteRedirected
	default:
		return s.runSimple(segments[0], event)
	}

	err = s.runStages(segments)
	s.fillStatus(event)
	return err
}

// runSimple runs a segment without pipes or redirections.
func (s *Shell) runSimple(seg shell.Segment, event *logger.Execution) error {
	argv, err := shell.Tokenize(string(seg), s.Config.ArgsMax)
	if err != nil {
		event.Route = logger.RouteInvalid
		return &StageError{Segment: seg, Err: err}
	}

	cmd := shell.Classify(argv)
	if cmd.Kind.IsInternal() {
		event.Route = logger.RouteInternal
		event.ExitStatus = s.runBuiltin(cmd)
		return nil
	}

	event.Route = logger.RouteExternal
	err = s.runExternal(seg, cmd.Argv)
	s.fillStatus(event)
	return err
}

func (s *Shell) runBuiltin(cmd shell.Command) int {
	builtin, ok := AllBuiltins[cmd.Kind]
	if !ok {
		// Classify only produces kinds that are registered.
		panic(fmt.Sprintf("no builtin registered for %v", cmd.Kind))
	}
	s.Log.Debug("running builtin", "name", cmd.Argv.Name())
	return builtin.Main(s, cmd.Argv)
}

// runExternal spawns exactly one child for argv and waits for it.
func (s *Shell) runExternal(seg shell.Segment, argv shell.Argv) error {
	fail := vos.Exited(s.Config.FailureExitCode)

	path, err := vos.LookPath(s.VirtualOS, argv.Name())
	if err != nil {
		s.Log.Debug("lookup failed", "name", argv.Name(), "err", err)
		s.setOutcome(fail)
		return &StageError{Segment: seg, Err: commandNotFound(argv.Name())}
	}

	proc, err := s.Launcher.StartProcess(path, argv, &vos.ProcAttr{
		Env:   s.VirtualOS.Environ(),
		Files: s.VirtualOS,
	})
	if err != nil {
		s.Log.Debug("start failed", "path", path, "err", err)
		s.setOutcome(fail)
		return &StageError{Segment: seg, Err: commandNotFound(argv.Name())}
	}
	s.Log.Debug("started", "path", path, "pid", proc.Pid)

	outcome, err := vos.Wait(proc)
	if err != nil {
		s.setOutcome(fail)
		return &StageError{Segment: seg, Err: fmt.Errorf("wait: %w", err)}
	}
	s.setOutcome(outcome)
	return nil
}

func (s *Shell) fillStatus(event *logger.Execution) {
	event.ExitStatus = s.LastStatus()
	if last := s.LastOutcome(); last.Signaled {
		event.Signal = int(last.Signal)
	}
}

// commandNames returns the name of every stage that parses.
func commandNames(segments []shell.Segment, maxArgs int) []string {
	var out []string
	for _, seg := range segments {
		resolved, err := seg.Resolve(maxArgs)
		if err != nil || len(resolved.Argv) == 0 {
			continue
		}
		out = append(out, resolved.Argv.Name())
	}
	return out
}
