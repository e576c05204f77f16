package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/logger"
	"github.com/josephlewis42/pipesh/core/vos"
	"golang.org/x/term"
)

const (
	// DiagnosticPrefix starts every message the interpreter itself prints.
	DiagnosticPrefix = "pipesh: "

	// EOFMessage is printed when input ends.
	EOFMessage = "EOF reached"
)

// Shell is the interpreter context: configuration, streams, the cached
// working directory and the last-exit-status cell.
type Shell struct {
	VirtualOS vos.VOS
	Config    *config.Configuration
	Launcher  vos.Launcher
	Events    logger.EventRecorder
	Log       *log.Logger
	Readline  *readline.Instance

	// Executable is re-executed with the stage subcommand to run a pipeline
	// stage. Defaults to os.Executable.
	Executable string

	// Set to true to quit the shell.
	Quit bool

	hostname   string
	wd         string
	lastStatus vos.Outcome
}

// NewShell creates an interpreter over virtualOS. The caller may replace any
// of the exported fields before running it.
func NewShell(cfg *config.Configuration, virtualOS vos.VOS) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Shell{
		VirtualOS: virtualOS,
		Config:    cfg,
		Launcher:  vos.HostLauncher{},
		Events:    &logger.NopEventRecorder{},
		Log: log.NewWithOptions(virtualOS.Stderr(), log.Options{
			Prefix: "pipesh",
			Level:  log.WarnLevel,
		}),
	}

	s.hostname, _ = os.Hostname()
	s.refreshWd()
	return s
}

// LastOutcome returns how the most recent external command or pipeline
// ended. Internal commands do not change it.
func (s *Shell) LastOutcome() vos.Outcome {
	return s.lastStatus
}

// LastStatus returns the last exit status, with signal deaths mapped to the
// configured failure code.
func (s *Shell) LastStatus() int {
	return s.lastStatus.Status(s.Config.FailureExitCode)
}

func (s *Shell) setOutcome(o vos.Outcome) {
	if o.Signaled {
		fmt.Fprintf(s.VirtualOS.Stderr(), "Process terminated by signal %d\n", int(o.Signal))
	}
	s.lastStatus = o
}

// Getwd returns the cached working directory.
func (s *Shell) Getwd() string {
	return s.wd
}

func (s *Shell) refreshWd() {
	if wd, err := os.Getwd(); err == nil {
		s.wd = wd
	} else {
		s.Log.Debug("getwd failed", "err", err)
	}
}

func (s *Shell) diag(format string, args ...interface{}) {
	fmt.Fprintf(s.VirtualOS.Stderr(), DiagnosticPrefix+format+"\n", args...)
}

func (s *Shell) executable() (string, error) {
	if s.Executable != "" {
		return s.Executable, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	s.Executable = exe
	return exe, nil
}

func (s *Shell) isTerminal() bool {
	return term.IsTerminal(int(s.VirtualOS.Stdin().Fd())) &&
		term.IsTerminal(int(s.VirtualOS.Stdout().Fd()))
}

// Prompt expands the configured prompt: \u is the user, \h the host name and
// \w the working directory.
func (s *Shell) Prompt() string {
	prompt := s.Config.Prompt
	prompt = strings.ReplaceAll(prompt, `\u`, s.VirtualOS.Getenv(vos.EnvUser))
	prompt = strings.ReplaceAll(prompt, `\h`, s.hostname)
	prompt = strings.ReplaceAll(prompt, `\w`, s.Getwd())

	if s.Config.ColorPrompt && s.isTerminal() {
		red := color.New(color.FgRed)
		red.EnableColor()
		prompt = red.Sprint(prompt)
	}

	return prompt
}

func (s *Shell) newReadline() (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.VirtualOS.Stdin()),
		Stdout: s.VirtualOS.Stdout(),
		Stderr: s.VirtualOS.Stderr(),

		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,

		FuncIsTerminal: s.isTerminal,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// Run reads and executes lines until exit, end of input, or a fatal error
// and returns the process exit status.
func (s *Shell) Run() int {
	rl, err := s.newReadline()
	if err != nil {
		s.diag("%v", err)
		return s.exit(s.Config.FailureExitCode, "readline")
	}
	defer rl.Close()
	s.Readline = rl

	s.recordStart(true)

	for !s.Quit {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			fmt.Fprintln(s.VirtualOS.Stdout(), EOFMessage)
			return s.exit(s.Config.FailureExitCode, "eof")

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			s.diag("%v", err)
			return s.exit(s.Config.FailureExitCode, "readline")
		}

		if fatal := s.runCommand(line); fatal != nil {
			return s.exit(s.Config.FailureExitCode, fatal.Op)
		}
	}

	return s.exit(0, "exit")
}

// RunCommand executes a single line non-interactively and returns the
// status the process should exit with.
func (s *Shell) RunCommand(line string) int {
	s.recordStart(false)

	if fatal := s.runCommand(line); fatal != nil {
		return s.exit(s.Config.FailureExitCode, fatal.Op)
	}
	if s.Quit {
		return s.exit(0, "exit")
	}
	return s.exit(s.LastStatus(), "end")
}

// runCommand executes the line, reporting any error. Only fatal errors are
// returned.
func (s *Shell) runCommand(line string) *FatalError {
	err := s.Execute(line)
	if err == nil {
		return nil
	}

	s.diag("%v", err)

	var fatal *FatalError
	if errors.As(err, &fatal) {
		return fatal
	}
	return nil
}

func (s *Shell) recordStart(interactive bool) {
	s.recordEvent(&logger.SessionStart{
		User:        s.VirtualOS.Getenv(vos.EnvUser),
		Host:        s.hostname,
		Dir:         s.Getwd(),
		Interactive: interactive,
	})
}

func (s *Shell) exit(status int, reason string) int {
	s.recordEvent(&logger.InterpreterExit{Status: status, Reason: reason})
	return status
}

func (s *Shell) recordEvent(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Warn("couldn't record event", "err", err)
	}
}
