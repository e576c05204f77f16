package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephlewis42/pipesh/core/shell"
)

// AllBuiltins holds every internal command keyed by the kind it handles.
var AllBuiltins = make(map[shell.Kind]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// HelpText is printed by the help builtin.
const HelpText = `Internal commands:
  exit
  cd [directory]
  help
  echo [string]
`

// Cd is the cd shell builtin. Arguments after the directory are ignored.
func Cd(s *Shell, args []string) int {
	// Whatever happens the prompt must show where we really are.
	defer s.refreshWd()

	if len(args) == 1 {
		args = append(args, s.VirtualOS.UserHomeDir())
	}
	if err := os.Chdir(args[1]); err != nil {
		fmt.Fprintf(s.VirtualOS.Stderr(), "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}

// Exit quits the shell.
func Exit(s *Shell, args []string) int {
	s.Quit = true
	return 0
}

// Help lists the internal commands.
func Help(s *Shell, args []string) int {
	io.WriteString(s.VirtualOS.Stdout(), HelpText)
	return 0
}

// Echo writes each argument followed by a space, then a newline.
func Echo(s *Shell, args []string) int {
	var sb strings.Builder
	for _, arg := range shell.Argv(args).Args() {
		sb.WriteString(arg)
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	// One write so a reader on a pipe sees the whole line at once.
	if _, err := io.WriteString(s.VirtualOS.Stdout(), sb.String()); err != nil {
		return 1
	}
	return 0
}

func init() {
	AllBuiltins[shell.Exit] = ShellBuiltinFunc(Exit)
	AllBuiltins[shell.ChangeDirectory] = ShellBuiltinFunc(Cd)
	AllBuiltins[shell.Help] = ShellBuiltinFunc(Help)
	AllBuiltins[shell.Echo] = ShellBuiltinFunc(Echo)
}
