package shell

// Kind classifies the leading field of an argument vector.
type Kind int

const (
	// External is any command that is not internal; it runs as a new process.
	External Kind = iota
	// Exit terminates the interpreter.
	Exit
	// ChangeDirectory changes the interpreter's working directory.
	ChangeDirectory
	// Help prints the internal command listing.
	Help
	// Echo writes its arguments to standard output.
	Echo
)

// internalCommands is the closed set of names run inside the interpreter.
var internalCommands = map[string]Kind{
	"exit": Exit,
	"cd":   ChangeDirectory,
	"help": Help,
	"echo": Echo,
}

// InternalKinds lists the internal kinds in help order.
var InternalKinds = []Kind{Exit, ChangeDirectory, Help, Echo}

func (k Kind) String() string {
	switch k {
	case External:
		return "external"
	case Exit:
		return "exit"
	case ChangeDirectory:
		return "cd"
	case Help:
		return "help"
	case Echo:
		return "echo"
	default:
		return "unknown"
	}
}

// IsInternal reports whether the kind runs without spawning a process.
func (k Kind) IsInternal() bool {
	return k != External
}

// Command is an argument vector tagged with how it is dispatched.
type Command struct {
	Kind Kind
	Argv Argv
}

// Classify tags argv by exact match of its first field against the internal
// command names. An empty argv is classified as External with no name.
func Classify(argv Argv) Command {
	kind, ok := internalCommands[argv.Name()]
	if !ok {
		kind = External
	}
	return Command{Kind: kind, Argv: argv}
}
