package logger

// Routes an executed line can take through the interpreter.
const (
	RouteEmpty      = "empty"
	RouteInvalid    = "invalid"
	RouteInternal   = "internal"
	RouteExternal   = "external"
	RouteRedirected = "redirected"
	RoutePipeline   = "pipeline"
)

// LogEntry is a single line of the event log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart    *SessionStart    `json:"session_start,omitempty"`
	Execution       *Execution       `json:"execution,omitempty"`
	InterpreterExit *InterpreterExit `json:"interpreter_exit,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.Execution != nil:
		return le.Execution
	case le.InterpreterExit != nil:
		return le.InterpreterExit
	default:
		return nil
	}
}

// SessionStart is recorded once when an interpreter starts.
type SessionStart struct {
	User        string `json:"user"`
	Host        string `json:"host"`
	Dir         string `json:"dir"`
	Interactive bool   `json:"interactive"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// Execution is recorded for every line the interpreter runs.
type Execution struct {
	Line  string `json:"line"`
	Route string `json:"route"`
	// Commands holds the first field of each stage that could be parsed.
	Commands   []string `json:"commands,omitempty"`
	Stages     int      `json:"stages"`
	ExitStatus int      `json:"exit_status"`
	// Signal is set if the final process was killed.
	Signal int    `json:"signal,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (e *Execution) setOn(le *LogEntry) { le.Execution = e }

// InterpreterExit is recorded when the interpreter terminates.
type InterpreterExit struct {
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

func (e *InterpreterExit) setOn(le *LogEntry) { le.InterpreterExit = e }
