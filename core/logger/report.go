package logger

import (
	"encoding/json"
	"fmt"
	"sort"
)

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{
		Execution: ExecutionReport{
			Failures: NewPathCounter("command", "status", "error"),
		},
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Sessions  SessionReport   `json:"session_report"`
	Execution ExecutionReport `json:"execution_report"`
	Exit      ExitReport      `json:"exit_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions.update(event)
	case *Execution:
		r.Execution.update(event)
	case *InterpreterExit:
		r.Exit.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionReport struct {
	Count int        `json:"count"`
	Users StrCounter `json:"users"`
}

func (r *SessionReport) update(s *SessionStart) {
	r.Count++
	r.Users.Increment(s.User)
}

type ExecutionReport struct {
	// Routes counts how lines were executed.
	Routes StrCounter `json:"routes"`
	// CommandNames counts the first field of every stage.
	CommandNames StrCounter `json:"command_names"`
	// ExitStatuses counts the last exit status after each line.
	ExitStatuses StrCounter `json:"exit_statuses"`
	// Failures lists lines that didn't succeed.
	Failures *PathCounter `json:"failures"`
}

func (r *ExecutionReport) update(e *Execution) {
	r.Routes.Increment(e.Route)
	for _, name := range e.Commands {
		r.CommandNames.Increment(name)
	}
	r.ExitStatuses.Increment(fmt.Sprintf("%d", e.ExitStatus))

	if e.ExitStatus != 0 || e.Error != "" {
		command := ""
		if len(e.Commands) > 0 {
			command = e.Commands[0]
		}
		if r.Failures == nil {
			r.Failures = NewPathCounter("command", "status", "error")
		}
		r.Failures.Increment(command, fmt.Sprintf("%d", e.ExitStatus), e.Error)
	}
}

type ExitReport struct {
	Reasons StrCounter `json:"reasons"`
}

func (r *ExitReport) update(e *InterpreterExit) {
	r.Reasons.Increment(e.Reason)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}
	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each tuple of strings is seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
