package core

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/vos"
	"github.com/stretchr/testify/require"
)

// TestMain lets the test binary stand in for pipesh when the shell
// re-executes itself to run a stage.
func TestMain(m *testing.M) {
	if len(os.Args) > 1 && os.Args[1] == StageCommand {
		os.Exit(StageMain(os.Args[2:]))
	}
	os.Exit(m.Run())
}

// countingLauncher records every process the shell starts and can be told
// to fail the nth one.
type countingLauncher struct {
	vos.Launcher

	mu     sync.Mutex
	argvs  [][]string
	failAt int
}

var errNoProcesses = errors.New("resource temporarily unavailable")

func (l *countingLauncher) StartProcess(path string, argv []string, attr *vos.ProcAttr) (*os.Process, error) {
	l.mu.Lock()
	l.argvs = append(l.argvs, argv)
	n := len(l.argvs)
	l.mu.Unlock()

	if n == l.failAt {
		return nil, errNoProcesses
	}
	return l.Launcher.StartProcess(path, argv, attr)
}

func (l *countingLauncher) Starts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.argvs)
}

type testShell struct {
	*Shell

	Dir      string
	Env      *vos.MapEnv
	Launcher *countingLauncher

	stdoutPath string
	stderrPath string
}

// newTestShell creates a shell whose streams are files in a temporary
// directory that is also its home. Standard input is empty.
func newTestShell(t *testing.T) *testShell {
	t.Helper()
	return newTestShellWithInput(t, "")
}

// newTestShellWithInput is newTestShell with input as its standard input.
func newTestShellWithInput(t *testing.T, input string) *testShell {
	t.Helper()

	dir := t.TempDir()
	stdinPath := filepath.Join(dir, "stdin")
	require.NoError(t, os.WriteFile(stdinPath, []byte(input), 0600))
	stdin, err := os.Open(stdinPath)
	require.NoError(t, err)
	stdoutPath := filepath.Join(dir, "stdout")
	stdout, err := os.Create(stdoutPath)
	require.NoError(t, err)
	stderrPath := filepath.Join(dir, "stderr")
	stderr, err := os.Create(stderrPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		stdin.Close()
		stdout.Close()
		stderr.Close()
	})

	env := vos.NewMapEnvFromEnvList(os.Environ())
	env.Setenv(vos.EnvHome, dir)
	env.Setenv(vos.EnvUser, "tester")

	cfg := config.Default()
	cfg.ColorPrompt = false

	s := NewShell(cfg, vos.New(env, vos.NewVIOAdapter(stdin, stdout, stderr)))
	launcher := &countingLauncher{Launcher: vos.HostLauncher{}}
	s.Launcher = launcher

	return &testShell{
		Shell:      s,
		Dir:        dir,
		Env:        env,
		Launcher:   launcher,
		stdoutPath: stdoutPath,
		stderrPath: stderrPath,
	}
}

func (ts *testShell) Stdout(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(ts.stdoutPath)
	require.NoError(t, err)
	return string(out)
}

func (ts *testShell) Stderr(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(ts.stderrPath)
	require.NoError(t, err)
	return string(out)
}

// Path returns the absolute path of name in the shell's directory.
func (ts *testShell) Path(name string) string {
	return filepath.Join(ts.Dir, name)
}

// WriteScript creates an executable shell script in the shell's directory.
func (ts *testShell) WriteScript(t *testing.T, name, body string) string {
	t.Helper()
	path := ts.Path(name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// ExecuteWithin fails the test if the line takes longer than d, which
// catches pipelines that never see end of input.
func (ts *testShell) ExecuteWithin(t *testing.T, d time.Duration, line string) error {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- ts.Execute(line)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(d):
		t.Fatalf("%q did not finish within %v", line, d)
		return nil
	}
}

// chdirForTest changes the process directory and restores it afterwards.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(orig)
	})
}
