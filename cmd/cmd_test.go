package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/pipesh/core/config"
	"github.com/josephlewis42/pipesh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgPath = ""
		commandLine = ""
		debug = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuiltinsCommand(t *testing.T) {
	out, err := runRoot(t, "builtins")
	require.NoError(t, err)
	assert.Equal(t, "shell:exit\nshell:cd\nshell:help\nshell:echo\n", out)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")

	out, err := runRoot(t, "init", "--config", dir)
	require.NoError(t, err)
	assert.Equal(t, "Writing config.yaml\n", out)

	configuration, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default().FailureExitCode, configuration.FailureExitCode)
}

func TestEventsReport(t *testing.T) {
	t.Run("needs a directory", func(t *testing.T) {
		_, err := runRoot(t, "events", "report")
		assert.ErrorIs(t, err, errNoConfigDir)
	})

	t.Run("report", func(t *testing.T) {
		dir := t.TempDir()
		_, err := runRoot(t, "init", "--config", dir)
		require.NoError(t, err)

		configuration, err := config.Load(dir)
		require.NoError(t, err)
		fd, err := configuration.OpenEventLog()
		require.NoError(t, err)
		session := logger.NewJsonLinesLogRecorder(fd).NewSession()
		require.NoError(t, session.Record(&logger.SessionStart{User: "alice"}))
		require.NoError(t, session.Record(&logger.Execution{
			Line: "ls | wc", Route: logger.RoutePipeline, Commands: []string{"ls", "wc"}, Stages: 2,
		}))
		require.NoError(t, session.Record(&logger.InterpreterExit{Reason: "exit"}))
		require.NoError(t, fd.Close())

		out, err := runRoot(t, "events", "report", "--config", dir)
		require.NoError(t, err)

		var report map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &report))
		assert.EqualValues(t, 3, report["log_entries"])
		assert.Contains(t, out, "pipeline: 1")
		assert.Contains(t, out, "alice: 1")
	})
}

func TestRootCommand_missingConfig(t *testing.T) {
	_, err := runRoot(t, "--config", filepath.Join(t.TempDir(), "missing"), "-c", "true")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit status 55", (&ExitError{Code: 55}).Error())

	wrapped := &ExitError{Code: 1, Err: errNoConfigDir}
	assert.Equal(t, errNoConfigDir.Error(), wrapped.Error())
	assert.ErrorIs(t, fmt.Errorf("running: %w", wrapped), errNoConfigDir)
}
