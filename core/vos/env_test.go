package vos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapEnv(t *testing.T) {
	env := NewMapEnvFromEnvList([]string{"HOME=/home/user", "EMPTY=", "NOVALUE", "A=b=c"})

	assert.Equal(t, "/home/user", env.UserHomeDir())
	assert.Equal(t, "b=c", env.Getenv("A"))

	val, ok := env.LookupEnv("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", val)

	_, ok = env.LookupEnv("MISSING")
	assert.False(t, ok)

	assert.NoError(t, env.Setenv("A", "d"))
	assert.Equal(t, []string{"A=d", "EMPTY=", "HOME=/home/user", "NOVALUE="}, env.Environ())
}

func TestMapEnv_zero(t *testing.T) {
	var env MapEnv
	assert.Equal(t, "", env.Getenv("HOME"))
	assert.Empty(t, env.Environ())
}

func writeExecutable(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
	return path
}

func TestLookPath(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeExecutable(t, first, "notexec", 0644)
	writeExecutable(t, second, "notexec", 0755)
	shadowed := writeExecutable(t, first, "tool", 0755)
	writeExecutable(t, second, "tool", 0755)
	require.NoError(t, os.Mkdir(filepath.Join(first, "dir"), 0755))

	env := NewMapEnv()
	require.NoError(t, env.Setenv(EnvPath, first+string(filepath.ListSeparator)+second))

	t.Run("first match wins", func(t *testing.T) {
		path, err := LookPath(env, "tool")
		assert.NoError(t, err)
		assert.Equal(t, shadowed, path)
	})

	t.Run("skips non-executable", func(t *testing.T) {
		path, err := LookPath(env, "notexec")
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(second, "notexec"), path)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := LookPath(env, "missing")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LookPath(env, "dir")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("default path", func(t *testing.T) {
		path, err := LookPath(NewMapEnv(), "sh")
		assert.NoError(t, err)
		assert.Equal(t, "/bin/sh", path)

		empty := NewMapEnv()
		require.NoError(t, empty.Setenv(EnvPath, ""))
		path, err = LookPath(empty, "sh")
		assert.NoError(t, err)
		assert.Equal(t, "/bin/sh", path)
	})

	t.Run("slash skips path", func(t *testing.T) {
		path, err := LookPath(NewMapEnv(), shadowed)
		assert.NoError(t, err)
		assert.Equal(t, shadowed, path)

		_, err = LookPath(env, filepath.Join(first, "notexec"))
		assert.Error(t, err)
	})
}
