package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tactile dev"))
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[swipe]\nthreshold = 42\n"), 0o644))

	out, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "threshold: 42")

	out, err = execute(t, "-c", path, "config", "show", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "threshold = 42")
}

func TestConfigShowInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  max_entries: 0\n"), 0o644))

	_, err := execute(t, "--config", path, "config", "show")
	assert.ErrorContains(t, err, "history.max_entries")
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "config", "path", "-c", "/tmp/x.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.toml\n", out)
}

func TestConfigEnv(t *testing.T) {
	out, err := execute(t, "config", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "TACTILE_SWIPE_THRESHOLD\n")
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	assert.Error(t, err)
}
