package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combos.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[combos]
"leftmeta + leftshift + f23" = "leftctrl down + wait 500 + leftctrl up"
a = "b"
`), 0o644))

	out, err := execute(t, "check", path)
	require.NoError(t, err)

	assert.Contains(t, out, "config: "+path)
	assert.Contains(t, out, "delay:  3ms (default)")
	assert.Contains(t, out, "combos: 2")
	assert.Contains(t, out, "1. leftmeta + leftshift + f23 => leftctrl down + wait 500 + leftctrl up")
	assert.Contains(t, out, "500ms  leftctrl up")
	assert.Contains(t, out, "2. a => b")
}

func TestCheckCommandUsesConfigFlagAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delay_ms: 9\ncombos:\n  q: w\n"), 0o644))

	out, err := execute(t, "check", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "delay:  9ms")

	t.Setenv("KEYCHORD_CONFIG", path)
	out, err = execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "1. q => w")
}

func TestCheckCommandReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combos.toml")
	require.NoError(t, os.WriteFile(path, []byte("[combos]\na = \"nosuchkey\"\n"), 0o644))

	_, err := execute(t, "check", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestCheckCommandReadsStdin(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("combos:\n  a: b\n  \"n down\": b + c\n"))
	root.SetArgs([]string{"check", "--format", "yaml", "-"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "config: stdin.yaml")
	assert.Contains(t, out.String(), "combos: 2")
	assert.Contains(t, out.String(), "2. n down => b + c")
}

func TestCheckCommandRejectsStdinFormat(t *testing.T) {
	_, err := execute(t, "check", "--format", "ini", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, "keys")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `leftctrl\s+29\s+lctrl`, out)
	assert.Regexp(t, `esc\s+1\s+escape`, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keychord dev")
	assert.Contains(t, out, "Commit: unknown")
}

func TestRunCommandNeedsDevice(t *testing.T) {
	_, err := execute(t, "run", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--device")
}

func TestRunCommandRejectsBadLogLevel(t *testing.T) {
	_, err := execute(t, "run", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
