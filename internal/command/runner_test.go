package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestExecRunnerSuccess(t *testing.T) {
	script := writeScript(t, "echo \"args: $@\"\necho warn >&2\n")

	result := NewExecRunner("").Run(script, "flush", "--force-update")

	assert.True(t, result.Success())
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "args: flush --force-update")
	assert.Contains(t, result.Output, "warn")
	assert.NotContains(t, result.Output[len(result.Output)-1:], "\n")
}

func TestExecRunnerExitCode(t *testing.T) {
	script := writeScript(t, "echo failed\nexit 3\n")

	result := NewExecRunner("").Run(script)

	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "failed", result.Output)
}

func TestExecRunnerStartFailure(t *testing.T) {
	result := NewExecRunner("").Run(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Equal(t, ExitStartFailure, result.ExitCode)
	assert.NotEmpty(t, result.Output)
}

func TestExecRunnerPrefix(t *testing.T) {
	// the prefix program receives the real command as its arguments
	prefix := writeScript(t, "echo \"prefixed: $@\"\n")

	result := NewExecRunner(prefix).Run("/usr/sbin/rndc", "flush")

	assert.True(t, result.Success())
	assert.Equal(t, "prefixed: /usr/sbin/rndc flush", result.Output)
}
