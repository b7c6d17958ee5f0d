package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorFileTarget(t *testing.T) {
	dir := t.TempDir()
	leases := filepath.Join(dir, "dhcpd.leases")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(leases, nil, 0o644))

	m := New(Target{Name: "leases", Path: leases})
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Nil(t, m.Status()[leases])

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(leases, []byte("lease 10.0.0.1 {}\n"), 0o644))

	require.Eventually(t, func() bool {
		return m.Status()[leases] != nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestMonitorDirTarget(t *testing.T) {
	zones := t.TempDir()

	m := New(Target{Name: "zones", Path: zones, Dir: true})
	require.NoError(t, m.Start())
	defer m.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(zones, "db.example.com"), []byte("www IN A 10.0.0.5\n"), 0o644))

	require.Eventually(t, func() bool {
		return m.Status()[zones] != nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestMonitorMissingTarget(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "dhcpd.conf")

	m := New(Target{Name: "config", Path: missing})
	require.NoError(t, m.Start())
	defer m.Stop()

	status := m.Status()
	assert.Contains(t, status, missing)
	assert.Nil(t, status[missing])
}

func TestOpLabel(t *testing.T) {
	assert.Equal(t, "create", opLabel(fsnotify.Create|fsnotify.Write))
	assert.Equal(t, "write", opLabel(fsnotify.Write))
	assert.Equal(t, "remove", opLabel(fsnotify.Remove))
	assert.Equal(t, "rename", opLabel(fsnotify.Rename))
	assert.Equal(t, "chmod", opLabel(fsnotify.Chmod))
}
