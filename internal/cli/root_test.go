package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"timetracker/internal/platform"
	"timetracker/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRootCmd(trayUp bool) *cobra.Command {
	return newRootCmd("test", &app{
		config:      viper.New(),
		trayRunning: func() bool { return trayUp },
	})
}

func runCommand(t *testing.T, dataPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newTestRootCmd(false)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data", dataPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataPath string, args ...string) string {
	t.Helper()
	out, err := runCommand(t, dataPath, args...)
	require.NoError(t, err)
	return out
}

func newDataPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "data.json")
}

func TestStartStopStatus(t *testing.T) {
	path := newDataPath(t)

	assert.Equal(t, "No active task\n", mustRun(t, path, "status"))
	assert.Equal(t, "Timer started for write docs\n", mustRun(t, path, "start", "write", "docs"))
	assert.Equal(t, "Timer already running for write docs\n", mustRun(t, path, "start", "write docs"))
	assert.True(t, strings.HasPrefix(mustRun(t, path, "status"), "write docs: "))
	assert.Equal(t, "Timer stopped for write docs\n", mustRun(t, path, "stop"))
	assert.Equal(t, "No active task\n", mustRun(t, path, "stop"))
}

func TestStartWithDescription(t *testing.T) {
	path := newDataPath(t)

	mustRun(t, path, "start", "review", "-d", "pull requests")

	assert.Contains(t, mustRun(t, path, "status"), "(pull requests)")
	assert.Equal(t, "Updated description for review\n", mustRun(t, path, "describe", "issue", "triage"))
	assert.Contains(t, mustRun(t, path, "status"), "(issue triage)")

	snapshot, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"issue triage", "pull requests"}, snapshot.Tasks[0].History)
}

func TestStartBlankNameFails(t *testing.T) {
	_, err := runCommand(t, newDataPath(t), "start", "  ")
	assert.Error(t, err)
}

func TestSwitchingTasksPersistsSingleActive(t *testing.T) {
	path := newDataPath(t)

	mustRun(t, path, "start", "a")
	mustRun(t, path, "start", "b")

	snapshot, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snapshot.Tasks, 2)
	assert.Equal(t, "b", snapshot.Tasks[0].Name)
	assert.Equal(t, 0, snapshot.Active)
	_, aRunning := snapshot.Tasks[1].OpenInterval()
	assert.False(t, aRunning)
}

func TestList(t *testing.T) {
	path := newDataPath(t)
	assert.Equal(t, "No tasks found.\n", mustRun(t, path, "list"))

	mustRun(t, path, "start", "a", "-d", "first")
	mustRun(t, path, "start", "b")

	out := mustRun(t, path, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* b"))
	assert.True(t, strings.HasPrefix(lines[1], "  a"))

	assert.Contains(t, mustRun(t, path, "list", "--history"), "first")
}

func TestRenameResetDelete(t *testing.T) {
	path := newDataPath(t)
	mustRun(t, path, "start", "a")
	mustRun(t, path, "start", "b")

	assert.Equal(t, "Task already exists: a\n", mustRun(t, path, "rename", "b", "a"))
	assert.Equal(t, "Renamed b to c\n", mustRun(t, path, "rename", "b", "c"))
	assert.True(t, strings.HasPrefix(mustRun(t, path, "status"), "c: "))

	assert.Equal(t, "Reset c\n", mustRun(t, path, "reset", "c"))
	assert.Equal(t, "No active task\n", mustRun(t, path, "status"))

	assert.Equal(t, "Deleted a\n", mustRun(t, path, "delete", "a"))
	assert.Equal(t, "Task not found: a\n", mustRun(t, path, "delete", "a"))

	snapshot, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, "c", snapshot.Tasks[0].Name)
	assert.Empty(t, snapshot.Tasks[0].Intervals)
}

func TestRenameToBlankName(t *testing.T) {
	path := newDataPath(t)
	mustRun(t, path, "start", "a")

	assert.Equal(t, "Invalid task name: \" \"\n", mustRun(t, path, "rename", "a", " "))
}

func TestDataPathFromEnvironment(t *testing.T) {
	path := newDataPath(t)
	t.Setenv("TIMETRACKER_DATA", path)

	cmd := newTestRootCmd(false)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"start", "from-env"})
	require.NoError(t, cmd.Execute())

	snapshot, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, "from-env", snapshot.Tasks[0].Name)
}

func TestMutatingCommandsRefusedWhileTrayRuns(t *testing.T) {
	path := newDataPath(t)
	mustRun(t, path, "start", "a")

	for _, args := range [][]string{
		{"start", "b"},
		{"stop"},
		{"describe", "notes"},
		{"rename", "a", "c"},
		{"reset", "a"},
		{"delete", "a"},
	} {
		cmd := newTestRootCmd(true)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--data", path}, args...))

		assert.ErrorIs(t, cmd.Execute(), ErrTrayRunning, "tt %s", strings.Join(args, " "))
	}

	snapshot, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, "a", snapshot.Tasks[0].Name)
	assert.Equal(t, 0, snapshot.Active)
}

func TestReadCommandsWorkWhileTrayRuns(t *testing.T) {
	path := newDataPath(t)
	mustRun(t, path, "start", "a")

	for _, args := range [][]string{{"status"}, {"list"}} {
		cmd := newTestRootCmd(true)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"--data", path}, args...))

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "a")
	}
}

func TestTrayRunningDetectsInstanceClaim(t *testing.T) {
	appName := "timetracker-cli-" + t.Name()
	assert.False(t, trayRunning(appName))

	instance, err := platform.ClaimInstance(appName)
	require.NoError(t, err)
	defer instance.Release()

	assert.True(t, trayRunning(appName))
}
