package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: toggle
description: sidebar toggles twice
run_id: run-toggle
steps:
  - action: toggleSidebar
    expect: {outcome: committed}
  - action: toggleSidebar
assertions:
  - type: flags
    sidebar_collapsed: false
  - type: notifications
    count: 2
`

const failingScenario = `name: broken
description: wrong unread count
steps:
  - action: markNotificationsAsRead
assertions:
  - type: unread_count
    count: 3
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	return dir
}

func TestTestCommand_Pass(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"toggle.yaml": passingScenario})

	out, err := execute(t, "", "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ toggle")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommand_Failure(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"toggle.yaml": passingScenario,
		"broken.yaml": failingScenario,
	})

	out, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "Expected: 3 unread alerts")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"toggle.yaml": passingScenario,
		"broken.yaml": failingScenario,
	})

	out, err := execute(t, "", "test", dir, "--filter", "tog*")
	require.NoError(t, err)
	assert.NotContains(t, out, "broken")
	assert.Contains(t, out, "1 total")
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"toggle.yaml": passingScenario})

	_, err := execute(t, "", "test", dir, "--update")
	require.NoError(t, err)

	golden := filepath.Join(dir, "golden", "toggle.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "run-toggle"`)
	assert.Contains(t, string(data), `"action": "toggleSidebar"`)

	_, err = execute(t, "", "test", dir)
	require.NoError(t, err)

	// A stale golden file fails the run.
	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
	out, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommand_JSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"broken.yaml": failingScenario})

	out, err := execute(t, "", "--format", "json", "test", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "broken", resp.Data.Scenarios[0].Name)
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"bad.yaml": "name: bad\n"})

	out, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ bad.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, err := execute(t, "", "test", filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_HarnessScenarios(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")
	out, err := execute(t, "", "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ acknowledge_flow")
	assert.Contains(t, out, "✓ signup_uniqueness")
}
