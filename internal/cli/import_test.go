package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caldermed/traceworks/internal/engine"
)

func TestImportCommand_ThenAnalyticsFromDB(t *testing.T) {
	path := writeSnapshot(t, sampleSnapshotYAML)
	db := filepath.Join(t.TempDir(), "dhf.db")

	out, err := execute(t, "--format", "json", "--db", db, "import", path)
	require.NoError(t, err)

	var result ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 10, result.Written)
	assert.Equal(t, 2, result.Counts["tasks"])
	assert.Equal(t, 2, result.Counts["requirements"])

	// Analytics commands read the same records back from the database.
	out, err = execute(t, "--format", "json", "--db", db, "schedule")
	require.NoError(t, err)

	var sched engine.Schedule
	require.NoError(t, json.Unmarshal([]byte(out), &sched))
	assert.Equal(t, []string{"A", "B"}, sched.CriticalPath)
}

func TestImportCommand_RequiresDB(t *testing.T) {
	path := writeSnapshot(t, sampleSnapshotYAML)

	_, err := execute(t, "import", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db")
}
