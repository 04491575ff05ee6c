package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caldermed/traceworks/internal/record"
)

func TestLoadSnapshotFile(t *testing.T) {
	path := writeSnapshot(t, sampleSnapshotYAML)

	snap, err := LoadSnapshotFile(path)
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "A", snap.Tasks[0].ID)
	assert.Equal(t, "2025-01-01", snap.Tasks[0].StartDate.String())
	assert.Equal(t, record.RefList{"A"}, snap.Tasks[1].Dependencies)

	require.Len(t, snap.Requirements, 2)
	assert.Equal(t, record.SourceTypeUserNeed, snap.Requirements[0].SourceType)

	require.Len(t, snap.Hazards, 1)
	assert.Equal(t, 4, snap.Hazards[0].InitialSeverity.Int())

	require.Len(t, snap.Reviews, 1)
	require.Len(t, snap.Reviews[0].ActionItems, 1)
	assert.Equal(t, "2025-03-01", snap.Reviews[0].ActionItems[0].DueDate.String())
}

func TestLoadSnapshotFile_ToleratesMalformedFields(t *testing.T) {
	path := writeSnapshot(t, `
tasks:
  - id: A
    start_date: not-a-date
    end_date: 2025-01-02
hazards:
  - hazard_id: H-001
    initial_severity: catastrophic
`)

	snap, err := LoadSnapshotFile(path)
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.False(t, snap.Tasks[0].StartDate.Valid())
	assert.True(t, snap.Tasks[0].EndDate.Valid())
	require.Len(t, snap.Hazards, 1)
	assert.False(t, snap.Hazards[0].InitialSeverity.Valid())
}

func TestLoadSnapshotFile_MissingFile(t *testing.T) {
	_, err := LoadSnapshotFile("does-not-exist.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadSnapshotFile_NotYAML(t *testing.T) {
	path := writeSnapshot(t, "{{{not yaml")
	_, err := LoadSnapshotFile(path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
