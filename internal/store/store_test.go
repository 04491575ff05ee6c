package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caldermed/traceworks/internal/record"
	"github.com/caldermed/traceworks/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dhf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot() *record.Snapshot {
	return &record.Snapshot{
		Tasks: []record.Task{
			testutil.Task("T-1", "2025-01-01", "2025-01-02"),
			testutil.Task("T-2", "2025-01-03", "2025-01-04", "T-1"),
		},
		Requirements: []record.Requirement{
			testutil.Requirement("UN-001", record.SourceTypeUserNeed),
		},
		Outputs: []record.Output{testutil.Output("SPEC-001", "UN-001")},
		Hazards: []record.Hazard{testutil.Hazard("H-001", 4, 4, 2, 2)},
		Reviews: []record.Review{{
			ID:          "REV-1",
			Date:        record.ParseDate("2025-03-10"),
			ActionItems: []record.ActionItem{testutil.Item("AI-001", "2025-04-01", record.StatusOpen)},
		}},
	}
}

// =============================================================================
// Open / Schema
// =============================================================================

func TestOpen_CreatesAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dhf.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening an existing database applies the schema idempotently.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

// =============================================================================
// Import / Load Round Trip
// =============================================================================

func TestImportSnapshot_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	written, err := s.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 6, written)

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "T-1", got.Tasks[0].ID)
	assert.Equal(t, "T-2", got.Tasks[1].ID)
	assert.Equal(t, record.RefList{"T-1"}, got.Tasks[1].Dependencies)
	assert.Equal(t, "2025-01-03", got.Tasks[1].StartDate.String())

	require.Len(t, got.Hazards, 1)
	assert.Equal(t, 4, got.Hazards[0].InitialSeverity.Int())

	require.Len(t, got.Reviews, 1)
	require.Len(t, got.Reviews[0].ActionItems, 1)
	assert.Equal(t, "AI-001", got.Reviews[0].ActionItems[0].ID)
	assert.Equal(t, "2025-04-01", got.Reviews[0].ActionItems[0].DueDate.String())
}

func TestImportSnapshot_PreservesInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := &record.Snapshot{Requirements: []record.Requirement{
		testutil.Requirement("Z-9", record.SourceTypeStandard),
		testutil.Requirement("A-1", record.SourceTypeStandard),
		testutil.Requirement("M-5", record.SourceTypeStandard),
	}}
	_, err := s.ImportSnapshot(ctx, snap)
	require.NoError(t, err)

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Requirements, 3)
	assert.Equal(t, "Z-9", got.Requirements[0].ID)
	assert.Equal(t, "A-1", got.Requirements[1].ID)
	assert.Equal(t, "M-5", got.Requirements[2].ID)
}

func TestImportSnapshot_AssignsIDWhenMissing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := &record.Snapshot{Reviews: []record.Review{{Date: record.ParseDate("2025-03-10")}}}
	_, err := s.ImportSnapshot(ctx, snap)
	require.NoError(t, err)

	// The caller's snapshot is untouched; the stored copy got an id.
	assert.Empty(t, snap.Reviews[0].ID)
	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 1)
	assert.NotEmpty(t, got.Reviews[0].ID)
}

func TestImportSnapshot_DuplicateIDKeepsFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := &record.Snapshot{Tasks: []record.Task{
		testutil.Task("T-1", "2025-01-01", "2025-01-02"),
		testutil.Task("T-1", "2025-01-01", "2025-01-10"),
	}}
	written, err := s.ImportSnapshot(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "2025-01-02", got.Tasks[0].EndDate.String())
}

func TestImportSnapshot_ReplacesPreviousContents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)

	_, err = s.ImportSnapshot(ctx, &record.Snapshot{
		Tasks: []record.Task{testutil.Task("ONLY", "2025-02-01", "2025-02-02")},
	})
	require.NoError(t, err)

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "ONLY", got.Tasks[0].ID)
	assert.Empty(t, got.Requirements)
	assert.Empty(t, got.Hazards)
}

func TestLoadSnapshot_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Tasks)
	assert.Empty(t, got.Requirements)
	assert.NotNil(t, got.Tasks, "collections load as empty slices, not nil")
}

// =============================================================================
// Counts
// =============================================================================

func TestCounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[CollectionTasks])
	assert.Equal(t, 1, counts[CollectionRequirements])
	assert.Equal(t, 0, counts[CollectionChanges], "empty collections are present with zero")
}
