package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caldermed/traceworks/internal/record"
	"github.com/caldermed/traceworks/internal/testutil"
)

// =============================================================================
// Classify Unit Tests
// =============================================================================

func TestClassify_KnownCells(t *testing.T) {
	tests := []struct {
		severity, probability int
		want                  RiskLevel
	}{
		{1, 1, RiskLow},
		{1, 3, RiskLow},
		{1, 4, RiskMedium},
		{2, 5, RiskHigh},
		{3, 2, RiskMedium},
		{3, 4, RiskHigh},
		{4, 1, RiskMedium},
		{4, 3, RiskHigh},
		{5, 1, RiskMedium},
		{5, 2, RiskHigh},
		{5, 5, RiskHigh},
	}

	for _, tt := range tests {
		got := Classify(record.OrdinalOf(tt.severity), record.OrdinalOf(tt.probability))
		assert.Equal(t, tt.want, got, "S=%d P=%d", tt.severity, tt.probability)
	}
}

func TestClassify_TotalOverValidDomain(t *testing.T) {
	// Every in-range pair classifies to a real band, never N/A.
	for s := 1; s <= 5; s++ {
		for p := 1; p <= 5; p++ {
			got := Classify(record.OrdinalOf(s), record.OrdinalOf(p))
			assert.Contains(t, []RiskLevel{RiskLow, RiskMedium, RiskHigh}, got,
				"S=%d P=%d", s, p)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	// Raising either rating never lowers the band.
	for s := 1; s <= 5; s++ {
		for p := 1; p <= 5; p++ {
			here := Classify(record.OrdinalOf(s), record.OrdinalOf(p))
			if p < 5 {
				right := Classify(record.OrdinalOf(s), record.OrdinalOf(p+1))
				assert.LessOrEqual(t, here.Rank(), right.Rank(), "S=%d P=%d -> P+1", s, p)
			}
			if s < 5 {
				down := Classify(record.OrdinalOf(s+1), record.OrdinalOf(p))
				assert.LessOrEqual(t, here.Rank(), down.Rank(), "S=%d -> S+1 P=%d", s, p)
			}
		}
	}
}

func TestClassify_InvalidInputsYieldNA(t *testing.T) {
	missing := record.Ordinal{}

	assert.Equal(t, RiskNA, Classify(missing, record.OrdinalOf(3)))
	assert.Equal(t, RiskNA, Classify(record.OrdinalOf(3), missing))
	assert.Equal(t, RiskNA, Classify(missing, missing))
	assert.Equal(t, RiskNA, Classify(record.OrdinalOf(0), record.OrdinalOf(3)))
	assert.Equal(t, RiskNA, Classify(record.OrdinalOf(6), record.OrdinalOf(3)))
	assert.Equal(t, RiskNA, Classify(record.OrdinalOf(3), record.OrdinalOf(-2)))
}

// =============================================================================
// AnnotateHazards Tests
// =============================================================================

func TestAnnotateHazards_DerivesBothBands(t *testing.T) {
	hazards := []record.Hazard{
		testutil.Hazard("H-001", 4, 4, 2, 2),
		testutil.Hazard("H-002", 1, 1, 1, 1),
	}

	got := AnnotateHazards(hazards)
	require.Len(t, got, 2)

	assert.Equal(t, "H-001", got[0].HazardID)
	assert.Equal(t, RiskHigh, got[0].InitialRisk)
	assert.Equal(t, RiskLow, got[0].FinalRisk)
	assert.Equal(t, RiskLow, got[1].InitialRisk)
}

func TestAnnotateHazards_MissingRatingsKeptAsNA(t *testing.T) {
	// A hazard with no final ratings stays in the table with N/A bands.
	h := record.Hazard{
		HazardID:          "H-003",
		InitialSeverity:   record.OrdinalOf(3),
		InitialOccurrence: record.OrdinalOf(5),
	}

	got := AnnotateHazards([]record.Hazard{h})
	require.Len(t, got, 1)
	assert.Equal(t, RiskHigh, got[0].InitialRisk)
	assert.Equal(t, RiskNA, got[0].FinalRisk)
}

func TestAnnotateHazards_Empty(t *testing.T) {
	got := AnnotateHazards(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

// =============================================================================
// CountLevels Tests
// =============================================================================

func TestCountLevels(t *testing.T) {
	hazards := []record.Hazard{
		testutil.Hazard("H-1", 5, 5, 2, 2), // High -> Low
		testutil.Hazard("H-2", 4, 3, 3, 2), // High -> Medium
		testutil.Hazard("H-3", 1, 1, 1, 1), // Low -> Low
		{HazardID: "H-4"},                  // N/A -> N/A
	}

	initial, final := CountLevels(AnnotateHazards(hazards))

	assert.Equal(t, BandCounts{Low: 1, High: 2, NA: 1}, initial)
	assert.Equal(t, BandCounts{Low: 2, Medium: 1, NA: 1}, final)
}
