package engine

import (
	"github.com/caldermed/traceworks/internal/record"
)

// RiskLevel is the qualitative risk band derived from a severity and
// probability rating pair.
type RiskLevel string

const (
	RiskNA     RiskLevel = "N/A"
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Rank orders bands for comparison: N/A < Low < Medium < High.
// Used by monotonicity checks and band aggregation, not by Classify itself.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// riskTable is the fixed ISO 14971-style 5x5 acceptability matrix.
// Row index is severity-1, column index is probability-1. The table is
// monotonic in both axes: raising either rating never lowers the band.
var riskTable = [5][5]RiskLevel{
	{RiskLow, RiskLow, RiskLow, RiskMedium, RiskMedium},
	{RiskLow, RiskLow, RiskMedium, RiskMedium, RiskHigh},
	{RiskLow, RiskMedium, RiskMedium, RiskHigh, RiskHigh},
	{RiskMedium, RiskMedium, RiskHigh, RiskHigh, RiskHigh},
	{RiskMedium, RiskHigh, RiskHigh, RiskHigh, RiskHigh},
}

// Classify maps a severity/probability rating pair to a risk band.
//
// Total function: a missing, non-numeric, or out-of-range rating on
// either axis yields RiskNA, never an error. Deterministic, no side
// effects.
func Classify(severity, probability record.Ordinal) RiskLevel {
	if !severity.InRange() || !probability.InRange() {
		return RiskNA
	}
	return riskTable[severity.Int()-1][probability.Int()-1]
}

// HazardAssessment is one hazard row annotated with its derived risk
// bands. The bands live only in the derived view; the source record is
// never mutated.
type HazardAssessment struct {
	HazardID         string    `json:"hazard_id"`
	Description      string    `json:"description,omitempty"`
	RiskControlReqID string    `json:"risk_control_req_id,omitempty"`
	InitialRisk      RiskLevel `json:"initial_risk"`
	FinalRisk        RiskLevel `json:"final_risk"`
}

// AnnotateHazards derives initial and final risk bands for every hazard
// via the risk matrix (severity x occurrence). Rows with missing or
// malformed ratings classify as N/A and are kept, so the risk table stays
// audit-complete.
func AnnotateHazards(hazards []record.Hazard) []HazardAssessment {
	out := make([]HazardAssessment, 0, len(hazards))
	for _, h := range hazards {
		out = append(out, HazardAssessment{
			HazardID:         record.NormalizeID(h.HazardID),
			Description:      h.Description,
			RiskControlReqID: record.NormalizeID(h.RiskControlReqID),
			InitialRisk:      Classify(h.InitialSeverity, h.InitialOccurrence),
			FinalRisk:        Classify(h.FinalSeverity, h.FinalOccurrence),
		})
	}
	return out
}

// BandCounts is the per-band hazard tally used for chart aggregation.
type BandCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	NA     int `json:"na"`
}

func (c *BandCounts) add(level RiskLevel) {
	switch level {
	case RiskLow:
		c.Low++
	case RiskMedium:
		c.Medium++
	case RiskHigh:
		c.High++
	default:
		c.NA++
	}
}

// CountLevels tallies assessments per band, before and after mitigation.
func CountLevels(assessments []HazardAssessment) (initial, final BandCounts) {
	for _, a := range assessments {
		initial.add(a.InitialRisk)
		final.add(a.FinalRisk)
	}
	return initial, final
}
