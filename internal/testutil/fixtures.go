// Package testutil provides compact fixture builders for analytics tests.
//
// Builders take ISO date strings and panic-free tolerant fields, so test
// cases read as data: Task("B", "2025-01-03", "2025-01-04", "A").
package testutil

import (
	"time"

	"github.com/caldermed/traceworks/internal/record"
)

// Task builds a task record. start and end are ISO dates; malformed input
// deliberately produces invalid Date fields for cleansing tests.
func Task(id, start, end string, deps ...string) record.Task {
	return record.Task{
		ID:           id,
		StartDate:    record.ParseDate(start),
		EndDate:      record.ParseDate(end),
		Dependencies: record.RefList(deps),
	}
}

// Requirement builds a design input with the given source type.
func Requirement(id, sourceType string) record.Requirement {
	return record.Requirement{ID: id, SourceType: sourceType, Description: "req " + id}
}

// Output builds a design output linked to one input.
func Output(id, linkedInputID string) record.Output {
	return record.Output{ID: id, LinkedInputID: linkedInputID}
}

// Verification builds a verification test against an output.
func Verification(id, outputVerified string) record.VerificationTest {
	return record.VerificationTest{ID: id, OutputVerified: outputVerified}
}

// Validation builds a validation study against a user need.
func Validation(id, userNeedValidated string) record.ValidationStudy {
	return record.ValidationStudy{ID: id, UserNeedValidated: userNeedValidated}
}

// Hazard builds a hazard with initial and final severity/occurrence
// ratings.
func Hazard(id string, initS, initO, finS, finO int) record.Hazard {
	return record.Hazard{
		HazardID:          id,
		InitialSeverity:   record.OrdinalOf(initS),
		InitialOccurrence: record.OrdinalOf(initO),
		FinalSeverity:     record.OrdinalOf(finS),
		FinalOccurrence:   record.OrdinalOf(finO),
	}
}

// Item builds an action item. due is an ISO date or "" for absent.
func Item(id, due, status string) record.ActionItem {
	return record.ActionItem{
		ID:          id,
		Description: "action " + id,
		DueDate:     record.ParseDate(due),
		Status:      status,
	}
}

// Day parses an ISO date into a midnight-UTC time for reference dates.
func Day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("testutil: bad date " + s)
	}
	return t
}
