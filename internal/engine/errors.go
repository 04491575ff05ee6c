package engine

import (
	"errors"
	"fmt"
	"strings"
)

// AnalyticsError represents a structural precondition failure: the input
// cannot support the requested computation at all, as opposed to row-level
// defects which are absorbed as Warnings.
type AnalyticsError struct {
	// Code identifies the error category.
	Code AnalyticsErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context (e.g. unresolved task ids).
	Details map[string]string
}

// AnalyticsErrorCode categorizes structural precondition failures.
type AnalyticsErrorCode string

const (
	// ErrCodeCycleDetected indicates the task dependency relation is cyclic.
	ErrCodeCycleDetected AnalyticsErrorCode = "CYCLE_DETECTED"

	// ErrCodeNoRequirements indicates the traceability matrix has no spine.
	ErrCodeNoRequirements AnalyticsErrorCode = "NO_REQUIREMENTS"
)

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCycleError returns true if the error is a cycle detection error.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	var ae *AnalyticsError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeCycleDetected
	}
	return false
}

// IsNoRequirementsError returns true if the error reports an empty
// requirements collection. Uses errors.As to handle wrapped errors.
func IsNoRequirementsError(err error) bool {
	var ae *AnalyticsError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeNoRequirements
	}
	return false
}

// NewCycleError creates an AnalyticsError for a cyclic task graph.
// unresolved lists the task ids left unscheduled by the topological pass,
// in sorted order.
func NewCycleError(unresolved []string) *AnalyticsError {
	return &AnalyticsError{
		Code:    ErrCodeCycleDetected,
		Message: fmt.Sprintf("task dependencies contain a cycle; %d task(s) unresolved", len(unresolved)),
		Details: map[string]string{
			"unresolved": strings.Join(unresolved, ","),
		},
	}
}

// NewNoRequirementsError creates an AnalyticsError for an empty
// requirements collection.
func NewNoRequirementsError() *AnalyticsError {
	return &AnalyticsError{
		Code:    ErrCodeNoRequirements,
		Message: "no requirements found; the traceability matrix has no spine without design inputs",
	}
}

// Warning reports a row-level defect that degraded (but did not abort) a
// computation. Warnings ride along on the derived result so the hosting
// view can surface them next to the data.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// WarningCode categorizes degradation warnings.
type WarningCode string

const (
	// WarnTasksDropped indicates tasks were discarded during cleansing.
	WarnTasksDropped WarningCode = "TASKS_DROPPED"

	// WarnDuplicateID indicates duplicate record ids were collapsed to the
	// first occurrence.
	WarnDuplicateID WarningCode = "DUPLICATE_ID"

	// WarnEmptySchedule indicates no valid tasks survived cleansing.
	WarnEmptySchedule WarningCode = "EMPTY_SCHEDULE"

	// WarnItemsSkipped indicates malformed action items were skipped.
	WarnItemsSkipped WarningCode = "ITEMS_SKIPPED"
)

func warningf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
