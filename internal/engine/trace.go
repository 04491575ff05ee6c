package engine

import (
	"sort"

	"github.com/caldermed/traceworks/internal/record"
)

// LinkState classifies one traceability cell.
type LinkState string

const (
	// LinkLinked means at least one downstream record resolves to the
	// requirement through the declared foreign keys.
	LinkLinked LinkState = "linked"

	// LinkGap means no link was found. This is the common, legitimate
	// state the matrix exists to surface, not an error.
	LinkGap LinkState = "gap"

	// LinkNA means the stage does not apply to this requirement
	// (validation for anything that is not a user need).
	LinkNA LinkState = "n/a"
)

// TraceCell is one cell of the matrix: the classification plus the ids of
// the linking records, sorted for display.
type TraceCell struct {
	State LinkState `json:"state"`
	Refs  []string  `json:"refs,omitempty"`
}

// TraceRow is one requirement with all three traceability cells. Every
// cell is always populated - gap is recorded explicitly, never omitted,
// so each row is audit-complete on its own.
type TraceRow struct {
	RequirementID string    `json:"requirement_id"`
	Description   string    `json:"description,omitempty"`
	SourceType    string    `json:"source_type,omitempty"`
	Output        TraceCell `json:"output"`
	Verification  TraceCell `json:"verification"`
	Validation    TraceCell `json:"validation"`
}

// TraceMatrix is the requirement-indexed traceability table. Rows follow
// the requirement input order (the matrix spine).
type TraceMatrix struct {
	Rows     []TraceRow `json:"rows"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// Row returns the row for a requirement id, or nil if absent.
func (m *TraceMatrix) Row(requirementID string) *TraceRow {
	id := record.NormalizeID(requirementID)
	for i := range m.Rows {
		if m.Rows[i].RequirementID == id {
			return &m.Rows[i]
		}
	}
	return nil
}

// BuildMatrix joins the four record collections through their declared
// foreign keys and classifies every requirement at each traceability
// stage.
//
// The joins are an indexed pipeline: each hop builds an id map once and
// resolves against it, so duplicate keys accumulate instead of silently
// dropping rows. Dangling references (a verification naming an unknown
// output, a validation naming an unknown requirement) are excluded from
// the join and never propagate as false links.
//
// An empty requirements collection is a structural precondition failure
// (NO_REQUIREMENTS); empty downstream collections are valid and simply
// produce all-gap columns.
func BuildMatrix(
	requirements []record.Requirement,
	outputs []record.Output,
	verifications []record.VerificationTest,
	validations []record.ValidationStudy,
) (*TraceMatrix, error) {
	if len(requirements) == 0 {
		return nil, NewNoRequirementsError()
	}

	// Hop 1: outputs grouped by the requirement they implement, plus the
	// reverse map used by the verification hop.
	outputsByInput := make(map[string][]string)
	outputToInput := make(map[string]string, len(outputs))
	for _, o := range outputs {
		outID := record.NormalizeID(o.ID)
		inputID := record.NormalizeID(o.LinkedInputID)
		if outID == "" || inputID == "" {
			continue
		}
		outputsByInput[inputID] = append(outputsByInput[inputID], outID)
		if _, seen := outputToInput[outID]; !seen {
			outputToInput[outID] = inputID
		}
	}

	// Hop 2: verification tests resolve to requirements through the
	// output they verify. Tests naming an unknown output drop out here.
	verByInput := make(map[string][]string)
	for _, v := range verifications {
		testID := record.NormalizeID(v.ID)
		outID := record.NormalizeID(v.OutputVerified)
		if testID == "" || outID == "" {
			continue
		}
		inputID, ok := outputToInput[outID]
		if !ok {
			continue
		}
		verByInput[inputID] = append(verByInput[inputID], testID)
	}

	// Hop 3: validation studies reference user needs directly.
	valByNeed := make(map[string][]string)
	for _, v := range validations {
		studyID := record.NormalizeID(v.ID)
		needID := record.NormalizeID(v.UserNeedValidated)
		if studyID == "" || needID == "" {
			continue
		}
		valByNeed[needID] = append(valByNeed[needID], studyID)
	}

	matrix := &TraceMatrix{Rows: make([]TraceRow, 0, len(requirements))}
	seen := make(map[string]bool, len(requirements))
	var duplicates, blank int
	for _, req := range requirements {
		reqID := record.NormalizeID(req.ID)
		if reqID == "" {
			blank++
			continue
		}
		if seen[reqID] {
			duplicates++
			continue
		}
		seen[reqID] = true

		row := TraceRow{
			RequirementID: reqID,
			Description:   req.Description,
			SourceType:    req.SourceType,
			Output:        cellFor(outputsByInput[reqID]),
			Verification:  cellFor(verByInput[reqID]),
		}
		// Validation applies to user needs only. Anything else is N/A
		// unconditionally, even if a study accidentally references it.
		if req.SourceType == record.SourceTypeUserNeed {
			row.Validation = cellFor(valByNeed[reqID])
		} else {
			row.Validation = TraceCell{State: LinkNA}
		}
		matrix.Rows = append(matrix.Rows, row)
	}

	if len(matrix.Rows) == 0 {
		// Requirements were supplied but none carried an id.
		return nil, NewNoRequirementsError()
	}
	if blank > 0 {
		matrix.Warnings = append(matrix.Warnings, warningf(WarnItemsSkipped,
			"%d requirement(s) without id skipped", blank))
	}
	if duplicates > 0 {
		matrix.Warnings = append(matrix.Warnings, warningf(WarnDuplicateID,
			"%d duplicate requirement id(s) collapsed to first occurrence", duplicates))
	}
	return matrix, nil
}

// cellFor classifies a resolved reference set: linked with sorted refs,
// or an explicit gap.
func cellFor(refs []string) TraceCell {
	if len(refs) == 0 {
		return TraceCell{State: LinkGap}
	}
	sorted := make([]string, len(refs))
	copy(sorted, refs)
	sort.Strings(sorted)
	return TraceCell{State: LinkLinked, Refs: sorted}
}
