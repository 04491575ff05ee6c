package engine

import (
	"fmt"
	"time"

	"github.com/caldermed/traceworks/internal/record"
)

// ActionItem is one tracked action in the consolidated derived view,
// annotated with its provenance and with Overdue derived against the
// reference date. The source records are never mutated.
type ActionItem struct {
	ID          string      `json:"id"`
	Description string      `json:"description,omitempty"`
	Owner       string      `json:"owner,omitempty"`
	DueDate     record.Date `json:"due_date,omitempty"`
	Status      string      `json:"status"`
	Source      string      `json:"source"`
}

// Aggregate flattens the nested action-item lists from design reviews and
// design changes into one list.
//
// Each item is stamped with a human-readable source label: reviews by
// ordinal position and date ("Review 2 (2025-03-10)"), changes by id
// ("Change DCR-001"). An item whose due date parses to a day strictly
// before referenceDate, and whose status is not Completed, is reclassified
// to Overdue in the derived view. Items missing both id and description
// are skipped as malformed.
//
// The result is never nil; empty inputs aggregate to an empty list.
func Aggregate(reviews []record.Review, changes []record.Change, referenceDate time.Time) []ActionItem {
	items := []ActionItem{}
	for i, review := range reviews {
		label := fmt.Sprintf("Review %d", i+1)
		if review.Date.Valid() {
			label = fmt.Sprintf("Review %d (%s)", i+1, review.Date)
		}
		items = appendItems(items, review.ActionItems, label, referenceDate)
	}
	for i, change := range changes {
		label := fmt.Sprintf("Change %d", i+1)
		if id := record.NormalizeID(change.ID); id != "" {
			label = "Change " + id
		}
		items = appendItems(items, change.ActionItems, label, referenceDate)
	}
	return items
}

func appendItems(items []ActionItem, src []record.ActionItem, source string, referenceDate time.Time) []ActionItem {
	for _, a := range src {
		id := record.NormalizeID(a.ID)
		if id == "" && a.Description == "" {
			continue
		}
		status := a.Status
		if status == "" {
			status = record.StatusOpen
		}
		if status != record.StatusCompleted && a.DueDate.Before(referenceDate) {
			status = record.StatusOverdue
		}
		items = append(items, ActionItem{
			ID:          id,
			Description: a.Description,
			Owner:       a.Owner,
			DueDate:     a.DueDate,
			Status:      status,
			Source:      source,
		})
	}
	return items
}
