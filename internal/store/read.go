package store

import (
	"context"
	"fmt"

	"github.com/caldermed/traceworks/internal/record"
)

// LoadSnapshot reads every collection into a fresh snapshot.
//
// Ordering is deterministic: ORDER BY seq ASC, id COLLATE BINARY ASC.
// Returns empty (non-nil) collections when the store is empty.
func (s *Store) LoadSnapshot(ctx context.Context) (*record.Snapshot, error) {
	snap := &record.Snapshot{}
	var err error

	if snap.Tasks, err = loadCollection[record.Task](ctx, s, CollectionTasks); err != nil {
		return nil, err
	}
	if snap.Requirements, err = loadCollection[record.Requirement](ctx, s, CollectionRequirements); err != nil {
		return nil, err
	}
	if snap.Outputs, err = loadCollection[record.Output](ctx, s, CollectionOutputs); err != nil {
		return nil, err
	}
	if snap.Verifications, err = loadCollection[record.VerificationTest](ctx, s, CollectionVerifications); err != nil {
		return nil, err
	}
	if snap.Validations, err = loadCollection[record.ValidationStudy](ctx, s, CollectionValidations); err != nil {
		return nil, err
	}
	if snap.Hazards, err = loadCollection[record.Hazard](ctx, s, CollectionHazards); err != nil {
		return nil, err
	}
	if snap.Reviews, err = loadCollection[record.Review](ctx, s, CollectionReviews); err != nil {
		return nil, err
	}
	if snap.Changes, err = loadCollection[record.Change](ctx, s, CollectionChanges); err != nil {
		return nil, err
	}
	return snap, nil
}

// loadCollection reads one collection in deterministic order.
func loadCollection[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM records
		WHERE collection = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	recs := []T{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		var rec T
		if err := unmarshalDoc(doc, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", collection, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return recs, nil
}

// Counts returns the number of stored records per collection. Collections
// with no records are present with a zero count.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Collections))
	for _, c := range Collections {
		counts[c] = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, COUNT(*) FROM records GROUP BY collection
	`)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var collection string
		var n int
		if err := rows.Scan(&collection, &n); err != nil {
			return nil, fmt.Errorf("scan counts: %w", err)
		}
		counts[collection] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}
