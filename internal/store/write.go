package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/caldermed/traceworks/internal/record"
)

// ImportSnapshot replaces the stored collections with the given snapshot,
// atomically. Returns the number of records written.
//
// Ids are normalized before storage; a record without an id is assigned a
// fresh UUID so every stored record is addressable. Duplicate ids within
// a collection keep the first occurrence, matching how the engine
// collapses duplicates.
func (s *Store) ImportSnapshot(ctx context.Context, snap *record.Snapshot) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records (collection, id, seq, doc)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	w := &writer{ctx: ctx, stmt: stmt}
	writeCollection(w, CollectionTasks, snap.Tasks, func(r *record.Task) *string { return &r.ID })
	writeCollection(w, CollectionRequirements, snap.Requirements, func(r *record.Requirement) *string { return &r.ID })
	writeCollection(w, CollectionOutputs, snap.Outputs, func(r *record.Output) *string { return &r.ID })
	writeCollection(w, CollectionVerifications, snap.Verifications, func(r *record.VerificationTest) *string { return &r.ID })
	writeCollection(w, CollectionValidations, snap.Validations, func(r *record.ValidationStudy) *string { return &r.ID })
	writeCollection(w, CollectionHazards, snap.Hazards, func(r *record.Hazard) *string { return &r.HazardID })
	writeCollection(w, CollectionReviews, snap.Reviews, func(r *record.Review) *string { return &r.ID })
	writeCollection(w, CollectionChanges, snap.Changes, func(r *record.Change) *string { return &r.ID })
	if w.err != nil {
		return 0, w.err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return w.written, nil
}

// writer threads the shared insert state through the typed collection
// writes; the first error stops all subsequent work.
type writer struct {
	ctx     context.Context
	stmt    *sql.Stmt
	seq     int
	written int
	err     error
}

func writeCollection[T any](w *writer, collection string, recs []T, id func(*T) *string) {
	if w.err != nil {
		return
	}
	for i := range recs {
		rec := recs[i] // copy; the caller's snapshot is never mutated
		idField := id(&rec)
		*idField = record.NormalizeID(*idField)
		if *idField == "" {
			*idField = uuid.NewString()
		}

		doc, err := marshalDoc(rec)
		if err != nil {
			w.err = fmt.Errorf("%s: %w", collection, err)
			return
		}

		w.seq++
		res, err := w.stmt.ExecContext(w.ctx, collection, *idField, w.seq, doc)
		if err != nil {
			w.err = fmt.Errorf("insert %s/%s: %w", collection, *idField, err)
			return
		}
		if n, err := res.RowsAffected(); err == nil {
			w.written += int(n)
		}
	}
}
