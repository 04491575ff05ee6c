// Package store persists the record collections the analytics engine
// computes over.
//
// The store is the ownership boundary from spec and system design: records
// belong here, the engine only ever sees snapshots. SQLite keeps the whole
// project in a single file the dashboard tooling can hand around, with WAL
// mode for concurrent readers.
//
// Records are stored as JSON TEXT documents in one generic table keyed by
// (collection, id), with a monotonic seq preserving insertion order. Reads
// use ORDER BY seq ASC, id COLLATE BINARY ASC so a snapshot loads in the
// same order every time - the engine's derived views inherit their
// determinism from this ordering.
//
// Import assigns a fresh id to any record that arrives without one; the
// engine treats blank ids as malformed, so the collaborator closes that
// gap before the records ever reach it.
package store
