// Package engine implements the DHF analytics engine.
//
// The engine is the only part of the system that computes over the stored
// record collections rather than displaying them. It exposes four pure
// functions over an immutable snapshot:
//
//   - Classify: map a severity/probability rating pair to a risk band
//   - ComputeCriticalPath: CPM forward/backward passes over the task graph
//   - BuildMatrix: requirement -> output -> verification -> validation joins
//   - Aggregate: flatten nested action items and derive overdue status
//
// ARCHITECTURE:
//
// Pure snapshot computation:
// Every call receives full copies of the relevant collections and returns a
// freshly computed result. No state survives a call, no I/O happens, and
// identical input produces byte-identical output. Concurrent invocations
// need no locking because there is nothing shared to lock.
//
// Degrade, don't crash:
// Records arrive from loosely validated data entry. Missing fields and
// malformed values are absorbed at the row level - the offending row is
// skipped or classified N/A and the computation continues, so the hosting
// view always renders. Degenerate-but-valid results carry Warning values;
// only structural preconditions (no requirements for the matrix spine, a
// dependency cycle in the task graph) surface as errors.
//
// Determinism:
// All derived collections have a defined order: matrix rows follow the
// requirement spine, schedule rows preserve task input order, reference
// lists are sorted. Graph traversal is FIFO Kahn order, never map order.
package engine
