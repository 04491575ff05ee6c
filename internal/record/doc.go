// Package record defines the tagged record types the analytics engine
// computes over.
//
// Source records arrive from the storage collaborator as loosely shaped
// documents: fields may be missing, null, or carry the wrong scalar kind
// (a rating as "3", a date as a timestamp, a dependency list as a
// comma-delimited string). Rather than dynamic field lookup, each tolerant
// field is a dedicated type (Ordinal, Date, RefList) whose unmarshaling
// absorbs the mess and whose zero value means "absent":
//
//   - Ordinal: a 1-5 rating; anything non-coercible is invalid, never an error
//   - Date: a calendar date; unparseable input is invalid, never an error
//   - RefList: a set of record ids; accepts a sequence or a delimited string
//
// This makes the "missing field -> safe default" contract enforceable by
// the type system: engine code asks o.Valid() / d.Valid() instead of
// guessing at map keys.
//
// Record identity is NFC-normalized (see NormalizeID) so that ids entered
// through different input methods still join across collections.
package record
