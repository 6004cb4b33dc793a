// Package store persists finalized strokes in SQLite.
//
// Strokes are appended in finalization order; the autoincrement seq column
// is that order. Control points are stored as one BLOB of packed records
// (see controlpoint) together with the extension mask they were written
// with, so older layouts keep decoding after the record grows.
//
// Undo works on groups: UndoLastGroup marks every stroke sharing the most
// recent live group ID as undone. Undone strokes are kept but hidden from
// reads.
//
// The store also keeps the symmetry widget (the "mirror") so a reopened
// sketch restores it.
//
// All reads are deterministic: ORDER BY seq ASC, id ASC. Empty results are
// empty slices, never nil.
package store
