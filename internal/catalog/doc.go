// Package catalog persists comparison run history in a SQLite database.
//
// Each `compare` invocation records one row per movie: cue counts, per-file
// coverage, report locations, and timing. The schema is versioned; on a
// mismatch the store refuses to open and tells the user to delete the file.
package catalog
