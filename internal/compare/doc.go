// Package compare aligns candidate subtitle tracks against a movie's
// reference track and writes side-by-side reports.
//
// For every reference cue the best-overlapping cue from each candidate file
// is selected by temporal intersection. The results land next to the movie
// as a CSV and a JSON report, and each run is recorded in the catalog.
package compare
