// Command subcompare organizes a movie subtitle library and builds
// side-by-side comparison reports between a reference track and its
// translations.
package main
