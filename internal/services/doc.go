// Package services holds the error taxonomy and context annotations shared by
// the library, compare, and report stages.
//
// Stage code wraps failures with Wrap so the CLI can distinguish validation
// and configuration problems (user-fixable) from transient ones, and tags the
// context with the movie and run identifiers that logging extracts.
package services
