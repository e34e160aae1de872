// Package subtitle holds the cue data model and everything that operates on
// it: SRT parsing with charset fallbacks, overlap-based cue alignment, ad
// cleanup, and file validation.
package subtitle
