package subtitle

// Overlap returns the length of the time intersection between two cues.
// Disjoint or zero-length cues yield 0; the result is never negative.
func Overlap(a, b Cue) float64 {
	start := a.Start
	if b.Start > start {
		start = b.Start
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if end <= start {
		return 0
	}
	return end - start
}

// BestMatchCue returns the candidate cue with the greatest temporal overlap
// against ref, along with that overlap. Candidates tie on overlap in favor
// of the earliest position in the track. ok is false when the track is empty
// or no candidate overlaps at all.
func BestMatchCue(ref Cue, track Track) (best Cue, overlap float64, ok bool) {
	for _, cand := range track {
		o := Overlap(ref, cand)
		if o > overlap {
			overlap = o
			best = cand
			ok = true
		}
	}
	return best, overlap, ok
}

// BestMatch returns the text of the best-overlapping candidate cue, or the
// empty string when nothing overlaps. A missing match is a normal outcome,
// not an error.
func BestMatch(ref Cue, track Track) string {
	best, _, ok := BestMatchCue(ref, track)
	if !ok {
		return ""
	}
	return best.Text
}
