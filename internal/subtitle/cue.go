package subtitle

// Cue is a single timed text interval. Start and End are half-open offsets
// in seconds from the beginning of the track.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Duration returns the cue length in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Track is an ordered sequence of cues from one subtitle file. Order by
// start time is conventional, not enforced; consumers tolerate unordered
// input.
type Track []Cue

// Bounds returns the earliest start and latest end across the track.
// A nil or empty track reports (0, 0).
func (t Track) Bounds() (first, last float64) {
	if len(t) == 0 {
		return 0, 0
	}
	first = t[0].Start
	last = t[0].End
	for _, cue := range t[1:] {
		if cue.Start < first {
			first = cue.Start
		}
		if cue.End > last {
			last = cue.End
		}
	}
	return first, last
}
