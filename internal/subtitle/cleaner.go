package subtitle

import (
	"regexp"
	"strings"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

var (
	htmlTagRe = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	assTagRe  = regexp.MustCompile(`\{\\[^}]*\}`)
)

// CleanStats reports the effects of track cleanup.
type CleanStats struct {
	RemovedCues int
}

// CleanTrack drops advertisement cues and flattens each remaining cue's text
// to a single display line suitable for tabular reports.
func CleanTrack(track Track) (Track, CleanStats) {
	var stats CleanStats
	cleaned := make(Track, 0, len(track))
	for _, cue := range track {
		if isAdvertisement(cue.Text) {
			stats.RemovedCues++
			continue
		}
		cue.Text = FlattenText(cue.Text)
		cleaned = append(cleaned, cue)
	}
	return cleaned, stats
}

// FlattenText strips markup tags and collapses a cue's text onto one line.
func FlattenText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = assTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}

func isAdvertisement(text string) bool {
	payload := strings.ToLower(strings.TrimSpace(text))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}
