package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// ValidateFile checks an SRT file for format issues.
// Returns a list of issues found; empty slice means validation passed.
func ValidateFile(path string) []string {
	var issues []string

	data, err := os.ReadFile(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("read_error: %v", err))
		return issues
	}
	if strings.TrimSpace(string(data)) == "" {
		issues = append(issues, "empty_subtitle_file")
		return issues
	}

	content, _, err := Decode(data)
	if err != nil {
		issues = append(issues, fmt.Sprintf("decode_error: %v", err))
		return issues
	}

	track := Parse(content)
	if len(track) == 0 {
		issues = append(issues, "no_parseable_cues")
		return issues
	}

	first, last := track.Bounds()
	if first == 0 && last == 0 {
		issues = append(issues, "no_valid_timestamps")
	}

	inverted := 0
	for _, cue := range track {
		if cue.End < cue.Start {
			inverted++
		}
	}
	if inverted > 0 {
		issues = append(issues, fmt.Sprintf("inverted_cues: %d", inverted))
	}

	return issues
}
