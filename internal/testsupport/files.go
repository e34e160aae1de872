package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subcompare/internal/subtitle"
)

// WriteSRT writes the cues to path as a well-formed SRT file, creating
// parent directories as needed.
func WriteSRT(t *testing.T, path string, cues []subtitle.Cue) {
	t.Helper()
	var sb strings.Builder
	for i, cue := range cues {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", subtitle.FormatTimestamp(cue.Start), subtitle.FormatTimestamp(cue.End))
		sb.WriteString(cue.Text)
		sb.WriteString("\n")
	}
	WriteFile(t, path, sb.String())
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
