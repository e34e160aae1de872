package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFileOK(t *testing.T) {
	path := writeFile(t, "good.srt", sampleSRT)
	if issues := ValidateFile(path); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateFileEmpty(t *testing.T) {
	path := writeFile(t, "empty.srt", "   \n")
	issues := ValidateFile(path)
	if len(issues) != 1 || issues[0] != "empty_subtitle_file" {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateFileNoCues(t *testing.T) {
	path := writeFile(t, "junk.srt", "this is not\nan srt file\n")
	issues := ValidateFile(path)
	if len(issues) != 1 || issues[0] != "no_parseable_cues" {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateFileMissing(t *testing.T) {
	issues := ValidateFile(filepath.Join(t.TempDir(), "absent.srt"))
	if len(issues) != 1 || !strings.HasPrefix(issues[0], "read_error") {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateFileInvertedCues(t *testing.T) {
	content := `1
00:00:05,000 --> 00:00:03,000
backwards
`
	path := writeFile(t, "inverted.srt", content)
	issues := ValidateFile(path)
	found := false
	for _, issue := range issues {
		if strings.HasPrefix(issue, "inverted_cues") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected inverted_cues issue, got %v", issues)
	}
}
