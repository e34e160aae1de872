package subtitle

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:02,500
Hello there.

2
00:00:03,000 --> 00:00:05,250
Two lines
of text.

3
00:01:00,000 --> 00:01:01,000
Final cue.
`

func TestParse(t *testing.T) {
	track := Parse(sampleSRT)
	if len(track) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(track))
	}
	if track[0].Start != 1.0 || track[0].End != 2.5 {
		t.Fatalf("unexpected timing: %+v", track[0])
	}
	if track[1].Text != "Two lines\nof text." {
		t.Fatalf("unexpected text: %q", track[1].Text)
	}
	if track[2].Start != 60.0 {
		t.Fatalf("unexpected start: %v", track[2].Start)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	content := `not a number
00:00:01,000 --> 00:00:02,000
skipped

1
garbage timing line
skipped

2
00:00:05,000 --> 00:00:06,000
kept
`
	track := Parse(content)
	if len(track) != 1 || track[0].Text != "kept" {
		t.Fatalf("expected only the well-formed cue, got %+v", track)
	}
}

func TestParseEmptyTextCue(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:02,000

2
00:00:03,000 --> 00:00:04,000
spoken
`
	track := Parse(content)
	if len(track) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(track))
	}
	if track[0].Text != "" {
		t.Fatalf("expected empty text, got %q", track[0].Text)
	}
	if track[1].Text != "spoken" {
		t.Fatalf("unexpected text: %q", track[1].Text)
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	content := "1\r\n00:00:01,000 --> 00:00:02,000\r\nhello\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nworld\r\n"
	track := Parse(content)
	if len(track) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(track))
	}
	if track[0].Text != "hello" || track[1].Text != "world" {
		t.Fatalf("unexpected texts: %+v", track)
	}
}

func TestParseEmpty(t *testing.T) {
	if track := Parse("   \n\n  "); track != nil {
		t.Fatalf("expected nil track, got %+v", track)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"00:00:01,000", 1.0, true},
		{"01:02:03,450", 3723.45, true},
		{"00:00:01.500", 1.5, true}, // period accepted
		{" 00:10:00,000 ", 600.0, true},
		{"", 0, false},
		{"00:00,000", 0, false},
		{"aa:bb:cc,ddd", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.input)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseTimestamp(%q) err = %v, ok expectation %v", tc.input, err, tc.ok)
		}
		if tc.ok && math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 1.5, 61.042, 3723.45} {
		formatted := FormatTimestamp(seconds)
		parsed, err := ParseTimestamp(formatted)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(parsed-seconds) > 0.001 {
			t.Fatalf("round trip %v -> %q -> %v", seconds, formatted, parsed)
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatal(err)
	}
	track, encoding, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if encoding != "utf-8" {
		t.Fatalf("unexpected encoding %q", encoding)
	}
	if len(track) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(track))
	}
}
