package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Report is the JSON document consumed by the HTML renderer.
type Report struct {
	Movie       string                       `json:"movie"`
	GeneratedAt string                       `json:"generated_at"`
	FileMapping map[string]map[string]string `json:"file_mapping"`
	Coverage    map[string]float64           `json:"coverage"`
	Subtitles   []ReportEntry                `json:"subtitles"`
}

// ReportEntry is one reference cue with its translations, keyed first by
// candidate folder and then by file key.
type ReportEntry struct {
	Index        int                          `json:"index"`
	Time         string                       `json:"time"`
	English      string                       `json:"english"`
	Translations map[string]map[string]string `json:"translations"`
}

// BuildReport converts a comparison result into the JSON report document.
func BuildReport(result *Result) *Report {
	report := &Report{
		Movie:       result.Movie,
		GeneratedAt: result.GeneratedAt.UTC().Format(time.RFC3339),
		FileMapping: map[string]map[string]string{},
		Coverage:    result.Coverage,
	}
	for _, f := range result.Files {
		if report.FileMapping[f.Folder] == nil {
			report.FileMapping[f.Folder] = map[string]string{}
		}
		report.FileMapping[f.Folder][f.Key] = f.Name
	}

	report.Subtitles = make([]ReportEntry, 0, len(result.Rows))
	for _, row := range result.Rows {
		entry := ReportEntry{
			Index:        row.Index,
			Time:         FormatClock(row.Start) + "," + FormatClock(row.End),
			English:      row.Reference,
			Translations: map[string]map[string]string{},
		}
		for _, f := range result.Files {
			if entry.Translations[f.Folder] == nil {
				entry.Translations[f.Folder] = map[string]string{}
			}
			entry.Translations[f.Folder][f.Key] = row.Matches[f.Key]
		}
		report.Subtitles = append(report.Subtitles, entry)
	}
	return report
}

// WriteJSON writes the comparison result as a JSON report.
func WriteJSON(result *Result, path string) error {
	data, err := json.MarshalIndent(BuildReport(result), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport loads a previously written JSON report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}
