package compare

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV renders the comparison as a spreadsheet-friendly CSV: one row per
// reference cue, one column per candidate file.
func WriteCSV(result *Result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Index", "Start", "End", "English"}
	for _, f := range result.Files {
		header = append(header, f.Folder+"/"+f.Name)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range result.Rows {
		record := []string{
			fmt.Sprintf("%d", row.Index),
			FormatClock(row.Start),
			FormatClock(row.End),
			row.Reference,
		}
		for _, f := range result.Files {
			record = append(record, row.Matches[f.Key])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FormatClock renders seconds as "mm:ss" with total minutes, the compact
// form used in reports. Hour-long offsets simply roll the minutes past 59.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
