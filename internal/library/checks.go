package library

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"subcompare/internal/config"
)

// Check is the outcome of a single doctor probe.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Check {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Check{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Check{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Check{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Check{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Check{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// MovieIssues reports layout problems for a single movie directory: a
// missing reference track or candidate folders with no subtitles.
func MovieIssues(cfg *config.Config, movieDir string) []string {
	var issues []string

	reference := filepath.Join(movieDir, cfg.Comparison.ReferenceName)
	if info, err := os.Stat(reference); err != nil || info.IsDir() {
		issues = append(issues, fmt.Sprintf("missing reference %s", cfg.Comparison.ReferenceName))
	}

	foundCandidates := false
	for _, candidate := range cfg.Comparison.CandidateDirs {
		dir := filepath.Join(movieDir, candidate)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		foundCandidates = true
		if len(CandidateFiles(dir)) == 0 {
			issues = append(issues, fmt.Sprintf("candidate folder %s has no .srt files", candidate))
		}
	}
	if !foundCandidates {
		issues = append(issues, "no candidate folders")
	}

	return issues
}

// CandidateFiles lists the .srt files at the top level of a candidate
// folder, sorted by name.
func CandidateFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".srt" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files
}
