package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeComparison()
	c.normalizeOrganize()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeComparison() {
	c.Comparison.ReferenceName = strings.TrimSpace(c.Comparison.ReferenceName)
	if c.Comparison.ReferenceName == "" {
		c.Comparison.ReferenceName = defaultReferenceName
	}
	c.Comparison.CandidateDirs = cleanNames(c.Comparison.CandidateDirs)
	if len(c.Comparison.CandidateDirs) == 0 {
		c.Comparison.CandidateDirs = []string{"persian"}
	}
	c.Comparison.OutputSuffix = strings.TrimSpace(c.Comparison.OutputSuffix)
	if c.Comparison.OutputSuffix == "" {
		c.Comparison.OutputSuffix = defaultOutputSuffix
	}
}

func (c *Config) normalizeOrganize() {
	c.Organize.ArchiveDir = strings.TrimSpace(c.Organize.ArchiveDir)
	if c.Organize.ArchiveDir == "" {
		c.Organize.ArchiveDir = defaultArchiveDir
	}
	c.Organize.LegacyCandidateDirs = cleanNames(c.Organize.LegacyCandidateDirs)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func cleanNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
