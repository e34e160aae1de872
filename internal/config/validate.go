package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateComparison(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateComparison() error {
	if filepath.Ext(c.Comparison.ReferenceName) != ".srt" {
		return fmt.Errorf("comparison.reference_name must be an .srt filename, got %q", c.Comparison.ReferenceName)
	}
	for _, dir := range c.Comparison.CandidateDirs {
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("comparison.candidate_dirs entries must be bare folder names, got %q", dir)
		}
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if strings.ContainsAny(c.Organize.ArchiveDir, `/\`) {
		return fmt.Errorf("organize.archive_dir must be a bare folder name, got %q", c.Organize.ArchiveDir)
	}
	for _, dir := range c.Organize.LegacyCandidateDirs {
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("organize.legacy_candidate_dirs entries must be bare folder names, got %q", dir)
		}
		for _, candidate := range c.Comparison.CandidateDirs {
			if strings.EqualFold(dir, candidate) {
				return fmt.Errorf("organize.legacy_candidate_dirs entry %q collides with comparison.candidate_dirs", dir)
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
