package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"subcompare/internal/config"
)

// NewConfig returns a validated config rooted in a fresh temp directory.
// The data directory exists and is empty; the log directory is created on
// demand by the components that write there.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	dataDir := filepath.Join(base, "library")
	logDir := filepath.Join(base, "logs")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n", dataDir, logDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}
