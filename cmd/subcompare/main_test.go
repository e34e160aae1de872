package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	dataDir := filepath.Join(base, "library")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n", dataDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"organize", "compare", "render", "runs", "config", "doctor"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestOrganizeDryRunEmptyLibrary(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCommand(t, "--config", configPath, "organize", "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Library already organized") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestOrganizeDryRunShowsPlan(t *testing.T) {
	configPath := writeTestConfig(t)
	base := filepath.Dir(configPath)
	movieDir := filepath.Join(base, "library", "Heat (1995)")
	if err := os.MkdirAll(movieDir, 0o755); err != nil {
		t.Fatal(err)
	}
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHello\n"
	if err := os.WriteFile(filepath.Join(movieDir, "loose.srt"), []byte(srt), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", configPath, "organize", "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rename_reference") {
		t.Fatalf("expected rename action in output: %q", out)
	}
	if !strings.Contains(out, "Dry run: 1 action(s) not applied") {
		t.Fatalf("expected dry-run summary: %q", out)
	}
	// Dry run must not touch the file.
	if _, err := os.Stat(filepath.Join(movieDir, "loose.srt")); err != nil {
		t.Fatal(err)
	}
}

func TestRunsListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCommand(t, "--config", configPath, "runs", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "data_dir") {
		t.Fatal("sample config missing data_dir")
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatal(err)
	}
}

func TestCompareAndRenderFlow(t *testing.T) {
	configPath := writeTestConfig(t)
	base := filepath.Dir(configPath)
	movieDir := filepath.Join(base, "library", "Heat (1995)")
	if err := os.MkdirAll(filepath.Join(movieDir, "persian"), 0o755); err != nil {
		t.Fatal(err)
	}
	reference := "1\n00:00:01,000 --> 00:00:03,000\nHello there.\n"
	candidate := "1\n00:00:01,500 --> 00:00:03,500\nSalam.\n"
	if err := os.WriteFile(filepath.Join(movieDir, "english_subtitle.srt"), []byte(reference), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(movieDir, "persian", "a.srt"), []byte(candidate), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", configPath, "compare", "Heat (1995)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Heat (1995)") || !strings.Contains(out, "100%") {
		t.Fatalf("unexpected compare output: %q", out)
	}

	out, err = runCommand(t, "--config", configPath, "render", "Heat (1995)")
	if err != nil {
		t.Fatal(err)
	}
	htmlPath := filepath.Join(movieDir, "Heat (1995)_comparison.html")
	if !strings.Contains(out, htmlPath) {
		t.Fatalf("unexpected render output: %q", out)
	}
	if _, err := os.Stat(htmlPath); err != nil {
		t.Fatal(err)
	}

	out, err = runCommand(t, "--config", configPath, "runs", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Heat (1995)") {
		t.Fatalf("expected run in list: %q", out)
	}
}

func TestDoctorReportsMissingReference(t *testing.T) {
	configPath := writeTestConfig(t)
	base := filepath.Dir(configPath)
	movieDir := filepath.Join(base, "library", "Heat (1995)")
	if err := os.MkdirAll(filepath.Join(movieDir, "persian"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", configPath, "doctor")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "missing reference") {
		t.Fatalf("expected missing reference warning: %q", out)
	}
	if !strings.Contains(out, "problem(s) found") {
		t.Fatalf("expected problem summary: %q", out)
	}
}
