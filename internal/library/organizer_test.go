package library_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subcompare/internal/library"
	"subcompare/internal/logging"
	"subcompare/internal/subtitle"
	"subcompare/internal/testsupport"
)

func actionsOfKind(plan *library.Plan, kind library.ActionKind) []library.Action {
	var actions []library.Action
	for _, action := range plan.Actions {
		if action.Kind == kind {
			actions = append(actions, action)
		}
	}
	return actions
}

func TestPlanRenamesSingleLooseSubtitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	testsupport.WriteSRT(t, filepath.Join(movieDir, "Heat.1995.1080p.srt"), []subtitle.Cue{
		{Index: 1, Start: 1, End: 2, Text: "Hello"},
	})

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	renames := actionsOfKind(plan, library.ActionRenameReference)
	if len(renames) != 1 {
		t.Fatalf("expected 1 rename action, got %d", len(renames))
	}
	if filepath.Base(renames[0].Target) != cfg.Comparison.ReferenceName {
		t.Fatalf("unexpected rename target %s", renames[0].Target)
	}
}

func TestPlanRefusesAmbiguousReference(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	testsupport.WriteFile(t, filepath.Join(movieDir, "a.srt"), "1\n00:00:01,000 --> 00:00:02,000\nA\n")
	testsupport.WriteFile(t, filepath.Join(movieDir, "b.srt"), "1\n00:00:01,000 --> 00:00:02,000\nB\n")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(actionsOfKind(plan, library.ActionRenameReference)) != 0 {
		t.Fatal("expected no rename actions for ambiguous references")
	}
	if len(plan.Notes) != 1 || !strings.Contains(plan.Notes[0], "2 loose subtitle files") {
		t.Fatalf("expected a note about loose files, got %v", plan.Notes)
	}
}

func TestPlanSkipsCanonicalReference(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	testsupport.WriteFile(t, filepath.Join(movieDir, cfg.Comparison.ReferenceName), "1\n00:00:01,000 --> 00:00:02,000\nA\n")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !plan.Empty() {
		t.Fatalf("expected empty plan, got %d actions", len(plan.Actions))
	}
}

func TestPlanRenamesLegacyFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	testsupport.WriteFile(t, filepath.Join(movieDir, "english", "sub.srt"), "1\n00:00:01,000 --> 00:00:02,000\nA\n")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	renames := actionsOfKind(plan, library.ActionRenameFolder)
	if len(renames) != 1 {
		t.Fatalf("expected 1 folder rename, got %d", len(renames))
	}
	if filepath.Base(renames[0].Target) != cfg.Comparison.CandidateDirs[0] {
		t.Fatalf("unexpected rename target %s", renames[0].Target)
	}
}

func TestPlanNotesLegacyCollision(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	testsupport.WriteFile(t, filepath.Join(movieDir, "english", "sub.srt"), "x")
	testsupport.WriteFile(t, filepath.Join(movieDir, cfg.Comparison.CandidateDirs[0], "sub.srt"), "x")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(actionsOfKind(plan, library.ActionRenameFolder)) != 0 {
		t.Fatal("expected no folder rename when target exists")
	}
	if len(plan.Notes) != 1 || !strings.Contains(plan.Notes[0], "merge manually") {
		t.Fatalf("expected a merge note, got %v", plan.Notes)
	}
}

func TestPlanArchivesZips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	testsupport.WriteFile(t, filepath.Join(movieDir, "subs.zip"), "zipdata")
	// Already-archived zips stay put.
	testsupport.WriteFile(t, filepath.Join(movieDir, cfg.Organize.ArchiveDir, "old.zip"), "zipdata")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	archives := actionsOfKind(plan, library.ActionArchiveZip)
	if len(archives) != 1 {
		t.Fatalf("expected 1 archive action, got %d", len(archives))
	}
	if filepath.Base(archives[0].Source) != "subs.zip" {
		t.Fatalf("unexpected archive source %s", archives[0].Source)
	}
}

func TestPlanFlattensNestedCandidates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	candidate := cfg.Comparison.CandidateDirs[0]
	testsupport.WriteFile(t, filepath.Join(movieDir, candidate, "release", "nested", "sub.srt"), "x")
	testsupport.WriteFile(t, filepath.Join(movieDir, candidate, "top.srt"), "x")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	flattens := actionsOfKind(plan, library.ActionFlattenFile)
	if len(flattens) != 1 {
		t.Fatalf("expected 1 flatten action, got %d", len(flattens))
	}
	removals := actionsOfKind(plan, library.ActionRemoveEmptyDir)
	if len(removals) != 2 {
		t.Fatalf("expected 2 dir removals, got %d", len(removals))
	}
	// Deepest directory first.
	if filepath.Base(removals[0].Source) != "nested" {
		t.Fatalf("expected nested removed first, got %s", removals[0].Source)
	}
}

func TestApplyExecutesPlan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	candidate := cfg.Comparison.CandidateDirs[0]
	testsupport.WriteSRT(t, filepath.Join(movieDir, "Heat.srt"), []subtitle.Cue{
		{Index: 1, Start: 1, End: 2, Text: "Hello"},
	})
	testsupport.WriteFile(t, filepath.Join(movieDir, "subs.zip"), "zipdata")
	testsupport.WriteFile(t, filepath.Join(movieDir, candidate, "release", "sub.srt"), "x")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	result, err := organizer.Apply(context.Background(), plan)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 0 {
		t.Fatalf("expected no failures, got %d", result.Failed)
	}
	if result.Applied != len(plan.Actions) {
		t.Fatalf("applied %d of %d actions", result.Applied, len(plan.Actions))
	}

	for _, path := range []string{
		filepath.Join(movieDir, cfg.Comparison.ReferenceName),
		filepath.Join(movieDir, cfg.Organize.ArchiveDir, "subs.zip"),
		filepath.Join(movieDir, candidate, "sub.srt"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s after apply: %v", path, err)
		}
	}
	if _, err := os.Stat(filepath.Join(movieDir, candidate, "release")); !os.IsNotExist(err) {
		t.Fatalf("expected release dir removed, got %v", err)
	}
}

func TestApplyFlattenCollisionsGetUniqueNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	candidate := cfg.Comparison.CandidateDirs[0]
	testsupport.WriteFile(t, filepath.Join(movieDir, candidate, "sub.srt"), "top")
	testsupport.WriteFile(t, filepath.Join(movieDir, candidate, "release", "sub.srt"), "nested")

	organizer := library.NewOrganizer(cfg, logging.NewNop())
	plan, err := organizer.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := organizer.Apply(context.Background(), plan); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"sub.srt", "sub_1.srt"} {
		if _, err := os.Stat(filepath.Join(movieDir, candidate, name)); err != nil {
			t.Fatalf("expected %s after apply: %v", name, err)
		}
	}
}

func TestMoviesSkipsHiddenAndFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DataDir, "stray.txt"), "x")
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DataDir, ".hidden", "f"), "x")
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DataDir, "Zodiac (2007)", "f"), "x")
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DataDir, "Alien (1979)", "f"), "x")

	movies, err := library.Movies(cfg.Paths.DataDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if filepath.Base(movies[0]) != "Alien (1979)" || filepath.Base(movies[1]) != "Zodiac (2007)" {
		t.Fatalf("unexpected movie order: %v", movies)
	}
}

func TestMovieIssues(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	movieDir := filepath.Join(cfg.Paths.DataDir, "Heat (1995)")
	if err := os.MkdirAll(filepath.Join(movieDir, cfg.Comparison.CandidateDirs[0]), 0o755); err != nil {
		t.Fatal(err)
	}

	issues := library.MovieIssues(cfg, movieDir)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if !strings.Contains(issues[0], "missing reference") {
		t.Fatalf("expected missing reference issue, got %q", issues[0])
	}
	if !strings.Contains(issues[1], "no .srt files") {
		t.Fatalf("expected empty candidate issue, got %q", issues[1])
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	check := library.CheckDirectoryAccess("data directory", dir)
	if !check.Passed {
		t.Fatalf("expected pass for %s: %s", dir, check.Detail)
	}

	check = library.CheckDirectoryAccess("data directory", filepath.Join(dir, "missing"))
	if check.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(check.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", check.Detail)
	}
}
